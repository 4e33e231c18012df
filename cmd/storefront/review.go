package main

import (
	"fmt"
	"strconv"

	"storefront-client/internal/usecase"

	"github.com/spf13/cobra"
)

var (
	reviewText string
	reviewAll  bool
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Read and write product reviews",
}

var reviewListCmd = &cobra.Command{
	Use:   "list <product-id>",
	Short: "List reviews for a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		feed := usecase.NewReviewFeed(client, appView, args[0])
		if err := feed.Load(cmd.Context()); err != nil {
			return err
		}
		if reviewAll {
			for {
				more, err := feed.LoadMore(cmd.Context())
				if err != nil {
					return err
				}
				if !more {
					break
				}
			}
		}

		for _, r := range feed.Reviews() {
			fmt.Printf("#%d %s (%s)\n%s\n\n", r.PK, r.User.Login, r.CreatedAt.Format("2006-01-02 15:04"), r.Text)
		}
		section, _ := feed.Counters()
		fmt.Printf("reviews: %d\n", section)
		return nil
	},
}

var reviewAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Post a review",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		feed := usecase.NewReviewFeed(client, appView, args[0])
		if err := feed.Load(cmd.Context()); err != nil {
			return err
		}
		created, err := feed.Create(cmd.Context(), reviewText)
		if err != nil {
			return err
		}
		fmt.Printf("created review #%d\n", created.PK)
		return nil
	},
}

var reviewEditCmd = &cobra.Command{
	Use:   "edit <product-id> <review-pk>",
	Short: "Edit one of the product's reviews in place",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pk, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid review pk %q: %w", args[1], err)
		}
		feed, err := loadFullFeed(cmd, args[0])
		if err != nil {
			return err
		}
		return feed.Edit(cmd.Context(), pk, reviewText)
	},
}

var reviewDeleteCmd = &cobra.Command{
	Use:   "delete <product-id> <review-pk>",
	Short: "Delete one of the product's reviews",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pk, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid review pk %q: %w", args[1], err)
		}
		feed, err := loadFullFeed(cmd, args[0])
		if err != nil {
			return err
		}
		return feed.Delete(cmd.Context(), pk)
	},
}

// loadFullFeed walks every page so edits and deletes can target reviews
// beyond the first one.
func loadFullFeed(cmd *cobra.Command, productID string) (*usecase.ReviewFeed, error) {
	feed := usecase.NewReviewFeed(client, appView, productID)
	if err := feed.Load(cmd.Context()); err != nil {
		return nil, err
	}
	for {
		more, err := feed.LoadMore(cmd.Context())
		if err != nil {
			return nil, err
		}
		if !more {
			return feed, nil
		}
	}
}

func init() {
	reviewListCmd.Flags().BoolVar(&reviewAll, "all", false, "follow pagination to the last page")
	reviewAddCmd.Flags().StringVar(&reviewText, "text", "", "review text")
	reviewEditCmd.Flags().StringVar(&reviewText, "text", "", "replacement text")
	_ = reviewAddCmd.MarkFlagRequired("text")
	_ = reviewEditCmd.MarkFlagRequired("text")
	reviewCmd.AddCommand(reviewListCmd, reviewAddCmd, reviewEditCmd, reviewDeleteCmd)
}
