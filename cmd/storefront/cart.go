package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"storefront-client/internal/domain"

	"github.com/spf13/cobra"
)

var cartPriceID string

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Inspect and mutate the session cart",
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Fetch and display the authoritative cart state",
	RunE: func(cmd *cobra.Command, args []string) error {
		cart, err := session.Refresh(cmd.Context())
		if err != nil {
			return err
		}
		printCart(cart)
		return nil
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add a product to the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref := domain.ProductRef{ProductID: args[0], PriceID: cartPriceID}
		if err := session.Add(cmd.Context(), ref); err != nil {
			return err
		}
		return showAfterMutation(cmd)
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <product-id>",
	Short: "Remove a product's line from the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := session.Remove(cmd.Context(), args[0]); err != nil {
			return err
		}
		return showAfterMutation(cmd)
	},
}

var cartSetCmd = &cobra.Command{
	Use:   "set <product-id>=<quantity> ...",
	Short: "Change line quantities (0 removes the line)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		updates := make([]domain.LineUpdate, 0, len(args))
		for _, arg := range args {
			productID, qtyText, ok := strings.Cut(arg, "=")
			if !ok {
				return fmt.Errorf("expected <product-id>=<quantity>, got %q", arg)
			}
			qty, err := strconv.Atoi(qtyText)
			if err != nil {
				return fmt.Errorf("invalid quantity in %q: %w", arg, err)
			}
			updates = append(updates, domain.LineUpdate{ProductID: productID, Quantity: qty})
		}
		if err := session.SetQuantities(cmd.Context(), updates); err != nil {
			return err
		}
		return showAfterMutation(cmd)
	},
}

// showAfterMutation prints the reconciled cart. The session has already
// refetched it, so this is served from the summary cache.
func showAfterMutation(cmd *cobra.Command) error {
	cart, err := session.Refresh(cmd.Context())
	if err != nil {
		return err
	}
	printCart(cart)
	return nil
}

func printCart(cart *domain.Cart) {
	ids := make([]string, 0, len(cart.Lines))
	for id := range cart.Lines {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		line := cart.Lines[id]
		fmt.Printf("%-12s  x%-4d  %8s $  (%s)  =%9s $\n",
			line.ProductID,
			line.Quantity,
			line.UnitPrice.StringFixed(2),
			line.SellerName,
			line.LineCost.StringFixed(2),
		)
	}
	fmt.Printf("total: %d items, %s $\n", cart.Summary.TotalQuantity, cart.Summary.TotalCost.StringFixed(2))
}

func init() {
	cartAddCmd.Flags().StringVar(&cartPriceID, "price", "", "price offer to pin the added product to")
	cartCmd.AddCommand(cartShowCmd, cartAddCmd, cartRemoveCmd, cartSetCmd)
}
