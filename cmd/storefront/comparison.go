package main

import (
	"storefront-client/internal/usecase"

	"github.com/spf13/cobra"
)

var comparisonCmd = &cobra.Command{
	Use:   "comparison",
	Short: "Manage the product comparison list",
}

var comparisonAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Put a product on the comparison list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		comp := usecase.NewComparison(client, banner)
		return comp.Add(cmd.Context(), args[0])
	},
}

var comparisonRemoveCmd = &cobra.Command{
	Use:   "rm <product-id>",
	Short: "Take a product off the comparison list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		comp := usecase.NewComparison(client, banner)
		return comp.Remove(cmd.Context(), args[0])
	},
}

func init() {
	comparisonCmd.AddCommand(comparisonAddCmd, comparisonRemoveCmd)
}
