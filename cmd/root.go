package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "boutique",
	Short: "Boutique storefront API",
	Long: `Boutique serves the storefront API: catalog, carts, wishlists,
cash-on-delivery checkout with promo codes, reviews, address books and
the admin dashboard.

Configuration comes from .env, config.yaml and BOUTIQUE_* variables.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
