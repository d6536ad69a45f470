package main

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-arena/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List every item and enemy",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		renderCatalog(cmd.OutOrStdout(), catalog.Default())
		return nil
	},
}
