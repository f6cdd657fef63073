package main

import (
	"github.com/spf13/cobra"

	// Fill the migration registry before any command runs.
	_ "github.com/stockroomhq/stockroom/database/migrations"
)

var rootCmd = &cobra.Command{
	Use:   "stockroom",
	Short: "Inventory management service",
	Long:  "Stockroom is a small-business inventory service: items, customers, orders, stock ledger and reports over a JSON API.",
}

func init() {
	rootCmd.AddCommand(
		serveCmd,
		routeListCmd,
		migrateCmd,
		migrateRollbackCmd,
		migrateStatusCmd,
		seedCmd,
	)
}
