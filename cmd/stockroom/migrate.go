package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stockroomhq/stockroom/database/seeders"
	"github.com/stockroomhq/stockroom/pkg/database"
	"github.com/stockroomhq/stockroom/pkg/migration"
)

// runner connects to the database and returns a migration runner with
// the tracking table in place.
func runner() (*migration.Runner, error) {
	if err := database.Connect(); err != nil {
		return nil, err
	}
	r := migration.New(database.DB)
	if err := r.EnsureTable(); err != nil {
		return nil, err
	}
	return r, nil
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := runner()
		if err != nil {
			return err
		}
		return r.Up()
	},
}

var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Revert the last migration batch",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := runner()
		if err != nil {
			return err
		}
		return r.Rollback()
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show which migrations have run",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := runner()
		if err != nil {
			return err
		}
		rows, err := r.Status()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "MIGRATION\tRAN")
		for _, row := range rows {
			ran := "no"
			if row.Ran {
				ran = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\n", row.Name, ran)
		}
		return w.Flush()
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.Connect(); err != nil {
			return err
		}
		return seeders.Run(database.DB)
	},
}
