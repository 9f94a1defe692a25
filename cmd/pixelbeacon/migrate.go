package main

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/creamcroissant/pixelbeacon/internal/bootstrap"
	"github.com/creamcroissant/pixelbeacon/internal/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

func init() {
	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply pending migrations",
			RunE:  withDB(migrations.Up),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the last migration",
			RunE:  withDB(migrations.Down),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print migration status",
			RunE:  withDB(migrations.Status),
		},
	)
	rootCmd.AddCommand(migrateCmd)
}

func withDB(fn func(*sql.DB) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := bootstrap.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		db, err := bootstrap.OpenSQLite(cfg.DB.SQLitePath)
		if err != nil {
			return err
		}
		defer db.Close()
		return fn(db)
	}
}
