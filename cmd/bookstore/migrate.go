package main

import (
	"github.com/spf13/cobra"

	"github.com/bookstore/catalog-api/internal/infrastructure/db/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		db, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = postgres.Close(db) }()

		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
		log.Info().Str("driver", cfg.DB.Driver).Msg("schema migrated")
		return nil
	},
}
