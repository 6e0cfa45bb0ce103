package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vyay-app/vyay/internal/cli"
	"github.com/vyay-app/vyay/internal/storage"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Bring the database schema up to the current version. Migrations also run
automatically on startup; this command exists to run them explicitly and
confirm the schema version.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Database schema is at version %d", storage.ExpectedSchemaVersion)))
			return nil
		},
	}
}
