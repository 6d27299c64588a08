package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/limbo/galaxy/internal/repository"
	"github.com/limbo/galaxy/pkg/config"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := repository.Migrate(cmd.Context(), postgresConfig(config.New())); err != nil {
				return err
			}
			slog.Info("migrations applied")
			return nil
		},
	}
}
