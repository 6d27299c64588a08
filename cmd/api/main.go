package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/limbo/galaxy/internal/repository"
	"github.com/limbo/galaxy/internal/service"
	"github.com/limbo/galaxy/pkg/config"
	"github.com/limbo/galaxy/pkg/logging"
)

func init() {
	service.InitValidator()
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		slog.Error("galaxy exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "galaxy",
		Short: "Personal dashboard backend",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.New()
			logging.Setup()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newServeCommand(), newMigrateCommand())
	return cmd
}

func postgresConfig(cfg *config.Config) *repository.PGCfg {
	return &repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
		SSLMode:  cfg.GetString("POSTGRES_SSLMODE"),
	}
}
