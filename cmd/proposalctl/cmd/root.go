// Package cmd содержит команды proposalctl.
package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/proposalgen/proposal-backend/internal/config"
	"github.com/proposalgen/proposal-backend/internal/db"
	"github.com/proposalgen/proposal-backend/internal/logger"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "proposalctl",
	Short: "Proposal generator maintenance tool",
	Long: `proposalctl works directly with the proposal database configured
through the same environment variables as the server (DATABASE_DRIVER,
DATABASE_URL, OUTPUT_DIR, PDF_ENGINE ...).

Examples:
  # Apply migrations
  proposalctl migrate

  # List proposals of a user
  proposalctl list --user 1

  # Export a stored proposal to PDF
  proposalctl export 42 --format pdf --dir ./out`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.Init("debug")
			logger.SetTextFormatter()
			logger.SetOutput(cmd.ErrOrStderr())
			return
		}
		logger.SetOutput(io.Discard)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// Execute запускает корневую команду.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// openDatabase читает конфигурацию и открывает базу с применёнными миграциями.
func openDatabase(ctx context.Context) (*config.Config, *sqlx.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	conn, err := db.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}

	migrations, err := db.MigrationsFS(cfg.DatabaseDriver, cfg.MigrationsPath)
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}
	if err := db.RunMigrations(ctx, conn, migrations); err != nil {
		_ = conn.Close()
		return nil, nil, err
	}

	return cfg, conn, nil
}
