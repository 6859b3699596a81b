package main

import (
	"database/sql"
	"park-course-service/internal/adapters/repositories"
	"park-course-service/internal/config"
	"park-course-service/internal/platform/db"
	"park-course-service/internal/platform/obs"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "dbtool",
	Short:         "Manage the park database and plan courses from the command line",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		cfg = c
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(statsCmd)
}

func openDatabase() (*sql.DB, repositories.Dialect, error) {
	database, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return nil, 0, err
	}
	return database, repositories.DialectForDriver(cfg.DBDriver), nil
}

// newLogger prefers DBTOOL_LOG_LEVEL over LOG_LEVEL when set.
func newLogger() *zap.Logger {
	logger, err := obs.NewLogger(config.Get("DBTOOL_LOG_LEVEL", cfg.LogLevel), true)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
