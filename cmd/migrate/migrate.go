// Package migrate applies the ledger database schema.
package migrate

import (
	"fjacquet/stmt-ingest/cmd/root"
	"fjacquet/stmt-ingest/internal/database"

	"github.com/spf13/cobra"
)

// Cmd represents the migrate command
var Cmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database schema migrations",
	Run:   migrateFunc,
}

func migrateFunc(cmd *cobra.Command, args []string) {
	logger := root.Log
	cfg := root.Cfg

	if cfg.Database.URL == "" {
		logger.Fatal("No database configured; set STMT_DATABASE_URL or DATABASE_URL")
	}
	if err := database.Migrate(cfg.Database.URL); err != nil {
		logger.Fatalf("Migration failed: %v", err)
	}
	logger.Info("Database schema up to date")
}
