// Package root contains the root command for the application
package root

import (
	"fjacquet/stmt-ingest/internal/config"
	"fjacquet/stmt-ingest/internal/logging"

	"github.com/spf13/cobra"
)

var (
	// Cfg holds the resolved configuration, populated before any subcommand runs.
	Cfg *config.Config

	// Log is the shared logger instance for commands
	Log logging.Logger = logging.GetLogger()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "stmt-ingest",
		Short: "A CLI tool to extract bank statement PDFs to CSV and ingest them into a ledger.",
		Long: `stmt-ingest converts bank and credit-card statement PDFs to normalized CSV
files and ingests parsed transactions into a PostgreSQL ledger with
hash-based deduplication. Statements are routed to issuer-specific parsers
(Amex, Chase, Citi, Discover) by filename, with a generic table extractor
as the fallback.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to stmt-ingest!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to load configuration: %v", err)
			}
			Cfg = cfg
			Log = logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg))
		},
	}

	// DryRun is shared by the commands that support rehearsal runs.
	DryRun bool
)

// Init initializes the root command and all persistent flags.
func Init() {
	Cmd.PersistentFlags().BoolVar(&DryRun, "dry-run", false, "Run without writing files or database rows")
}
