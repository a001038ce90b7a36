// Package root contains the root command for the application
package root

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iYassr/projectbudget/internal/config"
	"github.com/iYassr/projectbudget/internal/export"
	"github.com/iYassr/projectbudget/internal/store"
)

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the resolved application configuration, available after
	// PersistentPreRun.
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "projectbudget",
		Short: "A CLI tool to extract expenses from bank SMS messages and track spending.",
		Long: `projectbudget extracts structured expenses from exported bank and wallet
SMS messages (Arabic and English), categorizes them, and stores them for
reporting and export.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to projectbudget!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to load configuration: %v", err)
			}
			Cfg = cfg
			Log = config.ConfigureLoggingFromConfig(cfg)

			store.SetLogger(Log)
			export.SetLogger(Log)

			if cfg.Export.Delimiter != "" {
				export.SetDelimiter([]rune(cfg.Export.Delimiter)[0])
			}
			export.SetIncludeHeaders(cfg.Export.IncludeHeaders)
			if delim := os.Getenv("CSV_DELIMITER"); delim != "" {
				Log.WithField("delimiter", delim).Debug("Setting CSV delimiter from environment")
				export.SetDelimiter([]rune(delim)[0])
			}
		},
	}

	// Flags shared by the message-reading commands
	SourceDir    string
	SourceFormat string
)

// Init initializes the root command and all shared flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SourceDir, "source", "s", "", "Message source: exported conversation folder or SMS backup XML file")
	Cmd.PersistentFlags().StringVarP(&SourceFormat, "format", "f", "txt", "Message source format: txt or xml")
}
