// Package cli provides the command-line interface for launchersync.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/emberlaunch/launchersync/internal/logging"
	"github.com/emberlaunch/launchersync/internal/settings"
)

var (
	// Global flags
	storePath string
	verbose   bool

	// Global logger
	logger *logging.Logger
)

// Version information - set by main package at startup.
var (
	Version   = "v1.4.0-dev"
	BuildTime = "2026-08-20"
)

// GetLogger returns the CLI logger, creating it if commands run outside the
// cobra lifecycle (tests).
func GetLogger() *logging.Logger {
	if logger == nil {
		logger = logging.New()
	}
	return logger
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "launchersync",
		Short: "EmberLaunch settings companion",
		Long: `launchersync ` + Version + ` - Built: ` + BuildTime + `
Companion tool for the EmberLaunch launcher's API settings.

Edits the persisted paste-service, endpoint-override and API-key settings,
normalizes endpoint URLs the same way the launcher does, and can download
and apply the meta server's remote properties document.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.New()
			if verbose {
				logging.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&storePath, "settings", "",
		"settings file path (default ~/.config/launchersync/settings.ini)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")

	rootCmd.AddCommand(newSettingsCmd())
	rootCmd.AddCommand(newPropertiesCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("launchersync %s (built %s)\n", Version, BuildTime)
		},
	}
}

// openStore opens the settings file selected by the global --settings flag.
func openStore() (*settings.FileStore, error) {
	fs, err := settings.OpenFileStore(storePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings store: %w", err)
	}
	return fs, nil
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
