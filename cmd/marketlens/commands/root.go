package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	verbose    bool
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "marketlens",
	Short: "Multi-market equity opportunity scanner",
	Long: `MarketLens scans IBEX 35, NASDAQ, S&P 500 and Spanish mid-cap
equities, corrects raw provider data, scores every stock 0-100 and
keeps a per-market history of fundamentals, prices and alerts.

Usage:
  go run ./cmd/marketlens [command]

Examples:
  go run ./cmd/marketlens api
  go run ./cmd/marketlens refresh --market ibex35
  go run ./cmd/marketlens status
  go run ./cmd/marketlens cleanup`,
}

// Execute runs the CLI. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
