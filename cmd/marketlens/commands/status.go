package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ivalero/marketlens/internal/catalog"
)

// statusCmd prints per-market freshness and store stats.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show per-market store status",
	Long: `Prints, for every market, its cache freshness and store row
counts: companies, fundamentals snapshots, price bars and alerts.

Example:
  go run ./cmd/marketlens status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fmt.Printf("%-14s %-9s %-10s %10s %13s %11s %8s\n",
		"MARKET", "FRESHNESS", "AGE", "COMPANIES", "FUNDAMENTALS", "PRICE BARS", "ALERTS")

	for _, market := range catalog.Markets() {
		st := app.stores[market.ID]
		stats, err := st.Stats(ctx)
		if err != nil {
			fmt.Printf("%-14s error: %v\n", market.ID, err)
			continue
		}
		if !stats.SchemaExists {
			fmt.Printf("%-14s %-9s %-10s (no schema)\n", market.ID, "unknown", "-")
			continue
		}

		state, meta, err := app.controller.Freshness(ctx, market.ID)
		age := "-"
		if err == nil && !meta.LastRefresh.IsZero() {
			age = time.Since(meta.LastRefresh).Round(time.Minute).String()
		}

		fmt.Printf("%-14s %-9s %-10s %10d %13d %11d %8d\n",
			market.ID, string(state), age,
			stats.Companies, stats.FundamentalsRows, stats.PriceBars, stats.Alerts)
	}
	return nil
}
