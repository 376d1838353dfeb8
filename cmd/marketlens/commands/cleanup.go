package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ivalero/marketlens/internal/catalog"
	"github.com/ivalero/marketlens/internal/store"
)

// cleanupCmd purges superseded fundamentals snapshots.
var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Purge superseded fundamentals snapshots",
	Long: `Deletes every fundamentals row that is not the most recent for
its ticker, across all markets (or one with --market). The latest
snapshot per ticker is always kept.

Example:
  go run ./cmd/marketlens cleanup
  go run ./cmd/marketlens cleanup --market nasdaq25`,
	RunE: runCleanup,
}

var cleanupMarket string

func init() {
	rootCmd.AddCommand(cleanupCmd)
	cleanupCmd.Flags().StringVar(&cleanupMarket, "market", "", "clean a single market")
}

func runCleanup(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	markets := catalog.Markets()
	if cleanupMarket != "" {
		market, ok := catalog.ByID(cleanupMarket)
		if !ok {
			return fmt.Errorf("unknown market: %s", cleanupMarket)
		}
		markets = []catalog.Market{market}
	}

	var total int64
	for _, market := range markets {
		deleted, err := app.stores[market.ID].PurgeStaleFundamentals(ctx)
		if errors.Is(err, store.ErrNoSchema) {
			fmt.Printf("%-14s (no schema)\n", market.ID)
			continue
		}
		if err != nil {
			return fmt.Errorf("purge %s: %w", market.ID, err)
		}
		fmt.Printf("%-14s deleted %d rows\n", market.ID, deleted)
		total += deleted
	}
	fmt.Printf("Total: %d rows deleted\n", total)
	return nil
}
