package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ivalero/marketlens/internal/refresh"
)

// refreshCmd runs refresh cycles from the command line.
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh market data",
	Long: `Fetches, validates, scores and persists fundamentals and price
history. Without --market every market is refreshed in catalog order.
Markets whose data is younger than REFRESH_MAX_AGE are skipped unless
--force is given.

Example:
  go run ./cmd/marketlens refresh
  go run ./cmd/marketlens refresh --market ibex35 --force`,
	RunE: runRefresh,
}

var (
	refreshMarket string
	refreshForce  bool
)

func init() {
	rootCmd.AddCommand(refreshCmd)
	refreshCmd.Flags().StringVar(&refreshMarket, "market", "", "refresh a single market")
	refreshCmd.Flags().BoolVar(&refreshForce, "force", false, "refresh even when data is fresh")
}

func runRefresh(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	progress := func(p refresh.Progress) {
		fmt.Printf("\r[%s] %d/%d %s", p.Market, p.Processed, p.Total, p.Ticker)
	}

	if refreshMarket != "" {
		summary, err := app.controller.RefreshMarket(ctx, refreshMarket, refreshForce, progress)
		if err != nil {
			return err
		}
		fmt.Println()
		printSummary(summary)
		return nil
	}

	summaries, err := app.controller.RefreshAll(ctx, refreshForce, progress)
	fmt.Println()
	for _, s := range summaries {
		printSummary(s)
	}
	return err
}

func printSummary(s refresh.Summary) {
	if s.Skipped {
		fmt.Printf("%-14s fresh, skipped\n", s.Market)
		return
	}
	fmt.Printf("%-14s processed=%d failed=%d purged=%d in %s\n",
		s.Market, s.Processed, s.Failed, s.Purged, s.Duration.Round(time.Millisecond))
}
