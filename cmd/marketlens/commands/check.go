package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// checkCmd verifies connectivity to the backing services.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check database and Redis connectivity",
	Long: `Connects to PostgreSQL and Redis with the current configuration and
reports health and pool statistics.

Example:
  go run ./cmd/marketlens check`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	status, err := app.db.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("database health check: %w", err)
	}
	fmt.Printf("PostgreSQL: healthy (response %s, conns %d/%d)\n",
		status.ResponseTime, status.Stats.TotalConns, status.Stats.MaxConns)

	if !app.redis.Enabled() {
		fmt.Println("Redis:      disabled")
		return nil
	}
	if err := app.redis.Redis().Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	fmt.Println("Redis:      healthy")
	return nil
}
