// Package jobs holds the concrete scheduled jobs.
package jobs

import (
	"context"
	"fmt"

	"github.com/ivalero/marketlens/internal/refresh"
	"github.com/ivalero/marketlens/pkg/logger"
)

// RefreshJob refreshes every market nightly, after US close.
type RefreshJob struct {
	controller *refresh.Controller
	logger     *logger.Logger
}

// NewRefreshJob wires the nightly refresh.
func NewRefreshJob(controller *refresh.Controller, log *logger.Logger) *RefreshJob {
	return &RefreshJob{controller: controller, logger: log}
}

func (j *RefreshJob) Name() string { return "market_refresh" }

// Schedule runs at 23:30 daily, after both Madrid and New York close.
func (j *RefreshJob) Schedule() string { return "0 30 23 * * *" }

// Run refreshes all markets, forcing even fresh ones so the nightly
// snapshot always reflects the closing data.
func (j *RefreshJob) Run(ctx context.Context) error {
	summaries, err := j.controller.RefreshAll(ctx, true, nil)
	if err != nil {
		return fmt.Errorf("refresh all markets: %w", err)
	}

	for _, s := range summaries {
		j.logger.WithFields(map[string]interface{}{
			"market":    s.Market,
			"processed": s.Processed,
			"failed":    s.Failed,
		}).Info("Scheduled refresh finished market")
	}
	return nil
}
