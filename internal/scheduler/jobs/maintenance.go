package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/ivalero/marketlens/internal/store"
	"github.com/ivalero/marketlens/pkg/logger"
)

// MaintenanceJob purges superseded fundamentals snapshots weekly so
// the append-only tables stay bounded.
type MaintenanceJob struct {
	stores map[string]*store.Store
	logger *logger.Logger
}

// NewMaintenanceJob wires the weekly cleanup over all market stores.
func NewMaintenanceJob(stores map[string]*store.Store, log *logger.Logger) *MaintenanceJob {
	return &MaintenanceJob{stores: stores, logger: log}
}

func (j *MaintenanceJob) Name() string { return "store_maintenance" }

// Schedule runs Sunday 03:00.
func (j *MaintenanceJob) Schedule() string { return "0 0 3 * * 0" }

// Run purges every market store, continuing past per-market failures.
func (j *MaintenanceJob) Run(ctx context.Context) error {
	var firstErr error
	for marketID, st := range j.stores {
		deleted, err := st.PurgeStaleFundamentals(ctx)
		if errors.Is(err, store.ErrNoSchema) {
			continue
		}
		if err != nil {
			j.logger.WithError(err).WithField("market", marketID).Error("Purge failed")
			if firstErr == nil {
				firstErr = fmt.Errorf("purge %s: %w", marketID, err)
			}
			continue
		}
		j.logger.WithFields(map[string]interface{}{
			"market":  marketID,
			"deleted": deleted,
		}).Info("Purged stale fundamentals")
	}
	return firstErr
}
