package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/onsite-hq/onsite-backend-go/internal/domain/comptime"
)

// CompTimeJobs contains comp-time related cron jobs
type CompTimeJobs struct {
	ledger comptime.Ledger
}

// NewCompTimeJobs creates comp-time cron jobs
func NewCompTimeJobs(ledger comptime.Ledger) *CompTimeJobs {
	return &CompTimeJobs{ledger: ledger}
}

// RegisterJobs registers all comp-time related cron jobs
func (j *CompTimeJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	// Reads already filter on expires_at; the sweep keeps stored status in
	// sync with reality.
	scheduler.AddJob("sweep_expired_comp_time", interval, j.SweepExpired)
}

// SweepExpired transitions past-expiry entries to the expired status.
func (j *CompTimeJobs) SweepExpired(ctx context.Context) error {
	swept, err := j.ledger.SweepExpired(ctx, time.Now())
	if err != nil {
		return err
	}
	if swept > 0 {
		slog.Info("Expired comp-time entries swept", "count", swept)
	}
	return nil
}
