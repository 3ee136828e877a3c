package app

import (
	"context"
	"fmt"
	"time"

	"github.com/turrs/bank-skd/internal/domain/tryout"
	"github.com/turrs/bank-skd/internal/pkg/config"
	"github.com/turrs/bank-skd/internal/pkg/logger"
)

// SessionExpiryWorker periodically submits tryouts whose deadline has passed
type SessionExpiryWorker struct {
	tryouts   tryout.TryoutService
	interval  time.Duration
	batchSize int
	logger    logger.Logger
}

// NewSessionExpiryWorker creates a worker scanning at the configured interval
func NewSessionExpiryWorker(tryouts tryout.TryoutService, settings config.TryoutSettings, logger logger.Logger) (*SessionExpiryWorker, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &SessionExpiryWorker{
		tryouts:   tryouts,
		interval:  settings.ExpiryScanInterval,
		batchSize: settings.ExpiryBatchSize,
		logger:    logger,
	}, nil
}

// Run scans until ctx is cancelled
func (w *SessionExpiryWorker) Run(ctx context.Context) {
	w.logger.Info(fmt.Sprintf("Session expiry worker started (interval %s)", w.interval))

	w.sweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Session expiry worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

// sweep drains expired sessions batch by batch
func (w *SessionExpiryWorker) sweep(ctx context.Context) int {
	total := 0
	for ctx.Err() == nil {
		n, err := w.tryouts.FinalizeExpired(ctx, w.batchSize)
		if err != nil {
			if ctx.Err() == nil {
				w.logger.Error(fmt.Sprintf("Failed to submit expired tryouts: %v", err))
			}
			break
		}
		total += n
		if n < w.batchSize {
			break
		}
	}
	if total > 0 {
		w.logger.Info(fmt.Sprintf("Auto submitted %d expired tryouts", total))
	}
	return total
}
