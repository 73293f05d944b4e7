// internal/app/system/workers/usageretention.go
package workers

import (
	"context"
	"sync"
	"time"

	usagestore "github.com/baudien321/promptpro/internal/app/store/usage"
	"go.uber.org/zap"
)

// UsageRetention is a background worker that prunes usage events older
// than the retention window. The analytics endpoints only aggregate
// recent windows, so old events are dead weight.
type UsageRetention struct {
	usage     *usagestore.Store
	log       *zap.Logger
	interval  time.Duration
	retention time.Duration
	stopCh    chan struct{}
	wg        sync.WaitGroup
}

// NewUsageRetention creates a new usage retention worker.
//
// Parameters:
//   - usage: the usage events store
//   - logger: zap logger for logging
//   - interval: how often to run pruning (e.g., 1 hour)
//   - retention: how long events are kept (e.g., 90 days)
func NewUsageRetention(usage *usagestore.Store, logger *zap.Logger, interval, retention time.Duration) *UsageRetention {
	return &UsageRetention{
		usage:     usage,
		log:       logger,
		interval:  interval,
		retention: retention,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the background pruning loop.
func (w *UsageRetention) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("usage retention worker started",
		zap.Duration("interval", w.interval),
		zap.Duration("retention", w.retention))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *UsageRetention) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("usage retention worker stopped")
}

func (w *UsageRetention) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.prune()
		}
	}
}

func (w *UsageRetention) prune() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().UTC().Add(-w.retention)
	count, err := w.usage.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		w.log.Error("failed to prune usage events", zap.Error(err))
		return
	}

	if count > 0 {
		w.log.Info("pruned usage events", zap.Int64("count", count))
	}
}
