package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/logger"
)

// Reloader refreshes the catalog.
type Reloader interface {
	Reload(ctx context.Context) error
}

// CatalogReloader handles periodic and manual reloading of the catalog
type CatalogReloader struct {
	catalog       Reloader
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewCatalogReloader creates a new catalog reloader. interval <= 0 disables
// the periodic reload, manual triggers still work.
func NewCatalogReloader(
	catalog Reloader,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *CatalogReloader {
	return &CatalogReloader{
		catalog:       catalog,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the catalog once, then keeps reloading in the background. A
// failed initial load is logged: the board works without a catalog.
func (cr *CatalogReloader) Start(ctx context.Context) {
	cr.reload(ctx, "initial")

	var tick <-chan time.Time
	var ticker *time.Ticker
	if cr.interval > 0 {
		ticker = time.NewTicker(cr.interval)
		tick = ticker.C
	}

	go func() {
		if ticker != nil {
			defer ticker.Stop()
		}
		for {
			select {
			case <-tick:
				cr.reload(ctx, "periodic")
			case <-cr.manualTrigger:
				cr.logger.Info("manual reload triggered")
				cr.reload(ctx, "manual")
			case <-cr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the reloader
func (cr *CatalogReloader) Stop() {
	close(cr.stopCh)
}

func (cr *CatalogReloader) reload(ctx context.Context, reason string) {
	if err := cr.catalog.Reload(ctx); err != nil {
		cr.logger.Error("failed to reload catalog",
			logger.String("reason", reason),
			logger.Error(err))
	}
}
