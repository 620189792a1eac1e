package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// CatalogWorker periodically re-warms the catalog cache so serving rarely
// pays for a cold read.
type CatalogWorker struct {
	catalog  *CatalogService
	interval time.Duration
	log      zerolog.Logger
	stopCh   chan struct{}
}

func NewCatalogWorker(catalog *CatalogService, interval time.Duration, log zerolog.Logger) *CatalogWorker {
	return &CatalogWorker{
		catalog:  catalog,
		interval: interval,
		log:      log.With().Str("component", "catalog-worker").Logger(),
		stopCh:   make(chan struct{}),
	}
}

// Start runs one refresh immediately, then every interval.
func (w *CatalogWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("starting")

	w.tick(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick(ctx)
		case <-ctx.Done():
			w.log.Info().Msg("stopping (context cancelled)")
			return
		case <-w.stopCh:
			w.log.Info().Msg("stopping (stop signal)")
			return
		}
	}
}

// Stop signals the worker to stop.
func (w *CatalogWorker) Stop() {
	close(w.stopCh)
}

func (w *CatalogWorker) tick(ctx context.Context) {
	start := time.Now()
	n, err := w.catalog.Refresh(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("refresh failed")
		return
	}
	w.log.Debug().Int("ads", n).Dur("took", time.Since(start)).Msg("catalog refreshed")
}
