package service

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Tables whose changes are announced on the catalog_changes channel.
const (
	catalogChangesChannel = "catalog_changes"
	tableAds              = "ads"
	tableBlockedAds       = "blocked_ads"
)

// CacheWorker listens for PostgreSQL NOTIFY on catalog_changes and drops
// the matching Redis keys, so writes made through any instance are seen by
// all of them. Notifications are batched per window.
type CacheWorker struct {
	pool   *pgxpool.Pool
	cache  *CacheService
	window time.Duration
	log    zerolog.Logger

	mu      sync.Mutex
	pending map[string]struct{} // table names waiting for invalidation
}

func NewCacheWorker(pool *pgxpool.Pool, cache *CacheService, log zerolog.Logger) *CacheWorker {
	return &CacheWorker{
		pool:    pool,
		cache:   cache,
		window:  time.Second,
		log:     log.With().Str("component", "cache-worker").Logger(),
		pending: make(map[string]struct{}),
	}
}

// Start listens until ctx is cancelled, reconnecting after errors.
func (w *CacheWorker) Start(ctx context.Context) {
	w.log.Info().Dur("window", w.window).Msg("starting")

	for {
		if err := w.listenLoop(ctx); err != nil {
			if ctx.Err() != nil {
				w.log.Info().Msg("stopping (context cancelled)")
				return
			}
			w.log.Error().Err(err).Msg("listen error, reconnecting in 5s")
			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
				w.log.Info().Msg("stopping (context cancelled)")
				return
			}
		}
	}
}

func (w *CacheWorker) listenLoop(ctx context.Context) error {
	conn, err := w.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+catalogChangesChannel); err != nil {
		return err
	}
	w.log.Info().Str("channel", catalogChangesChannel).Msg("listening")

	flushCtx, flushCancel := context.WithCancel(ctx)
	defer flushCancel()
	go w.flushLoop(flushCtx)

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		w.Enqueue(n.Payload)
	}
}

// Enqueue records a changed table for the next flush.
func (w *CacheWorker) Enqueue(table string) {
	if table == "" {
		return
	}
	w.mu.Lock()
	w.pending[table] = struct{}{}
	w.mu.Unlock()
}

func (w *CacheWorker) flushLoop(ctx context.Context) {
	ticker := time.NewTicker(w.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Flush(ctx)
		case <-ctx.Done():
			w.Flush(context.Background())
			return
		}
	}
}

// Flush drains the pending set and invalidates the matching cache entries.
// It returns the number of entries invalidated.
func (w *CacheWorker) Flush(ctx context.Context) int {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return 0
	}
	batch := w.pending
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	invalidated := 0
	for table := range batch {
		var err error
		switch table {
		case tableAds:
			err = w.cache.InvalidateCatalog(ctx)
		case tableBlockedAds:
			err = w.cache.InvalidateGlobalBlocklist(ctx)
		default:
			w.log.Debug().Str("table", table).Msg("ignoring notification")
			continue
		}
		if err != nil {
			w.log.Warn().Err(err).Str("table", table).Msg("cache invalidate error")
			continue
		}
		invalidated++
	}
	return invalidated
}
