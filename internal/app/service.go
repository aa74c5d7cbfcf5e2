// Package service provides the query service behind the HTTP API and the
// CLI. It owns the dataset snapshot store and caches query results per
// snapshot version.
package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/okian/bgexplorer/internal/adapters/dataset"
	"github.com/okian/bgexplorer/internal/adapters/repository"
	"github.com/okian/bgexplorer/internal/domain/boardgame"
	"github.com/okian/bgexplorer/internal/domain/wrangle"
	"github.com/okian/bgexplorer/pkg/logger"
	"github.com/okian/bgexplorer/pkg/metrics"
)

// Service answers dataset queries. Results may be shared between callers
// through the cache and must not be modified.
type Service struct {
	mu sync.RWMutex

	// Core components
	store *repository.SnapshotStore
	cache *lru.Cache[string, any]

	// Configuration
	source         string
	datasetTable   string
	minYear        int
	minUsersRated  int
	table          *boardgame.Table
	topK           int
	filterLimit    int
	maxFilterLimit int
	cacheSize      int
	searchLimit    int
	reloadInterval time.Duration

	// State
	started bool

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		source:         "data/board_game.csv",
		datasetTable:   "board_games",
		minYear:        1950,
		minUsersRated:  50,
		topK:           wrangle.DefaultTopK,
		filterLimit:    wrangle.DefaultFilterLimit,
		maxFilterLimit: 100,
		cacheSize:      1024,
		searchLimit:    wrangle.DefaultSearchLimit,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the dataset and starts the background reloader if one is
// configured.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting explorer service...")

	if s.cacheSize > 0 {
		cache, err := lru.New[string, any](s.cacheSize)
		if err != nil {
			return fmt.Errorf("create query cache: %w", err)
		}
		s.cache = cache
	}

	loader := dataset.New(
		dataset.WithTable(s.datasetTable),
		dataset.WithMinYear(s.minYear),
		dataset.WithMinUsersRated(s.minUsersRated),
	)
	// An in-memory table has no source to reload from.
	source := s.source
	storeOpts := []repository.Option{repository.WithLogger(s.logger.Named("repository"))}
	if s.table != nil {
		source = ""
	} else {
		storeOpts = append(storeOpts, repository.WithReloadInterval(s.reloadInterval))
	}
	s.store = repository.NewSnapshotStore(loader, source, storeOpts...)

	if s.table != nil {
		if _, err := s.store.Publish(s.table); err != nil {
			return err
		}
	} else if err := s.store.Start(ctx); err != nil {
		s.logger.Error(ctx, "initial dataset load failed",
			logger.String("source", s.source),
			logger.Error(err),
		)
		return err
	}

	s.started = true
	snap, _ := s.store.Current()
	s.logger.Info(ctx, "explorer service started",
		logger.Int("games", snap.Table.Len()),
		logger.String("version", snap.Version()),
		logger.Int("cacheSize", s.cacheSize),
		logger.Duration("reloadInterval", s.reloadInterval),
	)

	return nil
}

// Stop stops the background reloader and drops cached results.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping explorer service...")

	if s.store != nil {
		_ = s.store.Close()
	}
	if s.cache != nil {
		s.cache.Purge()
		metrics.UpdateCacheEntries(0)
	}

	s.started = false
	s.logger.Info(context.Background(), "explorer service stopped")
}

// Reload re-reads the dataset source. Cached results of the previous
// version become unreachable and age out of the cache.
func (s *Service) Reload(ctx context.Context) error {
	s.mu.RLock()
	store, started := s.store, s.started
	s.mu.RUnlock()
	if !started {
		return ErrNotStarted
	}
	_, err := store.Reload(ctx)
	return err
}

// Snapshot returns the active dataset snapshot.
func (s *Service) Snapshot() (*repository.Snapshot, error) {
	s.mu.RLock()
	store, started := s.store, s.started
	s.mu.RUnlock()
	if !started {
		return nil, ErrNotStarted
	}
	return store.Current()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"source":         s.source,
		"cacheSize":      s.cacheSize,
		"topK":           s.topK,
		"filterLimit":    s.filterLimit,
		"maxFilterLimit": s.maxFilterLimit,
	}

	if s.started {
		if snap, err := s.store.Current(); err == nil {
			stats["games"] = snap.Table.Len()
			stats["version"] = snap.Version()
			stats["loadedAt"] = snap.Table.LoadedAt().UTC().Format(time.RFC3339)
			stats["dropped"] = snap.Stats.Dropped
			distinct := make(map[string]int, len(snap.Distinct))
			for d, vals := range snap.Distinct {
				distinct[string(d)] = len(vals)
			}
			stats["distinct"] = distinct
		}
		if s.cache != nil {
			stats["cacheEntries"] = s.cache.Len()
			metrics.UpdateCacheEntries(s.cache.Len())
		}
	}

	return stats
}

// query runs fn against the current snapshot, caching its result under op,
// the snapshot version and key. count reports the result size for metrics.
func query[T any](ctx context.Context, s *Service, op, key string, fn func(*repository.Snapshot) (T, error), count func(T) int) (T, error) {
	var zero T
	start := time.Now()

	snap, err := s.Snapshot()
	if err != nil {
		return zero, err
	}

	cacheKey := op + "|" + snap.Version() + "|" + key
	if s.cache != nil {
		if v, ok := s.cache.Get(cacheKey); ok {
			metrics.RecordCacheHit(op)
			return v.(T), nil
		}
		metrics.RecordCacheMiss(op)
	}

	out, err := fn(snap)
	ms := float64(time.Since(start).Microseconds()) / 1000
	if err != nil {
		metrics.RecordQuery(op, "error", ms, 0)
		s.logger.Debug(ctx, "query failed", logger.String("op", op), logger.String("params", key), logger.Error(err))
		return zero, err
	}

	n := count(out)
	outcome := "ok"
	if n == 0 {
		outcome = "empty"
	}
	metrics.RecordQuery(op, outcome, ms, n)
	if s.cache != nil {
		s.cache.Add(cacheKey, out)
	}
	return out, nil
}

func lenOf[E any](v []E) int { return len(v) }

// setKey renders a selection independent of order.
func setKey(values []string) string {
	v := slices.Clone(values)
	slices.Sort(v)
	return strings.Join(slices.Compact(v), "\x1f")
}

// listKey renders a selection where order matters.
func listKey(values []string) string {
	return strings.Join(values, "\x1f")
}
