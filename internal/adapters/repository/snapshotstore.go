package repository

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/bgexplorer/internal/domain/boardgame"
	"github.com/okian/bgexplorer/internal/domain/wrangle"
	"github.com/okian/bgexplorer/pkg/logger"
	"github.com/okian/bgexplorer/pkg/metrics"
)

// SnapshotStore keeps the current snapshot behind an atomic pointer so
// readers never block. Loads are serialized and build the next snapshot
// off to the side before publishing it.
type SnapshotStore struct {
	loader Loader
	source string

	reloadInterval time.Duration
	logger         logger.Logger

	loadMu   sync.Mutex
	snapshot atomic.Pointer[Snapshot]

	wg       sync.WaitGroup
	stopOnce sync.Once
	stopChan chan struct{}
}

var _ Store = (*SnapshotStore)(nil)

// NewSnapshotStore creates a store reading source through loader. Nothing
// is loaded until Reload or Start is called.
func NewSnapshotStore(loader Loader, source string, opts ...Option) *SnapshotStore {
	s := &SnapshotStore{
		loader:   loader,
		source:   source,
		stopChan: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start performs the initial load and, when a reload interval is set,
// starts the background reloader. It returns the initial load error.
func (s *SnapshotStore) Start(ctx context.Context) error {
	if _, err := s.Reload(ctx); err != nil {
		return err
	}
	if s.reloadInterval > 0 {
		s.startPeriodicReload(ctx)
	}
	return nil
}

func (s *SnapshotStore) startPeriodicReload(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.reloadInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				if _, err := s.Reload(ctx); err != nil && s.logger != nil {
					s.logger.Warn(ctx, "dataset reload failed, keeping previous snapshot", logger.Error(err))
				}
			}
		}
	}()
}

// Close stops the background reloader.
func (s *SnapshotStore) Close() error {
	s.stopOnce.Do(func() { close(s.stopChan) })
	s.wg.Wait()
	return nil
}

// Current implements Store.Current.
func (s *SnapshotStore) Current() (*Snapshot, error) {
	snap := s.snapshot.Load()
	if snap == nil {
		return nil, ErrNotLoaded
	}
	return snap, nil
}

// Reload implements Store.Reload.
func (s *SnapshotStore) Reload(ctx context.Context) (*Snapshot, error) {
	if s.loader == nil || s.source == "" {
		return nil, ErrNoSource
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	start := time.Now()
	table, stats, err := s.loader.Load(ctx, s.source)
	ms := float64(time.Since(start).Microseconds()) / 1000
	if err != nil {
		metrics.RecordDatasetLoad(string(stats.Kind), "error", ms)
		metrics.RecordErrorByComponent("repository", "load_failed")
		return nil, err
	}
	metrics.RecordDatasetLoad(string(stats.Kind), "ok", ms)
	for reason, n := range stats.Dropped {
		metrics.RecordDatasetDropped(reason, n)
	}

	snap, err := buildSnapshot(table)
	if err != nil {
		return nil, err
	}
	snap.Stats = stats
	s.publish(snap)

	if s.logger != nil {
		s.logger.Info(ctx, "dataset loaded",
			logger.String("source", stats.Source),
			logger.String("kind", string(stats.Kind)),
			logger.Int("read", stats.Read),
			logger.Int("kept", stats.Kept),
			logger.Any("dropped", stats.Dropped),
			logger.String("version", snap.Version()),
			logger.Duration("took", time.Since(start)),
		)
	}
	return snap, nil
}

// Publish installs table as the current snapshot without reading the
// source. It is used for in-memory datasets.
func (s *SnapshotStore) Publish(table *boardgame.Table) (*Snapshot, error) {
	snap, err := buildSnapshot(table)
	if err != nil {
		return nil, err
	}
	snap.Stats.Source = table.Source()
	snap.Stats.Read = table.Len()
	snap.Stats.Kept = table.Len()

	s.loadMu.Lock()
	s.publish(snap)
	s.loadMu.Unlock()
	return snap, nil
}

func (s *SnapshotStore) publish(snap *Snapshot) {
	s.snapshot.Store(snap)

	metrics.UpdateDatasetRows(snap.Table.Len())
	for d, vals := range snap.Distinct {
		metrics.UpdateDatasetDistinctTags(string(d), len(vals))
	}
	metrics.UpdateDatasetLastLoadUnix(float64(snap.Table.LoadedAt().Unix()))
}

func buildSnapshot(table *boardgame.Table) (*Snapshot, error) {
	if table == nil {
		return nil, fmt.Errorf("%w: nil table", ErrNotLoaded)
	}
	snap := &Snapshot{
		Table:    table,
		Distinct: make(map[boardgame.Dimension][]string, len(boardgame.All())),
	}
	for _, d := range boardgame.All() {
		vals, err := wrangle.DistinctValues(table, d)
		if err != nil {
			return nil, err
		}
		snap.Distinct[d] = vals
	}
	return snap, nil
}
