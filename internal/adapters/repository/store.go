// Package repository holds the active dataset snapshot and swaps it
// atomically on reload.
package repository

import (
	"context"
	"slices"

	"github.com/okian/bgexplorer/internal/adapters/dataset"
	"github.com/okian/bgexplorer/internal/domain/boardgame"
)

// Loader reads a dataset source into a table. *dataset.Loader satisfies it.
type Loader interface {
	Load(ctx context.Context, source string) (*boardgame.Table, dataset.LoadStats, error)
}

// Snapshot is one immutable version of the dataset together with indexes
// derived from it.
type Snapshot struct {
	Table    *boardgame.Table
	Distinct map[boardgame.Dimension][]string
	Stats    dataset.LoadStats
}

// Version identifies the snapshot.
func (s *Snapshot) Version() string { return s.Table.Version() }

// Options returns a copy of the sorted distinct values of d.
func (s *Snapshot) Options(d boardgame.Dimension) ([]string, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return slices.Clone(s.Distinct[d]), nil
}

// Store provides access to the active snapshot.
type Store interface {
	// Current returns the active snapshot or ErrNotLoaded.
	Current() (*Snapshot, error)

	// Reload reads the source again and publishes the result. On failure
	// the previous snapshot stays active.
	Reload(ctx context.Context) (*Snapshot, error)
}
