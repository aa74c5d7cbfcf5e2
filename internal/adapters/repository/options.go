package repository

import (
	"time"

	"github.com/okian/bgexplorer/pkg/logger"
)

// Option applies a configuration option to the SnapshotStore.
type Option func(*SnapshotStore)

// WithReloadInterval enables periodic background reloads.
func WithReloadInterval(interval time.Duration) Option {
	return func(s *SnapshotStore) {
		if interval > 0 {
			s.reloadInterval = interval
		}
	}
}

// WithLogger sets the logger used for reload reports.
func WithLogger(l logger.Logger) Option {
	return func(s *SnapshotStore) {
		if l != nil {
			s.logger = l
		}
	}
}
