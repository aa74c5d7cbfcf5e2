package service

import (
	"time"

	"github.com/okian/bgexplorer/internal/domain/boardgame"
	"github.com/okian/bgexplorer/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDatasetSource sets the CSV path, SQLite file or postgres DSN.
func WithDatasetSource(source string) Option {
	return func(s *Service) {
		if source != "" {
			s.source = source
		}
	}
}

// WithDatasetTable sets the table read from SQL sources.
func WithDatasetTable(table string) Option {
	return func(s *Service) {
		if table != "" {
			s.datasetTable = table
		}
	}
}

// WithIngestFloors sets the earliest year and the minimum number of user
// ratings a game needs to be loaded.
func WithIngestFloors(minYear, minUsersRated int) Option {
	return func(s *Service) {
		s.minYear = minYear
		s.minUsersRated = minUsersRated
	}
}

// WithTable serves a prebuilt table instead of reading a source.
func WithTable(t *boardgame.Table) Option {
	return func(s *Service) {
		s.table = t
	}
}

// WithTopK sets the default number of ranked groups.
func WithTopK(k int) Option {
	return func(s *Service) {
		if k > 0 {
			s.topK = k
		}
	}
}

// WithFilterLimits sets the default and maximum filter row counts.
func WithFilterLimits(def, maxLimit int) Option {
	return func(s *Service) {
		if def > 0 && maxLimit >= def {
			s.filterLimit = def
			s.maxFilterLimit = maxLimit
		}
	}
}

// WithQueryCacheSize sets the number of cached query results. Zero
// disables the cache.
func WithQueryCacheSize(size int) Option {
	return func(s *Service) {
		if size >= 0 {
			s.cacheSize = size
		}
	}
}

// WithNameSearchLimit caps fuzzy name search results.
func WithNameSearchLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.searchLimit = n
		}
	}
}

// WithReloadInterval enables periodic dataset reloads.
func WithReloadInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.reloadInterval = d
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
