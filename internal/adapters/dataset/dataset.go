// Package dataset reads board game records from CSV files, SQLite
// databases or PostgreSQL and normalizes them into a boardgame.Table.
package dataset

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/okian/bgexplorer/internal/domain/boardgame"
)

// Kind identifies a source format.
type Kind string

const (
	KindCSV      Kind = "csv"
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
)

// Drop reasons reported in LoadStats.Dropped.
const (
	DropEmptyName     = "empty_name"
	DropBadYear       = "bad_year"
	DropMinYear       = "min_year"
	DropMinUsersRated = "min_users_rated"
)

// DetectKind infers the source format from a path or DSN.
func DetectKind(source string) (Kind, error) {
	s := strings.TrimSpace(source)
	lower := strings.ToLower(s)
	switch {
	case s == "":
		return "", fmt.Errorf("%w: empty source", ErrUnsupportedSource)
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return KindPostgres, nil
	}
	switch strings.ToLower(filepath.Ext(s)) {
	case ".csv":
		return KindCSV, nil
	case ".db", ".sqlite", ".sqlite3":
		return KindSQLite, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedSource, source)
}

// LoadStats summarizes one load.
type LoadStats struct {
	Source   string         `json:"source"`
	Kind     Kind           `json:"kind"`
	Read     int            `json:"read"`
	Kept     int            `json:"kept"`
	Dropped  map[string]int `json:"dropped"`
	Duration time.Duration  `json:"duration"`
}

// Loader reads and normalizes datasets.
type Loader struct {
	table         string
	minYear       int
	minUsersRated int
	now           func() time.Time
}

// Option configures a Loader.
type Option func(*Loader)

// WithTable sets the table read from SQL sources.
func WithTable(name string) Option {
	return func(l *Loader) {
		if name != "" {
			l.table = name
		}
	}
}

// WithMinYear drops games published before year.
func WithMinYear(year int) Option {
	return func(l *Loader) { l.minYear = year }
}

// WithMinUsersRated drops games with fewer user ratings.
func WithMinUsersRated(n int) Option {
	return func(l *Loader) { l.minUsersRated = n }
}

// New creates a Loader. Defaults keep games from 1950 on with at least 50
// ratings, read from table board_games.
func New(opts ...Option) *Loader {
	l := &Loader{
		table:         "board_games",
		minYear:       1950,
		minUsersRated: 50,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads source and returns the normalized table.
func (l *Loader) Load(ctx context.Context, source string) (*boardgame.Table, LoadStats, error) {
	start := l.now()
	stats := LoadStats{Source: redact(source), Dropped: map[string]int{}}

	kind, err := DetectKind(source)
	if err != nil {
		return nil, stats, err
	}
	stats.Kind = kind

	var rows rowSet
	switch kind {
	case KindCSV:
		rows, err = readCSVFile(source)
	case KindSQLite:
		rows, err = l.readSQLite(ctx, source)
	case KindPostgres:
		rows, err = l.readPostgres(ctx, source)
	}
	if err != nil {
		return nil, stats, fmt.Errorf("%w: %s: %w", ErrLoad, stats.Source, err)
	}

	games, err := l.normalize(rows, &stats)
	if err != nil {
		return nil, stats, fmt.Errorf("%w: %s: %w", ErrLoad, stats.Source, err)
	}

	loadedAt := l.now()
	stats.Duration = loadedAt.Sub(start)
	return boardgame.NewTable(games,
		boardgame.WithSource(stats.Source),
		boardgame.WithLoadedAt(loadedAt),
	), stats, nil
}

// rowSet is a header plus string cells, the common shape of every source.
type rowSet struct {
	header  []string
	records [][]string
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func validTable(name string) error {
	if !identRe.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidTable, name)
	}
	return nil
}

// redact hides the password of a DSN.
func redact(source string) string {
	scheme, rest, ok := strings.Cut(source, "://")
	if !ok {
		return source
	}
	at := strings.LastIndex(rest, "@")
	if at < 0 {
		return source
	}
	userinfo, host := rest[:at], rest[at+1:]
	user, _, hasPass := strings.Cut(userinfo, ":")
	if !hasPass {
		return source
	}
	return scheme + "://" + user + ":***@" + host
}
