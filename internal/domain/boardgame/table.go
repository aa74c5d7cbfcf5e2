package boardgame

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Extents is the bounding box of the embedding coordinates.
type Extents struct {
	MinX float64 `json:"min_x"`
	MaxX float64 `json:"max_x"`
	MinY float64 `json:"min_y"`
	MaxY float64 `json:"max_y"`
	MinZ float64 `json:"min_z"`
	MaxZ float64 `json:"max_z"`
}

// Table is an immutable, ordered collection of games. It is safe for
// concurrent use because nothing mutates it after NewTable returns.
type Table struct {
	games    []Game
	extents  Extents
	version  string
	source   string
	loadedAt time.Time
}

// TableOption configures NewTable.
type TableOption func(*Table)

// WithSource records where the games were read from.
func WithSource(source string) TableOption {
	return func(t *Table) { t.source = source }
}

// WithLoadedAt overrides the load timestamp.
func WithLoadedAt(ts time.Time) TableOption {
	return func(t *Table) {
		if !ts.IsZero() {
			t.loadedAt = ts
		}
	}
}

// WithVersion overrides the generated snapshot version.
func WithVersion(v string) TableOption {
	return func(t *Table) {
		if v != "" {
			t.version = v
		}
	}
}

// NewTable copies games into a new Table. Tag sets are rebuilt with
// NewTagSet, so nil sets become empty and duplicates collapse.
func NewTable(games []Game, opts ...TableOption) *Table {
	t := &Table{
		games:    make([]Game, len(games)),
		loadedAt: time.Now(),
	}
	for i, g := range games {
		g.Category = NewTagSet(g.Category...)
		g.Mechanic = NewTagSet(g.Mechanic...)
		g.Publisher = NewTagSet(g.Publisher...)
		t.games[i] = g
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.version == "" {
		t.version = uuid.NewString()
	}
	t.extents = computeExtents(t.games)
	return t
}

func nonNil(s TagSet) TagSet {
	if s == nil {
		return TagSet{}
	}
	return s
}

func computeExtents(games []Game) Extents {
	if len(games) == 0 {
		return Extents{}
	}
	e := Extents{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
		MinZ: math.Inf(1), MaxZ: math.Inf(-1),
	}
	for _, g := range games {
		e.MinX, e.MaxX = math.Min(e.MinX, g.X), math.Max(e.MaxX, g.X)
		e.MinY, e.MaxY = math.Min(e.MinY, g.Y), math.Max(e.MaxY, g.Y)
		e.MinZ, e.MaxZ = math.Min(e.MinZ, g.Z), math.Max(e.MaxZ, g.Z)
	}
	return e
}

// Len returns the number of games. A nil Table is empty.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.games)
}

// At returns the i-th game. It panics if i is out of range.
func (t *Table) At(i int) Game { return t.games[i] }

// Games returns a copy of the game slice. Tag sets are shared and must be
// treated as read-only.
func (t *Table) Games() []Game {
	if t == nil {
		return []Game{}
	}
	out := make([]Game, len(t.games))
	copy(out, t.games)
	return out
}

// Range calls fn for each game in order until fn returns false.
func (t *Table) Range(fn func(i int, g Game) bool) {
	if t == nil {
		return
	}
	for i := range t.games {
		if !fn(i, t.games[i]) {
			return
		}
	}
}

// Extents returns the bounding box of x, y and z. An empty table yields
// the zero box.
func (t *Table) Extents() Extents {
	if t == nil {
		return Extents{}
	}
	return t.extents
}

// Version identifies this snapshot of the data.
func (t *Table) Version() string {
	if t == nil {
		return ""
	}
	return t.version
}

// Source names where the games came from.
func (t *Table) Source() string {
	if t == nil {
		return ""
	}
	return t.source
}

// LoadedAt is when the table was built.
func (t *Table) LoadedAt() time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.loadedAt
}
