package wrangle

import (
	"fmt"
	"math"

	"github.com/okian/bgexplorer/internal/domain/boardgame"
)

// Column names a projectable game field.
type Column string

const (
	ColName          Column = "name"
	ColYearPublished Column = "year_published"
	ColAverageRating Column = "average_rating"
	ColUsersRated    Column = "users_rated"
	ColCategory      Column = "category"
	ColMechanic      Column = "mechanic"
	ColPublisher     Column = "publisher"
	ColMinPlayers    Column = "min_players"
	ColMaxPlayers    Column = "max_players"
	ColMinPlaytime   Column = "min_playtime"
	ColMaxPlaytime   Column = "max_playtime"
	ColPlayingTime   Column = "playing_time"
	ColX             Column = "x"
	ColY             Column = "y"
	ColZ             Column = "z"
)

// TagSeparator joins tag sets in projected cells.
const TagSeparator = ", "

// ColumnSpec selects a column and the header it is shown under. An empty
// Header falls back to the column name.
type ColumnSpec struct {
	Column Column `json:"column"`
	Header string `json:"header"`
}

// DashboardColumns is the column layout of the game table view.
func DashboardColumns() []ColumnSpec {
	return []ColumnSpec{
		{ColName, "Game Name"},
		{ColMinPlayers, "Min Players"},
		{ColMaxPlayers, "Max Players"},
		{ColMinPlaytime, "Min Playtime"},
		{ColMaxPlaytime, "Max Playtime"},
		{ColYearPublished, "Year Published"},
		{ColCategory, "Categories"},
		{ColMechanic, "Mechanics"},
		{ColPublisher, "Publishers"},
		{ColAverageRating, "Avg. User Rating"},
		{ColUsersRated, "No. Ratings"},
	}
}

// Display is a projected table ready for rendering. Rows[i][j] is the
// value of Columns[j] shown under Headers[j]: a string, an int, a float64
// or nil for an absent rating.
type Display struct {
	Columns []Column `json:"columns"`
	Headers []string `json:"headers"`
	Rows    [][]any  `json:"rows"`
}

// Records returns the rows keyed by header.
func (d Display) Records() []map[string]any {
	out := make([]map[string]any, len(d.Rows))
	for i, row := range d.Rows {
		rec := make(map[string]any, len(row))
		for j, v := range row {
			rec[d.Headers[j]] = v
		}
		out[i] = rec
	}
	return out
}

// Project maps games onto the columns of spec, one row per game in input
// order. Tag sets are joined with TagSeparator in dataset order and ratings
// are rounded to two decimals. Headers must be unique.
func Project(games []boardgame.Game, spec []ColumnSpec) (Display, error) {
	d := Display{
		Columns: make([]Column, len(spec)),
		Headers: make([]string, len(spec)),
		Rows:    make([][]any, 0, len(games)),
	}
	seen := make(map[string]Column, len(spec))
	for i, c := range spec {
		if !c.Column.valid() {
			return Display{}, fmt.Errorf("%w: %q", ErrUnknownColumn, string(c.Column))
		}
		header := c.Header
		if header == "" {
			header = string(c.Column)
		}
		if prev, dup := seen[header]; dup {
			return Display{}, fmt.Errorf("%w: %q used for %s and %s", ErrDuplicateHeader, header, prev, c.Column)
		}
		seen[header] = c.Column
		d.Columns[i] = c.Column
		d.Headers[i] = header
	}

	for _, g := range games {
		row := make([]any, len(d.Columns))
		for j, c := range d.Columns {
			row[j] = c.value(g)
		}
		d.Rows = append(d.Rows, row)
	}
	return d, nil
}

func (c Column) valid() bool {
	switch c {
	case ColName, ColYearPublished, ColAverageRating, ColUsersRated,
		ColCategory, ColMechanic, ColPublisher,
		ColMinPlayers, ColMaxPlayers, ColMinPlaytime, ColMaxPlaytime, ColPlayingTime,
		ColX, ColY, ColZ:
		return true
	}
	return false
}

func (c Column) value(g boardgame.Game) any {
	switch c {
	case ColName:
		return g.Name
	case ColYearPublished:
		return g.YearPublished
	case ColAverageRating:
		if !g.HasRating() {
			return nil
		}
		return round2(g.AverageRating)
	case ColUsersRated:
		return g.UsersRated
	case ColCategory:
		return g.Category.Join(TagSeparator)
	case ColMechanic:
		return g.Mechanic.Join(TagSeparator)
	case ColPublisher:
		return g.Publisher.Join(TagSeparator)
	case ColMinPlayers:
		return g.MinPlayers
	case ColMaxPlayers:
		return g.MaxPlayers
	case ColMinPlaytime:
		return g.MinPlaytime
	case ColMaxPlaytime:
		return g.MaxPlaytime
	case ColPlayingTime:
		return g.PlayingTime
	case ColX:
		return g.X
	case ColY:
		return g.Y
	case ColZ:
		return g.Z
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
