// Package wrangle implements the read-only queries behind every dashboard
// view: group expansion, ranking, filtering and projection. Every function
// takes the table explicitly and returns new values; nothing here mutates
// the table or keeps state between calls.
package wrangle

import (
	"slices"

	"github.com/okian/bgexplorer/internal/domain/boardgame"
)

// NoGroup marks background rows that matched no selected value.
const NoGroup = "none"

// GroupRow pairs a game with one group label. A game holding several
// selected tags yields one row per tag.
type GroupRow struct {
	Game  boardgame.Game `json:"game"`
	Group string         `json:"group"`
}

// ExpandGroups fans each game out into one row per selected tag it holds.
// Games holding none of the selected tags are kept once as NoGroup rows so
// they can be drawn as background. With an empty selection every game is
// returned once as NoGroup.
func ExpandGroups(t *boardgame.Table, d boardgame.Dimension, selected []string) ([]GroupRow, error) {
	return expand(t, d, selected, true)
}

// MatchGroups is ExpandGroups without background rows: only matched games
// are returned, and an empty selection returns nothing.
func MatchGroups(t *boardgame.Table, d boardgame.Dimension, selected []string) ([]GroupRow, error) {
	return expand(t, d, selected, false)
}

func expand(t *boardgame.Table, d boardgame.Dimension, selected []string, background bool) ([]GroupRow, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	want := selection(selected)

	rows := make([]GroupRow, 0, t.Len())
	t.Range(func(_ int, g boardgame.Game) bool {
		matched := false
		if len(want) > 0 {
			// Rows follow the game's own tag order, not the selection order.
			for _, tag := range g.Tags(d) {
				if _, ok := want[tag]; ok {
					rows = append(rows, GroupRow{Game: g, Group: tag})
					matched = true
				}
			}
		}
		if !matched && background {
			rows = append(rows, GroupRow{Game: g, Group: NoGroup})
		}
		return true
	})
	return rows, nil
}

// selection turns the selected values into a set, ignoring empty strings.
func selection(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

// intersects reports whether tags holds any value of want.
func intersects(tags boardgame.TagSet, want map[string]struct{}) bool {
	for _, tag := range tags {
		if _, ok := want[tag]; ok {
			return true
		}
	}
	return false
}

// DistinctValues returns every tag used along d, deduplicated and sorted
// in byte order.
func DistinctValues(t *boardgame.Table, d boardgame.Dimension) ([]string, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	t.Range(func(_ int, g boardgame.Game) bool {
		for _, tag := range g.Tags(d) {
			seen[tag] = struct{}{}
		}
		return true
	})

	out := make([]string, 0, len(seen))
	for tag := range seen {
		out = append(out, tag)
	}
	slices.Sort(out)
	return out, nil
}

// GamesFor lists the distinct names of games holding any selected value
// along d, best rated first. An empty selection lists every game.
func GamesFor(t *boardgame.Table, d boardgame.Dimension, selected []string) ([]string, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	var f Filter
	f.set(d, selected)
	games := filterSorted(t, f)

	names := make([]string, 0, len(games))
	seen := make(map[string]struct{}, len(games))
	for _, g := range games {
		if _, dup := seen[g.Name]; dup {
			continue
		}
		seen[g.Name] = struct{}{}
		names = append(names, g.Name)
	}
	return names, nil
}

// Highlight returns the games named exactly name, in table order.
func Highlight(t *boardgame.Table, name string) []boardgame.Game {
	out := []boardgame.Game{}
	if name == "" {
		return out
	}
	t.Range(func(_ int, g boardgame.Game) bool {
		if g.Name == name {
			out = append(out, g)
		}
		return true
	})
	return out
}
