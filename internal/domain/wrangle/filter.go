package wrangle

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/okian/bgexplorer/internal/domain/boardgame"
)

// DefaultFilterLimit is used when Filter.Limit is not positive.
const DefaultFilterLimit = 10

// Filter selects games across dimensions. Values within one dimension are
// OR-ed, non-empty dimensions are AND-ed and empty ones impose nothing.
type Filter struct {
	Categories []string
	Mechanics  []string
	Publishers []string

	// MinRatings is the minimum users_rated, inclusive.
	MinRatings int

	// Limit caps the result. Zero or negative means DefaultFilterLimit.
	Limit int
}

// Values returns the constraint for d.
func (f Filter) Values(d boardgame.Dimension) []string {
	switch d {
	case boardgame.Category:
		return f.Categories
	case boardgame.Mechanic:
		return f.Mechanics
	case boardgame.Publisher:
		return f.Publishers
	default:
		return nil
	}
}

func (f *Filter) set(d boardgame.Dimension, values []string) {
	switch d {
	case boardgame.Category:
		f.Categories = values
	case boardgame.Mechanic:
		f.Mechanics = values
	case boardgame.Publisher:
		f.Publishers = values
	}
}

// FilterTop returns the best rated games passing f: rating descending,
// then users_rated descending, then name ascending, at most f.Limit of
// them. Unrated games sort last.
func FilterTop(t *boardgame.Table, f Filter) []boardgame.Game {
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultFilterLimit
	}
	out := filterSorted(t, f)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func filterSorted(t *boardgame.Table, f Filter) []boardgame.Game {
	type constraint struct {
		d    boardgame.Dimension
		want map[string]struct{}
	}
	var cons []constraint
	for _, d := range boardgame.All() {
		if want := selection(f.Values(d)); len(want) > 0 {
			cons = append(cons, constraint{d: d, want: want})
		}
	}

	out := []boardgame.Game{}
	t.Range(func(_ int, g boardgame.Game) bool {
		if g.UsersRated < f.MinRatings {
			return true
		}
		for _, c := range cons {
			if !intersects(g.Tags(c.d), c.want) {
				return true
			}
		}
		out = append(out, g)
		return true
	})
	slices.SortStableFunc(out, compareGames)
	return out
}

// compareGames orders by rating desc, users_rated desc, name asc.
func compareGames(a, b boardgame.Game) int {
	ar, br := a.HasRating(), b.HasRating()
	switch {
	case ar && !br:
		return -1
	case !ar && br:
		return 1
	case ar && br && a.AverageRating != b.AverageRating:
		return cmp.Compare(b.AverageRating, a.AverageRating)
	}
	if a.UsersRated != b.UsersRated {
		return cmp.Compare(b.UsersRated, a.UsersRated)
	}
	return strings.Compare(a.Name, b.Name)
}

// FilterByRatings derives a table holding the games with at least
// minRatings user ratings, in the original order.
func FilterByRatings(t *boardgame.Table, minRatings int) *boardgame.Table {
	out := make([]boardgame.Game, 0, t.Len())
	t.Range(func(_ int, g boardgame.Game) bool {
		if g.UsersRated >= minRatings {
			out = append(out, g)
		}
		return true
	})
	return boardgame.NewTable(out,
		boardgame.WithSource(t.Source()),
		boardgame.WithLoadedAt(t.LoadedAt()),
		boardgame.WithVersion(t.Version()+"+min_ratings="+strconv.Itoa(minRatings)),
	)
}
