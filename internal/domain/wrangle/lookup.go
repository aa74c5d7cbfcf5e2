package wrangle

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/okian/bgexplorer/internal/domain/boardgame"
)

// ClickDetail describes the game under a clicked 3D point. The zero value
// means no selection.
type ClickDetail struct {
	Found      bool   `json:"found"`
	Name       string `json:"name,omitempty"`
	Rating     string `json:"rating,omitempty"`
	Ratings    string `json:"ratings,omitempty"`
	Categories string `json:"categories,omitempty"`
	Mechanics  string `json:"mechanics,omitempty"`
	Publishers string `json:"publishers,omitempty"`
}

// LookupPoint finds the first game whose coordinates equal (x, y, z)
// exactly. A point not in the table yields the zero ClickDetail.
func LookupPoint(t *boardgame.Table, x, y, z float64) ClickDetail {
	var out ClickDetail
	t.Range(func(_ int, g boardgame.Game) bool {
		if g.X != x || g.Y != y || g.Z != z {
			return true
		}
		out = ClickDetail{
			Found:      true,
			Name:       g.Name,
			Rating:     "Avg Rating: " + formatRating(g.AverageRating),
			Ratings:    "No. of Ratings: " + strconv.Itoa(g.UsersRated),
			Categories: g.Category.Join(TagSeparator),
			Mechanics:  g.Mechanic.Join(TagSeparator),
			Publishers: g.Publisher.Join(TagSeparator),
		}
		return false
	})
	return out
}

// formatRating rounds to two decimals and always keeps one, e.g. 7.0, 7.12.
func formatRating(r float64) string {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return "n/a"
	}
	s := strconv.FormatFloat(round2(r), 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// DefaultSearchLimit caps SearchNames when limit <= 0.
const DefaultSearchLimit = 10

// minSimilarity is the lowest normalized Levenshtein similarity accepted
// for names that do not contain the query.
const minSimilarity = 0.6

// NameMatch is one fuzzy search hit.
type NameMatch struct {
	Name     string `json:"name"`
	Distance int    `json:"distance"`
	Contains bool   `json:"contains"`
}

// SearchNames returns distinct game names resembling query, ignoring case.
// Names containing the query rank first, then by edit distance, then by
// name.
func SearchNames(t *boardgame.Table, query string, limit int) []NameMatch {
	out := []NameMatch{}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return out
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	seen := make(map[string]struct{})
	t.Range(func(_ int, g boardgame.Game) bool {
		if _, dup := seen[g.Name]; dup {
			return true
		}
		seen[g.Name] = struct{}{}

		name := strings.ToLower(g.Name)
		contains := strings.Contains(name, q)
		if !contains && levenshtein.Similarity(q, name, nil) < minSimilarity {
			return true
		}
		out = append(out, NameMatch{
			Name:     g.Name,
			Distance: levenshtein.Distance(q, name, nil),
			Contains: contains,
		})
		return true
	})

	slices.SortFunc(out, func(a, b NameMatch) int {
		if a.Contains != b.Contains {
			if a.Contains {
				return -1
			}
			return 1
		}
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
