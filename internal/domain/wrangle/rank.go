package wrangle

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/aclements/go-moremath/stats"

	"github.com/okian/bgexplorer/internal/domain/boardgame"
)

// DefaultTopK is used when TopRanked is called with k <= 0.
const DefaultTopK = 5

// RankedTag is one tag value with the mean rating of its games.
type RankedTag struct {
	Tag        string  `json:"tag"`
	MeanRating float64 `json:"mean_rating"`
	Games      int     `json:"games"`
}

// TopRanked returns the k tag values along d with the highest mean rating
// among games published in [yearStart, yearEnd]. A game counts towards
// every tag it holds. Unrated games are skipped and a tag with no rated
// game is omitted. Ties are broken by tag ascending. yearStart > yearEnd
// yields an empty result.
func TopRanked(t *boardgame.Table, d boardgame.Dimension, yearStart, yearEnd, k int) ([]RankedTag, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if k <= 0 {
		k = DefaultTopK
	}
	out := []RankedTag{}
	if yearStart > yearEnd {
		return out, nil
	}

	ratings := make(map[string][]float64)
	t.Range(func(_ int, g boardgame.Game) bool {
		if g.YearPublished < yearStart || g.YearPublished > yearEnd || !g.HasRating() {
			return true
		}
		for _, tag := range g.Tags(d) {
			ratings[tag] = append(ratings[tag], g.AverageRating)
		}
		return true
	})

	for tag, rs := range ratings {
		out = append(out, RankedTag{Tag: tag, MeanRating: stats.Mean(rs), Games: len(rs)})
	}
	slices.SortFunc(out, func(a, b RankedTag) int {
		if c := cmp.Compare(meanKey(b.MeanRating), meanKey(a.MeanRating)); c != 0 {
			return c
		}
		return strings.Compare(a.Tag, b.Tag)
	})
	if len(out) > k {
		out = out[:k]
	}
	return out, nil
}

// meanKey rounds a mean to meanPrecision so means that differ only by
// summation error tie.
func meanKey(m float64) float64 {
	return math.Round(m/meanPrecision) * meanPrecision
}

const meanPrecision = 1e-9

// YearMean is the mean rating of the games published in one year.
type YearMean struct {
	Year       int     `json:"year"`
	MeanRating float64 `json:"mean_rating"`
	Games      int     `json:"games"`
}

// AnnualMean returns the mean rating per publication year, ascending by
// year. Unrated games are skipped.
func AnnualMean(t *boardgame.Table) []YearMean {
	ratings := make(map[int][]float64)
	t.Range(func(_ int, g boardgame.Game) bool {
		if g.HasRating() {
			ratings[g.YearPublished] = append(ratings[g.YearPublished], g.AverageRating)
		}
		return true
	})

	out := make([]YearMean, 0, len(ratings))
	for year, rs := range ratings {
		out = append(out, YearMean{Year: year, MeanRating: stats.Mean(rs), Games: len(rs)})
	}
	slices.SortFunc(out, func(a, b YearMean) int { return cmp.Compare(a.Year, b.Year) })
	return out
}

// YearCount is the number of expanded rows for one (year, group) pair.
type YearCount struct {
	Year  int    `json:"year"`
	Group string `json:"group"`
	Count int    `json:"count"`
}

// YearCounts counts expanded rows per year and group, ordered by year then
// group.
func YearCounts(rows []GroupRow) []YearCount {
	type key struct {
		year  int
		group string
	}
	counts := make(map[key]int)
	for _, r := range rows {
		counts[key{r.Game.YearPublished, r.Group}]++
	}

	out := make([]YearCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, YearCount{Year: k.year, Group: k.group, Count: n})
	}
	slices.SortFunc(out, func(a, b YearCount) int {
		if c := cmp.Compare(a.Year, b.Year); c != 0 {
			return c
		}
		return strings.Compare(a.Group, b.Group)
	})
	return out
}
