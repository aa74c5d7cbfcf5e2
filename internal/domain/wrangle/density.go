package wrangle

import (
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"

	"github.com/okian/bgexplorer/internal/domain/boardgame"
)

const (
	// DefaultDensityPoints is the curve resolution when none is given.
	DefaultDensityPoints = 100

	ratingMin = 0.0
	ratingMax = 10.0

	fallbackBandwidth = 0.5
)

// DensityQuery selects the groups whose rating distributions are estimated.
type DensityQuery struct {
	Dimension  boardgame.Dimension
	Selected   []string
	YearStart  int
	YearEnd    int
	MinRatings int
	Points     int
}

// DensityCurve is a kernel density estimate of one group's ratings sampled
// at evenly spaced ratings over [0, 10].
type DensityCurve struct {
	Group   string    `json:"group"`
	Games   int       `json:"games"`
	Ratings []float64 `json:"ratings"`
	Density []float64 `json:"density"`
}

// Density estimates the rating distribution of each selected group among
// rated games in the year window with at least MinRatings ratings. With no
// selection the top DefaultTopK tags of the window are used. Curves follow
// the selection order; groups without rated games are omitted.
func Density(t *boardgame.Table, q DensityQuery) ([]DensityCurve, error) {
	if err := q.Dimension.Validate(); err != nil {
		return nil, err
	}
	out := []DensityCurve{}
	if q.YearStart > q.YearEnd {
		return out, nil
	}

	groups := q.Selected
	if len(selection(groups)) == 0 {
		top, err := TopRanked(t, q.Dimension, q.YearStart, q.YearEnd, DefaultTopK)
		if err != nil {
			return nil, err
		}
		groups = make([]string, len(top))
		for i, r := range top {
			groups[i] = r.Tag
		}
	}
	want := selection(groups)

	samples := make(map[string][]float64, len(want))
	t.Range(func(_ int, g boardgame.Game) bool {
		if g.YearPublished < q.YearStart || g.YearPublished > q.YearEnd ||
			g.UsersRated < q.MinRatings || !g.HasRating() {
			return true
		}
		for _, tag := range g.Tags(q.Dimension) {
			if _, ok := want[tag]; ok {
				samples[tag] = append(samples[tag], g.AverageRating)
			}
		}
		return true
	})

	points := q.Points
	if points <= 1 {
		points = DefaultDensityPoints
	}
	xs := vec.Linspace(ratingMin, ratingMax, points)

	done := make(map[string]struct{}, len(groups))
	for _, group := range groups {
		if _, dup := done[group]; dup {
			continue
		}
		done[group] = struct{}{}
		rs := samples[group]
		if len(rs) == 0 {
			continue
		}
		out = append(out, DensityCurve{
			Group:   group,
			Games:   len(rs),
			Ratings: xs,
			Density: vec.Map(estimator(rs).PDF, xs),
		})
	}
	return out, nil
}

func estimator(ratings []float64) *stats.KDE {
	sample := stats.Sample{Xs: ratings}
	bw := stats.BandwidthScott(sample)
	if math.IsNaN(bw) || bw <= 0 {
		bw = fallbackBandwidth
	}
	return &stats.KDE{
		Sample:    sample,
		Kernel:    stats.GaussianKernel,
		Bandwidth: bw,
	}
}
