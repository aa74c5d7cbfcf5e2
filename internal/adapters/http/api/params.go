package api

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/bgexplorer/internal/domain/boardgame"
	"github.com/okian/bgexplorer/internal/domain/wrangle"
)

// Year window used when from / to are omitted.
const (
	minYearParam = 0
	maxYearParam = 9999
)

// params reads typed query parameters, keeping the first parse error.
type params struct {
	q   url.Values
	err error
}

func newParams(q url.Values) *params { return &params{q: q} }

func (p *params) fail(key, value string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("%w: invalid %s %q: %w", ErrBadRequest, key, value, err)
	}
}

// dimension parses the "dimension" parameter. A missing value is an
// invalid dimension, never a default.
func (p *params) dimension() boardgame.Dimension {
	d, err := boardgame.ParseDimension(p.q.Get("dimension"))
	if err != nil && p.err == nil {
		p.err = err
	}
	return d
}

// values returns every non-blank value of a repeated key, as in
// ?value=a&value=b. Values are not split on commas since tags contain them.
func (p *params) values(key string) []string {
	raw := p.q[key]
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (p *params) integer(key string, def int) int {
	s := strings.TrimSpace(p.q.Get(key))
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		p.fail(key, s, err)
		return def
	}
	return n
}

// natural is integer restricted to n >= 0.
func (p *params) natural(key string, def int) int {
	n := p.integer(key, def)
	if n < 0 {
		p.fail(key, strconv.Itoa(n), fmt.Errorf("must not be negative"))
		return def
	}
	return n
}

// float reads a required finite float.
func (p *params) float(key string) float64 {
	s := strings.TrimSpace(p.q.Get(key))
	if s == "" {
		p.fail(key, s, fmt.Errorf("required"))
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err == nil && (math.IsNaN(f) || math.IsInf(f, 0)) {
		err = fmt.Errorf("must be finite")
	}
	if err != nil {
		p.fail(key, s, err)
		return 0
	}
	return f
}

func (p *params) boolean(key string) bool {
	s := strings.TrimSpace(p.q.Get(key))
	if s == "" {
		return false
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		p.fail(key, s, err)
	}
	return b
}

func (p *params) yearWindow() (int, int) {
	return p.integer("from", minYearParam), p.integer("to", maxYearParam)
}

func (p *params) filter() wrangle.Filter {
	return wrangle.Filter{
		Categories: p.values("category"),
		Mechanics:  p.values("mechanic"),
		Publishers: p.values("publisher"),
		MinRatings: p.natural("min_ratings", 0),
		Limit:      p.natural("limit", 0),
	}
}

func (p *params) density() wrangle.DensityQuery {
	from, to := p.yearWindow()
	return wrangle.DensityQuery{
		Dimension:  p.dimension(),
		Selected:   p.values("value"),
		YearStart:  from,
		YearEnd:    to,
		MinRatings: p.natural("min_ratings", 0),
		Points:     p.natural("points", 0),
	}
}
