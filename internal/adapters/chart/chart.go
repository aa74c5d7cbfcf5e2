// Package chart renders dashboard charts as SVG with go-gg.
package chart

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	svg "github.com/ajstarks/svgo"
	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"

	"github.com/okian/bgexplorer/internal/domain/boardgame"
	"github.com/okian/bgexplorer/internal/domain/wrangle"
	"github.com/okian/bgexplorer/pkg/logger"
	"github.com/okian/bgexplorer/pkg/metrics"
)

// Kind names a chart.
type Kind string

const (
	KindScatter Kind = "scatter"
	KindCounts  Kind = "counts"
	KindRank    Kind = "rank"
	KindPanel   Kind = "panel"
	KindTop     Kind = "top"
	KindDensity Kind = "density"
)

// Kinds lists every chart kind.
func Kinds() []Kind {
	return []Kind{KindScatter, KindCounts, KindRank, KindPanel, KindTop, KindDensity}
}

// ParseKind validates a chart kind name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

const (
	defaultWidth  = 650
	defaultHeight = 300

	barWidth = 0.8
)

// Renderer draws charts at a fixed size.
type Renderer struct {
	width  int
	height int
	logger logger.Logger
}

// New creates a renderer with default size 650x300.
func New(opts ...Option) *Renderer {
	r := &Renderer{width: defaultWidth, height: defaultHeight}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Size returns the width and height of a single chart.
func (r *Renderer) Size() (int, int) { return r.width, r.height }

// Scatter plots each expanded row at (year, rating) colored by group, with
// the annual mean rating drawn as a line.
func (r *Renderer) Scatter(w io.Writer, rows []wrangle.GroupRow, trend []wrangle.YearMean) error {
	years := make([]float64, 0, len(rows))
	ratings := make([]float64, 0, len(rows))
	groups := make([]string, 0, len(rows))
	for _, row := range rows {
		if !row.Game.HasRating() {
			continue
		}
		years = append(years, float64(row.Game.YearPublished))
		ratings = append(ratings, row.Game.AverageRating)
		groups = append(groups, row.Group)
	}

	return r.render(w, KindScatter, "Average rating by year", len(years) == 0, func() *gg.Plot {
		points := new(table.Builder).
			Add("year", years).
			Add("rating", ratings).
			Add("group", groups).
			Done()

		plot := gg.NewPlot(points)
		plot.SetScale("y", gg.NewLinearScaler().SetMin(0).SetMax(10))
		plot.Add(gg.LayerPoints{X: "year", Y: "rating", Color: "group"})

		if len(trend) > 0 {
			ty := make([]float64, len(trend))
			tm := make([]float64, len(trend))
			for i, m := range trend {
				ty[i], tm[i] = float64(m.Year), m.MeanRating
			}
			plot.SetData(new(table.Builder).Add("year", ty).Add("rating", tm).Done())
			plot.Add(gg.LayerLines{X: "year", Y: "rating"})
		}

		plot.Add(gg.AxisLabel("x", "Year Published"), gg.AxisLabel("y", "Average Rating"))
		return plot
	})
}

// Counts draws the number of games per year as steps, one per group.
func (r *Renderer) Counts(w io.Writer, counts []wrangle.YearCount) error {
	return r.render(w, KindCounts, "Games published per year", len(counts) == 0, func() *gg.Plot {
		years := make([]float64, len(counts))
		ns := make([]float64, len(counts))
		groups := make([]string, len(counts))
		for i, c := range counts {
			years[i], ns[i], groups[i] = float64(c.Year), float64(c.Count), c.Group
		}
		t := new(table.Builder).
			Add("year", years).
			Add("count", ns).
			Add("group", groups).
			Done()

		plot := gg.NewPlot(t)
		plot.SetScale("y", gg.NewLinearScaler().Include(0))
		plot.GroupBy("group")
		plot.Add(gg.LayerSteps{
			LayerPaths: gg.LayerPaths{X: "year", Y: "count", Color: "group"},
			Step:       gg.StepHMid,
		})
		plot.Add(gg.AxisLabel("x", "Year Published"), gg.AxisLabel("y", "Count"))
		return plot
	})
}

// Rank draws the ranked tags of one dimension as bars of mean rating.
func (r *Renderer) Rank(w io.Writer, dim boardgame.Dimension, ranked []wrangle.RankedTag) error {
	labels := make([]string, len(ranked))
	values := make([]float64, len(ranked))
	for i, t := range ranked {
		labels[i], values[i] = t.Tag, t.MeanRating
	}
	title := "Top " + strconv.Itoa(len(ranked)) + " " + string(dim) + " by average rating"
	return r.render(w, KindRank, title, len(ranked) == 0, func() *gg.Plot {
		return bars(labels, values, "Mean Rating")
	})
}

// Top draws the games returned by a filter as bars of average rating.
func (r *Renderer) Top(w io.Writer, games []boardgame.Game) error {
	labels := make([]string, 0, len(games))
	values := make([]float64, 0, len(games))
	for _, g := range games {
		if g.HasRating() {
			labels = append(labels, g.Name)
			values = append(values, g.AverageRating)
		}
	}
	return r.render(w, KindTop, "Top rated games", len(labels) == 0, func() *gg.Plot {
		return bars(labels, values, "Average Rating")
	})
}

// Density draws one rating density curve per group.
func (r *Renderer) Density(w io.Writer, curves []wrangle.DensityCurve) error {
	return r.render(w, KindDensity, "Rating distribution", len(curves) == 0, func() *gg.Plot {
		var xs, ys []float64
		var groups []string
		for _, c := range curves {
			for i := range c.Ratings {
				xs = append(xs, c.Ratings[i])
				ys = append(ys, c.Density[i])
				groups = append(groups, c.Group)
			}
		}
		t := new(table.Builder).
			Add("rating", xs).
			Add("density", ys).
			Add("group", groups).
			Done()

		plot := gg.NewPlot(t)
		plot.SetScale("x", gg.NewLinearScaler().SetMin(0).SetMax(10))
		plot.Add(gg.LayerLines{X: "rating", Y: "density", Color: "group"})
		plot.Add(gg.AxisLabel("x", "Average Rating"), gg.AxisLabel("y", "Density"))
		return plot
	})
}

// bars lays out one filled rectangle per label at x = 0, 1, 2... with the
// label and value tagged on top.
func bars(labels []string, values []float64, ylabel string) *gg.Plot {
	n := 2 * len(labels)
	xs := make([]float64, 0, n)
	upper := make([]float64, 0, n)
	lower := make([]float64, 0, n)
	fill := make([]string, 0, n)
	tags := make([]string, 0, n)
	for i, label := range labels {
		tag := fmt.Sprintf("%s (%.2f)", label, values[i])
		for _, x := range []float64{float64(i) - barWidth/2, float64(i) + barWidth/2} {
			xs = append(xs, x)
			upper = append(upper, values[i])
			lower = append(lower, 0)
			fill = append(fill, label)
			tags = append(tags, tag)
		}
	}
	t := new(table.Builder).
		Add("position", xs).
		Add("value", upper).
		Add("base", lower).
		Add("label", fill).
		Add("tag", tags).
		Done()

	plot := gg.NewPlot(t)
	plot.SetScale("y", gg.NewLinearScaler().Include(0))
	plot.Add(gg.LayerArea{X: "position", Upper: "value", Lower: "base", Fill: "label"})
	plot.Add(gg.LayerTags{X: "position", Y: "value", Label: "tag"})
	plot.Add(gg.AxisLabel("y", ylabel))
	return plot
}

// render draws the plot built by build, or the empty state when empty is
// set. go-gg panics on some degenerate inputs; those become ErrRender.
func (r *Renderer) render(w io.Writer, kind Kind, title string, empty bool, build func() *gg.Plot) (err error) {
	start := time.Now()
	outcome := "ok"
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %s: %v", ErrRender, kind, rec)
		}
		if err != nil {
			outcome = "error"
			if r.logger != nil {
				r.logger.Warn(context.Background(), "chart render failed",
					logger.String("kind", string(kind)),
					logger.Error(err),
				)
			}
		}
		metrics.RecordChartRender(string(kind), outcome, float64(time.Since(start).Microseconds())/1000)
	}()

	if empty {
		outcome = "empty"
		return r.emptyState(w, title)
	}

	// Buffer so a panic mid-render never leaves a truncated document.
	var buf bytes.Buffer
	plot := build()
	plot.Add(gg.Title(title))
	if err := plot.WriteSVG(&buf, r.width, r.height); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRender, kind, err)
	}
	_, err = buf.WriteTo(w)
	return err
}

// emptyState writes a placeholder SVG for charts without data.
func (r *Renderer) emptyState(w io.Writer, title string) error {
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(r.width, r.height)
	canvas.Rect(0, 0, r.width, r.height, "fill:#eee")
	canvas.Text(r.width/2, r.height/3, title, `text-anchor="middle" font-size="14px" fill="#333"`)
	canvas.Text(r.width/2, r.height/2, "No data for the current selection", `text-anchor="middle" font-size="12px" fill="#666"`)
	canvas.End()
	_, err := buf.WriteTo(w)
	return err
}
