package api

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/okian/bgexplorer/internal/adapters/chart"
	"github.com/okian/bgexplorer/pkg/logger"
)

// ChartHandler serves SVG charts.
type ChartHandler struct {
	deps     Dependencies
	renderer *chart.Renderer
	logger   logger.Logger
}

// NewChartHandler creates a new chart handler.
func NewChartHandler(deps Dependencies, renderer *chart.Renderer, l logger.Logger) *ChartHandler {
	if renderer == nil {
		renderer = chart.New(chart.WithLogger(l))
	}
	return &ChartHandler{deps: deps, renderer: renderer, logger: l}
}

// HandleChart handles GET /charts/{kind}.svg. Parameters follow the JSON
// endpoint feeding the chart.
func (h *ChartHandler) HandleChart(w http.ResponseWriter, r *http.Request) {
	const op = "api.chart"
	ctx := r.Context()

	kind, err := chart.ParseKind(strings.TrimSuffix(chi.URLParam(r, "kind"), ".svg"))
	if err != nil {
		fail(ctx, h.logger, w, WrapKind(op, ErrNotFound, err))
		return
	}

	var buf bytes.Buffer
	if err := h.draw(ctx, &buf, kind, newParams(r.URL.Query())); err != nil {
		fail(ctx, h.logger, w, Wrap(op, err))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *ChartHandler) draw(ctx context.Context, buf *bytes.Buffer, kind chart.Kind, p *params) error {
	switch kind {
	case chart.KindScatter, chart.KindCounts:
		dim, values, minRatings := p.dimension(), p.values("value"), p.natural("min_ratings", 0)
		if p.err != nil {
			return p.err
		}
		if kind == chart.KindScatter {
			sc, err := h.deps.Scatter(ctx, dim, values, minRatings)
			if err != nil {
				return err
			}
			return h.renderer.Scatter(buf, sc.Rows, sc.Trend)
		}
		counts, err := h.deps.Counts(ctx, dim, values, minRatings)
		if err != nil {
			return err
		}
		return h.renderer.Counts(buf, counts)

	case chart.KindRank:
		dim := p.dimension()
		from, to := p.yearWindow()
		k := p.natural("k", 0)
		if p.err != nil {
			return p.err
		}
		ranked, err := h.deps.TopRanked(ctx, dim, from, to, k)
		if err != nil {
			return err
		}
		return h.renderer.Rank(buf, dim, ranked)

	case chart.KindPanel:
		from, to := p.yearWindow()
		k := p.natural("k", 0)
		if p.err != nil {
			return p.err
		}
		return h.renderer.Panel(ctx, buf, h.deps, from, to, k)

	case chart.KindTop:
		f := p.filter()
		if p.err != nil {
			return p.err
		}
		games, err := h.deps.FilterTop(ctx, f)
		if err != nil {
			return err
		}
		return h.renderer.Top(buf, games)

	case chart.KindDensity:
		q := p.density()
		if p.err != nil {
			return p.err
		}
		curves, err := h.deps.Density(ctx, q)
		if err != nil {
			return err
		}
		return h.renderer.Density(buf, curves)
	}
	return NewKind("api.chart", chart.ErrUnknownKind)
}
