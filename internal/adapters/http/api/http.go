// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/okian/bgexplorer/internal/adapters/chart"
	service "github.com/okian/bgexplorer/internal/app"
	"github.com/okian/bgexplorer/internal/domain/boardgame"
	"github.com/okian/bgexplorer/internal/domain/wrangle"
	"github.com/okian/bgexplorer/pkg/logger"
	"github.com/okian/bgexplorer/pkg/metrics"
)

// Dependencies required by HTTP handlers. *service.Service satisfies it.
type Dependencies interface {
	StatsProvider
	chart.RankSource

	Options(ctx context.Context, dim boardgame.Dimension) ([]string, error)
	Groups(ctx context.Context, dim boardgame.Dimension, values []string, strict bool) ([]wrangle.GroupRow, error)
	FilterTop(ctx context.Context, f wrangle.Filter) ([]boardgame.Game, error)
	Table(ctx context.Context, f wrangle.Filter) (wrangle.Display, error)
	GamesFor(ctx context.Context, dim boardgame.Dimension, values []string) ([]string, error)
	Search(ctx context.Context, q string, limit int) ([]wrangle.NameMatch, error)
	Point(ctx context.Context, x, y, z float64) (wrangle.ClickDetail, error)
	Extents(ctx context.Context) (boardgame.Extents, error)
	Highlight(ctx context.Context, name string) ([]boardgame.Game, error)
	Density(ctx context.Context, q wrangle.DensityQuery) ([]wrangle.DensityCurve, error)
	Scatter(ctx context.Context, dim boardgame.Dimension, values []string, minRatings int) (service.Scatter, error)
	Counts(ctx context.Context, dim boardgame.Dimension, values []string, minRatings int) ([]wrangle.YearCount, error)
}

var _ Dependencies = (*service.Service)(nil)

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	queryHandler  *QueryHandler
	chartHandler  *ChartHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, renderer *chart.Renderer, l logger.Logger) *Server {
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(deps),
		queryHandler:  NewQueryHandler(deps, l),
		chartHandler:  NewChartHandler(deps, renderer, l),
	}
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(_ context.Context, r chi.Router) {
	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	r.Route("/api", func(r chi.Router) {
		q := s.queryHandler
		r.Get("/options/{dimension}", MetricsMiddleware(q.HandleOptions, "options"))
		r.Get("/groups", MetricsMiddleware(q.HandleGroups, "groups"))
		r.Get("/top", MetricsMiddleware(q.HandleTop, "top"))
		r.Get("/filter", MetricsMiddleware(q.HandleFilter, "filter"))
		r.Get("/table", MetricsMiddleware(q.HandleTable, "table"))
		r.Get("/games", MetricsMiddleware(q.HandleGames, "games"))
		r.Get("/search", MetricsMiddleware(q.HandleSearch, "search"))
		r.Get("/point", MetricsMiddleware(q.HandlePoint, "point"))
		r.Get("/extents", MetricsMiddleware(q.HandleExtents, "extents"))
		r.Get("/highlight", MetricsMiddleware(q.HandleHighlight, "highlight"))
		r.Get("/density", MetricsMiddleware(q.HandleDensity, "density"))
	})

	r.Get("/charts/{kind}.svg", MetricsMiddleware(s.chartHandler.HandleChart, "charts"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// fail classifies err and writes it. Server side failures are logged.
func fail(ctx context.Context, l logger.Logger, w http.ResponseWriter, err error) {
	status, code := classify(err)
	metrics.RecordErrorByComponent("api", code)
	if status >= statusInternalError && l != nil {
		l.Error(ctx, "request failed", logger.String("code", code), logger.Error(err))
	}
	writeError(w, status, code, err)
}
