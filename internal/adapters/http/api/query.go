package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/okian/bgexplorer/internal/domain/boardgame"
	"github.com/okian/bgexplorer/pkg/logger"
)

// QueryHandler serves the JSON query endpoints under /api.
type QueryHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewQueryHandler creates a new query handler.
func NewQueryHandler(deps Dependencies, l logger.Logger) *QueryHandler {
	return &QueryHandler{deps: deps, logger: l}
}

// respond writes v, or the classified error.
func (h *QueryHandler) respond(w http.ResponseWriter, r *http.Request, op string, v any, err error) {
	if err != nil {
		fail(r.Context(), h.logger, w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// badRequest reports a parameter error.
func (h *QueryHandler) badRequest(w http.ResponseWriter, r *http.Request, op string, err error) {
	fail(r.Context(), h.logger, w, Wrap(op, err))
}

// HandleOptions handles GET /api/options/{dimension}.
func (h *QueryHandler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	const op = "api.options"
	dim, err := boardgame.ParseDimension(chi.URLParam(r, "dimension"))
	if err != nil {
		h.badRequest(w, r, op, err)
		return
	}
	out, err := h.deps.Options(r.Context(), dim)
	h.respond(w, r, op, out, err)
}

// HandleGroups handles GET /api/groups?dimension&value...&strict.
func (h *QueryHandler) HandleGroups(w http.ResponseWriter, r *http.Request) {
	const op = "api.groups"
	p := newParams(r.URL.Query())
	dim, values, strict := p.dimension(), p.values("value"), p.boolean("strict")
	if p.err != nil {
		h.badRequest(w, r, op, p.err)
		return
	}
	out, err := h.deps.Groups(r.Context(), dim, values, strict)
	h.respond(w, r, op, out, err)
}

// HandleTop handles GET /api/top?dimension&from&to&k.
func (h *QueryHandler) HandleTop(w http.ResponseWriter, r *http.Request) {
	const op = "api.top"
	p := newParams(r.URL.Query())
	dim := p.dimension()
	from, to := p.yearWindow()
	k := p.natural("k", 0)
	if p.err != nil {
		h.badRequest(w, r, op, p.err)
		return
	}
	out, err := h.deps.TopRanked(r.Context(), dim, from, to, k)
	h.respond(w, r, op, out, err)
}

// HandleFilter handles GET /api/filter.
func (h *QueryHandler) HandleFilter(w http.ResponseWriter, r *http.Request) {
	const op = "api.filter"
	p := newParams(r.URL.Query())
	f := p.filter()
	if p.err != nil {
		h.badRequest(w, r, op, p.err)
		return
	}
	out, err := h.deps.FilterTop(r.Context(), f)
	h.respond(w, r, op, out, err)
}

// tableResponse is the projected table: headers plus one object per row
// keyed by header.
type tableResponse struct {
	Headers []string         `json:"headers"`
	Rows    []map[string]any `json:"rows"`
}

// HandleTable handles GET /api/table, the projected filter result.
func (h *QueryHandler) HandleTable(w http.ResponseWriter, r *http.Request) {
	const op = "api.table"
	p := newParams(r.URL.Query())
	f := p.filter()
	if p.err != nil {
		h.badRequest(w, r, op, p.err)
		return
	}
	d, err := h.deps.Table(r.Context(), f)
	if err != nil {
		h.respond(w, r, op, nil, err)
		return
	}
	writeJSON(w, http.StatusOK, tableResponse{Headers: d.Headers, Rows: d.Records()})
}

// HandleGames handles GET /api/games?dimension&value...
func (h *QueryHandler) HandleGames(w http.ResponseWriter, r *http.Request) {
	const op = "api.games"
	p := newParams(r.URL.Query())
	dim, values := p.dimension(), p.values("value")
	if p.err != nil {
		h.badRequest(w, r, op, p.err)
		return
	}
	out, err := h.deps.GamesFor(r.Context(), dim, values)
	h.respond(w, r, op, out, err)
}

// HandleSearch handles GET /api/search?q&limit.
func (h *QueryHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	const op = "api.search"
	p := newParams(r.URL.Query())
	limit := p.natural("limit", 0)
	if p.err != nil {
		h.badRequest(w, r, op, p.err)
		return
	}
	out, err := h.deps.Search(r.Context(), r.URL.Query().Get("q"), limit)
	h.respond(w, r, op, out, err)
}

// HandlePoint handles GET /api/point?x&y&z. A point matching no game
// answers 200 with found=false.
func (h *QueryHandler) HandlePoint(w http.ResponseWriter, r *http.Request) {
	const op = "api.point"
	p := newParams(r.URL.Query())
	x, y, z := p.float("x"), p.float("y"), p.float("z")
	if p.err != nil {
		h.badRequest(w, r, op, p.err)
		return
	}
	out, err := h.deps.Point(r.Context(), x, y, z)
	h.respond(w, r, op, out, err)
}

// HandleExtents handles GET /api/extents.
func (h *QueryHandler) HandleExtents(w http.ResponseWriter, r *http.Request) {
	out, err := h.deps.Extents(r.Context())
	h.respond(w, r, "api.extents", out, err)
}

// HandleHighlight handles GET /api/highlight?name.
func (h *QueryHandler) HandleHighlight(w http.ResponseWriter, r *http.Request) {
	const op = "api.highlight"
	name := r.URL.Query().Get("name")
	if name == "" {
		h.badRequest(w, r, op, fmt.Errorf("%w: missing name", ErrBadRequest))
		return
	}
	out, err := h.deps.Highlight(r.Context(), name)
	h.respond(w, r, op, out, err)
}

// HandleDensity handles GET /api/density.
func (h *QueryHandler) HandleDensity(w http.ResponseWriter, r *http.Request) {
	const op = "api.density"
	p := newParams(r.URL.Query())
	q := p.density()
	if p.err != nil {
		h.badRequest(w, r, op, p.err)
		return
	}
	out, err := h.deps.Density(r.Context(), q)
	h.respond(w, r, op, out, err)
}
