package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/okian/bgexplorer/internal/adapters/repository"
	"github.com/okian/bgexplorer/internal/domain/boardgame"
	"github.com/okian/bgexplorer/internal/domain/wrangle"
)

// Scatter is the data behind the year by rating scatter plot.
type Scatter struct {
	Rows  []wrangle.GroupRow `json:"rows"`
	Trend []wrangle.YearMean `json:"trend"`
}

// Options returns the sorted distinct values of dim.
func (s *Service) Options(ctx context.Context, dim boardgame.Dimension) ([]string, error) {
	if err := dim.Validate(); err != nil {
		return nil, err
	}
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Options(dim)
}

// Groups expands the table over dim. With strict set, games matching none
// of values are dropped instead of labeled wrangle.NoGroup.
func (s *Service) Groups(ctx context.Context, dim boardgame.Dimension, values []string, strict bool) ([]wrangle.GroupRow, error) {
	op := "expand_groups"
	expand := wrangle.ExpandGroups
	if strict {
		op = "match_groups"
		expand = wrangle.MatchGroups
	}
	return query(ctx, s, op, string(dim)+"|"+setKey(values),
		func(snap *repository.Snapshot) ([]wrangle.GroupRow, error) {
			return expand(snap.Table, dim, values)
		}, lenOf[wrangle.GroupRow])
}

// TopRanked returns the k best rated tags of dim in the year window. k <= 0
// uses the configured default.
func (s *Service) TopRanked(ctx context.Context, dim boardgame.Dimension, from, to, k int) ([]wrangle.RankedTag, error) {
	if k <= 0 {
		k = s.topK
	}
	key := fmt.Sprintf("%s|%d|%d|%d", dim, from, to, k)
	return query(ctx, s, "top_ranked", key,
		func(snap *repository.Snapshot) ([]wrangle.RankedTag, error) {
			return wrangle.TopRanked(snap.Table, dim, from, to, k)
		}, lenOf[wrangle.RankedTag])
}

// FilterTop returns the best rated games passing f. The limit defaults to
// the configured filter limit and is capped at the configured maximum.
func (s *Service) FilterTop(ctx context.Context, f wrangle.Filter) ([]boardgame.Game, error) {
	f.Limit = s.clampLimit(f.Limit)
	return query(ctx, s, "filter_top", filterKey(f),
		func(snap *repository.Snapshot) ([]boardgame.Game, error) {
			return wrangle.FilterTop(snap.Table, f), nil
		}, lenOf[boardgame.Game])
}

// Table projects the FilterTop result with the dashboard columns.
func (s *Service) Table(ctx context.Context, f wrangle.Filter) (wrangle.Display, error) {
	games, err := s.FilterTop(ctx, f)
	if err != nil {
		return wrangle.Display{}, err
	}
	return wrangle.Project(games, wrangle.DashboardColumns())
}

// GamesFor returns the names of the games carrying any of values on dim.
func (s *Service) GamesFor(ctx context.Context, dim boardgame.Dimension, values []string) ([]string, error) {
	return query(ctx, s, "games_for", string(dim)+"|"+setKey(values),
		func(snap *repository.Snapshot) ([]string, error) {
			return wrangle.GamesFor(snap.Table, dim, values)
		}, lenOf[string])
}

// Search returns game names resembling q.
func (s *Service) Search(ctx context.Context, q string, limit int) ([]wrangle.NameMatch, error) {
	if limit <= 0 || limit > s.searchLimit {
		limit = s.searchLimit
	}
	return query(ctx, s, "search_names", strconv.Itoa(limit)+"|"+q,
		func(snap *repository.Snapshot) ([]wrangle.NameMatch, error) {
			return wrangle.SearchNames(snap.Table, q, limit), nil
		}, lenOf[wrangle.NameMatch])
}

// Point describes the game at the given embedding coordinates.
func (s *Service) Point(ctx context.Context, x, y, z float64) (wrangle.ClickDetail, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return wrangle.ClickDetail{}, err
	}
	return wrangle.LookupPoint(snap.Table, x, y, z), nil
}

// Extents returns the bounding box of the embedding coordinates.
func (s *Service) Extents(ctx context.Context) (boardgame.Extents, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return boardgame.Extents{}, err
	}
	return snap.Table.Extents(), nil
}

// Highlight returns the games named exactly name.
func (s *Service) Highlight(ctx context.Context, name string) ([]boardgame.Game, error) {
	return query(ctx, s, "highlight", name,
		func(snap *repository.Snapshot) ([]boardgame.Game, error) {
			return wrangle.Highlight(snap.Table, name), nil
		}, lenOf[boardgame.Game])
}

// Density estimates rating distributions per group.
func (s *Service) Density(ctx context.Context, q wrangle.DensityQuery) ([]wrangle.DensityCurve, error) {
	if q.Points <= 0 {
		q.Points = wrangle.DefaultDensityPoints
	}
	key := fmt.Sprintf("%s|%d|%d|%d|%d|%s", q.Dimension, q.YearStart, q.YearEnd, q.MinRatings, q.Points, listKey(q.Selected))
	return query(ctx, s, "density", key,
		func(snap *repository.Snapshot) ([]wrangle.DensityCurve, error) {
			return wrangle.Density(snap.Table, q)
		}, lenOf[wrangle.DensityCurve])
}

// Scatter expands the games with at least minRatings ratings over dim and
// pairs them with the annual mean rating of the whole table.
func (s *Service) Scatter(ctx context.Context, dim boardgame.Dimension, values []string, minRatings int) (Scatter, error) {
	key := fmt.Sprintf("%s|%d|%s", dim, minRatings, setKey(values))
	return query(ctx, s, "scatter", key,
		func(snap *repository.Snapshot) (Scatter, error) {
			rows, err := wrangle.ExpandGroups(wrangle.FilterByRatings(snap.Table, minRatings), dim, values)
			if err != nil {
				return Scatter{}, err
			}
			return Scatter{Rows: rows, Trend: wrangle.AnnualMean(snap.Table)}, nil
		}, func(v Scatter) int { return len(v.Rows) })
}

// Counts returns the number of expanded rows per year and group.
func (s *Service) Counts(ctx context.Context, dim boardgame.Dimension, values []string, minRatings int) ([]wrangle.YearCount, error) {
	key := fmt.Sprintf("%s|%d|%s", dim, minRatings, setKey(values))
	return query(ctx, s, "year_counts", key,
		func(snap *repository.Snapshot) ([]wrangle.YearCount, error) {
			rows, err := wrangle.ExpandGroups(wrangle.FilterByRatings(snap.Table, minRatings), dim, values)
			if err != nil {
				return nil, err
			}
			return wrangle.YearCounts(rows), nil
		}, lenOf[wrangle.YearCount])
}

func (s *Service) clampLimit(limit int) int {
	if limit <= 0 {
		return s.filterLimit
	}
	if limit > s.maxFilterLimit {
		return s.maxFilterLimit
	}
	return limit
}

func filterKey(f wrangle.Filter) string {
	return fmt.Sprintf("%s|%s|%s|%d|%d",
		setKey(f.Categories), setKey(f.Mechanics), setKey(f.Publishers), f.MinRatings, f.Limit)
}
