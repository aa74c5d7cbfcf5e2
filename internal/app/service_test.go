package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/goleak"

	"github.com/okian/bgexplorer/internal/adapters/dataset"
	"github.com/okian/bgexplorer/internal/adapters/repository"
	service "github.com/okian/bgexplorer/internal/app"
	"github.com/okian/bgexplorer/internal/domain/boardgame"
	"github.com/okian/bgexplorer/internal/domain/wrangle"
	"github.com/okian/bgexplorer/pkg/logger"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func fixture() *boardgame.Table {
	return boardgame.NewTable([]boardgame.Game{
		{
			Name: "G1", YearPublished: 2000, AverageRating: 8.0, UsersRated: 100,
			Category: boardgame.NewTagSet("A"), Mechanic: boardgame.NewTagSet("Dice"),
			X: 1, Y: 2, Z: 3,
		},
		{
			Name: "G2", YearPublished: 2005, AverageRating: 6.0, UsersRated: 60,
			Category: boardgame.NewTagSet("A", "B"), Publisher: boardgame.NewTagSet("Acme"),
			X: 4, Y: 5, Z: 6,
		},
		{
			Name: "G3", YearPublished: 2000, AverageRating: 9.0, UsersRated: 300,
			Category: boardgame.NewTagSet("B"), Mechanic: boardgame.NewTagSet("Dice", "Drafting"),
			X: -1, Y: 0, Z: 7,
		},
	}, boardgame.WithSource("memory"))
}

func started(opts ...service.Option) *service.Service {
	svc := service.New(append([]service.Option{service.WithTable(fixture())}, opts...)...)
	So(svc.Start(context.Background()), ShouldBeNil)
	return svc
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should report sensible defaults", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldBeFalse)
			So(stats["topK"], ShouldEqual, 5)
			So(stats["filterLimit"], ShouldEqual, 10)
			So(stats["maxFilterLimit"], ShouldEqual, 100)
			So(stats["cacheSize"], ShouldEqual, 1024)
		})
	})

	Convey("Given invalid options", t, func() {
		svc := service.New(
			service.WithTopK(0),
			service.WithFilterLimits(20, 10),
			service.WithQueryCacheSize(-1),
		)

		Convey("Then the defaults are kept", func() {
			stats := svc.GetStats()
			So(stats["topK"], ShouldEqual, 5)
			So(stats["filterLimit"], ShouldEqual, 10)
			So(stats["cacheSize"], ShouldEqual, 1024)
		})
	})
}

func TestService_NotStarted(t *testing.T) {
	Convey("Given a service that was never started", t, func() {
		svc := service.New(service.WithTable(fixture()))
		ctx := context.Background()

		Convey("Then queries report ErrNotStarted", func() {
			_, err := svc.TopRanked(ctx, boardgame.Category, 2000, 2010, 5)
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)

			_, err = svc.Options(ctx, boardgame.Mechanic)
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)

			So(errors.Is(svc.Reload(ctx), service.ErrNotStarted), ShouldBeTrue)
		})

		Convey("And Stop is a no-op", func() {
			svc.Stop()
			So(svc.GetStats()["started"], ShouldBeFalse)
		})
	})
}

func TestService_Queries(t *testing.T) {
	Convey("Given a service serving an in-memory table", t, func() {
		svc := started()
		defer svc.Stop()
		ctx := context.Background()

		Convey("Options returns sorted distinct values", func() {
			opts, err := svc.Options(ctx, boardgame.Mechanic)
			So(err, ShouldBeNil)
			So(opts, ShouldResemble, []string{"Dice", "Drafting"})
		})

		Convey("An unknown dimension is rejected", func() {
			_, err := svc.Options(ctx, boardgame.Dimension("designer"))
			So(errors.Is(err, boardgame.ErrInvalidDimension), ShouldBeTrue)

			_, err = svc.Groups(ctx, boardgame.Dimension("designer"), nil, false)
			So(errors.Is(err, boardgame.ErrInvalidDimension), ShouldBeTrue)
		})

		Convey("TopRanked ranks tags by mean rating", func() {
			got, err := svc.TopRanked(ctx, boardgame.Category, 2000, 2010, 0)
			So(err, ShouldBeNil)
			want := []wrangle.RankedTag{
				{Tag: "B", MeanRating: 7.5, Games: 2},
				{Tag: "A", MeanRating: 7.0, Games: 2},
			}
			So(cmp.Diff(want, got), ShouldBeEmpty)
		})

		Convey("Groups keeps or drops unmatched games", func() {
			rows, err := svc.Groups(ctx, boardgame.Category, []string{"B"}, false)
			So(err, ShouldBeNil)
			So(len(rows), ShouldEqual, 3)
			So(rows[0].Group, ShouldEqual, wrangle.NoGroup)

			rows, err = svc.Groups(ctx, boardgame.Category, []string{"B"}, true)
			So(err, ShouldBeNil)
			So(len(rows), ShouldEqual, 2)
		})

		Convey("FilterTop clamps the limit", func() {
			games, err := svc.FilterTop(ctx, wrangle.Filter{Limit: 1000})
			So(err, ShouldBeNil)
			So(len(games), ShouldEqual, 3)
			So(games[0].Name, ShouldEqual, "G3")

			games, err = svc.FilterTop(ctx, wrangle.Filter{MinRatings: 100, Limit: 1})
			So(err, ShouldBeNil)
			So(len(games), ShouldEqual, 1)
			So(games[0].Name, ShouldEqual, "G3")
		})

		Convey("Table projects the dashboard columns", func() {
			d, err := svc.Table(ctx, wrangle.Filter{Categories: []string{"A"}})
			So(err, ShouldBeNil)
			So(len(d.Rows), ShouldEqual, 2)
			So(d.Headers[0], ShouldEqual, "Game Name")
			So(d.Rows[0][0], ShouldEqual, "G1")
		})

		Convey("GamesFor, Search and Highlight find games by name", func() {
			games, err := svc.GamesFor(ctx, boardgame.Mechanic, []string{"Dice"})
			So(err, ShouldBeNil)
			So(games, ShouldResemble, []string{"G3", "G1"})

			matches, err := svc.Search(ctx, "g2", 0)
			So(err, ShouldBeNil)
			So(len(matches), ShouldBeGreaterThan, 0)
			So(matches[0].Name, ShouldEqual, "G2")

			hits, err := svc.Highlight(ctx, "G3")
			So(err, ShouldBeNil)
			So(len(hits), ShouldEqual, 1)
		})

		Convey("Point and Extents describe the embedding", func() {
			detail, err := svc.Point(ctx, 4, 5, 6)
			So(err, ShouldBeNil)
			So(detail.Found, ShouldBeTrue)
			So(detail.Name, ShouldEqual, "G2")

			miss, err := svc.Point(ctx, 9, 9, 9)
			So(err, ShouldBeNil)
			So(miss.Found, ShouldBeFalse)

			ext, err := svc.Extents(ctx)
			So(err, ShouldBeNil)
			So(ext.MinX, ShouldEqual, -1)
			So(ext.MaxZ, ShouldEqual, 7)
		})

		Convey("Scatter and Counts honor the ratings floor", func() {
			sc, err := svc.Scatter(ctx, boardgame.Category, []string{"A"}, 100)
			So(err, ShouldBeNil)
			So(len(sc.Rows), ShouldEqual, 2)
			So(len(sc.Trend), ShouldEqual, 2)

			counts, err := svc.Counts(ctx, boardgame.Category, []string{"A"}, 0)
			So(err, ShouldBeNil)
			want := []wrangle.YearCount{
				{Year: 2000, Group: "A", Count: 1},
				{Year: 2000, Group: wrangle.NoGroup, Count: 1},
				{Year: 2005, Group: "A", Count: 1},
			}
			So(cmp.Diff(want, counts), ShouldBeEmpty)
		})

		Convey("Density defaults to the top ranked groups", func() {
			curves, err := svc.Density(ctx, wrangle.DensityQuery{
				Dimension: boardgame.Category, YearStart: 2000, YearEnd: 2010,
			})
			So(err, ShouldBeNil)
			So(len(curves), ShouldEqual, 2)
			So(curves[0].Group, ShouldEqual, "B")
			So(len(curves[0].Ratings), ShouldEqual, wrangle.DefaultDensityPoints)
		})

		Convey("Reload is refused for an in-memory table", func() {
			err := svc.Reload(ctx)
			So(errors.Is(err, repository.ErrNoSource), ShouldBeTrue)
		})

		Convey("GetStats reports the snapshot", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldBeTrue)
			So(stats["games"], ShouldEqual, 3)
			So(stats["version"], ShouldNotBeEmpty)
		})
	})
}

func TestService_Cache(t *testing.T) {
	Convey("Given a service with a query cache", t, func() {
		svc := started(service.WithQueryCacheSize(8))
		defer svc.Stop()
		ctx := context.Background()

		Convey("Repeated queries are served from the cache", func() {
			first, err := svc.GamesFor(ctx, boardgame.Category, []string{"A", "B"})
			So(err, ShouldBeNil)
			second, err := svc.GamesFor(ctx, boardgame.Category, []string{"B", "A"})
			So(err, ShouldBeNil)
			So(second, ShouldResemble, first)
			So(svc.GetStats()["cacheEntries"], ShouldEqual, 1)
		})
	})

	Convey("Given a service without a cache", t, func() {
		svc := started(service.WithQueryCacheSize(0))
		defer svc.Stop()

		Convey("Queries still succeed", func() {
			got, err := svc.TopRanked(context.Background(), boardgame.Category, 2000, 2000, 1)
			So(err, ShouldBeNil)
			So(len(got), ShouldEqual, 1)
			So(got[0].Tag, ShouldEqual, "B")
			_, ok := svc.GetStats()["cacheEntries"]
			So(ok, ShouldBeFalse)
		})
	})
}

func TestService_DatasetSource(t *testing.T) {
	Convey("Given a CSV dataset on disk", t, func() {
		path := filepath.Join(t.TempDir(), "games.csv")
		f, err := os.Create(path)
		So(err, ShouldBeNil)
		games := fixture().Games()
		for i := range games {
			games[i].UsersRated = 500
		}
		So(dataset.WriteCSV(f, games), ShouldBeNil)
		So(f.Close(), ShouldBeNil)

		svc := service.New(
			service.WithDatasetSource(path),
			service.WithReloadInterval(10*time.Millisecond),
		)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		Convey("When the service starts", func() {
			So(svc.Start(ctx), ShouldBeNil)
			defer svc.Stop()

			Convey("Then the dataset is served and can be reloaded", func() {
				before := svc.GetStats()["version"]
				So(svc.GetStats()["games"], ShouldEqual, 3)
				So(svc.Reload(ctx), ShouldBeNil)
				So(svc.GetStats()["version"], ShouldNotEqual, before)
			})
		})
	})

	Convey("Given a missing dataset file", t, func() {
		svc := service.New(service.WithDatasetSource(filepath.Join(t.TempDir(), "absent.csv")))

		Convey("Then Start fails and the service stays stopped", func() {
			err := svc.Start(context.Background())
			So(errors.Is(err, dataset.ErrLoad), ShouldBeTrue)
			So(svc.GetStats()["started"], ShouldBeFalse)
		})
	})
}
