package datagen_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/bgexplorer/internal/datagen"
	"github.com/okian/bgexplorer/internal/domain/boardgame"
	"github.com/okian/bgexplorer/internal/domain/wrangle"
)

func TestGenerate(t *testing.T) {
	Convey("Given the default config", t, func() {
		ctx := context.Background()
		cfg := datagen.DefaultConfig()
		cfg.Games = 500

		games, err := datagen.Generate(ctx, cfg)
		So(err, ShouldBeNil)

		Convey("Then the requested number of games is produced", func() {
			So(len(games), ShouldEqual, 500)
		})

		Convey("And every game is within the documented ranges", func() {
			for _, g := range games {
				So(g.Name, ShouldNotBeBlank)
				So(g.YearPublished, ShouldBeBetweenOrEqual, cfg.StartYear, cfg.EndYear)
				So(g.UsersRated, ShouldBeGreaterThanOrEqualTo, 0)
				So(g.Category.Len(), ShouldBeBetweenOrEqual, 1, 3)
				So(g.Mechanic.Len(), ShouldBeBetweenOrEqual, 1, 4)
				So(g.Publisher.Len(), ShouldBeBetweenOrEqual, 1, 2)
				So(g.MaxPlayers, ShouldBeGreaterThanOrEqualTo, g.MinPlayers)
				if g.HasRating() {
					So(g.AverageRating, ShouldBeBetweenOrEqual, 1.0, 10.0)
				}
			}
		})

		Convey("And the same seed reproduces the same games", func() {
			again, err := datagen.Generate(ctx, cfg)
			So(err, ShouldBeNil)
			So(cmp.Diff(games, again, cmpopts.EquateNaNs()), ShouldBeEmpty)
		})

		Convey("And the games feed the wrangling queries", func() {
			table := boardgame.NewTable(games)
			top, err := wrangle.TopRanked(table, boardgame.Category, cfg.StartYear, cfg.EndYear, 5)
			So(err, ShouldBeNil)
			So(len(top), ShouldEqual, 5)
		})
	})

	Convey("Given an invalid config", t, func() {
		cfg := datagen.DefaultConfig()
		cfg.StartYear, cfg.EndYear = 2020, 2000

		Convey("Then Generate fails", func() {
			_, err := datagen.Generate(context.Background(), cfg)
			So(errors.Is(err, datagen.ErrInvalidConfig), ShouldBeTrue)
		})
	})

	Convey("Given a cancelled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		Convey("Then Generate stops", func() {
			_, err := datagen.Generate(ctx, datagen.DefaultConfig())
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}
