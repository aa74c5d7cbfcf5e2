package wrangle_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/bgexplorer/internal/domain/boardgame"
	"github.com/okian/bgexplorer/internal/domain/wrangle"
)

func groupsOf(rows []wrangle.GroupRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Game.Name + ":" + r.Group
	}
	return out
}

func TestExpandGroups(t *testing.T) {
	convey.Convey("Given three games with two tags", t, func() {
		tbl := boardgame.NewTable([]boardgame.Game{
			withTags(game("Economy", 2000, 7, 100), boardgame.Category, "Economic", "Dice"),
			withTags(game("Roller", 2001, 6, 100), boardgame.Category, "Dice"),
			withTags(game("Party", 2002, 5, 100), boardgame.Category, "Party"),
		})

		convey.Convey("When nothing is selected", func() {
			rows, err := wrangle.ExpandGroups(tbl, boardgame.Category, nil)

			convey.Convey("Then every game appears once as background", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(rows, convey.ShouldHaveLength, tbl.Len())
				for _, r := range rows {
					convey.So(r.Group, convey.ShouldEqual, wrangle.NoGroup)
				}
			})
		})

		convey.Convey("When both tags are selected in reverse order", func() {
			rows, err := wrangle.ExpandGroups(tbl, boardgame.Category, []string{"Dice", "Economic"})

			convey.Convey("Then matched games fan out in their own tag order", func() {
				convey.So(err, convey.ShouldBeNil)
				want := []string{"Economy:Economic", "Economy:Dice", "Roller:Dice", "Party:none"}
				convey.So(cmp.Diff(want, groupsOf(rows)), convey.ShouldBeEmpty)
			})

			convey.Convey("Then the row count is the sum of max(1, matches)", func() {
				// 2 + 1 + 1
				convey.So(rows, convey.ShouldHaveLength, 4)
			})
		})

		convey.Convey("When one tag is selected", func() {
			rows, _ := wrangle.ExpandGroups(tbl, boardgame.Category, []string{"Dice"})

			convey.Convey("Then each game contributes exactly one row", func() {
				want := []string{"Economy:Dice", "Roller:Dice", "Party:none"}
				convey.So(cmp.Diff(want, groupsOf(rows)), convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When matching strictly", func() {
			rows, err := wrangle.MatchGroups(tbl, boardgame.Category, []string{"Dice", "Economic"})
			none, _ := wrangle.MatchGroups(tbl, boardgame.Category, nil)

			convey.Convey("Then unmatched games are dropped", func() {
				convey.So(err, convey.ShouldBeNil)
				want := []string{"Economy:Economic", "Economy:Dice", "Roller:Dice"}
				convey.So(cmp.Diff(want, groupsOf(rows)), convey.ShouldBeEmpty)
				convey.So(none, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When the dimension is invalid", func() {
			_, err1 := wrangle.ExpandGroups(tbl, "designer", nil)
			_, err2 := wrangle.MatchGroups(tbl, "", []string{"Dice"})

			convey.Convey("Then ErrInvalidDimension is returned", func() {
				convey.So(errors.Is(err1, boardgame.ErrInvalidDimension), convey.ShouldBeTrue)
				convey.So(errors.Is(err2, boardgame.ErrInvalidDimension), convey.ShouldBeTrue)
			})
		})
	})
}

func TestDistinctValues(t *testing.T) {
	convey.Convey("Given games with overlapping tags", t, func() {
		tbl := boardgame.NewTable([]boardgame.Game{
			withTags(game("a", 2000, 7, 1), boardgame.Mechanic, "Trading", "Dice Rolling"),
			withTags(game("b", 2000, 7, 1), boardgame.Mechanic, "Auction", "Trading"),
			withTags(game("c", 2000, 7, 1), boardgame.Mechanic),
		})

		convey.Convey("Then every dimension yields sorted unique values", func() {
			for _, d := range boardgame.All() {
				vals, err := wrangle.DistinctValues(tbl, d)
				convey.So(err, convey.ShouldBeNil)
				convey.So(slices.IsSorted(vals), convey.ShouldBeTrue)
				convey.So(len(slices.Compact(slices.Clone(vals))), convey.ShouldEqual, len(vals))
			}
			vals, _ := wrangle.DistinctValues(tbl, boardgame.Mechanic)
			convey.So(vals, convey.ShouldResemble, []string{"Auction", "Dice Rolling", "Trading"})
		})

		convey.Convey("Then a dimension with no tags yields an empty list", func() {
			vals, err := wrangle.DistinctValues(tbl, boardgame.Publisher)
			convey.So(err, convey.ShouldBeNil)
			convey.So(vals, convey.ShouldNotBeNil)
			convey.So(vals, convey.ShouldBeEmpty)
		})

		convey.Convey("Then an invalid dimension fails", func() {
			_, err := wrangle.DistinctValues(tbl, "artist")
			convey.So(errors.Is(err, boardgame.ErrInvalidDimension), convey.ShouldBeTrue)
		})
	})
}

func TestGamesForAndHighlight(t *testing.T) {
	convey.Convey("Given the three game scenario with a duplicate name", t, func() {
		games := threeGames().Games()
		games = append(games, withTags(game("G1", 2010, 5.0, 10), boardgame.Category, "B"))
		tbl := boardgame.NewTable(games)

		convey.Convey("When listing games for category B", func() {
			got, err := wrangle.GamesFor(tbl, boardgame.Category, []string{"B"})

			convey.Convey("Then names are distinct and best rated first", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(got, convey.ShouldResemble, []string{"G3", "G2", "G1"})
			})
		})

		convey.Convey("When listing with no selection", func() {
			got, _ := wrangle.GamesFor(tbl, boardgame.Category, nil)

			convey.Convey("Then every distinct name is listed", func() {
				convey.So(got, convey.ShouldResemble, []string{"G3", "G1", "G2"})
			})
		})

		convey.Convey("When highlighting by name", func() {
			convey.So(wrangle.Highlight(tbl, "G1"), convey.ShouldHaveLength, 2)
			convey.So(wrangle.Highlight(tbl, "nope"), convey.ShouldBeEmpty)
			convey.So(wrangle.Highlight(tbl, ""), convey.ShouldBeEmpty)
		})

		convey.Convey("When the dimension is invalid", func() {
			_, err := wrangle.GamesFor(tbl, "x", nil)
			convey.So(errors.Is(err, boardgame.ErrInvalidDimension), convey.ShouldBeTrue)
		})
	})
}
