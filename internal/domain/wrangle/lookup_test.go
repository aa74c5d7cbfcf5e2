package wrangle_test

import (
	"math"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/bgexplorer/internal/domain/boardgame"
	"github.com/okian/bgexplorer/internal/domain/wrangle"
)

func TestLookupPoint(t *testing.T) {
	convey.Convey("Given games with embedding coordinates", t, func() {
		a := game("Twilight Struggle", 2005, 8.26789, 40000)
		a.X, a.Y, a.Z = 1.5, -2.25, 3
		a = withTags(a, boardgame.Category, "Political", "Wargame")
		a = withTags(a, boardgame.Mechanic, "Area Control")
		a = withTags(a, boardgame.Publisher, "GMT Games")
		b := game("Whole", 2010, 7.0, 12)
		b.X, b.Y, b.Z = 0, 0, 0
		c := game("Unrated", 2011, math.NaN(), 1)
		c.X, c.Y, c.Z = 9, 9, 9
		tbl := boardgame.NewTable([]boardgame.Game{a, b, c})

		convey.Convey("When clicking an existing point", func() {
			got := wrangle.LookupPoint(tbl, 1.5, -2.25, 3)

			convey.Convey("Then the detail card is filled", func() {
				convey.So(got, convey.ShouldResemble, wrangle.ClickDetail{
					Found:      true,
					Name:       "Twilight Struggle",
					Rating:     "Avg Rating: 8.27",
					Ratings:    "No. of Ratings: 40000",
					Categories: "Political, Wargame",
					Mechanics:  "Area Control",
					Publishers: "GMT Games",
				})
			})
		})

		convey.Convey("When the rating is whole or absent", func() {
			convey.So(wrangle.LookupPoint(tbl, 0, 0, 0).Rating, convey.ShouldEqual, "Avg Rating: 7.0")
			convey.So(wrangle.LookupPoint(tbl, 9, 9, 9).Rating, convey.ShouldEqual, "Avg Rating: n/a")
		})

		convey.Convey("When clicking a point that is not in the table", func() {
			got := wrangle.LookupPoint(tbl, 1.5, -2.25, 3.0001)

			convey.Convey("Then no selection is returned", func() {
				convey.So(got, convey.ShouldResemble, wrangle.ClickDetail{})
				convey.So(got.Found, convey.ShouldBeFalse)
			})
		})
	})
}

func TestSearchNames(t *testing.T) {
	convey.Convey("Given a handful of names", t, func() {
		tbl := boardgame.NewTable([]boardgame.Game{
			game("Catan", 1995, 7, 1),
			game("Catan: Seafarers", 1997, 7, 1),
			game("Carcassonne", 2000, 7, 1),
			game("Scythe", 2016, 8, 1),
			game("Catan", 2015, 7, 1),
		})

		convey.Convey("When searching a substring", func() {
			got := wrangle.SearchNames(tbl, "CATAN", 10)

			convey.Convey("Then containing names rank first by distance", func() {
				convey.So(got, convey.ShouldHaveLength, 2)
				convey.So(got[0].Name, convey.ShouldEqual, "Catan")
				convey.So(got[0].Distance, convey.ShouldEqual, 0)
				convey.So(got[1].Name, convey.ShouldEqual, "Catan: Seafarers")
			})
		})

		convey.Convey("When searching with a typo", func() {
			got := wrangle.SearchNames(tbl, "Scyhte", 10)

			convey.Convey("Then the close name is found", func() {
				convey.So(got, convey.ShouldNotBeEmpty)
				convey.So(got[0].Name, convey.ShouldEqual, "Scythe")
				convey.So(got[0].Contains, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When limiting or searching nothing", func() {
			convey.So(wrangle.SearchNames(tbl, "a", 1), convey.ShouldHaveLength, 1)
			convey.So(wrangle.SearchNames(tbl, "   ", 5), convey.ShouldBeEmpty)
			convey.So(wrangle.SearchNames(tbl, "zzzzzzzz", 5), convey.ShouldBeEmpty)
		})
	})
}
