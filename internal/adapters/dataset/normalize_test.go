package dataset

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/bgexplorer/internal/domain/boardgame"
)

func TestParseTags(t *testing.T) {
	cases := []struct {
		in   string
		want boardgame.TagSet
	}{
		{"", boardgame.TagSet{}},
		{"[]", boardgame.TagSet{}},
		{"Dice, Economic", boardgame.TagSet{"Dice", "Economic"}},
		{"Children's Game,Dice", boardgame.TagSet{"Children's Game", "Dice"}},
		{"['Dice', 'Economic', 'Dice']", boardgame.TagSet{"Dice", "Economic"}},
		{`['Fantasy', "Kid's Game"]`, boardgame.TagSet{"Fantasy", "Kid's Game"}},
		{`['Dune: Imperium, Uprising', 'Card Game']`, boardgame.TagSet{"Dune: Imperium, Uprising", "Card Game"}},
		{`{Dice,"Area Control"}`, boardgame.TagSet{"Dice", "Area Control"}},
		{`['It\'s escaped']`, boardgame.TagSet{"It's escaped"}},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, parseTags(tc.in)); diff != "" {
			t.Errorf("parseTags(%q) mismatch (-want +got):\n%s", tc.in, diff)
		}
	}
}

func TestFormatTagsRoundTrip(t *testing.T) {
	tags := boardgame.TagSet{"Plain", "Kid's Game", `Say "hi"`, "Comma, inside", `back\slash`}
	if diff := cmp.Diff(tags, parseTags(formatTags(tags))); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseYear(t *testing.T) {
	convey.Convey("Given year cells", t, func() {
		for in, want := range map[string]int{
			"2005":                 2005,
			"2005.0":               2005,
			"2005-01-01":           2005,
			"2005-01-01T00:00:00Z": 2005,
			"999":                  999,
			"20056":                20056,
		} {
			got, ok := parseYear(in)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(got, convey.ShouldEqual, want)
		}
		for _, in := range []string{"", "soon", "NaN"} {
			_, ok := parseYear(in)
			convey.So(ok, convey.ShouldBeFalse)
		}
	})
}

func TestCell(t *testing.T) {
	convey.Convey("Given driver values", t, func() {
		convey.So(cell(nil), convey.ShouldEqual, "")
		convey.So(cell("x"), convey.ShouldEqual, "x")
		convey.So(cell([]byte("y")), convey.ShouldEqual, "y")
		convey.So(cell(int64(42)), convey.ShouldEqual, "42")
		convey.So(cell(7.25), convey.ShouldEqual, "7.25")
		convey.So(cell(time.Date(2003, 5, 1, 0, 0, 0, 0, time.UTC)), convey.ShouldEqual, "2003-05-01")
		convey.So(parseTags(cell([]any{"Dice", "Area, Control"})), convey.ShouldResemble,
			boardgame.TagSet{"Dice", "Area, Control"})
		convey.So(parseTags(cell([]string{"a", "b"})), convey.ShouldResemble, boardgame.TagSet{"a", "b"})
	})
}

func TestRedact(t *testing.T) {
	convey.Convey("Given sources with credentials", t, func() {
		convey.So(redact("postgres://bob:s3cr@t@db:5432/games"), convey.ShouldEqual, "postgres://bob:***@db:5432/games")
		convey.So(redact("postgres://bob@db/games"), convey.ShouldEqual, "postgres://bob@db/games")
		convey.So(redact("data/board_game.csv"), convey.ShouldEqual, "data/board_game.csv")
	})
}

func TestParseRating(t *testing.T) {
	convey.Convey("Given rating cells", t, func() {
		convey.Convey("Then values within [0, 10] are kept", func() {
			for in, want := range map[string]float64{"0": 0, "7.25": 7.25, "10": 10, "10.0": 10} {
				convey.So(parseRating(in), convey.ShouldEqual, want)
			}
		})

		convey.Convey("Then out-of-domain, non-finite and blank cells are absent", func() {
			for _, in := range []string{"42", "-3", "10.0001", "Inf", "-Inf", "NaN", "", "n/a"} {
				convey.So(math.IsNaN(parseRating(in)), convey.ShouldBeTrue)
			}
		})
	})
}

func TestNormalizeRatingDomain(t *testing.T) {
	convey.Convey("Given rows rated inside and outside [0, 10]", t, func() {
		rows := rowSet{
			header: Columns(),
			records: [][]string{
				{"Too High", "2001", "42", "100", "Dice", "Drafting", "Acme"},
				{"Negative", "2002", "-3", "100", "Dice", "Drafting", "Acme"},
				{"Fine", "2003", "7.5", "100", "Dice", "Drafting", "Acme"},
			},
		}
		stats := LoadStats{Dropped: map[string]int{}}

		games, err := New(WithMinYear(0), WithMinUsersRated(0)).normalize(rows, &stats)

		convey.Convey("Then every row is kept and only the valid rating counts", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(len(games), convey.ShouldEqual, 3)
			convey.So(stats.Dropped, convey.ShouldBeEmpty)
			convey.So(games[0].HasRating(), convey.ShouldBeFalse)
			convey.So(games[1].HasRating(), convey.ShouldBeFalse)
			convey.So(games[2].AverageRating, convey.ShouldEqual, 7.5)
		})
	})
}
