package dataset

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/okian/bgexplorer/internal/domain/boardgame"
)

// Column names expected in every source.
const (
	colName          = "name"
	colYearPublished = "year_published"
	colAverageRating = "average_rating"
	colUsersRated    = "users_rated"
	colCategory      = "category"
	colMechanic      = "mechanic"
	colPublisher     = "publisher"
	colMinPlayers    = "min_players"
	colMaxPlayers    = "max_players"
	colMinPlaytime   = "min_playtime"
	colMaxPlaytime   = "max_playtime"
	colPlayingTime   = "playing_time"
	colX             = "x"
	colY             = "y"
	colZ             = "z"
)

var requiredColumns = []string{
	colName, colYearPublished, colAverageRating, colUsersRated,
	colCategory, colMechanic, colPublisher,
}

// Columns lists every column the loader understands, required ones first.
func Columns() []string {
	return append(slices.Clone(requiredColumns),
		colMinPlayers, colMaxPlayers, colMinPlaytime, colMaxPlaytime, colPlayingTime,
		colX, colY, colZ,
	)
}

type columnIndex map[string]int

func indexColumns(header []string) (columnIndex, error) {
	idx := make(columnIndex, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	var missing []string
	for _, c := range requiredColumns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return idx, nil
}

func (c columnIndex) get(rec []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// normalize parses records into games and applies the ingestion floors.
func (l *Loader) normalize(rows rowSet, stats *LoadStats) ([]boardgame.Game, error) {
	idx, err := indexColumns(rows.header)
	if err != nil {
		return nil, err
	}

	games := make([]boardgame.Game, 0, len(rows.records))
	for _, rec := range rows.records {
		stats.Read++
		g, reason := parseGame(idx, rec)
		switch {
		case reason != "":
		case g.YearPublished < l.minYear:
			reason = DropMinYear
		case g.UsersRated < l.minUsersRated || g.UsersRated < 0:
			reason = DropMinUsersRated
		}
		if reason != "" {
			stats.Dropped[reason]++
			continue
		}
		games = append(games, g)
	}
	stats.Kept = len(games)
	return games, nil
}

// parseGame converts one record. A non-empty reason means the record is
// unusable.
func parseGame(idx columnIndex, rec []string) (boardgame.Game, string) {
	g := boardgame.Game{Name: idx.get(rec, colName)}
	if g.Name == "" {
		return g, DropEmptyName
	}
	year, ok := parseYear(idx.get(rec, colYearPublished))
	if !ok {
		return g, DropBadYear
	}
	g.YearPublished = year
	g.AverageRating = parseRating(idx.get(rec, colAverageRating))
	g.UsersRated = parseInt(idx.get(rec, colUsersRated))
	g.Category = parseTags(idx.get(rec, colCategory))
	g.Mechanic = parseTags(idx.get(rec, colMechanic))
	g.Publisher = parseTags(idx.get(rec, colPublisher))
	g.MinPlayers = parseInt(idx.get(rec, colMinPlayers))
	g.MaxPlayers = parseInt(idx.get(rec, colMaxPlayers))
	g.MinPlaytime = parseInt(idx.get(rec, colMinPlaytime))
	g.MaxPlaytime = parseInt(idx.get(rec, colMaxPlaytime))
	g.PlayingTime = parseInt(idx.get(rec, colPlayingTime))
	g.X = parseFloat(idx.get(rec, colX), 0)
	g.Y = parseFloat(idx.get(rec, colY), 0)
	g.Z = parseFloat(idx.get(rec, colZ), 0)
	return g, ""
}

// parseYear accepts "2005", "2005.0" and dates such as "2005-01-01".
func parseYear(s string) (int, bool) {
	if len(s) >= 4 {
		if y, err := strconv.Atoi(s[:4]); err == nil && (len(s) == 4 || !isDigit(s[4])) {
			return y, true
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// Ratings outside [ratingMin, ratingMax] or not finite are treated as
// absent.
const (
	ratingMin = 0.0
	ratingMax = 10.0
)

func parseRating(s string) float64 {
	r := parseFloat(s, math.NaN())
	if math.IsNaN(r) || r < ratingMin || r > ratingMax {
		return math.NaN()
	}
	return r
}

func parseFloat(s string, fallback float64) float64 {
	if s == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return f
}

// parseInt accepts integers and integral floats such as "12.0". Anything
// else is zero.
func parseInt(s string) int {
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}

// parseTags reads a list cell. Plain comma-separated values, bracketed
// list literals such as ['Dice', "Kid's Game"] and PostgreSQL array text
// such as {Dice,"Area Control"} are accepted.
func parseTags(s string) boardgame.TagSet {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '[' && s[len(s)-1] == ']' || s[0] == '{' && s[len(s)-1] == '}') {
		return boardgame.NewTagSet(splitQuoted(s[1 : len(s)-1])...)
	}
	return boardgame.NewTagSet(strings.Split(s, ",")...)
}

// splitQuoted splits on commas outside single or double quotes and strips
// the quotes.
func splitQuoted(s string) []string {
	var (
		out   []string
		cur   strings.Builder
		quote byte
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0 && c == '\\' && i+1 < len(s):
			i++
			cur.WriteByte(s[i])
		case quote != 0 && c == quote:
			quote = 0
		case quote != 0:
			cur.WriteByte(c)
		case c == '\'' || c == '"':
			quote = c
		case c == ',':
			out = append(out, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	out = append(out, cur.String())
	return out
}
