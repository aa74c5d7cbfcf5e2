package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/okian/bgexplorer/internal/domain/boardgame"
)

func readCSVFile(path string) (rowSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return rowSet{}, err
	}
	defer func() { _ = f.Close() }()
	return readCSV(f)
}

func readCSV(r io.Reader) (rowSet, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return rowSet{}, fmt.Errorf("%w: empty file", ErrMissingColumn)
	}
	if err != nil {
		return rowSet{}, err
	}

	records, err := cr.ReadAll()
	if err != nil {
		return rowSet{}, err
	}
	return rowSet{header: header, records: records}, nil
}

// WriteCSV writes games with the header of Columns(). Tag sets are written
// as bracketed list literals so tags may contain commas.
func WriteCSV(w io.Writer, games []boardgame.Game) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns()); err != nil {
		return err
	}
	for _, g := range games {
		if err := cw.Write(gameRecord(g)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// gameRecord renders g in Columns() order.
func gameRecord(g boardgame.Game) []string {
	return []string{
		g.Name,
		strconv.Itoa(g.YearPublished),
		formatFloat(g.AverageRating),
		strconv.Itoa(g.UsersRated),
		formatTags(g.Category),
		formatTags(g.Mechanic),
		formatTags(g.Publisher),
		strconv.Itoa(g.MinPlayers),
		strconv.Itoa(g.MaxPlayers),
		strconv.Itoa(g.MinPlaytime),
		strconv.Itoa(g.MaxPlaytime),
		strconv.Itoa(g.PlayingTime),
		formatFloat(g.X),
		formatFloat(g.Y),
		formatFloat(g.Z),
	}
}

func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// formatTags quotes each tag with ' unless it contains one, then with ".
func formatTags(tags boardgame.TagSet) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		q := "'"
		if strings.Contains(t, "'") {
			q = `"`
		}
		t = strings.ReplaceAll(t, `\`, `\\`)
		t = strings.ReplaceAll(t, q, `\`+q)
		parts[i] = q + t + q
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
