package chart

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"

	"golang.org/x/sync/errgroup"

	"github.com/okian/bgexplorer/internal/domain/boardgame"
	"github.com/okian/bgexplorer/internal/domain/wrangle"
)

// RankSource answers top-K ranking queries.
type RankSource interface {
	TopRanked(ctx context.Context, dim boardgame.Dimension, from, to, k int) ([]wrangle.RankedTag, error)
}

var xmlProlog = regexp.MustCompile(`^\s*<\?xml[^>]*\?>\s*`)

// Panel renders the rank chart of every dimension for the same year
// window, stacked vertically in one SVG. The three charts are queried and
// drawn concurrently.
func (r *Renderer) Panel(ctx context.Context, w io.Writer, src RankSource, from, to, k int) error {
	dims := boardgame.All()
	parts := make([][]byte, len(dims))

	g, ctx := errgroup.WithContext(ctx)
	for i, dim := range dims {
		g.Go(func() error {
			ranked, err := src.TopRanked(ctx, dim, from, to, k)
			if err != nil {
				return fmt.Errorf("%s: %w", dim, err)
			}
			var buf bytes.Buffer
			if err := r.Rank(&buf, dim, ranked); err != nil {
				return err
			}
			parts[i] = xmlProlog.ReplaceAll(buf.Bytes(), nil)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, `<?xml version="1.0"?>`+"\n"+
		`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">`+"\n",
		r.width, r.height*len(dims))
	for i, part := range parts {
		fmt.Fprintf(&out, `<g transform="translate(0,%d)">`+"\n", i*r.height)
		out.Write(part)
		out.WriteString("\n</g>\n")
	}
	out.WriteString("</svg>\n")
	_, err := out.WriteTo(w)
	return err
}
