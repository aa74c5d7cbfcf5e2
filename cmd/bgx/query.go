package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	service "github.com/okian/bgexplorer/internal/app"
	"github.com/okian/bgexplorer/internal/domain/boardgame"
	"github.com/okian/bgexplorer/internal/domain/wrangle"
)

// One-shot commands load the dataset once, so they skip the query cache.
func (c *cli) startQueryService(cmd *cobra.Command) (*service.Service, error) {
	svc := newService(c.cfg, service.WithQueryCacheSize(0))
	if err := svc.Start(cmd.Context()); err != nil {
		return nil, err
	}
	return svc, nil
}

func (c *cli) topCmd() *cobra.Command {
	var (
		dim      string
		from, to int
		k        int
	)
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Print the best rated tag values of a dimension",
		Example: `  bgx top --dimension mechanic --from 2000 --to 2010
  bgx top -d category -k 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := boardgame.ParseDimension(dim)
			if err != nil {
				return err
			}
			svc, err := c.startQueryService(cmd)
			if err != nil {
				return err
			}
			defer svc.Stop()

			ranked, err := svc.TopRanked(cmd.Context(), d, from, to, k)
			if err != nil {
				return err
			}
			return printRanked(cmd.OutOrStdout(), d, ranked)
		},
	}
	cmd.Flags().StringVarP(&dim, "dimension", "d", "", "category, mechanic or publisher")
	cmd.Flags().IntVar(&from, "from", 0, "first publication year, inclusive")
	cmd.Flags().IntVar(&to, "to", 9999, "last publication year, inclusive")
	cmd.Flags().IntVarP(&k, "k", "k", 0, "number of values (default from config)")
	_ = cmd.MarkFlagRequired("dimension")
	return cmd
}

func (c *cli) filterCmd() *cobra.Command {
	var f wrangle.Filter
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Print the best rated games matching tag filters",
		Long: `Values of one flag are OR-ed, different flags are AND-ed. Repeat a flag
to select several values; tag values may contain commas.`,
		Example: `  bgx filter --category Economic --mechanic "Worker Placement" --min-ratings 1000`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.startQueryService(cmd)
			if err != nil {
				return err
			}
			defer svc.Stop()

			display, err := svc.Table(cmd.Context(), f)
			if err != nil {
				return err
			}
			return printDisplay(cmd.OutOrStdout(), display)
		},
	}
	cmd.Flags().StringArrayVar(&f.Categories, "category", nil, "category value (repeatable)")
	cmd.Flags().StringArrayVar(&f.Mechanics, "mechanic", nil, "mechanic value (repeatable)")
	cmd.Flags().StringArrayVar(&f.Publishers, "publisher", nil, "publisher value (repeatable)")
	cmd.Flags().IntVar(&f.MinRatings, "min-ratings", 0, "minimum number of user ratings")
	cmd.Flags().IntVar(&f.Limit, "limit", 0, "maximum number of games (default from config)")
	return cmd
}

func (c *cli) optionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "options <dimension>",
		Short:     "List the distinct values of a dimension",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"category", "mechanic", "publisher"},
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := boardgame.ParseDimension(args[0])
			if err != nil {
				return err
			}
			svc, err := c.startQueryService(cmd)
			if err != nil {
				return err
			}
			defer svc.Stop()

			values, err := svc.Options(cmd.Context(), d)
			if err != nil {
				return err
			}
			for _, v := range values {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), v); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func printRanked(w io.Writer, d boardgame.Dimension, ranked []wrangle.RankedTag) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "#\t%s\tMEAN RATING\tGAMES\n", strings.ToUpper(d.String()))
	for i, r := range ranked {
		fmt.Fprintf(tw, "%d\t%s\t%.3f\t%d\n", i+1, r.Tag, r.MeanRating, r.Games)
	}
	return tw.Flush()
}

func printDisplay(w io.Writer, d wrangle.Display) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(d.Headers, "\t"))
	cells := make([]string, len(d.Headers))
	for _, row := range d.Rows {
		for i, v := range row {
			cells[i] = cellString(v)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return "n/a"
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
