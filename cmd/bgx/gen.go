package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/bgexplorer/internal/adapters/dataset"
	"github.com/okian/bgexplorer/internal/datagen"
	"github.com/okian/bgexplorer/internal/domain/boardgame"
	"github.com/okian/bgexplorer/pkg/logger"
)

func (c *cli) genCmd() *cobra.Command {
	cfg := datagen.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "gen <output>",
		Short: "Write a synthetic board game dataset",
		Long: `Generates a reproducible synthetic dataset and writes it as CSV (.csv)
or SQLite (.db, .sqlite, .sqlite3). SQLite output goes to the configured
dataset table.`,
		Example: `  bgx gen data/demo.csv --games 5000 --seed 7
  bgx gen data/demo.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := args[0]

			kind, err := dataset.DetectKind(out)
			if err != nil {
				return err
			}
			games, err := datagen.Generate(ctx, cfg)
			if err != nil {
				return err
			}

			switch kind {
			case dataset.KindCSV:
				err = writeCSVFile(out, games)
			case dataset.KindSQLite:
				err = dataset.WriteSQLite(ctx, out, c.cfg.DatasetTable, games)
			default:
				err = fmt.Errorf("%w: cannot generate into %s", dataset.ErrUnsupportedSource, kind)
			}
			if err != nil {
				return err
			}

			logger.Get().Info(ctx, "synthetic dataset written",
				logger.String("path", out),
				logger.String("kind", string(kind)),
				logger.Int("games", len(games)),
			)
			return nil
		},
	}
	cmd.Flags().IntVar(&cfg.Games, "games", cfg.Games, "number of games")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
	cmd.Flags().IntVar(&cfg.StartYear, "from-year", cfg.StartYear, "earliest publication year")
	cmd.Flags().IntVar(&cfg.EndYear, "to-year", cfg.EndYear, "latest publication year")
	cmd.Flags().Float64Var(&cfg.UnratedRatio, "unrated", cfg.UnratedRatio, "share of games without a rating")
	return cmd
}

func writeCSVFile(path string, games []boardgame.Game) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return dataset.WriteCSV(f, games)
}
