package wrangle_test

import (
	"context"
	"sync"
	"testing"

	"github.com/okian/bgexplorer/internal/datagen"
	"github.com/okian/bgexplorer/internal/domain/boardgame"
	"github.com/okian/bgexplorer/internal/domain/wrangle"
)

// benchGames is roughly the size of the public board game dataset.
const benchGames = 20_000

var (
	benchOnce  sync.Once
	benchTable *boardgame.Table
)

func benchData(b *testing.B) *boardgame.Table {
	b.Helper()
	benchOnce.Do(func() {
		cfg := datagen.DefaultConfig()
		cfg.Games = benchGames
		games, err := datagen.Generate(context.Background(), cfg)
		if err != nil {
			b.Fatalf("generate: %v", err)
		}
		benchTable = boardgame.NewTable(games)
	})
	return benchTable
}

func BenchmarkTopRanked(b *testing.B) {
	t := benchData(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := wrangle.TopRanked(t, boardgame.Mechanic, 1990, 2010, wrangle.DefaultTopK); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFilterTop(b *testing.B) {
	t := benchData(b)
	f := wrangle.Filter{
		Categories: []string{"Economic", "Fantasy"},
		Mechanics:  []string{"Worker Placement", "Dice Rolling"},
		MinRatings: 100,
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = wrangle.FilterTop(t, f)
	}
}

func BenchmarkExpandGroups(b *testing.B) {
	t := benchData(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := wrangle.ExpandGroups(t, boardgame.Category, []string{"Wargame", "Horror"}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDensity(b *testing.B) {
	t := benchData(b)
	q := wrangle.DensityQuery{Dimension: boardgame.Publisher, YearStart: 0, YearEnd: 9999}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := wrangle.Density(t, q); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSearchNames(b *testing.B) {
	t := benchData(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = wrangle.SearchNames(t, "golden harbr", wrangle.DefaultSearchLimit)
	}
}

// Queries run concurrently against one shared table in the server.
func BenchmarkConcurrentReads(b *testing.B) {
	t := benchData(b)
	g := t.At(0)
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		n := 0
		for pb.Next() {
			switch n % 3 {
			case 0:
				_, _ = wrangle.TopRanked(t, boardgame.Category, 0, 9999, wrangle.DefaultTopK)
			case 1:
				_ = wrangle.LookupPoint(t, g.X, g.Y, g.Z)
			default:
				_ = wrangle.FilterTop(t, wrangle.Filter{MinRatings: 500})
			}
			n++
		}
	})
}
