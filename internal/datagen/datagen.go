// Package datagen generates synthetic board game datasets for demos and
// load tests.
package datagen

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/okian/bgexplorer/internal/domain/boardgame"
)

// Config controls the generated dataset. The same config always yields the
// same games.
type Config struct {
	Games     int
	Seed      int64
	StartYear int
	EndYear   int

	// UnratedRatio is the share of games without an average rating.
	UnratedRatio float64
}

// DefaultConfig returns a config for a small demo dataset.
func DefaultConfig() Config {
	return Config{
		Games:        2000,
		Seed:         1,
		StartYear:    1950,
		EndYear:      2021,
		UnratedRatio: 0.02,
	}
}

// Validate checks the config.
func (c Config) Validate() error {
	switch {
	case c.Games < 0:
		return fmt.Errorf("%w: games must not be negative", ErrInvalidConfig)
	case c.StartYear > c.EndYear:
		return fmt.Errorf("%w: start year %d after end year %d", ErrInvalidConfig, c.StartYear, c.EndYear)
	case c.UnratedRatio < 0 || c.UnratedRatio > 1:
		return fmt.Errorf("%w: unrated ratio must be within [0, 1]", ErrInvalidConfig)
	}
	return nil
}

// Constants for value generation.
const (
	ratingMean   = 6.4
	ratingSpread = 0.9
	ratingMin    = 1.0
	ratingMax    = 10.0

	usersLogMean   = 5.0
	usersLogSpread = 1.4

	clusterSpread = 4.0
	pointSpread   = 1.2

	checkEvery = 1024
)

// Generate builds cfg.Games games. It stops early when ctx is done.
func Generate(ctx context.Context, cfg Config) ([]boardgame.Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // reproducible demo data

	// Each category pulls ratings and embedding points its own way.
	bias := make(map[string]float64, len(categories))
	centers := make(map[string][3]float64, len(categories))
	for _, c := range categories {
		bias[c] = rng.NormFloat64() * 0.4
		centers[c] = [3]float64{
			rng.NormFloat64() * clusterSpread,
			rng.NormFloat64() * clusterSpread,
			rng.NormFloat64() * clusterSpread,
		}
	}

	games := make([]boardgame.Game, cfg.Games)
	for i := range games {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("generation cancelled after %d games: %w", i, err)
			}
		}
		games[i] = generateGame(rng, cfg, bias, centers)
	}
	return games, nil
}

func generateGame(rng *rand.Rand, cfg Config, bias map[string]float64, centers map[string][3]float64) boardgame.Game {
	cats := pick(rng, categories, 1, 3)
	g := boardgame.Game{
		Name:          adjectives[rng.Intn(len(adjectives))] + " " + nouns[rng.Intn(len(nouns))],
		YearPublished: cfg.StartYear + rng.Intn(cfg.EndYear-cfg.StartYear+1),
		UsersRated:    int(math.Exp(usersLogMean + rng.NormFloat64()*usersLogSpread)),
		Category:      boardgame.NewTagSet(cats...),
		Mechanic:      boardgame.NewTagSet(pick(rng, mechanics, 1, 4)...),
		Publisher:     boardgame.NewTagSet(pick(rng, publishers, 1, 2)...),
	}

	if rng.Float64() < cfg.UnratedRatio {
		g.AverageRating = math.NaN()
	} else {
		r := ratingMean + bias[cats[0]] + rng.NormFloat64()*ratingSpread
		g.AverageRating = math.Round(clamp(r, ratingMin, ratingMax)*100000) / 100000
	}

	g.MinPlayers = 1 + rng.Intn(3)
	g.MaxPlayers = g.MinPlayers + rng.Intn(5)
	g.MinPlaytime = 15 * (1 + rng.Intn(8))
	g.MaxPlaytime = g.MinPlaytime + 15*rng.Intn(8)
	g.PlayingTime = g.MaxPlaytime

	c := centers[cats[0]]
	g.X = round4(c[0] + rng.NormFloat64()*pointSpread)
	g.Y = round4(c[1] + rng.NormFloat64()*pointSpread)
	g.Z = round4(c[2] + rng.NormFloat64()*pointSpread)
	return g
}

// pick returns between lo and hi distinct values of pool in random order.
func pick(rng *rand.Rand, pool []string, lo, hi int) []string {
	n := lo + rng.Intn(hi-lo+1)
	idx := rng.Perm(len(pool))[:n]
	out := make([]string, n)
	for i, j := range idx {
		out[i] = pool[j]
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
