// Package boardgame contains the board game record and the immutable table
// every query runs against.
package boardgame

import (
	"encoding/json"
	"math"
)

// Game is one board game record.
type Game struct {
	Name          string
	YearPublished int
	AverageRating float64 // NaN when absent
	UsersRated    int

	Category  TagSet
	Mechanic  TagSet
	Publisher TagSet

	// Display-only numerics.
	MinPlayers  int
	MaxPlayers  int
	MinPlaytime int
	MaxPlaytime int
	PlayingTime int

	// Precomputed embedding coordinates.
	X, Y, Z float64
}

// Tags returns the tag set for d. An invalid dimension yields an empty set;
// callers validate dimensions before querying.
func (g Game) Tags(d Dimension) TagSet {
	switch d {
	case Category:
		return g.Category
	case Mechanic:
		return g.Mechanic
	case Publisher:
		return g.Publisher
	default:
		return TagSet{}
	}
}

// HasRating reports whether AverageRating holds a finite value.
func (g Game) HasRating() bool {
	return !math.IsNaN(g.AverageRating) && !math.IsInf(g.AverageRating, 0)
}

// gameJSON is the wire form of Game. An absent rating is null.
type gameJSON struct {
	Name          string   `json:"name"`
	YearPublished int      `json:"year_published"`
	AverageRating *float64 `json:"average_rating"`
	UsersRated    int      `json:"users_rated"`
	Category      TagSet   `json:"category"`
	Mechanic      TagSet   `json:"mechanic"`
	Publisher     TagSet   `json:"publisher"`
	MinPlayers    int      `json:"min_players"`
	MaxPlayers    int      `json:"max_players"`
	MinPlaytime   int      `json:"min_playtime"`
	MaxPlaytime   int      `json:"max_playtime"`
	PlayingTime   int      `json:"playing_time"`
	X             float64  `json:"x"`
	Y             float64  `json:"y"`
	Z             float64  `json:"z"`
}

// MarshalJSON implements json.Marshaler.
func (g Game) MarshalJSON() ([]byte, error) {
	out := gameJSON{
		Name:          g.Name,
		YearPublished: g.YearPublished,
		UsersRated:    g.UsersRated,
		Category:      nonNil(g.Category),
		Mechanic:      nonNil(g.Mechanic),
		Publisher:     nonNil(g.Publisher),
		MinPlayers:    g.MinPlayers,
		MaxPlayers:    g.MaxPlayers,
		MinPlaytime:   g.MinPlaytime,
		MaxPlaytime:   g.MaxPlaytime,
		PlayingTime:   g.PlayingTime,
		X:             g.X,
		Y:             g.Y,
		Z:             g.Z,
	}
	if g.HasRating() {
		r := g.AverageRating
		out.AverageRating = &r
	}
	return json.Marshal(out)
}
