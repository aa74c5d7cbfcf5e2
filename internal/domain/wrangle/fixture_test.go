package wrangle_test

import (
	"math"

	"github.com/okian/bgexplorer/internal/domain/boardgame"
)

func game(name string, year int, rating float64, users int) boardgame.Game {
	return boardgame.Game{
		Name:          name,
		YearPublished: year,
		AverageRating: rating,
		UsersRated:    users,
	}
}

func withTags(g boardgame.Game, d boardgame.Dimension, tags ...string) boardgame.Game {
	switch d {
	case boardgame.Category:
		g.Category = boardgame.NewTagSet(tags...)
	case boardgame.Mechanic:
		g.Mechanic = boardgame.NewTagSet(tags...)
	case boardgame.Publisher:
		g.Publisher = boardgame.NewTagSet(tags...)
	}
	return g
}

// threeGames is the G1/G2/G3 ranking scenario.
func threeGames() *boardgame.Table {
	return boardgame.NewTable([]boardgame.Game{
		withTags(game("G1", 2000, 8.0, 100), boardgame.Category, "A"),
		withTags(game("G2", 2005, 6.0, 100), boardgame.Category, "A", "B"),
		withTags(game("G3", 2000, 9.0, 100), boardgame.Category, "B"),
	})
}

// fifteenGames has duplicate ratings and users_rated so every tie-break
// rule is exercised. Rows are deliberately not in rank order.
func fifteenGames() *boardgame.Table {
	nan := math.NaN()
	return boardgame.NewTable([]boardgame.Game{
		game("Uno", 1971, 6.0, 5000),
		game("Brass", 2007, 9.0, 100),
		game("Root", 2018, 7.0, 40),
		game("Risk", 1959, nan, 10000),
		game("Wingspan", 2019, 8.5, 200),
		game("Carcassonne", 2000, 8.0, 50),
		game("Gloomhaven", 2017, 9.0, 300),
		game("Monopoly", 1950, 4.0, 6000),
		game("Pandemic", 2008, 7.5, 80),
		game("Azul", 2017, 8.5, 200),
		game("Zombie Dice", 2010, 6.0, 5000),
		game("Scythe", 2016, 7.0, 900),
		game("Catan", 1995, 8.0, 500),
		game("Terraforming Mars", 2016, 6.5, 10),
		game("Agricola", 2007, 7.5, 80),
	})
}

func names(games []boardgame.Game) []string {
	out := make([]string, len(games))
	for i, g := range games {
		out[i] = g.Name
	}
	return out
}
