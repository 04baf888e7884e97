package score

import "git.lost.host/meutraa/bmsplay/internal/game"

type Scorer interface {
	Init() error
	Deinit()

	// Save the result of a finished session
	Save(chart *game.Chart, result *Score, speed float64) error

	// Best returns the highest saved point total for the chart
	Best(chart *game.Chart) (int, bool)
}
