package theme

import "fmt"

type DefaultTheme struct{}

const (
	laneWidth = 8
	noteSym   = "[######]"
)

// Beatmania-ish lane colouring: turntable red, then alternating white
// and blue keys.
var laneColors = [...]string{
	"\033[1;31m", // 0 turntable
	"\033[1;37m",
	"\033[1;34m",
	"\033[1;37m",
	"\033[1;34m",
	"\033[1;37m",
	"\033[1;34m",
	"\033[1;37m",
}

func (t *DefaultTheme) LaneWidth() int {
	return laneWidth
}

func (t *DefaultTheme) RenderNote(lane int) string {
	return fmt.Sprintf("%s%s\033[0m", laneColors[lane], noteSym)
}

// Hold bodies alternate fill rows so long holds read as a ladder.
func (t *DefaultTheme) RenderHoldBody(lane int, row int) string {
	body := " |####| "
	if row&1 == 1 {
		body = " |    | "
	}
	return fmt.Sprintf("%s%s\033[0m", laneColors[lane], body)
}

func (t *DefaultTheme) ClearCell() string {
	return "        "
}
