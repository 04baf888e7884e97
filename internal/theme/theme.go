package theme

type Theme interface {
	// LaneWidth is the number of terminal columns one lane occupies.
	LaneWidth() int
	RenderNote(lane int) string
	RenderHoldBody(lane int, row int) string
	ClearCell() string
}
