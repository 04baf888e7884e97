package game

import "git.lost.host/meutraa/bmsplay/internal/audio"

const (
	LaneCount    = 8
	MeasureCount = 1000 // measure indices are three decimal digits
	TableSize    = 1296 // two base-36 characters
)

// Chart is the parsed chart. Built once by the parser; read-only for
// the rest of the session.
type Chart struct {
	Title  string
	Artist string
	Genre  string
	Level  string
	LnObj  string // token that closes a hold on the 1x channels

	Beats     [MeasureCount]float64 // beats per measure, default 4
	BPMTable  [TableSize]float64
	StopTable [TableSize]float64
	Samples   [TableSize]*audio.Sample // nil where no WAV resolved

	BGMs   Sequence
	Tempos Sequence
	Lanes  [LaneCount]Sequence

	BasePath   string
	Sum        string // sha256 of the chart source, keys score history
	TotalNotes int
}

func NewChart() *Chart {
	c := &Chart{
		BGMs:   NewSequence(),
		Tempos: NewSequence(),
	}
	for i := range c.Lanes {
		c.Lanes[i] = NewSequence()
	}
	for i := range c.Beats {
		c.Beats[i] = 4
	}
	return c
}

// MeasureBeat returns the absolute beat the measure starts at.
func (c *Chart) MeasureBeat(measure int) float64 {
	beat := 0.0
	for i := 0; i < measure; i++ {
		beat += c.Beats[i]
	}
	return beat
}
