package game

import (
	"math"
	"testing"
)

func TestSequenceInsertKeepsOrder(t *testing.T) {
	seq := NewSequence()
	for _, beat := range []float64{4, 0, 2, 2, 6} {
		i := seq.Seek(0, beat)
		seq.Insert(i, Event{Beat: beat, Kind: EventNote})
	}

	expected := []float64{0, 2, 2, 4, 6}
	for i, beat := range expected {
		if seq[i].Beat != beat {
			t.Log("sequence", seq)
			t.Fail()
			break
		}
	}
	if !math.IsInf(seq[len(seq)-1].Beat, 1) {
		t.Log("sentinel missing", seq)
		t.Fail()
	}
}

func TestMeasureBeatSumsLengths(t *testing.T) {
	c := NewChart()
	c.Beats[1] = 2
	c.Beats[2] = 8

	tests := map[int]float64{0: 0, 1: 4, 2: 6, 3: 14, 4: 18}
	for measure, beat := range tests {
		if got := c.MeasureBeat(measure); got != beat {
			t.Log("measure", measure, "got", got, "expected", beat)
			t.Fail()
		}
	}
}
