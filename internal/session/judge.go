package session

import (
	"math"
	"time"

	"git.lost.host/meutraa/bmsplay/internal/config"
	"git.lost.host/meutraa/bmsplay/internal/game"
)

// paddingSlack widens the auto-miss threshold a little past the good
// window, so the time-driven path only ever catches definite misses and
// every hittable note is left to the input path. Tunable.
const paddingSlack = time.Millisecond

func goodWindow() float64 {
	return config.Judgements[len(config.Judgements)-2].Window.Seconds()
}

func classify(abs float64) int {
	for i, j := range config.Judgements[:len(config.Judgements)-1] {
		if abs < j.Window.Seconds() {
			return i + 1
		}
	}
	return 0
}

// OnTick is the time-driven judgment entry, run every frame for every
// lane. With autoplay it performs the whole judgment; otherwise it only
// sweeps up notes that are already too late to hit.
func (s *Session) OnTick(lane int) {
	if s.pending[lane] != 0 {
		s.holdTick(lane)
		return
	}

	note := &s.chart.Lanes[lane][s.Lanes[lane].Begin]
	padding := 0.0
	if !s.AutoPlay {
		padding = (goodWindow() + paddingSlack.Seconds()) * s.BPM / 60
	}
	if s.Beat < note.Beat+padding {
		return
	}
	s.resolve(lane)
}

// OnInput is the input-driven judgment entry, fired when the lane's
// bound key goes down.
func (s *Session) OnInput(lane int) {
	if s.pending[lane] != 0 {
		s.holdTick(lane)
		return
	}
	s.resolve(lane)
}

// resolve classifies the lane's next note against the current beat.
// Shared by both entry points; by the time it runs, the holding guard
// has already been taken.
func (s *Session) resolve(lane int) {
	l := &s.Lanes[lane]
	note := &s.chart.Lanes[lane][l.Begin]

	dt := (note.Beat - s.Beat) * 60 / s.BPM
	if dt >= goodWindow() {
		// Too early, not judged at all
		return
	}
	if dt <= -goodWindow() {
		s.score.RecordMiss()
		l.Begin++
		return
	}

	s.audio.Play(s.chart.Samples[note.Sample])

	tier := classify(math.Abs(dt))
	if tier == 0 {
		return
	}

	if note.Kind == game.EventHold {
		// Judged, but not recorded until the tail beat passes
		s.pending[lane] = tier
		return
	}

	s.score.Record(tier)
	l.Begin++
}

// holdTick resolves a lane that is holding a judged long note: a miss
// if the key was let go, the pending tier once the tail beat is
// reached, otherwise nothing yet.
func (s *Session) holdTick(lane int) {
	l := &s.Lanes[lane]

	if !s.AutoPlay && s.inputs[lane] == 0 {
		s.score.RecordMiss()
		s.pending[lane] = 0
		l.Begin++
		return
	}

	note := &s.chart.Lanes[lane][l.Begin]
	if (note.End-s.Beat)*60/s.BPM > 0 {
		return
	}

	s.score.Record(s.pending[lane])
	s.inputs[lane] = 0
	s.pending[lane] = 0
	l.Begin++
}
