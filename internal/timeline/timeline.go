package timeline

import (
	"math"

	"git.lost.host/meutraa/bmsplay/internal/game"
)

// DefaultBPM is used when a chart declares no usable tempo at all.
const DefaultBPM = 130

// Segment is a breakpoint of the piecewise linear beat<->time mapping.
// Velocity is beats per second from this breakpoint until the next one,
// zero while the scroll is stopped.
type Segment struct {
	Time     float64
	Beat     float64
	Velocity float64
	BPM      float64
}

// Build converts the beat-ordered tempo/stop sequence into segments.
// A stop becomes two segments bracketing a zero-velocity interval. The
// result ends with an infinite sentinel so cursor scans never run off.
func Build(events game.Sequence) []Segment {
	bpm := float64(DefaultBPM)
	if len(events) > 0 && events[0].Kind == game.EventTempo && events[0].BPM > 0 {
		bpm = events[0].BPM
	}

	segments := []Segment{{Time: 0, Beat: 0, Velocity: bpm / 60, BPM: bpm}}
	time, beat := 0.0, 0.0

	for _, ev := range events {
		switch ev.Kind {
		case game.EventTempo:
			if ev.BPM <= 0 {
				continue
			}
			t := time + (ev.Beat-beat)*60/bpm
			bpm = ev.BPM
			segments = append(segments, Segment{Time: t, Beat: ev.Beat, Velocity: bpm / 60, BPM: bpm})
			time, beat = t, ev.Beat

		case game.EventStop:
			if ev.Stop <= 0 {
				continue
			}
			t := time + (ev.Beat-beat)*60/bpm
			segments = append(segments, Segment{Time: t, Beat: ev.Beat, Velocity: 0, BPM: bpm})
			t += ev.Stop * 60 / bpm
			segments = append(segments, Segment{Time: t, Beat: ev.Beat, Velocity: bpm / 60, BPM: bpm})
			time, beat = t, ev.Beat
		}
	}

	return append(segments, Segment{Time: math.Inf(1), Beat: math.Inf(1)})
}

// Cursor walks the segment list forward only. Valid as long as the
// times passed to Locate never decrease within one session.
type Cursor struct {
	segments []Segment
	i        int
}

func NewCursor(segments []Segment) Cursor {
	return Cursor{segments: segments}
}

func (c *Cursor) Locate(time float64) *Segment {
	for c.segments[c.i+1].Time <= time {
		c.i++
	}
	return &c.segments[c.i]
}

// BeatAt maps an elapsed time inside seg to a beat.
func (s *Segment) BeatAt(time float64) float64 {
	return s.Beat + (time-s.Time)*s.Velocity
}

// TimeAt maps a beat back to the time it is reached, scanning the whole
// list. Beats inside a stop map to the moment the scroll resumes.
func TimeAt(segments []Segment, beat float64) float64 {
	sel := segments[0]
	for _, s := range segments[1:] {
		if s.Beat > beat || math.IsInf(s.Time, 1) {
			break
		}
		sel = s
	}
	if sel.Velocity == 0 {
		return sel.Time
	}
	return sel.Time + (beat-sel.Beat)/sel.Velocity
}
