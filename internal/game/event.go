package game

import "math"

type EventKind uint8

const (
	EventNote     EventKind = iota // playable note, hit once
	EventHoldOpen                  // hold head still waiting for its tail
	EventHold                      // hold head with End set
	EventTempo                     // tempo change, BPM set
	EventStop                      // scroll pause, Stop beats long
	EventCue                       // background keysound
	EventSentinel                  // end-of-sequence marker
)

// Event is a single timed chart entry. Beat is the absolute position in
// quarter notes from the start of the chart. Which of the remaining
// fields is meaningful depends on Kind.
type Event struct {
	Beat   float64
	Kind   EventKind
	End    float64 // beat a hold releases at
	Stop   float64 // pause length in beats
	BPM    float64
	Sample int // index into the chart's sample table
}

// Sequence is a beat-ordered run of events ending in a sentinel at an
// unreachable beat, so forward scans never need a bounds check.
type Sequence []Event

func NewSequence() Sequence {
	return Sequence{{Beat: math.Inf(1), Kind: EventSentinel}}
}

// Insert places ev at position i, keeping the slice beat-ordered when i
// is the position found by Seek.
func (s *Sequence) Insert(i int, ev Event) {
	*s = append(*s, Event{})
	copy((*s)[i+1:], (*s)[i:])
	(*s)[i] = ev
}

// Seek advances i to the first position whose beat is greater than beat.
// Sequences are filled in measure order, so i carries over between
// tokens of the same line and the scan stays short.
func (s Sequence) Seek(i int, beat float64) int {
	for s[i].Beat <= beat {
		i++
	}
	return i
}
