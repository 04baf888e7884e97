package session

import (
	"math"

	"git.lost.host/meutraa/bmsplay/internal/audio"
	"git.lost.host/meutraa/bmsplay/internal/config"
	"git.lost.host/meutraa/bmsplay/internal/game"
	"git.lost.host/meutraa/bmsplay/internal/score"
	"git.lost.host/meutraa/bmsplay/internal/timeline"
)

// Audio is the playback collaborator. Play is fire-and-forget; Playing
// gates normal session termination.
type Audio interface {
	Play(*audio.Sample)
	Playing() bool
}

// Lane is a pair of forward-only cursors into one lane's sequence.
// Begin is the next unjudged note; End is the render horizon. Both only
// ever advance.
type Lane struct {
	Begin, End int
}

// Session is the mutable runtime view over a built chart. All of its
// state is owned by the single driver goroutine; Update must be called
// with non-decreasing elapsed times.
type Session struct {
	chart    *game.Chart
	segments timeline.Cursor
	audio    Audio
	score    *score.Score

	AutoPlay bool

	Beat float64
	BPM  float64

	Lanes [game.LaneCount]Lane

	bgm     int
	inputs  [game.LaneCount]uint32 // rolling key-down history per poll tick
	pending [game.LaneCount]int    // 0 none, else tier awaiting the hold tail

	GameOver bool
	Quit     bool
}

func New(chart *game.Chart, segments []timeline.Segment, aud Audio, sc *score.Score, autoPlay bool) *Session {
	return &Session{
		chart:    chart,
		segments: timeline.NewCursor(segments),
		audio:    aud,
		score:    sc,
		AutoPlay: autoPlay,
	}
}

// Update advances the session to the given elapsed time: derives the
// current beat and tempo, fires due background cues, runs the
// time-driven judgment path for every lane, and detects the end of the
// chart.
func (s *Session) Update(elapsed float64) {
	segment := s.segments.Locate(elapsed)
	s.Beat = segment.BeatAt(elapsed)
	s.BPM = segment.BPM

	for s.Beat >= s.chart.BGMs[s.bgm].Beat {
		s.audio.Play(s.chart.Samples[s.chart.BGMs[s.bgm].Sample])
		s.bgm++
	}

	for i := range s.Lanes {
		s.OnTick(i)

		lane := &s.Lanes[i]
		if s.Beat >= s.chart.Lanes[i][lane.End].Beat-config.LifetimeBeats {
			lane.End++
		}
	}

	if math.IsInf(s.chart.BGMs[s.bgm].Beat, 1) && !s.audio.Playing() {
		s.finish()
	}
}

// ShiftInputs ages every lane's key-down history by one poll tick.
func (s *Session) ShiftInputs() {
	for i := range s.inputs {
		s.inputs[i] <<= 1
	}
}

// Press marks the lane's key down for the current poll tick.
func (s *Session) Press(lane int) {
	s.inputs[lane] |= 1
}

func (s *Session) finish() {
	s.score.Finish()
	s.GameOver = true
	s.Quit = true
}
