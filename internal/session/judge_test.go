package session

import (
	"testing"

	"git.lost.host/meutraa/bmsplay/internal/audio"
	"git.lost.host/meutraa/bmsplay/internal/game"
	"git.lost.host/meutraa/bmsplay/internal/score"
	"git.lost.host/meutraa/bmsplay/internal/timeline"
)

// silentAudio keeps the session alive (music "still playing") and
// counts keysound requests.
type silentAudio struct {
	plays int
}

func (a *silentAudio) Play(*audio.Sample) { a.plays++ }
func (a *silentAudio) Playing() bool      { return true }

// testChart builds a 120 BPM chart with the given events on lane 0.
func testChart(t *testing.T, events ...game.Event) *game.Chart {
	t.Helper()
	chart := game.NewChart()
	chart.Tempos.Insert(0, game.Event{Kind: game.EventTempo, BPM: 120})
	for i, ev := range events {
		chart.Lanes[0].Insert(i, ev)
		chart.TotalNotes++
	}
	return chart
}

func newSession(t *testing.T, chart *game.Chart, autoPlay bool) (*Session, *score.Score, *silentAudio) {
	t.Helper()
	result, err := score.New(chart.TotalNotes)
	if nil != err {
		t.Fatal(err)
	}
	aud := &silentAudio{}
	return New(chart, timeline.Build(chart.Tempos), aud, result, autoPlay), result, aud
}

func TestExactHitIsCool(t *testing.T) {
	chart := testChart(t, game.Event{Beat: 1, Kind: game.EventNote})
	sess, result, aud := newSession(t, chart, false)

	// At 120 BPM beat 1 falls at 0.5s; an input at exactly that time
	// has zero delta.
	sess.Update(0.5)
	sess.Press(0)
	sess.OnInput(0)

	if result.Judges[0] != 1 || result.Combo != 1 || aud.plays != 1 {
		t.Log("judges", result.Judges, "combo", result.Combo, "plays", aud.plays)
		t.Fail()
	}
	if sess.Lanes[0].Begin != 1 {
		t.Log("begin", sess.Lanes[0].Begin)
		t.Fail()
	}
}

var tierTests = map[float64]int{
	0.500: 0, // exact
	0.520: 0, // 20ms late, still cool
	0.470: 1, // 30ms early, great
	0.535: 1,
	0.440: 2, // 60ms early, good
	0.570: 2,
}

func TestTimingWindows(t *testing.T) {
	for hitTime, tier := range tierTests {
		chart := testChart(t, game.Event{Beat: 1, Kind: game.EventNote})
		sess, result, _ := newSession(t, chart, false)

		sess.Update(hitTime)
		sess.Press(0)
		sess.OnInput(0)

		expected := [4]int{}
		expected[tier] = 1
		if result.Judges != expected {
			t.Log("hit at", hitTime, "judges", result.Judges, "expected", expected)
			t.Fail()
		}
	}
}

func TestTooEarlyInputIgnored(t *testing.T) {
	chart := testChart(t, game.Event{Beat: 1, Kind: game.EventNote})
	sess, result, aud := newSession(t, chart, false)

	sess.Update(0.3)
	sess.Press(0)
	sess.OnInput(0)

	if result.TotalJudges != 0 || sess.Lanes[0].Begin != 0 || aud.plays != 0 {
		t.Log("judges", result.Judges, "begin", sess.Lanes[0].Begin)
		t.Fail()
	}
}

func TestManualAutoMiss(t *testing.T) {
	chart := testChart(t, game.Event{Beat: 1, Kind: game.EventNote})
	sess, result, _ := newSession(t, chart, false)

	// Just late is still hittable: no time-driven miss yet.
	sess.Update(0.55)
	if result.Judges[3] != 0 {
		t.Log("missed too soon", result.Judges)
		t.Fail()
	}

	// Past the good window plus padding the engine sweeps it up
	// without any input.
	sess.Update(0.62)
	if result.Judges[3] != 1 || sess.Lanes[0].Begin != 1 {
		t.Log("judges", result.Judges, "begin", sess.Lanes[0].Begin)
		t.Fail()
	}
	if result.Combo != 0 {
		t.Log("combo", result.Combo)
		t.Fail()
	}
}

func TestAutoplayRecordsCoolWithoutInput(t *testing.T) {
	chart := testChart(t,
		game.Event{Beat: 1, Kind: game.EventNote},
		game.Event{Beat: 2, Kind: game.EventNote},
	)
	sess, result, aud := newSession(t, chart, true)

	for elapsed := 0.0; elapsed <= 1.2; elapsed += 0.005 {
		sess.Update(elapsed)
	}

	if result.Judges != [4]int{2, 0, 0, 0} {
		t.Log("judges", result.Judges)
		t.Fail()
	}
	if result.Combo != 2 || aud.plays != 2 {
		t.Log("combo", result.Combo, "plays", aud.plays)
		t.Fail()
	}
}

func TestHoldJudgedAtTail(t *testing.T) {
	chart := testChart(t, game.Event{Beat: 1, Kind: game.EventHold, End: 2})
	sess, result, _ := newSession(t, chart, false)

	sess.Update(0.5)
	sess.Press(0)
	sess.OnInput(0)

	// Judged cool but held: nothing recorded yet.
	if result.TotalJudges != 0 || sess.Lanes[0].Begin != 0 {
		t.Log("recorded before tail", result.Judges)
		t.Fail()
	}

	for elapsed := 0.51; elapsed <= 1.01; elapsed += 0.01 {
		sess.ShiftInputs()
		sess.Press(0)
		sess.Update(elapsed)
	}

	if result.Judges != [4]int{1, 0, 0, 0} || sess.Lanes[0].Begin != 1 {
		t.Log("judges", result.Judges, "begin", sess.Lanes[0].Begin)
		t.Fail()
	}
}

func TestHoldReleasedEarlyIsMiss(t *testing.T) {
	chart := testChart(t, game.Event{Beat: 1, Kind: game.EventHold, End: 2})
	sess, result, _ := newSession(t, chart, false)

	sess.Update(0.5)
	sess.Press(0)
	sess.OnInput(0)

	// Let the rolling input history age out with the key up.
	for i := 0; i < 32; i++ {
		sess.ShiftInputs()
	}
	sess.Update(0.7)

	if result.Judges != [4]int{0, 0, 0, 1} || sess.Lanes[0].Begin != 1 {
		t.Log("judges", result.Judges, "begin", sess.Lanes[0].Begin)
		t.Fail()
	}
}

func TestAutoplayHold(t *testing.T) {
	chart := testChart(t, game.Event{Beat: 1, Kind: game.EventHold, End: 2})
	sess, result, _ := newSession(t, chart, true)

	for elapsed := 0.0; elapsed <= 1.1; elapsed += 0.005 {
		sess.Update(elapsed)
	}

	if result.Judges != [4]int{1, 0, 0, 0} {
		t.Log("judges", result.Judges)
		t.Fail()
	}
}

func TestCursorsNeverRewind(t *testing.T) {
	chart := testChart(t,
		game.Event{Beat: 1, Kind: game.EventNote},
		game.Event{Beat: 2, Kind: game.EventNote},
		game.Event{Beat: 3, Kind: game.EventNote},
	)
	sess, _, _ := newSession(t, chart, true)

	lastBegin, lastEnd := 0, 0
	for elapsed := 0.0; elapsed <= 2.0; elapsed += 0.005 {
		sess.Update(elapsed)
		lane := sess.Lanes[0]
		if lane.Begin < lastBegin || lane.End < lastEnd || lane.Begin > lane.End {
			t.Log("cursors", lane)
			t.Fail()
		}
		lastBegin, lastEnd = lane.Begin, lane.End
	}
}
