package score

import (
	"path/filepath"
	"testing"

	"git.lost.host/meutraa/bmsplay/internal/game"
)

func TestSaveAndBest(t *testing.T) {
	scorer := DefaultScorer{Database: filepath.Join(t.TempDir(), "scores.db")}
	if err := scorer.Init(); nil != err {
		t.Fatal(err)
	}
	defer scorer.Deinit()

	chart := game.NewChart()
	chart.Title = "test"
	chart.Sum = "sum-a"

	if _, ok := scorer.Best(chart); ok {
		t.Log("best on empty database")
		t.Fail()
	}

	for _, point := range []int{4000, 9000, 7000} {
		result := &Score{Point: point, MaxCombo: 10, TotalNotes: 10}
		if err := scorer.Save(chart, result, 1.0); nil != err {
			t.Fatal(err)
		}
	}

	best, ok := scorer.Best(chart)
	if !ok || best != 9000 {
		t.Log("best", best, ok)
		t.Fail()
	}

	// Scores of other charts do not leak in.
	other := game.NewChart()
	other.Sum = "sum-b"
	if _, ok := scorer.Best(other); ok {
		t.Log("best leaked across charts")
		t.Fail()
	}
}
