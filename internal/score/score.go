package score

import "github.com/pkg/errors"

const (
	TierCool = iota + 1
	TierGreat
	TierGood
	TierMiss
	TierCount = 4
)

// Score accumulates judgments for one session. Mutated only by the
// judgment engine; Point and MaxCombo are settled once, by Finish.
type Score struct {
	Judges      [TierCount]int // cool, great, good, miss
	Combo       int
	MaxCombo    int
	ComboBonus  int
	Point       int
	TotalJudges int
	TotalNotes  int

	finished bool
}

// New fails on a chart with no playable notes; every scoring division
// has TotalNotes in the denominator.
func New(totalNotes int) (*Score, error) {
	if totalNotes <= 0 {
		return nil, errors.New("chart has no playable notes")
	}
	return &Score{TotalNotes: totalNotes}, nil
}

// Record counts a successful judgment of the given tier.
func (s *Score) Record(tier int) {
	s.Judges[tier-1]++
	s.Combo++
	s.TotalJudges++
}

// RecordMiss counts a miss and breaks the combo.
func (s *Score) RecordMiss() {
	s.Judges[TierMiss-1]++
	s.foldCombo()
	s.TotalJudges++
}

// foldCombo settles the running combo: rolls it into MaxCombo and the
// combo bonus, then zeroes it. Integer arithmetic throughout.
func (s *Score) foldCombo() {
	if s.MaxCombo < s.Combo {
		s.MaxCombo = s.Combo
	}
	c := s.Combo
	p := c - 11
	if p < 0 {
		p = -p
	}
	s.ComboBonus += 1250 * (c*c - (c-10)*p + 19*c - 110) / (2*s.TotalNotes - 11)
	s.Combo = 0
}

// Finish folds the final combo and settles the point total. Idempotent.
func (s *Score) Finish() {
	if s.finished {
		return
	}
	s.finished = true
	s.foldCombo()
	j, t := s.Judges, s.TotalNotes
	s.Point = 75000*j[0]/t + (50000*j[1]+10000*j[2])/t + s.ComboBonus
}
