package submission

import "math"

// Totals are derived, never authoritative: recomputing them from the
// stored evaluations must reproduce the persisted values exactly.
type Totals struct {
	TotalScore    int
	MaxTotalScore int
	Percentage    float64
}

// Aggregate sums self scores and max marks over the evaluations. A zero
// max total yields 0%, not NaN.
func Aggregate(evaluations []Evaluation) Totals {
	var t Totals
	for _, e := range evaluations {
		t.TotalScore += e.SelfScore
		t.MaxTotalScore += e.MaxMarks
	}
	if t.MaxTotalScore > 0 {
		t.Percentage = float64(t.TotalScore) / float64(t.MaxTotalScore) * 100
	}
	return t
}

// RoundPercent rounds to one decimal place for display and export.
func RoundPercent(p float64) float64 {
	return math.Round(p*10) / 10
}
