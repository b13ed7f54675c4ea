package submission

import "testing"

func TestAggregateTotals(t *testing.T) {
	evaluations := []Evaluation{
		{Criteria: "Technical Expertise", MaxMarks: 25, SelfScore: 20},
		{Criteria: "Client Management", MaxMarks: 25, SelfScore: 23},
	}

	totals := Aggregate(evaluations)
	if totals.TotalScore != 43 {
		t.Fatalf("expected total 43, got %d", totals.TotalScore)
	}
	if totals.MaxTotalScore != 50 {
		t.Fatalf("expected max total 50, got %d", totals.MaxTotalScore)
	}
	if totals.Percentage != 86.0 {
		t.Fatalf("expected percentage 86.0, got %v", totals.Percentage)
	}
}

func TestAggregateEmpty(t *testing.T) {
	totals := Aggregate(nil)
	if totals.TotalScore != 0 || totals.MaxTotalScore != 0 {
		t.Fatalf("expected zero totals, got %+v", totals)
	}
	if totals.Percentage != 0 {
		t.Fatalf("expected percentage 0 when max is 0, got %v", totals.Percentage)
	}
}

func TestAggregateZeroMaxMarks(t *testing.T) {
	totals := Aggregate([]Evaluation{{MaxMarks: 0, SelfScore: 0}})
	if totals.Percentage != 0 {
		t.Fatalf("expected percentage 0 when max is 0, got %v", totals.Percentage)
	}
}

func TestRoundPercent(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{86.0, 86.0},
		{66.666666, 66.7},
		{33.333333, 33.3},
		{0, 0},
		{100, 100},
	}
	for _, c := range cases {
		if got := RoundPercent(c.in); got != c.want {
			t.Fatalf("RoundPercent(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
