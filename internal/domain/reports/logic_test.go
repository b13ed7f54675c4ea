package reports

import (
	"testing"

	"perfeval/internal/domain/role"
	"perfeval/internal/domain/submission"
)

func sub(r role.Role, score, max int) submission.Submission {
	return submission.Submission{
		Role: r,
		Evaluations: []submission.Evaluation{
			{MaxMarks: max, SelfScore: score},
		},
	}
}

func TestBuildDashboard(t *testing.T) {
	submissions := []submission.Submission{
		sub(role.Consultant, 40, 50),       // 80%
		sub(role.Consultant, 45, 50),       // 90%
		sub(role.SeniorConsultant, 30, 60), // 50%
	}

	d := BuildDashboard(7, 5, submissions)
	if d.TeamSize != 7 || d.TemplateCount != 5 || d.SubmissionCount != 3 {
		t.Fatalf("unexpected counts: %+v", d)
	}
	if d.AveragePercentage != 73.3 {
		t.Fatalf("expected average 73.3, got %v", d.AveragePercentage)
	}
	if d.SubmissionsByRole[string(role.Consultant)] != 2 {
		t.Fatalf("expected 2 consultant submissions, got %d", d.SubmissionsByRole[string(role.Consultant)])
	}
	if d.SubmissionsByRole[string(role.SeniorConsultant)] != 1 {
		t.Fatalf("expected 1 senior consultant submission, got %d", d.SubmissionsByRole[string(role.SeniorConsultant)])
	}
}

func TestBuildDashboardSeedsEveryRole(t *testing.T) {
	d := BuildDashboard(0, 0, nil)
	if d.AveragePercentage != 0 {
		t.Fatalf("expected average 0 with no submissions, got %v", d.AveragePercentage)
	}
	for _, r := range role.All() {
		count, ok := d.SubmissionsByRole[string(r)]
		if !ok {
			t.Fatalf("role %s missing from breakdown", r)
		}
		if count != 0 {
			t.Fatalf("role %s should start at 0, got %d", r, count)
		}
	}
}
