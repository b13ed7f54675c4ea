package reports

import (
	"perfeval/internal/domain/role"
	"perfeval/internal/domain/submission"
)

type Dashboard struct {
	TeamSize          int            `json:"teamSize"`
	TemplateCount     int            `json:"templateCount"`
	SubmissionCount   int            `json:"submissionCount"`
	AveragePercentage float64        `json:"averagePercentage"`
	SubmissionsByRole map[string]int `json:"submissionsByRole"`
}

// BuildDashboard derives the admin dashboard cards. The average is over
// submission percentages, one decimal, 0 when there are none.
func BuildDashboard(teamSize, templateCount int, submissions []submission.Submission) Dashboard {
	byRole := make(map[string]int)
	for _, r := range role.All() {
		byRole[string(r)] = 0
	}

	var sum float64
	for _, sub := range submissions {
		sum += sub.Percentage()
		byRole[string(sub.Role)]++
	}

	avg := float64(0)
	if len(submissions) > 0 {
		avg = submission.RoundPercent(sum / float64(len(submissions)))
	}

	return Dashboard{
		TeamSize:          teamSize,
		TemplateCount:     templateCount,
		SubmissionCount:   len(submissions),
		AveragePercentage: avg,
		SubmissionsByRole: byRole,
	}
}
