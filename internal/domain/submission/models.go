package submission

import (
	"time"

	"perfeval/internal/domain/role"
)

const StatusSubmitted = "submitted"

// Evaluation is one scored criterion inside a submission. Label,
// description and max marks are frozen copies of the template criterion at
// submit time, so later template edits never rewrite history.
type Evaluation struct {
	CriteriaID  string `json:"criteriaId"`
	Criteria    string `json:"criteria"`
	Description string `json:"description"`
	MaxMarks    int    `json:"maxMarks"`
	SelfScore   int    `json:"selfScore"`
	SelfComment string `json:"selfComment"`
}

// Submission is one employee's completed self-evaluation. Immutable after
// creation except for admin deletion.
type Submission struct {
	ID            string       `json:"id"`
	EmployeeID    string       `json:"employeeId"`
	EmployeeName  string       `json:"employeeName"`
	EmployeeEmail string       `json:"employeeEmail"`
	Role          role.Role    `json:"role"`
	TemplateID    string       `json:"templateId"`
	FormType      string       `json:"formType"`
	Status        string       `json:"status"`
	TotalScore    int          `json:"totalScore"`
	MaxTotalScore int          `json:"maxTotalScore"`
	Evaluations   []Evaluation `json:"evaluations"`
	SubmittedAt   time.Time    `json:"submittedAt"`
}

// Percentage recomputes the score percentage from the stored evaluations.
func (s Submission) Percentage() float64 {
	return Aggregate(s.Evaluations).Percentage
}

// DraftEvaluation is the employee's answer for one criterion. SelfScore is
// a pointer so an omitted score is distinguishable from a zero.
type DraftEvaluation struct {
	CriteriaID  string `json:"criteriaId"`
	SelfScore   *int   `json:"selfScore"`
	SelfComment string `json:"selfComment"`
}

type Draft struct {
	TemplateID  string            `json:"templateId"`
	Evaluations []DraftEvaluation `json:"evaluations"`
}
