package submission

import (
	"context"
	"fmt"
	"strings"
	"time"

	"perfeval/internal/domain/auth"
	"perfeval/internal/domain/directory"
	"perfeval/internal/domain/role"
	"perfeval/internal/domain/template"
)

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

// Submit validates the draft against the template, freezes the criteria
// snapshot, computes totals and persists the one-shot submission. Nothing
// is written when validation fails.
func (s *Service) Submit(ctx context.Context, emp directory.Employee, tpl template.Template, draft Draft) (Submission, error) {
	if tpl.Role != emp.Role {
		return Submission{}, ErrTemplateRoleMismatch
	}

	evaluations, err := buildEvaluations(tpl, draft)
	if err != nil {
		return Submission{}, err
	}

	totals := Aggregate(evaluations)
	sub := Submission{
		EmployeeID:    emp.ID,
		EmployeeName:  emp.Name,
		EmployeeEmail: emp.Email,
		Role:          emp.Role,
		TemplateID:    tpl.ID,
		FormType:      tpl.Name,
		Status:        StatusSubmitted,
		TotalScore:    totals.TotalScore,
		MaxTotalScore: totals.MaxTotalScore,
		Evaluations:   evaluations,
		SubmittedAt:   time.Now(),
	}
	return s.Store.InsertSubmission(ctx, sub)
}

// buildEvaluations walks the template's criteria in order, pairing each
// with its draft answer. The form is complete only when every criterion
// has an in-range score and a non-empty comment.
func buildEvaluations(tpl template.Template, draft Draft) ([]Evaluation, error) {
	answers := make(map[string]DraftEvaluation, len(draft.Evaluations))
	for _, d := range draft.Evaluations {
		answers[d.CriteriaID] = d
	}

	var issues []Issue
	evaluations := make([]Evaluation, 0, len(tpl.Criteria))
	for i, c := range tpl.Criteria {
		answer, answered := answers[c.ID]
		delete(answers, c.ID)
		field := fmt.Sprintf("evaluations[%d]", i)

		if !answered || answer.SelfScore == nil {
			issues = append(issues, Issue{Field: field + ".selfScore", Reason: "score is required for " + c.Criteria})
		} else if *answer.SelfScore < 0 || *answer.SelfScore > c.MaxMarks {
			issues = append(issues, Issue{Field: field + ".selfScore", Reason: fmt.Sprintf("score must be between 0 and %d", c.MaxMarks)})
		}
		if !answered || strings.TrimSpace(answer.SelfComment) == "" {
			issues = append(issues, Issue{Field: field + ".selfComment", Reason: "comment is required for " + c.Criteria})
		}
		if len(issues) > 0 {
			continue
		}

		evaluations = append(evaluations, Evaluation{
			CriteriaID:  c.ID,
			Criteria:    c.Criteria,
			Description: c.Description,
			MaxMarks:    c.MaxMarks,
			SelfScore:   *answer.SelfScore,
			SelfComment: strings.TrimSpace(answer.SelfComment),
		})
	}

	for criteriaID := range answers {
		issues = append(issues, Issue{Field: "evaluations", Reason: "unknown criterion " + criteriaID})
	}
	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}
	return evaluations, nil
}

func (s *Service) List(ctx context.Context) ([]Submission, error) {
	return s.Store.ListSubmissions(ctx)
}

func (s *Service) ListByRole(ctx context.Context, r role.Role) ([]Submission, error) {
	if !r.Valid() {
		return nil, auth.ErrInvalidRole
	}
	return s.Store.ListSubmissionsByRole(ctx, r)
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID string) ([]Submission, error) {
	return s.Store.ListSubmissionsByEmployee(ctx, employeeID)
}

func (s *Service) Get(ctx context.Context, id string) (Submission, error) {
	return s.Store.GetSubmission(ctx, id)
}

// Delete is irreversible; confirmation is the caller's concern.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Store.DeleteSubmission(ctx, id)
}
