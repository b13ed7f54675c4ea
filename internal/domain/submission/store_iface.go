package submission

import (
	"context"

	"perfeval/internal/domain/role"
)

type StoreAPI interface {
	InsertSubmission(ctx context.Context, sub Submission) (Submission, error)
	ListSubmissions(ctx context.Context) ([]Submission, error)
	ListSubmissionsByRole(ctx context.Context, r role.Role) ([]Submission, error)
	ListSubmissionsByEmployee(ctx context.Context, employeeID string) ([]Submission, error)
	GetSubmission(ctx context.Context, id string) (Submission, error)
	DeleteSubmission(ctx context.Context, id string) error
}
