package submission

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"perfeval/internal/domain/role"
)

// Store persists the evaluation snapshot as a JSONB document. The
// employee_id and template_id columns are bare references: employees and
// templates may be deleted without touching submission history.
type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const submissionColumns = "id, employee_id, employee_name, employee_email, role, template_id, form_type, status, total_score, max_total_score, evaluations_json, submitted_at"

func scanSubmission(row pgx.Row) (Submission, error) {
	var sub Submission
	var evaluationsJSON []byte
	if err := row.Scan(
		&sub.ID, &sub.EmployeeID, &sub.EmployeeName, &sub.EmployeeEmail, &sub.Role,
		&sub.TemplateID, &sub.FormType, &sub.Status, &sub.TotalScore, &sub.MaxTotalScore,
		&evaluationsJSON, &sub.SubmittedAt,
	); err != nil {
		return Submission{}, err
	}
	if err := json.Unmarshal(evaluationsJSON, &sub.Evaluations); err != nil {
		return Submission{}, err
	}
	return sub, nil
}

func (s *Store) InsertSubmission(ctx context.Context, sub Submission) (Submission, error) {
	evaluationsJSON, err := json.Marshal(sub.Evaluations)
	if err != nil {
		return Submission{}, err
	}
	row := s.DB.QueryRow(ctx, `
    INSERT INTO submissions (employee_id, employee_name, employee_email, role, template_id, form_type, status, total_score, max_total_score, evaluations_json)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    RETURNING `+submissionColumns+`
  `, sub.EmployeeID, sub.EmployeeName, sub.EmployeeEmail, string(sub.Role), sub.TemplateID, sub.FormType, sub.Status, sub.TotalScore, sub.MaxTotalScore, evaluationsJSON)
	return scanSubmission(row)
}

func (s *Store) ListSubmissions(ctx context.Context) ([]Submission, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+submissionColumns+" FROM submissions ORDER BY submitted_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSubmissions(rows)
}

func (s *Store) ListSubmissionsByRole(ctx context.Context, r role.Role) ([]Submission, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+submissionColumns+" FROM submissions WHERE role = $1 ORDER BY submitted_at DESC", string(r))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSubmissions(rows)
}

func (s *Store) ListSubmissionsByEmployee(ctx context.Context, employeeID string) ([]Submission, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+submissionColumns+" FROM submissions WHERE employee_id = $1 ORDER BY submitted_at DESC", employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSubmissions(rows)
}

func collectSubmissions(rows pgx.Rows) ([]Submission, error) {
	var out []Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

func (s *Store) GetSubmission(ctx context.Context, id string) (Submission, error) {
	sub, err := scanSubmission(s.DB.QueryRow(ctx, "SELECT "+submissionColumns+" FROM submissions WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Submission{}, ErrSubmissionNotFound
	}
	return sub, err
}

func (s *Store) DeleteSubmission(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM submissions WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}
