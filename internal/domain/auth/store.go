package auth

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"perfeval/internal/domain/directory"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) FindCredentialByUsername(ctx context.Context, username string) (Credential, directory.Employee, error) {
	var cred Credential
	var emp directory.Employee
	err := s.DB.QueryRow(ctx, `
    SELECT a.employee_id, a.username, a.password_hash,
           e.id, e.name, e.email, e.role, e.department, e.position, e.join_date, e.created_at
    FROM employee_auth a
    JOIN employees e ON a.employee_id = e.id
    WHERE a.username = $1
  `, username).Scan(
		&cred.EmployeeID, &cred.Username, &cred.PasswordHash,
		&emp.ID, &emp.Name, &emp.Email, &emp.Role, &emp.Department, &emp.Position, &emp.JoinDate, &emp.CreatedAt,
	)
	return cred, emp, err
}

func (s *Store) FindAdminByUsername(ctx context.Context, username string) (AdminAccount, error) {
	var account AdminAccount
	err := s.DB.QueryRow(ctx, `
    SELECT id, username, password_hash
    FROM admin_accounts
    WHERE username = $1
  `, username).Scan(&account.ID, &account.Username, &account.PasswordHash)
	return account, err
}

func (s *Store) CreateSession(ctx context.Context, subjectID, sessionRole, tokenHash string, expires time.Time) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO sessions (subject_id, role, token_hash, expires_at)
    VALUES ($1,$2,$3,$4)
  `, subjectID, sessionRole, tokenHash, expires)
	return err
}

func (s *Store) SessionValid(ctx context.Context, subjectID, sessionRole, tokenHash string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM sessions
    WHERE subject_id = $1 AND role = $2 AND token_hash = $3 AND expires_at > now() AND revoked_at IS NULL
  `, subjectID, sessionRole, tokenHash).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) RevokeSession(ctx context.Context, subjectID, tokenHash string) error {
	_, err := s.DB.Exec(ctx, "UPDATE sessions SET revoked_at = now() WHERE subject_id = $1 AND token_hash = $2", subjectID, tokenHash)
	return err
}

// PurgeSessions removes rows that expired or were revoked before the
// cutoff. Called from the background cleanup job.
func (s *Store) PurgeSessions(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM sessions WHERE expires_at < $1 OR (revoked_at IS NOT NULL AND revoked_at < $1)", cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
