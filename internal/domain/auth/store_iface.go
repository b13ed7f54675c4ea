package auth

import (
	"context"
	"time"

	"perfeval/internal/domain/directory"
)

type Credential struct {
	EmployeeID   string
	Username     string
	PasswordHash string
}

type AdminAccount struct {
	ID           string
	Username     string
	PasswordHash string
}

type StoreAPI interface {
	FindCredentialByUsername(ctx context.Context, username string) (Credential, directory.Employee, error)
	FindAdminByUsername(ctx context.Context, username string) (AdminAccount, error)
	CreateSession(ctx context.Context, subjectID, sessionRole, tokenHash string, expires time.Time) error
	SessionValid(ctx context.Context, subjectID, sessionRole, tokenHash string) (bool, error)
	RevokeSession(ctx context.Context, subjectID, tokenHash string) error
}
