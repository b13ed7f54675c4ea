package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"perfeval/internal/domain/directory"
	"perfeval/internal/domain/role"
)

// Service is the access gate: portal-role validation, credential checks,
// role matching and session lifecycle.
type Service struct {
	Store  StoreAPI
	Secret string
	TTL    time.Duration
}

func NewService(store StoreAPI, secret string, ttl time.Duration) *Service {
	return &Service{Store: store, Secret: secret, TTL: ttl}
}

// ValidateAccess rejects any portal role outside the configured set before
// credentials are even looked at.
func ValidateAccess(requested string) (role.Role, error) {
	r, ok := role.Parse(requested)
	if !ok {
		return "", ErrInvalidRole
	}
	return r, nil
}

// Authenticate resolves a credential record and compares the bcrypt hash.
// Lookup and comparison failures are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, username, password string) (directory.Employee, error) {
	cred, emp, err := s.Store.FindCredentialByUsername(ctx, username)
	if err != nil {
		return directory.Employee{}, ErrInvalidCredentials
	}
	if err := CheckPassword(cred.PasswordHash, password); err != nil {
		return directory.Employee{}, ErrInvalidCredentials
	}
	return emp, nil
}

// AuthorizeRoleMatch refuses portal entry when the employee's stored role
// differs from the portal being entered.
func AuthorizeRoleMatch(emp directory.Employee, requested role.Role) error {
	if emp.Role != requested {
		return &RoleMismatchError{Registered: emp.Role, Requested: requested}
	}
	return nil
}

func (s *Service) AuthenticateAdmin(ctx context.Context, username, password string) (AdminAccount, error) {
	account, err := s.Store.FindAdminByUsername(ctx, username)
	if err != nil {
		return AdminAccount{}, ErrInvalidCredentials
	}
	if err := CheckPassword(account.PasswordHash, password); err != nil {
		return AdminAccount{}, ErrInvalidCredentials
	}
	return account, nil
}

// StartSession issues a signed token for the employee and records the
// hashed session server-side with the configured validity window.
func (s *Service) StartSession(ctx context.Context, emp directory.Employee, r role.Role) (string, error) {
	return s.issue(ctx, Claims{
		EmployeeID: emp.ID,
		Name:       emp.Name,
		Role:       string(r),
	}, emp.ID, string(r))
}

func (s *Service) StartAdminSession(ctx context.Context, account AdminAccount) (string, error) {
	return s.issue(ctx, Claims{
		EmployeeID: account.ID,
		Name:       account.Username,
		Admin:      true,
	}, account.ID, "admin")
}

func (s *Service) issue(ctx context.Context, claims Claims, subjectID, sessionRole string) (string, error) {
	sessionID := uuid.NewString()
	claims.SessionID = sessionID
	if err := s.Store.CreateSession(ctx, subjectID, sessionRole, HashToken(sessionID), time.Now().Add(s.TTL)); err != nil {
		return "", err
	}
	return GenerateToken(s.Secret, claims, s.TTL)
}

// RestoreSession reports whether the claims still map to a live session
// recorded for the same role. Expired, revoked or malformed sessions
// restore as absent, not as errors.
func (s *Service) RestoreSession(ctx context.Context, claims *Claims) bool {
	if claims == nil || claims.SessionID == "" {
		return false
	}
	sessionRole := claims.Role
	if claims.Admin {
		sessionRole = "admin"
	}
	ok, err := s.Store.SessionValid(ctx, claims.EmployeeID, sessionRole, HashToken(claims.SessionID))
	if err != nil {
		slog.Warn("session lookup failed", "subjectId", claims.EmployeeID, "err", err)
		return false
	}
	return ok
}

// EndSession revokes eagerly; the token stays syntactically valid until
// expiry but the server no longer honors it.
func (s *Service) EndSession(ctx context.Context, claims *Claims) {
	if claims == nil || claims.SessionID == "" {
		return
	}
	if err := s.Store.RevokeSession(ctx, claims.EmployeeID, HashToken(claims.SessionID)); err != nil {
		slog.Warn("session revoke failed", "subjectId", claims.EmployeeID, "err", err)
	}
}
