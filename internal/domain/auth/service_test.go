package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"perfeval/internal/domain/directory"
	"perfeval/internal/domain/role"
)

type sessionRecord struct {
	subjectID string
	role      string
	tokenHash string
	expires   time.Time
	revoked   bool
}

type memStore struct {
	credentials map[string]Credential
	employees   map[string]directory.Employee
	admins      map[string]AdminAccount
	sessions    []sessionRecord
}

func newMemStore() *memStore {
	return &memStore{
		credentials: map[string]Credential{},
		employees:   map[string]directory.Employee{},
		admins:      map[string]AdminAccount{},
	}
}

func (m *memStore) addEmployee(emp directory.Employee, username, password string) {
	hash, _ := HashPassword(password)
	m.credentials[username] = Credential{EmployeeID: emp.ID, Username: username, PasswordHash: hash}
	m.employees[username] = emp
}

func (m *memStore) FindCredentialByUsername(_ context.Context, username string) (Credential, directory.Employee, error) {
	cred, ok := m.credentials[username]
	if !ok {
		return Credential{}, directory.Employee{}, errors.New("no rows")
	}
	return cred, m.employees[username], nil
}

func (m *memStore) FindAdminByUsername(_ context.Context, username string) (AdminAccount, error) {
	account, ok := m.admins[username]
	if !ok {
		return AdminAccount{}, errors.New("no rows")
	}
	return account, nil
}

func (m *memStore) CreateSession(_ context.Context, subjectID, sessionRole, tokenHash string, expires time.Time) error {
	m.sessions = append(m.sessions, sessionRecord{subjectID: subjectID, role: sessionRole, tokenHash: tokenHash, expires: expires})
	return nil
}

func (m *memStore) SessionValid(_ context.Context, subjectID, sessionRole, tokenHash string) (bool, error) {
	for _, s := range m.sessions {
		if s.subjectID == subjectID && s.role == sessionRole && s.tokenHash == tokenHash && !s.revoked && s.expires.After(time.Now()) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) RevokeSession(_ context.Context, subjectID, tokenHash string) error {
	for i, s := range m.sessions {
		if s.subjectID == subjectID && s.tokenHash == tokenHash {
			m.sessions[i].revoked = true
		}
	}
	return nil
}

func TestValidateAccess(t *testing.T) {
	for _, r := range role.All() {
		got, err := ValidateAccess(string(r))
		if err != nil {
			t.Fatalf("configured role %s rejected: %v", r, err)
		}
		if got != r {
			t.Fatalf("expected %s, got %s", r, got)
		}
	}

	for _, bad := range []string{"", "intern", "Consultant", "manager", "admin"} {
		if _, err := ValidateAccess(bad); !errors.Is(err, ErrInvalidRole) {
			t.Fatalf("expected invalid role error for %q, got %v", bad, err)
		}
	}
}

func TestAuthorizeRoleMatch(t *testing.T) {
	roles := role.All()
	for _, registered := range roles {
		emp := directory.Employee{ID: "e1", Name: "Asha Fernando", Role: registered}
		for _, requested := range roles {
			err := AuthorizeRoleMatch(emp, requested)
			if registered == requested {
				if err != nil {
					t.Fatalf("%s entering own portal rejected: %v", registered, err)
				}
				continue
			}
			if !errors.Is(err, ErrRoleMismatch) {
				t.Fatalf("%s entering %s portal: expected role mismatch, got %v", registered, requested, err)
			}
		}
	}
}

func TestRoleMismatchErrorMessage(t *testing.T) {
	err := AuthorizeRoleMatch(
		directory.Employee{Role: role.SeniorConsultant},
		role.Consultant,
	)
	want := "access denied: you are registered as Senior Consultant, not Consultant"
	if err == nil || err.Error() != want {
		t.Fatalf("unexpected message %q, want %q", err, want)
	}
}

func TestAuthenticate(t *testing.T) {
	store := newMemStore()
	store.addEmployee(directory.Employee{ID: "e1", Name: "Asha Fernando", Role: role.Consultant}, "asha", "pw-1234")
	svc := NewService(store, "secret", time.Hour)

	emp, err := svc.Authenticate(context.Background(), "asha", "pw-1234")
	if err != nil {
		t.Fatalf("authenticate error: %v", err)
	}
	if emp.ID != "e1" {
		t.Fatalf("unexpected employee %+v", emp)
	}

	if _, err := svc.Authenticate(context.Background(), "asha", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "ghost", "pw-1234"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user must look like bad credentials, got %v", err)
	}
}

func TestSessionLifecycle(t *testing.T) {
	store := newMemStore()
	emp := directory.Employee{ID: "e1", Name: "Asha Fernando", Role: role.Consultant}
	store.addEmployee(emp, "asha", "pw-1234")
	svc := NewService(store, "secret", time.Hour)

	token, err := svc.StartSession(context.Background(), emp, role.Consultant)
	if err != nil {
		t.Fatalf("start session error: %v", err)
	}

	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if !svc.RestoreSession(context.Background(), claims) {
		t.Fatal("fresh session must restore")
	}

	svc.EndSession(context.Background(), claims)
	if svc.RestoreSession(context.Background(), claims) {
		t.Fatal("revoked session must not restore")
	}
}

func TestRestoreSessionExpired(t *testing.T) {
	store := newMemStore()
	emp := directory.Employee{ID: "e1", Role: role.Consultant}
	svc := NewService(store, "secret", time.Hour)

	token, err := svc.StartSession(context.Background(), emp, role.Consultant)
	if err != nil {
		t.Fatalf("start session error: %v", err)
	}
	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	// Age the server-side record past its window; the still-valid token
	// must restore as absent.
	store.sessions[0].expires = time.Now().Add(-time.Minute)
	if svc.RestoreSession(context.Background(), claims) {
		t.Fatal("expired session must restore as absent")
	}
}

func TestRestoreSessionRoleBound(t *testing.T) {
	store := newMemStore()
	emp := directory.Employee{ID: "e1", Role: role.Consultant}
	svc := NewService(store, "secret", time.Hour)

	token, err := svc.StartSession(context.Background(), emp, role.Consultant)
	if err != nil {
		t.Fatalf("start session error: %v", err)
	}
	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	claims.Role = string(role.SeniorConsultant)
	if svc.RestoreSession(context.Background(), claims) {
		t.Fatal("session recorded for another role must restore as absent")
	}

	claims.Role = string(role.Consultant)
	if !svc.RestoreSession(context.Background(), claims) {
		t.Fatal("session must restore for its recorded role")
	}
}

func TestRestoreSessionNilClaims(t *testing.T) {
	svc := NewService(newMemStore(), "secret", time.Hour)
	if svc.RestoreSession(context.Background(), nil) {
		t.Fatal("nil claims must not restore")
	}
	if svc.RestoreSession(context.Background(), &Claims{EmployeeID: "e1"}) {
		t.Fatal("claims without session id must not restore")
	}
}

func TestMismatchedLoginCreatesNoSession(t *testing.T) {
	store := newMemStore()
	emp := directory.Employee{ID: "e1", Name: "Asha Fernando", Role: role.SeniorConsultant}
	store.addEmployee(emp, "asha", "pw-1234")
	svc := NewService(store, "secret", time.Hour)

	authed, err := svc.Authenticate(context.Background(), "asha", "pw-1234")
	if err != nil {
		t.Fatalf("authenticate error: %v", err)
	}
	if err := AuthorizeRoleMatch(authed, role.Consultant); err == nil {
		t.Fatal("expected role mismatch")
	}
	if len(store.sessions) != 0 {
		t.Fatalf("mismatch must not create sessions, got %d", len(store.sessions))
	}
}

func TestAuthenticateAdmin(t *testing.T) {
	store := newMemStore()
	hash, _ := HashPassword("admin-pw")
	store.admins["admin"] = AdminAccount{ID: "a1", Username: "admin", PasswordHash: hash}
	svc := NewService(store, "secret", time.Hour)

	account, err := svc.AuthenticateAdmin(context.Background(), "admin", "admin-pw")
	if err != nil {
		t.Fatalf("admin authenticate error: %v", err)
	}

	token, err := svc.StartAdminSession(context.Background(), account)
	if err != nil {
		t.Fatalf("start admin session error: %v", err)
	}
	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if !claims.Admin {
		t.Fatal("admin token must carry the admin flag")
	}

	if _, err := svc.AuthenticateAdmin(context.Background(), "admin", "nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}
