package directory

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"perfeval/internal/domain/role"
)

type memStore struct {
	employees   map[string]Employee
	credentials map[string]string
	nextID      int
	failCreds   bool
}

func newMemStore() *memStore {
	return &memStore{employees: map[string]Employee{}, credentials: map[string]string{}}
}

func (m *memStore) ListEmployees(_ context.Context) ([]Employee, error) {
	var out []Employee
	for _, emp := range m.employees {
		out = append(out, emp)
	}
	return out, nil
}

func (m *memStore) ListEmployeesByRole(_ context.Context, r role.Role) ([]Employee, error) {
	var out []Employee
	for _, emp := range m.employees {
		if emp.Role == r {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (m *memStore) GetEmployee(_ context.Context, id string) (Employee, error) {
	emp, ok := m.employees[id]
	if !ok {
		return Employee{}, ErrEmployeeNotFound
	}
	return emp, nil
}

func (m *memStore) InsertEmployee(_ context.Context, emp NewEmployee) (Employee, error) {
	for _, existing := range m.employees {
		if existing.Email == emp.Email {
			return Employee{}, ErrDuplicateEmail
		}
	}
	m.nextID++
	created := Employee{
		ID:         "e" + strconv.Itoa(m.nextID),
		Name:       emp.Name,
		Email:      emp.Email,
		Role:       emp.Role,
		Department: emp.Department,
		Position:   emp.Position,
		JoinDate:   emp.JoinDate,
		CreatedAt:  time.Now(),
	}
	m.employees[created.ID] = created
	return created, nil
}

func (m *memStore) UpdateEmployee(_ context.Context, id string, update EmployeeUpdate) (Employee, error) {
	emp, ok := m.employees[id]
	if !ok {
		return Employee{}, ErrEmployeeNotFound
	}
	if update.Name != nil {
		emp.Name = *update.Name
	}
	if update.Email != nil {
		emp.Email = *update.Email
	}
	if update.Role != nil {
		emp.Role = *update.Role
	}
	m.employees[id] = emp
	return emp, nil
}

func (m *memStore) DeleteEmployee(_ context.Context, id string) error {
	if _, ok := m.employees[id]; !ok {
		return ErrEmployeeNotFound
	}
	delete(m.employees, id)
	return nil
}

func (m *memStore) InsertCredential(_ context.Context, employeeID, username, _ string) error {
	if m.failCreds {
		return errors.New("unique violation")
	}
	m.credentials[employeeID] = username
	return nil
}

func (m *memStore) UpdateCredential(_ context.Context, employeeID, _ string) error {
	if _, ok := m.credentials[employeeID]; !ok {
		return errors.New("no credential row")
	}
	return nil
}

func TestCreateWithCredentials(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)

	emp, err := svc.Create(context.Background(), NewEmployee{
		Name:     "Asha Fernando",
		Email:    "asha@example.com",
		Role:     role.Consultant,
		Username: "asha",
		Password: "pw-1234",
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if store.credentials[emp.ID] != "asha" {
		t.Fatalf("credential not stored for %s", emp.ID)
	}
}

func TestCreateRejectsUnknownRole(t *testing.T) {
	svc := NewService(newMemStore())

	_, err := svc.Create(context.Background(), NewEmployee{
		Name:  "Asha Fernando",
		Email: "asha@example.com",
		Role:  "intern",
	})
	if !errors.Is(err, role.ErrInvalidRole) {
		t.Fatalf("expected invalid role error, got %v", err)
	}
}

func TestCreateCompensatesOnCredentialFailure(t *testing.T) {
	store := newMemStore()
	store.failCreds = true
	svc := NewService(store)

	_, err := svc.Create(context.Background(), NewEmployee{
		Name:     "Asha Fernando",
		Email:    "asha@example.com",
		Role:     role.Consultant,
		Username: "asha",
		Password: "pw-1234",
	})
	if err == nil {
		t.Fatal("expected credential failure to surface")
	}
	if len(store.employees) != 0 {
		t.Fatalf("employee row must be rolled back, %d left", len(store.employees))
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)

	first := NewEmployee{Name: "Asha Fernando", Email: "asha@example.com", Role: role.Consultant}
	if _, err := svc.Create(context.Background(), first); err != nil {
		t.Fatalf("create error: %v", err)
	}
	if _, err := svc.Create(context.Background(), first); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected duplicate email error, got %v", err)
	}
}

func TestUpdateRejectsUnknownRole(t *testing.T) {
	svc := NewService(newMemStore())

	bad := role.Role("intern")
	_, err := svc.Update(context.Background(), "e1", EmployeeUpdate{Role: &bad})
	if !errors.Is(err, role.ErrInvalidRole) {
		t.Fatalf("expected invalid role error, got %v", err)
	}
}

func TestResetPasswordMissingEmployee(t *testing.T) {
	svc := NewService(newMemStore())
	if err := svc.ResetPassword(context.Background(), "ghost", "new-pw"); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
