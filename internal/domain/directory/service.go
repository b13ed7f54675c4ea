package directory

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"perfeval/internal/domain/role"
	pw "perfeval/internal/platform/password"
)

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

func (s *Service) List(ctx context.Context) ([]Employee, error) {
	return s.Store.ListEmployees(ctx)
}

func (s *Service) ListByRole(ctx context.Context, r role.Role) ([]Employee, error) {
	if !r.Valid() {
		return nil, role.ErrInvalidRole
	}
	return s.Store.ListEmployeesByRole(ctx, r)
}

func (s *Service) Get(ctx context.Context, id string) (Employee, error) {
	return s.Store.GetEmployee(ctx, id)
}

// Create inserts the employee and, when a username is supplied, its
// credential record. There is no transaction spanning the two tables; a
// failed credential insert compensates by deleting the fresh employee row.
func (s *Service) Create(ctx context.Context, emp NewEmployee) (Employee, error) {
	if !emp.Role.Valid() {
		return Employee{}, role.ErrInvalidRole
	}

	created, err := s.Store.InsertEmployee(ctx, emp)
	if err != nil {
		return Employee{}, err
	}

	if strings.TrimSpace(emp.Username) != "" {
		hash, err := pw.Hash(emp.Password)
		if err != nil {
			s.compensateCreate(ctx, created.ID)
			return Employee{}, err
		}
		if err := s.Store.InsertCredential(ctx, created.ID, emp.Username, hash); err != nil {
			s.compensateCreate(ctx, created.ID)
			return Employee{}, fmt.Errorf("create credentials: %w", err)
		}
	}

	return created, nil
}

func (s *Service) compensateCreate(ctx context.Context, employeeID string) {
	if err := s.Store.DeleteEmployee(ctx, employeeID); err != nil {
		slog.Warn("compensating employee delete failed", "employeeId", employeeID, "err", err)
	}
}

func (s *Service) Update(ctx context.Context, id string, update EmployeeUpdate) (Employee, error) {
	if update.Role != nil && !update.Role.Valid() {
		return Employee{}, role.ErrInvalidRole
	}
	return s.Store.UpdateEmployee(ctx, id, update)
}

// Delete removes the employee and their credentials. Past submissions are
// deliberately left in place as evaluation history.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Store.DeleteEmployee(ctx, id)
}

func (s *Service) ResetPassword(ctx context.Context, employeeID, newPassword string) error {
	if _, err := s.Store.GetEmployee(ctx, employeeID); err != nil {
		return err
	}
	hash, err := pw.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.Store.UpdateCredential(ctx, employeeID, hash)
}
