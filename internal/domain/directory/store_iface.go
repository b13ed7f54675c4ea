package directory

import (
	"context"

	"perfeval/internal/domain/role"
)

type StoreAPI interface {
	ListEmployees(ctx context.Context) ([]Employee, error)
	ListEmployeesByRole(ctx context.Context, r role.Role) ([]Employee, error)
	GetEmployee(ctx context.Context, id string) (Employee, error)
	InsertEmployee(ctx context.Context, emp NewEmployee) (Employee, error)
	UpdateEmployee(ctx context.Context, id string, update EmployeeUpdate) (Employee, error)
	DeleteEmployee(ctx context.Context, id string) error
	InsertCredential(ctx context.Context, employeeID, username, passwordHash string) error
	UpdateCredential(ctx context.Context, employeeID, passwordHash string) error
}
