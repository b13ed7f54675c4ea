package directory

import (
	"time"

	"perfeval/internal/domain/role"
)

type Employee struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       role.Role `json:"role"`
	Department string    `json:"department"`
	Position   string    `json:"position"`
	JoinDate   time.Time `json:"joinDate"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewEmployee is the create payload; credentials are optional and, when
// present, are stored alongside the employee record.
type NewEmployee struct {
	Name       string
	Email      string
	Role       role.Role
	Department string
	Position   string
	JoinDate   time.Time
	Username   string
	Password   string
}

// EmployeeUpdate carries a shallow partial update; nil fields are left
// untouched.
type EmployeeUpdate struct {
	Name       *string
	Email      *string
	Role       *role.Role
	Department *string
	Position   *string
	JoinDate   *time.Time
}
