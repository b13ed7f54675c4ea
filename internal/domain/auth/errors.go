package auth

import (
	"errors"
	"fmt"

	"perfeval/internal/domain/role"
)

var (
	ErrInvalidRole        = role.ErrInvalidRole
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRoleMismatch       = errors.New("role mismatch")
)

// RoleMismatchError names both the employee's registered role and the
// portal role that was attempted, for the user-facing refusal.
type RoleMismatchError struct {
	Registered role.Role
	Requested  role.Role
}

func (e *RoleMismatchError) Error() string {
	return fmt.Sprintf("access denied: you are registered as %s, not %s", e.Registered.Display(), e.Requested.Display())
}

func (e *RoleMismatchError) Is(target error) bool {
	return target == ErrRoleMismatch
}
