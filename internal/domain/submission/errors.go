package submission

import (
	"errors"
	"fmt"
)

var (
	ErrSubmissionNotFound   = errors.New("submission not found")
	ErrTemplateRoleMismatch = errors.New("template is not available to the employee's role")
	ErrNothingToExport      = errors.New("no submissions to export")
)

type Issue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError carries per-field issues for an incomplete or
// out-of-range draft; nothing is persisted when it is returned.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("draft validation failed: %d issue(s)", len(e.Issues))
}
