package template

import (
	"time"

	"perfeval/internal/domain/role"
)

// Criterion is one scored dimension of a template. Order is insertion
// order and only matters for display.
type Criterion struct {
	ID          string `json:"id"`
	Criteria    string `json:"criteria"`
	Description string `json:"description"`
	MaxMarks    int    `json:"maxMarks"`
}

// Template is the live, mutable evaluation form for one role. Submissions
// never reference it directly; they embed a frozen copy of its criteria.
type Template struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Role      role.Role   `json:"role"`
	Criteria  []Criterion `json:"criteria"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

type NewCriterion struct {
	Criteria    string
	Description string
	MaxMarks    int
}

type NewTemplate struct {
	Name     string
	Role     role.Role
	Criteria []NewCriterion
}

// TemplateUpdate is a shallow merge; a non-nil Criteria slice replaces the
// criteria list wholesale.
type TemplateUpdate struct {
	Name     *string
	Role     *role.Role
	Criteria []NewCriterion
}

type CriterionUpdate struct {
	Criteria    *string
	Description *string
	MaxMarks    *int
}

// MaxMarks bounds enforced at the boundary.
const (
	MinMaxMarks = 1
	MaxMaxMarks = 100
)
