// Package role is the single source of truth for the closed set of
// employee roles. Every portal endpoint, template and submission is scoped
// to exactly one of these values.
package role

import "errors"

// ErrInvalidRole reports a value outside the configured role set.
var ErrInvalidRole = errors.New("unknown role")

// Role identifies one employee category.
type Role string

const (
	PrincipalConsultant Role = "principal-consultant"
	SeniorConsultant    Role = "senior-consultant"
	Consultant          Role = "consultant"
	SeniorBIDeveloper   Role = "senior-bi-developer"
	BIDeveloper         Role = "bi-developer"
)

// RegistryVersion identifies the current role set. Adding or removing a
// role bumps the version and requires a data migration for employees,
// templates and submissions still referencing retired values.
const RegistryVersion = 2

var displayNames = map[Role]string{
	PrincipalConsultant: "Principal Consultant",
	SeniorConsultant:    "Senior Consultant",
	Consultant:          "Consultant",
	SeniorBIDeveloper:   "Senior BI Developer",
	BIDeveloper:         "BI Developer",
}

// retired maps roles from earlier registry versions to the version that
// removed them. Rows carrying these values are read-only legacy data.
var retired = map[Role]int{
	"manager":           2,
	"team-lead":         2,
	"junior-consultant": 2,
}

// All returns the configured roles in display order.
func All() []Role {
	return []Role{
		PrincipalConsultant,
		SeniorConsultant,
		Consultant,
		SeniorBIDeveloper,
		BIDeveloper,
	}
}

func (r Role) Valid() bool {
	_, ok := displayNames[r]
	return ok
}

// Display returns the human-readable role name, falling back to the raw
// value for retired roles found in historical rows.
func (r Role) Display() string {
	if name, ok := displayNames[r]; ok {
		return name
	}
	return string(r)
}

func Parse(value string) (Role, bool) {
	r := Role(value)
	return r, r.Valid()
}

// RetiredIn reports the registry version in which a role was removed.
func RetiredIn(r Role) (int, bool) {
	version, ok := retired[r]
	return version, ok
}
