package workflow

import (
	"github.com/L1nkStart/cgm-system-v1-sub000/models"
)

// Session is the authenticated caller, resolved from the PASETO token by
// the session middleware and threaded explicitly through every core
// operation.
type Session struct {
	UserID         string
	Role           string
	AssignedStates []string
}

// stateScopedRoles may only read or operate on cases whose state is in
// their assignedStates list.
var stateScopedRoles = map[string]bool{
	models.RoleAnalistaConcertado: true,
	models.RoleMedicoAuditor:      true,
}

// StateScopedRole reports whether the role's case visibility is bounded by
// its assigned-geography set.
func StateScopedRole(role string) bool {
	return stateScopedRoles[role]
}

// CanAccessCase decides whether the session may see a case in the given
// state. Scoped roles with an empty assignment fail closed.
func CanAccessCase(s Session, caseState string) bool {
	if !stateScopedRoles[s.Role] {
		return true
	}
	for _, st := range s.AssignedStates {
		if st == caseState {
			return true
		}
	}
	return false
}

// VisibleStates resolves the state filter for a list query. For scoped
// roles the assigned set is the security boundary and the requested filter
// is ignored; restricted=true with an empty slice means the caller sees
// zero cases. For unscoped roles the requested filter is applied as a plain
// filter, not a boundary.
func VisibleStates(s Session, requested []string) (states []string, restricted bool) {
	if stateScopedRoles[s.Role] {
		return s.AssignedStates, len(s.AssignedStates) == 0
	}
	return requested, false
}

// CanHandleCases validates an analyst assignment: a user with a
// state-scoped role can only be assigned cases whose state is in their
// assignedStates.
func CanHandleCases(role string, assignedStates []string, caseState string) bool {
	if !stateScopedRoles[role] {
		return true
	}
	for _, st := range assignedStates {
		if st == caseState {
			return true
		}
	}
	return false
}
