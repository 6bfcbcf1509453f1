package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/L1nkStart/cgm-system-v1-sub000/models"
)

func TestCanAccessCaseScopedRoles(t *testing.T) {
	analyst := Session{UserID: "u1", Role: models.RoleAnalistaConcertado, AssignedStates: []string{"Zulia", "Lara"}}

	assert.True(t, CanAccessCase(analyst, "Zulia"))
	assert.True(t, CanAccessCase(analyst, "Lara"))
	assert.False(t, CanAccessCase(analyst, "Miranda"))

	// Empty assignment fails closed.
	auditor := Session{UserID: "u2", Role: models.RoleMedicoAuditor}
	assert.False(t, CanAccessCase(auditor, "Zulia"))
}

func TestCanAccessCaseUnscopedRoles(t *testing.T) {
	for _, role := range []string{
		models.RoleSuperusuario,
		models.RoleCoordinadorRegional,
		models.RoleJefeFinanciero,
		models.RoleAdministrador,
	} {
		s := Session{UserID: "u", Role: role}
		assert.True(t, CanAccessCase(s, "Miranda"), "role %q", role)
	}
}

func TestVisibleStates(t *testing.T) {
	// Scoped role: assigned set is the boundary, requested filter ignored.
	analyst := Session{Role: models.RoleAnalistaConcertado, AssignedStates: []string{"Zulia"}}
	states, restricted := VisibleStates(analyst, []string{"Miranda"})
	assert.Equal(t, []string{"Zulia"}, states)
	assert.False(t, restricted)

	// Scoped role without assignment sees nothing.
	bare := Session{Role: models.RoleMedicoAuditor}
	states, restricted = VisibleStates(bare, nil)
	assert.Empty(t, states)
	assert.True(t, restricted)

	// Unscoped role: requested filter passes through as a plain filter.
	boss := Session{Role: models.RoleJefeFinanciero}
	states, restricted = VisibleStates(boss, []string{"Miranda", "Lara"})
	assert.Equal(t, []string{"Miranda", "Lara"}, states)
	assert.False(t, restricted)
}

func TestCanHandleCases(t *testing.T) {
	assert.False(t, CanHandleCases(models.RoleAnalistaConcertado, []string{"Zulia"}, "Miranda"))
	assert.True(t, CanHandleCases(models.RoleAnalistaConcertado, []string{"Zulia"}, "Zulia"))
	assert.False(t, CanHandleCases(models.RoleMedicoAuditor, nil, "Zulia"))

	// A non-scoped assignee carries no restriction.
	assert.True(t, CanHandleCases(models.RoleSuperusuario, nil, "Miranda"))
}
