package principal_test

import (
	"testing"

	"production/internal/core/domain/model/principal"
	"production/internal/core/domain/model/stage"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	t.Run("coordinator", func(t *testing.T) {
		p, err := principal.NewCoordinator("admin")

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.Equal(t, "admin", p.Username())
		assert.Equal(t, principal.Coordinator, p.Role())
		_, ok := p.AssignedStage()
		assert.False(t, ok)
	})

	t.Run("planner", func(t *testing.T) {
		p, err := principal.NewPlanner(" planner ")

		require.NoError(t, err)
		assert.Equal(t, "planner", p.Username())
		assert.Equal(t, principal.Planner, p.Role())
	})

	t.Run("operator", func(t *testing.T) {
		p, err := principal.NewOperator("die_cutter", "Die-cutting")

		require.NoError(t, err)
		s, ok := p.AssignedStage()
		assert.True(t, ok)
		assert.Equal(t, stage.Stage("Die-cutting"), s)
	})
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		role     principal.Role
		stage    stage.Stage
		wantErr  error
	}{
		{name: "empty username", username: " ", role: principal.Planner, wantErr: errs.ErrValueIsRequired},
		{name: "unknown role", username: "x", role: principal.UnknownRole, wantErr: errs.ErrValueIsInvalid},
		{name: "operator without stage", username: "x", role: principal.Operator, wantErr: errs.ErrValueIsRequired},
		{
			name:     "planner with stage",
			username: "x",
			role:     principal.Planner,
			stage:    "Printing",
			wantErr:  errs.ErrValueIsInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := principal.New(tt.username, tt.role, tt.stage)

			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, principal.ErrPrincipalIsNotConstructed, p.Validate())
		})
	}
}

func TestPrincipal_ValidateAgainst(t *testing.T) {
	catalog, err := stage.NewCatalog("Queued", "Printing")
	require.NoError(t, err)

	op, _ := principal.NewOperator("op", "Printing")
	require.NoError(t, op.ValidateAgainst(catalog))

	stray, _ := principal.NewOperator("op", "Laminating")
	require.ErrorIs(t, stray.ValidateAgainst(catalog), stage.ErrUnknownStage)

	coord, _ := principal.NewCoordinator("admin")
	require.NoError(t, coord.ValidateAgainst(catalog))
}

func TestRole(t *testing.T) {
	for _, role := range []principal.Role{principal.Coordinator, principal.Planner, principal.Operator} {
		parsed, err := principal.ParseRole(role.String())
		require.NoError(t, err)
		assert.Equal(t, role, parsed)
		require.NoError(t, role.Validate())
	}

	parsed, err := principal.ParseRole("PLANNER")
	require.NoError(t, err)
	assert.Equal(t, principal.Planner, parsed)

	_, err = principal.ParseRole("maestro")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	assert.Equal(t, "unknown", principal.Role(42).String())
	require.Error(t, principal.Role(42).Validate())
}
