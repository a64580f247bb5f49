package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapUnitError(t *testing.T) {
	tests := []struct {
		name      string
		unitID    string
		operation string
		err       error
		expected  string
		isNil     bool
	}{
		{
			name:      "nil error returns nil",
			unitID:    "u1",
			operation: "move",
			isNil:     true,
		},
		{
			name:      "move to unreachable tile",
			unitID:    "sniper",
			operation: "move to (5,4)",
			err:       ErrUnreachable,
			expected:  "unit sniper move to (5,4): destination is unreachable",
		},
		{
			name:      "attack an ally",
			unitID:    "grunt",
			operation: "attack medic",
			err:       ErrFriendlyFire,
			expected:  "unit grunt attack medic: target is an ally",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := WrapUnitError(tt.unitID, tt.operation, tt.err)
			if tt.isNil {
				assert.Nil(t, wrapped)
				return
			}
			require.NotNil(t, wrapped)
			assert.Equal(t, tt.expected, wrapped.Error())
			assert.True(t, errors.Is(wrapped, tt.err))
		})
	}
}

func TestWrapMatchStateError(t *testing.T) {
	assert.Nil(t, WrapMatchStateError(3, "tick", nil))

	wrapped := WrapMatchStateError(12, "command processing", ErrMatchResolved)
	require.NotNil(t, wrapped)
	assert.Equal(t, "match turn 12 [command processing]: match is resolved", wrapped.Error())
	assert.True(t, errors.Is(wrapped, ErrMatchResolved))
}

func TestMatchError(t *testing.T) {
	t.Run("with unit ID", func(t *testing.T) {
		err := NewMatchError(4, "scout", "reload", ErrNoActionPoints)
		assert.Equal(t, "turn 4: unit scout reload: not enough action points", err.Error())
		assert.True(t, errors.Is(err, ErrNoActionPoints))
	})

	t.Run("without unit ID", func(t *testing.T) {
		err := NewMatchError(9, "", "victory check", ErrMatchResolved)
		assert.Equal(t, "turn 9: victory check: match is resolved", err.Error())
	})

	t.Run("errors.As functionality", func(t *testing.T) {
		matchErr := NewMatchError(50, "u7", "attack", fmt.Errorf("boom"))

		var extracted *MatchError
		assert.True(t, errors.As(fmt.Errorf("outer: %w", matchErr), &extracted))
		assert.Equal(t, 50, extracted.Turn)
		assert.Equal(t, "u7", extracted.UnitID)
		assert.Equal(t, "attack", extracted.Operation)
	})
}

func TestWrapCommandError(t *testing.T) {
	assert.Nil(t, WrapCommandError("move", "u1", nil))

	err := WrapCommandError("attack", "u1", ErrOutOfAmmo)
	assert.Equal(t, "command attack for unit u1: weapon is out of ammo", err.Error())
	assert.True(t, errors.Is(err, ErrOutOfAmmo))

	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, "attack", cmdErr.Command)

	noUnit := WrapCommandError("end_turn", "", ErrMatchResolved)
	assert.Equal(t, "command end_turn: match is resolved", noUnit.Error())
}
