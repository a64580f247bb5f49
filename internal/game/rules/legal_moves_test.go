package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mitchelldurbincs/GridTactics/internal/game/combat"
	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/los"
	"github.com/mitchelldurbincs/GridTactics/internal/game/pathfind"
	"github.com/mitchelldurbincs/GridTactics/internal/testutil"
)

func newCalculator(g *core.Grid) *LegalMoveCalculator {
	sight := los.NewSightChecker(g, los.DefaultViewBlocking, los.AlliesNeverBlock)
	return NewLegalMoveCalculator(g,
		pathfind.Config{Walkable: pathfind.DefaultWalkable, Diagonal: true},
		combat.NewResolver(sight, combat.DefaultPenaltyPerTile))
}

func TestEnvelope(t *testing.T) {
	g := testutil.OpenGrid(t, 5, 5)
	u := testutil.PlaceUnit(t, g, "u", 0, 2, 2)
	u.Stats.MovementRange = 1
	enemy := testutil.PlaceUnit(t, g, "enemy", 1, 4, 4)

	env := newCalculator(g).Envelope(u, []*core.Unit{enemy})

	assert.Len(t, env.Destinations, 8)
	assert.True(t, env.CanMoveTo(core.Coordinate{X: 1, Y: 1}))
	assert.False(t, env.CanMoveTo(core.Coordinate{X: 2, Y: 2}))
	assert.False(t, env.CanMoveTo(core.Coordinate{X: 0, Y: 0}))
	assert.Equal(t, []*core.Unit{enemy}, env.Targets)
}

func TestEnvelope_Unavailable(t *testing.T) {
	tests := []struct {
		name  string
		setup func(u *core.Unit)
	}{
		{"dead", func(u *core.Unit) { u.TakeDamage(100) }},
		{"played", func(u *core.Unit) { u.Played = true }},
		{"no action points", func(u *core.Unit) { u.ActionPoints = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testutil.OpenGrid(t, 3, 3)
			u := testutil.PlaceUnit(t, g, "u", 0, 1, 1)
			tt.setup(u)

			env := newCalculator(g).Envelope(u, nil)
			assert.Empty(t, env.Destinations)
			assert.Empty(t, env.Targets)
		})
	}
}

func TestEnvelope_Mask(t *testing.T) {
	g := testutil.GridFromRows(t,
		"...",
		".#.",
	)
	u := testutil.PlaceUnit(t, g, "u", 0, 0, 0)
	u.Stats.MovementRange = 1

	env := newCalculator(g).Envelope(u, nil)
	assert.Equal(t, []bool{
		false, true, false,
		true, false, false,
	}, env.Mask(g))
}
