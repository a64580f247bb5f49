package los

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/testutil"
)

func TestHasSightOn_Range(t *testing.T) {
	g := testutil.OpenGrid(t, 6, 1)
	viewer := testutil.PlaceUnit(t, g, "viewer", 0, 0, 0)
	s := NewSightChecker(g, DefaultViewBlocking, EverybodyBlocks)
	target := core.Coordinate{X: 4, Y: 0}

	tests := []struct {
		sight    int
		expected bool
	}{
		{5, true},
		{4, true},
		{3, false},
		{1, false},
	}

	for _, tt := range tests {
		viewer.Stats.SightRange = tt.sight
		assert.Equal(t, tt.expected, s.HasSightOn(viewer, target), "sight range %d", tt.sight)
	}

	viewer.Stats.SightRange = 0
	assert.True(t, s.HasSightOn(viewer, viewer.Position()), "own tile is always visible")
}

func TestHasSightOn_DiagonalIsNotCheaper(t *testing.T) {
	g := testutil.OpenGrid(t, 4, 4)
	viewer := testutil.PlaceUnit(t, g, "viewer", 0, 0, 0)
	viewer.Stats.SightRange = 3
	s := NewSightChecker(g, DefaultViewBlocking, NobodyBlocks)

	assert.True(t, s.HasSightOn(viewer, core.Coordinate{X: 3, Y: 0}))
	assert.True(t, s.HasSightOn(viewer, core.Coordinate{X: 3, Y: 3}), "3 diagonal cells cost the same as 3 straight")

	viewer.Stats.SightRange = 2
	assert.False(t, s.HasSightOn(viewer, core.Coordinate{X: 3, Y: 3}))
}

func TestHasSightOn_Terrain(t *testing.T) {
	g := testutil.GridFromRows(t, "..#..", "..o..", "..x..")
	viewer := testutil.PlaceUnit(t, g, "viewer", 0, 0, 0)
	s := NewSightChecker(g, DefaultViewBlocking, NobodyBlocks)

	assert.False(t, s.HasSightOn(viewer, core.Coordinate{X: 4, Y: 0}), "obstacle blocks")

	require.NoError(t, g.Place(viewer, core.Coordinate{X: 0, Y: 1}))
	assert.True(t, s.HasSightOn(viewer, core.Coordinate{X: 4, Y: 1}), "holes do not block by default")

	require.NoError(t, g.Place(viewer, core.Coordinate{X: 0, Y: 2}))
	assert.True(t, s.HasSightOn(viewer, core.Coordinate{X: 4, Y: 2}), "void cells do not block")

	s.ViewBlocking = core.NewTerrainSet(core.Obstacle, core.Hole)
	require.NoError(t, g.Place(viewer, core.Coordinate{X: 0, Y: 1}))
	assert.False(t, s.HasSightOn(viewer, core.Coordinate{X: 4, Y: 1}))
}

func TestHasSightOn_OccupantPolicy(t *testing.T) {
	tests := []struct {
		name         string
		policy       ViewBlockPolicy
		blockerTeam  int
		blockerDead  bool
		expectedSees bool
	}{
		{"nobody blocks enemy", NobodyBlocks, 1, false, true},
		{"nobody blocks ally", NobodyBlocks, 0, false, true},
		{"allies never block ally", AlliesNeverBlock, 0, false, true},
		{"allies never block enemy", AlliesNeverBlock, 1, false, false},
		{"everybody blocks ally", EverybodyBlocks, 0, false, false},
		{"everybody blocks enemy", EverybodyBlocks, 1, false, false},
		{"dead units never block", EverybodyBlocks, 1, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testutil.OpenGrid(t, 5, 1)
			viewer := testutil.PlaceUnit(t, g, "viewer", 0, 0, 0)
			blocker := testutil.PlaceUnit(t, g, "blocker", tt.blockerTeam, 2, 0)
			if tt.blockerDead {
				blocker.TakeDamage(100)
			}
			s := NewSightChecker(g, DefaultViewBlocking, tt.policy)
			assert.Equal(t, tt.expectedSees, s.HasSightOn(viewer, core.Coordinate{X: 4, Y: 0}))
		})
	}
}

func TestHasSightOn_TargetOccupantDoesNotBlock(t *testing.T) {
	g := testutil.OpenGrid(t, 3, 1)
	viewer := testutil.PlaceUnit(t, g, "viewer", 0, 0, 0)
	target := testutil.PlaceUnit(t, g, "target", 1, 2, 0)
	s := NewSightChecker(g, DefaultViewBlocking, EverybodyBlocks)

	assert.True(t, s.HasSightOn(viewer, target.Position()))
}

func TestHasSightOn_NotNecessarilySymmetric(t *testing.T) {
	g := testutil.OpenGrid(t, 6, 1)
	far := testutil.PlaceUnit(t, g, "far-sighted", 0, 0, 0)
	near := testutil.PlaceUnit(t, g, "near-sighted", 1, 5, 0)
	near.Stats.SightRange = 2
	s := NewSightChecker(g, DefaultViewBlocking, NobodyBlocks)

	assert.True(t, s.HasSightOn(far, near.Position()))
	assert.False(t, s.HasSightOn(near, far.Position()))
}

func TestParseViewBlockPolicy(t *testing.T) {
	for _, p := range []ViewBlockPolicy{NobodyBlocks, AlliesNeverBlock, EverybodyBlocks} {
		got, err := ParseViewBlockPolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := ParseViewBlockPolicy("sometimes")
	assert.Error(t, err)
}
