package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
)

// DefaultStats are generous enough that range rarely matters in tests
var DefaultStats = core.Stats{
	SightRange:      10,
	MovementRange:   5,
	MaxHP:           10,
	MaxActionPoints: 2,
}

// Rifle returns a ranged weapon with limited ammo
func Rifle() core.Weapon {
	return core.Weapon{
		Name:      "rifle",
		Kind:      core.Ranged,
		Precision: 80,
		Range:     8,
		Damage:    4,
		Ammo:      3,
		MaxAmmo:   3,
		APCost:    1,
	}
}

// Knife returns a melee weapon that never runs out
func Knife() core.Weapon {
	return core.Weapon{
		Name:      "knife",
		Kind:      core.Melee,
		Precision: 100,
		Damage:    6,
		Ammo:      core.UnlimitedAmmo,
		APCost:    1,
	}
}

// GridFromRows builds a grid from board rows ('.' basic, '#' obstacle,
// 'o' hole, 'l' low cover, 'H' high cover, ' ' or 'x' void)
func GridFromRows(t testing.TB, rows ...string) *core.Grid {
	t.Helper()
	g, err := core.BuildGrid(rows, 25, 50)
	require.NoError(t, err)
	return g
}

// OpenGrid creates a width x height plain of basic terrain
func OpenGrid(t testing.TB, width, height int) *core.Grid {
	t.Helper()
	g, err := core.NewRectGrid(width, height, core.Basic)
	require.NoError(t, err)
	return g
}

// NewUnit creates a unit with DefaultStats and a rifle
func NewUnit(name string, team int) *core.Unit {
	u := core.NewUnit(name, team, DefaultStats, Rifle())
	u.ID = name
	return u
}

// PlaceUnit creates a unit and puts it on the grid at (x,y)
func PlaceUnit(t testing.TB, g *core.Grid, name string, team, x, y int) *core.Unit {
	t.Helper()
	u := NewUnit(name, team)
	require.NoError(t, g.Place(u, core.Coordinate{X: x, Y: y}))
	return u
}

// Coords is shorthand for building coordinate lists from x,y pairs
func Coords(xy ...int) []core.Coordinate {
	out := make([]core.Coordinate, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, core.Coordinate{X: xy[i], Y: xy[i+1]})
	}
	return out
}
