package los

import (
	"fmt"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
)

// ViewBlockPolicy decides which living occupants obstruct a line of sight
type ViewBlockPolicy uint8

const (
	NobodyBlocks ViewBlockPolicy = iota
	AlliesNeverBlock
	EverybodyBlocks
)

func (p ViewBlockPolicy) String() string {
	switch p {
	case NobodyBlocks:
		return "nobody_blocks"
	case AlliesNeverBlock:
		return "allies_never_block"
	case EverybodyBlocks:
		return "everybody_blocks"
	default:
		return fmt.Sprintf("ViewBlockPolicy(%d)", uint8(p))
	}
}

// ParseViewBlockPolicy converts a policy name into its value
func ParseViewBlockPolicy(name string) (ViewBlockPolicy, error) {
	for p := NobodyBlocks; p <= EverybodyBlocks; p++ {
		if p.String() == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown view block policy %q", name)
}

// DefaultViewBlocking is the terrain that stops sight unless configured otherwise
var DefaultViewBlocking = core.NewTerrainSet(core.Obstacle)

// SightChecker answers line-of-sight questions against a grid
type SightChecker struct {
	Grid         *core.Grid
	ViewBlocking core.TerrainSet
	Policy       ViewBlockPolicy
}

// NewSightChecker creates a checker for the given grid
func NewSightChecker(grid *core.Grid, viewBlocking core.TerrainSet, policy ViewBlockPolicy) *SightChecker {
	return &SightChecker{Grid: grid, ViewBlocking: viewBlocking, Policy: policy}
}

// HasSightOn reports whether viewer can see the target cell. Sight fails on
// view-blocking interior terrain, on an obstructing interior occupant, or
// when the line is longer than the viewer's sight range. Void interior
// cells do not obstruct.
func (s *SightChecker) HasSightOn(viewer *core.Unit, target core.Coordinate) bool {
	from := viewer.Position()
	if from == target {
		return true
	}

	interior := Line(from, target, WithoutStartAndEnd)
	if len(interior)+1 > viewer.Stats.SightRange {
		return false
	}

	for _, c := range interior {
		if s.obstructs(viewer, c) {
			return false
		}
	}
	return true
}

// Obstructed reports whether a single cell blocks viewer's sight through it
func (s *SightChecker) Obstructed(viewer *core.Unit, c core.Coordinate) bool {
	return s.obstructs(viewer, c)
}

func (s *SightChecker) obstructs(viewer *core.Unit, c core.Coordinate) bool {
	tile := s.Grid.Tile(c)
	if tile == nil {
		return false
	}
	if s.ViewBlocking.Has(tile.Terrain) {
		return true
	}

	occ := tile.Occupant()
	if occ == nil || !occ.Alive() || occ == viewer {
		return false
	}
	switch s.Policy {
	case EverybodyBlocks:
		return true
	case AlliesNeverBlock:
		return !occ.IsAllyOf(viewer)
	default:
		return false
	}
}
