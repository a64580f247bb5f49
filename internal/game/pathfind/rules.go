package pathfind

import (
	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
)

// DefaultWalkable is the terrain units may stand on unless configured otherwise
var DefaultWalkable = core.NewTerrainSet(core.Basic)

// MovementRules is the immutable rule set of one path query
type MovementRules struct {
	Walkable core.TerrainSet
	Diagonal bool
	blocked  map[core.Coordinate]struct{}
}

// NewRules builds rules from a walkable set, unit-blocked cells and the diagonal flag
func NewRules(walkable core.TerrainSet, blocked []core.Coordinate, diagonal bool) MovementRules {
	r := MovementRules{
		Walkable: walkable,
		Diagonal: diagonal,
		blocked:  make(map[core.Coordinate]struct{}, len(blocked)),
	}
	for _, c := range blocked {
		r.blocked[c] = struct{}{}
	}
	return r
}

// Blocks reports whether a unit stands in the way at c
func (r MovementRules) Blocks(c core.Coordinate) bool {
	_, ok := r.blocked[c]
	return ok
}

// Unblock returns a copy of r in which c is no longer blocked by a unit
func (r MovementRules) Unblock(c core.Coordinate) MovementRules {
	out := MovementRules{
		Walkable: r.Walkable,
		Diagonal: r.Diagonal,
		blocked:  make(map[core.Coordinate]struct{}, len(r.blocked)),
	}
	for b := range r.blocked {
		if b != c {
			out.blocked[b] = struct{}{}
		}
	}
	return out
}

// Config is the match-wide part of the movement rules
type Config struct {
	Walkable core.TerrainSet
	Diagonal bool
}

// RulesFor builds the rules for moving mover now: every other living
// unit on the grid blocks its cell
func RulesFor(g *core.Grid, mover *core.Unit, cfg Config) MovementRules {
	var blocked []core.Coordinate
	for _, t := range g.Tiles() {
		occ := t.Occupant()
		if occ != nil && occ != mover && occ.Alive() {
			blocked = append(blocked, t.Coord)
		}
	}
	return NewRules(cfg.Walkable, blocked, cfg.Diagonal)
}

// IsStepWalkable checks a single step between neighboring cells
func IsStepWalkable(g *core.Grid, from, to core.Coordinate, rules MovementRules) bool {
	if !from.IsNeighborOf(to) {
		return false
	}
	if rules.Blocks(to) || !standable(g, to, rules) {
		return false
	}
	if from.IsAdjacentTo(to) {
		return !edgeBlocks(g, from, to, rules)
	}

	if !rules.Diagonal {
		return false
	}
	for _, corner := range []core.Coordinate{{X: to.X, Y: from.Y}, {X: from.X, Y: to.Y}} {
		if !standable(g, corner, rules) {
			return false
		}
		if edgeBlocks(g, from, corner, rules) || edgeBlocks(g, corner, to, rules) {
			return false
		}
	}
	return true
}

// standable checks terrain and tile cover, ignoring units
func standable(g *core.Grid, c core.Coordinate, rules MovementRules) bool {
	t := g.Tile(c)
	if t == nil || !rules.Walkable.Has(t.Terrain) {
		return false
	}
	if cover := g.CoverOn(c); cover != nil && !rules.Walkable.Has(cover.Terrain) {
		return false
	}
	return true
}

func edgeBlocks(g *core.Grid, a, b core.Coordinate, rules MovementRules) bool {
	cover := g.CoverBetween(a, b)
	return cover != nil && !rules.Walkable.Has(cover.Terrain)
}
