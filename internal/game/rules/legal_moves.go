package rules

import (
	"github.com/mitchelldurbincs/GridTactics/internal/game/combat"
	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/pathfind"
)

// MovementEnvelope is everything a unit could do from where it stands
type MovementEnvelope struct {
	Unit         *core.Unit
	Destinations []*core.Tile
	Targets      []*core.Unit
}

// CanMoveTo reports whether c is one of the envelope's destinations
func (e MovementEnvelope) CanMoveTo(c core.Coordinate) bool {
	for _, t := range e.Destinations {
		if t.Coord == c {
			return true
		}
	}
	return false
}

// Mask returns a row-major boolean mask over the grid bounding box with
// true on every reachable destination
func (e MovementEnvelope) Mask(g *core.Grid) []bool {
	lo, hi := g.Bounds()
	width := hi.X - lo.X + 1
	height := hi.Y - lo.Y + 1
	mask := make([]bool, width*height)
	for _, t := range e.Destinations {
		mask[(t.Coord.Y-lo.Y)*width+(t.Coord.X-lo.X)] = true
	}
	return mask
}

// LegalMoveCalculator computes movement envelopes
type LegalMoveCalculator struct {
	Grid     *core.Grid
	Movement pathfind.Config
	Combat   *combat.Resolver
}

// NewLegalMoveCalculator creates a new legal move calculator
func NewLegalMoveCalculator(grid *core.Grid, movement pathfind.Config, resolver *combat.Resolver) *LegalMoveCalculator {
	return &LegalMoveCalculator{Grid: grid, Movement: movement, Combat: resolver}
}

// Envelope lists the reachable destinations and attackable candidates of u.
// A unit that cannot act, or has no action point left, gets an empty envelope.
func (c *LegalMoveCalculator) Envelope(u *core.Unit, candidates []*core.Unit) MovementEnvelope {
	env := MovementEnvelope{Unit: u}
	if u == nil || !u.CanAct() || !u.IsPlaced() || u.ActionPoints < 1 {
		return env
	}

	rules := pathfind.RulesFor(c.Grid, u, c.Movement)
	env.Destinations = pathfind.Reachable(c.Grid, u.Position(), u.Stats.MovementRange, rules)
	if c.Combat != nil {
		env.Targets = c.Combat.AttackableTargets(u, candidates)
	}
	return env
}
