package combat

import (
	"github.com/mitchelldurbincs/GridTactics/internal/common"
	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/los"
)

// DefaultPenaltyPerTile is the precision lost per interior tile of distance
const DefaultPenaltyPerTile = 10

// Resolver turns line-of-sight geometry into hit chances. It never rolls dice.
type Resolver struct {
	Sight          *los.SightChecker
	PenaltyPerTile int
}

// NewResolver creates a combat resolver
func NewResolver(sight *los.SightChecker, penaltyPerTile int) *Resolver {
	return &Resolver{Sight: sight, PenaltyPerTile: penaltyPerTile}
}

// CoverProtection returns the best protection among covers on the last
// stretch of the line from attacker to target: the tile cover of the last
// interior cell, and the edge covers between that cell (or the attacker
// when adjacent) and the target. A diagonal approach checks both edges
// of the target facing it.
func (r *Resolver) CoverProtection(attacker, target core.Coordinate) int {
	if attacker == target {
		return 0
	}
	grid := r.Sight.Grid

	last := attacker
	best := 0
	if line := los.Line(attacker, target, los.WithoutStartAndEnd); len(line) > 0 {
		last = line[len(line)-1]
		if cover := grid.CoverOn(last); cover != nil {
			best = max(best, cover.Protection)
		}
	}

	var edges [][2]core.Coordinate
	if last.IsAdjacentTo(target) {
		edges = append(edges, [2]core.Coordinate{last, target})
	} else {
		edges = append(edges,
			[2]core.Coordinate{{X: target.X, Y: last.Y}, target},
			[2]core.Coordinate{{X: last.X, Y: target.Y}, target},
		)
	}
	for _, e := range edges {
		if cover := grid.CoverBetween(e[0], e[1]); cover != nil {
			best = max(best, cover.Protection)
		}
	}
	return best
}

// ChanceToHit returns the hit percentage of attacker shooting target with
// w: precision, minus cover (not for melee), minus the distance penalty,
// plus the weapon modifier, clamped to [0,100]
func (r *Resolver) ChanceToHit(attacker, target *core.Unit, w core.Weapon) int {
	from, to := attacker.Position(), target.Position()

	chance := w.Precision
	if w.Kind != core.Melee {
		chance -= r.CoverProtection(from, to)
	}
	chance -= r.PenaltyPerTile * los.Distance(from, to)
	chance += w.Modifier
	return common.Clamp(chance, 0, 100)
}

// IsTileAttackable checks the range and sight gate of weapon w. Melee needs
// a neighboring target, ranged needs sight and a line shorter than the
// weapon range, anything-in-view only needs sight.
func (r *Resolver) IsTileAttackable(attacker *core.Unit, w core.Weapon, target core.Coordinate) bool {
	from := attacker.Position()
	if from == target {
		return false
	}
	switch w.Kind {
	case core.Melee:
		return from.IsNeighborOf(target)
	case core.Ranged:
		return r.Sight.HasSightOn(attacker, target) && los.Distance(from, target) < w.Range
	case core.AnythingInView:
		return r.Sight.HasSightOn(attacker, target)
	}
	return false
}

// CanAttack validates an attack without changing anything
func (r *Resolver) CanAttack(attacker, target *core.Unit) error {
	switch {
	case !attacker.Alive():
		return core.ErrUnitDead
	case target == nil || !target.Alive() || !target.IsPlaced():
		return core.ErrInvalidTarget
	case target == attacker || target.IsAllyOf(attacker):
		return core.ErrFriendlyFire
	case !r.IsTileAttackable(attacker, attacker.Weapon, target.Position()):
		return core.ErrOutOfRange
	case attacker.ActionPoints < attacker.Weapon.APCost:
		return core.ErrNoActionPoints
	case !attacker.Weapon.HasAmmo():
		return core.ErrOutOfAmmo
	}
	return nil
}

// AttackableTargets lists the living enemies in roster that attacker could
// shoot right now
func (r *Resolver) AttackableTargets(attacker *core.Unit, candidates []*core.Unit) []*core.Unit {
	var out []*core.Unit
	for _, t := range candidates {
		if r.CanAttack(attacker, t) == nil {
			out = append(out, t)
		}
	}
	return out
}
