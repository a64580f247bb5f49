package game

import (
	"github.com/mitchelldurbincs/GridTactics/internal/game/combat"
	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/events"
	"github.com/mitchelldurbincs/GridTactics/internal/game/turn"
)

// Movement walks a unit along an accepted path one tile per Step. Grid
// occupancy and the unit position change together. A movement cannot be
// cancelled; the match accepts no other action until it is done.
type Movement struct {
	match *Match
	unit  *core.Unit
	path  []core.Coordinate
	next  int
	done  bool
}

func newMovement(m *Match, u *core.Unit, path []*core.Tile) *Movement {
	coords := make([]core.Coordinate, len(path))
	for i, t := range path {
		coords[i] = t.Coord
	}
	return &Movement{match: m, unit: u, path: coords, next: 1}
}

func (mv *Movement) kind() string {
	return OpMove
}

func (mv *Movement) Unit() *core.Unit {
	return mv.unit
}

// Path returns the full path, start included
func (mv *Movement) Path() []core.Coordinate {
	return append([]core.Coordinate(nil), mv.path...)
}

// Destination is the last tile of the path
func (mv *Movement) Destination() core.Coordinate {
	return mv.path[len(mv.path)-1]
}

// Remaining counts the tiles still to enter
func (mv *Movement) Remaining() int {
	return len(mv.path) - mv.next
}

func (mv *Movement) Done() bool {
	return mv.done
}

// Step enters the next tile and reports whether more steps remain
func (mv *Movement) Step() (bool, error) {
	if mv.done {
		return false, nil
	}
	m := mv.match
	from, to := mv.path[mv.next-1], mv.path[mv.next]
	if err := m.grid.Move(mv.unit, to); err != nil {
		m.logger.Error().Err(err).Str("unit", mv.unit.Name).Msg("Movement interrupted")
		mv.complete()
		return false, core.WrapUnitError(mv.unit.ID, OpMove, err)
	}
	mv.next++

	m.bus.Publish(events.NewMovementStepEvent(m.id, events.RefOf(mv.unit), from, to, mv.Remaining(), m.Turn()))
	if mv.next == len(mv.path) {
		mv.complete()
	}
	return !mv.done, nil
}

// Finish steps until the destination is reached
func (mv *Movement) Finish() error {
	for !mv.done {
		if _, err := mv.Step(); err != nil {
			return err
		}
	}
	return nil
}

func (mv *Movement) complete() {
	mv.done = true
	m := mv.match
	m.inFlight = nil
	m.bus.Publish(events.NewMovementEndedEvent(m.id, events.RefOf(mv.unit), mv.next-1, m.Turn()))
	if mv.unit.ActionPoints == 0 {
		m.endUnitTurn()
	}
}

// Attack is an accepted attack whose hit or miss is already decided
type Attack struct {
	match *Match
	inner *combat.Attack
}

func (a *Attack) kind() string {
	return OpAttack
}

// Decision returns the decided chance, roll and outcome
func (a *Attack) Decision() combat.Decision {
	return a.inner.Decision
}

func (a *Attack) Hit() bool {
	return a.inner.Hit
}

func (a *Attack) IsResolved() bool {
	return a.inner.IsResolved()
}

// Resolve applies damage exactly once and re-checks victory. Later calls
// return the first result and ErrAlreadyResolved.
func (a *Attack) Resolve() (combat.Result, error) {
	res, err := a.inner.Resolve()
	if err != nil {
		return res, err
	}

	m := a.match
	m.inFlight = nil
	d := a.inner.Decision
	attacker, target := events.RefOf(d.Attacker), events.RefOf(d.Target)

	m.bus.Publish(events.NewAttackExecutedEvent(m.id, attacker, target,
		d.Weapon.Name, d.Chance, d.Hit, res.Damage, d.Target.HP, m.Turn()))
	if res.Killed {
		m.grid.Remove(d.Target)
		m.logger.Info().
			Str("unit", d.Target.Name).
			Str("killed_by", d.Attacker.Name).
			Msg("Unit killed")
		m.bus.Publish(events.NewUnitKilledEvent(m.id, target, attacker, m.Turn()))
	}
	m.bus.Publish(events.NewAttackEndedEvent(m.id, attacker, target, d.Weapon.Name, d.Chance, d.Hit, m.Turn()))

	if m.scheduler.CheckVictory() != turn.Continue {
		return res, nil
	}
	if d.Attacker.ActionPoints == 0 {
		m.endUnitTurn()
	}
	return res, nil
}
