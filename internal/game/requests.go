package game

import (
	"fmt"

	"github.com/mitchelldurbincs/GridTactics/internal/game/combat"
	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/events"
	"github.com/mitchelldurbincs/GridTactics/internal/game/pathfind"
)

// Operation names used in errors and command.rejected events
const (
	OpMove           = "move"
	OpAttack         = "attack"
	OpReload         = "reload"
	OpEndUnitTurn    = "end_unit_turn"
	OpEndTurn        = "end_turn"
	OpSwitchTeammate = "switch_teammate"
)

// reject logs and publishes a refused request, then returns it as a MatchError
func (m *Match) reject(op, unitID string, err error) error {
	m.logger.Debug().
		Str("operation", op).
		Str("unit_id", unitID).
		Err(err).
		Msg("Request rejected")
	m.bus.Publish(events.NewCommandRejectedEvent(m.id, op, unitID, err, m.scheduler.Turn()))
	return core.NewMatchError(m.scheduler.Turn(), unitID, op, err)
}

// ready checks that the match accepts a new action
func (m *Match) ready() error {
	if m.scheduler.IsResolved() || !m.Phase().CanReceiveActions() {
		return core.ErrMatchResolved
	}
	if m.inFlight != nil {
		return fmt.Errorf("%w: %s", core.ErrActionInProgress, m.inFlight.kind())
	}
	return nil
}

// actor returns the unit allowed to act on behalf of unitID
func (m *Match) actor(unitID string) (*core.Unit, error) {
	if err := m.ready(); err != nil {
		return nil, err
	}
	u, ok := m.units[unitID]
	switch {
	case !ok:
		return nil, core.ErrUnknownUnit
	case !u.Alive():
		return nil, core.ErrUnitDead
	case u != m.scheduler.Current():
		return nil, core.ErrNotCurrentUnit
	case u.Played:
		return nil, core.ErrUnitUnavailable
	}
	return u, nil
}

// endUnitTurn closes the current unit's turn after its last action point
func (m *Match) endUnitTurn() {
	if err := m.scheduler.EndUnitTurn(); err != nil {
		m.logger.Debug().Err(err).Msg("Unit turn not ended")
	}
}

// RequestMove commits the current unit to the cheapest path towards dest.
// One action point is spent up front; the unit walks as the returned
// Movement is stepped.
func (m *Match) RequestMove(unitID string, dest core.Coordinate) (*Movement, error) {
	u, err := m.actor(unitID)
	if err != nil {
		return nil, m.reject(OpMove, unitID, err)
	}
	if u.ActionPoints < 1 {
		return nil, m.reject(OpMove, unitID, core.ErrNoActionPoints)
	}

	path := m.Path(u, dest)
	if len(path) < 2 {
		return nil, m.reject(OpMove, unitID, fmt.Errorf("%w: %v", core.ErrUnreachable, dest))
	}
	if steps := pathfind.Steps(path); steps > u.Stats.MovementRange {
		return nil, m.reject(OpMove, unitID,
			fmt.Errorf("%w: %d steps, movement range %d", core.ErrUnreachable, steps, u.Stats.MovementRange))
	}

	if err := u.SpendActionPoints(1); err != nil {
		return nil, m.reject(OpMove, unitID, err)
	}
	mv := newMovement(m, u, path)
	m.inFlight = mv

	m.logger.Debug().
		Str("unit", u.Name).
		Str("from", u.Position().String()).
		Str("to", dest.String()).
		Int("steps", len(path)-1).
		Msg("Movement started")
	m.bus.Publish(events.NewMovementStartedEvent(m.id, events.RefOf(u), mv.Path(), pathfind.PathCost(path), m.Turn()))
	return mv, nil
}

// RequestAttack decides hit or miss right away; damage waits for Attack.Resolve
func (m *Match) RequestAttack(unitID, targetID string) (*Attack, error) {
	u, err := m.actor(unitID)
	if err != nil {
		return nil, m.reject(OpAttack, unitID, err)
	}
	target, ok := m.units[targetID]
	if !ok {
		return nil, m.reject(OpAttack, unitID, fmt.Errorf("%w: unknown unit %q", core.ErrInvalidTarget, targetID))
	}
	if err := m.combat.CanAttack(u, target); err != nil {
		return nil, m.reject(OpAttack, unitID, err)
	}

	if err := u.SpendActionPoints(u.Weapon.APCost); err != nil {
		return nil, m.reject(OpAttack, unitID, err)
	}
	if err := u.ConsumeAmmo(); err != nil {
		return nil, m.reject(OpAttack, unitID, err)
	}

	decision := m.combat.Decide(u, target, m.roller)
	a := &Attack{match: m, inner: combat.NewAttack(decision)}
	m.inFlight = a

	m.logger.Debug().
		Str("attacker", u.Name).
		Str("target", target.Name).
		Int("chance", decision.Chance).
		Int("roll", decision.Roll).
		Bool("hit", decision.Hit).
		Msg("Attack decided")
	m.bus.Publish(events.NewAttackStartedEvent(m.id, events.RefOf(u), events.RefOf(target),
		decision.Weapon.Name, decision.Chance, decision.Hit, m.Turn()))
	return a, nil
}

// RequestReload refills the current unit's weapon
func (m *Match) RequestReload(unitID string) error {
	u, err := m.actor(unitID)
	if err != nil {
		return m.reject(OpReload, unitID, err)
	}
	if u.Weapon.Ammo == core.UnlimitedAmmo || u.Weapon.Ammo >= u.Weapon.MaxAmmo {
		return m.reject(OpReload, unitID, core.ErrNothingToReload)
	}
	if err := u.SpendActionPoints(m.rules.ReloadAPCost); err != nil {
		return m.reject(OpReload, unitID, err)
	}

	u.Reload()
	m.bus.Publish(events.NewWeaponReloadedEvent(m.id, events.RefOf(u), u.Weapon.Ammo, m.Turn()))
	if u.ActionPoints == 0 {
		m.endUnitTurn()
	}
	return nil
}

// RequestEndUnitTurn ends the current unit's turn early
func (m *Match) RequestEndUnitTurn(unitID string) error {
	if _, err := m.actor(unitID); err != nil {
		return m.reject(OpEndUnitTurn, unitID, err)
	}
	if err := m.scheduler.EndUnitTurn(); err != nil {
		return m.reject(OpEndUnitTurn, unitID, err)
	}
	return nil
}

// RequestEndTurn ends the turn of every unit of the current team
func (m *Match) RequestEndTurn() error {
	if err := m.ready(); err != nil {
		return m.reject(OpEndTurn, "", err)
	}
	if err := m.scheduler.EndAllUnitsOfCurrentTeam(); err != nil {
		return m.reject(OpEndTurn, "", err)
	}
	return nil
}

// RequestSwitchTeammate hands the focus to the next (or previous) teammate
// that can still act
func (m *Match) RequestSwitchTeammate(forward bool) (*core.Unit, error) {
	if err := m.ready(); err != nil {
		return nil, m.reject(OpSwitchTeammate, "", err)
	}
	u, err := m.scheduler.SwitchToTeammate(forward)
	if err != nil {
		return nil, m.reject(OpSwitchTeammate, "", err)
	}
	return u, nil
}
