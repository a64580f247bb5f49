package events

import (
	"time"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
)

// Event type constants
const (
	TypeMatchStarted    = "match.started"
	TypeTeamTurnStarted = "team_turn.started"
	TypeUnitTurnStarted = "unit_turn.started"
	TypeUnitTurnEnded   = "unit_turn.ended"
	TypeMovementStarted = "movement.started"
	TypeMovementStep    = "movement.step"
	TypeMovementEnded   = "movement.ended"
	TypeAttackStarted   = "attack.started"
	TypeAttackExecuted  = "attack.executed"
	TypeAttackEnded     = "attack.ended"
	TypeUnitKilled      = "unit.killed"
	TypeMatchVictory    = "match.victory"
	TypeStateTransition = "state.transition"
	TypeCommandRejected = "command.rejected"
	TypeWeaponReloaded  = "weapon.reloaded"
	TypeFocusChanged    = "unit_turn.focus_changed"
)

func base(eventType, matchID string) BaseEvent {
	return BaseEvent{
		EventType: eventType,
		Time:      time.Now(),
		Match:     matchID,
	}
}

// UnitRef identifies a unit in an event without handing out the unit itself
type UnitRef struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Team     int             `json:"team"`
	Position core.Coordinate `json:"position"`
}

// RefOf snapshots u
func RefOf(u *core.Unit) UnitRef {
	if u == nil {
		return UnitRef{}
	}
	return UnitRef{ID: u.ID, Name: u.Name, Team: u.Team, Position: u.Position()}
}

// MatchStartedEvent is published when a match begins
type MatchStartedEvent struct {
	BaseEvent
	NumTeams  int
	NumUnits  int
	MapWidth  int
	MapHeight int
}

// NewMatchStartedEvent creates a new MatchStartedEvent
func NewMatchStartedEvent(matchID string, numTeams, numUnits, width, height int) *MatchStartedEvent {
	return &MatchStartedEvent{
		BaseEvent: base(TypeMatchStarted, matchID),
		NumTeams:  numTeams,
		NumUnits:  numUnits,
		MapWidth:  width,
		MapHeight: height,
	}
}

// TeamTurnStartedEvent is published when a team gets to act
type TeamTurnStartedEvent struct {
	BaseEvent
	Metadata EventMetadata
	TeamName string
}

// NewTeamTurnStartedEvent creates a new TeamTurnStartedEvent
func NewTeamTurnStartedEvent(matchID string, team int, teamName string, turn int) *TeamTurnStartedEvent {
	return &TeamTurnStartedEvent{
		BaseEvent: base(TypeTeamTurnStarted, matchID),
		Metadata:  EventMetadata{TeamID: team, Turn: turn},
		TeamName:  teamName,
	}
}

// UnitTurnEvent is published when a unit gains or loses the focus
type UnitTurnEvent struct {
	BaseEvent
	Metadata EventMetadata
	Unit     UnitRef
}

// NewUnitTurnStartedEvent creates a unit_turn.started event
func NewUnitTurnStartedEvent(matchID string, unit UnitRef, turn int) *UnitTurnEvent {
	return &UnitTurnEvent{
		BaseEvent: base(TypeUnitTurnStarted, matchID),
		Metadata:  EventMetadata{TeamID: unit.Team, Turn: turn},
		Unit:      unit,
	}
}

// FocusChangedEvent is published when the focus moves to a teammate
// without ending anyone's turn. From keeps its availability.
type FocusChangedEvent struct {
	BaseEvent
	Metadata EventMetadata
	From     UnitRef
	To       UnitRef
}

// NewFocusChangedEvent creates a unit_turn.focus_changed event
func NewFocusChangedEvent(matchID string, from, to UnitRef, turn int) *FocusChangedEvent {
	return &FocusChangedEvent{
		BaseEvent: base(TypeFocusChanged, matchID),
		Metadata:  EventMetadata{TeamID: to.Team, Turn: turn},
		From:      from,
		To:        to,
	}
}

// NewUnitTurnEndedEvent creates a unit_turn.ended event
func NewUnitTurnEndedEvent(matchID string, unit UnitRef, turn int) *UnitTurnEvent {
	return &UnitTurnEvent{
		BaseEvent: base(TypeUnitTurnEnded, matchID),
		Metadata:  EventMetadata{TeamID: unit.Team, Turn: turn},
		Unit:      unit,
	}
}

// MovementStartedEvent is published when a unit commits to a path
type MovementStartedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Unit     UnitRef
	Path     []core.Coordinate
	Cost     int
}

// NewMovementStartedEvent creates a new MovementStartedEvent
func NewMovementStartedEvent(matchID string, unit UnitRef, path []core.Coordinate, cost, turn int) *MovementStartedEvent {
	return &MovementStartedEvent{
		BaseEvent: base(TypeMovementStarted, matchID),
		Metadata:  EventMetadata{TeamID: unit.Team, Turn: turn},
		Unit:      unit,
		Path:      path,
		Cost:      cost,
	}
}

// MovementStepEvent is published for every tile a moving unit enters
type MovementStepEvent struct {
	BaseEvent
	Metadata  EventMetadata
	Unit      UnitRef
	From      core.Coordinate
	To        core.Coordinate
	Remaining int
}

// NewMovementStepEvent creates a new MovementStepEvent
func NewMovementStepEvent(matchID string, unit UnitRef, from, to core.Coordinate, remaining, turn int) *MovementStepEvent {
	return &MovementStepEvent{
		BaseEvent: base(TypeMovementStep, matchID),
		Metadata:  EventMetadata{TeamID: unit.Team, Turn: turn},
		Unit:      unit,
		From:      from,
		To:        to,
		Remaining: remaining,
	}
}

// MovementEndedEvent is published when a unit reaches its destination
type MovementEndedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Unit     UnitRef
	Steps    int
}

// NewMovementEndedEvent creates a new MovementEndedEvent
func NewMovementEndedEvent(matchID string, unit UnitRef, steps, turn int) *MovementEndedEvent {
	return &MovementEndedEvent{
		BaseEvent: base(TypeMovementEnded, matchID),
		Metadata:  EventMetadata{TeamID: unit.Team, Turn: turn},
		Unit:      unit,
		Steps:     steps,
	}
}

// AttackEvent covers the three phases of an attack. Damage and TargetHP
// are only meaningful once the attack is executed.
type AttackEvent struct {
	BaseEvent
	Metadata EventMetadata
	Attacker UnitRef
	Target   UnitRef
	Weapon   string
	Chance   int
	Hit      bool
	Damage   int
	TargetHP int
}

func newAttackEvent(eventType, matchID string, attacker, target UnitRef, weapon string, chance int, hit bool, turn int) *AttackEvent {
	return &AttackEvent{
		BaseEvent: base(eventType, matchID),
		Metadata:  EventMetadata{TeamID: attacker.Team, Turn: turn},
		Attacker:  attacker,
		Target:    target,
		Weapon:    weapon,
		Chance:    chance,
		Hit:       hit,
	}
}

// NewAttackStartedEvent creates an attack.started event once hit or miss is decided
func NewAttackStartedEvent(matchID string, attacker, target UnitRef, weapon string, chance int, hit bool, turn int) *AttackEvent {
	return newAttackEvent(TypeAttackStarted, matchID, attacker, target, weapon, chance, hit, turn)
}

// NewAttackExecutedEvent creates an attack.executed event after damage is applied
func NewAttackExecutedEvent(matchID string, attacker, target UnitRef, weapon string, chance int, hit bool, damage, targetHP, turn int) *AttackEvent {
	e := newAttackEvent(TypeAttackExecuted, matchID, attacker, target, weapon, chance, hit, turn)
	e.Damage = damage
	e.TargetHP = targetHP
	return e
}

// NewAttackEndedEvent creates an attack.ended event
func NewAttackEndedEvent(matchID string, attacker, target UnitRef, weapon string, chance int, hit bool, turn int) *AttackEvent {
	return newAttackEvent(TypeAttackEnded, matchID, attacker, target, weapon, chance, hit, turn)
}

// UnitKilledEvent is published when a unit drops to zero HP
type UnitKilledEvent struct {
	BaseEvent
	Metadata EventMetadata
	Unit     UnitRef
	KilledBy UnitRef
}

// NewUnitKilledEvent creates a new UnitKilledEvent
func NewUnitKilledEvent(matchID string, unit, killedBy UnitRef, turn int) *UnitKilledEvent {
	return &UnitKilledEvent{
		BaseEvent: base(TypeUnitKilled, matchID),
		Metadata:  EventMetadata{TeamID: killedBy.Team, Turn: turn},
		Unit:      unit,
		KilledBy:  killedBy,
	}
}

// WeaponReloadedEvent is published when a unit refills its weapon
type WeaponReloadedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Unit     UnitRef
	Ammo     int
}

// NewWeaponReloadedEvent creates a new WeaponReloadedEvent
func NewWeaponReloadedEvent(matchID string, unit UnitRef, ammo, turn int) *WeaponReloadedEvent {
	return &WeaponReloadedEvent{
		BaseEvent: base(TypeWeaponReloaded, matchID),
		Metadata:  EventMetadata{TeamID: unit.Team, Turn: turn},
		Unit:      unit,
		Ammo:      ammo,
	}
}

// MatchVictoryEvent is published when the match resolves. Team is the team
// the outcome applies to; Winner is -1 when no single winner exists.
type MatchVictoryEvent struct {
	BaseEvent
	Outcome   string
	Team      int
	Winner    int
	Duration  time.Duration
	FinalTurn int
}

// NewMatchVictoryEvent creates a new MatchVictoryEvent
func NewMatchVictoryEvent(matchID, outcome string, team, winner int, duration time.Duration, finalTurn int) *MatchVictoryEvent {
	return &MatchVictoryEvent{
		BaseEvent: base(TypeMatchVictory, matchID),
		Outcome:   outcome,
		Team:      team,
		Winner:    winner,
		Duration:  duration,
		FinalTurn: finalTurn,
	}
}

// CommandRejectedEvent is published when a request is refused without any state change
type CommandRejectedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Command  string
	UnitID   string
	Reason   string
}

// NewCommandRejectedEvent creates a new CommandRejectedEvent
func NewCommandRejectedEvent(matchID, command, unitID string, reason error, turn int) *CommandRejectedEvent {
	e := &CommandRejectedEvent{
		BaseEvent: base(TypeCommandRejected, matchID),
		Metadata:  EventMetadata{Turn: turn},
		Command:   command,
		UnitID:    unitID,
	}
	if reason != nil {
		e.Reason = reason.Error()
	}
	return e
}

// StateTransitionEvent is published when the match state machine transitions between phases
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	Reason    string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(matchID, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: base(TypeStateTransition, matchID),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}
