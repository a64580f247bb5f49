package game

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GridTactics/internal/game/combat"
	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/events"
	"github.com/mitchelldurbincs/GridTactics/internal/game/los"
	"github.com/mitchelldurbincs/GridTactics/internal/game/rules"
	"github.com/mitchelldurbincs/GridTactics/internal/game/states"
	"github.com/mitchelldurbincs/GridTactics/internal/game/turn"
	"github.com/mitchelldurbincs/GridTactics/internal/game/visibility"
)

// pending is a movement or attack that has been accepted but not completed
type pending interface {
	kind() string
}

// Match owns the grid, the units and the scheduler of one skirmish. It is
// driven from a single goroutine; presentation learns about changes only
// through the event bus.
type Match struct {
	id     string
	grid   *core.Grid
	teams  []*core.Team
	units  map[string]*core.Unit
	rules  RulesConfig
	roller combat.Roller
	logger zerolog.Logger
	bus    events.Bus

	sight     *los.SightChecker
	vision    *visibility.Resolver
	combat    *combat.Resolver
	legal     *rules.LegalMoveCalculator
	scheduler *turn.Scheduler
	machine   *states.StateMachine

	inFlight pending
}

func (m *Match) ID() string {
	return m.id
}

func (m *Match) Grid() *core.Grid {
	return m.grid
}

// Teams returns the teams in play order
func (m *Match) Teams() []*core.Team {
	return m.teams
}

// Unit looks a unit up by ID
func (m *Match) Unit(id string) (*core.Unit, bool) {
	u, ok := m.units[id]
	return u, ok
}

// Bus returns the event bus for subscriptions
func (m *Match) Bus() events.Bus {
	return m.bus
}

func (m *Match) Logger() zerolog.Logger {
	return m.logger
}

// Rules returns the rules the match was configured with
func (m *Match) Rules() RulesConfig {
	return m.rules
}

// Turn counts team turns, starting at 1
func (m *Match) Turn() int {
	return m.scheduler.Turn()
}

// CurrentUnit returns the unit whose turn it is, nil once resolved
func (m *Match) CurrentUnit() *core.Unit {
	return m.scheduler.Current()
}

// CurrentTeam returns the team due to act
func (m *Match) CurrentTeam() *core.Team {
	return m.scheduler.CurrentTeam()
}

// Phase returns the match lifecycle phase
func (m *Match) Phase() states.MatchPhase {
	return m.machine.CurrentPhase()
}

// IsResolved reports whether victory or defeat has been reached
func (m *Match) IsResolved() bool {
	return m.scheduler.IsResolved()
}

// Outcome returns Continue while the match runs
func (m *Match) Outcome() turn.Outcome {
	if !m.scheduler.IsResolved() {
		return turn.Continue
	}
	return m.scheduler.Verdict().Outcome
}

// Verdict returns the full resolution, meaningful once resolved
func (m *Match) Verdict() turn.Verdict {
	return m.scheduler.Verdict()
}

// Winner returns the winning team ID, or -1. A defeat in a two-team match
// hands the win to the other team.
func (m *Match) Winner() int {
	if !m.scheduler.IsResolved() {
		return -1
	}
	v := m.scheduler.Verdict()
	switch v.Outcome {
	case turn.Victory:
		return v.Team
	case turn.Defeat:
		if len(m.teams) == 2 {
			for _, t := range m.teams {
				if t.ID != v.Team {
					return t.ID
				}
			}
		}
	}
	return -1
}

// InProgress reports whether a movement or attack awaits completion
func (m *Match) InProgress() bool {
	return m.inFlight != nil
}

// Context exposes the lifecycle context (start time, outcome, error)
func (m *Match) Context() *states.MatchContext {
	return m.machine.GetContext()
}
