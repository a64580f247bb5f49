package game

import (
	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/events"
	"github.com/mitchelldurbincs/GridTactics/internal/game/states"
	"github.com/mitchelldurbincs/GridTactics/internal/game/turn"
)

// The match listens to its own scheduler and turns every transition into
// an outbound event.

func (m *Match) TeamTurnStarted(team *core.Team, turnNumber int) {
	m.bus.Publish(events.NewTeamTurnStartedEvent(m.id, team.ID, team.Name, turnNumber))
}

func (m *Match) UnitTurnStarted(u *core.Unit) {
	m.bus.Publish(events.NewUnitTurnStartedEvent(m.id, events.RefOf(u), m.scheduler.Turn()))
}

func (m *Match) FocusChanged(from, to *core.Unit) {
	m.bus.Publish(events.NewFocusChangedEvent(m.id, events.RefOf(from), events.RefOf(to), m.scheduler.Turn()))
}

func (m *Match) UnitTurnEnded(u *core.Unit) {
	m.bus.Publish(events.NewUnitTurnEndedEvent(m.id, events.RefOf(u), m.scheduler.Turn()))
}

func (m *Match) Resolved(v turn.Verdict) {
	ctx := m.machine.GetContext()
	ctx.Outcome = v.Outcome.String()
	ctx.Winner = m.Winner()

	if err := m.machine.TransitionTo(states.PhaseResolved, v.Outcome.String()); err != nil {
		m.logger.Error().Err(err).Msg("Failed to transition to Resolved state")
	}
	m.bus.Publish(events.NewMatchVictoryEvent(
		m.id,
		v.Outcome.String(),
		v.Team,
		ctx.Winner,
		ctx.GetElapsedTime(),
		m.scheduler.Turn(),
	))
}
