package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GridTactics/internal/game/events"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("match_id", event.MatchID()).
		Time("timestamp", event.Timestamp()).
		Logger()

	logEvent := eventLogger.WithLevel(ls.logLevel)
	if ls.logLevel == zerolog.NoLevel {
		logEvent = eventLogger.Info()
	}

	switch e := event.(type) {
	case *events.MatchStartedEvent:
		logEvent.
			Int("num_teams", e.NumTeams).
			Int("num_units", e.NumUnits).
			Int("map_width", e.MapWidth).
			Int("map_height", e.MapHeight)

	case *events.TeamTurnStartedEvent:
		logEvent.
			Int("team", e.Metadata.TeamID).
			Str("team_name", e.TeamName).
			Int("turn", e.Metadata.Turn)

	case *events.UnitTurnEvent:
		logEvent.
			Str("unit", e.Unit.Name).
			Int("team", e.Unit.Team).
			Int("turn", e.Metadata.Turn)

	case *events.FocusChangedEvent:
		logEvent.
			Str("from", e.From.Name).
			Str("to", e.To.Name).
			Int("team", e.To.Team).
			Int("turn", e.Metadata.Turn)

	case *events.MovementStartedEvent:
		logEvent.
			Str("unit", e.Unit.Name).
			Int("from_x", e.Unit.Position.X).
			Int("from_y", e.Unit.Position.Y).
			Int("steps", len(e.Path)).
			Int("cost", e.Cost)

	case *events.MovementStepEvent:
		logEvent.
			Str("unit", e.Unit.Name).
			Int("from_x", e.From.X).
			Int("from_y", e.From.Y).
			Int("to_x", e.To.X).
			Int("to_y", e.To.Y).
			Int("remaining", e.Remaining)

	case *events.MovementEndedEvent:
		logEvent.
			Str("unit", e.Unit.Name).
			Int("x", e.Unit.Position.X).
			Int("y", e.Unit.Position.Y).
			Int("steps", e.Steps)

	case *events.AttackEvent:
		logEvent.
			Str("attacker", e.Attacker.Name).
			Str("target", e.Target.Name).
			Str("weapon", e.Weapon).
			Int("chance", e.Chance).
			Bool("hit", e.Hit)
		if e.Type() == events.TypeAttackExecuted {
			logEvent.
				Int("damage", e.Damage).
				Int("target_hp", e.TargetHP)
		}

	case *events.UnitKilledEvent:
		logEvent.
			Str("unit", e.Unit.Name).
			Int("team", e.Unit.Team).
			Str("killed_by", e.KilledBy.Name)

	case *events.WeaponReloadedEvent:
		logEvent.
			Str("unit", e.Unit.Name).
			Int("ammo", e.Ammo)

	case *events.MatchVictoryEvent:
		logEvent.
			Str("outcome", e.Outcome).
			Int("team", e.Team).
			Int("winner", e.Winner).
			Dur("duration", e.Duration).
			Int("final_turn", e.FinalTurn)

	case *events.CommandRejectedEvent:
		logEvent.
			Str("command", e.Command).
			Str("unit_id", e.UnitID).
			Str("reason", e.Reason)

	case *events.StateTransitionEvent:
		logEvent.
			Str("from_phase", e.FromPhase).
			Str("to_phase", e.ToPhase).
			Str("reason", e.Reason)
	}

	// In dev mode, also log the full event as JSON
	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Game event")
}
