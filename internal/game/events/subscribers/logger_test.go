package subscribers_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/events"
	"github.com/mitchelldurbincs/GridTactics/internal/game/events/subscribers"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestLoggerSubscriber(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).With().Timestamp().Logger()

	logSub := subscribers.NewLoggerSubscriber("test-logger", logger, zerolog.InfoLevel)

	assert.Equal(t, "test-logger", logSub.ID())
	assert.True(t, logSub.InterestedIn(events.TypeMatchStarted))
	assert.True(t, logSub.InterestedIn(events.TypeUnitTurnStarted))
	assert.True(t, logSub.InterestedIn("any.event.type"))
}

func TestLoggerSubscriberEventLogging(t *testing.T) {
	scout := events.UnitRef{ID: "u1", Name: "scout", Team: 0, Position: core.Coordinate{X: 1, Y: 2}}
	grunt := events.UnitRef{ID: "u2", Name: "grunt", Team: 1, Position: core.Coordinate{X: 4, Y: 2}}

	testCases := []struct {
		name  string
		event events.Event
		check func(t *testing.T, logLine map[string]interface{})
	}{
		{
			name:  "MatchStartedEvent",
			event: events.NewMatchStartedEvent("test-match", 2, 4, 20, 10),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(2), logLine["num_teams"])
				assert.Equal(t, float64(4), logLine["num_units"])
				assert.Equal(t, float64(20), logLine["map_width"])
				assert.Equal(t, float64(10), logLine["map_height"])
			},
		},
		{
			name:  "TeamTurnStartedEvent",
			event: events.NewTeamTurnStartedEvent("test-match", 1, "blue", 5),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(1), logLine["team"])
				assert.Equal(t, "blue", logLine["team_name"])
				assert.Equal(t, float64(5), logLine["turn"])
			},
		},
		{
			name:  "MovementStepEvent",
			event: events.NewMovementStepEvent("test-match", scout, core.Coordinate{X: 1, Y: 2}, core.Coordinate{X: 2, Y: 2}, 3, 1),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "scout", logLine["unit"])
				assert.Equal(t, float64(2), logLine["to_x"])
				assert.Equal(t, float64(3), logLine["remaining"])
			},
		},
		{
			name:  "AttackExecutedEvent",
			event: events.NewAttackExecutedEvent("test-match", scout, grunt, "rifle", 70, true, 4, 6, 2),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "scout", logLine["attacker"])
				assert.Equal(t, "grunt", logLine["target"])
				assert.Equal(t, float64(70), logLine["chance"])
				assert.Equal(t, true, logLine["hit"])
				assert.Equal(t, float64(4), logLine["damage"])
				assert.Equal(t, float64(6), logLine["target_hp"])
			},
		},
		{
			name:  "AttackStartedEvent",
			event: events.NewAttackStartedEvent("test-match", scout, grunt, "rifle", 70, false, 2),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, false, logLine["hit"])
				assert.NotContains(t, logLine, "damage")
			},
		},
		{
			name:  "MatchVictoryEvent",
			event: events.NewMatchVictoryEvent("test-match", "victory", 0, 0, 90*time.Second, 12),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "victory", logLine["outcome"])
				assert.Equal(t, float64(0), logLine["winner"])
				assert.Equal(t, float64(12), logLine["final_turn"])
			},
		},
		{
			name:  "CommandRejectedEvent",
			event: events.NewCommandRejectedEvent("test-match", "move", "u1", core.ErrUnreachable, 3),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "move", logLine["command"])
				assert.Equal(t, core.ErrUnreachable.Error(), logLine["reason"])
			},
		},
		{
			name:  "StateTransitionEvent",
			event: events.NewStateTransitionEvent("test-match", "running", "resolved", "victory"),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "running", logLine["from_phase"])
				assert.Equal(t, "resolved", logLine["to_phase"])
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logSub := subscribers.NewLoggerSubscriber("event-logger", zerolog.New(&buf), zerolog.InfoLevel)
			logSub.HandleEvent(tc.event)

			lines := decodeLines(t, &buf)
			require.Len(t, lines, 1)
			assert.Equal(t, "Game event", lines[0]["message"])
			assert.Equal(t, "info", lines[0]["level"])
			assert.Equal(t, tc.event.Type(), lines[0]["event_type"])
			assert.Equal(t, "test-match", lines[0]["match_id"])
			tc.check(t, lines[0])
		})
	}
}

func TestLoggerSubscriberFilter(t *testing.T) {
	var buf bytes.Buffer
	logSub := subscribers.NewLoggerSubscriber("filtered", zerolog.New(&buf), zerolog.DebugLevel)
	logSub.SetEventFilter([]string{events.TypeMatchVictory})

	assert.True(t, logSub.InterestedIn(events.TypeMatchVictory))
	assert.False(t, logSub.InterestedIn(events.TypeMovementStep))

	bus := events.NewEventBusWithLogger(zerolog.Nop())
	bus.Subscribe(logSub)
	bus.Publish(events.NewMatchStartedEvent("m", 2, 2, 2, 2))
	bus.Publish(events.NewMatchVictoryEvent("m", "victory", 1, 1, 0, 4))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, events.TypeMatchVictory, lines[0]["event_type"])
	assert.Equal(t, "debug", lines[0]["level"])

	logSub.SetEventFilter(nil)
	assert.True(t, logSub.InterestedIn(events.TypeMovementStep))
}

func TestLoggerSubscriberDevMode(t *testing.T) {
	var buf bytes.Buffer
	logSub := subscribers.NewLoggerSubscriber("dev", zerolog.New(&buf), zerolog.InfoLevel)
	logSub.SetDevMode(true)

	logSub.HandleEvent(events.NewTeamTurnStartedEvent("m", 0, "red", 1))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	data, ok := lines[0]["event_data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "red", data["TeamName"])
	assert.Equal(t, events.TypeTeamTurnStarted, data["type"])
}
