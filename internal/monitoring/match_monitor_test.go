package monitoring

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GridTactics/internal/game/events"
)

func TestMatchMonitorCollectsTeamMetrics(t *testing.T) {
	bus := events.NewEventBus()
	mon := NewMatchMonitor("monitor")
	bus.Subscribe(mon)

	red := events.UnitRef{ID: "r1", Name: "red-1", Team: 0}
	blue := events.UnitRef{ID: "b1", Name: "blue-1", Team: 1}

	bus.Publish(events.NewMatchStartedEvent("m", 2, 2, 5, 2))
	bus.Publish(events.NewTeamTurnStartedEvent("m", 0, "red", 1))
	bus.Publish(events.NewUnitTurnStartedEvent("m", red, 1))
	bus.Publish(events.NewMovementEndedEvent("m", red, 2, 1))
	bus.Publish(events.NewAttackStartedEvent("m", red, blue, "rifle", 60, true, 1))
	bus.Publish(events.NewAttackExecutedEvent("m", red, blue, "rifle", 60, true, 4, 6, 1))
	bus.Publish(events.NewAttackExecutedEvent("m", red, blue, "rifle", 60, false, 0, 6, 1))
	bus.Publish(events.NewTeamTurnStartedEvent("m", 1, "blue", 2))
	bus.Publish(events.NewWeaponReloadedEvent("m", blue, 3, 2))
	bus.Publish(events.NewCommandRejectedEvent("m", "move", "b1", errors.New("unreachable"), 2))
	bus.Publish(events.NewTeamTurnStartedEvent("m", 0, "red", 3))
	bus.Publish(events.NewAttackExecutedEvent("m", red, blue, "rifle", 60, true, 6, 0, 3))
	bus.Publish(events.NewUnitKilledEvent("m", blue, red, 3))
	bus.Publish(events.NewMatchVictoryEvent("m", "victory", 0, 0, time.Second, 3))

	m := mon.GetMetrics()
	assert.Equal(t, 3, m.Turns)
	assert.True(t, m.Resolved)
	assert.Equal(t, "victory", m.Outcome)
	assert.Equal(t, 0, m.Winner)
	assert.Equal(t, map[string]int{"move": 1}, m.Rejected)

	r := m.Teams[0]
	assert.Equal(t, 3, r.Shots, "attack.started must not count as a shot")
	assert.Equal(t, 2, r.Hits)
	assert.Equal(t, 10, r.DamageDealt)
	assert.Equal(t, 1, r.Kills)
	assert.Equal(t, 2, r.TilesMoved)
	assert.Equal(t, 1, r.UnitTurns)
	assert.InDelta(t, 66.67, r.Accuracy(), 0.01)

	b := m.Teams[1]
	assert.Equal(t, 1, b.Losses)
	assert.Equal(t, 1, b.Reloads)
	assert.Zero(t, b.Accuracy())
}

func TestMatchMonitorUnresolved(t *testing.T) {
	mon := NewMatchMonitor("monitor")
	m := mon.GetMetrics()
	assert.False(t, m.Resolved)
	assert.Equal(t, -1, m.Winner)
	assert.Zero(t, m.Duration)
	assert.Empty(t, m.Teams)
}

func TestMatchMonitorSnapshotIsolated(t *testing.T) {
	mon := NewMatchMonitor("monitor")
	mon.HandleEvent(events.NewCommandRejectedEvent("m", "attack", "u", errors.New("x"), 1))

	m := mon.GetMetrics()
	m.Rejected["attack"] = 99
	assert.Equal(t, 1, mon.GetMetrics().Rejected["attack"])
}

func TestMatchMonitorLogSummary(t *testing.T) {
	mon := NewMatchMonitor("monitor")
	red := events.UnitRef{ID: "r1", Team: 0}
	blue := events.UnitRef{ID: "b1", Team: 1}
	mon.HandleEvent(events.NewAttackExecutedEvent("m", blue, red, "rifle", 50, true, 3, 7, 2))
	mon.HandleEvent(events.NewAttackExecutedEvent("m", red, blue, "rifle", 50, false, 0, 10, 1))

	var buf bytes.Buffer
	mon.LogSummary(zerolog.New(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"team":0`)
	assert.Contains(t, lines[1], `"team":1`)
	assert.Contains(t, lines[1], `"damage":3`)
}
