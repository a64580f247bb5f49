package events

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
)

func TestEventBus(t *testing.T) {
	bus := NewEventBusWithLogger(zerolog.Nop())

	received := false
	var receivedEvent Event

	bus.SubscribeFunc(TypeMatchStarted, func(e Event) {
		received = true
		receivedEvent = e
	})

	bus.Publish(NewMatchStartedEvent("test-match", 2, 4, 10, 8))

	assert.True(t, received, "Event handler should have been called")
	require.NotNil(t, receivedEvent)
	assert.Equal(t, TypeMatchStarted, receivedEvent.Type())
	assert.Equal(t, "test-match", receivedEvent.MatchID())
	assert.WithinDuration(t, time.Now(), receivedEvent.Timestamp(), time.Second)
}

func TestEventBusMultipleHandlers(t *testing.T) {
	bus := NewEventBusWithLogger(zerolog.Nop())

	var order []int
	bus.SubscribeFunc(TypeTeamTurnStarted, func(Event) { order = append(order, 1) })
	bus.SubscribeFunc(TypeTeamTurnStarted, func(Event) { order = append(order, 2) })
	bus.SubscribeFunc(TypeUnitTurnStarted, func(Event) { order = append(order, 3) })

	bus.Publish(NewTeamTurnStartedEvent("test-match", 0, "red", 1))

	assert.Equal(t, []int{1, 2}, order)
	assert.Equal(t, 2, bus.GetFuncHandlerCount(TypeTeamTurnStarted))
}

// TestSubscriber is a test implementation of Subscriber
type TestSubscriber struct {
	id              string
	interestedTypes map[string]bool
	receivedEvents  []Event
}

func (ts *TestSubscriber) ID() string {
	return ts.id
}

func (ts *TestSubscriber) HandleEvent(e Event) {
	ts.receivedEvents = append(ts.receivedEvents, e)
}

func (ts *TestSubscriber) InterestedIn(eventType string) bool {
	if ts.interestedTypes == nil {
		return true
	}
	return ts.interestedTypes[eventType]
}

func TestEventBusSubscriber(t *testing.T) {
	bus := NewEventBusWithLogger(zerolog.Nop())

	subscriber := &TestSubscriber{
		id: "test-subscriber",
		interestedTypes: map[string]bool{
			TypeMatchStarted: true,
			TypeMatchVictory: true,
		},
	}
	bus.Subscribe(subscriber)
	assert.Equal(t, 1, bus.GetSubscriberCount())

	bus.Publish(NewMatchStartedEvent("test-match", 2, 4, 10, 10))
	bus.Publish(NewTeamTurnStartedEvent("test-match", 0, "red", 1))
	bus.Publish(NewMatchVictoryEvent("test-match", "victory", 0, 0, time.Minute, 12))

	require.Len(t, subscriber.receivedEvents, 2)
	assert.Equal(t, TypeMatchStarted, subscriber.receivedEvents[0].Type())
	assert.Equal(t, TypeMatchVictory, subscriber.receivedEvents[1].Type())

	bus.Unsubscribe(subscriber.ID())
	bus.Publish(NewMatchStartedEvent("test-match", 2, 4, 10, 10))
	assert.Len(t, subscriber.receivedEvents, 2)
	assert.Equal(t, 0, bus.GetSubscriberCount())
}

func TestEventBusSubscribeReplacesSameID(t *testing.T) {
	bus := NewEventBusWithLogger(zerolog.Nop())
	first := &TestSubscriber{id: "dup"}
	second := &TestSubscriber{id: "dup"}

	bus.Subscribe(first)
	bus.Subscribe(second)
	bus.Publish(NewMatchStartedEvent("m", 2, 2, 2, 2))

	assert.Equal(t, 1, bus.GetSubscriberCount())
	assert.Empty(t, first.receivedEvents)
	assert.Len(t, second.receivedEvents, 1)
}

func TestEventBusUnsubscribeFunc(t *testing.T) {
	bus := NewEventBusWithLogger(zerolog.Nop())
	calls := 0
	id := bus.SubscribeFunc(TypeUnitKilled, func(Event) { calls++ })
	other := bus.SubscribeFunc(TypeUnitKilled, func(Event) {})
	assert.NotEqual(t, id, other)

	bus.Unsubscribe(id)
	bus.Publish(NewUnitKilledEvent("m", UnitRef{ID: "a"}, UnitRef{ID: "b"}, 1))

	assert.Zero(t, calls)
	assert.Equal(t, 1, bus.GetFuncHandlerCount(TypeUnitKilled))
}

type panickingSubscriber struct{}

func (panickingSubscriber) ID() string               { return "panicker" }
func (panickingSubscriber) HandleEvent(Event)        { panic("boom") }
func (panickingSubscriber) InterestedIn(string) bool { return true }

func TestEventBusPanicIsolation(t *testing.T) {
	var buf bytes.Buffer
	bus := NewEventBusWithLogger(zerolog.New(&buf))

	survivor := &TestSubscriber{id: "survivor"}
	bus.Subscribe(panickingSubscriber{})
	bus.Subscribe(survivor)
	handled := false
	bus.SubscribeFunc(TypeMatchStarted, func(Event) { panic("handler boom") })
	bus.SubscribeFunc(TypeMatchStarted, func(Event) { handled = true })

	assert.NotPanics(t, func() {
		bus.Publish(NewMatchStartedEvent("m", 2, 2, 2, 2))
	})
	assert.Len(t, survivor.receivedEvents, 1)
	assert.True(t, handled)
	assert.Contains(t, buf.String(), "Subscriber panicked while handling event")
	assert.Contains(t, buf.String(), "Function handler panicked while handling event")
}

func TestEventBusReentrantPublish(t *testing.T) {
	bus := NewEventBusWithLogger(zerolog.Nop())
	rec := &TestSubscriber{id: "rec"}
	bus.Subscribe(rec)
	bus.SubscribeFunc(TypeUnitKilled, func(Event) {
		bus.Publish(NewMatchVictoryEvent("m", "victory", 0, 0, 0, 3))
	})

	bus.Publish(NewUnitKilledEvent("m", UnitRef{ID: "a"}, UnitRef{ID: "b"}, 3))

	require.Len(t, rec.receivedEvents, 2)
	assert.Equal(t, TypeUnitKilled, rec.receivedEvents[0].Type())
	assert.Equal(t, TypeMatchVictory, rec.receivedEvents[1].Type())
}

func TestEventConstructors(t *testing.T) {
	u := &core.Unit{ID: "u1", Name: "scout", Team: 1}
	ref := RefOf(u)
	assert.Equal(t, UnitRef{ID: "u1", Name: "scout", Team: 1}, ref)
	assert.Equal(t, UnitRef{}, RefOf(nil))

	tests := []struct {
		name     string
		event    Event
		expected string
	}{
		{"unit turn started", NewUnitTurnStartedEvent("m", ref, 1), TypeUnitTurnStarted},
		{"unit turn ended", NewUnitTurnEndedEvent("m", ref, 1), TypeUnitTurnEnded},
		{"focus changed", NewFocusChangedEvent("m", ref, ref, 1), TypeFocusChanged},
		{"movement started", NewMovementStartedEvent("m", ref, nil, 0, 1), TypeMovementStarted},
		{"movement step", NewMovementStepEvent("m", ref, core.Coordinate{}, core.Coordinate{X: 1}, 0, 1), TypeMovementStep},
		{"movement ended", NewMovementEndedEvent("m", ref, 1, 1), TypeMovementEnded},
		{"attack started", NewAttackStartedEvent("m", ref, ref, "rifle", 50, true, 1), TypeAttackStarted},
		{"attack executed", NewAttackExecutedEvent("m", ref, ref, "rifle", 50, true, 4, 6, 1), TypeAttackExecuted},
		{"attack ended", NewAttackEndedEvent("m", ref, ref, "rifle", 50, true, 1), TypeAttackEnded},
		{"reloaded", NewWeaponReloadedEvent("m", ref, 3, 1), TypeWeaponReloaded},
		{"rejected", NewCommandRejectedEvent("m", "move", "u1", core.ErrUnreachable, 1), TypeCommandRejected},
		{"transition", NewStateTransitionEvent("m", "initializing", "running", "setup complete"), TypeStateTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.event.Type())
			assert.Equal(t, "m", tt.event.MatchID())
		})
	}

	executed := NewAttackExecutedEvent("m", ref, ref, "rifle", 50, true, 4, 6, 1)
	assert.Equal(t, 4, executed.Damage)
	assert.Equal(t, 6, executed.TargetHP)

	rejected := NewCommandRejectedEvent("m", "move", "u1", core.ErrUnreachable, 1)
	assert.Equal(t, core.ErrUnreachable.Error(), rejected.Reason)
}

func TestEventBusThroughInterface(t *testing.T) {
	var bus Bus = NewEventBus()

	var got []string
	id := bus.SubscribeFunc(TypeMatchStarted, func(e Event) { got = append(got, e.MatchID()) })
	bus.Publish(NewMatchStartedEvent("m-1", 2, 4, 8, 4))
	bus.Unsubscribe(id)
	bus.Publish(NewMatchStartedEvent("m-2", 2, 4, 8, 4))

	assert.Equal(t, []string{"m-1"}, got)
}
