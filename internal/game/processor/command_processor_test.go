package processor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GridTactics/internal/game"
	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/testutil"
)

func newMatch(t *testing.T) (*game.Match, []*core.Team) {
	t.Helper()
	g := testutil.OpenGrid(t, 6, 3)
	teams := []*core.Team{
		{ID: 0, Name: "red", Units: []*core.Unit{
			testutil.PlaceUnit(t, g, "r1", 0, 0, 0),
			testutil.PlaceUnit(t, g, "r2", 0, 0, 2),
		}},
		{ID: 1, Name: "blue", Units: []*core.Unit{
			testutil.PlaceUnit(t, g, "b1", 1, 3, 0),
		}},
	}
	m, err := game.NewMatchInitializer(game.MatchConfig{
		Grid:   g,
		Teams:  teams,
		Rules:  game.DefaultRules(),
		Roller: testutil.FixedRoller(0),
		Logger: testutil.NopLogger(),
	}).Initialize(context.Background())
	require.NoError(t, err)
	return m, teams
}

func TestTickAppliesInOrder(t *testing.T) {
	m, teams := newMatch(t)
	cp := NewCommandProcessor(m, testutil.NopLogger())

	cp.Submit(MoveCommand{Unit: "r1", Dest: core.Coordinate{X: 1, Y: 1}})
	cp.Submit(AttackCommand{Unit: "r1", Target: "b1"})
	cp.Submit(SwitchTeammateCommand{Forward: true})
	cp.Submit(ReloadCommand{Unit: "r2"})
	assert.Equal(t, 4, cp.Pending())

	applied, err := cp.Tick(context.Background())
	assert.Equal(t, 3, applied)
	assert.ErrorIs(t, err, core.ErrNothingToReload)
	assert.Equal(t, 0, cp.Pending())

	r1, b1 := teams[0].Units[0], teams[1].Units[0]
	assert.Equal(t, core.Coordinate{X: 1, Y: 1}, r1.Position())
	assert.Equal(t, 6, b1.HP)
	assert.True(t, r1.Played)
	assert.Equal(t, "r2", m.CurrentUnit().ID)
}

func TestTickWrapsFailures(t *testing.T) {
	m, teams := newMatch(t)
	cp := NewCommandProcessor(m, testutil.NopLogger())

	cp.Submit(MoveCommand{Unit: "b1", Dest: core.Coordinate{X: 4, Y: 0}})
	cp.Submit(AttackCommand{Unit: "r1", Target: "r2"})
	cp.Submit(EndUnitTurnCommand{Unit: "r1"})

	applied, err := cp.Tick(context.Background())
	assert.Equal(t, 1, applied)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotCurrentUnit, "first failure is returned")

	var cmdErr *core.CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, game.OpMove, cmdErr.Command)
	assert.Equal(t, "b1", cmdErr.UnitID)
	assert.Equal(t, 10, teams[0].Units[1].HP)
}

func TestTickEndTurn(t *testing.T) {
	m, _ := newMatch(t)
	cp := NewCommandProcessor(m, testutil.NopLogger())

	cp.Submit(EndTurnCommand{})
	applied, err := cp.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, applied)
	assert.Equal(t, "b1", m.CurrentUnit().ID)
}

func TestTickCancelled(t *testing.T) {
	m, _ := newMatch(t)
	cp := NewCommandProcessor(m, testutil.NopLogger())
	cp.Submit(EndUnitTurnCommand{Unit: "r1"})
	cp.Submit(EndUnitTurnCommand{Unit: "r2"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	applied, err := cp.Tick(ctx)
	assert.Equal(t, 0, applied)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, cp.Pending(), "unprocessed commands stay queued")
	assert.Equal(t, "r1", m.CurrentUnit().ID)

	applied, err = cp.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, applied)
	assert.Equal(t, "b1", m.CurrentUnit().ID)
}

func TestTickAfterResolution(t *testing.T) {
	m, teams := newMatch(t)
	teams[1].Units[0].HP = 4
	cp := NewCommandProcessor(m, testutil.NopLogger())

	cp.Submit(AttackCommand{Unit: "r1", Target: "b1"})
	cp.Submit(EndTurnCommand{})

	applied, err := cp.Tick(context.Background())
	assert.Equal(t, 1, applied)
	assert.ErrorIs(t, err, core.ErrMatchResolved)
	assert.True(t, m.IsResolved())
}
