package processor

import (
	"github.com/mitchelldurbincs/GridTactics/internal/game"
	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
)

// Command is one queued player or AI intent. Validation is left to the
// match: a command that the match rejects changes nothing.
type Command interface {
	Name() string
	UnitID() string
	Execute(m *game.Match) error
}

// MoveCommand walks a unit to Dest. Headless, so the movement is run to completion.
type MoveCommand struct {
	Unit string
	Dest core.Coordinate
}

func (c MoveCommand) Name() string   { return game.OpMove }
func (c MoveCommand) UnitID() string { return c.Unit }

func (c MoveCommand) Execute(m *game.Match) error {
	mv, err := m.RequestMove(c.Unit, c.Dest)
	if err != nil {
		return err
	}
	return mv.Finish()
}

// AttackCommand attacks Target and resolves the attack immediately
type AttackCommand struct {
	Unit   string
	Target string
}

func (c AttackCommand) Name() string   { return game.OpAttack }
func (c AttackCommand) UnitID() string { return c.Unit }

func (c AttackCommand) Execute(m *game.Match) error {
	a, err := m.RequestAttack(c.Unit, c.Target)
	if err != nil {
		return err
	}
	_, err = a.Resolve()
	return err
}

type ReloadCommand struct {
	Unit string
}

func (c ReloadCommand) Name() string   { return game.OpReload }
func (c ReloadCommand) UnitID() string { return c.Unit }

func (c ReloadCommand) Execute(m *game.Match) error {
	return m.RequestReload(c.Unit)
}

// EndUnitTurnCommand ends one unit's turn
type EndUnitTurnCommand struct {
	Unit string
}

func (c EndUnitTurnCommand) Name() string   { return game.OpEndUnitTurn }
func (c EndUnitTurnCommand) UnitID() string { return c.Unit }

func (c EndUnitTurnCommand) Execute(m *game.Match) error {
	return m.RequestEndUnitTurn(c.Unit)
}

// EndTurnCommand ends the turn of the whole current team
type EndTurnCommand struct{}

func (EndTurnCommand) Name() string   { return game.OpEndTurn }
func (EndTurnCommand) UnitID() string { return "" }

func (EndTurnCommand) Execute(m *game.Match) error {
	return m.RequestEndTurn()
}

type SwitchTeammateCommand struct {
	Forward bool
}

func (SwitchTeammateCommand) Name() string   { return game.OpSwitchTeammate }
func (SwitchTeammateCommand) UnitID() string { return "" }

func (c SwitchTeammateCommand) Execute(m *game.Match) error {
	_, err := m.RequestSwitchTeammate(c.Forward)
	return err
}
