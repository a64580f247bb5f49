package core

import (
	"errors"
	"fmt"
)

var (
	ErrNoTiles          = errors.New("grid has no tiles")
	ErrNoTile           = errors.New("no tile at coordinate")
	ErrTileOccupied     = errors.New("tile already occupied")
	ErrNotWalkable      = errors.New("tile terrain is not walkable")
	ErrNotNeighbors     = errors.New("coordinates are not orthogonal neighbors")
	ErrUnknownUnit      = errors.New("unknown unit")
	ErrUnitDead         = errors.New("unit is dead")
	ErrNotCurrentUnit   = errors.New("unit is not the current unit")
	ErrUnitUnavailable  = errors.New("unit has already played this turn")
	ErrMatchResolved    = errors.New("match is resolved")
	ErrActionInProgress = errors.New("another action is still in progress")
	ErrUnreachable      = errors.New("destination is unreachable")
	ErrNoActionPoints   = errors.New("not enough action points")
	ErrInvalidTarget    = errors.New("invalid target")
	ErrFriendlyFire     = errors.New("target is an ally")
	ErrOutOfRange       = errors.New("target is out of range or sight")
	ErrOutOfAmmo        = errors.New("weapon is out of ammo")
	ErrNothingToReload  = errors.New("weapon is already full")
	ErrAlreadyResolved  = errors.New("action already resolved")
	ErrMalformedSetup   = errors.New("malformed match setup")
)

// WrapUnitError adds the acting unit and operation to an error.
// Returns nil when err is nil.
func WrapUnitError(unitID, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("unit %s %s: %w", unitID, operation, err)
}

// WrapMatchStateError adds the turn number and phase to an error.
// Returns nil when err is nil.
func WrapMatchStateError(turn int, phase string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("match turn %d [%s]: %w", turn, phase, err)
}

// MatchError is a structured error carrying match context
type MatchError struct {
	Turn      int
	UnitID    string
	Operation string
	Err       error
}

// NewMatchError creates a new MatchError
func NewMatchError(turn int, unitID, operation string, err error) *MatchError {
	return &MatchError{
		Turn:      turn,
		UnitID:    unitID,
		Operation: operation,
		Err:       err,
	}
}

func (e *MatchError) Error() string {
	if e.UnitID != "" {
		return fmt.Sprintf("turn %d: unit %s %s: %v", e.Turn, e.UnitID, e.Operation, e.Err)
	}
	return fmt.Sprintf("turn %d: %s: %v", e.Turn, e.Operation, e.Err)
}

func (e *MatchError) Unwrap() error {
	return e.Err
}

// CommandError records which queued command failed and for which unit
type CommandError struct {
	Command string
	UnitID  string
	Err     error
}

// WrapCommandError wraps err with the command that produced it.
// Returns nil when err is nil.
func WrapCommandError(command, unitID string, err error) error {
	if err == nil {
		return nil
	}
	return &CommandError{Command: command, UnitID: unitID, Err: err}
}

func (e *CommandError) Error() string {
	if e.UnitID == "" {
		return fmt.Sprintf("command %s: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("command %s for unit %s: %v", e.Command, e.UnitID, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
