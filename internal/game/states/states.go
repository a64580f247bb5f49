package states

import (
	"errors"
	"fmt"
	"time"
)

// InitializingState represents match setup
type InitializingState struct{}

func NewInitializingState() State {
	return &InitializingState{}
}

func (s *InitializingState) Phase() MatchPhase {
	return PhaseInitializing
}

func (s *InitializingState) Enter(ctx *MatchContext) error {
	ctx.Logger.Debug().Msg("Entering Initializing state")
	return nil
}

func (s *InitializingState) Exit(ctx *MatchContext) error {
	ctx.Logger.Debug().Int("team_count", ctx.TeamCount).Msg("Exiting Initializing state")
	return nil
}

func (s *InitializingState) Validate(ctx *MatchContext) error {
	return nil
}

// RunningState represents active play
type RunningState struct{}

func NewRunningState() State {
	return &RunningState{}
}

func (s *RunningState) Phase() MatchPhase {
	return PhaseRunning
}

func (s *RunningState) Enter(ctx *MatchContext) error {
	ctx.StartTime = time.Now()
	ctx.Logger.Info().
		Time("start_time", ctx.StartTime).
		Int("team_count", ctx.TeamCount).
		Msg("Match started")
	return nil
}

func (s *RunningState) Exit(ctx *MatchContext) error {
	ctx.EndTime = time.Now()
	ctx.Logger.Info().
		Dur("elapsed", ctx.GetElapsedTime()).
		Msg("Exiting running state")
	return nil
}

func (s *RunningState) Validate(ctx *MatchContext) error {
	if !ctx.IsReady() {
		return fmt.Errorf("cannot run a match with no teams")
	}
	return nil
}

// ResolvedState represents a decided match
type ResolvedState struct{}

func NewResolvedState() State {
	return &ResolvedState{}
}

func (s *ResolvedState) Phase() MatchPhase {
	return PhaseResolved
}

func (s *ResolvedState) Enter(ctx *MatchContext) error {
	ctx.Logger.Info().
		Str("outcome", ctx.Outcome).
		Int("winner", ctx.Winner).
		Dur("match_duration", ctx.GetElapsedTime()).
		Msg("Match resolved")
	return nil
}

func (s *ResolvedState) Exit(ctx *MatchContext) error {
	ctx.Logger.Debug().Msg("Exiting resolved state")
	return nil
}

func (s *ResolvedState) Validate(ctx *MatchContext) error {
	if ctx.Outcome == "" {
		return errors.New("resolved state requires an outcome")
	}
	return nil
}

// ErrorState represents an error condition
type ErrorState struct{}

func NewErrorState() State {
	return &ErrorState{}
}

func (s *ErrorState) Phase() MatchPhase {
	return PhaseError
}

func (s *ErrorState) Enter(ctx *MatchContext) error {
	if ctx.EndTime.IsZero() {
		ctx.EndTime = time.Now()
	}
	ctx.Logger.Error().
		Err(ctx.Error).
		Msg("Match entered error state")
	return nil
}

func (s *ErrorState) Exit(ctx *MatchContext) error {
	ctx.Logger.Info().Msg("Recovering from error state")
	ctx.Error = nil
	return nil
}

func (s *ErrorState) Validate(ctx *MatchContext) error {
	if ctx.Error == nil {
		return errors.New("error state requires an error in context")
	}
	return nil
}

// ResetState clears a finished match
type ResetState struct{}

func NewResetState() State {
	return &ResetState{}
}

func (s *ResetState) Phase() MatchPhase {
	return PhaseReset
}

func (s *ResetState) Enter(ctx *MatchContext) error {
	ctx.Logger.Info().Msg("Resetting match")

	ctx.StartTime = time.Time{}
	ctx.EndTime = time.Time{}
	ctx.Outcome = ""
	ctx.Winner = -1
	ctx.Error = nil

	// Clear metadata but keep the map allocated
	for k := range ctx.Metadata {
		delete(ctx.Metadata, k)
	}

	return nil
}

func (s *ResetState) Exit(ctx *MatchContext) error {
	ctx.Logger.Debug().Msg("Match reset complete")
	return nil
}

func (s *ResetState) Validate(ctx *MatchContext) error {
	return nil
}
