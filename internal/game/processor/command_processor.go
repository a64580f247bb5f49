package processor

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GridTactics/internal/game"
	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
)

// CommandProcessor queues commands and applies them to a match once per tick
type CommandProcessor struct {
	match  *game.Match
	queue  []Command
	logger zerolog.Logger
}

// NewCommandProcessor creates a new command processor for m
func NewCommandProcessor(m *game.Match, logger zerolog.Logger) *CommandProcessor {
	return &CommandProcessor{
		match:  m,
		logger: logger.With().Str("component", "CommandProcessor").Logger(),
	}
}

// Submit enqueues cmd for the next tick
func (cp *CommandProcessor) Submit(cmd Command) {
	cp.queue = append(cp.queue, cmd)
}

// Pending returns the number of queued commands
func (cp *CommandProcessor) Pending() int {
	return len(cp.queue)
}

// Tick drains the queue in submission order and returns how many commands
// were applied. Failing commands are logged and skipped; the first failure
// is returned. On cancellation the unprocessed commands stay queued.
func (cp *CommandProcessor) Tick(ctx context.Context) (int, error) {
	batch := cp.queue
	cp.queue = nil

	var encounteredError error
	applied := 0
	for i, cmd := range batch {
		select {
		case <-ctx.Done():
			cp.logger.Warn().Err(ctx.Err()).
				Int("remaining", len(batch)-i).
				Msg("Command processing interrupted by context cancellation")
			cp.queue = append(batch[i:len(batch):len(batch)], cp.queue...)
			return applied, ctx.Err()
		default:
		}

		cp.logger.Debug().
			Str("command", cmd.Name()).
			Str("unit_id", cmd.UnitID()).
			Msg("Applying command")

		if err := cmd.Execute(cp.match); err != nil {
			wrappedErr := core.WrapCommandError(cmd.Name(), cmd.UnitID(), err)
			cp.logger.Warn().Err(wrappedErr).
				Str("command", cmd.Name()).
				Str("unit_id", cmd.UnitID()).
				Msg("Failed to apply command")
			if encounteredError == nil {
				encounteredError = wrappedErr
			}
			continue
		}
		applied++
	}
	return applied, encounteredError
}
