package states

import (
	"time"

	"github.com/rs/zerolog"
)

// MatchContext provides match information to states for making decisions
type MatchContext struct {
	// MatchID uniquely identifies this match instance
	MatchID string

	// Logger for state-specific logging
	Logger zerolog.Logger

	// TeamCount is the number of teams in play order
	TeamCount int

	// StartTime is when the match started (PhaseRunning entered)
	StartTime time.Time

	// EndTime is when the match reached a terminal phase
	EndTime time.Time

	// Outcome is the verdict name once resolved
	Outcome string

	// Winner is the winning team ID, -1 when there is none
	Winner int

	// Error holds any error that caused transition to PhaseError
	Error error

	// Metadata for custom state data
	Metadata map[string]interface{}
}

// NewMatchContext creates a new match context
func NewMatchContext(matchID string, teamCount int, logger zerolog.Logger) *MatchContext {
	return &MatchContext{
		MatchID:   matchID,
		TeamCount: teamCount,
		Logger:    logger.With().Str("match_id", matchID).Logger(),
		Metadata:  make(map[string]interface{}),
		Winner:    -1,
	}
}

// IsReady returns true if the match has teams to schedule
func (mc *MatchContext) IsReady() bool {
	return mc.TeamCount >= 1
}

// GetElapsedTime returns the time spent running, up to the end of the match
func (mc *MatchContext) GetElapsedTime() time.Duration {
	if mc.StartTime.IsZero() {
		return 0
	}
	if !mc.EndTime.IsZero() {
		return mc.EndTime.Sub(mc.StartTime)
	}
	return time.Since(mc.StartTime)
}

// SetMetadata stores custom data for states
func (mc *MatchContext) SetMetadata(key string, value interface{}) {
	mc.Metadata[key] = value
}

// GetMetadata retrieves custom data stored by states
func (mc *MatchContext) GetMetadata(key string) (interface{}, bool) {
	val, exists := mc.Metadata[key]
	return val, exists
}
