package game

import (
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GridTactics/internal/game/combat"
	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/events"
	"github.com/mitchelldurbincs/GridTactics/internal/game/los"
	"github.com/mitchelldurbincs/GridTactics/internal/game/pathfind"
	"github.com/mitchelldurbincs/GridTactics/internal/game/turn"
	"github.com/mitchelldurbincs/GridTactics/internal/game/visibility"
)

// RulesConfig holds the tunable rules of a match
type RulesConfig struct {
	Movement        pathfind.Config
	ViewBlocking    core.TerrainSet
	ViewBlockPolicy los.ViewBlockPolicy
	VisionMode      visibility.VisionMode
	Fog             visibility.FogPolicy
	PenaltyPerTile  int
	ReloadAPCost    int
}

// DefaultRules returns the rules used when nothing is configured
func DefaultRules() RulesConfig {
	return RulesConfig{
		Movement:        pathfind.Config{Walkable: pathfind.DefaultWalkable, Diagonal: true},
		ViewBlocking:    los.DefaultViewBlocking,
		ViewBlockPolicy: los.AlliesNeverBlock,
		VisionMode:      visibility.GroupVision,
		Fog:             visibility.AlliesAndSight,
		PenaltyPerTile:  combat.DefaultPenaltyPerTile,
		ReloadAPCost:    1,
	}
}

// MatchConfig is everything needed to set up a match
type MatchConfig struct {
	// MatchID identifies the match in logs and events; a uuid when empty
	MatchID string
	Grid    *core.Grid
	// Teams in play order
	Teams []*core.Team
	// Deployment places units that are not on the grid yet, keyed by unit ID
	Deployment map[string]core.Coordinate
	// Victory decides the end of the match; deathmatch when nil
	Victory turn.VictoryChecker
	Rules   RulesConfig
	Rng     *rand.Rand
	// Roller overrides Rng for hit rolls
	Roller combat.Roller
	Logger zerolog.Logger
	// EventBus receives every match event; a private bus is created when nil
	EventBus events.Bus
}
