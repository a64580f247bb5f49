package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GridTactics/internal/game/combat"
	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/events"
	"github.com/mitchelldurbincs/GridTactics/internal/game/los"
	"github.com/mitchelldurbincs/GridTactics/internal/game/rules"
	"github.com/mitchelldurbincs/GridTactics/internal/game/states"
	"github.com/mitchelldurbincs/GridTactics/internal/game/turn"
	"github.com/mitchelldurbincs/GridTactics/internal/game/visibility"
)

// MatchInitializer handles the setup of a match
type MatchInitializer struct {
	config MatchConfig
	logger zerolog.Logger
}

// NewMatchInitializer creates a new match initializer
func NewMatchInitializer(cfg MatchConfig) *MatchInitializer {
	return &MatchInitializer{
		config: cfg,
		logger: cfg.Logger.With().Str("component", "Match").Logger(),
	}
}

// Initialize validates the configuration, deploys units and starts the
// match. Malformed configuration is fatal: no match is returned.
func (mi *MatchInitializer) Initialize(ctx context.Context) (*Match, error) {
	select {
	case <-ctx.Done():
		mi.logger.Error().Err(ctx.Err()).Msg("Match creation cancelled or timed out during initial phase")
		return nil, ctx.Err()
	default:
	}

	mi.setupDefaults()
	m := mi.createMatch()

	if err := mi.validate(); err != nil {
		return nil, mi.fail(m, err)
	}
	if err := mi.deploy(); err != nil {
		return nil, mi.fail(m, err)
	}
	for _, team := range m.teams {
		for _, u := range team.Units {
			m.units[u.ID] = u
		}
	}

	scheduler, err := turn.New(mi.config.Teams, mi.config.Victory, mi.logger)
	if err != nil {
		return nil, mi.fail(m, err)
	}
	scheduler.SetListener(m)
	m.scheduler = scheduler

	if err := m.machine.TransitionTo(states.PhaseRunning, "Match setup complete"); err != nil {
		return nil, fmt.Errorf("state machine initialization failed: %w", err)
	}

	lo, hi := m.grid.Bounds()
	m.bus.Publish(events.NewMatchStartedEvent(
		m.id,
		len(m.teams),
		len(m.units),
		hi.X-lo.X+1,
		hi.Y-lo.Y+1,
	))
	scheduler.Start()

	mi.logger.Info().
		Str("match_id", m.id).
		Int("teams", len(m.teams)).
		Int("units", len(m.units)).
		Int("tiles", m.grid.Len()).
		Msg("Match created successfully")

	return m, nil
}

func (mi *MatchInitializer) setupDefaults() {
	if mi.config.MatchID == "" {
		mi.config.MatchID = uuid.NewString()
	}
	if mi.config.Rng == nil {
		mi.logger.Debug().Msg("No RNG provided, creating new seeded RNG")
		mi.config.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if mi.config.Roller == nil {
		mi.config.Roller = mi.config.Rng
	}
	if mi.config.Rules.Movement.Walkable == 0 {
		mi.config.Rules.Movement.Walkable = DefaultRules().Movement.Walkable
	}
	if mi.config.Victory == nil {
		mi.config.Victory = rules.NewDeathmatch(mi.logger)
	}
	if mi.config.EventBus == nil {
		mi.config.EventBus = events.NewEventBusWithLogger(mi.logger)
	}
	mi.logger = mi.logger.With().Str("match_id", mi.config.MatchID).Logger()
}

func (mi *MatchInitializer) createMatch() *Match {
	cfg := mi.config
	sight := los.NewSightChecker(cfg.Grid, cfg.Rules.ViewBlocking, cfg.Rules.ViewBlockPolicy)
	roster := visibility.TeamRoster{Teams: cfg.Teams}
	resolver := combat.NewResolver(sight, cfg.Rules.PenaltyPerTile)

	matchCtx := states.NewMatchContext(cfg.MatchID, len(cfg.Teams), mi.logger)

	return &Match{
		id:      cfg.MatchID,
		grid:    cfg.Grid,
		teams:   cfg.Teams,
		units:   make(map[string]*core.Unit),
		rules:   cfg.Rules,
		roller:  cfg.Roller,
		logger:  mi.logger,
		bus:     cfg.EventBus,
		sight:   sight,
		vision:  visibility.NewResolver(sight, roster, cfg.Rules.VisionMode, cfg.Rules.Fog),
		combat:  resolver,
		legal:   rules.NewLegalMoveCalculator(cfg.Grid, cfg.Rules.Movement, resolver),
		machine: states.NewStateMachine(matchCtx, cfg.EventBus),
	}
}

// validate checks the configuration before anything is placed
func (mi *MatchInitializer) validate() error {
	cfg := mi.config
	if cfg.Grid == nil {
		return fmt.Errorf("%w: no grid", core.ErrMalformedSetup)
	}
	if len(cfg.Teams) == 0 {
		return fmt.Errorf("%w: no teams", core.ErrMalformedSetup)
	}
	if cfg.Rules.PenaltyPerTile < 0 {
		return fmt.Errorf("%w: negative distance penalty %d", core.ErrMalformedSetup, cfg.Rules.PenaltyPerTile)
	}
	if cfg.Rules.ReloadAPCost < 0 {
		return fmt.Errorf("%w: negative reload cost %d", core.ErrMalformedSetup, cfg.Rules.ReloadAPCost)
	}

	teamIDs := make(map[int]bool, len(cfg.Teams))
	unitIDs := make(map[string]bool)
	for _, team := range cfg.Teams {
		if teamIDs[team.ID] {
			return fmt.Errorf("%w: duplicate team id %d", core.ErrMalformedSetup, team.ID)
		}
		teamIDs[team.ID] = true

		for _, u := range team.Units {
			if u.ID == "" || unitIDs[u.ID] {
				return fmt.Errorf("%w: missing or duplicate unit id %q", core.ErrMalformedSetup, u.ID)
			}
			unitIDs[u.ID] = true
			if u.Team != team.ID {
				return fmt.Errorf("%w: unit %s belongs to team %d, listed under team %d",
					core.ErrMalformedSetup, u.Name, u.Team, team.ID)
			}
			_, deployed := cfg.Deployment[u.ID]
			if !u.IsPlaced() && !deployed {
				return fmt.Errorf("%w: unit %s has no position", core.ErrMalformedSetup, u.Name)
			}
		}
	}
	for id := range cfg.Deployment {
		if !unitIDs[id] {
			return fmt.Errorf("%w: deployment for unknown unit %q", core.ErrMalformedSetup, id)
		}
	}
	return nil
}

// deploy places pending units and checks every unit stands on walkable terrain
func (mi *MatchInitializer) deploy() error {
	cfg := mi.config
	for _, team := range cfg.Teams {
		for _, u := range team.Units {
			if at, ok := cfg.Deployment[u.ID]; ok {
				if err := cfg.Grid.Place(u, at); err != nil {
					return fmt.Errorf("%w: %v", core.ErrMalformedSetup, err)
				}
			}

			tile := cfg.Grid.Tile(u.Position())
			if tile == nil || tile.Occupant() != u {
				return fmt.Errorf("%w: unit %s is not on this grid", core.ErrMalformedSetup, u.Name)
			}
			if !cfg.Rules.Movement.Walkable.Has(tile.Terrain) {
				return fmt.Errorf("%w: unit %s at %v: %v", core.ErrMalformedSetup, u.Name, tile.Coord, core.ErrNotWalkable)
			}
			mi.logger.Debug().
				Str("unit", u.Name).
				Int("team", u.Team).
				Str("position", u.Position().String()).
				Msg("Unit deployed")
		}
	}
	return nil
}

// fail moves the state machine to PhaseError and returns err
func (mi *MatchInitializer) fail(m *Match, err error) error {
	mi.logger.Error().Err(err).Msg("Match setup failed")
	if terr := m.machine.Fail(err); terr != nil {
		mi.logger.Error().Err(terr).Msg("Failed to transition to Error state")
	}
	return err
}
