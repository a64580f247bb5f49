package main

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/mitchelldurbincs/GridTactics/internal/config"
	"github.com/mitchelldurbincs/GridTactics/internal/game"
	"github.com/mitchelldurbincs/GridTactics/internal/game/ai"
	"github.com/mitchelldurbincs/GridTactics/internal/game/events"
	"github.com/mitchelldurbincs/GridTactics/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/GridTactics/internal/game/mapgen"
	"github.com/mitchelldurbincs/GridTactics/internal/game/processor"
	"github.com/mitchelldurbincs/GridTactics/internal/monitoring"
	"github.com/mitchelldurbincs/GridTactics/internal/scenario"
)

func main() {
	// Command line flags
	fs := pflag.NewFlagSet("skirmish", pflag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	fs.String("scenario", "", "Scenario YAML file (random board when empty)")
	fs.Int("max-turns", 0, "Stop after this many team turns (0 to use config default)")
	fs.Int64("seed", 0, "RNG seed (0 seeds from the clock)")
	fs.String("log-level", "", "Log level (debug, info, warn, error)")
	fs.Bool("event-data", false, "Attach full event payloads to event logs")
	watch := fs.Bool("watch", false, "Reload the config file when it changes")
	_ = fs.Parse(os.Args[1:])

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(os.Getenv("APP_ENV")); err != nil {
		log.Fatal().Err(err).Msg("Failed to load environment config")
	}
	if err := config.BindFlags(fs, map[string]string{
		"match.scenario":             "scenario",
		"match.max_turns":            "max-turns",
		"match.seed":                 "seed",
		"logging.level":              "log-level",
		"development.log_event_data": "event-data",
	}); err != nil {
		log.Fatal().Err(err).Msg("Invalid command line")
	}

	cfg := config.Get()
	setupLogging(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := cfg.Match.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
		// Record the clock seed so the run can be replayed
		if err := config.Set("match.seed", seed); err != nil {
			log.Fatal().Err(err).Msg("Failed to record seed")
		}
		cfg = config.Get()
	}
	rng := rand.New(rand.NewSource(seed))

	// Reloads are applied by the play loop between turns
	reloads := make(chan *config.Config, 1)
	if *watch {
		config.WatchConfig(func(c *config.Config) {
			select {
			case <-reloads:
			default:
			}
			reloads <- c
		}, func(err error) {
			log.Warn().Err(err).Msg("Ignoring invalid configuration change")
		})
	}

	matchCfg, maxTurns, err := buildMatch(cfg, rng)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up match")
	}

	bus := events.NewEventBusWithLogger(log.Logger)
	eventLevel := zerolog.InfoLevel
	if cfg.Development.VerboseLogging {
		eventLevel = zerolog.DebugLevel
	}
	eventLog := subscribers.NewLoggerSubscriber("skirmish-log", log.Logger, eventLevel)
	eventLog.SetDevMode(cfg.Development.LogEventData)
	bus.Subscribe(eventLog)
	monitor := monitoring.NewMatchMonitor("skirmish-metrics")
	bus.Subscribe(monitor)
	matchCfg.EventBus = bus
	matchCfg.Rng = rng
	matchCfg.Logger = log.Logger

	log.Info().
		Int64("seed", seed).
		Str("scenario", cfg.Match.Scenario).
		Int("max_turns", maxTurns).
		Msg("Starting skirmish")

	m, err := game.NewMatchInitializer(matchCfg).Initialize(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create match")
	}

	if err := play(ctx, m, maxTurns, reloads); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("Match aborted")
	}

	log.Info().
		Str("outcome", m.Outcome().String()).
		Int("winner", m.Winner()).
		Int("turns", m.Turn()).
		Dur("duration", m.Context().GetElapsedTime()).
		Strs("board", m.Grid().Render()).
		Msg("Skirmish finished")
	monitor.LogSummary(log.Logger)
}

// buildMatch loads the configured scenario, or generates a random board
func buildMatch(cfg *config.Config, rng *rand.Rand) (game.MatchConfig, int, error) {
	rules, err := cfg.GameRules()
	if err != nil {
		return game.MatchConfig{}, 0, err
	}
	maxTurns := cfg.Match.MaxTurns

	if cfg.Match.Scenario != "" {
		s, err := scenario.Load(cfg.Match.Scenario)
		if err != nil {
			return game.MatchConfig{}, 0, err
		}
		mc, err := s.BuildWithRules(rules, log.Logger)
		if err != nil {
			return game.MatchConfig{}, 0, err
		}
		if s.MaxTurns > 0 && (maxTurns == 0 || s.MaxTurns < maxTurns) {
			maxTurns = s.MaxTurns
		}
		return mc, maxTurns, nil
	}

	grid, teams, err := mapgen.NewGenerator(cfg.MapConfig(), rng).Generate()
	if err != nil {
		return game.MatchConfig{}, 0, err
	}
	return game.MatchConfig{Grid: grid, Teams: teams, Rules: rules}, maxTurns, nil
}

// play runs AI turns until the match resolves or the turn limit is hit.
// Teams without AI pass their turn.
func play(ctx context.Context, m *game.Match, maxTurns int, reloads <-chan *config.Config) error {
	ctrl := ai.NewController(log.Logger)
	cp := processor.NewCommandProcessor(m, log.Logger)

	for !m.IsResolved() {
		select {
		case c := <-reloads:
			applyReload(c)
		default:
		}

		if maxTurns > 0 && m.Turn() > maxTurns {
			log.Warn().Int("max_turns", maxTurns).Msg("Turn limit reached without a winner")
			return nil
		}

		current := m.CurrentUnit()
		if !m.CurrentTeam().AI {
			cp.Submit(processor.EndTurnCommand{})
		} else if err := ctrl.PlayTurn(ctx, m); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Warn().Err(err).Str("unit", current.Name).Msg("AI move failed, ending unit turn")
			cp.Submit(processor.EndUnitTurnCommand{Unit: current.ID})
		}

		if cp.Pending() > 0 {
			if _, err := cp.Tick(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// applyReload takes over the settings that can change mid-match. Loggers
// already handed to match components keep their output, so only the level
// follows the file.
func applyReload(c *config.Config) {
	zerolog.SetGlobalLevel(parseLevel(c.Logging.Level))
	log.Info().
		Str("level", c.Logging.Level).
		Str("file", config.ConfigFilePath()).
		Msg("Configuration reloaded")
}

func parseLevel(level string) zerolog.Level {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || logLevel == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return logLevel
}

func setupLogging(level, format string) {
	zerolog.SetGlobalLevel(parseLevel(level))

	// JSON output for production or when asked for
	if os.Getenv("APP_ENV") == "production" || format == "json" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}
}
