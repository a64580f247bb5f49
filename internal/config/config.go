package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mitchelldurbincs/GridTactics/internal/game"
	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/los"
	"github.com/mitchelldurbincs/GridTactics/internal/game/mapgen"
	"github.com/mitchelldurbincs/GridTactics/internal/game/visibility"
)

// Config holds all configuration for the application
type Config struct {
	Rules       RulesConfig       `mapstructure:"rules"`
	Vision      VisionConfig      `mapstructure:"vision"`
	Combat      CombatConfig      `mapstructure:"combat"`
	Match       MatchConfig       `mapstructure:"match"`
	MapGen      MapGenConfig      `mapstructure:"mapgen"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Development DevelopmentConfig `mapstructure:"development"`
}

// RulesConfig holds movement and sight rules
type RulesConfig struct {
	Walkable        []string `mapstructure:"walkable"`
	ViewBlocking    []string `mapstructure:"view_blocking"`
	Diagonal        bool     `mapstructure:"diagonal"`
	ViewBlockPolicy string   `mapstructure:"view_block_policy"`
}

// VisionConfig holds fog of war settings
type VisionConfig struct {
	Mode string `mapstructure:"mode"`
	Fog  string `mapstructure:"fog"`
}

// CombatConfig holds accuracy and cover settings
type CombatConfig struct {
	PenaltyPerTile      int `mapstructure:"penalty_per_tile"`
	ReloadAPCost        int `mapstructure:"reload_ap_cost"`
	LowCoverProtection  int `mapstructure:"low_cover_protection"`
	HighCoverProtection int `mapstructure:"high_cover_protection"`
}

// MatchConfig holds settings of a headless match
type MatchConfig struct {
	Scenario string `mapstructure:"scenario"`
	MaxTurns int    `mapstructure:"max_turns"`
	Seed     int64  `mapstructure:"seed"`
}

// MapGenConfig holds random board settings used when no scenario is given
type MapGenConfig struct {
	Width          int `mapstructure:"width"`
	Height         int `mapstructure:"height"`
	Teams          int `mapstructure:"teams"`
	UnitsPerTeam   int `mapstructure:"units_per_team"`
	ObstacleRatio  int `mapstructure:"obstacle_ratio"`
	HoleRatio      int `mapstructure:"hole_ratio"`
	CoverRatio     int `mapstructure:"cover_ratio"`
	EdgeCoverRatio int `mapstructure:"edge_cover_ratio"`
	MinTeamSpacing int `mapstructure:"min_team_spacing"`
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DevelopmentConfig holds development/debug settings
type DevelopmentConfig struct {
	VerboseLogging bool `mapstructure:"verbose_logging"`
	LogEventData   bool `mapstructure:"log_event_data"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
	// mu guards cfg and v against the config watcher
	mu sync.RWMutex
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Rules defaults
	v.SetDefault("rules.walkable", []string{"basic"})
	v.SetDefault("rules.view_blocking", []string{"obstacle"})
	v.SetDefault("rules.diagonal", true)
	v.SetDefault("rules.view_block_policy", los.AlliesNeverBlock.String())

	// Vision defaults
	v.SetDefault("vision.mode", visibility.GroupVision.String())
	v.SetDefault("vision.fog", visibility.AlliesAndSight.String())

	// Combat defaults
	v.SetDefault("combat.penalty_per_tile", 10)
	v.SetDefault("combat.reload_ap_cost", 1)
	v.SetDefault("combat.low_cover_protection", 25)
	v.SetDefault("combat.high_cover_protection", 50)

	// Match defaults
	v.SetDefault("match.scenario", "")
	v.SetDefault("match.max_turns", 100)
	v.SetDefault("match.seed", 0)

	// Map generation defaults
	v.SetDefault("mapgen.width", 16)
	v.SetDefault("mapgen.height", 12)
	v.SetDefault("mapgen.teams", 2)
	v.SetDefault("mapgen.units_per_team", 3)
	v.SetDefault("mapgen.obstacle_ratio", 12)
	v.SetDefault("mapgen.hole_ratio", 40)
	v.SetDefault("mapgen.cover_ratio", 15)
	v.SetDefault("mapgen.edge_cover_ratio", 20)
	v.SetDefault("mapgen.min_team_spacing", 8)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Development defaults
	v.SetDefault("development.verbose_logging", false)
	v.SetDefault("development.log_event_data", false)
}

// Init initializes the configuration
func Init(configPath string) error {
	nv := viper.New()

	// Set defaults before loading any config
	setViperDefaults(nv)

	if configPath != "" {
		nv.SetConfigFile(configPath)
	} else {
		nv.SetConfigName("config")
		nv.SetConfigType("yaml")
		nv.AddConfigPath(".")
		nv.AddConfigPath("./config")
		nv.AddConfigPath("/etc/gridtactics")
	}

	nv.SetEnvPrefix("GT")
	nv.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	nv.AutomaticEnv()

	if err := nv.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// A specific file that is missing falls back to defaults too
		if configPath == "" && !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	next := &Config{}
	if err := nv.Unmarshal(next); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(next); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	v, cfg = nv, next
	return nil
}

// Get returns the global config instance. The returned value is never
// mutated; reloads and overrides swap in a new one.
func Get() *Config {
	mu.RLock()
	c := cfg
	mu.RUnlock()
	if c != nil {
		return c
	}
	// Initialize with defaults if not already initialized
	if err := Init(""); err != nil {
		panic("failed to initialize config with defaults: " + err.Error())
	}
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// reloadLocked decodes viper's current view into a fresh Config and swaps
// it in when valid. Callers hold mu.
func reloadLocked() error {
	next := &Config{}
	if err := v.Unmarshal(next); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(next); err != nil {
		return err
	}
	cfg = next
	return nil
}

// LoadEnvironmentConfig merges config.<env>.yaml, found next to the loaded
// config file or in the working directory, over the loaded config. A
// missing environment file is not an error.
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}
	mu.Lock()
	defer mu.Unlock()

	base := v.ConfigFileUsed()
	envFile := fmt.Sprintf("config.%s.yaml", env)
	if base != "" {
		envFile = filepath.Join(filepath.Dir(base), envFile)
	}
	if _, err := os.Stat(envFile); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	v.SetConfigFile(envFile)
	err := v.MergeInConfig()
	if base != "" {
		v.SetConfigFile(base)
	}
	if err != nil {
		return fmt.Errorf("error merging environment config %s: %w", envFile, err)
	}
	return reloadLocked()
}

// BindFlags binds command line flags to config keys, so that flags set on
// the command line override files and environment, then reloads the config
func BindFlags(fs *pflag.FlagSet, keys map[string]string) error {
	mu.Lock()
	defer mu.Unlock()

	for key, name := range keys {
		f := fs.Lookup(name)
		if f == nil {
			return fmt.Errorf("no flag named %q for key %s", name, key)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return reloadLocked()
}

// Set allows runtime config updates
func Set(key string, value interface{}) error {
	mu.Lock()
	defer mu.Unlock()

	v.Set(key, value)
	return reloadLocked()
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	mu.RLock()
	defer mu.RUnlock()
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. Changes that fail
// validation are reported through onError and leave the previous config in
// place. Both callbacks run on the watcher goroutine.
func WatchConfig(onChange func(*Config), onError func(error)) {
	mu.Lock()
	defer mu.Unlock()

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		mu.Lock()
		err := reloadLocked()
		next := cfg
		mu.Unlock()

		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("reload %s: %w", e.Name, err))
			}
			return
		}
		if onChange != nil {
			onChange(next)
		}
	})
	v.WatchConfig()
}

// GameRules converts the rules, vision and combat sections into match rules
func (c *Config) GameRules() (game.RulesConfig, error) {
	rules := game.DefaultRules()
	var err error

	if rules.Movement.Walkable, err = core.ParseTerrainSet(c.Rules.Walkable); err != nil {
		return rules, fmt.Errorf("rules.walkable: %w", err)
	}
	if rules.ViewBlocking, err = core.ParseTerrainSet(c.Rules.ViewBlocking); err != nil {
		return rules, fmt.Errorf("rules.view_blocking: %w", err)
	}
	rules.Movement.Diagonal = c.Rules.Diagonal
	if rules.ViewBlockPolicy, err = los.ParseViewBlockPolicy(c.Rules.ViewBlockPolicy); err != nil {
		return rules, fmt.Errorf("rules.view_block_policy: %w", err)
	}
	if rules.VisionMode, err = visibility.ParseVisionMode(c.Vision.Mode); err != nil {
		return rules, fmt.Errorf("vision.mode: %w", err)
	}
	if rules.Fog, err = visibility.ParseFogPolicy(c.Vision.Fog); err != nil {
		return rules, fmt.Errorf("vision.fog: %w", err)
	}
	rules.PenaltyPerTile = c.Combat.PenaltyPerTile
	rules.ReloadAPCost = c.Combat.ReloadAPCost
	return rules, nil
}

// MapConfig converts the mapgen section into generator settings
func (c *Config) MapConfig() mapgen.MapConfig {
	mc := mapgen.DefaultMapConfig(c.MapGen.Width, c.MapGen.Height, c.MapGen.Teams)
	mc.UnitsPerTeam = c.MapGen.UnitsPerTeam
	mc.ObstacleRatio = c.MapGen.ObstacleRatio
	mc.HoleRatio = c.MapGen.HoleRatio
	mc.CoverRatio = c.MapGen.CoverRatio
	mc.EdgeCoverRatio = c.MapGen.EdgeCoverRatio
	mc.MinTeamSpacing = c.MapGen.MinTeamSpacing
	mc.LowCoverProtection = c.Combat.LowCoverProtection
	mc.HighCoverProtection = c.Combat.HighCoverProtection
	return mc
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if len(c.Rules.Walkable) == 0 {
		return fmt.Errorf("rules.walkable must name at least one terrain")
	}
	if _, err := c.GameRules(); err != nil {
		return err
	}

	if c.Combat.PenaltyPerTile < 0 {
		return fmt.Errorf("combat.penalty_per_tile must be non-negative")
	}
	if c.Combat.ReloadAPCost < 0 {
		return fmt.Errorf("combat.reload_ap_cost must be non-negative")
	}
	validatePercent := func(p int, name string) error {
		if p < 0 || p > 100 {
			return fmt.Errorf("%s must be between 0 and 100", name)
		}
		return nil
	}
	if err := validatePercent(c.Combat.LowCoverProtection, "combat.low_cover_protection"); err != nil {
		return err
	}
	if err := validatePercent(c.Combat.HighCoverProtection, "combat.high_cover_protection"); err != nil {
		return err
	}

	if c.Match.MaxTurns < 0 {
		return fmt.Errorf("match.max_turns must be non-negative")
	}

	if c.MapGen.Width <= 0 || c.MapGen.Height <= 0 {
		return fmt.Errorf("mapgen dimensions must be positive")
	}
	if c.MapGen.Teams < 2 {
		return fmt.Errorf("mapgen.teams must be at least 2")
	}
	if c.MapGen.UnitsPerTeam < 1 {
		return fmt.Errorf("mapgen.units_per_team must be at least 1")
	}
	if c.MapGen.ObstacleRatio < 0 || c.MapGen.HoleRatio < 0 || c.MapGen.CoverRatio < 0 || c.MapGen.EdgeCoverRatio < 0 {
		return fmt.Errorf("mapgen ratios must be non-negative")
	}
	if c.MapGen.MinTeamSpacing < 0 {
		return fmt.Errorf("mapgen.min_team_spacing must be non-negative")
	}

	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be console or json")
	}

	return nil
}
