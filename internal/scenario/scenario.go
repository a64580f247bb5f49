// Package scenario loads hand-authored levels from YAML files.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mitchelldurbincs/GridTactics/internal/game"
)

// ErrMalformedScenario wraps every validation failure
var ErrMalformedScenario = errors.New("malformed scenario")

// Victory modes
const (
	ModeDeathmatch = "deathmatch"
	ModeZone       = "zone"
	ModeExpression = "expression"
)

// Scenario is a level: board, covers, teams and the victory condition
type Scenario struct {
	Name     string       `yaml:"name"`
	MaxTurns int          `yaml:"max_turns"`
	Board    []string     `yaml:"board"`
	Cover    CoverDefault `yaml:"cover_protection"`
	Covers   []CoverSpec  `yaml:"covers"`
	Rules    RulesSpec    `yaml:"rules"`
	Defaults UnitDefaults `yaml:"defaults"`
	Teams    []TeamSpec   `yaml:"teams"`
	Victory  VictorySpec  `yaml:"victory"`
}

// CoverDefault is the protection given to 'l' and 'H' board tiles
type CoverDefault struct {
	Low  int `yaml:"low"`
	High int `yaml:"high"`
}

// CoverSpec decorates a tile (At) or the edge between two tiles (Between)
type CoverSpec struct {
	At         *Point  `yaml:"at"`
	Between    []Point `yaml:"between"`
	Terrain    string  `yaml:"terrain"`
	Protection int     `yaml:"protection"`
}

// RulesSpec overrides the default match rules. Empty fields keep the default.
type RulesSpec struct {
	Walkable        []string `yaml:"walkable"`
	ViewBlocking    []string `yaml:"view_blocking"`
	Diagonal        *bool    `yaml:"diagonal"`
	ViewBlockPolicy string   `yaml:"view_block_policy"`
	VisionMode      string   `yaml:"vision_mode"`
	Fog             string   `yaml:"fog"`
	PenaltyPerTile  *int     `yaml:"penalty_per_tile"`
	ReloadAPCost    *int     `yaml:"reload_ap_cost"`
}

// UnitDefaults apply to every unit that does not override them
type UnitDefaults struct {
	Stats  StatsSpec  `yaml:"stats"`
	Weapon WeaponSpec `yaml:"weapon"`
}

type TeamSpec struct {
	Name  string     `yaml:"name"`
	AI    bool       `yaml:"ai"`
	Units []UnitSpec `yaml:"units"`
}

type UnitSpec struct {
	Name   string      `yaml:"name"`
	At     Point       `yaml:"at"`
	Stats  *StatsSpec  `yaml:"stats"`
	Weapon *WeaponSpec `yaml:"weapon"`
}

type StatsSpec struct {
	Sight        int `yaml:"sight"`
	Movement     int `yaml:"movement"`
	HP           int `yaml:"hp"`
	ActionPoints int `yaml:"action_points"`
}

type WeaponSpec struct {
	Name      string `yaml:"name"`
	Kind      string `yaml:"kind"`
	Precision int    `yaml:"precision"`
	Range     int    `yaml:"range"`
	Damage    int    `yaml:"damage"`
	Modifier  int    `yaml:"modifier"`
	// Ammo -1 or omitted never runs out
	Ammo   *int `yaml:"ammo"`
	APCost int  `yaml:"ap_cost"`
}

// VictorySpec selects the win condition
type VictorySpec struct {
	Mode       string  `yaml:"mode"`
	Unit       string  `yaml:"unit"`
	Zone       []Point `yaml:"zone"`
	Expression string  `yaml:"expression"`
	// Deathmatch also ends zone and expression matches when a side is wiped out
	Deathmatch bool `yaml:"deathmatch"`
}

// Point is an [x, y] pair
type Point struct {
	X, Y int
}

func (p *Point) UnmarshalYAML(value *yaml.Node) error {
	var xy []int
	if err := value.Decode(&xy); err != nil {
		return err
	}
	if len(xy) != 2 {
		return fmt.Errorf("line %d: point needs exactly two coordinates, got %d", value.Line, len(xy))
	}
	p.X, p.Y = xy[0], xy[1]
	return nil
}

func (p Point) MarshalYAML() (interface{}, error) {
	return []int{p.X, p.Y}, nil
}

// Load reads and validates a scenario file
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a scenario. Unknown fields are rejected.
func Parse(data []byte) (*Scenario, error) {
	s := &Scenario{
		Cover: CoverDefault{Low: 25, High: 50},
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedScenario, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the scenario by assembling it once
func (s *Scenario) Validate() error {
	_, err := s.assemble(game.DefaultRules())
	return err
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedScenario, fmt.Sprintf(format, args...))
}
