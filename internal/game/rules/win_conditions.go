package rules

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/turn"
)

// Deathmatch is won by the team due to act once no enemy is left standing
type Deathmatch struct {
	logger zerolog.Logger
}

// NewDeathmatch creates a deathmatch checker
func NewDeathmatch(logger zerolog.Logger) *Deathmatch {
	return &Deathmatch{
		logger: logger.With().Str("component", "Deathmatch").Logger(),
	}
}

func (d *Deathmatch) Check(state turn.VictoryState) turn.Verdict {
	if state.Due == nil {
		return turn.Verdict{Outcome: turn.Continue}
	}

	enemies := livingEnemies(state.Teams, state.Due.ID)
	d.logger.Debug().
		Str("team", state.Due.Name).
		Int("living_enemies", enemies).
		Msg("Checking deathmatch")
	if enemies > 0 {
		return turn.Verdict{Outcome: turn.Continue}
	}
	d.logger.Info().Int("winner_team", state.Due.ID).Msg("Winner determined")
	return turn.Verdict{Outcome: turn.Victory, Team: state.Due.ID}
}

// ZoneCapture is won when Unit stands on any tile of Zone, and lost when it dies
type ZoneCapture struct {
	Unit *core.Unit
	zone map[core.Coordinate]struct{}
}

// NewZoneCapture creates a zone capture checker for a designated unit
func NewZoneCapture(unit *core.Unit, zone []core.Coordinate) (*ZoneCapture, error) {
	if unit == nil {
		return nil, fmt.Errorf("%w: zone capture without a designated unit", core.ErrMalformedSetup)
	}
	if len(zone) == 0 {
		return nil, fmt.Errorf("%w: zone capture without zone tiles", core.ErrMalformedSetup)
	}
	z := &ZoneCapture{Unit: unit, zone: make(map[core.Coordinate]struct{}, len(zone))}
	for _, c := range zone {
		z.zone[c] = struct{}{}
	}
	return z, nil
}

// InZone reports whether c is one of the capture tiles
func (z *ZoneCapture) InZone(c core.Coordinate) bool {
	_, ok := z.zone[c]
	return ok
}

func (z *ZoneCapture) Check(turn.VictoryState) turn.Verdict {
	switch {
	case !z.Unit.Alive():
		return turn.Verdict{Outcome: turn.Defeat, Team: z.Unit.Team}
	case z.Unit.IsPlaced() && z.InZone(z.Unit.Position()):
		return turn.Verdict{Outcome: turn.Victory, Team: z.Unit.Team}
	}
	return turn.Verdict{Outcome: turn.Continue}
}

// VictoryEnv is what a victory expression can read. Team and TeamID name the
// team due to act.
type VictoryEnv struct {
	Turn   int
	Team   string
	TeamID int

	state turn.VictoryState
	grid  *core.Grid
}

// AliveAllies counts living units of the team due to act
func (e VictoryEnv) AliveAllies() int {
	if e.state.Due == nil {
		return 0
	}
	return len(e.state.Due.LivingUnits())
}

// AliveEnemies counts living units of every other team
func (e VictoryEnv) AliveEnemies() int {
	return livingEnemies(e.state.Teams, e.TeamID)
}

// UnitAt returns the name of the living unit standing at (x,y), or ""
func (e VictoryEnv) UnitAt(x, y int) string {
	if e.grid == nil {
		return ""
	}
	t := e.grid.Tile(core.Coordinate{X: x, Y: y})
	if t == nil || t.Occupant() == nil || !t.Occupant().Alive() {
		return ""
	}
	return t.Occupant().Name
}

// Alive reports whether a unit with that name is alive on any team
func (e VictoryEnv) Alive(name string) bool {
	for _, team := range e.state.Teams {
		for _, u := range team.Units {
			if u.Name == name && u.Alive() {
				return true
			}
		}
	}
	return false
}

// ExpressionCondition grants victory to the team due to act whenever its
// boolean expression holds, e.g. `AliveEnemies() == 0 || UnitAt(4, 2) == "scout"`.
type ExpressionCondition struct {
	Source  string
	program *vm.Program
	grid    *core.Grid
	logger  zerolog.Logger
}

// NewExpressionCondition compiles src against VictoryEnv
func NewExpressionCondition(src string, grid *core.Grid, logger zerolog.Logger) (*ExpressionCondition, error) {
	prog, err := expr.Compile(src, expr.Env(VictoryEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile victory expression %q: %w", src, err)
	}
	return &ExpressionCondition{
		Source:  src,
		program: prog,
		grid:    grid,
		logger:  logger.With().Str("component", "ExpressionCondition").Logger(),
	}, nil
}

func (c *ExpressionCondition) Check(state turn.VictoryState) turn.Verdict {
	if state.Due == nil {
		return turn.Verdict{Outcome: turn.Continue}
	}
	env := VictoryEnv{
		Turn:   state.Turn,
		Team:   state.Due.Name,
		TeamID: state.Due.ID,
		state:  state,
		grid:   c.grid,
	}

	out, err := vm.Run(c.program, env)
	if err != nil {
		c.logger.Warn().Err(err).Str("expression", c.Source).Msg("Victory expression failed")
		return turn.Verdict{Outcome: turn.Continue}
	}
	if ok, _ := out.(bool); ok {
		return turn.Verdict{Outcome: turn.Victory, Team: state.Due.ID}
	}
	return turn.Verdict{Outcome: turn.Continue}
}

// AnyOf returns the first decisive verdict of its checkers
type AnyOf []turn.VictoryChecker

func (a AnyOf) Check(state turn.VictoryState) turn.Verdict {
	for _, c := range a {
		if v := c.Check(state); v.Outcome != turn.Continue {
			return v
		}
	}
	return turn.Verdict{Outcome: turn.Continue}
}

func livingEnemies(teams []*core.Team, team int) int {
	n := 0
	for _, t := range teams {
		if t.ID != team {
			n += len(t.LivingUnits())
		}
	}
	return n
}
