package scenario

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GridTactics/internal/game"
	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/los"
	"github.com/mitchelldurbincs/GridTactics/internal/game/rules"
	"github.com/mitchelldurbincs/GridTactics/internal/game/turn"
	"github.com/mitchelldurbincs/GridTactics/internal/game/visibility"
)

// assembled is a scenario turned into fresh game objects
type assembled struct {
	grid       *core.Grid
	teams      []*core.Team
	deployment map[string]core.Coordinate
	byName     map[string]*core.Unit
	rules      game.RulesConfig
}

// Build creates a match configuration with a fresh grid and fresh units.
// Units are deployed by the match initializer.
func (s *Scenario) Build(logger zerolog.Logger) (game.MatchConfig, error) {
	return s.BuildWithRules(game.DefaultRules(), logger)
}

// BuildWithRules is Build with the scenario's rules applied over base
func (s *Scenario) BuildWithRules(base game.RulesConfig, logger zerolog.Logger) (game.MatchConfig, error) {
	a, err := s.assemble(base)
	if err != nil {
		return game.MatchConfig{}, err
	}
	victory, err := s.victory(a, logger)
	if err != nil {
		return game.MatchConfig{}, err
	}
	return game.MatchConfig{
		Grid:       a.grid,
		Teams:      a.teams,
		Deployment: a.deployment,
		Victory:    victory,
		Rules:      a.rules,
		Logger:     logger,
	}, nil
}

func (s *Scenario) assemble(base game.RulesConfig) (*assembled, error) {
	if len(s.Board) == 0 {
		return nil, malformed("empty board")
	}
	grid, err := core.BuildGrid(s.Board, s.Cover.Low, s.Cover.High)
	if err != nil {
		return nil, malformed("board: %v", err)
	}
	if err := s.addCovers(grid); err != nil {
		return nil, err
	}

	ruleset, err := s.Rules.apply(base)
	if err != nil {
		return nil, err
	}

	a := &assembled{
		grid:       grid,
		deployment: make(map[string]core.Coordinate),
		byName:     make(map[string]*core.Unit),
		rules:      ruleset,
	}
	if err := s.addTeams(a); err != nil {
		return nil, err
	}
	if err := s.checkVictory(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Scenario) addCovers(grid *core.Grid) error {
	for i, c := range s.Covers {
		terrain, err := core.ParseTerrain(c.Terrain)
		if err != nil {
			return malformed("cover %d: %v", i, err)
		}
		switch {
		case c.At != nil && len(c.Between) == 0:
			if _, err := grid.AddTileCover(core.Coordinate{X: c.At.X, Y: c.At.Y}, terrain, c.Protection); err != nil {
				return malformed("cover %d: %v", i, err)
			}
		case c.At == nil && len(c.Between) == 2:
			a := core.Coordinate{X: c.Between[0].X, Y: c.Between[0].Y}
			b := core.Coordinate{X: c.Between[1].X, Y: c.Between[1].Y}
			if _, err := grid.AddEdgeCover(a, b, terrain, c.Protection); err != nil {
				return malformed("cover %d: %v", i, err)
			}
		default:
			return malformed("cover %d: needs either 'at' or a two-point 'between'", i)
		}
	}
	return nil
}

func (r RulesSpec) apply(base game.RulesConfig) (game.RulesConfig, error) {
	var err error
	if len(r.Walkable) > 0 {
		if base.Movement.Walkable, err = core.ParseTerrainSet(r.Walkable); err != nil {
			return base, malformed("rules.walkable: %v", err)
		}
	}
	if len(r.ViewBlocking) > 0 {
		if base.ViewBlocking, err = core.ParseTerrainSet(r.ViewBlocking); err != nil {
			return base, malformed("rules.view_blocking: %v", err)
		}
	}
	if r.Diagonal != nil {
		base.Movement.Diagonal = *r.Diagonal
	}
	if r.ViewBlockPolicy != "" {
		if base.ViewBlockPolicy, err = los.ParseViewBlockPolicy(r.ViewBlockPolicy); err != nil {
			return base, malformed("rules.view_block_policy: %v", err)
		}
	}
	if r.VisionMode != "" {
		if base.VisionMode, err = visibility.ParseVisionMode(r.VisionMode); err != nil {
			return base, malformed("rules.vision_mode: %v", err)
		}
	}
	if r.Fog != "" {
		if base.Fog, err = visibility.ParseFogPolicy(r.Fog); err != nil {
			return base, malformed("rules.fog: %v", err)
		}
	}
	if r.PenaltyPerTile != nil {
		if *r.PenaltyPerTile < 0 {
			return base, malformed("rules.penalty_per_tile must not be negative, got %d", *r.PenaltyPerTile)
		}
		base.PenaltyPerTile = *r.PenaltyPerTile
	}
	if r.ReloadAPCost != nil {
		if *r.ReloadAPCost < 0 {
			return base, malformed("rules.reload_ap_cost must not be negative, got %d", *r.ReloadAPCost)
		}
		base.ReloadAPCost = *r.ReloadAPCost
	}
	return base, nil
}

func (s *Scenario) addTeams(a *assembled) error {
	if len(s.Teams) == 0 {
		return malformed("no teams")
	}
	taken := make(map[core.Coordinate]string)
	for id, ts := range s.Teams {
		if ts.Name == "" {
			return malformed("team %d has no name", id)
		}
		if len(ts.Units) == 0 {
			return malformed("team %s has no units", ts.Name)
		}
		team := &core.Team{ID: id, Name: ts.Name, AI: ts.AI}

		for _, us := range ts.Units {
			u, err := s.unit(us, id)
			if err != nil {
				return err
			}
			if _, dup := a.byName[u.Name]; dup {
				return malformed("duplicate unit name %q", u.Name)
			}

			at := core.Coordinate{X: us.At.X, Y: us.At.Y}
			tile := a.grid.Tile(at)
			switch {
			case tile == nil:
				return malformed("unit %s at %v: %v", u.Name, at, core.ErrNoTile)
			case !a.rules.Movement.Walkable.Has(tile.Terrain):
				return malformed("unit %s at %v: %v", u.Name, at, core.ErrNotWalkable)
			case a.grid.CoverOn(at) != nil && !a.rules.Movement.Walkable.Has(a.grid.CoverOn(at).Terrain):
				return malformed("unit %s at %v: covered tile", u.Name, at)
			case taken[at] != "":
				return malformed("unit %s at %v: tile taken by %s", u.Name, at, taken[at])
			}
			taken[at] = u.Name

			a.byName[u.Name] = u
			a.deployment[u.ID] = at
			team.Units = append(team.Units, u)
		}
		a.teams = append(a.teams, team)
	}
	return nil
}

func (s *Scenario) unit(us UnitSpec, team int) (*core.Unit, error) {
	if us.Name == "" {
		return nil, malformed("unit without a name in team %d", team)
	}
	stats := s.Defaults.Stats
	if us.Stats != nil {
		stats = *us.Stats
	}
	ws := s.Defaults.Weapon
	if us.Weapon != nil {
		ws = *us.Weapon
	}

	if stats.HP <= 0 || stats.ActionPoints <= 0 {
		return nil, malformed("unit %s needs positive hp and action points", us.Name)
	}
	kind, err := core.ParseWeaponKind(ws.Kind)
	if err != nil {
		return nil, malformed("unit %s: %v", us.Name, err)
	}
	if ws.APCost <= 0 {
		ws.APCost = 1
	}
	ammo := core.UnlimitedAmmo
	if ws.Ammo != nil {
		ammo = *ws.Ammo
	}
	if ammo == 0 || ammo < core.UnlimitedAmmo {
		return nil, malformed("unit %s: weapon %s ammo must be positive or %d for unlimited, got %d",
			us.Name, ws.Name, core.UnlimitedAmmo, ammo)
	}

	u := core.NewUnit(us.Name, team, core.Stats{
		SightRange:      stats.Sight,
		MovementRange:   stats.Movement,
		MaxHP:           stats.HP,
		MaxActionPoints: stats.ActionPoints,
	}, core.Weapon{
		Name:      ws.Name,
		Kind:      kind,
		Precision: ws.Precision,
		Range:     ws.Range,
		Damage:    ws.Damage,
		Modifier:  ws.Modifier,
		Ammo:      ammo,
		MaxAmmo:   ammo,
		APCost:    ws.APCost,
	})
	return u, nil
}

func (s *Scenario) checkVictory(a *assembled) error {
	v := s.Victory
	switch v.Mode {
	case "", ModeDeathmatch:
	case ModeZone:
		if _, ok := a.byName[v.Unit]; !ok {
			return malformed("victory: unknown zone unit %q", v.Unit)
		}
		if len(v.Zone) == 0 {
			return malformed("victory: empty zone")
		}
		for _, p := range v.Zone {
			if a.grid.Tile(core.Coordinate{X: p.X, Y: p.Y}) == nil {
				return malformed("victory: zone tile (%d,%d) does not exist", p.X, p.Y)
			}
		}
	case ModeExpression:
		if v.Expression == "" {
			return malformed("victory: empty expression")
		}
		if _, err := rules.NewExpressionCondition(v.Expression, a.grid, zerolog.Nop()); err != nil {
			return malformed("victory: %v", err)
		}
	default:
		return malformed("victory: unknown mode %q", v.Mode)
	}
	return nil
}

func (s *Scenario) victory(a *assembled, logger zerolog.Logger) (turn.VictoryChecker, error) {
	switch s.Victory.Mode {
	case ModeZone:
		zone := make([]core.Coordinate, len(s.Victory.Zone))
		for i, p := range s.Victory.Zone {
			zone[i] = core.Coordinate{X: p.X, Y: p.Y}
		}
		zc, err := rules.NewZoneCapture(a.byName[s.Victory.Unit], zone)
		if err != nil {
			return nil, malformed("victory: %v", err)
		}
		return s.withDeathmatch(zc, logger), nil
	case ModeExpression:
		ec, err := rules.NewExpressionCondition(s.Victory.Expression, a.grid, logger)
		if err != nil {
			return nil, malformed("victory: %v", err)
		}
		return s.withDeathmatch(ec, logger), nil
	}
	return rules.NewDeathmatch(logger), nil
}

func (s *Scenario) withDeathmatch(c turn.VictoryChecker, logger zerolog.Logger) turn.VictoryChecker {
	if !s.Victory.Deathmatch {
		return c
	}
	return rules.AnyOf{c, rules.NewDeathmatch(logger)}
}
