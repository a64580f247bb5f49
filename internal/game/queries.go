package game

import (
	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/los"
	"github.com/mitchelldurbincs/GridTactics/internal/game/pathfind"
	"github.com/mitchelldurbincs/GridTactics/internal/game/rules"
	"github.com/mitchelldurbincs/GridTactics/internal/game/visibility"
)

// MovementRules returns the rules u moves under right now
func (m *Match) MovementRules(u *core.Unit) pathfind.MovementRules {
	return pathfind.RulesFor(m.grid, u, m.rules.Movement)
}

// Path returns the cheapest path for u to dest, both ends included, or nil
func (m *Match) Path(u *core.Unit, dest core.Coordinate) []*core.Tile {
	return pathfind.FindPath(m.grid, u.Position(), dest, los.WithStartAndEnd, m.MovementRules(u))
}

// CanMoveTo reports whether dest is within u's movement range this turn
func (m *Match) CanMoveTo(u *core.Unit, dest core.Coordinate) bool {
	return pathfind.CanReach(m.grid, u.Position(), dest, u.Stats.MovementRange, m.MovementRules(u))
}

// Reachable lists every destination u could move to
func (m *Match) Reachable(u *core.Unit) []*core.Tile {
	return pathfind.Reachable(m.grid, u.Position(), u.Stats.MovementRange, m.MovementRules(u))
}

// Envelope returns u's destinations and attackable enemies
func (m *Match) Envelope(u *core.Unit) rules.MovementEnvelope {
	return m.legal.Envelope(u, visibility.TeamRoster{Teams: m.teams}.Enemies(u))
}

// ChanceToHit returns attacker's hit percentage against target with its weapon
func (m *Match) ChanceToHit(attacker, target *core.Unit) int {
	return m.combat.ChanceToHit(attacker, target, attacker.Weapon)
}

// IsTileAttackable reports whether u's weapon reaches c
func (m *Match) IsTileAttackable(u *core.Unit, c core.Coordinate) bool {
	return m.combat.IsTileAttackable(u, u.Weapon, c)
}

// CanAttack validates an attack without changing anything
func (m *Match) CanAttack(attacker, target *core.Unit) error {
	return m.combat.CanAttack(attacker, target)
}

// HasSightOn reports whether u has a line of sight on c
func (m *Match) HasSightOn(u *core.Unit, c core.Coordinate) bool {
	return m.sight.HasSightOn(u, c)
}

func (m *Match) VisibleTiles(u *core.Unit) map[core.Coordinate]*core.Tile {
	return m.vision.VisibleTiles(u)
}

func (m *Match) UnitsVisibleInFog(observer *core.Unit) []*core.Unit {
	return m.vision.UnitsVisibleInFog(observer)
}

func (m *Match) EnemiesOnSight(u *core.Unit) []*core.Unit {
	return m.vision.EnemiesOnSight(u)
}

func (m *Match) ClosestEnemyOnSight(u *core.Unit) *core.Unit {
	return m.vision.ClosestEnemyOnSight(u)
}

// TeamFog returns the fog state of every tile for a team
func (m *Match) TeamFog(team int) map[core.Coordinate]visibility.FogState {
	return m.vision.TeamFog(team)
}
