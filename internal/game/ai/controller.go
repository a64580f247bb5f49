// Package ai plays units by walking toward the closest visible enemy and
// shooting it when possible.
package ai

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GridTactics/internal/game"
	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/los"
	"github.com/mitchelldurbincs/GridTactics/internal/game/pathfind"
)

// Controller drives the current unit of a match
type Controller struct {
	logger zerolog.Logger
}

func NewController(logger zerolog.Logger) *Controller {
	return &Controller{logger: logger.With().Str("component", "AI").Logger()}
}

// PlayTurn acts with the current unit until its turn ends or the match is
// resolved. Every iteration spends action points or ends the turn.
func (c *Controller) PlayTurn(ctx context.Context, m *game.Match) error {
	u := m.CurrentUnit()
	if u == nil {
		return nil
	}
	for m.CurrentUnit() == u && !m.IsResolved() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := c.act(m, u); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) act(m *game.Match, u *core.Unit) error {
	enemy := m.ClosestEnemyOnSight(u)
	if enemy == nil {
		c.logger.Debug().Str("unit", u.Name).Msg("No enemy in sight, ending turn")
		return m.RequestEndUnitTurn(u.ID)
	}

	if m.CanAttack(u, enemy) == nil {
		a, err := m.RequestAttack(u.ID, enemy.ID)
		if err != nil {
			return err
		}
		res, err := a.Resolve()
		if err != nil {
			return err
		}
		c.logger.Debug().
			Str("unit", u.Name).
			Str("target", enemy.Name).
			Bool("hit", res.Hit).
			Msg("Attacked")
		return nil
	}

	if !u.Weapon.HasAmmo() && u.ActionPoints >= m.Rules().ReloadAPCost {
		return m.RequestReload(u.ID)
	}

	if dest, ok := c.approach(m, u, enemy); ok && u.ActionPoints >= 1 {
		mv, err := m.RequestMove(u.ID, dest)
		if err != nil {
			return err
		}
		c.logger.Debug().
			Str("unit", u.Name).
			Str("toward", enemy.Name).
			Str("dest", dest.String()).
			Msg("Moving")
		return mv.Finish()
	}
	return m.RequestEndUnitTurn(u.ID)
}

// approach returns the furthest tile u can reach this turn along the path
// to enemy, stopping short of the enemy's own tile
func (c *Controller) approach(m *game.Match, u, enemy *core.Unit) (core.Coordinate, bool) {
	rules := m.MovementRules(u).Unblock(enemy.Position())
	path := pathfind.FindPath(m.Grid(), u.Position(), enemy.Position(), los.WithStartAndEnd, rules)
	if len(path) > 0 {
		path = path[:len(path)-1]
	}
	if len(path) < 2 {
		return core.Coordinate{}, false
	}
	if len(path) > u.Stats.MovementRange+1 {
		path = path[:u.Stats.MovementRange+1]
	}
	return path[len(path)-1].Coord, true
}
