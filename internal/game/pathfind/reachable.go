package pathfind

import (
	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/los"
)

// Reachable returns every tile other than start whose FindPath result takes
// at most maxSteps moves, in row-major order
func Reachable(g *core.Grid, start core.Coordinate, maxSteps int, rules MovementRules) []*core.Tile {
	if g.Tile(start) == nil || maxSteps <= 0 {
		return nil
	}

	candidates := withinSteps(g, start, maxSteps, rules)
	var out []*core.Tile
	for _, t := range g.Tiles() {
		if _, ok := candidates[t.Coord]; !ok {
			continue
		}
		path := FindPath(g, start, t.Coord, los.WithStartAndEnd, rules)
		if len(path) > 0 && Steps(path) <= maxSteps {
			out = append(out, t)
		}
	}
	return out
}

// CanReach reports whether end is a legal destination within maxSteps moves
func CanReach(g *core.Grid, start, end core.Coordinate, maxSteps int, rules MovementRules) bool {
	if start == end {
		return false
	}
	path := FindPath(g, start, end, los.WithStartAndEnd, rules)
	return len(path) > 0 && Steps(path) <= maxSteps
}

// withinSteps is a breadth-first bound: no path can use fewer moves than
// the step distance it finds
func withinSteps(g *core.Grid, start core.Coordinate, maxSteps int, rules MovementRules) map[core.Coordinate]struct{} {
	seen := map[core.Coordinate]int{start: 0}
	frontier := []core.Coordinate{start}
	for len(frontier) > 0 {
		c := frontier[0]
		frontier = frontier[1:]
		d := seen[c]
		if d == maxSteps {
			continue
		}
		for _, next := range c.AllNeighbors() {
			if _, ok := seen[next]; ok || !IsStepWalkable(g, c, next, rules) {
				continue
			}
			seen[next] = d + 1
			frontier = append(frontier, next)
		}
	}

	out := make(map[core.Coordinate]struct{}, len(seen))
	for c := range seen {
		if c != start {
			out[c] = struct{}{}
		}
	}
	return out
}
