package mapgen

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
)

// ErrNoRoom is returned when a generated board cannot fit every unit
var ErrNoRoom = errors.New("not enough free tiles to deploy units")

// MapConfig holds configuration for map generation
type MapConfig struct {
	Width               int
	Height              int
	TeamCount           int
	UnitsPerTeam        int
	ObstacleRatio       int // 1 obstacle per N tiles, 0 for none
	HoleRatio           int // 1 hole per N tiles, 0 for none
	CoverRatio          int // 1 tile cover per N tiles, 0 for none
	EdgeCoverRatio      int // 1 edge cover per N tiles, 0 for none
	LowCoverProtection  int
	HighCoverProtection int
	MinTeamSpacing      int
	Stats               core.Stats
	Weapon              core.Weapon
}

// DefaultMapConfig returns a sensible default configuration
func DefaultMapConfig(w, h, teams int) MapConfig {
	return MapConfig{
		Width:               w,
		Height:              h,
		TeamCount:           teams,
		UnitsPerTeam:        2,
		ObstacleRatio:       12,
		HoleRatio:           40,
		CoverRatio:          15,
		EdgeCoverRatio:      20,
		LowCoverProtection:  25,
		HighCoverProtection: 50,
		MinTeamSpacing:      max(w, h) / 2,
		Stats: core.Stats{
			SightRange:      8,
			MovementRange:   4,
			MaxHP:           10,
			MaxActionPoints: 2,
		},
		Weapon: core.Weapon{
			Name:      "rifle",
			Kind:      core.Ranged,
			Precision: 85,
			Range:     7,
			Damage:    4,
			Ammo:      3,
			MaxAmmo:   3,
			APCost:    1,
		},
	}
}

// Generator handles map generation with deterministic RNG
type Generator struct {
	config MapConfig
	rng    *rand.Rand
}

// NewGenerator creates a new map generator
func NewGenerator(config MapConfig, rng *rand.Rand) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// GenerateMap creates a grid with obstacles, holes and covers scattered on it
func (g *Generator) GenerateMap() (*core.Grid, error) {
	grid, err := core.NewRectGrid(g.config.Width, g.config.Height, core.Basic)
	if err != nil {
		return nil, err
	}

	g.scatter(grid, core.Obstacle, g.config.ObstacleRatio)
	g.scatter(grid, core.Hole, g.config.HoleRatio)
	g.placeTileCovers(grid)
	g.placeEdgeCovers(grid)
	return grid, nil
}

// Generate creates a map and deploys teams on it
func (g *Generator) Generate() (*core.Grid, []*core.Team, error) {
	grid, err := g.GenerateMap()
	if err != nil {
		return nil, nil, err
	}
	teams, err := g.PlaceTeams(grid)
	if err != nil {
		return nil, nil, err
	}
	return grid, teams, nil
}

func (g *Generator) want(ratio int) int {
	if ratio <= 0 {
		return 0
	}
	return (g.config.Width * g.config.Height) / ratio
}

func (g *Generator) randomCoord() core.Coordinate {
	return core.Coordinate{X: g.rng.Intn(g.config.Width), Y: g.rng.Intn(g.config.Height)}
}

func (g *Generator) scatter(grid *core.Grid, terrain core.TerrainType, ratio int) {
	want := g.want(ratio)
	placed := 0

	// Use a maximum attempt counter to avoid infinite loops
	maxAttempts := want * 10
	for attempts := 0; placed < want && attempts < maxAttempts; attempts++ {
		t := grid.Tile(g.randomCoord())
		if t.Terrain == core.Basic && grid.CoverOn(t.Coord) == nil {
			t.Terrain = terrain
			placed++
		}
	}
}

func (g *Generator) placeTileCovers(grid *core.Grid) {
	want := g.want(g.config.CoverRatio)
	placed := 0

	maxAttempts := want * 10
	for attempts := 0; placed < want && attempts < maxAttempts; attempts++ {
		t := grid.Tile(g.randomCoord())
		if t.Terrain != core.Basic || grid.CoverOn(t.Coord) != nil {
			continue
		}
		terrain, protection := g.coverKind()
		t.Terrain = terrain
		if _, err := grid.AddTileCover(t.Coord, terrain, protection); err == nil {
			placed++
		}
	}
}

func (g *Generator) placeEdgeCovers(grid *core.Grid) {
	want := g.want(g.config.EdgeCoverRatio)
	placed := 0

	maxAttempts := want * 10
	for attempts := 0; placed < want && attempts < maxAttempts; attempts++ {
		a := g.randomCoord()
		b := a.Neighbors()[g.rng.Intn(4)]
		if grid.Tile(b) == nil || grid.CoverBetween(a, b) != nil {
			continue
		}
		terrain, protection := g.coverKind()
		if _, err := grid.AddEdgeCover(a, b, terrain, protection); err == nil {
			placed++
		}
	}
}

func (g *Generator) coverKind() (core.TerrainType, int) {
	if g.rng.Intn(2) == 0 {
		return core.LowCover, g.config.LowCoverProtection
	}
	return core.HighCover, g.config.HighCoverProtection
}

// PlaceTeams creates TeamCount teams and deploys their units in clusters
// around anchors spread at least MinTeamSpacing apart
func (g *Generator) PlaceTeams(grid *core.Grid) ([]*core.Team, error) {
	teams := make([]*core.Team, g.config.TeamCount)
	anchors := make([]core.Coordinate, 0, g.config.TeamCount)

	for id := 0; id < g.config.TeamCount; id++ {
		anchor, err := g.findAnchor(grid, anchors)
		if err != nil {
			return nil, err
		}
		anchors = append(anchors, anchor)

		team := &core.Team{ID: id, Name: fmt.Sprintf("team-%d", id+1), AI: true}
		spots := freeTilesAround(grid, anchor, g.config.UnitsPerTeam)
		if len(spots) < g.config.UnitsPerTeam {
			return nil, fmt.Errorf("team %s: %w", team.Name, ErrNoRoom)
		}
		for i, c := range spots {
			u := core.NewUnit(fmt.Sprintf("%s-%d", team.Name, i+1), id, g.config.Stats, g.config.Weapon)
			if err := grid.Place(u, c); err != nil {
				return nil, err
			}
			team.Units = append(team.Units, u)
		}
		teams[id] = team
	}
	return teams, nil
}

func (g *Generator) findAnchor(grid *core.Grid, existing []core.Coordinate) (core.Coordinate, error) {
	maxAttempts := g.config.Width * g.config.Height // Fallback to prevent infinite loops

	for attempts := 0; attempts < maxAttempts; attempts++ {
		c := g.randomCoord()
		if !isFree(grid, c) {
			continue
		}

		validLocation := true
		for _, other := range existing {
			if c.ChebyshevTo(other) < g.config.MinTeamSpacing {
				validLocation = false
				break
			}
		}
		if validLocation {
			return c, nil
		}
	}

	// Fallback: first free tile in row-major order
	for _, t := range grid.Tiles() {
		if isFree(grid, t.Coord) {
			return t.Coord, nil
		}
	}
	return core.Coordinate{}, ErrNoRoom
}

func isFree(grid *core.Grid, c core.Coordinate) bool {
	t := grid.Tile(c)
	return t != nil && t.Terrain == core.Basic && !t.IsOccupied() && grid.CoverOn(c) == nil
}

// freeTilesAround collects up to n free tiles in breadth-first order from anchor
func freeTilesAround(grid *core.Grid, anchor core.Coordinate, n int) []core.Coordinate {
	var out []core.Coordinate
	seen := map[core.Coordinate]bool{anchor: true}
	queue := []core.Coordinate{anchor}
	for len(queue) > 0 && len(out) < n {
		c := queue[0]
		queue = queue[1:]
		if isFree(grid, c) {
			out = append(out, c)
		}
		for _, next := range c.AllNeighbors() {
			if !seen[next] && grid.Tile(next) != nil {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return out
}
