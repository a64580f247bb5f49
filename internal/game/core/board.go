package core

import (
	"errors"
	"fmt"
)

// Board symbols. Space and 'x' are void cells with no tile.
const (
	SymbolBasic     = '.'
	SymbolHole      = 'o'
	SymbolObstacle  = '#'
	SymbolLowCover  = 'l'
	SymbolHighCover = 'H'
	SymbolVoid      = 'x'
)

var ErrUnknownSymbol = errors.New("unknown board symbol")

var symbolTerrain = map[rune]TerrainType{
	SymbolBasic:     Basic,
	SymbolHole:      Hole,
	SymbolObstacle:  Obstacle,
	SymbolLowCover:  LowCover,
	SymbolHighCover: HighCover,
}

// ParseBoard turns ASCII rows into tiles. Row index is Y, column index is X.
func ParseBoard(rows []string) ([]*Tile, error) {
	var tiles []*Tile
	for y, row := range rows {
		for x, r := range []rune(row) {
			if r == ' ' || r == SymbolVoid {
				continue
			}
			terrain, ok := symbolTerrain[r]
			if !ok {
				return nil, fmt.Errorf("%w %q at (%d,%d)", ErrUnknownSymbol, r, x, y)
			}
			tiles = append(tiles, NewTile(Coordinate{X: x, Y: y}, terrain))
		}
	}
	if len(tiles) == 0 {
		return nil, ErrNoTiles
	}
	return tiles, nil
}

// BuildGrid parses rows into a grid. Low and high cover tiles also get a
// tile cover carrying the given protection.
func BuildGrid(rows []string, lowProtection, highProtection int) (*Grid, error) {
	tiles, err := ParseBoard(rows)
	if err != nil {
		return nil, err
	}
	g, err := NewGrid(tiles)
	if err != nil {
		return nil, err
	}
	for _, t := range tiles {
		protection := lowProtection
		switch t.Terrain {
		case LowCover:
		case HighCover:
			protection = highProtection
		default:
			continue
		}
		if _, err := g.AddTileCover(t.Coord, t.Terrain, protection); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Render draws the grid back as ASCII rows covering the bounding box
func (g *Grid) Render() []string {
	rows := make([]string, 0, g.max.Y-g.min.Y+1)
	for y := g.min.Y; y <= g.max.Y; y++ {
		row := make([]rune, 0, g.max.X-g.min.X+1)
		for x := g.min.X; x <= g.max.X; x++ {
			t := g.Tile(Coordinate{X: x, Y: y})
			row = append(row, symbolFor(t))
		}
		rows = append(rows, string(row))
	}
	return rows
}

func symbolFor(t *Tile) rune {
	if t == nil {
		return SymbolVoid
	}
	for r, terrain := range symbolTerrain {
		if terrain == t.Terrain {
			return r
		}
	}
	return '?'
}
