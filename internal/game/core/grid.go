package core

import (
	"fmt"
	"sort"
)

// Grid is a sparse set of tiles and the covers decorating them.
// It owns tile occupancy and keeps it in lockstep with unit positions.
type Grid struct {
	tiles  map[Coordinate]*Tile
	covers map[CoverKey]*Cover
	min    Coordinate
	max    Coordinate
}

// NewGrid builds a grid from authored tiles and computes its bounding box
func NewGrid(tiles []*Tile) (*Grid, error) {
	if len(tiles) == 0 {
		return nil, ErrNoTiles
	}

	g := &Grid{
		tiles:  make(map[Coordinate]*Tile, len(tiles)),
		covers: make(map[CoverKey]*Cover),
		min:    tiles[0].Coord,
		max:    tiles[0].Coord,
	}
	for _, t := range tiles {
		if _, dup := g.tiles[t.Coord]; dup {
			return nil, fmt.Errorf("duplicate tile at %v", t.Coord)
		}
		g.tiles[t.Coord] = t
		g.min.X = min(g.min.X, t.Coord.X)
		g.min.Y = min(g.min.Y, t.Coord.Y)
		g.max.X = max(g.max.X, t.Coord.X)
		g.max.Y = max(g.max.Y, t.Coord.Y)
	}
	return g, nil
}

// NewRectGrid builds a dense width x height grid of a single terrain
func NewRectGrid(width, height int, terrain TerrainType) (*Grid, error) {
	tiles := make([]*Tile, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			tiles = append(tiles, NewTile(Coordinate{X: x, Y: y}, terrain))
		}
	}
	return NewGrid(tiles)
}

// Bounds returns the lowest and highest authored coordinates
func (g *Grid) Bounds() (Coordinate, Coordinate) {
	return g.min, g.max
}

// InBounds checks whether c lies inside the bounding box
func (g *Grid) InBounds(c Coordinate) bool {
	return c.X >= g.min.X && c.X <= g.max.X && c.Y >= g.min.Y && c.Y <= g.max.Y
}

// Tile returns the tile at c, or nil for void and out-of-bounds cells
func (g *Grid) Tile(c Coordinate) *Tile {
	if !g.InBounds(c) {
		return nil
	}
	return g.tiles[c]
}

// Len returns the number of authored tiles
func (g *Grid) Len() int {
	return len(g.tiles)
}

// Tiles returns every tile in row-major order
func (g *Grid) Tiles() []*Tile {
	out := make([]*Tile, 0, len(g.tiles))
	for _, t := range g.tiles {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Coord.Y != out[j].Coord.Y {
			return out[i].Coord.Y < out[j].Coord.Y
		}
		return out[i].Coord.X < out[j].Coord.X
	})
	return out
}

// AddTileCover decorates the tile at c
func (g *Grid) AddTileCover(c Coordinate, terrain TerrainType, protection int) (*Cover, error) {
	if g.Tile(c) == nil {
		return nil, fmt.Errorf("cover on %v: %w", c, ErrNoTile)
	}
	return g.addCover(TileKey(c), terrain, protection), nil
}

// AddEdgeCover decorates the edge between two orthogonal neighbors
func (g *Grid) AddEdgeCover(a, b Coordinate, terrain TerrainType, protection int) (*Cover, error) {
	key, err := EdgeKey(a, b)
	if err != nil {
		return nil, err
	}
	if g.Tile(a) == nil && g.Tile(b) == nil {
		return nil, fmt.Errorf("cover between %v and %v: %w", a, b, ErrNoTile)
	}
	return g.addCover(key, terrain, protection), nil
}

func (g *Grid) addCover(key CoverKey, terrain TerrainType, protection int) *Cover {
	c := &Cover{Key: key, Terrain: terrain, Protection: protection}
	g.covers[key] = c
	return c
}

// CoverOn returns the cover decorating the tile at c, or nil
func (g *Grid) CoverOn(c Coordinate) *Cover {
	return g.covers[TileKey(c)]
}

// CoverBetween returns the cover on the edge between a and b, or nil
func (g *Grid) CoverBetween(a, b Coordinate) *Cover {
	if !a.IsAdjacentTo(b) {
		return nil
	}
	return g.covers[CoverKey{X: a.X + b.X, Y: a.Y + b.Y}]
}

// Covers returns all covers ordered by key
func (g *Grid) Covers() []*Cover {
	out := make([]*Cover, 0, len(g.covers))
	for _, c := range g.covers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Key.Y != out[j].Key.Y {
			return out[i].Key.Y < out[j].Key.Y
		}
		return out[i].Key.X < out[j].Key.X
	})
	return out
}

// Place puts u on the tile at c, lifting it from its previous tile if any
func (g *Grid) Place(u *Unit, c Coordinate) error {
	t := g.Tile(c)
	if t == nil {
		return fmt.Errorf("place %s at %v: %w", u.Name, c, ErrNoTile)
	}
	if t.occupant != nil && t.occupant != u {
		return fmt.Errorf("place %s at %v: %w", u.Name, c, ErrTileOccupied)
	}
	g.lift(u)
	t.occupant = u
	u.pos = c
	u.placed = true
	return nil
}

// Move relocates a placed unit; tile occupancy and unit position change together
func (g *Grid) Move(u *Unit, to Coordinate) error {
	if !u.placed {
		return fmt.Errorf("move %s: %w", u.Name, ErrUnknownUnit)
	}
	return g.Place(u, to)
}

// Remove takes u off the grid
func (g *Grid) Remove(u *Unit) {
	g.lift(u)
	u.placed = false
}

func (g *Grid) lift(u *Unit) {
	if !u.placed {
		return
	}
	if old := g.tiles[u.pos]; old != nil && old.occupant == u {
		old.occupant = nil
	}
}
