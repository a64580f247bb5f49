package core

import "fmt"

// Cover decorates a tile or the edge between two orthogonal neighbors
type Cover struct {
	Key        CoverKey
	Terrain    TerrainType
	Protection int // percent removed from incoming accuracy
}

// CoverKey addresses a cover in doubled coordinates. A tile (x,y) maps to
// (2x,2y); the edge between a and b maps to a+b, their midpoint times two.
type CoverKey struct {
	X, Y int
}

// TileKey returns the cover key of a tile
func TileKey(c Coordinate) CoverKey {
	return CoverKey{X: 2 * c.X, Y: 2 * c.Y}
}

// EdgeKey returns the cover key of the edge between two orthogonal neighbors
func EdgeKey(a, b Coordinate) (CoverKey, error) {
	if !a.IsAdjacentTo(b) {
		return CoverKey{}, fmt.Errorf("edge %v-%v: %w", a, b, ErrNotNeighbors)
	}
	return CoverKey{X: a.X + b.X, Y: a.Y + b.Y}, nil
}

// IsEdge reports whether the key sits between two tiles
func (k CoverKey) IsEdge() bool {
	return k.X%2 != 0 || k.Y%2 != 0
}

func (k CoverKey) String() string {
	return fmt.Sprintf("(%g,%g)", float64(k.X)/2, float64(k.Y)/2)
}
