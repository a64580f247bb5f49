package core

// Tile is one authored cell of the grid.
// Occupant is a non-owning reference and is only changed by the Grid.
type Tile struct {
	Coord    Coordinate
	Terrain  TerrainType
	occupant *Unit
}

// NewTile creates an unoccupied tile
func NewTile(c Coordinate, terrain TerrainType) *Tile {
	return &Tile{Coord: c, Terrain: terrain}
}

// Occupant returns the unit standing on the tile, or nil
func (t *Tile) Occupant() *Unit {
	return t.occupant
}

// IsOccupied reports whether a unit, alive or not, stands on the tile
func (t *Tile) IsOccupied() bool {
	return t.occupant != nil
}
