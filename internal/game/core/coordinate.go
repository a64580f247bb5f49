package core

import (
	"fmt"

	"github.com/mitchelldurbincs/GridTactics/internal/common"
)

// Coordinate represents a position on the grid
type Coordinate struct {
	X, Y int
}

// NewCoordinate creates a new coordinate with the given x and y values
func NewCoordinate(x, y int) Coordinate {
	return Coordinate{X: x, Y: y}
}

// Add returns a new coordinate that is the sum of this coordinate and another
func (c Coordinate) Add(other Coordinate) Coordinate {
	return Coordinate{
		X: c.X + other.X,
		Y: c.Y + other.Y,
	}
}

// Sub returns a new coordinate that is the difference between this coordinate and another
func (c Coordinate) Sub(other Coordinate) Coordinate {
	return Coordinate{
		X: c.X - other.X,
		Y: c.Y - other.Y,
	}
}

// Scale multiplies both components by k
func (c Coordinate) Scale(k int) Coordinate {
	return Coordinate{X: c.X * k, Y: c.Y * k}
}

// Equal checks if two coordinates are equal
func (c Coordinate) Equal(other Coordinate) bool {
	return c.X == other.X && c.Y == other.Y
}

// DistanceTo calculates the Manhattan distance to another coordinate
func (c Coordinate) DistanceTo(other Coordinate) int {
	return common.Abs(c.X-other.X) + common.Abs(c.Y-other.Y)
}

// ChebyshevTo returns the king-move distance to another coordinate
func (c Coordinate) ChebyshevTo(other Coordinate) int {
	dx := common.Abs(c.X - other.X)
	dy := common.Abs(c.Y - other.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// IsAdjacentTo checks if this coordinate is orthogonally adjacent to another
func (c Coordinate) IsAdjacentTo(other Coordinate) bool {
	dx := c.X - other.X
	dy := c.Y - other.Y

	// Must be exactly one step away in either X or Y direction, but not both
	return (dx == 0 && (dy == 1 || dy == -1)) || (dy == 0 && (dx == 1 || dx == -1))
}

// IsDiagonalTo checks if this coordinate touches another only by a corner
func (c Coordinate) IsDiagonalTo(other Coordinate) bool {
	return common.Abs(c.X-other.X) == 1 && common.Abs(c.Y-other.Y) == 1
}

// IsNeighborOf reports whether other is one of the eight surrounding cells
func (c Coordinate) IsNeighborOf(other Coordinate) bool {
	return c.IsAdjacentTo(other) || c.IsDiagonalTo(other)
}

// Neighbors returns the four orthogonal neighbors of this coordinate
func (c Coordinate) Neighbors() []Coordinate {
	return []Coordinate{
		{X: c.X, Y: c.Y - 1}, // North
		{X: c.X + 1, Y: c.Y}, // East
		{X: c.X, Y: c.Y + 1}, // South
		{X: c.X - 1, Y: c.Y}, // West
	}
}

// AllNeighbors returns the eight surrounding cells, orthogonal ones first
func (c Coordinate) AllNeighbors() []Coordinate {
	out := make([]Coordinate, 0, 8)
	for _, d := range allDirections {
		out = append(out, c.Move(d))
	}
	return out
}

// String returns a string representation of the coordinate
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Direction represents one of the eight compass directions
type Direction int

const (
	North Direction = iota
	East
	South
	West
	NorthEast
	SouthEast
	SouthWest
	NorthWest
)

var allDirections = []Direction{North, East, South, West, NorthEast, SouthEast, SouthWest, NorthWest}

// DirectionVectors provides coordinate offsets for each direction
var DirectionVectors = map[Direction]Coordinate{
	North:     {X: 0, Y: -1},
	East:      {X: 1, Y: 0},
	South:     {X: 0, Y: 1},
	West:      {X: -1, Y: 0},
	NorthEast: {X: 1, Y: -1},
	SouthEast: {X: 1, Y: 1},
	SouthWest: {X: -1, Y: 1},
	NorthWest: {X: -1, Y: -1},
}

// IsDiagonal reports whether the direction moves along both axes
func (d Direction) IsDiagonal() bool {
	return d >= NorthEast && d <= NorthWest
}

func (d Direction) String() string {
	switch d {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	case NorthEast:
		return "NE"
	case SouthEast:
		return "SE"
	case SouthWest:
		return "SW"
	case NorthWest:
		return "NW"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Move returns a new coordinate moved one step in the given direction
func (c Coordinate) Move(direction Direction) Coordinate {
	if offset, ok := DirectionVectors[direction]; ok {
		return c.Add(offset)
	}
	return c
}

// DirectionTo returns the direction from this coordinate to a neighboring coordinate.
// Returns -1 if the coordinates are not neighbors.
func (c Coordinate) DirectionTo(other Coordinate) Direction {
	if !c.IsNeighborOf(other) {
		return -1
	}
	delta := other.Sub(c)
	for _, d := range allDirections {
		if DirectionVectors[d] == delta {
			return d
		}
	}
	return -1
}
