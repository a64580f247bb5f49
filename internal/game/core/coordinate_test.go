package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCoordinate(t *testing.T) {
	c := NewCoordinate(3, 5)
	assert.Equal(t, 3, c.X)
	assert.Equal(t, 5, c.Y)
}

func TestCoordinate_DistanceTo(t *testing.T) {
	tests := []struct {
		name     string
		from     Coordinate
		to       Coordinate
		expected int
	}{
		{"Same", Coordinate{5, 5}, Coordinate{5, 5}, 0},
		{"Adjacent_Horizontal", Coordinate{5, 5}, Coordinate{6, 5}, 1},
		{"Adjacent_Vertical", Coordinate{5, 5}, Coordinate{5, 6}, 1},
		{"Diagonal", Coordinate{0, 0}, Coordinate{1, 1}, 2},
		{"Far", Coordinate{0, 0}, Coordinate{5, 7}, 12},
		{"Negative", Coordinate{-2, -3}, Coordinate{2, 3}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.from.DistanceTo(tt.to)
			assert.Equal(t, tt.expected, result)
			// Distance should be symmetric
			reverse := tt.to.DistanceTo(tt.from)
			assert.Equal(t, tt.expected, reverse, "Distance not symmetric")
		})
	}
}

func TestCoordinate_ChebyshevTo(t *testing.T) {
	tests := []struct {
		name     string
		from, to Coordinate
		expected int
	}{
		{"Same", Coordinate{1, 1}, Coordinate{1, 1}, 0},
		{"Diagonal", Coordinate{0, 0}, Coordinate{3, 3}, 3},
		{"Skewed", Coordinate{0, 0}, Coordinate{2, 5}, 5},
		{"Negative", Coordinate{-4, 0}, Coordinate{0, 1}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.from.ChebyshevTo(tt.to))
			assert.Equal(t, tt.expected, tt.to.ChebyshevTo(tt.from))
		})
	}
}

func TestCoordinate_Adjacency(t *testing.T) {
	center := Coordinate{5, 5}
	tests := []struct {
		name     string
		other    Coordinate
		adjacent bool
		diagonal bool
	}{
		{"North", Coordinate{5, 4}, true, false},
		{"East", Coordinate{6, 5}, true, false},
		{"South", Coordinate{5, 6}, true, false},
		{"West", Coordinate{4, 5}, true, false},
		{"NorthEast", Coordinate{6, 4}, false, true},
		{"SouthEast", Coordinate{6, 6}, false, true},
		{"SouthWest", Coordinate{4, 6}, false, true},
		{"NorthWest", Coordinate{4, 4}, false, true},
		{"Same", Coordinate{5, 5}, false, false},
		{"TwoAway", Coordinate{7, 5}, false, false},
		{"KnightMove", Coordinate{7, 6}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.adjacent, center.IsAdjacentTo(tt.other))
			assert.Equal(t, tt.adjacent, tt.other.IsAdjacentTo(center), "Adjacency not symmetric")
			assert.Equal(t, tt.diagonal, center.IsDiagonalTo(tt.other))
			assert.Equal(t, tt.adjacent || tt.diagonal, center.IsNeighborOf(tt.other))
		})
	}
}

func TestCoordinate_Neighbors(t *testing.T) {
	c := Coordinate{5, 5}
	neighbors := c.Neighbors()

	assert.Len(t, neighbors, 4)
	assert.Contains(t, neighbors, Coordinate{5, 4}) // North
	assert.Contains(t, neighbors, Coordinate{6, 5}) // East
	assert.Contains(t, neighbors, Coordinate{5, 6}) // South
	assert.Contains(t, neighbors, Coordinate{4, 5}) // West
}

func TestCoordinate_AllNeighbors(t *testing.T) {
	c := Coordinate{0, 0}
	all := c.AllNeighbors()

	assert.Len(t, all, 8)
	// Orthogonal neighbors come first
	assert.Equal(t, c.Neighbors(), all[:4])
	for _, n := range all[4:] {
		assert.True(t, c.IsDiagonalTo(n), "%v should be diagonal", n)
	}
}

func TestCoordinate_AddSubScale(t *testing.T) {
	c1 := Coordinate{3, 4}
	c2 := Coordinate{2, -1}

	assert.Equal(t, Coordinate{5, 3}, c1.Add(c2))
	assert.Equal(t, Coordinate{1, 5}, c1.Sub(c2))
	assert.Equal(t, Coordinate{6, 8}, c1.Scale(2))

	// Originals should be unchanged
	assert.Equal(t, Coordinate{3, 4}, c1)
	assert.Equal(t, Coordinate{2, -1}, c2)
}

func TestCoordinate_String(t *testing.T) {
	assert.Equal(t, "(0,0)", Coordinate{0, 0}.String())
	assert.Equal(t, "(-1,-2)", Coordinate{-1, -2}.String())
}

func TestCoordinate_MoveAndDirectionTo(t *testing.T) {
	start := Coordinate{5, 5}
	for dir, vec := range DirectionVectors {
		t.Run(dir.String(), func(t *testing.T) {
			moved := start.Move(dir)
			assert.Equal(t, start.Add(vec), moved)
			assert.Equal(t, dir, start.DirectionTo(moved))
			assert.Equal(t, vec.X != 0 && vec.Y != 0, dir.IsDiagonal())
		})
	}

	assert.Equal(t, Direction(-1), start.DirectionTo(start))
	assert.Equal(t, Direction(-1), start.DirectionTo(Coordinate{9, 9}))
}

func TestDirectionVectors(t *testing.T) {
	assert.Len(t, DirectionVectors, 8)
	for dir, vec := range DirectionVectors {
		assert.Equal(t, 1, vec.ChebyshevTo(Coordinate{}), "Direction %v vector has wrong length", dir)
	}
}

func TestCoordinate_ComparableAsMapKey(t *testing.T) {
	m := make(map[Coordinate]string)
	m[Coordinate{5, 5}] = "first"
	m[Coordinate{6, 5}] = "third"

	assert.Equal(t, "first", m[Coordinate{5, 5}])
	assert.Len(t, m, 2)
}

func BenchmarkCoordinate_AllNeighbors(b *testing.B) {
	c := Coordinate{50, 50}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.AllNeighbors()
	}
}
