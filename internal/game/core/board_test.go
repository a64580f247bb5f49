package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBoard(t *testing.T) {
	tiles, err := ParseBoard([]string{
		".#o",
		"l x",
		"H..",
	})
	require.NoError(t, err)
	assert.Len(t, tiles, 7)

	byCoord := make(map[Coordinate]TerrainType)
	for _, tile := range tiles {
		byCoord[tile.Coord] = tile.Terrain
	}
	assert.Equal(t, Basic, byCoord[Coordinate{0, 0}])
	assert.Equal(t, Obstacle, byCoord[Coordinate{1, 0}])
	assert.Equal(t, Hole, byCoord[Coordinate{2, 0}])
	assert.Equal(t, LowCover, byCoord[Coordinate{0, 1}])
	assert.Equal(t, HighCover, byCoord[Coordinate{0, 2}])
	_, voidPresent := byCoord[Coordinate{1, 1}]
	assert.False(t, voidPresent)
}

func TestParseBoard_Errors(t *testing.T) {
	_, err := ParseBoard([]string{"..?"})
	assert.True(t, errors.Is(err, ErrUnknownSymbol))

	_, err = ParseBoard([]string{"  ", "xx"})
	assert.True(t, errors.Is(err, ErrNoTiles))

	_, err = ParseBoard(nil)
	assert.True(t, errors.Is(err, ErrNoTiles))
}

func TestBuildGrid_CoverTiles(t *testing.T) {
	g, err := BuildGrid([]string{".l.H"}, 25, 50)
	require.NoError(t, err)

	low := g.CoverOn(Coordinate{1, 0})
	require.NotNil(t, low)
	assert.Equal(t, LowCover, low.Terrain)
	assert.Equal(t, 25, low.Protection)

	high := g.CoverOn(Coordinate{3, 0})
	require.NotNil(t, high)
	assert.Equal(t, 50, high.Protection)

	assert.Nil(t, g.CoverOn(Coordinate{0, 0}))
}

func TestGrid_Render(t *testing.T) {
	rows := []string{
		".#.",
		"oxl",
	}
	g, err := BuildGrid(rows, 25, 50)
	require.NoError(t, err)
	assert.Equal(t, rows, g.Render())
}
