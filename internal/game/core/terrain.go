package core

import (
	"fmt"
	"strings"
)

// TerrainType classifies a tile or a cover piece
type TerrainType uint8

const (
	Basic TerrainType = iota
	Hole
	Obstacle
	LowCover
	HighCover
)

var terrainNames = map[TerrainType]string{
	Basic:     "basic",
	Hole:      "hole",
	Obstacle:  "obstacle",
	LowCover:  "low_cover",
	HighCover: "high_cover",
}

func (t TerrainType) String() string {
	if name, ok := terrainNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TerrainType(%d)", uint8(t))
}

// ParseTerrain converts a terrain name into its TerrainType
func ParseTerrain(name string) (TerrainType, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for t, n := range terrainNames {
		if n == key {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown terrain %q", name)
}

// TerrainSet is a small bit set of terrain types
type TerrainSet uint8

// NewTerrainSet builds a set containing the given terrain types
func NewTerrainSet(types ...TerrainType) TerrainSet {
	var s TerrainSet
	for _, t := range types {
		s = s.With(t)
	}
	return s
}

// ParseTerrainSet builds a set from terrain names
func ParseTerrainSet(names []string) (TerrainSet, error) {
	var s TerrainSet
	for _, n := range names {
		t, err := ParseTerrain(n)
		if err != nil {
			return 0, err
		}
		s = s.With(t)
	}
	return s, nil
}

func (s TerrainSet) Has(t TerrainType) bool {
	return s&(1<<t) != 0
}

func (s TerrainSet) With(t TerrainType) TerrainSet {
	return s | 1<<t
}

func (s TerrainSet) Without(t TerrainType) TerrainSet {
	return s &^ (1 << t)
}

// Types lists the members in enum order
func (s TerrainSet) Types() []TerrainType {
	var out []TerrainType
	for t := Basic; t <= HighCover; t++ {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

func (s TerrainSet) String() string {
	names := make([]string, 0, 5)
	for _, t := range s.Types() {
		names = append(names, t.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}
