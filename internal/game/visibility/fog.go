package visibility

import (
	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
)

// FogState is what a team knows about a tile
type FogState uint8

const (
	FogShroud   FogState = iota // never seen
	FogExplored                 // seen before but not now
	FogVisible                  // currently visible
)

func (f FogState) String() string {
	switch f {
	case FogVisible:
		return "visible"
	case FogExplored:
		return "explored"
	default:
		return "shroud"
	}
}

// TeamFog returns the fog state of every tile for a team. Tiles seen by any
// living team member are visible; tiles seen by an earlier call stay explored.
func (r *Resolver) TeamFog(team int) map[core.Coordinate]FogState {
	visible := make(map[core.Coordinate]struct{})
	for _, u := range r.Roster.Units() {
		if u.Team != team || !u.Alive() {
			continue
		}
		for c := range r.FieldOfView(u) {
			visible[c] = struct{}{}
		}
	}

	if r.explored == nil {
		r.explored = make(map[int]map[core.Coordinate]struct{})
	}
	memory, ok := r.explored[team]
	if !ok {
		memory = make(map[core.Coordinate]struct{})
		r.explored[team] = memory
	}

	fog := make(map[core.Coordinate]FogState, r.Sight.Grid.Len())
	for _, t := range r.Sight.Grid.Tiles() {
		if _, seen := visible[t.Coord]; seen {
			fog[t.Coord] = FogVisible
			memory[t.Coord] = struct{}{}
			continue
		}
		if _, known := memory[t.Coord]; known {
			fog[t.Coord] = FogExplored
		} else {
			fog[t.Coord] = FogShroud
		}
	}
	return fog
}

// ResetFog forgets everything teams have explored
func (r *Resolver) ResetFog() {
	r.explored = make(map[int]map[core.Coordinate]struct{})
}
