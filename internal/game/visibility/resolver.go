package visibility

import (
	"fmt"
	"sort"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/los"
)

// VisionMode selects whose eyes count for a unit
type VisionMode uint8

const (
	SingleVision VisionMode = iota
	GroupVision
)

func (m VisionMode) String() string {
	switch m {
	case SingleVision:
		return "single"
	case GroupVision:
		return "group"
	default:
		return fmt.Sprintf("VisionMode(%d)", uint8(m))
	}
}

// FogPolicy decides which units an observer is told about
type FogPolicy uint8

const (
	EveryoneVisible FogPolicy = iota
	AlliesAndSight
	StrictSight
)

func (p FogPolicy) String() string {
	switch p {
	case EveryoneVisible:
		return "everyone_visible"
	case AlliesAndSight:
		return "allies_and_sight"
	case StrictSight:
		return "strict_sight"
	default:
		return fmt.Sprintf("FogPolicy(%d)", uint8(p))
	}
}

// ParseVisionMode converts a mode name into its value
func ParseVisionMode(name string) (VisionMode, error) {
	for m := SingleVision; m <= GroupVision; m++ {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown vision mode %q", name)
}

// ParseFogPolicy converts a policy name into its value
func ParseFogPolicy(name string) (FogPolicy, error) {
	for p := EveryoneVisible; p <= StrictSight; p++ {
		if p.String() == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown fog policy %q", name)
}

// Resolver computes fields of view and fog-of-war queries. Apart from the
// explored memory kept by TeamFog every query is free of side effects.
type Resolver struct {
	Sight  *los.SightChecker
	Roster Roster
	Mode   VisionMode
	Fog    FogPolicy

	explored map[int]map[core.Coordinate]struct{}
}

// NewResolver creates a resolver
func NewResolver(sight *los.SightChecker, roster Roster, mode VisionMode, fog FogPolicy) *Resolver {
	return &Resolver{
		Sight:    sight,
		Roster:   roster,
		Mode:     mode,
		Fog:      fog,
		explored: make(map[int]map[core.Coordinate]struct{}),
	}
}

// FieldOfView returns the unit's own tile plus every tile within sight
// range that is not view-blocking terrain and on which it has sight
func (r *Resolver) FieldOfView(u *core.Unit) map[core.Coordinate]*core.Tile {
	fov := make(map[core.Coordinate]*core.Tile)
	if !u.Alive() || !u.IsPlaced() {
		return fov
	}

	grid := r.Sight.Grid
	pos := u.Position()
	if t := grid.Tile(pos); t != nil {
		fov[pos] = t
	}

	reach := u.Stats.SightRange
	for y := pos.Y - reach; y <= pos.Y+reach; y++ {
		for x := pos.X - reach; x <= pos.X+reach; x++ {
			c := core.Coordinate{X: x, Y: y}
			t := grid.Tile(c)
			if t == nil || c == pos || r.Sight.ViewBlocking.Has(t.Terrain) {
				continue
			}
			if r.Sight.HasSightOn(u, c) {
				fov[c] = t
			}
		}
	}
	return fov
}

// VisibleTiles returns what u sees under the configured vision mode
func (r *Resolver) VisibleTiles(u *core.Unit) map[core.Coordinate]*core.Tile {
	visible := r.FieldOfView(u)
	if r.Mode != GroupVision {
		return visible
	}
	for _, ally := range r.Roster.Allies(u) {
		if !ally.Alive() {
			continue
		}
		for c, t := range r.FieldOfView(ally) {
			visible[c] = t
		}
	}
	return visible
}

// CanSee reports whether target is alive and standing on a tile viewer sees
func (r *Resolver) CanSee(viewer, target *core.Unit) bool {
	if !target.Alive() || !target.IsPlaced() {
		return false
	}
	_, ok := r.VisibleTiles(viewer)[target.Position()]
	return ok
}

// UnitsVisibleInFog returns the living units observer is allowed to know
// about under the fog policy, in roster order
func (r *Resolver) UnitsVisibleInFog(observer *core.Unit) []*core.Unit {
	var visible map[core.Coordinate]*core.Tile
	if r.Fog != EveryoneVisible {
		visible = r.VisibleTiles(observer)
	}

	var out []*core.Unit
	for _, u := range r.Roster.Units() {
		if !u.Alive() || !u.IsPlaced() {
			continue
		}
		switch r.Fog {
		case EveryoneVisible:
			out = append(out, u)
		case AlliesAndSight:
			if _, seen := visible[u.Position()]; seen || u.IsAllyOf(observer) {
				out = append(out, u)
			}
		case StrictSight:
			if _, seen := visible[u.Position()]; seen {
				out = append(out, u)
			}
		}
	}
	return out
}

// EnemiesOnSight returns living enemies u has direct sight on, closest
// first by line length and by roster order on ties
func (r *Resolver) EnemiesOnSight(u *core.Unit) []*core.Unit {
	if !u.Alive() || !u.IsPlaced() {
		return nil
	}
	var out []*core.Unit
	for _, e := range r.Roster.Enemies(u) {
		if e.Alive() && e.IsPlaced() && r.Sight.HasSightOn(u, e.Position()) {
			out = append(out, e)
		}
	}
	from := u.Position()
	sort.SliceStable(out, func(i, j int) bool {
		return los.Distance(from, out[i].Position()) < los.Distance(from, out[j].Position())
	})
	return out
}

// ClosestEnemyOnSight returns the nearest enemy u has sight on, or nil
func (r *Resolver) ClosestEnemyOnSight(u *core.Unit) *core.Unit {
	enemies := r.EnemiesOnSight(u)
	if len(enemies) == 0 {
		return nil
	}
	return enemies[0]
}
