package pathfind

import (
	"container/heap"

	"github.com/mitchelldurbincs/GridTactics/internal/common"
	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/los"
)

// Step costs
const (
	StraightCost = 10
	DiagonalCost = 14
)

// node is the per-search scratch record of a tile
type node struct {
	tile   *core.Tile
	g, h   int
	f      int
	parent *node
	seq    int
	index  int
	closed bool
}

// openSet orders nodes by f, then h, then discovery order
type openSet []*node

func (o openSet) Len() int { return len(o) }

func (o openSet) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	if o[i].h != o[j].h {
		return o[i].h < o[j].h
	}
	return o[i].seq < o[j].seq
}

func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}

func (o *openSet) Push(x any) {
	n := x.(*node)
	n.index = len(*o)
	*o = append(*o, n)
}

func (o *openSet) Pop() any {
	old := *o
	n := old[len(old)-1]
	old[len(old)-1] = nil
	n.index = -1
	*o = old[:len(old)-1]
	return n
}

func heuristic(a, b core.Coordinate, diagonal bool) int {
	dx, dy := b.X-a.X, b.Y-a.Y
	if diagonal {
		return common.Octile(dx, dy, StraightCost, DiagonalCost)
	}
	return common.Manhattan(dx, dy, StraightCost)
}

func stepCost(a, b core.Coordinate) int {
	if a.IsDiagonalTo(b) {
		return DiagonalCost
	}
	return StraightCost
}

// FindPath returns the cheapest path from start to end under rules, or an
// empty slice when end is unreachable. The search stops when end is popped
// from the open set, and equal f values are broken by the lower heuristic
// and then by discovery order. All scratch state is local to the call.
func FindPath(g *core.Grid, start, end core.Coordinate, inclusion los.Inclusion, rules MovementRules) []*core.Tile {
	startTile, endTile := g.Tile(start), g.Tile(end)
	if startTile == nil || endTile == nil {
		return nil
	}
	if start == end {
		if inclusion.IncludesStart() || inclusion.IncludesEnd() {
			return []*core.Tile{startTile}
		}
		return nil
	}

	arena := make(map[core.Coordinate]*node)
	open := &openSet{}
	seq := 0

	first := &node{tile: startTile, h: heuristic(start, end, rules.Diagonal)}
	first.f = first.h
	arena[start] = first
	heap.Push(open, first)

	for open.Len() > 0 {
		current := heap.Pop(open).(*node)
		if current.tile == endTile {
			return assemble(current, inclusion)
		}
		current.closed = true

		from := current.tile.Coord
		for _, next := range from.AllNeighbors() {
			if !IsStepWalkable(g, from, next, rules) {
				continue
			}
			cost := current.g + stepCost(from, next)

			n, seen := arena[next]
			if seen && (n.closed || cost >= n.g) {
				continue
			}
			if !seen {
				seq++
				n = &node{tile: g.Tile(next), h: heuristic(next, end, rules.Diagonal), seq: seq}
				arena[next] = n
			}
			n.g = cost
			n.f = cost + n.h
			n.parent = current
			if seen {
				heap.Fix(open, n.index)
			} else {
				heap.Push(open, n)
			}
		}
	}
	return nil
}

func assemble(end *node, inclusion los.Inclusion) []*core.Tile {
	var path []*core.Tile
	for n := end; n != nil; n = n.parent {
		path = append(path, n.tile)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	if !inclusion.IncludesStart() {
		path = path[1:]
	}
	if !inclusion.IncludesEnd() {
		path = path[:len(path)-1]
	}
	return path
}

// PathCost sums the step costs of consecutive tiles
func PathCost(path []*core.Tile) int {
	total := 0
	for i := 1; i < len(path); i++ {
		total += stepCost(path[i-1].Coord, path[i].Coord)
	}
	return total
}

// Steps returns the number of moves in a path that includes both endpoints
func Steps(path []*core.Tile) int {
	if len(path) == 0 {
		return 0
	}
	return len(path) - 1
}
