package los

import (
	"github.com/mitchelldurbincs/GridTactics/internal/common"
	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
)

// Inclusion controls which endpoints a line or path contains
type Inclusion uint8

const (
	WithoutStartAndEnd Inclusion = iota
	WithStart
	WithEnd
	WithStartAndEnd
)

// IncludesStart reports whether the start cell is requested
func (i Inclusion) IncludesStart() bool {
	return i == WithStart || i == WithStartAndEnd
}

// IncludesEnd reports whether the end cell is requested
func (i Inclusion) IncludesEnd() bool {
	return i == WithEnd || i == WithStartAndEnd
}

// Line returns the discretized straight line from start to end. It steps
// along the dominant axis and rounds the other axis half away from zero.
// When start equals end the result is that single cell if any endpoint is
// requested and empty otherwise.
func Line(start, end core.Coordinate, inclusion Inclusion) []core.Coordinate {
	if start == end {
		if inclusion.IncludesStart() || inclusion.IncludesEnd() {
			return []core.Coordinate{start}
		}
		return nil
	}

	dx := end.X - start.X
	dy := end.Y - start.Y
	n := max(common.Abs(dx), common.Abs(dy))

	out := make([]core.Coordinate, 0, n+1)
	if inclusion.IncludesStart() {
		out = append(out, start)
	}
	for i := 1; i < n; i++ {
		out = append(out, core.Coordinate{
			X: start.X + roundDiv(dx*i, n),
			Y: start.Y + roundDiv(dy*i, n),
		})
	}
	if inclusion.IncludesEnd() {
		out = append(out, end)
	}
	return out
}

// Distance is the number of interior cells between a and b
func Distance(a, b core.Coordinate) int {
	if a == b {
		return 0
	}
	return max(common.Abs(b.X-a.X), common.Abs(b.Y-a.Y)) - 1
}

// roundDiv divides a by a positive b, rounding half away from zero
func roundDiv(a, b int) int {
	if a >= 0 {
		return (2*a + b) / (2 * b)
	}
	return -((-2*a + b) / (2 * b))
}
