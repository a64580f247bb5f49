package common

// Abs returns the absolute value of an integer
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Clamp limits v to the closed range [lo, hi]
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Octile returns the cost of crossing dx by dy cells when diagonal steps
// cost diag and straight steps cost straight
func Octile(dx, dy, straight, diag int) int {
	dx, dy = Abs(dx), Abs(dy)
	lo, hi := min(dx, dy), max(dx, dy)
	return diag*lo + straight*(hi-lo)
}

// Manhattan returns the cost of crossing dx by dy cells with straight steps only
func Manhattan(dx, dy, straight int) int {
	return straight * (Abs(dx) + Abs(dy))
}
