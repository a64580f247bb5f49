package visibility

import "github.com/mitchelldurbincs/GridTactics/internal/game/core"

// Roster is the read-only unit registry the resolver works from
type Roster interface {
	// Units returns every unit, living or dead, in play order
	Units() []*core.Unit
	// Allies returns u's teammates, excluding u
	Allies(u *core.Unit) []*core.Unit
	// Enemies returns every unit of another team
	Enemies(u *core.Unit) []*core.Unit
}

// TeamRoster is a Roster over an ordered list of teams
type TeamRoster struct {
	Teams []*core.Team
}

func (r TeamRoster) Units() []*core.Unit {
	var out []*core.Unit
	for _, t := range r.Teams {
		out = append(out, t.Units...)
	}
	return out
}

func (r TeamRoster) Allies(u *core.Unit) []*core.Unit {
	var out []*core.Unit
	for _, other := range r.Units() {
		if other != u && other.IsAllyOf(u) {
			out = append(out, other)
		}
	}
	return out
}

func (r TeamRoster) Enemies(u *core.Unit) []*core.Unit {
	var out []*core.Unit
	for _, other := range r.Units() {
		if !other.IsAllyOf(u) {
			out = append(out, other)
		}
	}
	return out
}
