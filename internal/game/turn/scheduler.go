package turn

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
)

// Outcome is the result of a victory check
type Outcome int

const (
	Continue Outcome = iota
	Victory
	Defeat
)

func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case Victory:
		return "victory"
	case Defeat:
		return "defeat"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Verdict names the team an outcome applies to. For Victory it is the
// winner, for Defeat the loser.
type Verdict struct {
	Outcome Outcome
	Team    int
}

// VictoryState is what a VictoryChecker gets to look at
type VictoryState struct {
	Teams []*core.Team
	Due   *core.Team
	Turn  int
}

// VictoryChecker decides whether the match is over
type VictoryChecker interface {
	Check(state VictoryState) Verdict
}

// Listener is notified of scheduler transitions
type Listener interface {
	TeamTurnStarted(team *core.Team, turn int)
	UnitTurnStarted(unit *core.Unit)
	UnitTurnEnded(unit *core.Unit)
	// FocusChanged reports a teammate switch; neither unit starts or ends its turn
	FocusChanged(from, to *core.Unit)
	Resolved(verdict Verdict)
}

// Kind identifies the scheduler state
type Kind int

const (
	UnitTurn Kind = iota
	Resolved
)

// State is a snapshot of the scheduler: a unit turn nested in a team turn,
// or the terminal resolved state.
type State struct {
	Kind    Kind
	Team    *core.Team
	Unit    *core.Unit
	Verdict Verdict
}

// Scheduler advances play among units and teams. It holds the only
// current-unit pointer of a match.
type Scheduler struct {
	teams    []*core.Team
	checker  VictoryChecker
	listener Listener
	logger   zerolog.Logger

	teamIdx  int
	current  *core.Unit
	turn     int
	resolved bool
	verdict  Verdict
}

// New creates a scheduler positioned on the first living unit of the first
// team in play order that has one
func New(teams []*core.Team, checker VictoryChecker, logger zerolog.Logger) (*Scheduler, error) {
	if len(teams) == 0 {
		return nil, fmt.Errorf("%w: no teams", core.ErrMalformedSetup)
	}
	for _, t := range teams {
		if len(t.Units) == 0 {
			return nil, fmt.Errorf("%w: team %q has no units", core.ErrMalformedSetup, t.Name)
		}
	}

	s := &Scheduler{
		teams:   teams,
		checker: checker,
		logger:  logger.With().Str("component", "scheduler").Logger(),
		teamIdx: -1,
	}
	if !s.enterNextTeam() {
		return nil, fmt.Errorf("%w: no living units", core.ErrMalformedSetup)
	}
	return s, nil
}

// SetListener registers the transition listener
func (s *Scheduler) SetListener(l Listener) {
	s.listener = l
}

// Start announces the initial team and unit turn, then checks victory
func (s *Scheduler) Start() {
	if s.resolved {
		return
	}
	if s.CheckVictory() != Continue {
		return
	}
	s.announce(true)
}

// Current returns the unit whose turn it is, nil once resolved
func (s *Scheduler) Current() *core.Unit {
	if s.resolved {
		return nil
	}
	return s.current
}

// CurrentTeam returns the team due to act
func (s *Scheduler) CurrentTeam() *core.Team {
	return s.teams[s.teamIdx]
}

// Teams returns the play order
func (s *Scheduler) Teams() []*core.Team {
	return s.teams
}

// Turn counts team turns, starting at 1
func (s *Scheduler) Turn() int {
	return s.turn
}

func (s *Scheduler) IsResolved() bool {
	return s.resolved
}

func (s *Scheduler) Verdict() Verdict {
	return s.verdict
}

// State returns a snapshot of the current state
func (s *Scheduler) State() State {
	if s.resolved {
		return State{Kind: Resolved, Team: s.CurrentTeam(), Verdict: s.verdict}
	}
	return State{Kind: UnitTurn, Team: s.CurrentTeam(), Unit: s.current}
}

// EndUnitTurn marks the current unit as played and moves on
func (s *Scheduler) EndUnitTurn() error {
	if s.resolved {
		return core.ErrMatchResolved
	}
	s.current.Played = true
	s.notifyEnded(s.current)
	s.advance()
	return nil
}

// EndAllUnitsOfCurrentTeam marks every unit of the team as played and moves on
func (s *Scheduler) EndAllUnitsOfCurrentTeam() error {
	if s.resolved {
		return core.ErrMatchResolved
	}
	for _, u := range s.CurrentTeam().Units {
		u.Played = true
	}
	s.notifyEnded(s.current)
	s.advance()
	return nil
}

// SwitchToTeammate focuses the next (or previous) available teammate
// without consuming anyone's availability. With no other candidate the
// focus stays where it is.
func (s *Scheduler) SwitchToTeammate(forward bool) (*core.Unit, error) {
	if s.resolved {
		return nil, core.ErrMatchResolved
	}
	units := s.CurrentTeam().Units
	idx := indexOf(units, s.current)
	step := 1
	if !forward {
		step = -1
	}
	for i := 1; i < len(units); i++ {
		u := units[((idx+step*i)%len(units)+len(units))%len(units)]
		if u.CanAct() && u != s.current {
			from := s.current
			s.current = u
			s.logger.Debug().Str("unit", u.Name).Msg("Switched focus to teammate")
			if s.listener != nil {
				s.listener.FocusChanged(from, u)
			}
			return u, nil
		}
	}
	return s.current, nil
}

// CheckVictory asks the checker about the team due to act and resolves the
// match on a decisive verdict
func (s *Scheduler) CheckVictory() Outcome {
	if s.resolved {
		return s.verdict.Outcome
	}
	if s.checker == nil {
		return Continue
	}

	v := s.checker.Check(VictoryState{Teams: s.teams, Due: s.CurrentTeam(), Turn: s.turn})
	if v.Outcome == Continue {
		return Continue
	}

	s.resolved = true
	s.verdict = v
	s.logger.Info().
		Str("outcome", v.Outcome.String()).
		Int("team", v.Team).
		Int("turn", s.turn).
		Msg("Match resolved")
	if s.listener != nil {
		s.listener.Resolved(v)
	}
	return v.Outcome
}

func (s *Scheduler) advance() {
	team := s.CurrentTeam()
	if next := nextAvailable(team.Units, s.current); next != nil {
		s.current = next
		if s.CheckVictory() == Continue {
			s.announce(false)
		}
		return
	}

	if !s.enterNextTeam() {
		s.resolved = true
		s.verdict = Verdict{Outcome: Defeat, Team: team.ID}
		s.logger.Warn().Msg("No team has living units left")
		if s.listener != nil {
			s.listener.Resolved(s.verdict)
		}
		return
	}
	if s.CheckVictory() == Continue {
		s.announce(true)
	}
}

// enterNextTeam moves to the next team in play order with living units,
// wrapping, and makes its units available again
func (s *Scheduler) enterNextTeam() bool {
	n := len(s.teams)
	for i := 1; i <= n; i++ {
		idx := (s.teamIdx + i) % n
		team := s.teams[idx]
		living := team.LivingUnits()
		if len(living) == 0 {
			continue
		}
		for _, u := range living {
			u.ResetTurn()
		}
		s.teamIdx = idx
		s.current = living[0]
		s.turn++
		s.logger.Debug().
			Str("team", team.Name).
			Int("turn", s.turn).
			Msg("Team turn started")
		return true
	}
	return false
}

func (s *Scheduler) announce(teamStarted bool) {
	if s.listener == nil {
		return
	}
	if teamStarted {
		s.listener.TeamTurnStarted(s.CurrentTeam(), s.turn)
	}
	s.listener.UnitTurnStarted(s.current)
}

func (s *Scheduler) notifyEnded(u *core.Unit) {
	s.logger.Debug().Str("unit", u.Name).Msg("Unit turn ended")
	if s.listener != nil {
		s.listener.UnitTurnEnded(u)
	}
}

// nextAvailable returns the next unit after current in team order that can
// still act, wrapping around
func nextAvailable(units []*core.Unit, current *core.Unit) *core.Unit {
	idx := indexOf(units, current)
	for i := 1; i <= len(units); i++ {
		u := units[(idx+i)%len(units)]
		if u.CanAct() {
			return u
		}
	}
	return nil
}

func indexOf(units []*core.Unit, u *core.Unit) int {
	for i, x := range units {
		if x == u {
			return i
		}
	}
	return 0
}
