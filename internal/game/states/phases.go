package states

import "fmt"

// MatchPhase represents the current phase of a match
type MatchPhase int

const (
	// PhaseInitializing - validating setup, placing units
	PhaseInitializing MatchPhase = iota

	// PhaseRunning - units are taking turns
	PhaseRunning

	// PhaseResolved - victory or defeat reached, final state
	PhaseResolved

	// PhaseError - setup or runtime failure, final state
	PhaseError

	// PhaseReset - clear the match so it can be initialized again
	PhaseReset
)

// String returns the string representation of a MatchPhase
func (p MatchPhase) String() string {
	switch p {
	case PhaseInitializing:
		return "Initializing"
	case PhaseRunning:
		return "Running"
	case PhaseResolved:
		return "Resolved"
	case PhaseError:
		return "Error"
	case PhaseReset:
		return "Reset"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if the phase represents a terminal state
func (p MatchPhase) IsTerminal() bool {
	return p == PhaseResolved || p == PhaseError
}

// CanReceiveActions returns true if the match can process unit actions in this phase
func (p MatchPhase) CanReceiveActions() bool {
	return p == PhaseRunning
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p MatchPhase) AllowedTransitions() []MatchPhase {
	switch p {
	case PhaseInitializing:
		return []MatchPhase{PhaseRunning, PhaseError}
	case PhaseRunning:
		return []MatchPhase{PhaseResolved, PhaseError}
	case PhaseResolved:
		return []MatchPhase{PhaseReset}
	case PhaseError:
		return []MatchPhase{PhaseReset}
	case PhaseReset:
		return []MatchPhase{PhaseInitializing}
	default:
		return []MatchPhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p MatchPhase) CanTransitionTo(target MatchPhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a string to a MatchPhase
func ParsePhase(s string) MatchPhase {
	switch s {
	case "Running":
		return PhaseRunning
	case "Resolved":
		return PhaseResolved
	case "Error":
		return PhaseError
	case "Reset":
		return PhaseReset
	default:
		return PhaseInitializing // Default to initializing for unknown phases
	}
}
