package monitoring

import (
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GridTactics/internal/game/events"
)

// MatchMonitor collects per-team combat metrics from the event bus
type MatchMonitor struct {
	mu       sync.RWMutex
	id       string
	started  time.Time
	finished time.Time
	turns    int
	teams    map[int]*TeamMetrics
	rejected map[string]int
	outcome  string
	winner   int
	resolved bool
}

// TeamMetrics contains what one team did during the match
type TeamMetrics struct {
	Shots       int `json:"shots"`
	Hits        int `json:"hits"`
	DamageDealt int `json:"damage_dealt"`
	Kills       int `json:"kills"`
	Losses      int `json:"losses"`
	TilesMoved  int `json:"tiles_moved"`
	Reloads     int `json:"reloads"`
	UnitTurns   int `json:"unit_turns"`
}

// Accuracy returns the share of shots that hit, in percent
func (t TeamMetrics) Accuracy() float64 {
	if t.Shots == 0 {
		return 0
	}
	return float64(t.Hits) / float64(t.Shots) * 100
}

// MatchMetrics is a snapshot of a MatchMonitor
type MatchMetrics struct {
	Turns    int                 `json:"turns"`
	Duration time.Duration       `json:"duration"`
	Teams    map[int]TeamMetrics `json:"teams"`
	Rejected map[string]int      `json:"rejected"`
	Outcome  string              `json:"outcome,omitempty"`
	Winner   int                 `json:"winner"`
	Resolved bool                `json:"resolved"`
}

// NewMatchMonitor creates a monitor; subscribe it before the match starts
func NewMatchMonitor(id string) *MatchMonitor {
	return &MatchMonitor{
		id:       id,
		teams:    make(map[int]*TeamMetrics),
		rejected: make(map[string]int),
		winner:   -1,
	}
}

func (mm *MatchMonitor) ID() string {
	return mm.id
}

func (mm *MatchMonitor) InterestedIn(eventType string) bool {
	switch eventType {
	case events.TypeMatchStarted, events.TypeTeamTurnStarted, events.TypeUnitTurnStarted,
		events.TypeMovementEnded, events.TypeAttackExecuted, events.TypeUnitKilled,
		events.TypeWeaponReloaded, events.TypeCommandRejected, events.TypeMatchVictory:
		return true
	}
	return false
}

func (mm *MatchMonitor) HandleEvent(event events.Event) {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	switch e := event.(type) {
	case *events.MatchStartedEvent:
		mm.started = e.Timestamp()
	case *events.TeamTurnStartedEvent:
		mm.turns = max(mm.turns, e.Metadata.Turn)
	case *events.UnitTurnEvent:
		if e.Type() == events.TypeUnitTurnStarted {
			mm.team(e.Unit.Team).UnitTurns++
		}
	case *events.MovementEndedEvent:
		mm.team(e.Unit.Team).TilesMoved += e.Steps
	case *events.AttackEvent:
		if e.Type() != events.TypeAttackExecuted {
			return
		}
		t := mm.team(e.Attacker.Team)
		t.Shots++
		if e.Hit {
			t.Hits++
			t.DamageDealt += e.Damage
		}
	case *events.UnitKilledEvent:
		mm.team(e.KilledBy.Team).Kills++
		mm.team(e.Unit.Team).Losses++
	case *events.WeaponReloadedEvent:
		mm.team(e.Unit.Team).Reloads++
	case *events.CommandRejectedEvent:
		mm.rejected[e.Command]++
	case *events.MatchVictoryEvent:
		mm.finished = e.Timestamp()
		mm.outcome = e.Outcome
		mm.winner = e.Winner
		mm.resolved = true
	}
}

func (mm *MatchMonitor) team(id int) *TeamMetrics {
	t, ok := mm.teams[id]
	if !ok {
		t = &TeamMetrics{}
		mm.teams[id] = t
	}
	return t
}

// GetMetrics returns current match metrics
func (mm *MatchMonitor) GetMetrics() MatchMetrics {
	mm.mu.RLock()
	defer mm.mu.RUnlock()

	teams := make(map[int]TeamMetrics, len(mm.teams))
	for id, t := range mm.teams {
		teams[id] = *t
	}
	var d time.Duration
	if !mm.started.IsZero() && !mm.finished.IsZero() {
		d = mm.finished.Sub(mm.started)
	}
	return MatchMetrics{
		Turns:    mm.turns,
		Duration: d,
		Teams:    teams,
		Rejected: copyMap(mm.rejected),
		Outcome:  mm.outcome,
		Winner:   mm.winner,
		Resolved: mm.resolved,
	}
}

// LogSummary writes one line per team
func (mm *MatchMonitor) LogSummary(logger zerolog.Logger) {
	m := mm.GetMetrics()

	ids := make([]int, 0, len(m.Teams))
	for id := range m.Teams {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		t := m.Teams[id]
		logger.Info().
			Int("team", id).
			Int("shots", t.Shots).
			Float64("accuracy", t.Accuracy()).
			Int("damage", t.DamageDealt).
			Int("kills", t.Kills).
			Int("losses", t.Losses).
			Int("tiles_moved", t.TilesMoved).
			Int("reloads", t.Reloads).
			Msg("Team metrics")
	}
	if len(m.Rejected) > 0 {
		logger.Warn().Interface("rejected", m.Rejected).Msg("Rejected commands")
	}
}

func copyMap(m map[string]int) map[string]int {
	result := make(map[string]int, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}
