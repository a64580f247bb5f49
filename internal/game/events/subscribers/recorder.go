package subscribers

import (
	"sync"

	"github.com/mitchelldurbincs/GridTactics/internal/game/events"
)

// Recorder keeps every event it receives, in delivery order
type Recorder struct {
	id     string
	mu     sync.Mutex
	events []events.Event
}

func NewRecorder(id string) *Recorder {
	return &Recorder{id: id}
}

func (r *Recorder) ID() string {
	return r.id
}

func (r *Recorder) InterestedIn(string) bool {
	return true
}

func (r *Recorder) HandleEvent(event events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of the recorded events
func (r *Recorder) Events() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.Event(nil), r.events...)
}

// Types returns the recorded event types, optionally restricted to the given ones
func (r *Recorder) Types(only ...string) []string {
	keep := make(map[string]bool, len(only))
	for _, t := range only {
		keep[t] = true
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		if len(keep) == 0 || keep[e.Type()] {
			out = append(out, e.Type())
		}
	}
	return out
}

// OfType returns the recorded events of one type
func (r *Recorder) OfType(eventType string) []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []events.Event
	for _, e := range r.events {
		if e.Type() == eventType {
			out = append(out, e)
		}
	}
	return out
}

// Reset forgets everything recorded so far
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// Replay publishes the recorded events, in order, to p
func (r *Recorder) Replay(p events.Publisher) {
	for _, e := range r.Events() {
		p.Publish(e)
	}
}
