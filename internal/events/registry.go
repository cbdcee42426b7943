package events

import (
	"sync"

	"github.com/google/uuid"
)

// Listener receives events for the topic it was registered under.
// Listeners are invoked on the emitting goroutine (sensor delivery or UI
// notification context) and should return quickly.
type Listener func(Event)

type entry struct {
	id uuid.UUID
	fn Listener
}

// Registry maps event topics to an ordered list of listeners. Both emission
// paths (motion tracker, UI observer) share one registry; they never fire for
// the same physical event because tracking suppresses the observer, not
// because of any registry-level exclusion.
type Registry struct {
	mu     sync.Mutex
	topics map[string][]entry
}

func NewRegistry() *Registry {
	return &Registry{topics: make(map[string][]entry)}
}

// Handle identifies one registration and can remove it.
type Handle struct {
	reg   *Registry
	topic string
	id    uuid.UUID
}

// ID returns the opaque registration identifier.
func (h Handle) ID() string { return h.id.String() }

// Remove unregisters the listener. Safe to call more than once.
func (h Handle) Remove() {
	if h.reg == nil {
		return
	}
	h.reg.mu.Lock()
	defer h.reg.mu.Unlock()
	list := h.reg.topics[h.topic]
	for i, e := range list {
		if e.id == h.id {
			h.reg.topics[h.topic] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Add registers fn for topic and returns a removable handle. Registration
// order is preserved at emission time.
func (r *Registry) Add(topic string, fn Listener) Handle {
	h := Handle{reg: r, topic: topic, id: uuid.New()}
	r.mu.Lock()
	r.topics[topic] = append(r.topics[topic], entry{id: h.id, fn: fn})
	r.mu.Unlock()
	return h
}

// RemoveAll drops every listener on every topic.
func (r *Registry) RemoveAll() {
	r.mu.Lock()
	r.topics = make(map[string][]entry)
	r.mu.Unlock()
}

// Len reports the number of listeners registered for topic.
func (r *Registry) Len(topic string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.topics[topic])
}

// Notify delivers ev, in registration order, to every listener of its topic.
func (r *Registry) Notify(ev Event) {
	r.mu.Lock()
	list := r.topics[ev.Topic()]
	fns := make([]Listener, len(list))
	for i, e := range list {
		fns[i] = e.fn
	}
	r.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}
