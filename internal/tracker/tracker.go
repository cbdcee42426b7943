// Package tracker holds the physical-orientation state machine fed by the
// motion sampler.
package tracker

import (
	"sync"

	"orientationd/internal/events"
	"orientationd/internal/orientation"
)

// Tracker keeps the last classified physical orientation and decides which
// classified samples become change events. It has two states, inactive and
// active; samples are only accepted while active.
type Tracker struct {
	mu           sync.Mutex
	active       bool
	current      orientation.Label
	notified     orientation.Label
	haveNotified bool

	registry *events.Registry
}

func New(registry *events.Registry) *Tracker {
	return &Tracker{
		current:  orientation.Default,
		registry: registry,
	}
}

// Start transitions the tracker to active. Idempotent.
func (t *Tracker) Start() {
	t.mu.Lock()
	t.active = true
	t.mu.Unlock()
}

// Stop transitions the tracker to inactive and forgets the last notified
// label, so a later tracking session announces its first classification
// even if the device has not moved. Idempotent.
func (t *Tracker) Stop() {
	t.mu.Lock()
	t.active = false
	t.haveNotified = false
	t.mu.Unlock()
}

// Active reports whether the tracker is accepting samples. The UI observer
// consults this to suppress its own emission while motion tracking runs.
func (t *Tracker) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Current returns the last classified physical orientation and whether the
// tracker is active. The label is only meaningful when active is true.
func (t *Tracker) Current() (orientation.Label, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current, t.active
}

// OnSample records one classified sample. The current label is updated on
// every call; an event is emitted only when the label differs from the last
// one notified, which is the sole deduplication gate: the emitted stream
// never contains two consecutive equal payloads.
//
// Emission happens under the tracker mutex, on the sampler's delivery
// goroutine, so listeners never observe a half-applied start/stop transition.
func (t *Tracker) OnSample(label orientation.Label) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.active {
		return
	}
	t.current = label
	if t.haveNotified && label == t.notified {
		return
	}
	t.notified = label
	t.haveNotified = true
	t.registry.Notify(events.ScreenOrientationChange{Type: label})
}
