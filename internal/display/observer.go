package display

import (
	"fmt"
	"sync"

	"orientationd/internal/events"
	"orientationd/internal/orientation"
)

// Observer watches the backend's rotation and republishes changes as
// canonical orientation events. While motion tracking is active the tracker
// is the single emission source, so the observer stays silent; suppressed
// changes still update its notion of the current UI orientation.
type Observer struct {
	backend Backend
	// trackingActive gates emission; when it reports true, the motion
	// tracker has subsumed orientation detection.
	trackingActive func() bool
	registry       *events.Registry

	mu   sync.Mutex
	last orientation.Label
	stop func()
}

func NewObserver(b Backend, trackingActive func() bool, registry *events.Registry) *Observer {
	return &Observer{
		backend:        b,
		trackingActive: trackingActive,
		registry:       registry,
		last:           currentLabel(b),
	}
}

// Start subscribes to backend change notification. Called once at engine
// construction.
func (o *Observer) Start() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stop != nil {
		return fmt.Errorf("display: observer already started")
	}
	stop, err := o.backend.Watch(o.onChange)
	if err != nil {
		return err
	}
	o.stop = stop
	return nil
}

// Close unsubscribes. Idempotent.
func (o *Observer) Close() {
	o.mu.Lock()
	stop := o.stop
	o.stop = nil
	o.mu.Unlock()
	if stop != nil {
		stop()
	}
}

// Current reads the live UI orientation synchronously. Unmappable backend
// state yields the default label, never an error.
func (o *Observer) Current() orientation.Label {
	return currentLabel(o.backend)
}

func (o *Observer) onChange() {
	label := currentLabel(o.backend)

	o.mu.Lock()
	changed := label != o.last
	o.last = label
	suppressed := o.trackingActive()
	o.mu.Unlock()

	if !changed || suppressed {
		return
	}
	o.registry.Notify(events.ScreenOrientationChange{Type: label})
}

func currentLabel(b Backend) orientation.Label {
	r, err := b.Rotation()
	if err != nil {
		return orientation.Default
	}
	return orientation.FromRotation(r, b.Natural())
}
