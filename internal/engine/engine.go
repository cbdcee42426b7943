// Package engine ties the motion sampler, orientation tracker, UI observer
// and listener registry together behind the externally callable surface.
package engine

import (
	"errors"
	"fmt"
	"sync"

	"orientationd/internal/display"
	"orientationd/internal/events"
	"orientationd/internal/motion"
	"orientationd/internal/orientation"
	"orientationd/internal/tracker"
)

// Version is reported by the version query.
const Version = "8.1.10"

var (
	// ErrInvalidArgument marks a malformed request.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrPlatformOperation marks a failed OS-level lock/unlock call.
	ErrPlatformOperation = errors.New("platform operation failed")
)

// LockRequest is the orientation-lock call payload. Ephemeral, built per
// call.
type LockRequest struct {
	Orientation           string `json:"orientation"`
	BypassOrientationLock bool   `json:"bypassOrientationLock"`
}

// TrackingRequest is the payload for the tracking start call.
type TrackingRequest struct {
	BypassOrientationLock bool `json:"bypassOrientationLock"`
}

// LockStatus is the derived answer to "is rotation lock suppressing physical
// rotation". PhysicalOrientation is present only while motion tracking is
// active; without a physical signal the engine reports unlocked rather than
// guessing.
type LockStatus struct {
	Locked              bool               `json:"locked"`
	PhysicalOrientation *orientation.Label `json:"physicalOrientation,omitempty"`
	UIOrientation       orientation.Label  `json:"uiOrientation"`
}

// Engine owns the single instance of every stateful component. Construct
// once at process start.
type Engine struct {
	registry *events.Registry
	tracker  *tracker.Tracker
	sampler  *motion.Sampler
	observer *display.Observer
	backend  display.Backend

	closeOnce sync.Once
}

func New(backend display.Backend, samplerCfg motion.Config) (*Engine, error) {
	if backend == nil {
		return nil, fmt.Errorf("engine: display backend is nil")
	}
	registry := events.NewRegistry()
	tr := tracker.New(registry)
	e := &Engine{
		registry: registry,
		tracker:  tr,
		sampler:  motion.New(samplerCfg, tr),
		observer: display.NewObserver(backend, tr.Active, registry),
		backend:  backend,
	}
	if err := e.observer.Start(); err != nil {
		return nil, fmt.Errorf("engine: ui observer: %w", err)
	}
	return e, nil
}

// Close stops tracking and unsubscribes from UI notifications. Idempotent.
func (e *Engine) Close() {
	e.closeOnce.Do(func() {
		e.sampler.Stop()
		e.observer.Close()
	})
}

// Orientation reports the current UI orientation.
func (e *Engine) Orientation() orientation.Label {
	return e.observer.Current()
}

// Lock applies the requested orientation constraint. When the request asks
// for a tracking bypass, motion sampling starts alongside the lock so the
// physical orientation stays observable.
func (e *Engine) Lock(req LockRequest) error {
	if req.Orientation == "" {
		return fmt.Errorf("engine: orientation is required: %w", ErrInvalidArgument)
	}
	lt, err := orientation.ParseLockType(req.Orientation)
	if err != nil {
		return fmt.Errorf("engine: %v: %w", err, ErrInvalidArgument)
	}
	if err := e.backend.Apply(lt); err != nil {
		return fmt.Errorf("engine: lock %q: %v: %w", lt, err, ErrPlatformOperation)
	}
	if req.BypassOrientationLock {
		return e.startTracking()
	}
	return nil
}

// Unlock removes the constraint and ends any lock-driven tracking.
func (e *Engine) Unlock() error {
	e.sampler.Stop()
	if err := e.backend.Clear(); err != nil {
		return fmt.Errorf("engine: unlock: %v: %w", err, ErrPlatformOperation)
	}
	return nil
}

// StartTracking begins motion-based physical orientation tracking. Without
// the bypass flag the call is a successful no-op, as is any call on hosts
// without motion support.
func (e *Engine) StartTracking(req TrackingRequest) error {
	if !req.BypassOrientationLock {
		return nil
	}
	return e.startTracking()
}

// StopTracking ends motion tracking. Always succeeds.
func (e *Engine) StopTracking() {
	e.sampler.Stop()
}

func (e *Engine) startTracking() error {
	if !e.sampler.Supported() {
		// Capability absent: resolve silently to keep the surface uniform.
		return nil
	}
	return e.sampler.Start()
}

// SupportsMotionTracking reports whether this host can infer physical
// orientation at all.
func (e *Engine) SupportsMotionTracking() bool {
	return e.sampler.Supported()
}

// IsLocked compares the sensor-derived physical orientation against the UI
// orientation. Pure read, no side effects.
func (e *Engine) IsLocked() LockStatus {
	ui := e.observer.Current()
	physical, active := e.tracker.Current()
	if !active {
		return LockStatus{Locked: false, UIOrientation: ui}
	}
	return LockStatus{
		Locked:              physical != ui,
		PhysicalOrientation: &physical,
		UIOrientation:       ui,
	}
}

// AddListener registers fn for topic and returns a removable handle.
func (e *Engine) AddListener(topic string, fn events.Listener) events.Handle {
	return e.registry.Add(topic, fn)
}

// RemoveAllListeners drops every registered listener.
func (e *Engine) RemoveAllListeners() {
	e.registry.RemoveAll()
}

// SetClassifiedHook forwards a per-sample observer to the sampler, for
// metrics. Must be called before tracking starts.
func (e *Engine) SetClassifiedHook(fn func(orientation.Label)) {
	e.sampler.SetClassifiedHook(fn)
}

// TrackingActive reports whether motion tracking is currently running.
func (e *Engine) TrackingActive() bool {
	return e.tracker.Active()
}
