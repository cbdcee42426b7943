// Package events carries orientation change notifications from the tracker
// and the UI observer to registered listeners.
package events

import "orientationd/internal/orientation"

// TopicScreenOrientationChange is the only topic currently emitted.
const TopicScreenOrientationChange = "screenOrientationChange"

// Event is a tagged notification payload. There is a single variant today;
// future event kinds implement the same interface without breaking existing
// listeners.
type Event interface {
	Topic() string
}

// ScreenOrientationChange reports a new effective orientation, from either
// the motion tracker or the UI observer.
type ScreenOrientationChange struct {
	Type orientation.Label `json:"type"`
}

func (ScreenOrientationChange) Topic() string { return TopicScreenOrientationChange }
