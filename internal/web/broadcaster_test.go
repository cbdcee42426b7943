package web

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"orientationd/internal/events"
	"orientationd/internal/orientation"
)

func TestBroadcaster_FanOut(t *testing.T) {
	b := NewBroadcaster()
	id1, ch1 := b.Subscribe(4)
	id2, ch2 := b.Subscribe(4)
	defer b.Unsubscribe(id1)
	defer b.Unsubscribe(id2)

	b.Publish(events.ScreenOrientationChange{Type: orientation.LandscapePrimary})

	assert.Equal(t, orientation.LandscapePrimary, (<-ch1).Type)
	assert.Equal(t, orientation.LandscapePrimary, (<-ch2).Type)
}

func TestBroadcaster_LateSubscriberGetsLastEvent(t *testing.T) {
	b := NewBroadcaster()
	b.Publish(events.ScreenOrientationChange{Type: orientation.PortraitSecondary})

	id, ch := b.Subscribe(4)
	defer b.Unsubscribe(id)

	assert.Equal(t, orientation.PortraitSecondary, (<-ch).Type)
}

func TestBroadcaster_UnsubscribeClosesChannel(t *testing.T) {
	b := NewBroadcaster()
	id, ch := b.Subscribe(1)
	b.Unsubscribe(id)
	_, open := <-ch
	assert.False(t, open)

	// Publishing after unsubscribe must not panic.
	b.Publish(events.ScreenOrientationChange{Type: orientation.PortraitPrimary})
}

func TestBroadcaster_SlowSubscriberDropsNotBlocks(t *testing.T) {
	b := NewBroadcaster()
	id, ch := b.Subscribe(1)
	defer b.Unsubscribe(id)

	b.Publish(events.ScreenOrientationChange{Type: orientation.PortraitPrimary})
	b.Publish(events.ScreenOrientationChange{Type: orientation.LandscapePrimary})
	b.Publish(events.ScreenOrientationChange{Type: orientation.LandscapeSecondary})

	// Only the first fit in the buffer; the rest were dropped.
	assert.Equal(t, orientation.PortraitPrimary, (<-ch).Type)
	select {
	case ev := <-ch:
		t.Fatalf("unexpected buffered event: %+v", ev)
	default:
	}
}
