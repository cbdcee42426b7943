package web

import (
	"sync"

	"orientationd/internal/events"
)

// Broadcaster fans orientation change events out to any number of SSE
// subscribers. It keeps the most recent event so a UI attaching late gets
// the current orientation immediately.
type Broadcaster struct {
	mu       sync.Mutex
	subs     map[int]chan events.ScreenOrientationChange
	nextID   int
	last     events.ScreenOrientationChange
	haveLast bool
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]chan events.ScreenOrientationChange)}
}

// Subscribe returns a subscriber id and a channel. Slow subscribers drop
// events rather than stalling the emitter.
func (b *Broadcaster) Subscribe(buffer int) (int, <-chan events.ScreenOrientationChange) {
	if buffer <= 0 {
		buffer = 4
	}
	ch := make(chan events.ScreenOrientationChange, buffer)
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	last := b.last
	have := b.haveLast
	b.mu.Unlock()
	if have {
		select {
		case ch <- last:
		default:
		}
	}
	return id, ch
}

func (b *Broadcaster) Unsubscribe(id int) {
	b.mu.Lock()
	ch, ok := b.subs[id]
	if ok {
		delete(b.subs, id)
		close(ch)
	}
	b.mu.Unlock()
}

// Publish sends ev to every subscriber. Sends stay under the lock so an
// Unsubscribe cannot close a channel mid-send; they never block.
func (b *Broadcaster) Publish(ev events.ScreenOrientationChange) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.last = ev
	b.haveLast = true
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
