package motion

import (
	"log"
	"sync"
	"time"

	"orientationd/internal/orientation"
	"orientationd/internal/tracker"
)

// DefaultInterval matches the reference sensor delivery cadence.
const DefaultInterval = 200 * time.Millisecond

// OpenFunc opens the configured accelerometer source. A nil OpenFunc means
// the host has no motion capability; tracking start/stop become silent
// no-ops so the call surface stays uniform.
type OpenFunc func() (Source, error)

type Config struct {
	Open     OpenFunc
	Interval time.Duration
}

// Sampler polls one accelerometer source at a fixed interval, classifies
// each sample against the tracker's current label, and feeds the result
// back to the tracker. It is the only owner of the sensor subscription.
type Sampler struct {
	cfg     Config
	tracker *tracker.Tracker

	// onClassified, when set, observes every classified sample (metrics).
	onClassified func(orientation.Label)

	mu     sync.Mutex
	active bool
	sess   *session
}

// session is one sampling run. Stop waits on the session it ended, never on
// a successor started while the old run goroutine was still draining.
type session struct {
	src    Source
	stopCh chan struct{}
	done   chan struct{}
}

func New(cfg Config, tr *tracker.Tracker) *Sampler {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	return &Sampler{cfg: cfg, tracker: tr}
}

// Supported reports whether a motion source is configured at all.
func (s *Sampler) Supported() bool {
	return s.cfg.Open != nil
}

// SetClassifiedHook registers an observer for classified samples. Must be
// called before Start.
func (s *Sampler) SetClassifiedHook(fn func(orientation.Label)) {
	s.onClassified = fn
}

// Active reports whether the poll loop is running.
func (s *Sampler) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Start opens the source and begins polling. Idempotent: a second call while
// active changes nothing and opens no second subscription. A missing or
// failing source is not an error: tracking is an optional enhancement, so
// the failure is logged and Start still returns nil, leaving the sampler
// (and therefore the tracker) inactive.
func (s *Sampler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return nil
	}
	if s.cfg.Open == nil {
		return nil
	}
	src, err := s.cfg.Open()
	if err != nil {
		log.Printf("motion: sensor start failed, tracking disabled: %v", err)
		return nil
	}
	sess := &session{src: src, stopCh: make(chan struct{}), done: make(chan struct{})}
	s.sess = sess
	s.active = true
	s.tracker.Start()
	go s.run(sess)
	return nil
}

// Stop ends polling and releases the source. Idempotent and always safe,
// including alongside a concurrent Start: waiting happens on the ended
// session only, and the tracker stays up when a new session has already
// replaced this one.
func (s *Sampler) Stop() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	sess := s.sess
	s.active = false
	s.sess = nil
	close(sess.stopCh)
	s.mu.Unlock()

	<-sess.done
	_ = sess.src.Close()

	s.mu.Lock()
	superseded := s.active
	s.mu.Unlock()
	if !superseded {
		s.tracker.Stop()
	}
}

func (s *Sampler) run(sess *session) {
	defer close(sess.done)
	tick := time.NewTicker(s.cfg.Interval)
	defer tick.Stop()

	var readErrs int
	for {
		select {
		case <-sess.stopCh:
			return
		case <-tick.C:
			sample, err := sess.src.Read()
			if err != nil {
				readErrs++
				if readErrs == 1 || readErrs%50 == 0 {
					log.Printf("motion: sensor read failed (%d): %v", readErrs, err)
				}
				continue
			}
			readErrs = 0
			prev, _ := s.tracker.Current()
			label := orientation.Classify(sample.Ax, sample.Ay, prev)
			if s.onClassified != nil {
				s.onClassified(label)
			}
			s.tracker.OnSample(label)
		}
	}
}
