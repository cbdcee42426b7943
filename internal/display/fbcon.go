package display

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"orientationd/internal/orientation"
)

const fbconRotatePath = "/sys/class/graphics/fbcon/rotate"

// Fbcon drives the Linux framebuffer console rotation via sysfs. The file
// holds a single digit 0..3, quarter turns clockwise. Writes require the
// process to own the file (typically root on an appliance).
//
// This backend renders exactly one rotation at a time, so aggregate lock
// constraints apply their primary member and "any" leaves the rotation
// untouched.
type Fbcon struct {
	path    string
	natural orientation.Label
	poll    time.Duration

	mu     sync.Mutex
	stopCh chan struct{}
}

type FbconConfig struct {
	// Path overrides the sysfs node, for tests.
	Path    string
	Natural orientation.Label
	// PollInterval controls how often Watch re-reads the rotation.
	PollInterval time.Duration
}

func NewFbcon(cfg FbconConfig) (*Fbcon, error) {
	if cfg.Path == "" {
		cfg.Path = fbconRotatePath
	}
	if !cfg.Natural.Valid() {
		cfg.Natural = orientation.Default
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 500 * time.Millisecond
	}
	f := &Fbcon{path: cfg.Path, natural: cfg.Natural, poll: cfg.PollInterval}
	if _, err := f.Rotation(); err != nil {
		return nil, fmt.Errorf("display: fbcon rotate unavailable: %w", err)
	}
	return f, nil
}

func (f *Fbcon) Rotation() (int, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		return 0, fmt.Errorf("display: bad fbcon rotate value %q: %w", strings.TrimSpace(string(b)), err)
	}
	if v < 0 || v > 3 {
		return 0, fmt.Errorf("display: fbcon rotate out of range: %d", v)
	}
	return v, nil
}

func (f *Fbcon) Natural() orientation.Label { return f.natural }

func (f *Fbcon) Apply(lt orientation.LockType) error {
	r, ok := rotationForLock(lt, f.natural)
	if !ok {
		// "any": unconstrained, keep whatever is rendered now.
		return nil
	}
	return f.writeRotation(r)
}

func (f *Fbcon) Clear() error {
	return f.writeRotation(0)
}

func (f *Fbcon) writeRotation(r int) error {
	if err := os.WriteFile(f.path, []byte(strconv.Itoa(r)+"\n"), 0o644); err != nil {
		return fmt.Errorf("display: set fbcon rotate: %w", err)
	}
	return nil
}

// Watch polls the rotate node and calls fn whenever the value changes.
// Sysfs gives no change notification, so polling is the contract here.
func (f *Fbcon) Watch(fn func()) (func(), error) {
	last, err := f.Rotation()
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	if f.stopCh != nil {
		f.mu.Unlock()
		return nil, fmt.Errorf("display: fbcon already watched")
	}
	stopCh := make(chan struct{})
	f.stopCh = stopCh
	f.mu.Unlock()

	go func() {
		tick := time.NewTicker(f.poll)
		defer tick.Stop()
		for {
			select {
			case <-stopCh:
				return
			case <-tick.C:
				cur, err := f.Rotation()
				if err != nil {
					continue
				}
				if cur != last {
					last = cur
					fn()
				}
			}
		}
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			close(stopCh)
			f.mu.Lock()
			f.stopCh = nil
			f.mu.Unlock()
		})
	}
	return stop, nil
}
