package display

import "orientationd/internal/orientation"

// Static is the backend for hosts with no rotatable UI (headless boxes,
// fixed kiosk panels). It always reports the natural rotation; lock and
// unlock resolve without doing anything.
type Static struct {
	natural orientation.Label
}

func NewStatic(natural orientation.Label) *Static {
	if !natural.Valid() {
		natural = orientation.Default
	}
	return &Static{natural: natural}
}

func (s *Static) Rotation() (int, error) { return 0, nil }

func (s *Static) Natural() orientation.Label { return s.natural }

func (s *Static) Apply(orientation.LockType) error { return nil }

func (s *Static) Clear() error { return nil }

func (s *Static) Watch(func()) (func(), error) { return func() {}, nil }
