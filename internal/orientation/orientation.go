// Package orientation defines the canonical screen-orientation labels and the
// pure accelerometer classifier that maps a gravity vector onto them.
package orientation

import "fmt"

// Label is one of the four canonical screen orientations. Every mapping in
// this module is total onto this set; there is no "unknown" value.
type Label string

const (
	PortraitPrimary    Label = "portrait-primary"
	PortraitSecondary  Label = "portrait-secondary"
	LandscapePrimary   Label = "landscape-primary"
	LandscapeSecondary Label = "landscape-secondary"
)

// Default is the label used whenever a platform state cannot be mapped.
const Default = PortraitPrimary

// Valid reports whether l is one of the four canonical labels.
func (l Label) Valid() bool {
	switch l {
	case PortraitPrimary, PortraitSecondary, LandscapePrimary, LandscapeSecondary:
		return true
	}
	return false
}

// IsLandscape reports whether l is one of the two landscape labels.
func (l Label) IsLandscape() bool {
	return l == LandscapePrimary || l == LandscapeSecondary
}

// LockType is the orientation constraint accepted by lock requests: any of
// the four labels, or one of the aggregate values.
type LockType string

const (
	LockAny       LockType = "any"
	LockNatural   LockType = "natural"
	LockLandscape LockType = "landscape"
	LockPortrait  LockType = "portrait"
)

// ParseLockType validates a lock request orientation string.
func ParseLockType(s string) (LockType, error) {
	lt := LockType(s)
	switch lt {
	case LockAny, LockNatural, LockLandscape, LockPortrait:
		return lt, nil
	}
	if Label(s).Valid() {
		return lt, nil
	}
	return "", fmt.Errorf("orientation: unknown lock type %q", s)
}

// ParseLabel maps s to a canonical label, falling back to Default for
// anything unrecognized.
func ParseLabel(s string) Label {
	if l := Label(s); l.Valid() {
		return l
	}
	return Default
}

// FromRotation maps a display rotation, in quarter turns counted clockwise
// from the device's natural orientation, to a label. The natural orientation
// of the panel is supplied by the platform backend. Out-of-range rotations
// map to Default.
func FromRotation(quarterTurns int, natural Label) Label {
	portrait := [4]Label{PortraitPrimary, LandscapePrimary, PortraitSecondary, LandscapeSecondary}
	landscape := [4]Label{LandscapePrimary, PortraitSecondary, LandscapeSecondary, PortraitPrimary}
	if quarterTurns < 0 || quarterTurns > 3 {
		return Default
	}
	if natural.IsLandscape() {
		return landscape[quarterTurns]
	}
	return portrait[quarterTurns]
}
