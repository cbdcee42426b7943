// Package display abstracts the host's UI-orientation state: the rotation
// the interface is currently rendered in, change notification, and the
// OS-level orientation constraint.
package display

import "orientationd/internal/orientation"

// Backend is what a platform must provide. Rotation is in quarter turns
// clockwise from the panel's natural orientation. Apply sets the allowed
// orientation constraint; Clear removes it. Watch delivers a callback on
// every rotation change until the returned stop function is called.
//
// Hosts without an orientation constraint implement Apply and Clear as
// silent no-ops so the call surface stays uniform.
type Backend interface {
	Rotation() (int, error)
	Natural() orientation.Label
	Apply(lt orientation.LockType) error
	Clear() error
	Watch(fn func()) (stop func(), err error)
}

// rotationForLock picks the concrete rotation a single-rotation backend
// renders for a lock constraint. Aggregate constraints pick their primary
// member; "any" has no concrete rotation (ok=false).
func rotationForLock(lt orientation.LockType, natural orientation.Label) (int, bool) {
	if l := orientation.Label(string(lt)); l.Valid() {
		for r := 0; r < 4; r++ {
			if orientation.FromRotation(r, natural) == l {
				return r, true
			}
		}
	}
	switch lt {
	case orientation.LockNatural:
		return 0, true
	case orientation.LockPortrait:
		return rotationForLock(orientation.LockType(orientation.PortraitPrimary), natural)
	case orientation.LockLandscape:
		return rotationForLock(orientation.LockType(orientation.LandscapePrimary), natural)
	}
	return 0, false
}
