package orientation

import "math"

// Classification works on device-frame acceleration expressed in G
// (1.0 = gravity). Sources that deliver raw sensor units (e.g. m/s^2)
// must rescale before calling Classify.
//
// Sign convention, applied uniformly: with the device upright, gravity pulls
// along +Y (portrait-primary); tilted onto its left edge, gravity pulls along
// +X (landscape-primary). Platform sources whose hardware frame disagrees
// correct the sign before calling in, never in here.
const classifyThresholdG = 0.5

// Classify maps one accelerometer sample to an orientation label.
//
// Below-threshold samples (device near flat, or mid-rotation) return prev
// unchanged; this hysteresis is what keeps borderline samples from flapping.
// Pure function: no state, no I/O.
func Classify(ax, ay float64, prev Label) Label {
	absX := math.Abs(ax)
	absY := math.Abs(ay)

	if absX > classifyThresholdG && absX > absY {
		if ax > 0 {
			return LandscapePrimary
		}
		return LandscapeSecondary
	}
	if absY > classifyThresholdG {
		if ay > 0 {
			return PortraitPrimary
		}
		return PortraitSecondary
	}
	return prev
}
