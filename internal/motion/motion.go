// Package motion owns the accelerometer subscription and feeds classified
// samples to the orientation tracker.
package motion

// Sample is one device-frame acceleration reading in G (1.0 = gravity).
type Sample struct {
	Ax, Ay, Az float64
}

// Source delivers acceleration samples. Read returns the most recent sample
// available; implementations decide whether that blocks on hardware or
// returns a cached value. Close releases the underlying device and is safe
// to call once.
type Source interface {
	Read() (Sample, error)
	Close() error
}

// AxisCorrection flips raw axes into the canonical classifier frame
// (upright device: +Y; resting on its left edge: +X). Sensor mounting
// determines which flips a given device needs.
type AxisCorrection struct {
	InvertX bool
	InvertY bool
}

// Apply returns s with the configured sign corrections applied.
func (c AxisCorrection) Apply(s Sample) Sample {
	if c.InvertX {
		s.Ax = -s.Ax
	}
	if c.InvertY {
		s.Ay = -s.Ay
	}
	return s
}

type correctedSource struct {
	src Source
	cor AxisCorrection
}

func (c correctedSource) Read() (Sample, error) {
	s, err := c.src.Read()
	if err != nil {
		return Sample{}, err
	}
	return c.cor.Apply(s), nil
}

func (c correctedSource) Close() error { return c.src.Close() }

// Corrected wraps src so every sample passes through cor.
func Corrected(src Source, cor AxisCorrection) Source {
	if !cor.InvertX && !cor.InvertY {
		return src
	}
	return correctedSource{src: src, cor: cor}
}
