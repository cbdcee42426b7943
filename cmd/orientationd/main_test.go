package main

import (
	"testing"

	"orientationd/internal/config"
	"orientationd/internal/orientation"
)

func TestNewDisplayBackend_StaticDefault(t *testing.T) {
	b, err := newDisplayBackend(config.DisplayConfig{Backend: "static", Natural: "landscape-primary"})
	if err != nil {
		t.Fatalf("newDisplayBackend: %v", err)
	}
	if got := b.Natural(); got != orientation.LandscapePrimary {
		t.Fatalf("natural=%v want landscape-primary", got)
	}
	r, err := b.Rotation()
	if err != nil || r != 0 {
		t.Fatalf("rotation=(%d,%v)", r, err)
	}
}

func TestNewSensorOpen_NoneMeansUnsupported(t *testing.T) {
	if fn := newSensorOpen(config.SensorConfig{Backend: "none"}); fn != nil {
		t.Fatalf("expected nil OpenFunc for backend none")
	}
}

func TestNewSensorOpen_SerialConfigured(t *testing.T) {
	fn := newSensorOpen(config.SensorConfig{Backend: "serial", SerialPort: "/dev/ttyUSB0", SerialBaud: 115200})
	if fn == nil {
		t.Fatalf("expected OpenFunc for serial backend")
	}
	// Opening will fail on hosts without the port; the sampler treats that
	// as a logged no-op, so here we only assert the wiring exists.
}
