package display

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"orientationd/internal/orientation"
)

func writeRotateFile(t *testing.T, val string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rotate")
	if err := os.WriteFile(path, []byte(val), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestFbcon_ReadsRotation(t *testing.T) {
	path := writeRotateFile(t, "1\n")
	f, err := NewFbcon(FbconConfig{Path: path, Natural: orientation.PortraitPrimary})
	if err != nil {
		t.Fatalf("NewFbcon: %v", err)
	}
	r, err := f.Rotation()
	if err != nil || r != 1 {
		t.Fatalf("Rotation=(%d,%v) want=(1,nil)", r, err)
	}
}

func TestFbcon_RejectsBadNode(t *testing.T) {
	if _, err := NewFbcon(FbconConfig{Path: filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Fatalf("expected error for missing node")
	}
	path := writeRotateFile(t, "garbage\n")
	if _, err := NewFbcon(FbconConfig{Path: path}); err == nil {
		t.Fatalf("expected error for unparsable node")
	}
	path = writeRotateFile(t, "7\n")
	if _, err := NewFbcon(FbconConfig{Path: path}); err == nil {
		t.Fatalf("expected error for out-of-range node")
	}
}

func TestFbcon_ApplyWritesRotation(t *testing.T) {
	path := writeRotateFile(t, "0\n")
	f, err := NewFbcon(FbconConfig{Path: path, Natural: orientation.PortraitPrimary})
	if err != nil {
		t.Fatalf("NewFbcon: %v", err)
	}

	if err := f.Apply(orientation.LockLandscape); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if r, _ := f.Rotation(); r != 1 {
		t.Fatalf("rotation=%d want=1", r)
	}

	// "any" leaves the current rotation alone.
	if err := f.Apply(orientation.LockAny); err != nil {
		t.Fatalf("Apply any: %v", err)
	}
	if r, _ := f.Rotation(); r != 1 {
		t.Fatalf("rotation=%d want=1 after any", r)
	}

	if err := f.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if r, _ := f.Rotation(); r != 0 {
		t.Fatalf("rotation=%d want=0 after clear", r)
	}
}

func TestFbcon_WatchReportsChanges(t *testing.T) {
	path := writeRotateFile(t, "0\n")
	f, err := NewFbcon(FbconConfig{Path: path, Natural: orientation.PortraitPrimary, PollInterval: time.Millisecond})
	if err != nil {
		t.Fatalf("NewFbcon: %v", err)
	}

	changed := make(chan struct{}, 1)
	stop, err := f.Watch(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer stop()

	if err := os.WriteFile(path, []byte("2\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatalf("no change notification")
	}

	stop()
	stop() // idempotent
}
