package motion

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"go.bug.st/serial"
)

// Serial accelerometer source. External IMU boards stream one sample per
// line over a serial port: three whitespace- or comma-separated floats in G,
// canonical device frame ("0.02 0.98 0.05"). Lines starting with '#' and
// lines that do not parse are skipped.

type SerialConfig struct {
	Port string
	Baud int
}

// OpenSerial opens the port and starts a reader goroutine that keeps the
// most recent parsed sample. Read never blocks on the port; it returns the
// cached sample, or an error until the first line arrives.
func OpenSerial(cfg SerialConfig) (Source, error) {
	if cfg.Port == "" {
		return nil, fmt.Errorf("motion: serial port not configured")
	}
	if cfg.Baud <= 0 {
		cfg.Baud = 115200
	}
	mode := &serial.Mode{
		BaudRate: cfg.Baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(cfg.Port, mode)
	if err != nil {
		return nil, fmt.Errorf("motion: open serial %s: %w", cfg.Port, err)
	}
	return newSerialSource(port), nil
}

type serialSource struct {
	rc io.ReadCloser

	mu       sync.Mutex
	last     Sample
	haveLast bool
	readErr  error

	closeOnce sync.Once
	done      chan struct{}
}

func newSerialSource(rc io.ReadCloser) *serialSource {
	s := &serialSource{rc: rc, done: make(chan struct{})}
	go s.monitor()
	return s
}

func (s *serialSource) monitor() {
	defer close(s.done)
	scan := bufio.NewScanner(s.rc)
	for scan.Scan() {
		sample, ok := parseSampleLine(scan.Text())
		if !ok {
			continue
		}
		s.mu.Lock()
		s.last = sample
		s.haveLast = true
		s.mu.Unlock()
	}
	s.mu.Lock()
	if err := scan.Err(); err != nil {
		s.readErr = fmt.Errorf("motion: serial read: %w", err)
	} else {
		s.readErr = io.EOF
	}
	s.mu.Unlock()
}

func (s *serialSource) Read() (Sample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.haveLast {
		return s.last, nil
	}
	if s.readErr != nil {
		return Sample{}, s.readErr
	}
	return Sample{}, fmt.Errorf("motion: no serial sample yet")
}

func (s *serialSource) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = s.rc.Close()
		<-s.done
	})
	return err
}

func parseSampleLine(line string) (Sample, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Sample{}, false
	}
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})
	if len(fields) < 3 {
		return Sample{}, false
	}
	var v [3]float64
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return Sample{}, false
		}
		v[i] = f
	}
	return Sample{Ax: v[0], Ay: v[1], Az: v[2]}, true
}
