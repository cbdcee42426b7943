package motion

import (
	"fmt"

	"orientationd/internal/i2c"
	"orientationd/internal/sensors/icm20948"
)

type I2CConfig struct {
	Bus  int
	Addr uint16
}

// OpenICM20948 opens the onboard accelerometer over i2c-dev.
func OpenICM20948(cfg I2CConfig) (Source, error) {
	if cfg.Bus == 0 {
		cfg.Bus = 1
	}
	if cfg.Addr == 0 {
		cfg.Addr = icm20948.DefaultAddress()
	}
	busPath := fmt.Sprintf("/dev/i2c-%d", cfg.Bus)
	bus, err := i2c.Open(busPath)
	if err != nil {
		return nil, fmt.Errorf("motion: open %s: %w", busPath, err)
	}
	dev, err := icm20948.New(bus.Dev(cfg.Addr))
	if err != nil {
		_ = bus.Close()
		return nil, fmt.Errorf("motion: imu init: %w", err)
	}
	return &imuSource{bus: bus, dev: dev}, nil
}

type imuSource struct {
	bus *i2c.Bus
	dev *icm20948.Device
}

func (s *imuSource) Read() (Sample, error) {
	a, err := s.dev.Read()
	if err != nil {
		return Sample{}, err
	}
	return Sample{Ax: a.Ax, Ay: a.Ay, Az: a.Az}, nil
}

func (s *imuSource) Close() error {
	return s.bus.Close()
}
