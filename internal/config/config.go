package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"orientationd/internal/orientation"
)

type Config struct {
	API     APIConfig     `yaml:"api"`
	Sensor  SensorConfig  `yaml:"sensor"`
	Display DisplayConfig `yaml:"display"`
}

type APIConfig struct {
	Listen string `yaml:"listen"`
}

type SensorConfig struct {
	// Backend selects the accelerometer source: "i2c", "serial" or "none".
	Backend        string        `yaml:"backend"`
	I2CBus         int           `yaml:"i2c_bus"`
	I2CAddr        uint16        `yaml:"i2c_addr"`
	SerialPort     string        `yaml:"serial_port"`
	SerialBaud     int           `yaml:"serial_baud"`
	SampleInterval time.Duration `yaml:"sample_interval"`

	// Sign correction into the canonical classifier frame, per mounting.
	InvertX bool `yaml:"invert_x"`
	InvertY bool `yaml:"invert_y"`
}

type DisplayConfig struct {
	// Backend selects the UI orientation backend: "fbcon" or "static".
	Backend string `yaml:"backend"`
	// Natural is the panel's natural orientation label.
	Natural string `yaml:"natural"`
}

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}

	if cfg.API.Listen == "" {
		cfg.API.Listen = ":8787"
	}

	switch cfg.Sensor.Backend {
	case "":
		cfg.Sensor.Backend = "none"
	case "none", "i2c", "serial":
	default:
		return Config{}, fmt.Errorf("sensor.backend must be i2c, serial or none, got %q", cfg.Sensor.Backend)
	}
	if cfg.Sensor.Backend == "serial" && cfg.Sensor.SerialPort == "" {
		return Config{}, fmt.Errorf("sensor.serial_port is required when sensor.backend is serial")
	}
	if cfg.Sensor.I2CBus <= 0 {
		cfg.Sensor.I2CBus = 1
	}
	if cfg.Sensor.I2CAddr == 0 {
		cfg.Sensor.I2CAddr = 0x68
	}
	if cfg.Sensor.SerialBaud <= 0 {
		cfg.Sensor.SerialBaud = 115200
	}
	if cfg.Sensor.SampleInterval <= 0 {
		cfg.Sensor.SampleInterval = 200 * time.Millisecond
	}

	switch cfg.Display.Backend {
	case "":
		cfg.Display.Backend = "static"
	case "static", "fbcon":
	default:
		return Config{}, fmt.Errorf("display.backend must be fbcon or static, got %q", cfg.Display.Backend)
	}
	if cfg.Display.Natural == "" {
		cfg.Display.Natural = string(orientation.Default)
	}
	if !orientation.Label(cfg.Display.Natural).Valid() {
		return Config{}, fmt.Errorf("display.natural must be one of the four orientation labels, got %q", cfg.Display.Natural)
	}

	return cfg, nil
}
