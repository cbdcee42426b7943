package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orientationd/internal/config"
	"orientationd/internal/display"
	"orientationd/internal/engine"
	"orientationd/internal/motion"
	"orientationd/internal/orientation"
	"orientationd/internal/web"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "./orientationd.yaml", "Path to YAML config")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	backend, err := newDisplayBackend(cfg.Display)
	if err != nil {
		log.Fatalf("display backend init failed: %v", err)
	}

	eng, err := engine.New(backend, motion.Config{
		Open:     newSensorOpen(cfg.Sensor),
		Interval: cfg.Sensor.SampleInterval,
	})
	if err != nil {
		log.Fatalf("engine init failed: %v", err)
	}
	defer eng.Close()

	srv := &http.Server{
		Addr:    cfg.API.Listen,
		Handler: web.New(eng).Handler(),
	}

	log.Printf("orientationd starting")
	log.Printf("api listen=%s sensor=%s display=%s", cfg.API.Listen, cfg.Sensor.Backend, cfg.Display.Backend)
	if !eng.SupportsMotionTracking() {
		log.Printf("no motion sensor configured; tracking requests are no-ops")
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server stopped: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Printf("orientationd stopping")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}

func newDisplayBackend(cfg config.DisplayConfig) (display.Backend, error) {
	natural := orientation.ParseLabel(cfg.Natural)
	switch cfg.Backend {
	case "fbcon":
		return display.NewFbcon(display.FbconConfig{Natural: natural})
	default:
		return display.NewStatic(natural), nil
	}
}

// newSensorOpen returns nil when no sensor is configured, which the sampler
// treats as "motion tracking unsupported on this host".
func newSensorOpen(cfg config.SensorConfig) motion.OpenFunc {
	cor := motion.AxisCorrection{InvertX: cfg.InvertX, InvertY: cfg.InvertY}
	switch cfg.Backend {
	case "i2c":
		return func() (motion.Source, error) {
			src, err := motion.OpenICM20948(motion.I2CConfig{Bus: cfg.I2CBus, Addr: cfg.I2CAddr})
			if err != nil {
				return nil, err
			}
			return motion.Corrected(src, cor), nil
		}
	case "serial":
		return func() (motion.Source, error) {
			src, err := motion.OpenSerial(motion.SerialConfig{Port: cfg.SerialPort, Baud: cfg.SerialBaud})
			if err != nil {
				return nil, err
			}
			return motion.Corrected(src, cor), nil
		}
	default:
		return nil
	}
}
