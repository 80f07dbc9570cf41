// Command as5600-monitor polls an AS5600 rotary position sensor and
// renders its registers as a terminal dashboard.
// Run with --mock to use the simulated chip (no I2C device required).
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pavver/as5600-go/as5600"
	"github.com/pavver/as5600-go/internal/config"
)

func main() {
	var (
		mock    = flag.Bool("mock", false, "use the simulated chip (no I2C device required)")
		cfgPath = flag.String("config", "", "YAML config file (optional)")
		busName = flag.String("bus", "", "I2C bus name, e.g. \"1\" (default: first available)")
		debug   = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	logLevel := slog.LevelInfo
	if *debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			slog.Error("cannot load config", "err", err)
			os.Exit(1)
		}
	}
	if *mock {
		cfg.Mock = true
	}
	if *busName != "" {
		cfg.Bus = *busName
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var bus as5600.Bus
	if cfg.Mock {
		slog.Info("using simulated AS5600")
		sim := as5600.NewSim()
		go driveSim(ctx, sim, cfg.PollInterval())
		bus = sim
	} else {
		slog.Info("opening I2C bus", "bus", cfg.Bus)
		i2cBus, err := as5600.OpenI2C(cfg.Bus)
		if err != nil {
			slog.Error("cannot open I2C bus", "err", err)
			os.Exit(1)
		}
		defer i2cBus.Close()
		bus = i2cBus
	}

	dev := as5600.NewWithAddress(bus, cfg.Address)

	ticker := time.NewTicker(cfg.PollInterval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			fmt.Println()
			slog.Info("shutting down")
			return
		case <-ticker.C:
			fmt.Print("\033[2J\033[1;1H") // clear screen, home cursor
			if err := renderDashboard(ctx, os.Stdout, dev); err != nil {
				slog.Error("dashboard read failed", "err", err)
			}
		}
	}
}

// driveSim feeds the simulated chip a slowly rotating angle with
// matching magnitude, gain and periodic magnet-health changes, so the
// dashboard has something to show. It runs concurrently with the
// dashboard reads to exercise the sim's locking.
func driveSim(ctx context.Context, sim *as5600.Sim, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	var angle uint16
	var step int
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			angle = (angle + 120) % 4096
			sim.SetRawAngle(angle)
			sim.SetAngle(angle)
			sim.SetMagnitude(angle/2 + 100)
			sim.SetAGC(uint8(angle / 16))
			switch (step / 2) % 4 {
			case 0:
				sim.SetStatus(as5600.MagnetStatus{Detected: true})
			case 1:
				sim.SetStatus(as5600.MagnetStatus{Detected: true, TooWeak: true})
			case 2:
				sim.SetStatus(as5600.MagnetStatus{Detected: true, TooStrong: true})
			default:
				sim.SetStatus(as5600.MagnetStatus{})
			}
			step++
		}
	}
}

// renderDashboard reads every register of interest and prints one frame.
func renderDashboard(ctx context.Context, w io.Writer, dev *as5600.Device) error {
	raw, err := dev.RawAngle(ctx)
	if err != nil {
		return err
	}
	filtered, err := dev.Angle(ctx)
	if err != nil {
		return err
	}
	status, err := dev.MagnetStatus(ctx)
	if err != nil {
		return err
	}
	rawStatus, err := dev.RawStatus(ctx)
	if err != nil {
		return err
	}
	magnitude, err := dev.Magnitude(ctx)
	if err != nil {
		return err
	}
	agc, err := dev.AGC(ctx)
	if err != nil {
		return err
	}
	burns, err := dev.BurnCount(ctx)
	if err != nil {
		return err
	}
	conf, err := dev.Config(ctx)
	if err != nil {
		return err
	}
	zpos, err := dev.ZeroPosition(ctx)
	if err != nil {
		return err
	}
	mpos, err := dev.MaxPosition(ctx)
	if err != nil {
		return err
	}
	mang, err := dev.MaxAngle(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "AS5600 register monitor")
	fmt.Fprintln(w, strings.Repeat("-", 62))
	fmt.Fprintf(w, "Raw angle  %4d / 4095 %3.0f%%  [%s]\n", raw, pct(raw), bar(raw, 30))
	fmt.Fprintf(w, "Filtered   %4d / 4095 %3.0f%%  [%s]\n", filtered, pct(filtered), bar(filtered, 30))
	fmt.Fprintln(w, strings.Repeat("-", 62))
	fmt.Fprintf(w, "Magnet     detected=%-5v too_weak=%-5v too_strong=%-5v (0x%02X)\n",
		status.Detected, status.TooWeak, status.TooStrong, rawStatus)
	fmt.Fprintf(w, "Field      magnitude=%-4d agc=%d\n", magnitude, agc)
	fmt.Fprintln(w, strings.Repeat("-", 62))
	fmt.Fprintf(w, "Config     power=%s hysteresis=%s output=%s\n",
		conf.PowerMode, conf.Hysteresis, conf.OutputStage)
	fmt.Fprintf(w, "           pwm=%s slow_filter=%s fast_filter=%s\n",
		conf.PwmFrequency, conf.SlowFilter, conf.FastFilterThreshold)
	fmt.Fprintf(w, "           watchdog=%v\n", conf.Watchdog)
	fmt.Fprintln(w, strings.Repeat("-", 62))
	fmt.Fprintf(w, "Ranges     zpos=%-4d mpos=%-4d mang=%-4d burns=%d/3\n", zpos, mpos, mang, burns)
	return nil
}

func pct(v uint16) float64 {
	return float64(v) / 4095.0 * 100.0
}

// bar renders a proportional fill of width cells for a 12-bit value.
func bar(v uint16, width int) string {
	filled := int(float64(v) / 4095.0 * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat("#", filled) + strings.Repeat(" ", width-filled)
}
