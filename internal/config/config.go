// Package config handles application configuration and setup
package config

import (
	"fmt"
	"math/rand/v2"

	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateMachineConfig converts the program options to the machine settings.
func CreateMachineConfig(opts options.Program) (vm.Config, error) {
	latch, err := vm.ParseLatchPolicy(opts.Latch)
	if err != nil {
		return vm.Config{}, fmt.Errorf("parsing latch policy: %w", err)
	}

	cfg := vm.Config{
		Latch: latch,
		Trace: opts.Trace,
	}
	if opts.Seed != 0 {
		cfg.Rand = rand.New(rand.NewPCG(opts.Seed, opts.Seed))
	}
	return cfg, nil
}

// CreateEmulatorConfig converts the program options to the driver loop settings.
func CreateEmulatorConfig(opts options.Program) emulator.Config {
	return emulator.Config{
		CyclesPerFrame: opts.Cycles,
		FrameRate:      opts.Hz,
		FrameLimit:     opts.Frames,
		Unthrottled:    opts.Headless,
	}
}
