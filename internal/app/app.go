// Package app provides the main application helpers for the emulator.
package app

import (
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// PrintInfo prints the information about the input file and the chosen mode.
func PrintInfo(logger *log.Logger, opts options.Program, programSize int) {
	if opts.Quiet {
		return
	}

	if opts.Listing {
		logger.Info("Disassembling CHIP-8 ROM",
			log.String("file", opts.Input),
			log.Int("size", programSize),
		)
		return
	}

	logger.Info("Running CHIP-8 ROM",
		log.String("file", opts.Input),
		log.Stringer("system", arch.CHIP8System),
		log.Int("size", programSize),
		log.Int("free", vm.MaxProgramSize-programSize),
		log.Int("cycles", opts.Cycles),
		log.Int("hz", opts.Hz),
		log.String("latch", opts.Latch),
	)
	if opts.Headless {
		logger.Info("Headless mode", log.Int("frames", opts.Frames))
	}
}

// PrintSummary logs statistics of a finished run.
func PrintSummary(logger *log.Logger, machine *vm.Machine, frames int) {
	logger.Debug("Emulation finished",
		log.Int("frames", frames),
		log.Hex("pc", machine.PC()),
	)
	if unknown := machine.UnknownOpcodes(); unknown > 0 {
		logger.Warn("Program executed unknown opcodes", log.Int("count", unknown))
	}
}
