// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/internal/app"
	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/listing"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/terminal"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile loads the ROM and either writes its listing or runs it.
// Listings and the final display of headless runs are written to output.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, output io.Writer) error {
	program, err := loader.New(logger).Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	app.PrintInfo(logger, opts, len(program))

	if opts.Listing {
		w := listing.New(output, listing.Options{
			HexComments:    !opts.NoHexComments,
			OffsetComments: !opts.NoOffsets,
		})
		if err := w.Write(program); err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
		return nil
	}

	return runProgram(ctx, logger, opts, program, output)
}

func runProgram(ctx context.Context, logger *log.Logger, opts options.Program, program []byte, output io.Writer) (rerr error) {
	machineConfig, err := config.CreateMachineConfig(opts)
	if err != nil {
		return fmt.Errorf("creating machine config: %w", err)
	}
	machine := vm.New(logger, machineConfig)
	if err := loadMachine(machine, program); err != nil {
		return err
	}

	var emulatorOptions []emulator.Option
	if opts.Wav != "" {
		recorder, err := audio.NewRecorder(logger, opts.Wav, opts.Hz)
		if err != nil {
			return fmt.Errorf("creating wav recorder: %w", err)
		}
		defer func() {
			if err := recorder.Close(); err != nil && rerr == nil {
				rerr = fmt.Errorf("writing wav file: %w", err)
			}
		}()
		emulatorOptions = append(emulatorOptions, emulator.WithFrameSink(recorder))
	}

	if opts.Headless {
		return runHeadless(ctx, logger, opts, machine, output, emulatorOptions)
	}
	return runInteractive(ctx, logger, opts, machine, emulatorOptions)
}

// loadMachine resets the machine to power on state and loads the program.
func loadMachine(machine *vm.Machine, program []byte) error {
	machine.Reset()
	if err := machine.LoadProgram(program); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	return nil
}

// runHeadless runs the frame limit as fast as possible and prints the final display.
func runHeadless(ctx context.Context, logger *log.Logger, opts options.Program,
	machine *vm.Machine, output io.Writer, emulatorOptions []emulator.Option) error {

	emu, err := emulator.New(logger, machine, config.CreateEmulatorConfig(opts), emulatorOptions...)
	if err != nil {
		return fmt.Errorf("creating emulator: %w", err)
	}

	runErr := emu.Run(ctx)
	app.PrintSummary(logger, machine, emu.Frames())

	if err := terminal.NewTextRenderer(output).Render(machine.Framebuffer()); err != nil {
		return fmt.Errorf("printing display: %w", err)
	}
	return runErr
}

// runInteractive runs the program in the terminal until the user quits.
func runInteractive(ctx context.Context, logger *log.Logger, opts options.Program,
	machine *vm.Machine, emulatorOptions []emulator.Option) error {

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	input := terminal.NewInput(logger, int(os.Stdin.Fd()), terminal.DefaultHoldTime, cancel)
	if err := input.Start(); err != nil {
		return fmt.Errorf("starting terminal input: %w", err)
	}
	defer input.Stop()

	renderer := terminal.NewRenderer(os.Stdout, int(os.Stdout.Fd()))
	if err := renderer.Start(); err != nil {
		return fmt.Errorf("starting renderer: %w", err)
	}
	defer func() { _ = renderer.Close() }()

	if !opts.Mute {
		beeper, err := audio.NewBeeper(machine.Signal())
		if err != nil {
			logger.Warn("Sound output not available", log.Err(err))
		} else {
			beeper.Start()
			defer func() { _ = beeper.Close() }()
		}
	}

	emulatorOptions = append(emulatorOptions,
		emulator.WithInput(input),
		emulator.WithRenderer(renderer),
	)
	emu, err := emulator.New(logger, machine, config.CreateEmulatorConfig(opts), emulatorOptions...)
	if err != nil {
		return fmt.Errorf("creating emulator: %w", err)
	}

	runErr := emu.Run(ctx)
	app.PrintSummary(logger, machine, emu.Frames())
	return runErr
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("retrochip8", log.String("version", buildinfo.Version(version, commit, date)))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
