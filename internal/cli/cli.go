// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
)

// ParseFlags parses the command line arguments, args[0] is the program name.
func ParseFlags(args []string, output io.Writer) (options.Program, error) {
	flags := flag.NewFlagSet(args[0], flag.ContinueOnError)
	flags.SetOutput(output)
	var opts options.Program
	readOptionFlags(flags, &opts)

	if err := flags.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, &UsageError{flags: flags, output: output}
		}
		return opts, &UsageError{flags: flags, output: output, msg: err.Error()}
	}

	rest := flags.Args()
	if err := validateArgs(rest); err != nil {
		err.flags = flags
		err.output = output
		return opts, err
	}
	if len(rest) > 0 {
		opts.Input = rest[0]
	}
	if opts.Input == "" {
		return opts, &UsageError{flags: flags, output: output}
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags  *flag.FlagSet
	output io.Writer
	msg    string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage information and all flags.
func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		_, _ = fmt.Fprintf(e.output, "%s\n\n", e.msg)
	}
	_, _ = fmt.Fprintf(e.output, "usage: retrochip8 [options] <ROM file>\n\n")
	e.flags.PrintDefaults()
	_, _ = fmt.Fprintln(e.output)
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) *UsageError {
	for i, arg := range args {
		if i > 0 && strings.HasPrefix(arg, "-") {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	if len(args) > 1 {
		return &UsageError{msg: "only a single ROM file can be run"}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Latch = strings.ToLower(opts.Latch)

	validPolicies := []string{"every", "empty"}
	found := false
	for _, valid := range validPolicies {
		if opts.Latch == valid {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("unsupported latch policy: %s. Valid options: %s",
			opts.Latch, strings.Join(validPolicies, ", "))
	}

	if opts.Cycles <= 0 {
		return fmt.Errorf("cycles per frame must be positive, got %d", opts.Cycles)
	}
	if opts.Hz <= 0 {
		return fmt.Errorf("frame rate must be positive, got %d", opts.Hz)
	}
	if opts.Frames < 0 {
		return fmt.Errorf("frame limit can not be negative, got %d", opts.Frames)
	}

	// a headless run without limit would never end
	if opts.Headless && opts.Frames == 0 {
		return errors.New("headless mode requires a frame limit set with -frames")
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Wav, "wav", "", "name of a .wav file to record the sound output to")
	flags.IntVar(&opts.Cycles, "cycles", options.DefaultCycles, "instructions executed per frame")
	flags.IntVar(&opts.Hz, "hz", options.DefaultHz, "frames per second, the timers always count down at 60 Hz")
	flags.IntVar(&opts.Frames, "frames", 0, "stop after the given number of frames, 0 runs until quit")
	flags.StringVar(&opts.Latch, "latch", options.DefaultLatch, "key latch policy for wait for key instructions (every/empty)")
	flags.Uint64Var(&opts.Seed, "seed", 0, "random number generator seed, 0 uses a time based seed")
	flags.BoolVar(&opts.Headless, "headless", false, "run without terminal and sound and print the final display")
	flags.BoolVar(&opts.Mute, "mute", false, "disable the sound output")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, requires -debug")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Listing, "l", false, "print a disassembly listing of the ROM instead of running it")
	flags.BoolVar(&opts.NoHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in listing comments")
	flags.BoolVar(&opts.NoOffsets, "nooffsets", false, "do not output addresses in listing comments")
}
