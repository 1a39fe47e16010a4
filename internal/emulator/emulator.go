// Package emulator drives a CHIP-8 machine at a fixed frame rate and
// connects it to its input, display and sound collaborators.
package emulator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

var errInvalidConfig = errors.New("invalid emulator configuration")

// Config contains the timing settings of the driver loop.
type Config struct {
	CyclesPerFrame int // instructions executed per frame at most
	FrameRate      int // frames per second, independent of the 60 Hz timer rate
	FrameLimit     int // stop after this many frames, 0 runs until cancelled
	Unthrottled    bool
}

// KeyEvent is a key press or release of the hex keypad.
type KeyEvent struct {
	Key     uint8
	Pressed bool
}

// Input provides keypad events.
type Input interface {
	Events() <-chan KeyEvent
}

// Renderer presents a framebuffer.
type Renderer interface {
	Render(fb vm.Framebuffer) error
}

// FrameSink receives the sound signal state once per frame.
type FrameSink interface {
	Frame(active bool) error
}

// Emulator runs a machine frame by frame.
type Emulator struct {
	logger  *log.Logger
	config  Config
	machine *vm.Machine

	input    Input
	renderer Renderer
	sinks    []FrameSink

	frames     int
	timerPhase int // accumulated timer ticks, scaled by the frame rate
	rendered   bool
	last       vm.Framebuffer
}

// Option configures optional collaborators of the emulator.
type Option func(*Emulator)

// WithInput sets the keypad event source.
func WithInput(input Input) Option {
	return func(e *Emulator) {
		e.input = input
	}
}

// WithRenderer sets the display output.
func WithRenderer(renderer Renderer) Option {
	return func(e *Emulator) {
		e.renderer = renderer
	}
}

// WithFrameSink adds a receiver of the per frame sound state.
func WithFrameSink(sink FrameSink) Option {
	return func(e *Emulator) {
		e.sinks = append(e.sinks, sink)
	}
}

// New returns a new emulator for the given machine.
func New(logger *log.Logger, machine *vm.Machine, config Config, opts ...Option) (*Emulator, error) {
	if config.CyclesPerFrame <= 0 {
		return nil, fmt.Errorf("%w: cycles per frame %d", errInvalidConfig, config.CyclesPerFrame)
	}
	if config.FrameRate <= 0 {
		return nil, fmt.Errorf("%w: frame rate %d", errInvalidConfig, config.FrameRate)
	}

	e := &Emulator{
		logger:  logger,
		config:  config,
		machine: machine,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Frames returns the number of frames executed so far.
func (e *Emulator) Frames() int {
	return e.frames
}

// Run executes frames until the context is cancelled, the machine faults or
// the frame limit is reached. Reaching the frame limit returns nil.
func (e *Emulator) Run(ctx context.Context) error {
	var tick <-chan time.Time
	if !e.config.Unthrottled {
		ticker := time.NewTicker(time.Second / time.Duration(e.config.FrameRate))
		defer ticker.Stop()
		tick = ticker.C
	}

	for e.config.FrameLimit == 0 || e.frames < e.config.FrameLimit {
		if tick != nil {
			select {
			case <-ctx.Done():
				return fmt.Errorf("running emulator: %w", ctx.Err())
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return fmt.Errorf("running emulator: %w", err)
		}

		if err := e.Frame(); err != nil {
			return err
		}
	}

	e.logger.Debug("Frame limit reached", log.Int("frames", e.frames))
	return nil
}

// Frame executes a single frame: pending input is applied, up to the
// configured number of instructions run, the timers step as often as the
// frame covers at their 60 Hz rate and the outputs are updated.
func (e *Emulator) Frame() error {
	e.drainInput()

	for range e.config.CyclesPerFrame {
		status, err := e.machine.Cycle()
		if err != nil {
			return fmt.Errorf("executing frame %d: %w", e.frames, err)
		}
		if status == vm.WaitingForKey {
			break
		}
	}

	e.stepTimers()

	active := e.machine.Signal().Active()
	for _, sink := range e.sinks {
		if err := sink.Frame(active); err != nil {
			return fmt.Errorf("writing sound frame: %w", err)
		}
	}

	if err := e.render(); err != nil {
		return err
	}

	e.frames++
	return nil
}

// stepTimers steps the timers once for every full 60 Hz period that
// elapsed with this frame.
func (e *Emulator) stepTimers() {
	e.timerPhase += vm.TimerRate
	for e.timerPhase >= e.config.FrameRate {
		e.timerPhase -= e.config.FrameRate
		e.machine.StepTimers()
	}
}

// Flush renders the current framebuffer even if it did not change.
func (e *Emulator) Flush() error {
	e.rendered = false
	return e.render()
}

func (e *Emulator) render() error {
	if e.renderer == nil {
		return nil
	}

	fb := e.machine.Framebuffer()
	if e.rendered && fb == e.last {
		return nil
	}
	if err := e.renderer.Render(fb); err != nil {
		return fmt.Errorf("rendering frame: %w", err)
	}
	e.last = fb
	e.rendered = true
	return nil
}

// drainInput applies all queued key events without blocking.
func (e *Emulator) drainInput() {
	if e.input == nil {
		return
	}

	events := e.input.Events()
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := e.machine.SetKey(event.Key, event.Pressed); err != nil {
				e.logger.Warn("Ignoring key event", log.Uint8("key", event.Key), log.Err(err))
			}
		default:
			return
		}
	}
}
