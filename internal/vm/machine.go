// Package vm implements the CHIP-8 virtual machine: its state, the
// instruction execution engine and the 60 Hz timers.
//
// The machine does not loop or schedule by itself. A driver calls Cycle
// for every instruction to execute, StepTimers at 60 Hz and applies input
// with SetKey between cycles. All methods must be called from the same
// goroutine, only the sound Signal may be read concurrently.
package vm

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// LatchPolicy controls when a key press is latched for the wait for key
// instruction.
type LatchPolicy int

const (
	// LatchEveryPress latches every key press, replacing an unconsumed key.
	LatchEveryPress LatchPolicy = iota
	// LatchWhenEmpty latches a key press only if no key is latched yet.
	LatchWhenEmpty
)

// ParseLatchPolicy returns the latch policy for the given name.
func ParseLatchPolicy(name string) (LatchPolicy, error) {
	switch strings.ToLower(name) {
	case "", "every":
		return LatchEveryPress, nil
	case "empty":
		return LatchWhenEmpty, nil
	default:
		return 0, fmt.Errorf("unsupported latch policy '%s'", name)
	}
}

// Config contains the machine options.
type Config struct {
	Latch LatchPolicy
	Rand  *rand.Rand // random number source, time seeded if nil
	Trace bool       // log every executed instruction at debug level
}

// Machine is a CHIP-8 virtual machine.
type Machine struct {
	logger *log.Logger
	config Config
	rand   *rand.Rand
	signal *Signal

	state          State
	unknownOpcodes int
}

// New returns a new machine in power on state.
func New(logger *log.Logger, config Config) *Machine {
	rnd := config.Rand
	if rnd == nil {
		seed := uint64(time.Now().UnixNano())
		rnd = rand.New(rand.NewPCG(seed, seed>>32))
	}

	m := &Machine{
		logger: logger,
		config: config,
		rand:   rnd,
		signal: &Signal{},
	}
	m.state.Reset()
	return m
}

// Reset returns the machine to power on state. The loaded program is erased.
func (m *Machine) Reset() {
	m.state.Reset()
	m.signal.set(false)
	m.unknownOpcodes = 0
}

// LoadProgram copies a raw ROM image to the program start address.
// Memory is left untouched if the image does not fit.
func (m *Machine) LoadProgram(data []byte) error {
	if len(data) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrProgramTooLarge, len(data), MaxProgramSize)
	}
	copy(m.state.Memory[ProgramStart:], data)
	return nil
}

// SetKey updates the state of a key of the keypad. A press also latches
// the key for a pending wait for key instruction according to the
// configured latch policy.
func (m *Machine) SetKey(index uint8, pressed bool) error {
	if index >= KeyCount {
		return fmt.Errorf("%w: %d", ErrInvalidKey, index)
	}

	m.state.Keypad[index] = pressed
	if !pressed {
		return nil
	}
	if m.config.Latch == LatchWhenEmpty && m.state.KeyLatch {
		return nil
	}
	m.state.Key = index
	m.state.KeyLatch = true
	return nil
}

// PendingKey returns the latched key and whether a key is latched.
func (m *Machine) PendingKey() (uint8, bool) {
	return m.state.Key, m.state.KeyLatch
}

// Framebuffer returns a copy of the display.
func (m *Machine) Framebuffer() Framebuffer {
	return m.state.Display
}

// Signal returns the sound signal of the machine that audio outputs read.
func (m *Machine) Signal() *Signal {
	return m.signal
}

// Snapshot returns a copy of the complete machine state.
func (m *Machine) Snapshot() State {
	return m.state
}

// PC returns the program counter.
func (m *Machine) PC() uint16 {
	return m.state.PC
}

// UnknownOpcodes returns the number of unknown opcodes executed since the last reset.
func (m *Machine) UnknownOpcodes() int {
	return m.unknownOpcodes
}
