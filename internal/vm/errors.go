package vm

import (
	"errors"
	"fmt"
)

var (
	// ErrProgramTooLarge is returned when a ROM does not fit into program space.
	ErrProgramTooLarge = errors.New("program too large")
	// ErrStackOverflow is returned when a call is made with a full stack.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned when a return is made with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrMemoryBounds is returned when an access crosses the end of memory.
	ErrMemoryBounds = errors.New("memory access out of bounds")
	// ErrInvalidKey is returned for key indexes outside of the keypad.
	ErrInvalidKey = errors.New("invalid key index")
)

// Fault describes an instruction that could not be executed. The machine
// state is left as it was before the faulting cycle.
type Fault struct {
	Address uint16 // address of the faulting instruction
	Opcode  uint16
	Err     error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("fault at $%04X (opcode $%04X): %s", f.Address, f.Opcode, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// checkRange returns an error if length bytes starting at address
// are not all inside of memory. Empty ranges are always valid.
func checkRange(address uint16, length int) error {
	if length > 0 && int(address)+length > MemorySize {
		return fmt.Errorf("%w: $%04X+%d", ErrMemoryBounds, address, length)
	}
	return nil
}
