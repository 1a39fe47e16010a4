package vm

// Framebuffer is the monochrome display, one cell per pixel holding 0 or 1,
// stored row-major with the origin in the top left corner.
type Framebuffer [DisplayWidth * DisplayHeight]uint8

// Pixel returns whether the pixel at the given position is set.
// Positions outside of the display are never set.
func (f *Framebuffer) Pixel(x, y int) bool {
	if x < 0 || x >= DisplayWidth || y < 0 || y >= DisplayHeight {
		return false
	}
	return f[y*DisplayWidth+x] != 0
}

// Clear turns all pixels off.
func (f *Framebuffer) Clear() {
	*f = Framebuffer{}
}

// toggle XORs the pixel at the given position and returns true
// if the pixel was set before.
func (f *Framebuffer) toggle(x, y int) bool {
	i := y*DisplayWidth + x
	wasSet := f[i] != 0
	f[i] ^= 1
	return wasSet
}

// State is the complete state of the virtual CPU.
type State struct {
	Memory   [MemorySize]byte
	V        [RegisterCount]uint8
	I        uint16
	PC       uint16
	Stack    [StackDepth]uint16
	SP       uint8
	Display  Framebuffer
	Delay    uint8
	Sound    uint8
	Keypad   [KeyCount]bool
	Key      uint8 // latched key, only valid if KeyLatch is set
	KeyLatch bool
}

// Reset sets the state to power on values: memory cleared with the font
// loaded, registers, stack and timers zeroed and the program counter at
// the program start address.
func (s *State) Reset() {
	*s = State{}
	copy(s.Memory[FontBase:], font[:])
	s.PC = ProgramStart
}

// push stores a return address on the stack.
func (s *State) push(address uint16) error {
	if s.SP >= StackDepth {
		return ErrStackOverflow
	}
	s.Stack[s.SP] = address
	s.SP++
	return nil
}

// pop removes the most recent return address from the stack.
func (s *State) pop() (uint16, error) {
	if s.SP == 0 {
		return 0, ErrStackUnderflow
	}
	s.SP--
	return s.Stack[s.SP], nil
}
