package vm

// CHIP-8 memory map:
//
//	0x000-0x04F: unused interpreter area
//	0x050-0x09F: hex digit font, 16 glyphs of 5 bytes
//	0x0A0-0x1FF: unused interpreter area
//	0x200-0xFFF: program and data space
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 4096

	// ProgramStart is the address that programs are loaded to and start executing at.
	ProgramStart = 0x200

	// MaxProgramSize is the largest ROM image that fits into program space.
	MaxProgramSize = MemorySize - ProgramStart

	// FontBase is the address of the first font glyph.
	FontBase = 0x050

	// GlyphSize is the number of bytes of a single font glyph.
	GlyphSize = 5
)

const (
	// RegisterCount is the number of general purpose registers V0-VF.
	RegisterCount = 16

	// FlagRegister is the index of VF, used for carry, borrow and collision.
	FlagRegister = 0xF

	// StackDepth is the maximum number of nested subroutine calls.
	StackDepth = 16

	// KeyCount is the number of keys of the hex keypad.
	KeyCount = 16

	// TimerRate is the frequency in Hz that the delay and sound timers count down at.
	TimerRate = 60
)

const (
	// DisplayWidth is the width of the framebuffer in pixels.
	DisplayWidth = 64

	// DisplayHeight is the height of the framebuffer in pixels.
	DisplayHeight = 32

	// opcodeSize is the size of every instruction in bytes.
	opcodeSize = 2
)

// font contains the 4x5 pixel glyphs for the hex digits 0-F.
var font = [16 * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}
