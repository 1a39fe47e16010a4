// Package instruction decodes raw CHIP-8 opcodes into typed instructions.
package instruction

// Op identifies the operation of a decoded instruction.
type Op uint8

// Operations of the baseline CHIP-8 instruction set.
const (
	Unknown Op = iota
	ClearScreen
	Return
	Jump
	Call
	SkipEqImm
	SkipNeImm
	SkipEqReg
	LoadImm
	AddImm
	LoadReg
	Or
	And
	Xor
	AddReg
	Sub
	Shr
	SubN
	Shl
	SkipNeReg
	LoadIndex
	JumpOffset
	Random
	Draw
	SkipKeyPressed
	SkipKeyNotPressed
	LoadDelay
	WaitKey
	SetDelay
	SetSound
	AddIndex
	LoadFont
	StoreBCD
	StoreRegs
	LoadRegs

	opCount
)

// Instruction is a decoded CHIP-8 instruction. Only the fields used by
// the operation are set, Opcode always holds the raw 16-bit word.
type Instruction struct {
	Op      Op
	Opcode  uint16
	X       uint8  // register index, bits 8..11
	Y       uint8  // register index, bits 4..7
	N       uint8  // 4-bit immediate, bits 0..3
	KK      uint8  // 8-bit immediate, bits 0..7
	Address uint16 // 12-bit address, bits 0..11
}

// Decode converts a raw opcode into an instruction. It never fails,
// patterns outside of the instruction set decode to Unknown.
func Decode(opcode uint16) Instruction {
	x := uint8(opcode>>8) & 0x0F
	y := uint8(opcode>>4) & 0x0F
	n := uint8(opcode) & 0x0F
	kk := uint8(opcode)
	nnn := opcode & 0x0FFF

	unknown := Instruction{Op: Unknown, Opcode: opcode}
	address := func(op Op) Instruction {
		return Instruction{Op: op, Opcode: opcode, Address: nnn}
	}
	immediate := func(op Op) Instruction {
		return Instruction{Op: op, Opcode: opcode, X: x, KK: kk}
	}
	registers := func(op Op) Instruction {
		return Instruction{Op: op, Opcode: opcode, X: x, Y: y}
	}
	register := func(op Op) Instruction {
		return Instruction{Op: op, Opcode: opcode, X: x}
	}

	switch opcode >> 12 {
	case 0x0:
		// the middle nibble is ignored, only the low byte selects
		switch kk {
		case 0xE0:
			return Instruction{Op: ClearScreen, Opcode: opcode}
		case 0xEE:
			return Instruction{Op: Return, Opcode: opcode}
		}
		return unknown

	case 0x1:
		return address(Jump)
	case 0x2:
		return address(Call)
	case 0x3:
		return immediate(SkipEqImm)
	case 0x4:
		return immediate(SkipNeImm)

	case 0x5:
		if n != 0 {
			return unknown
		}
		return registers(SkipEqReg)

	case 0x6:
		return immediate(LoadImm)
	case 0x7:
		return immediate(AddImm)

	case 0x8:
		op, ok := aluOps[n]
		if !ok {
			return unknown
		}
		return registers(op)

	case 0x9:
		if n != 0 {
			return unknown
		}
		return registers(SkipNeReg)

	case 0xA:
		return address(LoadIndex)
	case 0xB:
		return address(JumpOffset)
	case 0xC:
		return immediate(Random)

	case 0xD:
		return Instruction{Op: Draw, Opcode: opcode, X: x, Y: y, N: n}

	case 0xE:
		switch kk {
		case 0x9E:
			return register(SkipKeyPressed)
		case 0xA1:
			return register(SkipKeyNotPressed)
		}
		return unknown

	default: // 0xF
		op, ok := miscOps[kk]
		if !ok {
			return unknown
		}
		return register(op)
	}
}

// aluOps maps the low nibble of the 8xyn family to its operation.
var aluOps = map[uint8]Op{
	0x0: LoadReg,
	0x1: Or,
	0x2: And,
	0x3: Xor,
	0x4: AddReg,
	0x5: Sub,
	0x6: Shr,
	0x7: SubN,
	0xE: Shl,
}

// miscOps maps the low byte of the Fxkk family to its operation.
var miscOps = map[uint8]Op{
	0x07: LoadDelay,
	0x0A: WaitKey,
	0x15: SetDelay,
	0x18: SetSound,
	0x1E: AddIndex,
	0x29: LoadFont,
	0x33: StoreBCD,
	0x55: StoreRegs,
	0x65: LoadRegs,
}

// IsJump returns true if the instruction unconditionally transfers control.
func (i Instruction) IsJump() bool {
	return i.Op == Jump || i.Op == JumpOffset
}

// IsCall returns true if the instruction is a subroutine call.
func (i Instruction) IsCall() bool {
	return i.Op == Call
}

// IsReturn returns true if the instruction returns from a subroutine.
func (i Instruction) IsReturn() bool {
	return i.Op == Return
}

// IsSkip returns true if the instruction is a conditional skip.
func (i Instruction) IsSkip() bool {
	switch i.Op {
	case SkipEqImm, SkipNeImm, SkipEqReg, SkipNeReg, SkipKeyPressed, SkipKeyNotPressed:
		return true
	default:
		return false
	}
}

// IsDataReference returns true if the instruction loads a memory address
// into the index register.
func (i Instruction) IsDataReference() bool {
	return i.Op == LoadIndex
}
