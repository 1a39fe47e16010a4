package instruction

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// mnemonics maps every operation to its assembly instruction.
var mnemonics = [opCount]*chip8.Instruction{
	ClearScreen:       chip8.Cls,
	Return:            chip8.Ret,
	Jump:              chip8.Jp,
	Call:              chip8.Call,
	SkipEqImm:         chip8.Se,
	SkipNeImm:         chip8.Sne,
	SkipEqReg:         chip8.Se,
	LoadImm:           chip8.Ld,
	AddImm:            chip8.Add,
	LoadReg:           chip8.Ld,
	Or:                chip8.Or,
	And:               chip8.And,
	Xor:               chip8.Xor,
	AddReg:            chip8.Add,
	Sub:               chip8.Sub,
	Shr:               chip8.Shr,
	SubN:              chip8.Subn,
	Shl:               chip8.Shl,
	SkipNeReg:         chip8.Sne,
	LoadIndex:         chip8.Ld,
	JumpOffset:        chip8.Jp,
	Random:            chip8.Rnd,
	Draw:              chip8.Drw,
	SkipKeyPressed:    chip8.Skp,
	SkipKeyNotPressed: chip8.Sknp,
	LoadDelay:         chip8.Ld,
	WaitKey:           chip8.Ld,
	SetDelay:          chip8.Ld,
	SetSound:          chip8.Ld,
	AddIndex:          chip8.Add,
	LoadFont:          chip8.Ld,
	StoreBCD:          chip8.Ld,
	StoreRegs:         chip8.Ld,
	LoadRegs:          chip8.Ld,
}

// Name returns the assembly mnemonic of the instruction, or an empty
// string for unknown opcodes.
func (i Instruction) Name() string {
	if i.Op >= opCount {
		return ""
	}
	ins := mnemonics[i.Op]
	if ins == nil {
		return ""
	}
	return ins.Name
}

// String formats the instruction in CHIP-8 assembly syntax.
// Unknown opcodes are emitted as a data word.
func (i Instruction) String() string {
	name := i.Name()
	if name == "" {
		return fmt.Sprintf(".word $%04X", i.Opcode)
	}
	if params := i.params(); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// params formats the operands of the instruction.
func (i Instruction) params() string {
	switch i.Op {
	case Jump, Call:
		return fmt.Sprintf("$%03X", i.Address)
	case JumpOffset:
		return fmt.Sprintf("V0, $%03X", i.Address)
	case LoadIndex:
		return fmt.Sprintf("I, $%03X", i.Address)

	case SkipEqImm, SkipNeImm, LoadImm, AddImm, Random:
		return fmt.Sprintf("V%X, $%02X", i.X, i.KK)

	case SkipEqReg, SkipNeReg, LoadReg, Or, And, Xor, AddReg, Sub, SubN:
		return fmt.Sprintf("V%X, V%X", i.X, i.Y)

	case Shr, Shl, SkipKeyPressed, SkipKeyNotPressed:
		return fmt.Sprintf("V%X", i.X)

	case Draw:
		return fmt.Sprintf("V%X, V%X, $%X", i.X, i.Y, i.N)

	case LoadDelay:
		return fmt.Sprintf("V%X, DT", i.X)
	case WaitKey:
		return fmt.Sprintf("V%X, K", i.X)
	case SetDelay:
		return fmt.Sprintf("DT, V%X", i.X)
	case SetSound:
		return fmt.Sprintf("ST, V%X", i.X)
	case AddIndex:
		return fmt.Sprintf("I, V%X", i.X)
	case LoadFont:
		return fmt.Sprintf("F, V%X", i.X)
	case StoreBCD:
		return fmt.Sprintf("B, V%X", i.X)
	case StoreRegs:
		return fmt.Sprintf("[I], V%X", i.X)
	case LoadRegs:
		return fmt.Sprintf("V%X, [I]", i.X)

	default: // ClearScreen, Return
		return ""
	}
}
