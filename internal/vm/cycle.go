package vm

import (
	"github.com/retroenv/retrochip8/internal/instruction"
	"github.com/retroenv/retrogolib/log"
)

// CycleStatus is the outcome of a single machine cycle.
type CycleStatus int

const (
	// Normal means that one instruction was executed.
	Normal CycleStatus = iota
	// WaitingForKey means that execution is stalled on a wait for key
	// instruction. The instruction is executed again by the next cycle.
	WaitingForKey
)

func (s CycleStatus) String() string {
	switch s {
	case Normal:
		return "normal"
	case WaitingForKey:
		return "waiting for key"
	default:
		return "unknown"
	}
}

// Cycle fetches, decodes and executes a single instruction.
// If the instruction faults, a *Fault is returned and the machine state
// is left unchanged, repeating the cycle will fault again.
func (m *Machine) Cycle() (CycleStatus, error) {
	address := m.state.PC
	opcode, err := m.fetch()
	if err != nil {
		return Normal, &Fault{Address: address, Err: err}
	}

	ins := instruction.Decode(opcode)
	if m.config.Trace {
		m.logger.Debug("Executing instruction",
			log.Hex("address", address),
			log.Hex("opcode", opcode),
			log.String("instruction", ins.String()))
	}

	m.state.PC += opcodeSize
	status, err := m.execute(ins)
	if err != nil {
		m.state.PC = address
		return Normal, &Fault{Address: address, Opcode: opcode, Err: err}
	}
	return status, nil
}

// fetch reads the big endian opcode at the program counter.
func (m *Machine) fetch() (uint16, error) {
	pc := m.state.PC
	if err := checkRange(pc, opcodeSize); err != nil {
		return 0, err
	}
	return uint16(m.state.Memory[pc])<<8 | uint16(m.state.Memory[pc+1]), nil
}

// execute applies the instruction to the machine state. The program counter
// already points to the following instruction. Instructions must not modify
// the state before returning an error.
func (m *Machine) execute(ins instruction.Instruction) (CycleStatus, error) {
	s := &m.state
	vx := s.V[ins.X]
	vy := s.V[ins.Y]

	switch ins.Op {
	case instruction.ClearScreen:
		s.Display.Clear()

	case instruction.Return:
		address, err := s.pop()
		if err != nil {
			return Normal, err
		}
		s.PC = address

	case instruction.Jump:
		s.PC = ins.Address

	case instruction.Call:
		if err := s.push(s.PC); err != nil {
			return Normal, err
		}
		s.PC = ins.Address

	case instruction.SkipEqImm:
		m.skipIf(vx == ins.KK)
	case instruction.SkipNeImm:
		m.skipIf(vx != ins.KK)
	case instruction.SkipEqReg:
		m.skipIf(vx == vy)
	case instruction.SkipNeReg:
		m.skipIf(vx != vy)

	case instruction.LoadImm:
		s.V[ins.X] = ins.KK
	case instruction.AddImm:
		s.V[ins.X] = vx + ins.KK

	case instruction.LoadReg, instruction.Or, instruction.And, instruction.Xor,
		instruction.AddReg, instruction.Sub, instruction.SubN, instruction.Shr, instruction.Shl:
		m.alu(ins.Op, ins.X, vx, vy)

	case instruction.LoadIndex:
		s.I = ins.Address
	case instruction.JumpOffset:
		s.PC = ins.Address + uint16(s.V[0])
	case instruction.AddIndex:
		s.I += uint16(vx)

	case instruction.Random:
		s.V[ins.X] = uint8(m.rand.Uint32()) & ins.KK

	case instruction.Draw:
		return Normal, m.draw(vx, vy, ins.N)

	case instruction.SkipKeyPressed, instruction.SkipKeyNotPressed:
		if vx >= KeyCount {
			return Normal, ErrInvalidKey
		}
		pressed := s.Keypad[vx]
		m.skipIf(pressed == (ins.Op == instruction.SkipKeyPressed))

	case instruction.WaitKey:
		if !s.KeyLatch {
			s.PC -= opcodeSize
			return WaitingForKey, nil
		}
		s.V[ins.X] = s.Key
		s.KeyLatch = false

	case instruction.LoadDelay:
		s.V[ins.X] = s.Delay
	case instruction.SetDelay:
		s.Delay = vx
	case instruction.SetSound:
		s.Sound = vx

	case instruction.LoadFont:
		s.I = FontBase + uint16(vx&0x0F)*GlyphSize

	case instruction.StoreBCD:
		if err := checkRange(s.I, 3); err != nil {
			return Normal, err
		}
		s.Memory[s.I] = vx / 100
		s.Memory[s.I+1] = vx / 10 % 10
		s.Memory[s.I+2] = vx % 10

	case instruction.StoreRegs:
		count := int(ins.X) + 1
		if err := checkRange(s.I, count); err != nil {
			return Normal, err
		}
		copy(s.Memory[s.I:], s.V[:count])

	case instruction.LoadRegs:
		count := int(ins.X) + 1
		if err := checkRange(s.I, count); err != nil {
			return Normal, err
		}
		copy(s.V[:count], s.Memory[s.I:])

	default:
		m.unknownOpcodes++
		m.logger.Warn("Unknown opcode",
			log.Hex("address", s.PC-opcodeSize),
			log.Hex("opcode", ins.Opcode))
	}

	return Normal, nil
}

// skipIf skips the next instruction if the condition is true.
func (m *Machine) skipIf(condition bool) {
	if condition {
		m.state.PC += opcodeSize
	}
}

// alu executes the register to register operations of the 8xyn family.
// The flag register is written after the result, so it wins if x is VF.
func (m *Machine) alu(op instruction.Op, x, vx, vy uint8) {
	s := &m.state

	switch op {
	case instruction.LoadReg:
		s.V[x] = vy
	case instruction.Or:
		s.V[x] = vx | vy
	case instruction.And:
		s.V[x] = vx & vy
	case instruction.Xor:
		s.V[x] = vx ^ vy

	case instruction.AddReg:
		sum := uint16(vx) + uint16(vy)
		s.V[x] = uint8(sum)
		s.V[FlagRegister] = flag(sum > 0xFF)

	case instruction.Sub:
		s.V[x] = vx - vy
		s.V[FlagRegister] = flag(vx >= vy)

	case instruction.SubN:
		s.V[x] = vy - vx
		s.V[FlagRegister] = flag(vy >= vx)

	case instruction.Shr:
		s.V[x] = vx >> 1
		s.V[FlagRegister] = vx & 0x01

	case instruction.Shl:
		s.V[x] = vx << 1
		s.V[FlagRegister] = vx >> 7
	}
}

// draw XORs a sprite of height rows read from I onto the display. The
// origin wraps around the display, pixels beyond its edges are clipped.
// VF is set if any set pixel was turned off.
func (m *Machine) draw(vx, vy, height uint8) error {
	s := &m.state
	if err := checkRange(s.I, int(height)); err != nil {
		return err
	}

	originX := int(vx) % DisplayWidth
	originY := int(vy) % DisplayHeight
	var collision uint8

	for row := range int(height) {
		y := originY + row
		if y >= DisplayHeight {
			break
		}

		sprite := s.Memory[int(s.I)+row]
		for bit := range 8 {
			x := originX + bit
			if x >= DisplayWidth {
				break
			}
			if sprite&(0x80>>bit) == 0 {
				continue
			}
			if s.Display.toggle(x, y) {
				collision = 1
			}
		}
	}

	s.V[FlagRegister] = collision
	return nil
}

func flag(set bool) uint8 {
	if set {
		return 1
	}
	return 0
}
