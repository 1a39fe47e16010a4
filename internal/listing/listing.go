// Package listing writes a linear disassembly of a CHIP-8 ROM.
package listing

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/instruction"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/set"
)

const (
	funcNaming  = "_func_%04x"
	labelNaming = "_label_%04x"
	dataNaming  = "_data_%04x"
)

// Options of the listing output.
type Options struct {
	HexComments    bool
	OffsetComments bool
}

// offset is a decoded word or trailing byte of the program.
type offset struct {
	address uint16
	data    []byte
	ins     instruction.Instruction
	code    bool
}

// Writer writes disassembly listings.
type Writer struct {
	writer  io.Writer
	options Options

	offsets []offset
	labels  map[uint16]string
}

// New returns a new listing writer.
func New(writer io.Writer, options Options) *Writer {
	return &Writer{
		writer:  writer,
		options: options,
	}
}

// Write disassembles the program as loaded at the program start address.
func (w *Writer) Write(program []byte) error {
	w.parse(program)
	w.assignLabels()

	if _, err := fmt.Fprintf(w.writer, "; CHIP-8 ROM Disassembly\n"); err != nil {
		return fmt.Errorf("writing header comment: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; Program starts at $%03X in CHIP-8 memory space\n\n", vm.ProgramStart); err != nil {
		return fmt.Errorf("writing memory space comment: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, ".org $%03X\n\n", vm.ProgramStart); err != nil {
		return fmt.Errorf("writing org directive: %w", err)
	}

	for _, offset := range w.offsets[:w.endIndex()] {
		if label, ok := w.labels[offset.address]; ok {
			if _, err := fmt.Fprintf(w.writer, "%s:\n", label); err != nil {
				return fmt.Errorf("writing label %s: %w", label, err)
			}
		}
		if err := w.writeOffset(offset); err != nil {
			return err
		}
	}
	return nil
}

// parse splits the program into words. Words that do not decode to an
// instruction are kept as data.
func (w *Writer) parse(program []byte) {
	w.offsets = w.offsets[:0]

	for i := 0; i < len(program); i += 2 {
		address := uint16(vm.ProgramStart + i)
		if i+1 >= len(program) {
			w.offsets = append(w.offsets, offset{address: address, data: program[i : i+1]})
			break
		}

		data := program[i : i+2]
		ins := instruction.Decode(uint16(data[0])<<8 | uint16(data[1]))
		w.offsets = append(w.offsets, offset{
			address: address,
			data:    data,
			ins:     ins,
			code:    ins.Op != instruction.Unknown,
		})
	}
}

// assignLabels names all addresses inside the program that are referenced
// by jumps, calls or index loads. Function names take precedence over jump
// labels, which take precedence over data names.
func (w *Writer) assignLabels() {
	calls := set.New[uint16]()
	jumps := set.New[uint16]()
	data := set.New[uint16]()

	for _, offset := range w.offsets {
		if !offset.code {
			continue
		}
		switch {
		case offset.ins.IsCall():
			calls.Add(offset.ins.Address)
		case offset.ins.IsJump():
			jumps.Add(offset.ins.Address)
		case offset.ins.IsDataReference():
			data.Add(offset.ins.Address)
		}
	}

	w.labels = make(map[uint16]string)
	for _, offset := range w.offsets {
		address := offset.address
		switch {
		case calls.Contains(address):
			w.labels[address] = fmt.Sprintf(funcNaming, address)
		case jumps.Contains(address):
			w.labels[address] = fmt.Sprintf(labelNaming, address)
		case data.Contains(address):
			w.labels[address] = fmt.Sprintf(dataNaming, address)
		}
	}
}

// endIndex finds the index after the last meaningful offset, trailing zero
// bytes are omitted.
func (w *Writer) endIndex() int {
	for i := len(w.offsets) - 1; i >= 0; i-- {
		offset := w.offsets[i]
		if _, ok := w.labels[offset.address]; ok {
			return i + 1
		}
		for _, b := range offset.data {
			if b != 0 {
				return i + 1
			}
		}
	}
	return 0
}

func (w *Writer) writeOffset(offset offset) error {
	var line string
	if offset.code {
		line = "    " + w.code(offset.ins)
	} else {
		line = "    " + data(offset.data)
	}

	comment := w.comment(offset)
	if comment == "" {
		if _, err := fmt.Fprintf(w.writer, "%s\n", line); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
		return nil
	}

	if _, err := fmt.Fprintf(w.writer, "%-32s ; %s\n", line, comment); err != nil {
		return fmt.Errorf("writing line with comment: %w", err)
	}
	return nil
}

// code returns the instruction text with the target address replaced by
// its label if one exists.
func (w *Writer) code(ins instruction.Instruction) string {
	label, ok := w.labels[ins.Address]
	if !ok {
		return ins.String()
	}

	switch ins.Op {
	case instruction.Jump, instruction.Call:
		return ins.Name() + " " + label
	case instruction.JumpOffset:
		return ins.Name() + " V0, " + label
	case instruction.LoadIndex:
		return ins.Name() + " I, " + label
	default:
		return ins.String()
	}
}

func (w *Writer) comment(offset offset) string {
	var comments []string
	if w.options.OffsetComments {
		comments = append(comments, fmt.Sprintf("$%04X", offset.address))
	}
	if w.options.HexComments {
		comments = append(comments, hexCodeComment(offset.data))
	}
	return strings.Join(comments, "  ")
}

func hexCodeComment(data []byte) string {
	buf := &strings.Builder{}
	for _, b := range data {
		fmt.Fprintf(buf, "%02X ", b)
	}
	return strings.TrimRight(buf.String(), " ")
}

func data(data []byte) string {
	var buf strings.Builder
	buf.WriteString(fmt.Sprintf(".byte $%02X", data[0]))
	for j := 1; j < len(data); j++ {
		buf.WriteString(fmt.Sprintf(", $%02X", data[j]))
	}
	return buf.String()
}
