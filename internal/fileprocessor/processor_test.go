package fileprocessor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// testProgram draws the glyph of digit 0 at the top left corner and loops.
var testProgram = []byte{
	0x60, 0x00, // ld V0, $00
	0xF0, 0x29, // ld F, V0
	0xD0, 0x05, // drw V0, V0, $5
	0x12, 0x06, // jp $206
}

func createROM(t *testing.T, data []byte) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), "test.ch8")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}

func headlessOptions(input string) options.Program {
	opts := options.Program{}
	opts.Input = input
	opts.Cycles = options.DefaultCycles
	opts.Hz = options.DefaultHz
	opts.Latch = options.DefaultLatch
	opts.Headless = true
	opts.Frames = 10
	opts.Seed = 1
	return opts
}

func TestProcessFileListing(t *testing.T) {
	opts := options.Program{}
	opts.Input = createROM(t, testProgram)
	opts.Listing = true
	opts.NoOffsets = true

	var buf bytes.Buffer
	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, &buf)
	assert.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, ".org $200")
	assert.Contains(t, output, "_label_0206:")
	assert.Contains(t, output, "; D0 05")
	assert.False(t, strings.Contains(output, "$0206"))
}

func TestProcessFileHeadless(t *testing.T) {
	opts := headlessOptions(createROM(t, testProgram))

	var buf bytes.Buffer
	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, &buf)
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, vm.DisplayHeight/2+2)
	// the top two rows of the zero glyph are 0xF0 and 0x90
	assert.True(t, strings.HasPrefix(lines[1], "│█▀▀█ "))
}

func TestProcessFileWav(t *testing.T) {
	// ld V0, $03; ld ST, V0; jp $204
	opts := headlessOptions(createROM(t, []byte{0x60, 0x03, 0xF0, 0x18, 0x12, 0x04}))
	opts.Wav = filepath.Join(t.TempDir(), "out.wav")

	var buf bytes.Buffer
	assert.NoError(t, ProcessFile(context.Background(), log.NewTestLogger(t), opts, &buf))

	info, err := os.Stat(opts.Wav)
	assert.NoError(t, err)
	assert.True(t, info.Size() > 0)
}

func TestProcessFileFault(t *testing.T) {
	// ret with an empty stack
	opts := headlessOptions(createROM(t, []byte{0x00, 0xEE}))

	var buf bytes.Buffer
	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, &buf)
	assert.True(t, errors.Is(err, vm.ErrStackUnderflow))

	var fault *vm.Fault
	assert.True(t, errors.As(err, &fault))
	assert.Equal(t, uint16(vm.ProgramStart), fault.Address)
}

func TestProcessFileErrors(t *testing.T) {
	var buf bytes.Buffer

	opts := headlessOptions("/nonexistent/file.ch8")
	assert.Error(t, ProcessFile(context.Background(), log.NewTestLogger(t), opts, &buf))

	opts = headlessOptions(createROM(t, nil))
	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, &buf)
	assert.True(t, errors.Is(err, loader.ErrEmptyROM))

	opts = headlessOptions(createROM(t, testProgram))
	opts.Latch = "never"
	assert.ErrorContains(t, ProcessFile(context.Background(), log.NewTestLogger(t), opts, &buf), "latch policy")
}

func TestProcessFileCancelled(t *testing.T) {
	opts := headlessOptions(createROM(t, testProgram))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := ProcessFile(ctx, log.NewTestLogger(t), opts, &buf)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestLoadMachineResets(t *testing.T) {
	machine := vm.New(log.NewTestLogger(t), vm.Config{})
	assert.NoError(t, loadMachine(machine, []byte{0x60, 0x2A, 0x12, 0x02}))
	_, err := machine.Cycle()
	assert.NoError(t, err)
	assert.Equal(t, uint8(0x2A), machine.Snapshot().V[0])

	assert.NoError(t, loadMachine(machine, []byte{0x12, 0x00}))
	state := machine.Snapshot()
	assert.Equal(t, uint16(vm.ProgramStart), state.PC)
	assert.Equal(t, uint8(0), state.V[0])
	assert.Equal(t, uint8(0), state.Memory[vm.ProgramStart+2])
	assert.Equal(t, uint8(0), state.Memory[vm.ProgramStart+3])

	err = loadMachine(machine, make([]byte, vm.MaxProgramSize+1))
	assert.True(t, errors.Is(err, vm.ErrProgramTooLarge))
}

func TestPrintBanner(t *testing.T) {
	logger := log.NewTestLogger(t)
	PrintBanner(logger, options.Program{}, "1.0.0", "abcdef0123", "2026-01-01")

	quiet := options.Program{}
	quiet.Quiet = true
	PrintBanner(logger, quiet, "1.0.0", "", "")
}
