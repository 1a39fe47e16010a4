package app

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestPrintInfo(t *testing.T) {
	logger := log.NewTestLogger(t)

	opts := options.Program{}
	opts.Input = "game.ch8"
	opts.Cycles = 12
	opts.Hz = 60
	PrintInfo(logger, opts, 128)

	opts.Listing = true
	PrintInfo(logger, opts, 128)

	opts.Quiet = true
	PrintInfo(logger, opts, 128)
}

func TestPrintSummary(t *testing.T) {
	m := vm.New(log.NewTestLogger(t), vm.Config{})
	assert.NoError(t, m.LoadProgram([]byte{0x01, 0x23}))
	_, err := m.Cycle()
	assert.NoError(t, err)
	assert.Equal(t, 1, m.UnknownOpcodes())

	PrintSummary(log.NewTestLogger(t), m, 1)
}
