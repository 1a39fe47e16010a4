//go:build headless

package audio

import "github.com/retroenv/retrochip8/internal/vm"

// Beeper is a silent stand-in for builds without an audio device.
type Beeper struct {
	started bool
}

// NewBeeper returns a beeper that does not produce any sound.
func NewBeeper(_ *vm.Signal) (*Beeper, error) {
	return &Beeper{}, nil
}

// Start marks the beeper as started.
func (b *Beeper) Start() {
	b.started = true
}

// Close marks the beeper as stopped.
func (b *Beeper) Close() error {
	b.started = false
	return nil
}
