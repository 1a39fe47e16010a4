//go:build !headless

package audio

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/retroenv/retrochip8/internal/vm"
)

// Beeper plays the tone of the machine on the audio device of the system.
type Beeper struct {
	ctx     *oto.Context
	player  *oto.Player
	started bool
	mutex   sync.Mutex
}

// NewBeeper opens the audio device and prepares a player that follows the
// given sound signal.
func NewBeeper(signal *vm.Signal) (*Beeper, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	return &Beeper{
		ctx:    ctx,
		player: ctx.NewPlayer(NewTone(signal, SampleRate)),
	}, nil
}

// Start begins streaming to the audio device.
func (b *Beeper) Start() {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if !b.started && b.player != nil {
		b.player.Play()
		b.started = true
	}
}

// Close stops the playback and releases the player.
func (b *Beeper) Close() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.player == nil {
		return nil
	}
	err := b.player.Close()
	b.player = nil
	b.started = false
	if err != nil {
		return fmt.Errorf("closing audio player: %w", err)
	}
	return nil
}
