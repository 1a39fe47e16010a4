// Package audio implements the sound output of the emulator: a live beeper
// and a recorder that writes the tone to a WAV file.
package audio

import (
	"encoding/binary"

	"github.com/retroenv/retrochip8/internal/vm"
)

const (
	// SampleRate of the generated audio in Hz.
	SampleRate = 44100

	// Frequency of the beep tone in Hz.
	Frequency = 440

	volume16 = 3000
	volume8  = 48
)

// squareWave generates the levels of a square wave sample by sample.
type squareWave struct {
	period int
	phase  int
}

func newSquareWave(frequency, sampleRate int) *squareWave {
	return &squareWave{period: max(2, sampleRate/frequency)}
}

// next returns whether the wave is high for the next sample.
func (w *squareWave) next() bool {
	high := w.phase < w.period/2
	w.phase = (w.phase + 1) % w.period
	return high
}

// Tone is a stream of signed 16 bit little endian mono samples that plays a
// square wave while the sound signal of the machine is active and silence
// otherwise.
type Tone struct {
	signal *vm.Signal
	wave   *squareWave
}

// NewTone returns a tone stream for the given signal.
func NewTone(signal *vm.Signal, sampleRate int) *Tone {
	return &Tone{
		signal: signal,
		wave:   newSquareWave(Frequency, sampleRate),
	}
}

// Read fills p with samples. It never fails so that the player keeps
// streaming for the whole session.
func (t *Tone) Read(p []byte) (int, error) {
	n := len(p) &^ 1
	active := t.signal.Active()

	for i := 0; i < n; i += 2 {
		var sample int16
		if active {
			sample = -volume16
			if t.wave.next() {
				sample = volume16
			}
		}
		binary.LittleEndian.PutUint16(p[i:], uint16(sample))
	}
	return n, nil
}
