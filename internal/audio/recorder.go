package audio

import (
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/log"
	"github.com/youpy/go-wav"
)

const (
	recordSampleRate = 22050
	recordBits       = 8
	silence8         = 128 // 8 bit WAV samples are unsigned
)

// Recorder captures the sound signal once per frame and writes it as an
// 8 bit mono WAV file when closed. The audio data is buffered in memory.
type Recorder struct {
	logger          *log.Logger
	filename        string
	samplesPerFrame int
	wave            *squareWave
	buffer          []wav.Sample
}

// NewRecorder returns a recorder for a machine running at the given frame rate.
func NewRecorder(logger *log.Logger, filename string, frameRate int) (*Recorder, error) {
	if frameRate <= 0 {
		return nil, fmt.Errorf("invalid frame rate %d", frameRate)
	}
	return &Recorder{
		logger:          logger,
		filename:        filename,
		samplesPerFrame: recordSampleRate / frameRate,
		wave:            newSquareWave(Frequency, recordSampleRate),
	}, nil
}

// Frame appends the samples of one frame.
func (r *Recorder) Frame(active bool) error {
	for range r.samplesPerFrame {
		w := wav.Sample{}
		w.Values[0] = silence8
		if active {
			w.Values[0] = silence8 - volume8
			if r.wave.next() {
				w.Values[0] = silence8 + volume8
			}
		}
		r.buffer = append(r.buffer, w)
	}
	return nil
}

// Samples returns the number of recorded samples.
func (r *Recorder) Samples() int {
	return len(r.buffer)
}

// Close writes the recorded audio to the file.
func (r *Recorder) Close() (rerr error) {
	f, err := os.Create(r.filename)
	if err != nil {
		return fmt.Errorf("creating wav file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("closing wav file: %w", err)
		}
	}()

	enc := wav.NewWriter(f, uint32(len(r.buffer)), 1, recordSampleRate, recordBits)
	if enc == nil {
		return errors.New("bad parameters for wav encoding")
	}

	r.logger.Info("Writing audio", log.String("file", r.filename), log.Int("samples", len(r.buffer)))
	if err := enc.WriteSamples(r.buffer); err != nil {
		return fmt.Errorf("writing wav samples: %w", err)
	}
	return nil
}
