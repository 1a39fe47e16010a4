package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestRecorder(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "sound.wav")
	recorder, err := NewRecorder(log.NewTestLogger(t), filename, 60)
	assert.NoError(t, err)

	assert.NoError(t, recorder.Frame(false))
	assert.NoError(t, recorder.Frame(true))
	assert.NoError(t, recorder.Frame(false))

	samplesPerFrame := recordSampleRate / 60
	assert.Equal(t, 3*samplesPerFrame, recorder.Samples())

	// silent frames stay at the center level
	for i := range samplesPerFrame {
		assert.Equal(t, silence8, recorder.buffer[i].Values[0])
		assert.Equal(t, silence8, recorder.buffer[2*samplesPerFrame+i].Values[0])
	}
	for i := samplesPerFrame; i < 2*samplesPerFrame; i++ {
		value := recorder.buffer[i].Values[0]
		assert.True(t, value == silence8+volume8 || value == silence8-volume8)
	}

	assert.NoError(t, recorder.Close())

	data, err := os.ReadFile(filename)
	assert.NoError(t, err)
	assert.True(t, len(data) > 3*samplesPerFrame)
	assert.Equal(t, "RIFF", string(data[0:4]))
	assert.Equal(t, "WAVE", string(data[8:12]))
}

func TestRecorderInvalidFrameRate(t *testing.T) {
	_, err := NewRecorder(log.NewTestLogger(t), "unused.wav", 0)
	assert.Error(t, err)
}

func TestRecorderCreateError(t *testing.T) {
	recorder, err := NewRecorder(log.NewTestLogger(t), "/nonexistent/dir/sound.wav", 60)
	assert.NoError(t, err)
	assert.NoError(t, recorder.Frame(true))
	assert.Error(t, recorder.Close())
}
