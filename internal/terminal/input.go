package terminal

import (
	"context"
	"sync"
	"time"

	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

const eventBufferSize = 64

// Input reads raw key presses from the terminal and provides them as keypad
// events. A quit request cancels the context of the emulator.
type Input struct {
	logger *log.Logger
	cancel context.CancelFunc
	keys   *keyTracker
	events chan emulator.KeyEvent

	stopCh      chan struct{}
	done        chan struct{}
	stopped     sync.Once
	fd          int
	nonblockSet bool
	oldState    *term.State
}

// NewInput creates an input that reads the terminal of the given file
// descriptor once started.
func NewInput(logger *log.Logger, fd int, hold time.Duration, cancel context.CancelFunc) *Input {
	if hold <= 0 {
		hold = DefaultHoldTime
	}
	return &Input{
		logger: logger,
		cancel: cancel,
		keys:   newKeyTracker(hold),
		events: make(chan emulator.KeyEvent, eventBufferSize),
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
		fd:     fd,
	}
}

// Events returns the channel of keypad events.
func (h *Input) Events() <-chan emulator.KeyEvent {
	return h.events
}

// Stop terminates the reading goroutine and restores the terminal state.
func (h *Input) Stop() {
	h.stopped.Do(func() {
		close(h.stopCh)
	})
	<-h.done
	h.restore()
}

// handle processes a chunk of terminal input.
func (h *Input) handle(chunk []byte, now time.Time) {
	keys, quit := Decode(chunk)
	// every press is reported so that it latches the key again, even
	// while the key is still held
	for _, key := range keys {
		h.keys.press(key, now)
		h.send(emulator.KeyEvent{Key: key, Pressed: true})
	}
	if quit {
		h.logger.Debug("Quit requested")
		h.cancel()
	}
}

// tick releases all keys whose hold time elapsed.
func (h *Input) tick(now time.Time) {
	for _, key := range h.keys.expire(now) {
		h.send(emulator.KeyEvent{Key: key, Pressed: false})
	}
}

// send queues the event, events are dropped when the emulator falls behind.
func (h *Input) send(event emulator.KeyEvent) {
	select {
	case h.events <- event:
	default:
		h.logger.Debug("Dropping key event", log.Uint8("key", event.Key))
	}
}
