//go:build unix

package terminal

import (
	"errors"
	"fmt"
	"syscall"
	"time"

	"golang.org/x/term"
)

// Start puts the terminal into raw non-blocking mode and begins reading in
// a goroutine. Call Stop to restore the terminal.
func (h *Input) Start() error {
	oldState, err := term.MakeRaw(h.fd)
	if err != nil {
		close(h.done)
		return fmt.Errorf("setting raw mode: %w", err)
	}
	h.oldState = oldState

	if err := syscall.SetNonblock(h.fd, true); err != nil {
		_ = term.Restore(h.fd, h.oldState)
		h.oldState = nil
		close(h.done)
		return fmt.Errorf("setting nonblocking input: %w", err)
	}
	h.nonblockSet = true

	go h.read()
	return nil
}

func (h *Input) read() {
	defer close(h.done)
	buf := make([]byte, 32)

	for {
		select {
		case <-h.stopCh:
			return
		default:
		}

		n, err := syscall.Read(h.fd, buf)
		now := time.Now()
		if n > 0 {
			h.handle(buf[:n], now)
		}
		h.tick(now)

		if errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EWOULDBLOCK) || (n <= 0 && err == nil) {
			time.Sleep(5 * time.Millisecond)
			continue
		}
		if err != nil {
			return
		}
	}
}

func (h *Input) restore() {
	if h.nonblockSet {
		_ = syscall.SetNonblock(h.fd, false)
		h.nonblockSet = false
	}
	if h.oldState != nil {
		_ = term.Restore(h.fd, h.oldState)
		h.oldState = nil
	}
}
