//go:build !unix

package terminal

import "errors"

// Start reports that raw terminal input is not available on this platform.
func (h *Input) Start() error {
	close(h.done)
	return errors.New("raw terminal input is not supported on this platform")
}

func (h *Input) restore() {}
