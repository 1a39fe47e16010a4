package vm

import "sync/atomic"

// Signal is the sound output state of the machine. It is written only by
// the timer step of its machine and can be read from any goroutine.
type Signal struct {
	active atomic.Bool
}

// Active returns true while the sound timer is running.
func (s *Signal) Active() bool {
	return s.active.Load()
}

func (s *Signal) set(active bool) {
	s.active.Store(active)
}
