package vm

// StepTimers decrements the delay and sound timers. It is meant to be called
// at 60 Hz by the driver. The sound signal is active while the sound timer
// was running before this step.
func (m *Machine) StepTimers() {
	if m.state.Delay > 0 {
		m.state.Delay--
	}

	if m.state.Sound > 0 {
		m.state.Sound--
		m.signal.set(true)
		return
	}
	m.signal.set(false)
}

// DelayTimer returns the delay timer value.
func (m *Machine) DelayTimer() uint8 {
	return m.state.Delay
}

// SoundTimer returns the sound timer value.
func (m *Machine) SoundTimer() uint8 {
	return m.state.Sound
}

// SetDelayTimer sets the delay timer value.
func (m *Machine) SetDelayTimer(value uint8) {
	m.state.Delay = value
}

// SetSoundTimer sets the sound timer value.
func (m *Machine) SetSoundTimer(value uint8) {
	m.state.Sound = value
}
