package vm

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDrawFontGlyph(t *testing.T) {
	// ld F, V0 then drw V1, V2, 5 with digit 0 at (8, 4)
	m := newTestMachine(t, 0xF029, 0xD125)
	m.state.V[1] = 8
	m.state.V[2] = 4

	run(t, m, 2)
	fb := m.Framebuffer()
	assert.Equal(t, uint8(0), m.state.V[FlagRegister])

	// 0xF0 0x90 0x90 0x90 0xF0
	for x := 8; x < 12; x++ {
		assert.True(t, fb.Pixel(x, 4))
		assert.True(t, fb.Pixel(x, 8))
	}
	for y := 5; y < 8; y++ {
		assert.True(t, fb.Pixel(8, y))
		assert.False(t, fb.Pixel(9, y))
		assert.False(t, fb.Pixel(10, y))
		assert.True(t, fb.Pixel(11, y))
	}
	assert.False(t, fb.Pixel(12, 4))
	assert.False(t, fb.Pixel(8, 9))
}

func TestDrawTwiceRestoresDisplay(t *testing.T) {
	m := newTestMachine(t, 0xD125, 0xD125)
	m.state.I = 0x300
	copy(m.state.Memory[0x300:], []byte{0xFF, 0x81, 0x42, 0x24, 0x18})
	m.state.Display[0] = 1
	m.state.V[1] = 10
	m.state.V[2] = 3
	before := m.Framebuffer()

	run(t, m, 1)
	assert.Equal(t, uint8(0), m.state.V[FlagRegister])
	drawn := m.Framebuffer()
	assert.True(t, drawn != before)

	run(t, m, 1)
	assert.Equal(t, uint8(1), m.state.V[FlagRegister])
	assert.Equal(t, before, m.Framebuffer())
}

func TestDrawCollision(t *testing.T) {
	m := newTestMachine(t, 0xD011)
	m.state.I = 0x300
	m.state.Memory[0x300] = 0x80
	m.state.V[FlagRegister] = 0x05

	// a set pixel that the sprite does not touch is no collision
	m.state.Display[1] = 1
	run(t, m, 1)
	assert.Equal(t, uint8(0), m.state.V[FlagRegister])
	assert.True(t, m.state.Display.Pixel(0, 0))

	// collision survives later pixels that do not collide
	m = newTestMachine(t, 0xD011)
	m.state.I = 0x300
	m.state.Memory[0x300] = 0xC0
	m.state.Display[0] = 1
	run(t, m, 1)
	assert.Equal(t, uint8(1), m.state.V[FlagRegister])
	assert.False(t, m.state.Display.Pixel(0, 0))
	assert.True(t, m.state.Display.Pixel(1, 0))
}

func TestDrawWrapsOriginAndClipsPixels(t *testing.T) {
	m := newTestMachine(t, 0xD122)
	m.state.I = 0x300
	m.state.Memory[0x300] = 0xFF
	m.state.Memory[0x301] = 0xFF
	m.state.V[1] = DisplayWidth + 60 // wraps to x 60
	m.state.V[2] = DisplayHeight*2 + 31

	run(t, m, 1)
	fb := m.Framebuffer()
	for x := 60; x < DisplayWidth; x++ {
		assert.True(t, fb.Pixel(x, 31))
	}

	// clipped pixels are not wrapped to the other side
	for x := range 4 {
		assert.False(t, fb.Pixel(x, 31))
		assert.False(t, fb.Pixel(x, 0))
	}
	for x := 60; x < DisplayWidth; x++ {
		assert.False(t, fb.Pixel(x, 0))
	}
}

func TestDrawZeroHeight(t *testing.T) {
	m := newTestMachine(t, 0xD120)
	m.state.I = 0xFFFF
	m.state.V[FlagRegister] = 1

	run(t, m, 1)
	assert.Equal(t, uint8(0), m.state.V[FlagRegister])
	assert.Equal(t, Framebuffer{}, m.Framebuffer())
}

func TestClearScreen(t *testing.T) {
	for _, opcode := range []uint16{0x00E0, 0x0AE0, 0x0FE0} {
		m := newTestMachine(t, opcode)
		for i := range m.state.Display {
			m.state.Display[i] = 1
		}

		run(t, m, 1)
		assert.Equal(t, Framebuffer{}, m.Framebuffer())
		assert.Equal(t, 0, m.UnknownOpcodes())
	}
}
