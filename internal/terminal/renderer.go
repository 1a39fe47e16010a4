// Package terminal implements the display and keypad of the emulator on a
// text terminal.
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/vm"
	"golang.org/x/term"
)

const title = "CHIP-8"

// ANSI control sequences.
const (
	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	resetAttrs  = "\x1b[0m"
)

// frameWidth and frameHeight are the outer dimensions of the drawn frame.
// Every text row covers two pixel rows.
const (
	frameWidth  = vm.DisplayWidth + 2
	frameHeight = vm.DisplayHeight/2 + 2
)

// Renderer draws framebuffers with half block characters inside a border.
type Renderer struct {
	writer  io.Writer
	ansi    bool
	newline string
	size    func() (width, height int, err error)
}

// NewRenderer returns a renderer for an interactive terminal. Every frame
// replaces the previous one and is centered in the terminal of the given
// file descriptor.
func NewRenderer(writer io.Writer, fd int) *Renderer {
	return &Renderer{
		writer:  writer,
		ansi:    true,
		newline: "\r\n", // raw mode does not translate line feeds
		size: func() (int, int, error) {
			return term.GetSize(fd)
		},
	}
}

// NewTextRenderer returns a renderer that appends every frame as plain text
// without control sequences.
func NewTextRenderer(writer io.Writer) *Renderer {
	return &Renderer{
		writer:  writer,
		newline: "\n",
	}
}

// Start prepares the terminal for drawing.
func (r *Renderer) Start() error {
	if !r.ansi {
		return nil
	}
	if _, err := io.WriteString(r.writer, clearScreen+hideCursor); err != nil {
		return fmt.Errorf("preparing terminal: %w", err)
	}
	return nil
}

// Close restores the cursor of the terminal.
func (r *Renderer) Close() error {
	if !r.ansi {
		return nil
	}
	if _, err := io.WriteString(r.writer, resetAttrs+showCursor+r.newline); err != nil {
		return fmt.Errorf("restoring terminal: %w", err)
	}
	return nil
}

// Render draws the framebuffer.
func (r *Renderer) Render(fb vm.Framebuffer) error {
	var buf strings.Builder

	left, top := r.offset()
	if r.ansi {
		buf.WriteString(cursorHome)
		for range top {
			buf.WriteString(r.newline)
		}
	}

	padding := strings.Repeat(" ", left)
	for _, line := range Lines(fb) {
		buf.WriteString(padding)
		buf.WriteString(line)
		buf.WriteString(r.newline)
	}

	if _, err := io.WriteString(r.writer, buf.String()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// offset returns the padding that centers the frame in the terminal.
// Terminals that are too small or have no known size are not padded.
func (r *Renderer) offset() (int, int) {
	if r.size == nil {
		return 0, 0
	}
	width, height, err := r.size()
	if err != nil {
		return 0, 0
	}
	return max(0, (width-frameWidth)/2), max(0, (height-frameHeight)/2)
}

// Lines returns the text lines of the bordered framebuffer.
func Lines(fb vm.Framebuffer) []string {
	lines := make([]string, 0, frameHeight)

	label := "─ " + title + " "
	lines = append(lines, "┌"+label+strings.Repeat("─", vm.DisplayWidth-len([]rune(label)))+"┐")

	var row strings.Builder
	for y := 0; y < vm.DisplayHeight; y += 2 {
		row.Reset()
		row.WriteString("│")
		for x := range vm.DisplayWidth {
			row.WriteRune(glyph(fb.Pixel(x, y), fb.Pixel(x, y+1)))
		}
		row.WriteString("│")
		lines = append(lines, row.String())
	}

	lines = append(lines, "└"+strings.Repeat("─", vm.DisplayWidth)+"┘")
	return lines
}

// glyph returns the half block character for two vertically stacked pixels.
func glyph(upper, lower bool) rune {
	switch {
	case upper && lower:
		return '█'
	case upper:
		return '▀'
	case lower:
		return '▄'
	default:
		return ' '
	}
}
