// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/arch/system/nes/cartridge"
	"github.com/retroenv/retrogolib/log"
)

// ErrEmptyROM is returned for ROM files without any content.
var ErrEmptyROM = errors.New("ROM file is empty")

// Loader handles loading ROM files from disk.
type Loader struct {
	logger   *log.Logger
	detector *detector.Detector
}

// New creates a new ROM loader.
func New(logger *log.Logger) *Loader {
	return &Loader{
		logger:   logger,
		detector: detector.New(logger),
	}
}

// Load reads the ROM file and returns the program bytes to be placed at the
// program start address.
func (l *Loader) Load(path string) ([]byte, error) {
	if system := l.detector.Detect(path); system != arch.CHIP8System {
		l.logger.Warn("File extension does not indicate a CHIP-8 ROM, loading as raw binary",
			log.String("file", path))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	program, err := l.LoadFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("loading ROM %s: %w", path, err)
	}

	l.logger.Debug("Loaded ROM",
		log.String("file", path),
		log.Int("size", len(program)))
	return program, nil
}

// LoadFromReader reads a raw ROM image and returns the program bytes.
func (l *Loader) LoadFromReader(reader io.Reader) ([]byte, error) {
	counter := &countingReader{reader: reader}
	cart, err := cartridge.LoadBuffer(counter)
	if err != nil {
		return nil, fmt.Errorf("loading buffer: %w", err)
	}

	size := counter.count
	switch {
	case size == 0:
		return nil, ErrEmptyROM
	case size > vm.MaxProgramSize:
		return nil, fmt.Errorf("%w: %d bytes exceed the available %d bytes",
			vm.ErrProgramTooLarge, size, vm.MaxProgramSize)
	}

	// the buffer is padded to a full bank, only the bytes read belong to the program
	program := make([]byte, size)
	copy(program, cart.PRG[:size])
	return program, nil
}

// countingReader counts the bytes read through it.
type countingReader struct {
	reader io.Reader
	count  int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.reader.Read(p)
	c.count += n
	return n, err
}
