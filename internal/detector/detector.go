// Package detector handles system architecture detection.
package detector

import (
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// Detector handles system architecture detection from file extensions.
type Detector struct {
	logger *log.Logger
}

// New creates a new system detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the system architecture from the file extension.
// It returns an empty system for files that are not known CHIP-8 ROMs.
func (d *Detector) Detect(filename string) arch.System {
	system := detectFromFile(filename)
	d.logger.Debug("Auto-detected system",
		log.Stringer("system", system),
		log.String("file", filename))
	return system
}

// detectFromFile determines the system type based on file extension.
func detectFromFile(filename string) arch.System {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".ch8", ".c8", ".rom":
		return arch.CHIP8System
	default:
		return ""
	}
}
