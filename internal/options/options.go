// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input string `flag:"i" usage:"input ROM file"`
	Wav   string `flag:"wav" usage:"record the sound output to a .wav file"`
}

// Flags contains behavior options.
type Flags struct {
	Cycles   int    `flag:"cycles" usage:"instructions executed per frame" default:"12"`
	Hz       int    `flag:"hz" usage:"frames per second, the timers always count down at 60 Hz" default:"60"`
	Frames   int    `flag:"frames" usage:"stop after the given number of frames (0: run until quit)"`
	Latch    string `flag:"latch" usage:"key latch policy for wait for key: every, empty" default:"every"`
	Seed     uint64 `flag:"seed" usage:"random number seed (0: time based)"`
	Headless bool   `flag:"headless" usage:"run without terminal and sound, print the final display"`
	Mute     bool   `flag:"mute" usage:"disable the sound output"`
	Trace    bool   `flag:"trace" usage:"log every executed instruction, requires -debug"`
	Debug    bool   `flag:"debug" usage:"enable debug logging"`
	Quiet    bool   `flag:"q" usage:"quiet mode"`
}

// OutputFlags contains listing formatting options.
type OutputFlags struct {
	Listing       bool `flag:"l" usage:"print a disassembly listing of the ROM instead of running it"`
	NoHexComments bool `flag:"nohexcomments" usage:"omit hex opcode bytes in listing comments"`
	NoOffsets     bool `flag:"nooffsets" usage:"omit addresses in listing comments"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	OutputFlags
}

// Default values of the options.
const (
	DefaultCycles = 12
	DefaultHz     = 60
	DefaultLatch  = "every"
)
