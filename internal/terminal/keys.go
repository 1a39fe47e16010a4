package terminal

import "time"

// DefaultHoldTime is the duration a key counts as held after its last press.
// Terminals only report presses, releases are synthesized once it expires.
const DefaultHoldTime = 100 * time.Millisecond

const (
	ctrlC  = 0x03
	escape = 0x1B
)

// keyMap maps the left side of a QWERTY keyboard to the COSMAC VIP keypad:
//
//	1 2 3 4      1 2 3 C
//	q w e r  ->  4 5 6 D
//	a s d f      7 8 9 E
//	z x c v      A 0 B F
var keyMap = map[byte]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// arrowMap maps the final byte of the arrow key escape sequences to the
// keypad directions used by most games.
var arrowMap = map[byte]uint8{
	'A': 0x2, // up
	'B': 0x8, // down
	'C': 0x6, // right
	'D': 0x4, // left
}

// MapKey returns the keypad index for a terminal character.
func MapKey(b byte) (uint8, bool) {
	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}
	key, ok := keyMap[b]
	return key, ok
}

// Decode translates a chunk of terminal input to keypad presses. It reports
// whether a quit was requested by Ctrl-C or a lone escape key.
func Decode(chunk []byte) ([]uint8, bool) {
	var keys []uint8

	for i := 0; i < len(chunk); i++ {
		b := chunk[i]
		switch b {
		case ctrlC:
			return keys, true

		case escape:
			if i+1 >= len(chunk) {
				return keys, true
			}
			// CSI and SS3 arrow sequences
			if (chunk[i+1] == '[' || chunk[i+1] == 'O') && i+2 < len(chunk) {
				if key, ok := arrowMap[chunk[i+2]]; ok {
					keys = append(keys, key)
				}
				i += 2
				continue
			}
			i++ // alt modified character

		default:
			if key, ok := MapKey(b); ok {
				keys = append(keys, key)
			}
		}
	}
	return keys, false
}

// keyTracker synthesizes key releases for terminals that only report presses.
type keyTracker struct {
	hold     time.Duration
	deadline [16]time.Time
	held     [16]bool
}

func newKeyTracker(hold time.Duration) *keyTracker {
	return &keyTracker{hold: hold}
}

// press records a press of the key. A press of a held key extends its hold
// time, the key is released only once.
func (k *keyTracker) press(key uint8, now time.Time) {
	k.deadline[key] = now.Add(k.hold)
	k.held[key] = true
}

// expire returns the keys whose hold time elapsed and marks them released.
func (k *keyTracker) expire(now time.Time) []uint8 {
	var released []uint8
	for key := range k.held {
		if k.held[key] && !now.Before(k.deadline[key]) {
			k.held[key] = false
			released = append(released, uint8(key))
		}
	}
	return released
}
