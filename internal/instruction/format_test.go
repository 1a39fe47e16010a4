package instruction

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestInstructionString(t *testing.T) {
	tests := []struct {
		opcode   uint16
		expected string
	}{
		{0x00E0, "cls"},
		{0x00EE, "ret"},
		{0x0AE0, "cls"},
		{0x1234, "jp $234"},
		{0x2300, "call $300"},
		{0x3234, "se V2, $34"},
		{0x4A01, "sne VA, $01"},
		{0x5120, "se V1, V2"},
		{0x6005, "ld V0, $05"},
		{0x7103, "add V1, $03"},
		{0x8010, "ld V0, V1"},
		{0x8014, "add V0, V1"},
		{0x8457, "subn V4, V5"},
		{0x8306, "shr V3"},
		{0x830E, "shl V3"},
		{0x9120, "sne V1, V2"},
		{0xA2F0, "ld I, $2F0"},
		{0xB400, "jp V0, $400"},
		{0xC30F, "rnd V3, $0F"},
		{0xD125, "drw V1, V2, $5"},
		{0xE59E, "skp V5"},
		{0xE5A1, "sknp V5"},
		{0xF107, "ld V1, DT"},
		{0xF20A, "ld V2, K"},
		{0xF315, "ld DT, V3"},
		{0xF418, "ld ST, V4"},
		{0xF51E, "add I, V5"},
		{0xF629, "ld F, V6"},
		{0xF733, "ld B, V7"},
		{0xF855, "ld [I], V8"},
		{0xF965, "ld V9, [I]"},
		{0x0123, ".word $0123"},
		{0xFFFF, ".word $FFFF"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, Decode(tt.opcode).String())
		})
	}
}

func TestInstructionName(t *testing.T) {
	for op := Unknown + 1; op < opCount; op++ {
		ins := Instruction{Op: op}
		assert.NotEmpty(t, ins.Name())
	}
	assert.Equal(t, "", Instruction{Op: Unknown}.Name())
}
