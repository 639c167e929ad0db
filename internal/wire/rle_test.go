package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeRLE_ScenarioS1(t *testing.T) {
	src := []byte{0x12, 0x5C, 0x03, 0xAB, 0x34}
	out := decodeRLE(src, len(src), len(src))

	require.Len(t, out, RETURNS_PER_LINE)
	require.Equal(t,
		[]byte{0x2F, 0x1F, 0xBF, 0xAF, 0xBF, 0xAF, 0xBF, 0xAF, 0x4F, 0x3F},
		out[:10],
	)
}

func TestDecodeRLE_AlwaysProduces512Bytes(t *testing.T) {
	cases := [][]byte{
		{},
		{0x00},
		{0x5C, 0x02, 0xFF},
		{0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC, 0xDE, 0xF0},
	}
	for _, src := range cases {
		out := decodeRLE(src, len(src), len(src)+64)
		require.Len(t, out, RETURNS_PER_LINE)
	}
}

func TestDecodeRLE_TailFixupOmitsPadding(t *testing.T) {
	// A single non-escape byte under data_len=1 leaves 510 bytes short; the
	// tail fixup must keep consuming (without | 0x0F padding) until full.
	src := make([]byte, 1+300)
	src[0] = 0x00
	for i := 1; i < len(src); i++ {
		src[i] = 0xF0
	}
	out := decodeRLE(src, 1, len(src))
	require.Len(t, out, RETURNS_PER_LINE)
	// First pair comes from the main loop (with padding).
	require.Equal(t, byte(0x0F), out[0])
	require.Equal(t, byte(0x0F), out[1])
	// Tail-fixup pairs have no low-nibble padding: 0xF0 expands to (0x00, 0xF0).
	require.Equal(t, byte(0x00), out[2])
	require.Equal(t, byte(0xF0), out[3])
}
