package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPeekMsgID(t *testing.T) {
	b := make([]byte, 8)
	putLE32(b, 0, MsgScanData)
	id, ok := PeekMsgID(b)
	require.True(t, ok)
	require.Equal(t, MsgScanData, id)
}

func TestPeekMsgID_TooShort(t *testing.T) {
	_, ok := PeekMsgID([]byte{0x01, 0x02})
	require.False(t, ok)
}
