package wire

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestDecodeAnnounce_ScenarioS4 pins the asymmetric byte-order handling
// described by spec: mcast_ip/radar_ip big-endian, mcast_port/radar_port
// the low 16 bits of their field, also big-endian.
func TestDecodeAnnounce_ScenarioS4(t *testing.T) {
	b := make([]byte, AnnounceRecordSize)
	putLE32(b, 0, 1)                // type
	putLE32(b, 4, 42)               // dev_id
	putLE32(b, 8, FuncIDDataEndpoint) // func_id
	// mcast_ip = 0x01020304, stored so that a big-endian read recovers it
	binary.BigEndian.PutUint32(b[20:24], 0x01020304)
	// mcast_port: low 16 bits big-endian-readable as 5801
	binary.BigEndian.PutUint16(b[24:26], 5801)
	binary.BigEndian.PutUint32(b[28:32], 0xA0A0A0A0)
	binary.BigEndian.PutUint16(b[32:34], 1234)

	a, err := DecodeAnnounce(b)
	require.NoError(t, err)
	require.Equal(t, uint32(FuncIDDataEndpoint), a.FuncID)
	require.Equal(t, uint32(0x01020304), a.McastIP)
	require.Equal(t, uint16(5801), a.McastPort)
	require.Equal(t, uint32(0xA0A0A0A0), a.RadarIP)
	require.Equal(t, uint16(1234), a.RadarPort)
}

func TestDecodeAnnounce_ShortPacket(t *testing.T) {
	_, err := DecodeAnnounce(make([]byte, 10))
	require.ErrorIs(t, err, ErrShortPacket)
}
