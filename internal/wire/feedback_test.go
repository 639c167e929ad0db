package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func makeFeedbackFixture() []byte {
	b := make([]byte, feedbackSize)
	putLE32(b, 0, MsgFeedback)
	for i := 0; i < 11; i++ {
		putLE32(b, 4+i*4, uint32(1000+i))
	}
	b[180] = StatusTransmit
	b[184] = 12  // warmup
	b[185] = 3   // signal bars
	b[193] = 5   // range id
	b[196] = 1   // auto gain
	putLE32(b, 200, 50) // gain
	b[204] = 2   // auto sea
	b[208] = 30  // sea value
	b[209] = 1   // rain enabled
	b[213] = 40  // rain value
	b[214] = 0   // ftc enabled
	b[218] = 10  // ftc value
	b[219] = 1   // auto tune
	b[223] = 20  // tune
	// bearing offset -450 tenths of a degree, little-endian int16
	bo := uint16(int16(-450))
	b[224] = byte(bo)
	b[225] = byte(bo >> 8)
	b[226] = 1 // interference rejection
	b[230] = 2 // target expansion
	b[244] = 1 // mbs enabled
	return b
}

func TestDecodeFeedback(t *testing.T) {
	b := makeFeedbackFixture()
	f, err := DecodeFeedback(b)
	require.NoError(t, err)
	require.Equal(t, StatusTransmit, f.Status)
	require.Equal(t, byte(12), f.WarmupTime)
	require.Equal(t, byte(3), f.SignalBars)
	require.Equal(t, byte(5), f.RangeID)
	require.Equal(t, byte(1), f.AutoGain)
	require.Equal(t, uint32(50), f.Gain)
	require.Equal(t, byte(2), f.AutoSea)
	require.Equal(t, byte(30), f.SeaValue)
	require.Equal(t, int16(-450), f.BearingOff)
	require.Equal(t, byte(1), f.InterfRej)
	require.Equal(t, byte(2), f.TargetExp)
	require.Equal(t, byte(1), f.MBSEnabled)
	require.Equal(t, uint32(1000), f.RangeValues[0])
	require.Equal(t, uint32(1010), f.RangeValues[10])
}

func TestDecodeFeedback_ShortPacket(t *testing.T) {
	_, err := DecodeFeedback(make([]byte, 10))
	require.ErrorIs(t, err, ErrShortPacket)
}

func TestDecodeCurveFeedback_ScenarioS6(t *testing.T) {
	b := make([]byte, curveFeedbackSize)
	putLE32(b, 0, MsgCurveFeedback)
	b[4] = 8

	raw, err := DecodeCurveFeedback(b)
	require.NoError(t, err)
	require.Equal(t, byte(8), raw)

	idx, ok := CurveIndex(raw)
	require.True(t, ok)
	require.Equal(t, byte(6), idx)
}

func TestDecodePresetFeedback(t *testing.T) {
	b := make([]byte, presetFeedbackSize)
	putLE32(b, 0, MsgPresetFeedback)
	b[217] = 0x34
	b[218] = 0x12 // magnetron hours = 0x1234 little endian
	b[225] = 7    // magnetron current
	b[237] = 0x2C
	b[238] = 0x01 // rotation time = 0x012C little endian = 300
	b[293] = 1    // min gain
	b[294] = 99   // max gain
	p, err := DecodePresetFeedback(b)
	require.NoError(t, err)
	require.Equal(t, uint16(0x1234), p.MagnetronHours)
	require.Equal(t, byte(7), p.MagnetronCurrent)
	require.Equal(t, uint16(300), p.RotationTimeMillis)
	require.Equal(t, byte(1), p.MinGain)
	require.Equal(t, byte(99), p.MaxGain)
}
