package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeBearingOffset_ScenarioS2(t *testing.T) {
	got := EncodeBearingOffset(-450)
	require.Equal(t, []byte{0x07, 0x82, 0x01, 0x00, 0x3E, 0xFE, 0xFF, 0xFF}, got)
}

func TestEncodeSetRange_OnlyMutatesValueOffset(t *testing.T) {
	got := EncodeSetRange(5)
	want := clone(tmplSetRange)
	want[8] = 5
	require.Equal(t, want, got)
	require.Equal(t, byte(0x05), got[8])
}

func TestEncodeCurveSelect_MapsRegistryIndexToWireByte(t *testing.T) {
	// STC_CURVE index 6 (1-based) maps through curveValues to wire byte 8.
	got := EncodeCurveSelect(6)
	require.Equal(t, byte(8), got[4])
}

func TestEncodeTXControl_Modes(t *testing.T) {
	require.Equal(t, byte(0), EncodeTXControl(0)[4])
	require.Equal(t, byte(1), EncodeTXControl(1)[4])
	require.Equal(t, byte(3), EncodeTXControl(3)[4])
}

func TestEncodeInterferenceRejection_RejectsOutOfRange(t *testing.T) {
	require.NotNil(t, EncodeInterferenceRejection(2))
	require.Nil(t, EncodeInterferenceRejection(3))
}

func TestEncodeTargetExpansion_RejectsOutOfRange(t *testing.T) {
	require.NotNil(t, EncodeTargetExpansion(0))
	require.Nil(t, EncodeTargetExpansion(200))
}

func TestEncoders_OnlyTouchDocumentedOffset(t *testing.T) {
	// Spot-check a multi-byte-fixed-prefix template: everything but the
	// documented mutable offset must equal the reference template exactly.
	base := clone(tmplSetGain)
	got := EncodeSetGain(42)
	for i := range base {
		if i == 20 {
			continue
		}
		require.Equalf(t, base[i], got[i], "byte %d should be unchanged", i)
	}
	require.Equal(t, byte(42), got[20])
}
