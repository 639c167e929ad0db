package wire

// Command templates. Each is a fixed byte sequence copied verbatim from
// reference captures; encoders overwrite only the documented mutable
// offset(s) and must never otherwise alter the template. Reproducing these
// bit-for-bit is what makes the radar accept the command at all.

var (
	tmplTXControl = []byte{
		0x01, 0x80, 0x01, 0x00,
		0x00, // offset 4: 0=off, 1=on, 3=shutdown
		0x00, 0x00, 0x00,
	}

	tmpl1sKeepalive = []byte{
		0x00, 0x80, 0x01, 0x00, 0x52, 0x41, 0x44, 0x41, 0x52, 0x00, 0x00, 0x00,
	}

	tmpl5sKeepalive = []byte{
		0x03, 0x89, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x68, 0x01, 0x00, 0x00,
		0x9e, 0x03, 0x00, 0x00, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}

	tmplOnceInit = []byte{
		0x02, 0x81, 0x01, 0x00, 0x7d, 0x00, 0x00, 0x00, 0xfa, 0x00, 0x00, 0x00,
		0xf4, 0x01, 0x00, 0x00, 0xee, 0x02, 0x00, 0x00, 0xdc, 0x05, 0x00, 0x00,
		0xb8, 0x0b, 0x00, 0x00, 0x70, 0x17, 0x00, 0x00, 0xe0, 0x2e, 0x00, 0x00,
		0xc0, 0x5d, 0x00, 0x00, 0x80, 0xbb, 0x00, 0x00, 0x40, 0x19, 0x01, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}

	tmplWakeup = []byte("ABCDEFGHIJKLMNOP")

	tmplSetRange = []byte{
		0x01, 0x81, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00,
		0x01, // offset 8: range index 0..10
		0x00, 0x00, 0x00,
	}

	tmplMBSEnable = []byte{
		0x01, 0x82, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00, // offset 16: 0/1
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}

	tmplDisplayTiming = []byte{
		0x02, 0x82, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00,
		0x6d, // offset 8
		0x00, 0x00, 0x00,
	}

	tmplSTCPreset = []byte{
		0x03, 0x82, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00,
		0x74, // offset 8
		0x00, 0x00, 0x00,
	}

	tmplCoarseTune = []byte{
		0x04, 0x82, 0x01, 0x00,
		0x00, // offset 4
		0x00, 0x00, 0x00,
	}

	tmplBearingOffset = []byte{
		0x07, 0x82, 0x01, 0x00,
		0x14, 0x00, 0x00, 0x00, // offset 4: signed i32
	}

	tmplSetSea = []byte{
		0x02, 0x83, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, // offset 20
		0x00, 0x00, 0x00,
	}

	tmplSeaAuto = []byte{
		0x02, 0x83, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x01, // offset 16: 0..3
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}

	tmplSetGain = []byte{
		0x01, 0x83, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, // offset 20
		0x00, 0x00, 0x00,
	}

	tmplGainAuto = []byte{
		0x01, 0x83, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x01, // offset 16: auto=1, manual=0
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}

	tmplRainEnable = []byte{
		0x03, 0x83, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x01, // offset 16
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}

	tmplRainSet = []byte{
		0x03, 0x83, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x33, // offset 20
		0x00, 0x00, 0x00,
	}

	tmplFTCEnable = []byte{
		0x04, 0x83, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x01, // offset 16
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}

	tmplFTCSet = []byte{
		0x04, 0x83, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x1a, // offset 20
		0x00, 0x00, 0x00,
	}

	tmplTuneAuto = []byte{
		0x05, 0x83, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x01, // offset 12
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}

	tmplTuneFine = []byte{
		0x05, 0x83, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00, // offset 16
		0x00, 0x00, 0x00,
	}

	tmplTargetExpansion = []byte{
		0x06, 0x83, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00,
		0x00, // offset 8: 0..2
		0x00, 0x00, 0x00,
	}

	tmplInterferenceRejection = []byte{
		0x07, 0x83, 0x01, 0x00,
		0x01, // offset 4: 0..2
		0x00, 0x00, 0x00,
	}

	tmplCurveSelect = []byte{
		0x0a, 0x83, 0x01, 0x00,
		0x01, // offset 4
	}
)

// curveValues maps a 1..8 curve index to the byte the radar expects on the wire.
var curveValues = [8]byte{0, 1, 2, 4, 6, 8, 10, 13}

func clone(tmpl []byte) []byte {
	out := make([]byte, len(tmpl))
	copy(out, tmpl)
	return out
}

// EncodeTXControl builds the TX on/off/shutdown datagram. mode is 0=off,
// 1=on, 3=shutdown.
func EncodeTXControl(mode byte) []byte {
	b := clone(tmplTXControl)
	b[4] = mode
	return b
}

// Encode1sKeepalive returns the fixed 1-second heartbeat datagram.
func Encode1sKeepalive() []byte { return clone(tmpl1sKeepalive) }

// Encode5sKeepalive returns the fixed 5-second status-poll datagram.
func Encode5sKeepalive() []byte { return clone(tmpl5sKeepalive) }

// EncodeOnceInit returns the fixed init-burst datagram sent once after the
// data receiver opens.
func EncodeOnceInit() []byte { return clone(tmplOnceInit) }

// EncodeWakeup returns the 16-byte wakeup payload, sent 10x at 10ms cadence
// to the announce group.
func EncodeWakeup() []byte { return clone(tmplWakeup) }

// EncodeSetRange builds a set-range command. idx is the range table index 0..10.
func EncodeSetRange(idx byte) []byte {
	b := clone(tmplSetRange)
	b[8] = idx
	return b
}

// EncodeMBSEnable builds the Main Bang Suppression enable/disable command.
func EncodeMBSEnable(enabled bool) []byte {
	b := clone(tmplMBSEnable)
	b[16] = boolByte(enabled)
	return b
}

// EncodeDisplayTiming builds the display timing command.
func EncodeDisplayTiming(value byte) []byte {
	b := clone(tmplDisplayTiming)
	b[8] = value
	return b
}

// EncodeSTCPreset builds the STC preset selection command.
func EncodeSTCPreset(value byte) []byte {
	b := clone(tmplSTCPreset)
	b[8] = value
	return b
}

// EncodeCoarseTune builds the coarse-tune command.
func EncodeCoarseTune(value byte) []byte {
	b := clone(tmplCoarseTune)
	b[4] = value
	return b
}

// EncodeBearingOffset builds the bearing-offset command. value is signed
// tenths of a degree, range -1800..1795, sign-extended into a 32-bit field.
func EncodeBearingOffset(value int32) []byte {
	b := clone(tmplBearingOffset)
	putLE32(b, 4, uint32(value))
	return b
}

// EncodeSetSea builds the manual sea-clutter value command.
func EncodeSetSea(value byte) []byte {
	b := clone(tmplSetSea)
	b[20] = value
	return b
}

// EncodeSeaAuto builds the sea-clutter auto-mode selector command (0..3).
func EncodeSeaAuto(value byte) []byte {
	b := clone(tmplSeaAuto)
	b[16] = value
	return b
}

// EncodeSetGain builds the manual gain value command.
func EncodeSetGain(value byte) []byte {
	b := clone(tmplSetGain)
	b[20] = value
	return b
}

// EncodeGainAuto builds the gain auto/manual toggle command.
func EncodeGainAuto(auto bool) []byte {
	b := clone(tmplGainAuto)
	b[16] = boolByte(auto)
	return b
}

// EncodeRainEnable builds the rain-clutter filter enable/disable command.
func EncodeRainEnable(enabled bool) []byte {
	b := clone(tmplRainEnable)
	b[16] = boolByte(enabled)
	return b
}

// EncodeRainSet builds the rain-clutter value command.
func EncodeRainSet(value byte) []byte {
	b := clone(tmplRainSet)
	b[20] = value
	return b
}

// EncodeFTCEnable builds the FTC enable/disable command.
func EncodeFTCEnable(enabled bool) []byte {
	b := clone(tmplFTCEnable)
	b[16] = boolByte(enabled)
	return b
}

// EncodeFTCSet builds the FTC value command.
func EncodeFTCSet(value byte) []byte {
	b := clone(tmplFTCSet)
	b[20] = value
	return b
}

// EncodeTuneAuto builds the tune auto/manual toggle command.
func EncodeTuneAuto(auto bool) []byte {
	b := clone(tmplTuneAuto)
	b[12] = boolByte(auto)
	return b
}

// EncodeTuneFine builds the fine-tune value command.
func EncodeTuneFine(value byte) []byte {
	b := clone(tmplTuneFine)
	b[16] = value
	return b
}

// EncodeTargetExpansion builds the target-expansion command. Returns nil if
// value is out of range (0..2); callers must treat a nil result as rejected.
func EncodeTargetExpansion(value byte) []byte {
	if value > 2 {
		return nil
	}
	b := clone(tmplTargetExpansion)
	b[8] = value
	return b
}

// EncodeInterferenceRejection builds the interference-rejection command.
// Returns nil if value is out of range (0..2).
func EncodeInterferenceRejection(value byte) []byte {
	if value > 2 {
		return nil
	}
	b := clone(tmplInterferenceRejection)
	b[4] = value
	return b
}

// EncodeCurveSelect builds the sea-clutter curve command. id is the
// registry-facing curve index 1..8; it is mapped through curveValues to the
// wire byte the radar expects.
func EncodeCurveSelect(id byte) []byte {
	b := clone(tmplCurveSelect)
	b[4] = curveValues[id-1]
	return b
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}
