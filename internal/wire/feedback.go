package wire

// Feedback is the decoded 0x00010001 record: a snapshot of radar runtime
// state and every control's current value/auto-flag.
type Feedback struct {
	RangeValues [11]uint32

	Status       byte // 0 standby, 1 transmit, 2 warmup, 3 off, 6 shutting down
	WarmupTime   byte
	SignalBars   byte
	RangeID      byte
	AutoGain     byte
	Gain         uint32
	AutoSea      byte // 0 disabled, 1 harbour, 2 offshore, 3 coastal
	SeaValue     byte
	RainEnabled  byte
	RainValue    byte
	FTCEnabled   byte
	FTCValue     byte
	AutoTune     byte
	Tune         byte
	BearingOff   int16 // tenths of a degree; left negative, right positive
	InterfRej    byte
	TargetExp    byte
	MBSEnabled   byte
}

// feedbackSize is sizeof(SRadarFeedback) with #pragma pack(push,1): a 4-byte
// type, 11 range values, 33 reserved words, then the byte-granular runtime
// fields through mbs_enabled. 245 bytes total.
const feedbackSize = 245

// DecodeFeedback parses a 0x00010001 record. The leading 4-byte msg_id has
// already been identified by the caller but is re-read here since offsets
// below are relative to the start of the record, matching SRadarFeedback.
func DecodeFeedback(b []byte) (Feedback, error) {
	if len(b) < feedbackSize {
		return Feedback{}, ErrShortPacket
	}
	var f Feedback
	for i := 0; i < 11; i++ {
		f.RangeValues[i] = le32(b, 4+i*4)
	}
	// range_values ends at offset 48; something_1[33] (132 bytes) runs to 180.
	f.Status = b[180]
	// something_2[3] at 181..183
	f.WarmupTime = b[184]
	f.SignalBars = b[185]
	// something_3[7] at 186..192
	f.RangeID = b[193]
	// something_4[2] at 194..195
	f.AutoGain = b[196]
	// something_5[3] at 197..199
	f.Gain = le32(b, 200)
	f.AutoSea = b[204]
	// something_6[3] at 205..207
	f.SeaValue = b[208]
	f.RainEnabled = b[209]
	// something_7[3] at 210..212
	f.RainValue = b[213]
	f.FTCEnabled = b[214]
	// something_8[3] at 215..217
	f.FTCValue = b[218]
	f.AutoTune = b[219]
	// something_9[3] at 220..222
	f.Tune = b[223]
	f.BearingOff = int16(le16(b, 224))
	f.InterfRej = b[226]
	// something_10[3] at 227..229
	f.TargetExp = b[230]
	// something_11[13] at 231..243
	f.MBSEnabled = b[244]
	return f, nil
}

// PresetFeedback is the decoded 0x00010002 record: magnetron telemetry,
// rotation period, STC preset bounds, tune triplets, and control min/max.
type PresetFeedback struct {
	MagnetronHours      uint16
	MagnetronCurrent    byte
	RotationTimeMillis  uint16
	STCPresetMax        byte
	CoarseTuneArr       [3]byte
	FineTuneArr         [3]byte
	DisplayTimingValue  byte
	STCPresetValue      byte
	MinGain, MaxGain    byte
	MinSea, MaxSea      byte
	MinRain, MaxRain    byte
	MinFTC, MaxFTC      byte
	GainValue           byte
	SeaValue            byte
	FineTuneValue       byte
	CoarseTuneValue     byte
	SignalStrengthValue byte
}

// presetFeedbackSize is sizeof(SRadarPresetFeedback), 308 bytes.
const presetFeedbackSize = 308

// DecodePresetFeedback parses a 0x00010002 record.
func DecodePresetFeedback(b []byte) (PresetFeedback, error) {
	if len(b) < presetFeedbackSize {
		return PresetFeedback{}, ErrShortPacket
	}
	var p PresetFeedback
	// type at 0..3; something_1[213] at 4..216
	p.MagnetronHours = le16(b, 217)
	// something_2[6] at 219..224
	p.MagnetronCurrent = b[225]
	// something_3[11] at 226..236
	p.RotationTimeMillis = le16(b, 237)
	// something_4[13] at 239..251
	p.STCPresetMax = b[252]
	// something_5[2] at 253..254
	copy(p.CoarseTuneArr[:], b[255:258])
	copy(p.FineTuneArr[:], b[258:261])
	// something_6[6] at 261..266
	p.DisplayTimingValue = b[267]
	// something_7[12] at 268..279
	p.STCPresetValue = b[280]
	// something_8[12] at 281..292
	p.MinGain = b[293]
	p.MaxGain = b[294]
	p.MinSea = b[295]
	p.MaxSea = b[296]
	p.MinRain = b[297]
	p.MaxRain = b[298]
	p.MinFTC = b[299]
	p.MaxFTC = b[300]
	p.GainValue = b[301]
	p.SeaValue = b[302]
	p.FineTuneValue = b[303]
	p.CoarseTuneValue = b[304]
	p.SignalStrengthValue = b[305]
	// something_9[2] at 306..307
	return p, nil
}

// curveFeedbackSize is sizeof(SCurveFeedback), 5 bytes.
const curveFeedbackSize = 5

// DecodeCurveFeedback parses a 0x00010005 record. curveRaw is one of
// {0,1,2,4,6,8,10,13}; CurveIndex maps it to the registry-facing 1..8 index.
func DecodeCurveFeedback(b []byte) (curveRaw byte, err error) {
	if len(b) < curveFeedbackSize {
		return 0, ErrShortPacket
	}
	return b[4], nil
}

// CurveIndex maps a raw curve-feedback byte to the 1..8 index the control
// registry exposes. Returns 0, false if raw does not match a known curve.
func CurveIndex(raw byte) (byte, bool) {
	for i, v := range curveValues {
		if v == raw {
			return byte(i + 1), true
		}
	}
	return 0, false
}
