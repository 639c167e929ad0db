// Package spoke turns decoded radar spokes into display-ready bearings and
// tracks missing-spoke gaps across a revolution, per the angle/bearing math
// in the original plugin's ProcessScanData and EmulateFakeBuffer tails.
package spoke

import "github.com/banshee-data/radardrv/internal/wire"

// degreesToRaw mirrors SCALE_DEGREES_TO_RAW: the radar's raw angle unit is
// half of (360/SPOKES) degrees, so that a full rotation is 2*SPOKES raw
// units (spokes are emitted at half the raw resolution).
func degreesToRaw(degrees float64) int {
	return int(degrees * float64(wire.SPOKES) * 2 / 360.0)
}

// modRotation wraps a raw spoke index into [0, SPOKES).
func modRotation(v int) uint32 {
	m := v % wire.SPOKES
	if m < 0 {
		m += wire.SPOKES
	}
	return uint32(m)
}

// Oriented is a spoke translated into display angle/bearing, ready for
// rendering or storage.
type Oriented struct {
	Angle   uint32 // raw spoke index, rotation-compensated
	Bearing uint32 // angle plus vessel heading and viewpoint rotation
	Samples []byte
	Range   int
}

// Orient computes angle_raw and bearing_raw for a decoded spoke and folds
// both down to the [0, SPOKES) display domain, per §4.E:
//
//	angle_raw   = spokeIndex*2 + degreesToRaw(180)
//	bearing_raw = angle_raw + degreesToRaw(headingDeg + viewpointRotationDeg)
func Orient(spokeIndex uint32, headingDeg, viewpointRotationDeg float64, samples []byte, rangeMeters int) Oriented {
	angleRaw := int(spokeIndex)*2 + degreesToRaw(180)
	bearingRaw := angleRaw + degreesToRaw(headingDeg+viewpointRotationDeg)

	return Oriented{
		Angle:   modRotation(angleRaw / 2),
		Bearing: modRotation(bearingRaw / 2),
		Samples: samples,
		Range:   rangeMeters,
	}
}

// GapTracker counts missing spokes across a revolution by watching for
// discontinuities in the azimuth sequence, per §4.E. The first spoke seen
// after construction or Reset never counts as missing.
type GapTracker struct {
	expected     uint32
	haveExpected bool
	missing      uint64
}

// NewGapTracker returns a tracker with no expectation set yet.
func NewGapTracker() *GapTracker {
	return &GapTracker{}
}

// Observe records receipt of spokeIndex, updating the missing-spoke count
// and returning the gap counted for this observation (0 on the first call
// or an in-sequence spoke).
func (g *GapTracker) Observe(spokeIndex uint32) uint64 {
	if !g.haveExpected {
		g.haveExpected = true
		g.expected = (spokeIndex + 1) % wire.SPOKES
		return 0
	}

	var gap uint64
	if spokeIndex != g.expected {
		raw := int64(spokeIndex) - int64(g.expected)
		raw %= wire.SPOKES
		if raw < 0 {
			raw += wire.SPOKES
		}
		gap = uint64(raw)
		g.missing += gap
	}
	g.expected = (spokeIndex + 1) % wire.SPOKES
	return gap
}

// Missing returns the cumulative missing-spoke count since construction or
// the last Reset.
func (g *GapTracker) Missing() uint64 {
	return g.missing
}

// Reset clears the expectation and counter, used when a session tears down
// its sockets and drops to OFF, so that gap accounting for the next session
// starts clean.
func (g *GapTracker) Reset() {
	g.haveExpected = false
	g.expected = 0
	g.missing = 0
}
