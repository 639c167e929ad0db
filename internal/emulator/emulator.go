// Package emulator synthesizes spoke data in place of a live radar, for
// development and demoing without hardware. Grounded on
// CRMControl::EmulateFakeBuffer: a 24 RPM rotation painting an outer
// detection ring plus a rotating square-grid pattern at a fixed 2308m range.
package emulator

import "github.com/banshee-data/radardrv/internal/wire"

// rangeMeters is the fixed sample range EmulateFakeBuffer reports.
const rangeMeters = 2308

// DisplayRangeMeters is the fixed display range EmulateFakeBuffer reports.
const DisplayRangeMeters = 3000

// ticksPerSecond matches MILLIS_PER_SELECT's 250ms cadence in the original.
const ticksPerSecond = 4

// SpokesPerTick is the synthetic spoke count emitted per 250ms tick for a
// 24 RPM rotation: SPOKES * 24/60 * 250/1000, truncated exactly as the
// original's integer arithmetic does.
const SpokesPerTick = wire.SPOKES * 24 / 60 * 250 / 1000

// Spoke is one synthetic spoke. Azimuth is a plain spoke index in
// [0, SPOKES) — callers run it through the same angle/bearing computation
// (internal/spoke.Orient) used for real scan data, per §4.E.
type Spoke struct {
	Azimuth     uint32
	Samples     []byte
	RangeMeters int
}

// Generator holds the rotating-pattern state across ticks.
type Generator struct {
	nextSpoke    uint32
	nextRotation uint32
}

// NewGenerator returns a generator starting at spoke 0.
func NewGenerator() *Generator {
	return &Generator{}
}

// Tick produces one 250ms tick's worth of synthetic spokes.
func (g *Generator) Tick() []Spoke {
	g.nextRotation = (g.nextRotation + 1) % wire.SPOKES

	out := make([]Spoke, 0, SpokesPerTick)
	for i := 0; i < SpokesPerTick; i++ {
		azimuth := g.nextSpoke
		g.nextSpoke = (g.nextSpoke + 1) % wire.SPOKES

		data := make([]byte, wire.RETURNS_PER_LINE)
		phase := azimuth + g.nextRotation
		for r := range data {
			bit := uint(r >> 7)
			var colour byte
			if ((phase)>>5)&(2<<bit) > 0 {
				colour = byte(r / 2)
			}
			if r > len(data)-10 {
				if phase%wire.SPOKES <= 8 {
					colour = 255
				} else {
					colour = 0
				}
			}
			data[r] = colour
		}
		out = append(out, Spoke{Azimuth: azimuth, Samples: data, RangeMeters: rangeMeters})
	}
	return out
}
