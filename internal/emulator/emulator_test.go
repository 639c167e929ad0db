package emulator

import (
	"testing"

	"github.com/banshee-data/radardrv/internal/wire"
	"github.com/stretchr/testify/require"
)

func TestTick_ProducesExpectedSpokeCount(t *testing.T) {
	g := NewGenerator()
	spokes := g.Tick()
	require.Len(t, spokes, SpokesPerTick)
}

func TestTick_SpokesAreModular(t *testing.T) {
	g := NewGenerator()
	for i := 0; i < 3; i++ {
		for _, s := range g.Tick() {
			require.Less(t, s.Azimuth, uint32(wire.SPOKES))
			require.Len(t, s.Samples, wire.RETURNS_PER_LINE)
			require.Equal(t, rangeMeters, s.RangeMeters)
		}
	}
}

func TestTick_AdvancesSpokeIndexAcrossTicks(t *testing.T) {
	g := NewGenerator()
	first := g.Tick()
	second := g.Tick()
	require.Equal(t, (first[len(first)-1].Azimuth+1)%wire.SPOKES, second[0].Azimuth)
}
