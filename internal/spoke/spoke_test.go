package spoke

import (
	"testing"

	"github.com/banshee-data/radardrv/internal/wire"
	"github.com/stretchr/testify/require"
)

func TestOrient_NoRotationWrapsWithinDomain(t *testing.T) {
	o := Orient(0, 0, 0, nil, 2308)
	require.Less(t, o.Angle, uint32(wire.SPOKES))
	require.Less(t, o.Bearing, uint32(wire.SPOKES))
}

func TestOrient_HeadingAffectsBearingNotAngle(t *testing.T) {
	a := Orient(500, 0, 0, nil, 0)
	b := Orient(500, 90, 0, nil, 0)
	require.Equal(t, a.Angle, b.Angle)
	require.NotEqual(t, a.Bearing, b.Bearing)
}

func TestGapTracker_FirstSpokeNeverCounted(t *testing.T) {
	g := NewGapTracker()
	gap := g.Observe(1000)
	require.Zero(t, gap)
	require.Zero(t, g.Missing())
}

func TestGapTracker_InSequenceNoGap(t *testing.T) {
	g := NewGapTracker()
	g.Observe(10)
	gap := g.Observe(11)
	require.Zero(t, gap)
	require.Zero(t, g.Missing())
}

func TestGapTracker_CountsModularGap(t *testing.T) {
	g := NewGapTracker()
	g.Observe(10)
	gap := g.Observe(15)
	require.Equal(t, uint64(4), gap)
	require.Equal(t, uint64(4), g.Missing())
}

func TestGapTracker_WrapsAcrossRevolution(t *testing.T) {
	g := NewGapTracker()
	g.Observe(wire.SPOKES - 2)
	gap := g.Observe(1)
	require.Equal(t, uint64(2), gap)
}

func TestGapTracker_ResetClears(t *testing.T) {
	g := NewGapTracker()
	g.Observe(10)
	g.Observe(20)
	require.NotZero(t, g.Missing())
	g.Reset()
	require.Zero(t, g.Missing())
	gap := g.Observe(999)
	require.Zero(t, gap)
}
