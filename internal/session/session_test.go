package session

import (
	"testing"
	"time"

	"github.com/banshee-data/radardrv/internal/host"
	"github.com/banshee-data/radardrv/internal/wire"
	"github.com/stretchr/testify/require"
)

type fakeSettings struct {
	verbose, transmit, emulator bool
}

func (f fakeSettings) Verbose() bool        { return f.verbose }
func (f fakeSettings) EnableTransmit() bool { return f.transmit }
func (f fakeSettings) EmulatorOn() bool     { return f.emulator }

type fakeHost struct {
	settings   fakeSettings
	spokesSeen int
	radarType  host.RadarType
	radarIP    string
	mcastIP    string
}

func (h *fakeHost) Heading() float64           { return 0 }
func (h *fakeHost) ViewpointRotation() float64 { return 0 }
func (h *fakeHost) OnSpoke(angle, bearing uint32, samples []byte, rangeMeters int) {
	h.spokesSeen++
}
func (h *fakeHost) SetRadarType(t host.RadarType) { h.radarType = t }
func (h *fakeHost) SetRadarIP(addr string)         { h.radarIP = addr }
func (h *fakeHost) SetMcastIP(addr string)         { h.mcastIP = addr }
func (h *fakeHost) Settings() host.Settings        { return h.settings }

func feedbackBytes(status byte) []byte {
	b := make([]byte, 245)
	b[0] = 0x01
	b[180] = status
	return b
}

func TestStateMonotonicity_TransmitCycle(t *testing.T) {
	h := &fakeHost{settings: fakeSettings{transmit: true}}
	s := New(h)
	s.haveRadar = true

	var trace []RadarState
	record := func(status byte) {
		s.handleFeedback(feedbackBytes(status))
		trace = append(trace, s.State())
	}
	record(wire.StatusStandby)  // 0
	record(wire.StatusTransmit) // 0->1
	record(wire.StatusStandby)  // 1->0

	require.Equal(t, []RadarState{StateStandby, StateTransmit, StateStandby}, trace)
}

func TestStateMonotonicity_WarmupCycle(t *testing.T) {
	h := &fakeHost{settings: fakeSettings{transmit: true}}
	s := New(h)
	s.haveRadar = true

	var trace []RadarState
	record := func(status byte) {
		s.handleFeedback(feedbackBytes(status))
		trace = append(trace, s.State())
	}
	record(wire.StatusWarmup)
	record(wire.StatusTransmit)
	record(wire.StatusStandby)
	record(wire.StatusOff)

	require.Equal(t, []RadarState{StateWakingUp, StateTransmit, StateStandby, StateOff}, trace)
}

func TestHandleAnnounce_UnknownFuncIDIgnored(t *testing.T) {
	h := &fakeHost{}
	s := New(h)
	b := make([]byte, 36)
	require.False(t, s.handleAnnounce(b, nil))
}

func TestHandleFrame_TooShortIgnored(t *testing.T) {
	h := &fakeHost{}
	s := New(h)
	s.handleFrame([]byte{0x01})
	require.Equal(t, uint64(1), s.stats.Packets)
}

// TestWatchdog_ExpiryDropsSession exercises spec scenario S5: deliver one
// feedback frame, then let the radar watchdog deadline pass with nothing
// further arriving. Expect the session to tear itself down to OFF with no
// radar and no bound interface, as checkTimeouts would do on the next tick.
func TestWatchdog_ExpiryDropsSession(t *testing.T) {
	h := &fakeHost{settings: fakeSettings{transmit: true}}
	s := New(h)
	s.haveRadar = true
	s.haveIface = true

	s.handleFeedback(feedbackBytes(wire.StatusTransmit))
	require.Equal(t, StateTransmit, s.State())
	require.True(t, s.haveRadar)

	// Force the watchdog deadline into the past, as if WatchdogTimeout had
	// elapsed with no further packets.
	s.radarTimeout = time.Now().Add(-time.Second)

	s.checkTimeouts()

	require.Equal(t, StateOff, s.State())
	require.False(t, s.haveRadar)
	require.False(t, s.haveIface)
	require.Nil(t, s.dataListener)
	require.Nil(t, s.cmdSocket)
	require.Nil(t, s.announceListener)
}
