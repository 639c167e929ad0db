// Package session drives one radar's lifecycle: discovery, the
// OFF/STANDBY/WAKING_UP/TRANSMIT state machine, heartbeats, and watchdog
// timeouts. Grounded on CRMControl::Entry's worker loop, reworked from a
// select()-on-two-sockets loop into a goroutine cancelled cooperatively via
// context, matching main.go's signal.NotifyContext + WaitGroup shutdown
// idiom.
package session

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/banshee-data/radardrv/internal/controls"
	"github.com/banshee-data/radardrv/internal/emulator"
	"github.com/banshee-data/radardrv/internal/host"
	"github.com/banshee-data/radardrv/internal/monitoring"
	"github.com/banshee-data/radardrv/internal/netio"
	"github.com/banshee-data/radardrv/internal/spoke"
	"github.com/banshee-data/radardrv/internal/wire"
)

// RadarState is a session's position in the §4.D lifecycle.
type RadarState int

const (
	StateOff RadarState = iota
	StateStandby
	StateWakingUp
	StateTransmit
)

func (s RadarState) String() string {
	switch s {
	case StateStandby:
		return "STANDBY"
	case StateWakingUp:
		return "WAKING_UP"
	case StateTransmit:
		return "TRANSMIT"
	default:
		return "OFF"
	}
}

// WatchdogTimeout bounds how long a session tolerates silence from the
// radar (any packet) before dropping the session entirely. The reference
// firmware does not document an exact value; picked generously relative to
// the 1s/5s heartbeat cadence so one or two dropped UDP datagrams don't
// flap the session.
const WatchdogTimeout = 10 * time.Second

// DataTimeout bounds how long a session tolerates silence from scan data
// specifically before reporting not-transmitting, independent of the
// control channel's liveness.
const DataTimeout = 5 * time.Second

// emulatorTick matches MILLIS_PER_SELECT in the original.
const emulatorTick = 250 * time.Millisecond

// noDataTicksBeforeTeardown is the value the empty-iteration counter must
// reach to trigger a full socket teardown and rediscovery. Run restarts the
// counter at -10 after binding the announce listener and at -15 after each
// data-socket datagram, so teardown follows 12 or 17 consecutive loop
// iterations without data (each iteration polls every open listener for up
// to 250ms), not two empty one-second waits.
const noDataTicksBeforeTeardown = 2

// Stats are cumulative counters surfaced to the host for display, per §7's
// "counter deltas visible via the host's statistics display".
type Stats struct {
	Packets       uint64
	Spokes        uint64
	MissingSpokes uint64
	BrokenSpokes  uint64
}

// Session owns one radar's sockets, control registry, and state. The zero
// value is not usable; construct with New. Not safe for concurrent use:
// a single goroutine (Run) owns all mutable state, matching §5's
// "dedicated worker thread... only writer to session state".
type Session struct {
	host     host.Host
	Controls *controls.ControlRegistry

	ifaces     netio.InterfaceCursor
	boundIface net.Interface
	haveIface  bool

	announceListener *netio.MulticastListener
	dataListener     *netio.MulticastListener
	cmdSocket        *netio.CommandSocket
	radarAddr        *net.UDPAddr

	state     RadarState
	haveRadar bool

	radarTimeout time.Time
	dataTimeout  time.Time

	lastKeepalive1s time.Time
	lastKeepalive5s time.Time

	noDataTicks int

	gaps  *spoke.GapTracker
	stats Stats

	emu *emulator.Generator
}

// New builds a session bound to h. The returned session owns no sockets
// until Run is called.
func New(h host.Host) *Session {
	s := &Session{
		host: h,
		gaps: spoke.NewGapTracker(),
		emu:  emulator.NewGenerator(),
	}
	s.Controls = controls.NewControlRegistry(s, s.haveRadarFn, s.transmitOnFn)
	return s
}

func (s *Session) haveRadarFn() bool  { return s.haveRadar }
func (s *Session) transmitOnFn() bool { return s.host.Settings().EnableTransmit() }

// Send implements controls.Sender by forwarding to the session's command
// socket, if one is currently open.
func (s *Session) Send(datagram []byte) error {
	if s.cmdSocket == nil {
		return fmt.Errorf("session: no command socket open")
	}
	return s.cmdSocket.Send(datagram)
}

// State returns the session's current lifecycle state.
func (s *Session) State() RadarState { return s.state }

// Stats returns a copy of the cumulative counters.
func (s *Session) Stats() Stats { return s.stats }

func (s *Session) setState(next RadarState) {
	if s.state == next {
		return
	}
	if s.host.Settings().Verbose() {
		monitoring.Logf("session: state %s -> %s", s.state, next)
	}
	s.state = next
}

// Run blocks until ctx is cancelled, driving discovery, heartbeats, and
// packet dispatch. It always returns nil on a clean cancellation.
func (s *Session) Run(ctx context.Context) error {
	defer s.closeAll()

	buf := make([]byte, 2048)

	for {
		if ctx.Err() != nil {
			return nil
		}

		settings := s.host.Settings()

		if settings.EmulatorOn() {
			if !s.sleep(ctx, emulatorTick) {
				return nil
			}
			s.emulateTick()
			continue
		}

		if s.announceListener == nil {
			if err := s.bindAnnounceListener(); err != nil {
				monitoring.Logf("session: discovery: %v", err)
				if !s.sleep(ctx, time.Second) {
					return nil
				}
				continue
			}
			s.noDataTicks = -10
		}

		s.maybeSendHeartbeats(settings)

		gotData := false

		if s.dataListener != nil {
			n, _, err := s.dataListener.ReceiveOne(ctx, buf)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				monitoring.Logf("session: data receive: %v", err)
				s.teardownSockets()
				continue
			}
			if n > 0 {
				s.handleFrame(buf[:n])
				gotData = true
				s.noDataTicks = -15
			}
		}

		n, from, err := s.announceListener.ReceiveOne(ctx, buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			monitoring.Logf("session: announce receive: %v", err)
			s.teardownSockets()
			continue
		}
		if n > 0 && s.handleAnnounce(buf[:n], from) {
			gotData = true
		}

		if !gotData {
			s.noDataTicks++
		}

		s.checkTimeouts()

		if s.noDataTicks >= noDataTicksBeforeTeardown {
			s.noDataTicks = 0
			s.teardownSockets()
		}
	}
}

func (s *Session) sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (s *Session) bindAnnounceListener() error {
	iface, ip, err := s.ifaces.Next()
	if err != nil {
		return err
	}
	l, err := netio.JoinMulticast(iface, netio.AnnounceGroup, netio.AnnouncePort)
	if err != nil {
		return err
	}
	s.announceListener = l
	s.boundIface = iface
	s.haveIface = true
	s.host.SetMcastIP(ip.String())
	return nil
}

func (s *Session) teardownSockets() {
	if s.dataListener != nil {
		s.dataListener.Close()
		s.dataListener = nil
	}
	if s.cmdSocket != nil {
		s.cmdSocket.Close()
		s.cmdSocket = nil
	}
	if s.announceListener != nil {
		s.announceListener.Close()
		s.announceListener = nil
	}
	s.haveIface = false
	s.setState(StateOff)
	s.haveRadar = false
	s.gaps.Reset()
}

func (s *Session) closeAll() {
	s.teardownSockets()
}

func (s *Session) checkTimeouts() {
	now := time.Now()
	if s.haveRadar && !s.radarTimeout.IsZero() && now.After(s.radarTimeout) {
		monitoring.Logf("session: radar watchdog expired, dropping session")
		s.teardownSockets()
		return
	}
	if s.state == StateTransmit && !s.dataTimeout.IsZero() && now.After(s.dataTimeout) {
		monitoring.Logf("session: data watchdog expired")
		s.setState(StateStandby)
	}
}

func (s *Session) maybeSendHeartbeats(settings host.Settings) {
	if !s.haveRadar || !settings.EnableTransmit() || s.cmdSocket == nil {
		return
	}
	now := time.Now()
	if !now.Before(s.lastKeepalive1s) {
		s.Send(wire.Encode1sKeepalive())
		s.lastKeepalive1s = now.Add(1 * time.Second)
	}
	if !now.Before(s.lastKeepalive5s) {
		s.Send(wire.Encode5sKeepalive())
		s.lastKeepalive5s = now.Add(5 * time.Second)
	}
}

func (s *Session) sendInitBurst() {
	s.Send(wire.Encode1sKeepalive())
	s.Send(wire.Encode5sKeepalive())
	s.Send(wire.EncodeOnceInit())
	now := time.Now()
	s.lastKeepalive1s = now.Add(1 * time.Second)
	s.lastKeepalive5s = now.Add(5 * time.Second)
}

// handleAnnounce decodes one announce-group datagram; on a valid record it
// opens the data receiver and command socket if not already open, per
// §4.D's discovery transition. Returns true if the datagram advanced
// session state (counts as "got data" for the no-data watchdog).
func (s *Session) handleAnnounce(b []byte, from *net.UDPAddr) bool {
	a, err := wire.DecodeAnnounce(b)
	if err != nil || a.FuncID != wire.FuncIDDataEndpoint {
		return false
	}

	s.radarTimeout = time.Now().Add(WatchdogTimeout)
	s.stats.Packets++

	radarAddr := &net.UDPAddr{IP: intToIP(a.RadarIP), Port: int(a.RadarPort)}
	s.radarAddr = radarAddr
	s.host.SetRadarIP(radarAddr.IP.String())

	if s.state == StateOff {
		s.setState(StateStandby)
	}
	s.haveRadar = true

	if s.dataListener == nil {
		mcastIP := intToIP(a.McastIP)
		if !s.haveIface {
			monitoring.Logf("session: data socket interface: announce listener not bound")
			return true
		}
		l, err := netio.JoinMulticast(s.boundIface, mcastIP.String(), int(a.McastPort))
		if err != nil {
			monitoring.Logf("session: join data group: %v", err)
			return true
		}
		s.dataListener = l

		cmd, err := netio.NewCommandSocket(radarAddr)
		if err != nil {
			monitoring.Logf("session: open command socket: %v", err)
			l.Close()
			s.dataListener = nil
			return true
		}
		s.cmdSocket = cmd
		s.sendInitBurst()
	}
	return true
}

func intToIP(v uint32) net.IP {
	return net.IPv4(byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

// handleFrame dispatches one data-socket datagram by message ID, per
// CRMControl::ProcessFrame.
func (s *Session) handleFrame(b []byte) {
	s.radarTimeout = time.Now().Add(WatchdogTimeout)
	s.stats.Packets++

	id, ok := wire.PeekMsgID(b)
	if !ok {
		return
	}
	switch id {
	case wire.MsgFeedback:
		s.handleFeedback(b)
	case wire.MsgPresetFeedback:
		if p, err := wire.DecodePresetFeedback(b); err == nil {
			s.Controls.ApplyPresetFeedback(p)
		}
	case wire.MsgScanData:
		s.handleScanData(b)
		s.dataTimeout = time.Now().Add(DataTimeout)
	case wire.MsgCurveFeedback:
		if raw, err := wire.DecodeCurveFeedback(b); err == nil {
			s.Controls.ApplyCurveFeedback(raw)
		}
	}
}

func (s *Session) handleFeedback(b []byte) {
	f, err := wire.DecodeFeedback(b)
	if err != nil {
		return
	}
	s.Controls.ApplyFeedback(f)

	switch f.Status {
	case wire.StatusStandby:
		s.setState(StateStandby)
	case wire.StatusTransmit:
		s.setState(StateTransmit)
	case wire.StatusWarmup:
		s.setState(StateWakingUp)
	case wire.StatusOff:
		s.setState(StateOff)
	}
}

func (s *Session) handleScanData(b []byte) {
	_, spokes, err := wire.DecodeScanData(b)
	if err != nil {
		return
	}
	if s.state == StateStandby {
		s.setState(StateTransmit)
	}
	for _, sp := range spokes {
		if sp.Broken {
			s.stats.BrokenSpokes++
			continue
		}
		s.stats.Spokes++
		s.stats.MissingSpokes += s.gaps.Observe(sp.Azimuth)
		oriented := spoke.Orient(sp.Azimuth, s.host.Heading(), s.host.ViewpointRotation(), sp.Samples, s.Controls.RangeMeters())
		s.host.OnSpoke(oriented.Angle, oriented.Bearing, oriented.Samples, oriented.Range)
	}
}

func (s *Session) emulateTick() {
	if s.state != StateTransmit {
		if s.state == StateOff {
			s.setState(StateStandby)
		}
		return
	}
	s.host.SetRadarType(host.RadarType4G)
	for _, sp := range s.emu.Tick() {
		s.stats.Spokes++
		oriented := spoke.Orient(sp.Azimuth, s.host.Heading(), s.host.ViewpointRotation(), sp.Samples, sp.RangeMeters)
		s.host.OnSpoke(oriented.Angle, oriented.Bearing, oriented.Samples, oriented.Range)
	}
}

// Wakeup publishes the magic wakeup payload to the announce group,
// independent of Run's loop. Safe to call whether or not Run is active.
func Wakeup(ctx context.Context) error {
	return netio.SendWakeup(ctx, []byte("ABCDEFGHIJKLMNOP"))
}
