// Package netio is the socket layer: multicast join/leave for the announce
// and data groups, round-robin local-interface selection, and non-blocking
// receive with a timeout so the session worker can poll for cancellation.
package netio

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/banshee-data/radardrv/internal/monitoring"
)

// AnnounceGroup is the fixed multicast group radars announce themselves on.
const AnnounceGroup = "224.0.0.1"

// AnnouncePort is the fixed port of the announce group.
const AnnouncePort = 5800

// pollTimeout bounds each ReadFromUDP call so the worker loop can re-check
// its context/quit flag without blocking indefinitely, mirroring
// UDPListener.Start's 100ms SetReadDeadline polling in the teacher.
const pollTimeout = 250 * time.Millisecond

// InterfaceCursor rotates through local IPv4-capable network interfaces,
// wrapping back to the start once the list is exhausted and re-enumerating
// on wrap — the Go analogue of CRMControl::PickNextEthernetCard.
type InterfaceCursor struct {
	ifaces []net.Interface
	pos    int
}

// Next returns the next candidate interface with a usable IPv4 address. It
// re-enumerates system interfaces whenever the cursor wraps around, so
// interfaces that appear after startup (e.g. a USB NIC plugged in later)
// are picked up.
func (c *InterfaceCursor) Next() (net.Interface, net.IP, error) {
	for {
		if c.pos >= len(c.ifaces) {
			ifaces, err := net.Interfaces()
			if err != nil {
				return net.Interface{}, nil, fmt.Errorf("netio: enumerating interfaces: %w", err)
			}
			c.ifaces = ifaces
			c.pos = 0
		}
		for c.pos < len(c.ifaces) {
			iface := c.ifaces[c.pos]
			c.pos++
			ip, ok := firstIPv4(iface)
			if ok {
				return iface, ip, nil
			}
		}
		if len(c.ifaces) == 0 {
			return net.Interface{}, nil, fmt.Errorf("netio: no network interfaces available")
		}
	}
}

func firstIPv4(iface net.Interface) (net.IP, bool) {
	if iface.Flags&net.FlagUp == 0 {
		return nil, false
	}
	addrs, err := iface.Addrs()
	if err != nil {
		return nil, false
	}
	for _, a := range addrs {
		ipNet, ok := a.(*net.IPNet)
		if !ok {
			continue
		}
		if v4 := ipNet.IP.To4(); v4 != nil {
			return v4, true
		}
	}
	return nil, false
}

// MulticastListener receives datagrams from a joined multicast group on a
// specific local interface, with cooperative cancellation via context.
type MulticastListener struct {
	conn *net.UDPConn
}

// JoinMulticast opens a UDP listener bound to group:port, joined on iface.
func JoinMulticast(iface net.Interface, group string, port int) (*MulticastListener, error) {
	addr := &net.UDPAddr{IP: net.ParseIP(group), Port: port}
	conn, err := net.ListenMulticastUDP("udp4", &iface, addr)
	if err != nil {
		return nil, fmt.Errorf("netio: join multicast %s:%d on %s: %w", group, port, iface.Name, err)
	}
	return &MulticastListener{conn: conn}, nil
}

// ReceiveOne blocks up to pollTimeout for one datagram. A timeout returns
// (0, nil, nil) so the caller can re-check ctx without treating it as an
// error; ctx cancellation returns ctx.Err().
func (l *MulticastListener) ReceiveOne(ctx context.Context, buf []byte) (n int, from *net.UDPAddr, err error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}
	l.conn.SetReadDeadline(time.Now().Add(pollTimeout))
	n, from, err = l.conn.ReadFromUDP(buf)
	if err != nil {
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			return 0, nil, nil
		}
		if ctx.Err() != nil {
			return 0, nil, ctx.Err()
		}
		return 0, nil, err
	}
	return n, from, nil
}

// Close closes the underlying socket.
func (l *MulticastListener) Close() error {
	if l.conn == nil {
		return nil
	}
	return l.conn.Close()
}

// CommandSocket sends unicast command datagrams to the radar's reported
// command address. It sends from its own ephemeral local port, not from the
// data receiver's socket.
type CommandSocket struct {
	conn *net.UDPConn
	dest *net.UDPAddr
}

// NewCommandSocket opens an unconnected UDP socket used for fire-and-forget
// sendto calls to dest.
func NewCommandSocket(dest *net.UDPAddr) (*CommandSocket, error) {
	conn, err := net.ListenUDP("udp4", nil)
	if err != nil {
		return nil, fmt.Errorf("netio: open command socket: %w", err)
	}
	return &CommandSocket{conn: conn, dest: dest}, nil
}

// Send writes datagram to the command destination. Per §5, there are no
// retries: UDP is fire-and-forget and state is reconciled by the next
// feedback packet.
func (s *CommandSocket) Send(datagram []byte) error {
	_, err := s.conn.WriteToUDP(datagram, s.dest)
	if err != nil {
		monitoring.Logf("netio: send to %s failed: %v", s.dest, err)
	}
	return err
}

// Close closes the underlying socket.
func (s *CommandSocket) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// SendWakeup publishes the 16-byte wakeup payload 10 times at 10ms cadence
// to the announce group on a throwaway socket, matching
// CRMControl::WakeupRadar. It is independent of the session worker loop.
func SendWakeup(ctx context.Context, payload []byte) error {
	conn, err := net.DialUDP("udp4", nil, &net.UDPAddr{IP: net.ParseIP(AnnounceGroup), Port: AnnouncePort})
	if err != nil {
		return fmt.Errorf("netio: wakeup dial: %w", err)
	}
	defer conn.Close()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for i := 0; i < 10; i++ {
		if _, err := conn.Write(payload); err != nil {
			monitoring.Logf("netio: wakeup send %d failed: %v", i, err)
		}
		if i == 9 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}
