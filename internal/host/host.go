// Package host defines the collaborator contract a session needs from the
// embedding application — heading/viewpoint feed, spoke sink, GUI
// notifications, and live settings — mirroring the role
// serialmux.SerialPorter plays as a narrow boundary interface for its
// embedder.
package host

// RadarType identifies which radar flavor a session has detected, passed
// back to the host for display purposes.
type RadarType int

const (
	RadarTypeUnknown RadarType = iota
	RadarTypeBR24
	RadarType4G
)

func (t RadarType) String() string {
	switch t {
	case RadarTypeBR24:
		return "BR24"
	case RadarType4G:
		return "4G"
	default:
		return "unknown"
	}
}

// Settings are host-owned, live configuration read by the session worker on
// every iteration; the host may mutate them concurrently, so implementations
// must be safe for concurrent reads against concurrent writes (e.g. guarded
// by a mutex or backed by atomics).
type Settings interface {
	Verbose() bool
	EnableTransmit() bool
	EmulatorOn() bool
}

// Host is the interface a session depends on to reach the embedding
// application. The driver never imports an application package directly;
// the application implements Host and hands it to session.New.
type Host interface {
	// Heading returns the current true heading in degrees.
	Heading() float64
	// ViewpointRotation returns the user-applied display rotation in degrees.
	ViewpointRotation() float64
	// OnSpoke delivers one oriented spoke synchronously; the session worker
	// blocks on this call, so implementations must return promptly.
	OnSpoke(angle, bearing uint32, samples []byte, rangeMeters int)
	// SetRadarType notifies the host which radar flavor was detected.
	SetRadarType(t RadarType)
	// SetRadarIP notifies the host of the detected radar's IP address.
	SetRadarIP(addr string)
	// SetMcastIP notifies the host of the local interface address chosen for
	// the announce listener; the data multicast group is later joined on the
	// same interface.
	SetMcastIP(addr string)
	// Settings exposes the host's live configuration.
	Settings() Settings
}
