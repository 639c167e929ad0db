package wire

import "encoding/binary"

// AnnounceRecordSize is the fixed size of a radar announcement record.
const AnnounceRecordSize = 36

// Announce is a decoded announcement record received on the multicast
// announce group 224.0.0.1:5800.
type Announce struct {
	Type      uint32
	DevID     uint32
	FuncID    uint32
	McastIP   uint32
	McastPort uint16
	RadarIP   uint32
	RadarPort uint16
}

// FuncIDDataEndpoint is the FuncID value identifying a data endpoint
// announcement (the only kind this driver acts on).
const FuncIDDataEndpoint = 1

// DecodeAnnounce parses a 36-byte SRMRadarFunc record:
//
//	u32 type; u32 dev_id; u32 func_id; u32 r1; u32 r2;
//	u32 mcast_ip; u32 mcast_port; u32 radar_ip; u32 radar_port;
//
// mcast_ip/radar_ip are each read big-endian (the reference's ntohl applied
// to a little-endian struct-overlay read of the same bytes); mcast_port and
// radar_port are the low 16 bits of their 4-byte fields, also read
// big-endian (the reference's htons/ntohs — functionally identical swaps,
// just named inconsistently, which is the "asymmetry" noted in the original
// capture analysis). This is faithful to observed radars and must not be
// "corrected" to a different byte order.
func DecodeAnnounce(b []byte) (Announce, error) {
	if len(b) < AnnounceRecordSize {
		return Announce{}, ErrShortPacket
	}
	return Announce{
		Type:      le32(b, 0),
		DevID:     le32(b, 4),
		FuncID:    le32(b, 8),
		McastIP:   binary.BigEndian.Uint32(b[20:24]),
		McastPort: binary.BigEndian.Uint16(b[24:26]),
		RadarIP:   binary.BigEndian.Uint32(b[28:32]),
		RadarPort: binary.BigEndian.Uint16(b[32:34]),
	}, nil
}
