//go:build pcap
// +build pcap

// Command pcapreplay replays a captured radar UDP stream from a pcap file
// through the wire decoders, for offline inspection of a capture without a
// live radar. Grounded on internal/lidar/network/pcap.go's offline-replay
// loop and build-tag convention.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"

	"github.com/banshee-data/radardrv/internal/spoke"
	"github.com/banshee-data/radardrv/internal/wire"
)

var (
	pcapFile  = flag.String("pcap", "", "Path to a pcap/pcapng capture of the radar's UDP traffic")
	headingFl = flag.Float64("heading", 0, "Static heading to apply when orienting replayed spokes")
	csvOut    = flag.String("csv", "", "Path to write decoded spokes as CSV (stdout if empty)")
)

func main() {
	flag.Parse()
	if *pcapFile == "" {
		log.Fatal("pcapreplay: -pcap is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := os.Stdout
	if *csvOut != "" {
		f, err := os.Create(*csvOut)
		if err != nil {
			log.Fatalf("pcapreplay: creating %s: %v", *csvOut, err)
		}
		defer f.Close()
		out = f
	}
	w := csv.NewWriter(out)
	defer w.Flush()
	w.Write([]string{"msg_id", "angle", "bearing", "range_m", "samples", "broken"})

	if err := replay(ctx, *pcapFile, w); err != nil {
		log.Fatalf("pcapreplay: %v", err)
	}
}

func replay(ctx context.Context, path string, w *csv.Writer) error {
	handle, err := pcap.OpenOffline(path)
	if err != nil {
		return fmt.Errorf("opening pcap file %s: %w", path, err)
	}
	defer handle.Close()

	if err := handle.SetBPFFilter("udp"); err != nil {
		return fmt.Errorf("setting BPF filter: %w", err)
	}

	source := gopacket.NewPacketSource(handle, handle.LinkType())
	gaps := spoke.NewGapTracker()

	var packetCount, spokeCount int
	start := time.Now()

	for {
		select {
		case <-ctx.Done():
			log.Printf("pcapreplay: stopping on signal (%d packets, %d spokes)", packetCount, spokeCount)
			return ctx.Err()
		case packet, ok := <-source.Packets():
			if !ok || packet == nil {
				log.Printf("pcapreplay: replay complete: %d packets, %d spokes in %v",
					packetCount, spokeCount, time.Since(start))
				return nil
			}
			packetCount++

			udpLayer := packet.Layer(layers.LayerTypeUDP)
			if udpLayer == nil {
				continue
			}
			udp, ok := udpLayer.(*layers.UDP)
			if !ok || len(udp.Payload) == 0 {
				continue
			}

			handleFrame(udp.Payload, gaps, w, &spokeCount)
		}
	}
}

// handleFrame decodes one datagram's worth of payload and, for scan-data
// frames, writes every spoke to w. Announce and feedback frames are logged
// but not written to the CSV, matching the driver's own split between
// control-plane bookkeeping and spoke output.
func handleFrame(payload []byte, gaps *spoke.GapTracker, w *csv.Writer, spokeCount *int) {
	id, ok := wire.PeekMsgID(payload)
	if !ok {
		return
	}

	switch id {
	case wire.MsgFeedback:
		if f, err := wire.DecodeFeedback(payload); err == nil {
			log.Printf("pcapreplay: feedback status=%d gain=%d", f.Status, f.Gain)
		}
	case wire.MsgScanData:
		_, spokes, err := wire.DecodeScanData(payload)
		if err != nil {
			return
		}
		for _, sp := range spokes {
			if sp.Broken {
				w.Write([]string{fmt.Sprint(id), "", "", "", "", "true"})
				continue
			}
			gaps.Observe(sp.Azimuth)
			oriented := spoke.Orient(sp.Azimuth, *headingFl, 0, sp.Samples, 0)
			w.Write([]string{
				fmt.Sprint(id),
				strconv.FormatUint(uint64(oriented.Angle), 10),
				strconv.FormatUint(uint64(oriented.Bearing), 10),
				strconv.Itoa(oriented.Range),
				strconv.Itoa(len(oriented.Samples)),
				"false",
			})
			*spokeCount++
		}
		w.Flush()
	default:
		if a, err := wire.DecodeAnnounce(payload); err == nil && a.FuncID == wire.FuncIDDataEndpoint {
			log.Printf("pcapreplay: announce radar_port=%d mcast_port=%d", a.RadarPort, a.McastPort)
		}
	}
}
