// Package api wires the driver's debug surface into a host application's
// HTTP mux: tsweb admin routes plus a go-echarts polar scatter of the most
// recent revolution, grounded on the lidar monitor package's debug chart
// handlers and tsweb.Debugger mounting pattern.
package api

import (
	"bytes"
	"fmt"
	"math"
	"net/http"
	"sync"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"tailscale.com/tsweb"

	"github.com/banshee-data/radardrv/internal/session"
	"github.com/banshee-data/radardrv/internal/wire"
)

// echartsAssetsPrefix points chart pages at a CDN for the echarts.js runtime,
// matching the lidar monitor's AssetsHost usage.
const echartsAssetsPrefix = "https://go-echarts.github.io/go-echarts-assets/assets/"

// RevolutionBuffer accumulates the most recent revolution's worth of spokes
// for the debug chart, independent of whatever the host does with spokes
// via its own OnSpoke implementation.
type RevolutionBuffer struct {
	mu     sync.Mutex
	points []point
}

type point struct {
	angle, bearing uint32
	maxIntensity   byte
}

// NewRevolutionBuffer returns an empty buffer.
func NewRevolutionBuffer() *RevolutionBuffer {
	return &RevolutionBuffer{points: make([]point, 0, wire.SPOKES)}
}

// Observe records one spoke's angle/bearing and peak sample intensity,
// evicting the oldest entry once a full revolution's worth is buffered.
func (b *RevolutionBuffer) Observe(angle, bearing uint32, samples []byte) {
	var peak byte
	for _, v := range samples {
		if v > peak {
			peak = v
		}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.points = append(b.points, point{angle, bearing, peak})
	if len(b.points) > wire.SPOKES {
		b.points = b.points[len(b.points)-wire.SPOKES:]
	}
}

func (b *RevolutionBuffer) snapshot() []point {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]point, len(b.points))
	copy(out, b.points)
	return out
}

// Server exposes debug HTTP handlers bound to a session and its spoke
// buffer.
type Server struct {
	sess *session.Session
	buf  *RevolutionBuffer
}

// NewServer returns a debug server for sess, sourcing chart data from buf.
func NewServer(sess *session.Session, buf *RevolutionBuffer) *Server {
	return &Server{sess: sess, buf: buf}
}

// AttachAdminRoutes mounts the driver's debug endpoints under tsweb's debug
// mux: a stats JSON endpoint and a polar scatter PPI chart.
func (s *Server) AttachAdminRoutes(mux *http.ServeMux) {
	debug := tsweb.Debugger(mux)

	debug.Handle("radar-stats", "Session counters and state (JSON)", http.HandlerFunc(s.handleStats))
	debug.Handle("radar-ppi", "Polar scatter of the most recent revolution", http.HandlerFunc(s.handlePPIChart))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := s.sess.Stats()
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"state":%q,"packets":%d,"spokes":%d,"missing_spokes":%d,"broken_spokes":%d}`,
		s.sess.State().String(), stats.Packets, stats.Spokes, stats.MissingSpokes, stats.BrokenSpokes)
}

func (s *Server) handlePPIChart(w http.ResponseWriter, r *http.Request) {
	points := s.buf.snapshot()
	if len(points) == 0 {
		http.Error(w, "no spokes buffered yet", http.StatusNotFound)
		return
	}

	data := make([]opts.ScatterData, 0, len(points))
	maxAbs := 0.0
	for _, p := range points {
		theta := float64(p.bearing) * 2 * math.Pi / float64(wire.SPOKES)
		radius := float64(p.maxIntensity)
		x := radius * math.Cos(theta)
		y := radius * math.Sin(theta)
		if math.Abs(x) > maxAbs {
			maxAbs = math.Abs(x)
		}
		if math.Abs(y) > maxAbs {
			maxAbs = math.Abs(y)
		}
		data = append(data, opts.ScatterData{Value: []interface{}{x, y, p.maxIntensity}})
	}
	pad := maxAbs * 1.05
	if pad == 0 {
		pad = 1.0
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Radar PPI", Theme: "dark", Width: "900px", Height: "900px", AssetsHost: echartsAssetsPrefix}),
		charts.WithTitleOpts(opts.Title{Title: "Plan Position Indicator", Subtitle: fmt.Sprintf("state=%s spokes=%d", s.sess.State(), len(points))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -pad, Max: pad, Name: "X", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -pad, Max: pad, Name: "Y", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        255,
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: []string{"#000004", "#3b0f70", "#8c2981", "#de4968", "#fe9f6d", "#fcfdbf"}},
		}),
	)
	scatter.AddSeries("returns", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 3}))

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		http.Error(w, fmt.Sprintf("failed to render chart: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
