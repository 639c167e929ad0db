// Command radardrv is an example host embedding the radar driver: it
// implements internal/host.Host with static settings and flag-controlled
// heading, runs one session worker, and serves the driver's debug routes.
// Grounded on the top-level main.go's goroutine+context+WaitGroup shutdown
// and admin-route mounting idiom.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/banshee-data/radardrv/internal/api"
	"github.com/banshee-data/radardrv/internal/db"
	"github.com/banshee-data/radardrv/internal/host"
	"github.com/banshee-data/radardrv/internal/monitoring"
	"github.com/banshee-data/radardrv/internal/session"
)

var (
	listen         = flag.String("listen", ":8080", "Listen address for the debug HTTP server")
	dbPath         = flag.String("db", "radardrv.db", "Path to the sqlite log database")
	verbose        = flag.Bool("verbose", false, "Log session state transitions")
	enableTransmit = flag.Bool("enable-transmit", true, "Permit the session to write control changes and send heartbeats")
	emulatorOn     = flag.Bool("emulator", false, "Run the synthetic spoke emulator instead of a live radar")
	headingDeg     = flag.Float64("heading", 0, "Static true heading in degrees, fed to the driver")
)

// staticSettings implements host.Settings with flag-derived values plus an
// atomic emulator toggle, so the debug server could flip it live in a
// future iteration without touching session internals.
type staticSettings struct {
	verbose, enableTransmit bool
	emulatorOn              atomic.Bool
}

func (s *staticSettings) Verbose() bool        { return s.verbose }
func (s *staticSettings) EnableTransmit() bool { return s.enableTransmit }
func (s *staticSettings) EmulatorOn() bool     { return s.emulatorOn.Load() }

// exampleHost is a minimal host.Host: a fixed heading/viewpoint, a spoke
// sink that feeds the debug chart's revolution buffer, and GUI notifications
// logged instead of rendered.
type exampleHost struct {
	settings *staticSettings
	heading  float64
	buf      *api.RevolutionBuffer
}

func (h *exampleHost) Heading() float64           { return h.heading }
func (h *exampleHost) ViewpointRotation() float64 { return 0 }
func (h *exampleHost) OnSpoke(angle, bearing uint32, samples []byte, rangeMeters int) {
	h.buf.Observe(angle, bearing, samples)
}
func (h *exampleHost) SetRadarType(t host.RadarType) {
	monitoring.Logf("radardrv: radar type detected: %s", t)
}
func (h *exampleHost) SetRadarIP(addr string) { monitoring.Logf("radardrv: radar IP: %s", addr) }
func (h *exampleHost) SetMcastIP(addr string) { monitoring.Logf("radardrv: bound interface: %s", addr) }
func (h *exampleHost) Settings() host.Settings { return h.settings }

func main() {
	flag.Parse()

	settings := &staticSettings{verbose: *verbose, enableTransmit: *enableTransmit}
	settings.emulatorOn.Store(*emulatorOn)

	buf := api.NewRevolutionBuffer()
	h := &exampleHost{settings: settings, heading: *headingDeg, buf: buf}

	store, err := db.NewDB(*dbPath)
	if err != nil {
		log.Fatalf("radardrv: opening database: %v", err)
	}
	defer store.Close()

	sess := session.New(h)
	apiServer := api.NewServer(sess, buf)

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := sess.Run(ctx); err != nil {
			log.Printf("radardrv: session worker exited: %v", err)
		}
		log.Printf("radardrv: session worker terminated")
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		mux := http.NewServeMux()
		store.AttachAdminRoutes(mux)
		apiServer.AttachAdminRoutes(mux)

		server := &http.Server{Addr: *listen, Handler: mux}

		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("radardrv: HTTP server failed: %v", err)
			}
		}()

		<-ctx.Done()
		log.Println("radardrv: shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("radardrv: HTTP server shutdown error: %v", err)
		}
	}()

	wg.Wait()
	log.Println("radardrv: graceful shutdown complete")
	os.Exit(0)
}
