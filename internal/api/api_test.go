package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/banshee-data/radardrv/internal/host"
	"github.com/banshee-data/radardrv/internal/session"
	"github.com/banshee-data/radardrv/internal/wire"
)

type fakeSettings struct{}

func (fakeSettings) Verbose() bool        { return false }
func (fakeSettings) EnableTransmit() bool { return false }
func (fakeSettings) EmulatorOn() bool     { return false }

type fakeHost struct{}

func (fakeHost) Heading() float64                                              { return 0 }
func (fakeHost) ViewpointRotation() float64                                    { return 0 }
func (fakeHost) OnSpoke(angle, bearing uint32, samples []byte, rangeMeters int) {}
func (fakeHost) SetRadarType(t host.RadarType)                                 {}
func (fakeHost) SetRadarIP(addr string)                                        {}
func (fakeHost) SetMcastIP(addr string)                                        {}
func (fakeHost) Settings() host.Settings                                       { return fakeSettings{} }

func TestRevolutionBuffer_EvictsPastOneRevolution(t *testing.T) {
	b := NewRevolutionBuffer()
	for i := 0; i < wire.SPOKES+10; i++ {
		b.Observe(uint32(i), uint32(i), []byte{1, 2, 3})
	}
	require.Len(t, b.snapshot(), wire.SPOKES)
}

func TestRevolutionBuffer_TracksPeakIntensity(t *testing.T) {
	b := NewRevolutionBuffer()
	b.Observe(1, 1, []byte{5, 200, 12})
	snap := b.snapshot()
	require.Len(t, snap, 1)
	require.Equal(t, byte(200), snap[0].maxIntensity)
}

func TestHandleStats_ReportsSessionState(t *testing.T) {
	sess := session.New(fakeHost{})
	srv := NewServer(sess, NewRevolutionBuffer())

	req := httptest.NewRequest(http.MethodGet, "/radar-stats", nil)
	rec := httptest.NewRecorder()
	srv.handleStats(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"state":"OFF"`)
}

func TestHandlePPIChart_NotFoundWhenEmpty(t *testing.T) {
	sess := session.New(fakeHost{})
	srv := NewServer(sess, NewRevolutionBuffer())

	req := httptest.NewRequest(http.MethodGet, "/radar-ppi", nil)
	rec := httptest.NewRecorder()
	srv.handlePPIChart(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlePPIChart_RendersHTMLWhenBuffered(t *testing.T) {
	sess := session.New(fakeHost{})
	buf := NewRevolutionBuffer()
	buf.Observe(0, 0, []byte{10, 20, 30})
	srv := NewServer(sess, buf)

	req := httptest.NewRequest(http.MethodGet, "/radar-ppi", nil)
	rec := httptest.NewRecorder()
	srv.handlePPIChart(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}
