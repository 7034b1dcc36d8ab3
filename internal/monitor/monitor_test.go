package monitor

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestMonitor(t *testing.T, upstreamURL string) *Monitor {
	t.Helper()
	svc := NewMonitorService(nil, upstreamURL)
	m, ok := svc.(*Monitor)
	require.True(t, ok)
	return m
}

func TestProbeUpstreamTransitions(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusOK)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(status.Load()))
	}))
	defer upstream.Close()

	m := newTestMonitor(t, upstream.URL)
	require.True(t, m.UpstreamUp())

	status.Store(http.StatusInternalServerError)
	m.probeUpstream()
	require.False(t, m.UpstreamUp())

	status.Store(http.StatusOK)
	m.probeUpstream()
	require.True(t, m.UpstreamUp())
}

func TestProbeUpstreamUnreachable(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // nothing listening anymore

	m := newTestMonitor(t, upstream.URL)
	m.probeUpstream()
	require.False(t, m.UpstreamUp())
}

func TestResourceRegistry(t *testing.T) {
	m := newTestMonitor(t, "http://localhost:8000")

	m.AddResource("export_addr", ":7143")
	m.AddResource("gateway_addr", ":8080")

	v, ok := m.GetResource("export_addr")
	require.True(t, ok)
	require.Equal(t, ":7143", v)

	_, ok = m.GetResource("missing")
	require.False(t, ok)

	require.ElementsMatch(t, []string{"export_addr", "gateway_addr"}, m.ListResources())
}

func TestHeartbeatIntervalConfig(t *testing.T) {
	svc := NewMonitorService(map[string]interface{}{"heartbeat_interval": 5}, "http://localhost:8000")
	m := svc.(*Monitor)
	require.Equal(t, 5*time.Second, m.heartbeatInterval)

	svc = NewMonitorService(map[string]interface{}{"heartbeat_interval": "2m"}, "http://localhost:8000")
	m = svc.(*Monitor)
	require.Equal(t, 2*time.Minute, m.heartbeatInterval)

	svc = NewMonitorService(nil, "http://localhost:8000")
	m = svc.(*Monitor)
	require.Equal(t, 30*time.Second, m.heartbeatInterval)
}
