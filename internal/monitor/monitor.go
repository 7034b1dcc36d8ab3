package monitor

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"RodaClientPortal/internal/logger"
	"RodaClientPortal/internal/serviceiface"
)

// Monitor periodically probes the upstream credit API and keeps a registry
// of named resources (service addresses, export directory) other services
// publish.
type Monitor struct {
	resources         map[string]interface{}
	mu                sync.RWMutex
	stopChan          chan struct{}
	heartbeatInterval time.Duration
	upstreamURL       string
	http              *http.Client
	upstreamUp        bool
}

func NewMonitorService(cfg map[string]interface{}, upstreamURL string) serviceiface.Service {
	interval := 30 * time.Second
	if val, ok := cfg["heartbeat_interval"]; ok {
		switch v := val.(type) {
		case string:
			if d, err := time.ParseDuration(v); err == nil {
				interval = d
			}
		case float64:
			interval = time.Duration(v) * time.Second
		case int:
			interval = time.Duration(v) * time.Second
		}
	}
	return &Monitor{
		resources:         make(map[string]interface{}),
		stopChan:          make(chan struct{}),
		heartbeatInterval: interval,
		upstreamURL:       upstreamURL,
		http:              &http.Client{Timeout: 10 * time.Second},
		upstreamUp:        true,
	}
}

func (m *Monitor) Name() string { return "monitor" }

func (m *Monitor) Start() error {
	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit("Monitor started, probing " + m.upstreamURL)
	}
	go m.heartbeatLoop()
	return nil
}

func (m *Monitor) Stop() error {
	close(m.stopChan)
	return nil
}

func (m *Monitor) heartbeatLoop() {
	ticker := time.NewTicker(m.heartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-m.stopChan:
			return
		case <-ticker.C:
			m.probeUpstream()
		}
	}
}

// probeUpstream audit-logs only state transitions, not every probe.
func (m *Monitor) probeUpstream() {
	resp, err := m.http.Get(m.upstreamURL)
	up := err == nil && resp.StatusCode < 500
	if resp != nil {
		resp.Body.Close()
	}

	m.mu.Lock()
	changed := up != m.upstreamUp
	m.upstreamUp = up
	m.mu.Unlock()

	if changed && logger.GlobalLogger != nil {
		state := "reachable"
		if !up {
			state = "unreachable"
		}
		logger.GlobalLogger.LogAudit(fmt.Sprintf("credit api %s: %s", m.upstreamURL, state))
	}
}

// UpstreamUp reports the last observed upstream state.
func (m *Monitor) UpstreamUp() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.upstreamUp
}

func (m *Monitor) AddResource(key string, resource interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resources[key] = resource
}

func (m *Monitor) GetResource(key string) (interface{}, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	resource, exists := m.resources[key]
	return resource, exists
}

func (m *Monitor) ListResources() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.resources))
	for key := range m.resources {
		keys = append(keys, key)
	}
	return keys
}
