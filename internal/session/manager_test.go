package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testClient() ClientInfo {
	return ClientInfo{
		ClienteID: 7,
		TipoDoc:   "CC",
		NumDoc:    "1032456789",
		Nombre:    "Laura Gómez",
		Ciudad:    "Bogotá",
	}
}

func TestIdentifyAndGet(t *testing.T) {
	m := NewManager(nil, time.Hour)

	session := m.Identify(testClient())
	require.NotEmpty(t, session.ID)
	require.Equal(t, 7, session.Client.ClienteID)
	require.True(t, session.ExpiresAt.After(session.CreatedAt))

	got, ok := m.Get(session.ID)
	require.True(t, ok)
	require.Equal(t, session.ID, got.ID)
	require.Equal(t, "Laura Gómez", got.Client.Nombre)

	_, ok = m.Get("no-such-session")
	require.False(t, ok)
}

func TestGetExpired(t *testing.T) {
	m := NewManager(nil, time.Hour)
	session := m.Identify(testClient())

	// force expiry
	m.mu.Lock()
	m.sessions[session.ID].ExpiresAt = time.Now().Add(-time.Minute)
	m.mu.Unlock()

	_, ok := m.Get(session.ID)
	require.False(t, ok)
}

func TestClear(t *testing.T) {
	m := NewManager(nil, time.Hour)
	session := m.Identify(testClient())

	m.Clear(session.ID)
	_, ok := m.Get(session.ID)
	require.False(t, ok)
	require.Equal(t, 0, m.ActiveCount())

	// clearing twice is harmless
	m.Clear(session.ID)
}

func TestCleanupExpired(t *testing.T) {
	m := NewManager(nil, time.Hour)
	live := m.Identify(testClient())
	stale := m.Identify(testClient())

	m.mu.Lock()
	m.sessions[stale.ID].ExpiresAt = time.Now().Add(-time.Minute)
	m.mu.Unlock()

	m.cleanupExpired()

	_, ok := m.Get(live.ID)
	require.True(t, ok)
	require.Equal(t, 1, m.ActiveCount())
}

func TestDefaultTTL(t *testing.T) {
	m := NewManager(nil, 0)
	session := m.Identify(testClient())
	require.WithinDuration(t, time.Now().Add(24*time.Hour), session.ExpiresAt, time.Minute)
}

func TestConcurrentIdentify(t *testing.T) {
	m := NewManager(nil, time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := m.Identify(testClient())
			_, _ = m.Get(s.ID)
		}()
	}
	wg.Wait()
	require.Equal(t, 50, m.ActiveCount())
}
