package session

import (
	"database/sql"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"RodaClientPortal/internal/config"
)

// ClientInfo is the identified client profile a session remembers.
type ClientInfo struct {
	ClienteID int    `json:"cliente_id"`
	TipoDoc   string `json:"tipo_doc"`
	NumDoc    string `json:"num_doc"`
	Nombre    string `json:"nombre"`
	Ciudad    string `json:"ciudad"`
}

type Session struct {
	ID        string     `json:"session_id"`
	Client    ClientInfo `json:"client"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// Manager keeps identified client sessions in memory and mirrors them into
// Postgres under the fixed storage key, so clients stay identified across
// process restarts. There is no password involved: identification is the
// document lookup itself.
type Manager struct {
	db       *sql.DB
	sessions map[string]*Session
	mu       sync.Mutex
	ttl      time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func NewManager(db *sql.DB, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{
		db:       db,
		sessions: make(map[string]*Session),
		ttl:      ttl,
		stopCh:   make(chan struct{}),
	}
}

func (m *Manager) Name() string {
	return "session"
}

func (m *Manager) Start() error {
	if m.db != nil {
		if err := m.ensureTable(); err != nil {
			return err
		}
		m.loadPersisted()
	}
	m.wg.Add(1)
	go m.cleanerLoop()
	return nil
}

func (m *Manager) Stop() error {
	close(m.stopCh)
	m.wg.Wait()
	return nil
}

func (m *Manager) ensureTable() error {
	_, err := m.db.Exec(`CREATE TABLE IF NOT EXISTS portal_sessions (
		session_id  TEXT PRIMARY KEY,
		storage_key TEXT NOT NULL,
		payload     TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL,
		expires_at  TIMESTAMPTZ NOT NULL
	)`)
	return err
}

// loadPersisted restores live sessions saved under the storage key.
// Corrupt payloads are discarded, not fatal.
func (m *Manager) loadPersisted() {
	rows, err := m.db.Query(
		`SELECT session_id, payload, created_at, expires_at FROM portal_sessions
		 WHERE storage_key = $1 AND expires_at > NOW()`,
		config.SessionStorageKey,
	)
	if err != nil {
		log.Println("[Session] failed to load persisted sessions:", err)
		return
	}
	defer rows.Close()

	restored := 0
	for rows.Next() {
		var id, payload string
		var createdAt, expiresAt time.Time
		if err := rows.Scan(&id, &payload, &createdAt, &expiresAt); err != nil {
			continue
		}
		var client ClientInfo
		if err := json.Unmarshal([]byte(payload), &client); err != nil {
			log.Println("[Session] discarding corrupt session payload:", id)
			m.db.Exec(`DELETE FROM portal_sessions WHERE session_id = $1`, id)
			continue
		}
		m.mu.Lock()
		m.sessions[id] = &Session{ID: id, Client: client, CreatedAt: createdAt, ExpiresAt: expiresAt}
		m.mu.Unlock()
		restored++
	}
	if restored > 0 {
		log.Printf("[Session] restored %d persisted session(s)", restored)
	}
}

// Identify creates a session for a resolved client profile.
func (m *Manager) Identify(client ClientInfo) *Session {
	now := time.Now()
	session := &Session{
		ID:        uuid.NewString(),
		Client:    client,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	if m.db != nil {
		payload, err := json.Marshal(client)
		if err == nil {
			_, err = m.db.Exec(
				`INSERT INTO portal_sessions (session_id, storage_key, payload, created_at, expires_at)
				 VALUES ($1, $2, $3, $4, $5)
				 ON CONFLICT (session_id) DO UPDATE SET payload = $3, expires_at = $5`,
				session.ID, config.SessionStorageKey, string(payload), session.CreatedAt, session.ExpiresAt,
			)
		}
		if err != nil {
			log.Println("[Session] failed to persist session:", err)
		}
	}
	return session
}

// Get returns the session if it exists and has not expired.
func (m *Manager) Get(sessionID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[sessionID]
	if !ok || time.Now().After(session.ExpiresAt) {
		return nil, false
	}
	return session, true
}

// Clear forgets a session in memory and in the store.
func (m *Manager) Clear(sessionID string) {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()

	if m.db != nil {
		if _, err := m.db.Exec(`DELETE FROM portal_sessions WHERE session_id = $1`, sessionID); err != nil {
			log.Println("[Session] failed to delete persisted session:", err)
		}
	}
}

// ActiveCount reports live sessions, for the gateway's health surface.
func (m *Manager) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) cleanerLoop() {
	defer m.wg.Done()
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-m.stopCh:
			return
		case <-ticker.C:
			m.cleanupExpired()
		}
	}
}

func (m *Manager) cleanupExpired() {
	now := time.Now()
	m.mu.Lock()
	for id, session := range m.sessions {
		if now.After(session.ExpiresAt) {
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	if m.db != nil {
		m.db.Exec(`DELETE FROM portal_sessions WHERE expires_at <= NOW()`)
	}
}
