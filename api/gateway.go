package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"strings"
	"sync"

	"RodaClientPortal/api/constants"
	"RodaClientPortal/internal/creditapi"
	"RodaClientPortal/internal/logger"
	"RodaClientPortal/internal/monitor"
	"RodaClientPortal/internal/session"
	"RodaClientPortal/pkg/loadbalancer"
)

// Global references wired from the app manager
var (
	sessionManager *session.Manager
	sessionOnce    sync.Once
	creditClient   *creditapi.Client
	creditOnce     sync.Once
	portalMonitor  *monitor.Monitor
	monitorOnce    sync.Once
	exportRotation *loadbalancer.Rotation
)

func SetSessionManager(m *session.Manager) {
	sessionOnce.Do(func() {
		sessionManager = m
	})
}

func SetCreditClient(c *creditapi.Client) {
	creditOnce.Do(func() {
		creditClient = c
	})
}

func SetMonitor(m *monitor.Monitor) {
	monitorOnce.Do(func() {
		portalMonitor = m
	})
}

func extractClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	return r.RemoteAddr
}

// IdentifyHandler handles POST /session/identify: document lookup against
// the upstream API, then a new session for the resolved client.
func IdentifyHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		NumDoc  string `json:"num_doc"`
		TipoDoc string `json:"tipo_doc"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.NumDoc == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"error": constants.ErrMissingDocument})
		return
	}
	if sessionManager == nil || creditClient == nil {
		http.Error(w, "Session service unavailable", http.StatusInternalServerError)
		return
	}

	profile, err := creditClient.SearchClientByDocument(r.Context(), req.NumDoc, req.TipoDoc)
	if err != nil {
		if apiErr, ok := err.(*creditapi.APIError); ok && apiErr.Status == http.StatusNotFound {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]interface{}{"error": constants.ErrClientNotFound})
			return
		}
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]interface{}{"error": constants.ErrUpstreamUnavailable})
		return
	}

	sess := sessionManager.Identify(session.ClientInfo{
		ClienteID: profile.ClienteID,
		TipoDoc:   profile.TipoDoc,
		NumDoc:    profile.NumDoc,
		Nombre:    profile.Nombre,
		Ciudad:    profile.Ciudad,
	})

	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit(fmt.Sprintf("[Gateway] client %d identified from %s", profile.ClienteID, extractClientIP(r)))
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sess)
}

// CurrentSessionHandler handles POST /session/current
func CurrentSessionHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionID == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"error": constants.ErrMissingSessionID})
		return
	}
	if sessionManager == nil {
		http.Error(w, "Session service unavailable", http.StatusInternalServerError)
		return
	}
	sess, ok := sessionManager.Get(req.SessionID)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{"error": constants.ErrInvalidSession})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sess)
}

// LogoutHandler handles POST /session/logout
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionID == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"error": constants.ErrMissingSessionID})
		return
	}
	if sessionManager == nil {
		http.Error(w, "Session service unavailable", http.StatusInternalServerError)
		return
	}
	sessionManager.Clear(req.SessionID)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message":"sesión cerrada"}`))
}

// createExportProxy proxies export traffic to the next export replica.
func createExportProxy(rotation *loadbalancer.Rotation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logr := logger.GlobalLogger
		clientIP := extractClientIP(r)

		target := rotation.Next()
		if target == "" {
			http.Error(w, "Export service unavailable", http.StatusServiceUnavailable)
			return
		}

		msg := fmt.Sprintf("[Gateway] Incoming request: %s %s from %s", r.Method, r.URL.Path, clientIP)
		if logr != nil {
			logr.LogAudit(msg)
		} else {
			log.Println(msg)
		}

		targetURL, err := url.Parse(target)
		if err != nil {
			msg := fmt.Sprintf("[Gateway][ERROR] Proxy error: bad target URL %s for %s", target, r.URL.Path)
			if logr != nil {
				logr.LogAudit(msg)
			} else {
				log.Println(msg)
			}
			http.Error(w, "Bad target URL", http.StatusInternalServerError)
			return
		}
		proxy := httputil.NewSingleHostReverseProxy(targetURL)

		rw := &responseWriter{ResponseWriter: w, statusCode: 200}
		proxy.ServeHTTP(rw, r)
		if rw.statusCode >= 400 {
			msg = fmt.Sprintf("[Gateway][ERROR] Proxied to %s for %s, status %d, error: %s", target, r.URL.Path, rw.statusCode, rw.body.String())
		} else {
			msg = fmt.Sprintf("[Gateway] Proxied to %s for %s, status %d", target, r.URL.Path, rw.statusCode)
		}
		if logr != nil {
			logr.LogAudit(msg)
		} else {
			log.Println(msg)
		}
	}
}

// responseWriter wraps http.ResponseWriter to capture status code and response body
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if rw.statusCode >= 400 {
		rw.body.Write(b)
	}
	return rw.ResponseWriter.Write(b)
}

// HealthHandler reports the gateway's view of the system: live sessions,
// the monitor's last upstream probe, and the published service addresses.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{"status": "ok"}
	if sessionManager != nil {
		status["active_sessions"] = sessionManager.ActiveCount()
	}
	if portalMonitor != nil {
		upstream := "reachable"
		if !portalMonitor.UpstreamUp() {
			upstream = "unreachable"
		}
		status["upstream"] = upstream

		resources := map[string]interface{}{}
		for _, key := range portalMonitor.ListResources() {
			if v, ok := portalMonitor.GetResource(key); ok {
				resources[key] = v
			}
		}
		status["resources"] = resources
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}

// StartGateway starts the public portal gateway.
func StartGateway() {
	targets := []string{"http://localhost:7143"}
	if raw := os.Getenv("EXPORT_SERVICE_URLS"); raw != "" {
		targets = targets[:0]
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				targets = append(targets, t)
			}
		}
	}
	exportRotation = loadbalancer.New(targets)

	mux := http.NewServeMux()

	mux.HandleFunc("/session/identify", IdentifyHandler)
	mux.HandleFunc("/session/current", CurrentSessionHandler)
	mux.HandleFunc("/session/logout", LogoutHandler)
	mux.HandleFunc("/export/", createExportProxy(exportRotation))

	mux.HandleFunc("/healt", HealthHandler)

	port := os.Getenv("GATEWAY_PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("Portal Gateway started on :" + port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Fatalf("Portal Gateway failed: %v", err)
	}
}
