package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"RodaClientPortal/api/constants"
	"RodaClientPortal/internal/session"
)

type contextKey string

const (
	ClientInfoKey contextKey = "clientInfo"
	SessionIDKey  contextKey = "sessionID"
)

// GetClientFromCtx returns the identified client attached by the session
// middleware.
func GetClientFromCtx(ctx context.Context) (session.ClientInfo, bool) {
	client, ok := ctx.Value(ClientInfoKey).(session.ClientInfo)
	return client, ok
}

func GetSessionIDFromCtx(ctx context.Context) string {
	if id, ok := ctx.Value(SessionIDKey).(string); ok {
		return id
	}
	return ""
}

// WithClientSession resolves session_id from the JSON body and attaches the
// identified client to the request context. The body is restored so the
// handler can decode its own request shape.
func WithClientSession(manager *session.Manager, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		r.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		var req struct {
			SessionID string `json:"session_id"`
		}
		if err := json.Unmarshal(bodyBytes, &req); err != nil || req.SessionID == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]interface{}{"error": constants.ErrMissingSessionID})
			return
		}

		sess, ok := manager.Get(req.SessionID)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]interface{}{"error": constants.ErrInvalidSession})
			return
		}

		ctx := context.WithValue(r.Context(), ClientInfoKey, sess.Client)
		ctx = context.WithValue(ctx, SessionIDKey, sess.ID)
		next(w, r.WithContext(ctx))
	}
}
