package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/xtding233/volcano-backend/internal/logger"
)

// maxMessageBytes caps one websocket request.
const maxMessageBytes = 4096

// WebSocketConfig controls which browser origins may open /ws.
type WebSocketConfig struct {
	// AllowedOrigins lists exact origins, or "*". Empty means same-origin only.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// IsOriginAllowed checks an Origin header against the allow list.
func (c WebSocketConfig) IsOriginAllowed(origin, requestHost string) bool {
	if len(c.AllowedOrigins) == 0 {
		return isSameOrigin(origin, requestHost)
	}
	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// isSameOrigin treats a missing Origin (non-browser client) as same-origin.
func isSameOrigin(origin, requestHost string) bool {
	if origin == "" {
		return true
	}
	host := origin
	if i := strings.Index(origin, "://"); i != -1 {
		host = origin[i+3:]
	}
	return host == requestHost
}

// handleWebSocket answers every text message (a settings request) with a prediction.
func (h *handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			allowed := h.ws.IsOriginAllowed(origin, r.Host)
			if !allowed {
				logger.Warning("WebSocket connection rejected - origin not allowed",
					"origin", origin,
					"host", r.Host,
					"remote_addr", r.RemoteAddr)
			}
			return allowed
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageBytes)

	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warning("WebSocket read failed", "remote_addr", r.RemoteAddr, "error", err)
			}
			return
		}
		if mt != websocket.TextMessage || strings.TrimSpace(string(data)) == "" {
			continue
		}
		if err := conn.WriteJSON(h.answer(r, data)); err != nil {
			logger.Warning("WebSocket write failed", "remote_addr", r.RemoteAddr, "error", err)
			return
		}
	}
}

// answer computes the reply for one websocket message: a prediction or an errResp.
func (h *handler) answer(r *http.Request, data []byte) any {
	var req settingsRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return errResp{Err: fmt.Sprintf("%v: %v", errBadRequest, err)}
	}
	settings, err := h.svc.Resolve(req.Profile, req.overrides())
	if err != nil {
		return errResp{Err: err.Error()}
	}
	p, _, err := h.svc.Predict(r.Context(), settings)
	if err != nil {
		if !isClientError(err) {
			logger.Error("websocket prediction failed", "error", err)
		}
		return errResp{Err: err.Error()}
	}
	return p
}
