package websocket

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"

	"github.com/vntrieu/darts/internal/ratelimit"
)

// RateLimitKeyFromRequest returns the client IP (X-Real-IP / X-Forwarded-For when set).
func RateLimitKeyFromRequest(r *http.Request) string {
	if x := r.Header.Get("X-Real-IP"); x != "" {
		return x
	}
	if x := r.Header.Get("X-Forwarded-For"); x != "" {
		return x
	}
	return r.RemoteAddr
}

// WSHandler upgrades scoreboard and input connections.
type WSHandler struct {
	hub      *Hub
	scorer   Scorer
	limiter  ratelimit.Limiter
	upgrader websocket.Upgrader
}

// NewWSHandler creates a WSHandler. origins lists the allowed Origin headers;
// "*" or an empty list allows any. limiter may be nil.
func NewWSHandler(hub *Hub, scorer Scorer, limiter ratelimit.Limiter, origins []string) *WSHandler {
	if limiter == nil {
		limiter = ratelimit.Noop{}
	}
	return &WSHandler{
		hub:     hub,
		scorer:  scorer,
		limiter: limiter,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(origins),
		},
	}
}

func checkOrigin(origins []string) func(*http.Request) bool {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		allowed[o] = true
	}
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowed[origin]
	}
}

// HandleScoreboard handles GET /ws/scoreboard?role=scoreboard|input. The
// client receives the current match right after connecting.
//
//	@Summary	Scoreboard websocket
//	@Tags		websocket
//	@Param		role	query	string	false	"scoreboard (default) or input"
//	@Success	101
//	@Failure	400	{string}	string	"unknown role"
//	@Failure	429	{string}	string	"rate limit exceeded"
//	@Router		/ws/scoreboard [get]
func (h *WSHandler) HandleScoreboard(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")
	if role == "" {
		role = RoleScoreboard
	}
	if role != RoleScoreboard && role != RoleInput {
		http.Error(w, "role must be scoreboard or input", http.StatusBadRequest)
		return
	}

	key := RateLimitKeyFromRequest(r)
	if allowed, retryAfter := h.limiter.Allow(key); !allowed {
		if retryAfter > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		}
		http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	client := newClient(h.hub, conn, role, key)
	if !h.hub.registerClient(client) {
		conn.Close()
		return
	}
	if view := h.scorer.View(); view != nil {
		h.hub.SendTo(client, &ServerEnvelope{Type: ServerTypeState, Event: ServerEventState, Payload: view})
	}

	go client.writePump()
	go client.readPump()
}
