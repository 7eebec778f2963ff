package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/vntrieu/darts/internal/games"
	"github.com/vntrieu/darts/internal/session"
)

// Scorer is the part of the session engine driven over websockets.
type Scorer interface {
	RecordThrow(ctx context.Context, seg games.Segment) (*games.GameState, error)
	UndoThrow(ctx context.Context) (*games.GameState, error)
	View() *session.View
}

// MessageHandler applies client messages to the scorer. Successful changes
// reach every client through the engine's publisher; the sender only gets a
// direct reply on error or for sync_state.
type MessageHandler struct {
	hub    *Hub
	scorer Scorer
}

// NewMessageHandler creates a MessageHandler. hub may be nil while building the hub.
func NewMessageHandler(hub *Hub, scorer Scorer) *MessageHandler {
	return &MessageHandler{hub: hub, scorer: scorer}
}

// HandleMessage validates msg and dispatches it by type.
func (h *MessageHandler) HandleMessage(ctx context.Context, client *Client, msg *ClientInMessage) {
	if msg == nil {
		h.reply(client, errorEnvelope("", "invalid message"))
		return
	}
	if len(msg.Type) > MaxClientMessageTypeLength || !ValidClientMessageTypes[msg.Type] {
		h.reply(client, errorEnvelope(msg.CorrelationID, "unsupported message type"))
		return
	}
	if scoringMessageTypes[msg.Type] && client.Role != RoleInput {
		h.reply(client, errorEnvelope(msg.CorrelationID, "scoreboard connections are read-only"))
		return
	}

	switch msg.Type {
	case ClientMessageTypeThrow:
		var p ThrowPayload
		if len(msg.Payload) == 0 || json.Unmarshal(msg.Payload, &p) != nil {
			h.reply(client, errorEnvelope(msg.CorrelationID, "throw needs a value and multiplier"))
			return
		}
		if _, err := h.scorer.RecordThrow(ctx, games.Segment{Value: p.Value, Multiplier: p.Multiplier}); err != nil {
			h.replyError(client, msg, err)
		}
	case ClientMessageTypeUndo:
		if _, err := h.scorer.UndoThrow(ctx); err != nil {
			h.replyError(client, msg, err)
		}
	case ClientMessageTypeSyncState:
		view := h.scorer.View()
		if view == nil {
			h.replyError(client, msg, session.ErrNoActiveGame)
			return
		}
		h.reply(client, &ServerEnvelope{
			Type:          ServerTypeState,
			Event:         ServerEventState,
			CorrelationID: msg.CorrelationID,
			Payload:       view,
		})
	}
}

func (h *MessageHandler) replyError(client *Client, msg *ClientInMessage, err error) {
	if !isUserError(err) {
		log.Printf("ws %s failed role=%s remote=%s: %v", msg.Type, client.Role, client.RateLimitKey, err)
	}
	h.reply(client, errorEnvelope(msg.CorrelationID, err.Error()))
}

func (h *MessageHandler) reply(client *Client, env *ServerEnvelope) {
	if h.hub == nil {
		return
	}
	h.hub.SendTo(client, env)
}

// isUserError reports errors caused by the operator rather than the server.
func isUserError(err error) bool {
	for _, target := range []error{
		games.ErrInvalidSegment,
		session.ErrNoActiveGame,
		session.ErrNoCurrentUser,
		session.ErrNoCurrentLeg,
		session.ErrUserFinished,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
