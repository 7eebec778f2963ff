package websocket

import "encoding/json"

// Connection roles. Scoreboards only watch; input devices also score.
const (
	RoleScoreboard = "scoreboard"
	RoleInput      = "input"
)

// ClientInMessage is the envelope for messages from client to server.
type ClientInMessage struct {
	Type          string          `json:"type"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload,omitempty"`
}

// ThrowPayload is the payload of a "throw" message.
type ThrowPayload struct {
	Value      int `json:"value"`
	Multiplier int `json:"multiplier"`
}

// ServerEnvelope is the envelope for messages from server to client.
type ServerEnvelope struct {
	Type          string      `json:"type"`
	Event         string      `json:"event,omitempty"`
	CorrelationID string      `json:"correlation_id,omitempty"`
	Payload       interface{} `json:"payload,omitempty"`
}

// ErrorPayload is the payload of an error envelope.
type ErrorPayload struct {
	Message string `json:"message"`
}

// MatchOverPayload announces the final standings.
type MatchOverPayload struct {
	GameID  string   `json:"game_id"`
	Results []string `json:"results"`
}

// Client message types.
const (
	ClientMessageTypeThrow     = "throw"
	ClientMessageTypeUndo      = "undo"
	ClientMessageTypeSyncState = "sync_state"
)

// Server envelope types.
const (
	ServerTypeEvent = "event"
	ServerTypeState = "state"
	ServerTypeError = "error"
)

// Server events.
const (
	ServerEventState        = "state"
	ServerEventMatchOver    = "match_over"
	ServerEventStatsRefresh = "stats_refresh"
)

// MaxClientMessageTypeLength limits the "type" field.
const MaxClientMessageTypeLength = 64

// ValidClientMessageTypes are the only accepted ClientInMessage types.
var ValidClientMessageTypes = map[string]bool{
	ClientMessageTypeThrow:     true,
	ClientMessageTypeUndo:      true,
	ClientMessageTypeSyncState: true,
}

// scoringMessageTypes need an input connection.
var scoringMessageTypes = map[string]bool{
	ClientMessageTypeThrow: true,
	ClientMessageTypeUndo:  true,
}

func errorEnvelope(correlationID, message string) *ServerEnvelope {
	return &ServerEnvelope{
		Type:          ServerTypeError,
		CorrelationID: correlationID,
		Payload:       ErrorPayload{Message: message},
	}
}
