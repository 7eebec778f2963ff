package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/vntrieu/darts/internal/store"
)

// PlayerCreator registers players.
type PlayerCreator interface {
	CreatePlayer(ctx context.Context, name string, profile store.Profile) (*store.Player, error)
}

// CreatePlayerRequest is the body for POST /api/players.
type CreatePlayerRequest struct {
	Name       string `json:"name"`
	WalkOn     string `json:"walk_on,omitempty"`
	WalkOnTime int    `json:"walk_on_time,omitempty"`
}

// Validation limits.
const (
	PlayerNameMaxLen = 64
	WalkOnMaxLen     = 512
)

// PlayerHandler handles player registration.
type PlayerHandler struct {
	players PlayerCreator
}

// NewPlayerHandler creates a new PlayerHandler.
func NewPlayerHandler(players PlayerCreator) *PlayerHandler {
	return &PlayerHandler{players: players}
}

// CreatePlayer handles POST /api/players.
//
// @Summary      Register a player
// @Description  The returned id is the user id used when starting a match. The walk-on is played before the player's first visit.
// @Tags         players
// @Accept       json
// @Produce      json
// @Param        body  body      CreatePlayerRequest  true  "Player"
// @Success      201   {object}  store.Player
// @Failure      400   {object}  errorResponse  "Invalid player"
// @Router       /api/players [post]
func (h *PlayerHandler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var body CreatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(body.Name) > PlayerNameMaxLen || len(body.WalkOn) > WalkOnMaxLen {
		writeError(w, r, http.StatusBadRequest, "name or walk_on too long")
		return
	}
	if body.WalkOnTime < 0 {
		writeError(w, r, http.StatusBadRequest, "walk_on_time must not be negative")
		return
	}

	player, err := h.players.CreatePlayer(r.Context(), body.Name, store.Profile{WalkOn: body.WalkOn, WalkOnTime: body.WalkOnTime})
	if err != nil {
		if errors.Is(err, store.ErrPlayerNameRequired) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("[%s] create player error: %v", requestID(r), err)
		writeError(w, r, http.StatusInternalServerError, "failed to create player")
		return
	}
	writeJSON(w, r, http.StatusCreated, player)
}
