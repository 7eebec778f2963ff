package handler

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"net/http"

	"github.com/vntrieu/darts/internal/games"
	"github.com/vntrieu/darts/internal/session"
)

// Session is the scoring session driven over HTTP.
type Session interface {
	SetActiveGame(ctx context.Context, g *games.Game) (*games.GameState, error)
	RecordThrow(ctx context.Context, seg games.Segment) (*games.GameState, error)
	UndoThrow(ctx context.Context) (*games.GameState, error)
	FinalizeMatch(ctx context.Context) ([]string, error)
	View() *session.View
}

// CreateGameRequest is the body for POST /api/games.
type CreateGameRequest struct {
	Type    games.Type    `json:"type"`
	Options games.Options `json:"options"`
	// Players are user IDs in throwing order.
	Players []string `json:"players"`
}

// ThrowRequest is the body for POST /api/games/current/throws.
type ThrowRequest struct {
	Value      int `json:"value"`
	Multiplier int `json:"multiplier"`
}

// FinalizeResponse is the body returned by POST /api/games/current/finalize.
type FinalizeResponse struct {
	GameID  string   `json:"game_id"`
	Results []string `json:"results"`
}

// Variant describes one playable game type.
type Variant struct {
	Type       games.Type    `json:"type"`
	Name       string        `json:"name"`
	MinPlayers int           `json:"min_players"`
	Defaults   games.Options `json:"defaults"`
}

// GameHandler serves the active match.
type GameHandler struct {
	session Session
	// newRand seeds per-leg randomness of new games; nil uses the clock.
	newRand func() *rand.Rand
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(s Session) *GameHandler {
	return &GameHandler{session: s}
}

// WithRand makes new games draw their random state from newRand.
func (h *GameHandler) WithRand(newRand func() *rand.Rand) *GameHandler {
	h.newRand = newRand
	return h
}

// CreateGame handles POST /api/games. It builds a new match and makes it the active one.
//
// @Summary      Start a match
// @Description  Creates a game with one leg per player and makes it the active match, replacing any match in progress.
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        body  body      CreateGameRequest  true  "Game type, options and players"
// @Success      201   {object}  session.View
// @Failure      400   {object}  errorResponse  "Invalid type, options or players"
// @Failure      429   {string}  string  "Rate limit exceeded"
// @Router       /api/games [post]
func (h *GameHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var body CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	var rng *rand.Rand
	if h.newRand != nil {
		rng = h.newRand()
	}
	g, err := games.NewGame(body.Type, body.Options, body.Players, rng)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := h.session.SetActiveGame(r.Context(), g); err != nil {
		writeSessionError(w, r, err)
		return
	}
	log.Printf("[%s] match started game_id=%s type=%s players=%d", requestID(r), g.ID, g.Type, len(g.Legs))
	writeJSON(w, r, http.StatusCreated, h.session.View())
}

// ListVariants handles GET /api/games/variants.
//
// @Summary      List game types
// @Tags         games
// @Produce      json
// @Success      200  {array}  Variant
// @Router       /api/games/variants [get]
func (h *GameHandler) ListVariants(w http.ResponseWriter, r *http.Request) {
	out := make([]Variant, 0, len(games.Types))
	for _, t := range games.Types {
		out = append(out, Variant{
			Type:       t,
			Name:       games.TypeName(t),
			MinPlayers: games.MinPlayerCount(t),
			Defaults:   games.Options{}.Normalize(t),
		})
	}
	writeJSON(w, r, http.StatusOK, out)
}

// GetCurrent handles GET /api/games/current.
//
// @Summary      Active match
// @Tags         games
// @Produce      json
// @Success      200  {object}  session.View
// @Failure      404  {object}  errorResponse  "No active game"
// @Router       /api/games/current [get]
func (h *GameHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	view := h.session.View()
	if view == nil {
		writeSessionError(w, r, session.ErrNoActiveGame)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

// RecordThrow handles POST /api/games/current/throws.
//
// @Summary      Record a dart
// @Description  Adds the dart to the current player's visit.
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        body  body      ThrowRequest   true  "Segment hit; value 0 with multiplier 1 is a miss"
// @Success      200   {object}  session.View
// @Failure      400   {object}  errorResponse  "Invalid segment"
// @Failure      404   {object}  errorResponse  "No active game"
// @Failure      409   {object}  errorResponse  "Match over or player already finished"
// @Router       /api/games/current/throws [post]
func (h *GameHandler) RecordThrow(w http.ResponseWriter, r *http.Request) {
	var body ThrowRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if _, err := h.session.RecordThrow(r.Context(), games.Segment{Value: body.Value, Multiplier: body.Multiplier}); err != nil {
		writeSessionError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, h.session.View())
}

// UndoThrow handles POST /api/games/current/undo.
//
// @Summary      Undo the last dart
// @Tags         games
// @Produce      json
// @Success      200  {object}  session.View
// @Failure      404  {object}  errorResponse  "No active game"
// @Router       /api/games/current/undo [post]
func (h *GameHandler) UndoThrow(w http.ResponseWriter, r *http.Request) {
	if _, err := h.session.UndoThrow(r.Context()); err != nil {
		writeSessionError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, h.session.View())
}

// Finalize handles POST /api/games/current/finalize.
//
// @Summary      Finish and save the match
// @Description  Stores the results, saves every leg and the game, and asks scoreboards to refresh statistics.
// @Tags         games
// @Produce      json
// @Success      200  {object}  FinalizeResponse
// @Failure      404  {object}  errorResponse  "No active game"
// @Failure      500  {object}  errorResponse  "Saving failed; the match stays active and can be finalized again"
// @Router       /api/games/current/finalize [post]
func (h *GameHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	results, err := h.session.FinalizeMatch(r.Context())
	if err != nil {
		writeSessionError(w, r, err)
		return
	}
	resp := FinalizeResponse{Results: results}
	if view := h.session.View(); view != nil {
		resp.GameID = view.Game.ID
	}
	writeJSON(w, r, http.StatusOK, resp)
}
