package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/vntrieu/darts/internal/games"
	"github.com/vntrieu/darts/internal/session"
)

// errorResponse is the JSON body of every 4xx/5xx reply.
type errorResponse struct {
	Error string `json:"error"`
}

// requestID returns the request ID from chi's context for logging.
func requestID(r *http.Request) string {
	if id, ok := r.Context().Value(middleware.RequestIDKey).(string); ok {
		return id
	}
	return ""
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[%s] encode response error: %v", requestID(r), err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, errorResponse{Error: message})
}

// writeSessionError maps session and rule errors to a status code.
func writeSessionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, session.ErrNoActiveGame):
		writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, games.ErrInvalidSegment),
		errors.Is(err, session.ErrNoLegs),
		errors.Is(err, session.ErrTooFewPlayers),
		errors.Is(err, session.ErrUnknownType):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrNoCurrentUser),
		errors.Is(err, session.ErrNoCurrentLeg),
		errors.Is(err, session.ErrUserFinished):
		writeError(w, r, http.StatusConflict, err.Error())
	default:
		log.Printf("[%s] session error: %v", requestID(r), err)
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}
