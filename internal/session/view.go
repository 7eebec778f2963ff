package session

import (
	"github.com/vntrieu/darts/internal/games"
	"github.com/vntrieu/darts/internal/store"
)

// View is a copy of the active match handed to transports.
type View struct {
	Game   *games.Game      `json:"game"`
	Name   string           `json:"name"`
	Points int              `json:"points"`
	State  *games.GameState `json:"state"`
	// WalkOn is set while the current user is stepping up for their first visit.
	WalkOn *store.Profile `json:"walk_on,omitempty"`
}
