package games

// PlayerState is the derived progress of one user.
type PlayerState struct {
	UserID   string `json:"user_id"`
	Finished bool   `json:"finished"`
	// Remaining is the x01 score still to be thrown.
	Remaining int `json:"remaining,omitempty"`
	// Target is the next round-the-clock target (0 once cleared).
	Target int `json:"target,omitempty"`
	// Cleared is the number of round-the-clock targets already hit.
	Cleared int `json:"cleared,omitempty"`
	// Lives, Number and Killer describe a killer player.
	Lives  int  `json:"lives,omitempty"`
	Number int  `json:"number,omitempty"`
	Killer bool `json:"killer,omitempty"`
}

// GameState is derived from a game's history on every query and never stored.
type GameState struct {
	// UserID is the user whose turn it is; empty once the match is over.
	UserID string `json:"user_id"`
	// PrevUserID threw the last dart of the last completed visit.
	PrevUserID string `json:"prev_user_id"`
	// Results lists finished users in finishing order.
	Results []string `json:"results"`
	// VisitOpen is set when UserID's last visit still accepts darts.
	VisitOpen bool `json:"visit_open"`
	// Darts is the number of darts UserID has thrown in the open visit.
	Darts   int           `json:"darts"`
	Players []PlayerState `json:"players"`
}

// Over reports whether the match has concluded.
func (s *GameState) Over() bool {
	return s == nil || s.UserID == ""
}

// HasResult reports whether userID is already in the results.
func (s *GameState) HasResult(userID string) bool {
	if s == nil {
		return false
	}
	for _, id := range s.Results {
		if id == userID {
			return true
		}
	}
	return false
}

// Player returns the progress of userID, or nil.
func (s *GameState) Player(userID string) *PlayerState {
	if s == nil {
		return nil
	}
	for i := range s.Players {
		if s.Players[i].UserID == userID {
			return &s.Players[i]
		}
	}
	return nil
}
