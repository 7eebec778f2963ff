package games

// Controller derives the state of one game from its recorded throws.
// Controllers never mutate the game they are bound to.
type Controller interface {
	// GameID identifies the game the controller is bound to.
	GameID() string
	// State recomputes the game state from the full history.
	State() *GameState
}

// ControllerFor selects the rule engine for the game's variant and options.
// It returns nil for an unknown variant.
func ControllerFor(g *Game) Controller {
	if g == nil {
		return nil
	}
	switch g.Type {
	case TypeX01:
		return &X01{game: g}
	case TypeRoundTheClock:
		if g.Options.Random {
			return &RandomRoundTheClock{game: g}
		}
		return &RoundTheClock{game: g}
	case TypeKiller:
		return &Killer{game: g}
	}
	return nil
}

// rules is the per-variant scoring used by replay.
type rules interface {
	// apply scores one visit of leg i and reports whether the visit ended
	// before being full (bust, leg finished, single-dart turn).
	apply(i int, v Visit) bool
	finished(i int) bool
	player(i int) PlayerState
	// finishOrder lists leg indexes in the order they finished.
	finishOrder() []int
}

// replay walks the visits in the order they were thrown: round by round,
// legs in creation order within a round. Finished legs take no more turns so
// their missing visits are skipped.
func replay(g *Game, r rules, winnerFirst bool) *GameState {
	state := &GameState{Results: []string{}, Players: []PlayerState{}}
	if g == nil || len(g.Legs) == 0 {
		return state
	}
	n := len(g.Legs)

	rounds := 0
	for _, leg := range g.Legs {
		if len(leg.Visits) > rounds {
			rounds = len(leg.Visits)
		}
	}

	open := -1
	var closedBy []string
	for round := 0; round < rounds; round++ {
		for i, leg := range g.Legs {
			if round >= len(leg.Visits) {
				continue
			}
			v := leg.Visits[round]
			closed := r.apply(i, v) || v.Full() || gameOver(r, n)
			if closed {
				closedBy = append(closedBy, leg.UserID)
				open = -1
			} else {
				open = i
			}
		}
	}

	for i := range g.Legs {
		state.Players = append(state.Players, r.player(i))
	}

	var survivors []string
	for i, leg := range g.Legs {
		if !r.finished(i) {
			survivors = append(survivors, leg.UserID)
		}
	}
	for _, i := range r.finishOrder() {
		state.Results = append(state.Results, g.Legs[i].UserID)
	}
	if len(closedBy) > 0 {
		state.PrevUserID = closedBy[len(closedBy)-1]
	}

	if gameOver(r, n) {
		if winnerFirst {
			state.Results = append(survivors, state.Results...)
		} else {
			state.Results = append(state.Results, survivors...)
		}
		return state
	}

	if open >= 0 && !r.finished(open) {
		state.UserID = g.Legs[open].UserID
		state.VisitOpen = true
		state.Darts = g.Legs[open].Visits[len(g.Legs[open].Visits)-1].Darts()
		return state
	}

	// Next in round-robin: the unfinished leg with the fewest visits.
	next := -1
	for i, leg := range g.Legs {
		if r.finished(i) {
			continue
		}
		if next < 0 || len(leg.Visits) < len(g.Legs[next].Visits) {
			next = i
		}
	}
	if next >= 0 {
		state.UserID = g.Legs[next].UserID
	}
	return state
}

// gameOver is true once nobody is left to play: every leg finished, or a
// single unfinished leg remains in a multiplayer game.
func gameOver(r rules, n int) bool {
	remaining := 0
	for i := 0; i < n; i++ {
		if !r.finished(i) {
			remaining++
		}
	}
	if n == 1 {
		return remaining == 0
	}
	return remaining <= 1
}
