package games

// X01 scores countdown games: first to exactly zero, honoring the finish rule.
type X01 struct {
	game *Game
}

// GameID implements Controller.
func (c *X01) GameID() string { return c.game.ID }

// State implements Controller.
func (c *X01) State() *GameState {
	opts := c.game.Options.Normalize(TypeX01)
	r := &x01Rules{
		finish:    opts.Finish,
		remaining: make([]int, len(c.game.Legs)),
		done:      make([]bool, len(c.game.Legs)),
		users:     make([]string, len(c.game.Legs)),
	}
	for i, leg := range c.game.Legs {
		r.remaining[i] = opts.StartScore
		r.users[i] = leg.UserID
	}
	return replay(c.game, r, false)
}

type x01Rules struct {
	finish    int
	remaining []int
	done      []bool
	users     []string
	order     []int
}

func (r *x01Rules) apply(i int, v Visit) bool {
	if r.done[i] {
		return true
	}
	start := r.remaining[i]
	score := start
	for _, s := range v {
		if s == nil {
			break
		}
		next := score - s.Points()
		if r.busts(next, s.Multiplier) {
			r.remaining[i] = start
			return true
		}
		score = next
		if score == 0 {
			r.remaining[i] = 0
			r.done[i] = true
			r.order = append(r.order, i)
			return true
		}
	}
	r.remaining[i] = score
	return false
}

// busts reports whether landing on next with a dart of the given multiplier
// is illegal. A score below the finish multiplier can never be closed.
func (r *x01Rules) busts(next, multiplier int) bool {
	switch {
	case next < 0:
		return true
	case next > 0 && next < r.finish:
		return true
	case next == 0:
		return r.finish > FinishSingle && multiplier != r.finish
	}
	return false
}

func (r *x01Rules) finished(i int) bool { return r.done[i] }

func (r *x01Rules) player(i int) PlayerState {
	return PlayerState{UserID: r.users[i], Finished: r.done[i], Remaining: r.remaining[i]}
}

func (r *x01Rules) finishOrder() []int { return r.order }
