package games

// Killer scores the elimination game. Every leg guards the number assigned to
// it at creation and starts with KillerLives lives. Only darts in the double or
// treble ring of a guarded number count:
//   - own number, not yet a killer: the player becomes a killer;
//   - own number as a killer: the player loses a life;
//   - another player's number as a killer: that player loses a life.
//
// A player without lives is eliminated. The last player standing wins.
type Killer struct {
	game *Game
}

// GameID implements Controller.
func (c *Killer) GameID() string { return c.game.ID }

// State implements Controller.
func (c *Killer) State() *GameState {
	n := len(c.game.Legs)
	r := &killerRules{
		numbers: make([]int, n),
		lives:   make([]int, n),
		killer:  make([]bool, n),
		users:   make([]string, n),
	}
	for i, leg := range c.game.Legs {
		r.numbers[i] = leg.Number
		if r.numbers[i] == 0 {
			r.numbers[i] = i%20 + 1
		}
		r.lives[i] = KillerLives
		r.users[i] = leg.UserID
	}
	return replay(c.game, r, true)
}

type killerRules struct {
	numbers []int
	lives   []int
	killer  []bool
	users   []string
	order   []int
}

func (r *killerRules) apply(i int, v Visit) bool {
	for _, s := range v {
		if s == nil || r.lives[i] <= 0 || r.alive() <= 1 {
			break
		}
		if s.Multiplier < FinishDouble {
			continue
		}
		owner := r.owner(s.Value)
		switch {
		case owner < 0:
		case owner == i && !r.killer[i]:
			r.killer[i] = true
		case owner == i || r.killer[i]:
			r.hit(owner)
		}
	}
	return r.lives[i] <= 0 || r.alive() <= 1
}

func (r *killerRules) hit(i int) {
	r.lives[i]--
	if r.lives[i] == 0 {
		r.order = append(r.order, i)
	}
}

// owner returns the living leg guarding value, or -1.
func (r *killerRules) owner(value int) int {
	for i, n := range r.numbers {
		if n == value && r.lives[i] > 0 {
			return i
		}
	}
	return -1
}

func (r *killerRules) alive() int {
	n := 0
	for _, l := range r.lives {
		if l > 0 {
			n++
		}
	}
	return n
}

func (r *killerRules) finished(i int) bool { return r.lives[i] <= 0 }

func (r *killerRules) player(i int) PlayerState {
	return PlayerState{
		UserID:   r.users[i],
		Finished: r.lives[i] <= 0,
		Lives:    r.lives[i],
		Number:   r.numbers[i],
		Killer:   r.killer[i],
	}
}

func (r *killerRules) finishOrder() []int { return r.order }
