package games

// RoundTheClock scores sequential target clearing: 1 to 20, then the bull.
type RoundTheClock struct {
	game *Game
}

// GameID implements Controller.
func (c *RoundTheClock) GameID() string { return c.game.ID }

// State implements Controller.
func (c *RoundTheClock) State() *GameState {
	return replay(c.game, newClockRules(c.game, func(*Leg) []int { return clockTargets }), false)
}

// RandomRoundTheClock is round the clock against the target order stored on
// each leg when the game was created.
type RandomRoundTheClock struct {
	game *Game
}

// GameID implements Controller.
func (c *RandomRoundTheClock) GameID() string { return c.game.ID }

// State implements Controller.
func (c *RandomRoundTheClock) State() *GameState {
	return replay(c.game, newClockRules(c.game, func(l *Leg) []int {
		if len(l.Sequence) == 0 {
			return clockTargets
		}
		return l.Sequence
	}), false)
}

type clockRules struct {
	mode      int
	fast      bool
	sequences [][]int
	cleared   []int
	users     []string
	order     []int
}

func newClockRules(g *Game, sequence func(*Leg) []int) *clockRules {
	opts := g.Options.Normalize(TypeRoundTheClock)
	r := &clockRules{
		mode:      opts.Mode,
		fast:      opts.Fast,
		sequences: make([][]int, len(g.Legs)),
		cleared:   make([]int, len(g.Legs)),
		users:     make([]string, len(g.Legs)),
	}
	for i, leg := range g.Legs {
		r.sequences[i] = sequence(leg)
		r.users[i] = leg.UserID
	}
	return r
}

func (r *clockRules) apply(i int, v Visit) bool {
	seq := r.sequences[i]
	for _, s := range v {
		if s == nil || r.cleared[i] >= len(seq) {
			break
		}
		if r.hits(*s, seq[r.cleared[i]]) {
			r.cleared[i]++
			if r.cleared[i] == len(seq) {
				r.order = append(r.order, i)
				return true
			}
		}
	}
	// In fast mode every turn is a single dart.
	return r.fast
}

// hits reports whether s counts for target under the mode's multiplier
// requirement. The bull has no treble, so it needs at most a double.
func (r *clockRules) hits(s Segment, target int) bool {
	if s.Value != target {
		return false
	}
	need := r.mode
	if target == Bull && need > FinishDouble {
		need = FinishDouble
	}
	return need <= FinishSingle || s.Multiplier == need
}

func (r *clockRules) finished(i int) bool { return r.cleared[i] >= len(r.sequences[i]) }

func (r *clockRules) player(i int) PlayerState {
	p := PlayerState{UserID: r.users[i], Cleared: r.cleared[i], Finished: r.finished(i)}
	if !p.Finished {
		p.Target = r.sequences[i][r.cleared[i]]
	}
	return p
}

func (r *clockRules) finishOrder() []int { return r.order }
