package games

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Bull is the face value of the bullseye.
const Bull = 25

// VisitSize is the number of darts in one visit.
const VisitSize = 3

// ErrInvalidSegment is returned for a segment that cannot be thrown on a board.
var ErrInvalidSegment = errors.New("invalid segment")

// Segment is the scored outcome of one dart.
type Segment struct {
	Value      int `json:"value"`
	Multiplier int `json:"multiplier"`
}

// Validate checks the value and multiplier combination.
func (s Segment) Validate() error {
	switch {
	case s.Multiplier < 1 || s.Multiplier > 3:
		return fmt.Errorf("%w: multiplier %d", ErrInvalidSegment, s.Multiplier)
	case s.Value == Bull && s.Multiplier > 2:
		return fmt.Errorf("%w: bull cannot be tripled", ErrInvalidSegment)
	case s.Value == 0 && s.Multiplier != 1:
		return fmt.Errorf("%w: a miss has no multiplier", ErrInvalidSegment)
	case s.Value != Bull && (s.Value < 0 || s.Value > 20):
		return fmt.Errorf("%w: value %d", ErrInvalidSegment, s.Value)
	}
	return nil
}

// Points is value times multiplier.
func (s Segment) Points() int {
	return s.Value * s.Multiplier
}

// Visit is one player's turn. A nil slot is a dart not yet thrown; slots are
// filled left to right.
type Visit [VisitSize]*Segment

// Darts returns the number of thrown darts.
func (v Visit) Darts() int {
	n := 0
	for _, s := range v {
		if s == nil {
			break
		}
		n++
	}
	return n
}

// Full reports whether all three darts were thrown.
func (v Visit) Full() bool { return v.Darts() == VisitSize }

// Empty reports whether no dart was thrown.
func (v Visit) Empty() bool { return v[0] == nil }

// Leg is one user's participation in a game.
type Leg struct {
	ID     string  `json:"id"`
	UserID string  `json:"user_id"`
	Type   Type    `json:"type"`
	Visits []Visit `json:"visits"`
	Finish bool    `json:"finish"`
	// Sequence is the target order for random round the clock, fixed at creation.
	Sequence []int `json:"sequence,omitempty"`
	// Number is the killer number guarded by this leg, fixed at creation.
	Number int `json:"number,omitempty"`
}

// LastVisit returns a pointer to the last visit, or nil if the leg has none.
func (l *Leg) LastVisit() *Visit {
	if l == nil || len(l.Visits) == 0 {
		return nil
	}
	return &l.Visits[len(l.Visits)-1]
}

// Game is a full match.
type Game struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Options   Options   `json:"options"`
	Legs      []*Leg    `json:"legs"`
	Result    []string  `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}

// LegOfUser returns the leg played by userID, or nil.
func (g *Game) LegOfUser(userID string) *Leg {
	if g == nil || userID == "" {
		return nil
	}
	for _, leg := range g.Legs {
		if leg.UserID == userID {
			return leg
		}
	}
	return nil
}

// VisitsOfUser returns the visits recorded for userID.
func (g *Game) VisitsOfUser(userID string) []Visit {
	if leg := g.LegOfUser(userID); leg != nil {
		return leg.Visits
	}
	return nil
}

// Clone returns a deep copy of the game, safe to hand to other goroutines.
func (g *Game) Clone() *Game {
	if g == nil {
		return nil
	}
	out := *g
	out.Result = append([]string(nil), g.Result...)
	out.Legs = make([]*Leg, len(g.Legs))
	for i, leg := range g.Legs {
		l := *leg
		l.Sequence = append([]int(nil), leg.Sequence...)
		l.Visits = make([]Visit, len(leg.Visits))
		for j, v := range leg.Visits {
			for k, s := range v {
				if s != nil {
					seg := *s
					l.Visits[j][k] = &seg
				}
			}
		}
		out.Legs[i] = &l
	}
	return &out
}

// NewGame creates a game with one leg per user. Per-leg random state (the
// random round-the-clock order and killer numbers) is drawn from rng here and
// never again.
func NewGame(gameType Type, opts Options, userIDs []string, rng *rand.Rand) (*Game, error) {
	if !ValidType(gameType) {
		return nil, fmt.Errorf("unknown game type %q", gameType)
	}
	if len(userIDs) == 0 {
		return nil, fmt.Errorf("at least one player is required")
	}
	seen := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		if id == "" {
			return nil, fmt.Errorf("player id is required")
		}
		if seen[id] {
			return nil, fmt.Errorf("player %s listed twice", id)
		}
		seen[id] = true
	}
	if gameType == TypeKiller && len(userIDs) > 20 {
		return nil, fmt.Errorf("killer supports at most 20 players")
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	opts = opts.Normalize(gameType)

	g := &Game{
		ID:        uuid.NewString(),
		Type:      gameType,
		Options:   opts,
		Legs:      make([]*Leg, 0, len(userIDs)),
		Result:    []string{},
		CreatedAt: time.Now().UTC(),
	}
	var numbers []int
	if gameType == TypeKiller {
		numbers = rng.Perm(20)
	}
	for i, userID := range userIDs {
		leg := &Leg{
			ID:     uuid.NewString(),
			UserID: userID,
			Type:   gameType,
			Visits: []Visit{},
		}
		switch {
		case gameType == TypeRoundTheClock && opts.Random:
			leg.Sequence = shuffledTargets(rng)
		case gameType == TypeKiller:
			leg.Number = numbers[i] + 1
		}
		g.Legs = append(g.Legs, leg)
	}
	return g, nil
}

// clockTargets is the ascending round-the-clock order.
var clockTargets = func() []int {
	out := make([]int, 0, 21)
	for v := 1; v <= 20; v++ {
		out = append(out, v)
	}
	return append(out, Bull)
}()

func shuffledTargets(rng *rand.Rand) []int {
	out := make([]int, len(clockTargets))
	for i, j := range rng.Perm(len(clockTargets)) {
		out[i] = clockTargets[j]
	}
	return out
}
