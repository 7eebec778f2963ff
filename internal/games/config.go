package games

import "fmt"

// Type is the variant tag of a game.
type Type string

// Game types.
const (
	TypeX01           Type = "x01"
	TypeRoundTheClock Type = "rtc"
	TypeKiller        Type = "killer"
)

// Types lists the supported variants in display order.
var Types = []Type{TypeX01, TypeRoundTheClock, TypeKiller}

// Finish requirements for x01 (also reused as round-the-clock modes).
const (
	FinishSingle = 1
	FinishDouble = 2
	FinishTriple = 3
)

// Defaults applied by Options.Normalize.
const (
	DefaultStartScore   = 501
	KillerLives         = 5
	RoundTheClockPoints = 20
)

// Options is the variant option bag stored with a game.
type Options struct {
	// StartScore is the x01 starting score.
	StartScore int `json:"start_score,omitempty"`
	// Finish is the x01 finish-multiplier requirement (1 single, 2 double, 3 triple).
	Finish int `json:"finish,omitempty"`
	// Mode is the round-the-clock hit requirement (1 single, 2 double, 3 triple).
	Mode int `json:"mode,omitempty"`
	// Random plays round the clock against a per-leg random target order.
	Random bool `json:"random,omitempty"`
	// Fast makes every round-the-clock turn a single dart.
	Fast bool `json:"fast,omitempty"`
}

// Normalize returns a copy of o with the defaults for gameType filled in.
func (o Options) Normalize(gameType Type) Options {
	out := o
	if out.Finish < FinishSingle || out.Finish > FinishTriple {
		out.Finish = FinishSingle
	}
	if out.Mode < FinishSingle || out.Mode > FinishTriple {
		out.Mode = FinishSingle
	}
	if gameType == TypeX01 && out.StartScore <= 0 {
		out.StartScore = DefaultStartScore
	}
	return out
}

var typeNames = map[Type]string{
	TypeX01:           "X01",
	TypeRoundTheClock: "Round the Clock",
	TypeKiller:        "Killer",
}

// TypeName returns the human-readable name of a variant, or "" if unknown.
func TypeName(t Type) string {
	return typeNames[t]
}

// ValidType reports whether t is a supported variant.
func ValidType(t Type) bool {
	_, ok := typeNames[t]
	return ok
}

// MinPlayerCount returns the minimum number of legs a variant needs before play.
func MinPlayerCount(t Type) int {
	switch t {
	case TypeKiller:
		return 2
	default:
		return 1
	}
}

// DisplayName builds the label shown for a game, e.g. "301 Double Finish".
// It is for display only; no rule depends on it.
func DisplayName(g *Game) string {
	if g == nil {
		return "Empty Game"
	}
	opts := g.Options.Normalize(g.Type)
	switch g.Type {
	case TypeX01:
		finish := []string{" Single Finish", " Double Finish", " Triple Finish"}[opts.Finish-1]
		return fmt.Sprintf("%d%s", opts.StartScore, finish)
	case TypeRoundTheClock:
		name := "Round the Clock" + []string{"", " Double", " Triple"}[opts.Mode-1]
		if opts.Random {
			name += " Random"
		}
		if opts.Fast {
			name += " Fast"
		}
		return name
	case TypeKiller:
		return "Killer"
	}
	return string(g.Type)
}

// Points returns the amount of progress a player has to make in the game:
// the starting score for x01, the number of targets for round the clock and
// the number of lives for killer.
func Points(g *Game) int {
	if g == nil {
		return 0
	}
	switch g.Type {
	case TypeX01:
		return g.Options.Normalize(g.Type).StartScore
	case TypeRoundTheClock:
		return RoundTheClockPoints
	case TypeKiller:
		return KillerLives
	}
	return 0
}
