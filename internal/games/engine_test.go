package games

import (
	"math/rand"
	"reflect"
	"testing"
)

func seg(value, multiplier int) *Segment {
	return &Segment{Value: value, Multiplier: multiplier}
}

func visit(darts ...*Segment) Visit {
	var v Visit
	copy(v[:], darts)
	return v
}

func testGame(t *testing.T, gameType Type, opts Options, users ...string) *Game {
	t.Helper()
	g, err := NewGame(gameType, opts, users, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

func TestControllerFor(t *testing.T) {
	cases := []struct {
		name string
		game *Game
		want Controller
	}{
		{"x01", &Game{Type: TypeX01}, &X01{}},
		{"rtc", &Game{Type: TypeRoundTheClock}, &RoundTheClock{}},
		{"rtc random", &Game{Type: TypeRoundTheClock, Options: Options{Random: true}}, &RandomRoundTheClock{}},
		{"killer", &Game{Type: TypeKiller}, &Killer{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ControllerFor(tc.game)
			if reflect.TypeOf(got) != reflect.TypeOf(tc.want) {
				t.Errorf("expected %T, got %T", tc.want, got)
			}
		})
	}
	if ControllerFor(&Game{Type: "cricket"}) != nil {
		t.Error("expected nil controller for unknown type")
	}
	if ControllerFor(nil) != nil {
		t.Error("expected nil controller for nil game")
	}
}

func TestMinPlayerCount(t *testing.T) {
	for typ, want := range map[Type]int{TypeX01: 1, TypeRoundTheClock: 1, TypeKiller: 2} {
		if got := MinPlayerCount(typ); got != want {
			t.Errorf("%s: expected %d, got %d", typ, want, got)
		}
	}
}

func TestDisplayName(t *testing.T) {
	cases := map[string]*Game{
		"Empty Game":                         nil,
		"301 Double Finish":                  {Type: TypeX01, Options: Options{StartScore: 301, Finish: 2}},
		"501 Single Finish":                  {Type: TypeX01},
		"Round the Clock":                    {Type: TypeRoundTheClock},
		"Round the Clock Triple Random Fast": {Type: TypeRoundTheClock, Options: Options{Mode: 3, Random: true, Fast: true}},
		"Killer":                             {Type: TypeKiller},
	}
	for want, g := range cases {
		if got := DisplayName(g); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}

func TestPoints(t *testing.T) {
	if got := Points(&Game{Type: TypeX01, Options: Options{StartScore: 301}}); got != 301 {
		t.Errorf("x01: expected 301, got %d", got)
	}
	if got := Points(&Game{Type: TypeRoundTheClock}); got != 20 {
		t.Errorf("rtc: expected 20, got %d", got)
	}
	if got := Points(&Game{Type: TypeKiller}); got != 5 {
		t.Errorf("killer: expected 5, got %d", got)
	}
}

func TestSegmentValidate(t *testing.T) {
	valid := []Segment{{0, 1}, {1, 1}, {20, 3}, {25, 1}, {25, 2}}
	for _, s := range valid {
		if err := s.Validate(); err != nil {
			t.Errorf("%+v: unexpected error %v", s, err)
		}
	}
	invalid := []Segment{{25, 3}, {21, 1}, {-1, 1}, {5, 0}, {5, 4}, {0, 2}}
	for _, s := range invalid {
		if err := s.Validate(); err == nil {
			t.Errorf("%+v: expected error", s)
		}
	}
}

func TestNewGame(t *testing.T) {
	t.Run("one leg per user", func(t *testing.T) {
		g := testGame(t, TypeX01, Options{StartScore: 301}, "a", "b", "c")
		if len(g.Legs) != 3 {
			t.Fatalf("expected 3 legs, got %d", len(g.Legs))
		}
		if g.ID == "" || g.Legs[0].ID == "" || g.Legs[0].ID == g.Legs[1].ID {
			t.Error("expected distinct identifiers")
		}
		if g.Legs[1].UserID != "b" || g.Legs[1].Type != TypeX01 {
			t.Errorf("unexpected leg %+v", g.Legs[1])
		}
	})

	t.Run("random sequence is a permutation", func(t *testing.T) {
		g := testGame(t, TypeRoundTheClock, Options{Random: true}, "a")
		seq := append([]int(nil), g.Legs[0].Sequence...)
		if len(seq) != 21 {
			t.Fatalf("expected 21 targets, got %d", len(seq))
		}
		seen := map[int]bool{}
		for _, v := range seq {
			seen[v] = true
		}
		for _, v := range clockTargets {
			if !seen[v] {
				t.Errorf("target %d missing", v)
			}
		}
	})

	t.Run("killer numbers are distinct", func(t *testing.T) {
		g := testGame(t, TypeKiller, Options{}, "a", "b", "c", "d")
		seen := map[int]bool{}
		for _, leg := range g.Legs {
			if leg.Number < 1 || leg.Number > 20 || seen[leg.Number] {
				t.Errorf("bad killer number %d", leg.Number)
			}
			seen[leg.Number] = true
		}
	})

	t.Run("rejects bad input", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		if _, err := NewGame("cricket", Options{}, []string{"a"}, rng); err == nil {
			t.Error("expected error for unknown type")
		}
		if _, err := NewGame(TypeX01, Options{}, nil, rng); err == nil {
			t.Error("expected error for no players")
		}
		if _, err := NewGame(TypeX01, Options{}, []string{"a", "a"}, rng); err == nil {
			t.Error("expected error for duplicate player")
		}
	})
}

func TestStateIsDeterministic(t *testing.T) {
	g := testGame(t, TypeX01, Options{StartScore: 101, Finish: 2}, "a", "b")
	g.Legs[0].Visits = []Visit{visit(seg(20, 3), seg(1, 1), seg(5, 1))}
	g.Legs[1].Visits = []Visit{visit(seg(19, 1))}
	c := ControllerFor(g)
	first, second := c.State(), c.State()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("states differ:\n%+v\n%+v", first, second)
	}
}

func TestClone(t *testing.T) {
	g := testGame(t, TypeX01, Options{}, "a")
	g.Legs[0].Visits = []Visit{visit(seg(20, 1))}
	c := g.Clone()
	c.Legs[0].Visits[0][0].Value = 1
	c.Legs[0].Visits = append(c.Legs[0].Visits, visit(seg(5, 1)))
	if g.Legs[0].Visits[0][0].Value != 20 || len(g.Legs[0].Visits) != 1 {
		t.Error("clone shares state with original")
	}
}

func TestReplay_EmptyGame(t *testing.T) {
	st := (&X01{game: &Game{Type: TypeX01}}).State()
	if st.UserID != "" || len(st.Results) != 0 {
		t.Errorf("expected empty state, got %+v", st)
	}
}

func TestReplay_TurnOrder(t *testing.T) {
	g := testGame(t, TypeX01, Options{StartScore: 501}, "a", "b", "c")
	c := ControllerFor(g)

	st := c.State()
	if st.UserID != "a" || st.VisitOpen || st.PrevUserID != "" {
		t.Fatalf("expected a to start, got %+v", st)
	}

	g.Legs[0].Visits = []Visit{visit(seg(20, 1), seg(20, 1))}
	st = c.State()
	if st.UserID != "a" || !st.VisitOpen || st.Darts != 2 {
		t.Errorf("expected a with open visit, got %+v", st)
	}

	g.Legs[0].Visits[0][2] = seg(20, 1)
	st = c.State()
	if st.UserID != "b" || st.VisitOpen || st.PrevUserID != "a" {
		t.Errorf("expected b after a, got %+v", st)
	}

	g.Legs[1].Visits = []Visit{visit(seg(1, 1), seg(1, 1), seg(1, 1))}
	g.Legs[2].Visits = []Visit{visit(seg(1, 1), seg(1, 1), seg(1, 1))}
	st = c.State()
	if st.UserID != "a" || st.PrevUserID != "c" {
		t.Errorf("expected a after c, got %+v", st)
	}
}
