package games

import (
	"reflect"
	"testing"
)

func TestRoundTheClock_RepeatedHitDoesNotAdvance(t *testing.T) {
	g := testGame(t, TypeRoundTheClock, Options{}, "a", "b")
	g.Legs[0].Visits = []Visit{visit(seg(1, 1))}

	p := ControllerFor(g).State().Player("a")
	if p.Target != 2 {
		t.Fatalf("expected target 2 after hitting 1, got %d", p.Target)
	}

	g.Legs[0].Visits[0][1] = seg(1, 1)
	p = ControllerFor(g).State().Player("a")
	if p.Target != 2 || p.Cleared != 1 {
		t.Errorf("expected second 1 not to advance, got target=%d cleared=%d", p.Target, p.Cleared)
	}
}

func TestRoundTheClock_Modes(t *testing.T) {
	cases := []struct {
		name   string
		mode   int
		dart   *Segment
		target int
	}{
		{"single mode accepts treble", FinishSingle, seg(1, 3), 2},
		{"double mode rejects single", FinishDouble, seg(1, 1), 1},
		{"double mode accepts double", FinishDouble, seg(1, 2), 2},
		{"double mode rejects treble", FinishDouble, seg(1, 3), 1},
		{"triple mode accepts treble", FinishTriple, seg(1, 3), 2},
		{"wrong number", FinishSingle, seg(2, 1), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := testGame(t, TypeRoundTheClock, Options{Mode: tc.mode}, "a", "b")
			g.Legs[0].Visits = []Visit{visit(tc.dart)}
			if got := ControllerFor(g).State().Player("a").Target; got != tc.target {
				t.Errorf("expected target %d, got %d", tc.target, got)
			}
		})
	}
}

func TestRoundTheClock_ClearingTheBullFinishes(t *testing.T) {
	g := testGame(t, TypeRoundTheClock, Options{Mode: FinishTriple}, "a")
	var darts []*Segment
	for v := 1; v <= 20; v++ {
		darts = append(darts, seg(v, 3))
	}
	darts = append(darts, seg(Bull, 2))
	for i := 0; i < len(darts); i += 3 {
		g.Legs[0].Visits = append(g.Legs[0].Visits, visit(darts[i:i+3]...))
	}

	st := ControllerFor(g).State()
	p := st.Player("a")
	if !p.Finished || p.Cleared != 21 || p.Target != 0 {
		t.Errorf("expected cleared board, got %+v", p)
	}
	if st.UserID != "" || len(st.Results) != 1 {
		t.Errorf("expected solo game over, got %+v", st)
	}
}

func TestRoundTheClock_FinishMidVisitEndsTurn(t *testing.T) {
	g := testGame(t, TypeRoundTheClock, Options{}, "a", "b", "c")
	miss := visit(seg(0, 1), seg(0, 1), seg(0, 1))
	for v := 1; v <= 16; v += 3 {
		g.Legs[0].Visits = append(g.Legs[0].Visits, visit(seg(v, 1), seg(v+1, 1), seg(v+2, 1)))
		g.Legs[1].Visits = append(g.Legs[1].Visits, miss)
		g.Legs[2].Visits = append(g.Legs[2].Visits, miss)
	}
	g.Legs[0].Visits = append(g.Legs[0].Visits, visit(seg(19, 1), seg(20, 1), seg(0, 1)))
	g.Legs[1].Visits = append(g.Legs[1].Visits, miss)
	g.Legs[2].Visits = append(g.Legs[2].Visits, miss)
	if p := ControllerFor(g).State().Player("a"); p.Target != Bull {
		t.Fatalf("expected bull left, got target %d", p.Target)
	}
	g.Legs[0].Visits = append(g.Legs[0].Visits, visit(seg(Bull, 1)))

	st := ControllerFor(g).State()
	if !st.Player("a").Finished {
		t.Fatalf("expected a finished, got %+v", st.Player("a"))
	}
	if st.UserID != "b" || st.VisitOpen {
		t.Errorf("expected b up with a new visit, got %+v", st)
	}
	if st.PrevUserID != "a" {
		t.Errorf("expected prev user a, got %q", st.PrevUserID)
	}
}

func TestRoundTheClock_FastModeAlternatesEveryDart(t *testing.T) {
	g := testGame(t, TypeRoundTheClock, Options{Fast: true}, "a", "b")
	g.Legs[0].Visits = []Visit{visit(seg(1, 1))}

	st := ControllerFor(g).State()
	if st.UserID != "b" || st.VisitOpen {
		t.Errorf("expected b after one dart, got %+v", st)
	}
	g.Legs[1].Visits = []Visit{visit(seg(5, 1))}
	st = ControllerFor(g).State()
	if st.UserID != "a" || st.PrevUserID != "b" {
		t.Errorf("expected a after b, got %+v", st)
	}
}

func TestRandomRoundTheClock_UsesStoredSequence(t *testing.T) {
	g := testGame(t, TypeRoundTheClock, Options{Random: true}, "a", "b")
	seq := append([]int(nil), g.Legs[0].Sequence...)
	c := ControllerFor(g)

	if got := c.State().Player("a").Target; got != seq[0] {
		t.Fatalf("expected first target %d, got %d", seq[0], got)
	}

	g.Legs[0].Visits = []Visit{visit(seg(seq[0], 1), seg(seq[0], 1))}
	for i := 0; i < 5; i++ {
		if got := c.State().Player("a").Target; got != seq[1] {
			t.Fatalf("recompute %d: expected target %d, got %d", i, seq[1], got)
		}
	}
	g.Legs[0].Visits = nil
	if got := c.State().Player("a").Target; got != seq[0] {
		t.Errorf("after undo expected target %d, got %d", seq[0], got)
	}
	if !reflect.DeepEqual(seq, g.Legs[0].Sequence) {
		t.Error("sequence changed during play")
	}
}
