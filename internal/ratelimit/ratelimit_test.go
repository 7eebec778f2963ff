package ratelimit

import (
	"testing"
	"time"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(limit int, window time.Duration) (*InMemory, *clock) {
	c := &clock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	l := NewInMemory(limit, window)
	l.now = c.now
	return l, c
}

func TestNoop_AlwaysAllows(t *testing.T) {
	var lim Noop
	for i := 0; i < 100; i++ {
		if allowed, retry := lim.Allow("any"); !allowed || retry != 0 {
			t.Fatalf("want allowed=true retry=0, got allowed=%v retry=%d", allowed, retry)
		}
	}
}

func TestNew_DisabledLimitIsNoop(t *testing.T) {
	if _, ok := New(0, time.Minute).(Noop); !ok {
		t.Error("expected Noop for zero limit")
	}
	if _, ok := New(5, time.Minute).(*InMemory); !ok {
		t.Error("expected InMemory for positive limit")
	}
}

func TestInMemory_RejectsOverLimit(t *testing.T) {
	lim, c := newTestLimiter(2, time.Minute)
	lim.Allow("tablet")
	c.advance(10 * time.Second)
	lim.Allow("tablet")

	allowed, retry := lim.Allow("tablet")
	if allowed {
		t.Fatal("expected third request to be rejected")
	}
	if retry != 50 {
		t.Errorf("expected Retry-After 50, got %d", retry)
	}
}

func TestInMemory_WindowSlides(t *testing.T) {
	lim, c := newTestLimiter(1, time.Minute)
	if ok, _ := lim.Allow("tablet"); !ok {
		t.Fatal("expected first request allowed")
	}
	c.advance(59500 * time.Millisecond)
	if ok, retry := lim.Allow("tablet"); ok || retry != 1 {
		t.Fatalf("expected rejection with retry 1, got ok=%v retry=%d", ok, retry)
	}
	c.advance(time.Second)
	if ok, _ := lim.Allow("tablet"); !ok {
		t.Error("expected request allowed once the window moved on")
	}
}

func TestInMemory_KeysIndependent(t *testing.T) {
	lim, _ := newTestLimiter(1, time.Minute)
	lim.Allow("a")
	if ok, _ := lim.Allow("b"); !ok {
		t.Error("different key should be allowed")
	}
	if ok, _ := lim.Allow("a"); ok {
		t.Error("same key over limit should be rejected")
	}
}

func TestInMemory_Prune(t *testing.T) {
	lim, c := newTestLimiter(3, time.Minute)
	lim.Allow("old")
	c.advance(2 * time.Minute)
	lim.Allow("new")
	lim.Prune()
	if _, ok := lim.hits["old"]; ok {
		t.Error("expected stale key pruned")
	}
	if _, ok := lim.hits["new"]; !ok {
		t.Error("expected active key kept")
	}
}

func TestInMemory_PruneKeepsLiveHitsOnce(t *testing.T) {
	lim, c := newTestLimiter(2, time.Minute)
	lim.Allow("ip")
	c.advance(50 * time.Second)
	lim.Allow("ip")
	c.advance(20 * time.Second)

	lim.Prune()
	if got := len(lim.hits["ip"]); got != 1 {
		t.Fatalf("expected one live hit after prune, got %d", got)
	}
	if ok, _ := lim.Allow("ip"); !ok {
		t.Error("expected allow with one hit inside the window")
	}
	if ok, _ := lim.Allow("ip"); ok {
		t.Error("expected deny at the limit")
	}
}
