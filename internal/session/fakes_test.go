package session

import (
	"context"
	"errors"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/vntrieu/darts/internal/games"
	"github.com/vntrieu/darts/internal/store"
)

// fakeSnapshots is an in-memory SnapshotStore.
type fakeSnapshots struct {
	mu      sync.Mutex
	game    *games.Game
	saves   int
	clears  int
	saveErr error
}

func (f *fakeSnapshots) Save(_ context.Context, g *games.Game) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.game = g.Clone()
	return nil
}

func (f *fakeSnapshots) Load(context.Context) (*games.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.game.Clone(), nil
}

func (f *fakeSnapshots) Clear(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clears++
	f.game = nil
	return nil
}

func (f *fakeSnapshots) saved() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}

// fakeProfiles maps user IDs to walk-ons.
type fakeProfiles struct {
	profiles map[string]*store.Profile
	err      error
	calls    []string
}

func (f *fakeProfiles) GetProfile(_ context.Context, userID string) (*store.Profile, error) {
	f.calls = append(f.calls, userID)
	if f.err != nil {
		return nil, f.err
	}
	return f.profiles[userID], nil
}

// MockMatchStore is a testify mock for MatchStore.
type MockMatchStore struct {
	mock.Mock
}

func (m *MockMatchStore) SaveLeg(ctx context.Context, leg *games.Leg) error {
	args := m.Called(ctx, leg)
	return args.Error(0)
}

func (m *MockMatchStore) SaveGame(ctx context.Context, g *games.Game) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

// MockStats is a testify mock for StatsRefresher.
type MockStats struct {
	mock.Mock
}

func (m *MockStats) RefreshStats() {
	m.Called()
}

type recordingPublisher struct {
	views []*View
}

func (p *recordingPublisher) PublishView(v *View) {
	p.views = append(p.views, v)
}

var errBoom = errors.New("boom")
