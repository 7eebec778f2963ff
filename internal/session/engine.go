package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/vntrieu/darts/internal/games"
	"github.com/vntrieu/darts/internal/store"
)

// Errors returned for calls the operator UI should have prevented. None of
// them changes any state.
var (
	ErrNoActiveGame  = errors.New("no active game")
	ErrNoLegs        = errors.New("game has no legs")
	ErrTooFewPlayers = errors.New("not enough players for this game type")
	ErrUnknownType   = errors.New("unknown game type")
	ErrNoCurrentUser = errors.New("no current user")
	ErrNoCurrentLeg  = errors.New("no leg for current user")
	ErrUserFinished  = errors.New("user has already finished")
)

// ProfileLookup resolves a user's walk-on. It returns nil, nil for an unknown user.
type ProfileLookup interface {
	GetProfile(ctx context.Context, userID string) (*store.Profile, error)
}

// MatchStore is the remote persistence for finished matches (implemented by store.MatchStore).
type MatchStore interface {
	SaveLeg(ctx context.Context, leg *games.Leg) error
	SaveGame(ctx context.Context, game *games.Game) error
}

// SnapshotStore keeps the in-progress game on the device for crash recovery.
type SnapshotStore interface {
	Save(ctx context.Context, game *games.Game) error
	Load(ctx context.Context) (*games.Game, error)
	Clear(ctx context.Context) error
}

// StatsRefresher is told to refresh aggregate statistics after a match is saved.
type StatsRefresher interface {
	RefreshStats()
}

// Publisher receives a copy of the match after every change.
type Publisher interface {
	PublishView(view *View)
}

// DefaultWalkOnTimeout bounds the profile lookup made while deriving state.
const DefaultWalkOnTimeout = 2 * time.Second

// Engine owns the active game. It is the only writer of throw history; rule
// engines only read it. All methods are safe for concurrent use and run one
// at a time.
type Engine struct {
	mu sync.Mutex

	game       *games.Game
	state      *games.GameState
	controller games.Controller
	walkOn     *store.Profile

	profiles  ProfileLookup
	matches   MatchStore
	snapshots SnapshotStore
	stats     StatsRefresher
	publisher Publisher

	walkOnTimeout time.Duration
}

// NewEngine creates an engine. Any collaborator may be nil, in which case the
// matching step is skipped.
func NewEngine(profiles ProfileLookup, matches MatchStore, snapshots SnapshotStore, stats StatsRefresher) *Engine {
	return &Engine{
		profiles:      profiles,
		matches:       matches,
		snapshots:     snapshots,
		stats:         stats,
		walkOnTimeout: DefaultWalkOnTimeout,
	}
}

// SetPublisher sets the publisher notified after every change.
func (e *Engine) SetPublisher(p Publisher) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.publisher = p
}

// SetWalkOnTimeout overrides DefaultWalkOnTimeout.
func (e *Engine) SetWalkOnTimeout(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if d > 0 {
		e.walkOnTimeout = d
	}
}

// SetActiveGame installs g as the active game and derives its state.
func (e *Engine) SetActiveGame(ctx context.Context, g *games.Game) (*games.GameState, error) {
	if g == nil {
		return nil, ErrNoActiveGame
	}
	if len(g.Legs) == 0 {
		return nil, ErrNoLegs
	}
	if min := games.MinPlayerCount(g.Type); len(g.Legs) < min {
		return nil, fmt.Errorf("%w: %s needs %d, got %d", ErrTooFewPlayers, g.Type, min, len(g.Legs))
	}
	if games.ControllerFor(g) == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, g.Type)
	}
	for _, leg := range g.Legs {
		if leg.Visits == nil {
			leg.Visits = []games.Visit{}
		}
	}
	if g.Result == nil {
		g.Result = []string{}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.game = g
	e.controller = nil
	st := e.refresh(ctx)
	e.saveSnapshot(ctx)
	e.publish()
	return st, nil
}

// Controller returns the rule engine bound to the active game. The engine is
// rebuilt only when the active game's ID changes.
func (e *Engine) Controller() (games.Controller, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.game == nil {
		return nil, ErrNoActiveGame
	}
	return e.controllerLocked(), nil
}

func (e *Engine) controllerLocked() games.Controller {
	if e.controller == nil || e.controller.GameID() != e.game.ID {
		e.controller = games.ControllerFor(e.game)
	}
	return e.controller
}

// CurrentState recomputes the state of the active game.
func (e *Engine) CurrentState(ctx context.Context) (*games.GameState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.game == nil {
		return nil, ErrNoActiveGame
	}
	return e.refresh(ctx), nil
}

// refresh derives the state and stages the walk-on of a user stepping up for
// their first visit. Callers hold e.mu.
func (e *Engine) refresh(ctx context.Context) *games.GameState {
	st := e.controllerLocked().State()
	e.state = st
	e.walkOn = nil
	if st.UserID != "" && len(e.game.VisitsOfUser(st.UserID)) <= 1 && e.profiles != nil {
		lookupCtx, cancel := context.WithTimeout(ctx, e.walkOnTimeout)
		defer cancel()
		profile, err := e.profiles.GetProfile(lookupCtx, st.UserID)
		if err != nil {
			log.Printf("walk-on lookup user_id=%s: %v", st.UserID, err)
		} else {
			e.walkOn = profile
		}
	}
	return st
}

// RecordThrow adds seg to the current user's open visit, or opens a new one.
func (e *Engine) RecordThrow(ctx context.Context, seg games.Segment) (*games.GameState, error) {
	if err := seg.Validate(); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.game == nil {
		return nil, ErrNoActiveGame
	}
	st := e.state
	if st == nil || st.UserID == "" {
		return nil, ErrNoCurrentUser
	}
	leg := e.game.LegOfUser(st.UserID)
	if leg == nil {
		return nil, ErrNoCurrentLeg
	}
	if st.HasResult(st.UserID) {
		return nil, fmt.Errorf("%w: %s", ErrUserFinished, st.UserID)
	}

	s := seg
	if last := leg.LastVisit(); st.VisitOpen && last != nil && !last.Full() {
		last[last.Darts()] = &s
	} else {
		leg.Visits = append(leg.Visits, games.Visit{&s})
	}

	st = e.refresh(ctx)
	e.saveSnapshot(ctx)
	e.publish()
	return st, nil
}

// UndoThrow removes the last recorded dart. While the current user's visit is
// open that dart is theirs; otherwise the turn already moved on and the dart
// belongs to the previous user. At the start of a match it does nothing.
func (e *Engine) UndoThrow(ctx context.Context) (*games.GameState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.game == nil {
		return nil, ErrNoActiveGame
	}
	st := e.state
	userID := st.UserID
	if !st.VisitOpen {
		userID = st.PrevUserID
	}
	leg := e.game.LegOfUser(userID)
	last := leg.LastVisit()
	if last == nil {
		return st, nil
	}

	if n := last.Darts(); n > 0 {
		last[n-1] = nil
	}
	if last.Empty() {
		leg.Visits = leg.Visits[:len(leg.Visits)-1]
	}

	st = e.refresh(ctx)
	e.saveSnapshot(ctx)
	e.publish()
	return st, nil
}

// FinalizeMatch stores the results, persists every leg and then the game, and
// triggers a statistics refresh. A persistence error is returned as is; the
// in-memory match keeps its results.
func (e *Engine) FinalizeMatch(ctx context.Context) ([]string, error) {
	e.mu.Lock()
	if e.game == nil {
		e.mu.Unlock()
		return nil, ErrNoActiveGame
	}
	st := e.refresh(ctx)
	e.game.Result = append([]string{}, st.Results...)
	for _, leg := range e.game.Legs {
		if st.HasResult(leg.UserID) {
			leg.Finish = true
		}
	}
	g := e.game.Clone()
	e.saveSnapshot(ctx)
	e.publish()
	e.mu.Unlock()

	if e.matches != nil {
		for _, leg := range g.Legs {
			if err := e.matches.SaveLeg(ctx, leg); err != nil {
				return g.Result, fmt.Errorf("save leg %s: %w", leg.ID, err)
			}
		}
		if err := e.matches.SaveGame(ctx, g); err != nil {
			return g.Result, fmt.Errorf("save game %s: %w", g.ID, err)
		}
	}
	log.Printf("match saved game_id=%s type=%s results=%v", g.ID, g.Type, g.Result)

	if e.stats != nil {
		e.stats.RefreshStats()
	}
	if e.snapshots != nil {
		if err := e.snapshots.Clear(ctx); err != nil {
			log.Printf("snapshot clear game_id=%s: %v", g.ID, err)
		}
	}
	return g.Result, nil
}

// Restore reinstalls the game kept in the snapshot store, if any.
func (e *Engine) Restore(ctx context.Context) (bool, error) {
	if e.snapshots == nil {
		return false, nil
	}
	g, err := e.snapshots.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("load snapshot: %w", err)
	}
	if g == nil {
		return false, nil
	}
	if _, err := e.SetActiveGame(ctx, g); err != nil {
		return false, fmt.Errorf("restore game %s: %w", g.ID, err)
	}
	return true, nil
}

// View returns a copy of the active match for transports, or nil.
func (e *Engine) View() *View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewLocked()
}

func (e *Engine) viewLocked() *View {
	if e.game == nil {
		return nil
	}
	v := &View{
		Game:   e.game.Clone(),
		Name:   games.DisplayName(e.game),
		Points: games.Points(e.game),
		State:  e.state,
	}
	if e.walkOn != nil {
		w := *e.walkOn
		v.WalkOn = &w
	}
	return v
}

func (e *Engine) saveSnapshot(ctx context.Context) {
	if e.snapshots == nil {
		return
	}
	if err := e.snapshots.Save(ctx, e.game); err != nil {
		log.Printf("snapshot save game_id=%s: %v", e.game.ID, err)
	}
}

func (e *Engine) publish() {
	if e.publisher == nil {
		return
	}
	e.publisher.PublishView(e.viewLocked())
}
