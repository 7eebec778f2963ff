package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vntrieu/darts/internal/games"
	"github.com/vntrieu/darts/internal/httpapi/handler"
	"github.com/vntrieu/darts/internal/session"
)

// failingMatches fails every save.
type failingMatches struct{}

func (failingMatches) SaveLeg(context.Context, *games.Leg) error   { return errors.New("db down") }
func (failingMatches) SaveGame(context.Context, *games.Game) error { return errors.New("db down") }

func setupGameHandler(t *testing.T) (*handler.GameHandler, *session.Engine) {
	t.Helper()
	engine := session.NewEngine(nil, nil, nil, nil)
	h := handler.NewGameHandler(engine).WithRand(func() *rand.Rand { return rand.New(rand.NewSource(1)) })
	return h, engine
}

func do(t *testing.T, fn http.HandlerFunc, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	fn(w, req)
	return w
}

func decodeView(t *testing.T, w *httptest.ResponseRecorder) session.View {
	t.Helper()
	var v session.View
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	return v
}

func startMatch(t *testing.T, h *handler.GameHandler, req handler.CreateGameRequest) session.View {
	t.Helper()
	w := do(t, h.CreateGame, http.MethodPost, "/api/games", req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create game: expected 201, got %d body=%s", w.Code, w.Body.String())
	}
	return decodeView(t, w)
}

func TestCreateGameHandler(t *testing.T) {
	t.Run("201 starts the match", func(t *testing.T) {
		h, _ := setupGameHandler(t)
		v := startMatch(t, h, handler.CreateGameRequest{
			Type:    games.TypeX01,
			Options: games.Options{StartScore: 301, Finish: games.FinishDouble},
			Players: []string{"a", "b"},
		})
		if v.Name != "301 Double Finish" || v.Points != 301 {
			t.Errorf("unexpected name/points %q %d", v.Name, v.Points)
		}
		if v.State.UserID != "a" || len(v.Game.Legs) != 2 {
			t.Errorf("unexpected view %+v", v.State)
		}
	})

	cases := []struct {
		name string
		body interface{}
	}{
		{"400 on bad json", "not an object"},
		{"400 on unknown type", handler.CreateGameRequest{Type: "cricket", Players: []string{"a"}}},
		{"400 without players", handler.CreateGameRequest{Type: games.TypeX01}},
		{"400 on duplicate players", handler.CreateGameRequest{Type: games.TypeX01, Players: []string{"a", "a"}}},
		{"400 on solo killer", handler.CreateGameRequest{Type: games.TypeKiller, Players: []string{"a"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, engine := setupGameHandler(t)
			w := do(t, h.CreateGame, http.MethodPost, "/api/games", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d body=%s", w.Code, w.Body.String())
			}
			if engine.View() != nil {
				t.Error("rejected game must not become active")
			}
		})
	}
}

func TestListVariants(t *testing.T) {
	h, _ := setupGameHandler(t)
	w := do(t, h.ListVariants, http.MethodGet, "/api/games/variants", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var variants []handler.Variant
	if err := json.NewDecoder(w.Body).Decode(&variants); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(variants) != len(games.Types) {
		t.Fatalf("expected %d variants, got %d", len(games.Types), len(variants))
	}
	for _, v := range variants {
		if v.Type == games.TypeKiller && v.MinPlayers != 2 {
			t.Errorf("killer needs 2 players, got %d", v.MinPlayers)
		}
		if v.Type == games.TypeX01 && v.Defaults.StartScore != games.DefaultStartScore {
			t.Errorf("expected default start score, got %+v", v.Defaults)
		}
	}
}

func TestScoringFlow(t *testing.T) {
	h, _ := setupGameHandler(t)

	if w := do(t, h.GetCurrent, http.MethodGet, "/api/games/current", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without a match, got %d", w.Code)
	}
	if w := do(t, h.UndoThrow, http.MethodPost, "/api/games/current/undo", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 undo without a match, got %d", w.Code)
	}

	startMatch(t, h, handler.CreateGameRequest{
		Type:    games.TypeX01,
		Options: games.Options{StartScore: 40},
		Players: []string{"a", "b"},
	})

	w := do(t, h.RecordThrow, http.MethodPost, "/api/games/current/throws", handler.ThrowRequest{Value: 25, Multiplier: 3})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for treble bull, got %d", w.Code)
	}

	w = do(t, h.RecordThrow, http.MethodPost, "/api/games/current/throws", handler.ThrowRequest{Value: 10, Multiplier: 1})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	if v := decodeView(t, w); v.State.Player("a").Remaining != 30 || v.State.Darts != 1 {
		t.Errorf("expected 30 left after one dart, got %+v", v.State)
	}

	w = do(t, h.UndoThrow, http.MethodPost, "/api/games/current/undo", nil)
	if v := decodeView(t, w); v.State.Player("a").Remaining != 40 {
		t.Errorf("expected undo back to 40, got %+v", v.State)
	}

	do(t, h.RecordThrow, http.MethodPost, "/api/games/current/throws", handler.ThrowRequest{Value: 20, Multiplier: 2})
	w = do(t, h.RecordThrow, http.MethodPost, "/api/games/current/throws", handler.ThrowRequest{Value: 1, Multiplier: 1})
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 once the match is over, got %d", w.Code)
	}

	w = do(t, h.Finalize, http.MethodPost, "/api/games/current/finalize", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	var resp handler.FinalizeResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.GameID == "" || len(resp.Results) != 2 || resp.Results[0] != "a" {
		t.Errorf("unexpected finalize response %+v", resp)
	}
}

func TestFinalizeSaveFailure(t *testing.T) {
	engine := session.NewEngine(nil, failingMatches{}, nil, nil)
	h := handler.NewGameHandler(engine)
	startMatch(t, h, handler.CreateGameRequest{Type: games.TypeX01, Players: []string{"a"}})

	w := do(t, h.Finalize, http.MethodPost, "/api/games/current/finalize", nil)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
	if engine.View() == nil {
		t.Error("match must stay active after a failed save")
	}
}
