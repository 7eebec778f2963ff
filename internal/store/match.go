package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vntrieu/darts/internal/games"
)

// MatchStore persists finished matches. Writes are upserts so a finalize that
// failed halfway can be retried.
type MatchStore struct {
	pool *pgxpool.Pool
}

// NewMatchStore creates a new MatchStore.
func NewMatchStore(pool *pgxpool.Pool) *MatchStore {
	return &MatchStore{pool: pool}
}

// SaveLeg stores one leg with its full throw history.
func (s *MatchStore) SaveLeg(ctx context.Context, leg *games.Leg) error {
	if leg == nil {
		return errors.New("leg is required")
	}
	id, err := stringToUUID(leg.ID)
	if err != nil {
		return fmt.Errorf("invalid leg id: %w", err)
	}
	visits, err := json.Marshal(leg.Visits)
	if err != nil {
		return fmt.Errorf("marshal visits: %w", err)
	}
	number := pgtype.Int4{Int32: int32(leg.Number), Valid: leg.Number > 0}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO legs (id, user_id, game_type, visits, finish, sequence, number)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE SET
		   visits = EXCLUDED.visits,
		   finish = EXCLUDED.finish`,
		id, leg.UserID, string(leg.Type), visits, leg.Finish, leg.Sequence, number,
	)
	if err != nil {
		return fmt.Errorf("insert leg: %w", err)
	}
	return nil
}

// SaveGame stores the game with references to its legs and the results.
func (s *MatchStore) SaveGame(ctx context.Context, g *games.Game) error {
	if g == nil {
		return errors.New("game is required")
	}
	id, err := stringToUUID(g.ID)
	if err != nil {
		return fmt.Errorf("invalid game id: %w", err)
	}
	options, err := json.Marshal(g.Options)
	if err != nil {
		return fmt.Errorf("marshal options: %w", err)
	}
	legIDs := make([]pgtype.UUID, 0, len(g.Legs))
	for _, leg := range g.Legs {
		legID, err := stringToUUID(leg.ID)
		if err != nil {
			return fmt.Errorf("invalid leg id %q: %w", leg.ID, err)
		}
		legIDs = append(legIDs, legID)
	}
	result := g.Result
	if result == nil {
		result = []string{}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO games (id, game_type, options, leg_ids, result, created_at, finished_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE SET
		   result = EXCLUDED.result,
		   finished_at = EXCLUDED.finished_at`,
		id, string(g.Type), options, legIDs, result,
		timeToTimestamptz(g.CreatedAt), timeToTimestamptz(time.Now().UTC()),
	)
	if err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	_, err = tx.Exec(ctx, `UPDATE legs SET game_id = $1 WHERE id = ANY($2)`, id, legIDs)
	if err != nil {
		return fmt.Errorf("link legs: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetGame loads a saved game with its legs, or nil if it was never saved.
func (s *MatchStore) GetGame(ctx context.Context, gameID string) (*games.Game, error) {
	id, err := stringToUUID(gameID)
	if err != nil {
		return nil, fmt.Errorf("invalid game id: %w", err)
	}
	var (
		g         games.Game
		gameType  string
		options   []byte
		legIDs    []pgtype.UUID
		createdAt pgtype.Timestamptz
	)
	err = s.pool.QueryRow(ctx,
		`SELECT game_type, options, leg_ids, result, created_at FROM games WHERE id = $1`, id,
	).Scan(&gameType, &options, &legIDs, &g.Result, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get game: %w", err)
	}
	g.ID = gameID
	g.Type = games.Type(gameType)
	g.CreatedAt = timestamptzToTime(createdAt)
	if err := json.Unmarshal(options, &g.Options); err != nil {
		return nil, fmt.Errorf("unmarshal options: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, game_type, visits, finish, sequence, number
		 FROM legs WHERE id = ANY($1)`, legIDs)
	if err != nil {
		return nil, fmt.Errorf("get legs: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]*games.Leg, len(legIDs))
	for rows.Next() {
		var (
			leg      games.Leg
			legID    pgtype.UUID
			legType  string
			visits   []byte
			sequence []int
			number   pgtype.Int4
		)
		if err := rows.Scan(&legID, &leg.UserID, &legType, &visits, &leg.Finish, &sequence, &number); err != nil {
			return nil, fmt.Errorf("scan leg: %w", err)
		}
		if err := json.Unmarshal(visits, &leg.Visits); err != nil {
			return nil, fmt.Errorf("unmarshal visits: %w", err)
		}
		leg.ID = uuidToString(legID)
		leg.Type = games.Type(legType)
		leg.Sequence = sequence
		leg.Number = int(number.Int32)
		byID[leg.ID] = &leg
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate legs: %w", err)
	}

	for _, legID := range legIDs {
		if leg, ok := byID[uuidToString(legID)]; ok {
			g.Legs = append(g.Legs, leg)
		}
	}
	return &g, nil
}
