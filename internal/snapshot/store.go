// Package snapshot keeps the in-progress game in a local SQLite file so a
// restarted scorer can pick the match up where it stopped.
package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/vntrieu/darts/internal/games"
	"github.com/vntrieu/darts/internal/snapshot/migrations"
)

// Store is a single-slot snapshot of the active game. Every Save overwrites it.
type Store struct {
	sqlDB *sql.DB
}

// Open opens the snapshot file at path and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("snapshot path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One writer; the session engine already serializes saves.
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, sqlDB, migrations.FS)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create migration provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close releases the SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save replaces the snapshot with g.
func (s *Store) Save(ctx context.Context, g *games.Game) error {
	if g == nil {
		return errors.New("game is required")
	}
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshal game: %w", err)
	}
	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO active_game (slot, game_id, game_json, updated_at) VALUES (1, ?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET
		   game_id = excluded.game_id,
		   game_json = excluded.game_json,
		   updated_at = excluded.updated_at`,
		g.ID, string(data), time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load returns the snapshot, or nil when there is none.
func (s *Store) Load(ctx context.Context) (*games.Game, error) {
	var data string
	err := s.sqlDB.QueryRowContext(ctx, `SELECT game_json FROM active_game WHERE slot = 1`).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	var g games.Game
	if err := json.Unmarshal([]byte(data), &g); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &g, nil
}

// Clear removes the snapshot.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM active_game`); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}
