package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Profile is the part of a player profile the scorer needs: the walk-on
// played when the player steps up for their first visit.
type Profile struct {
	WalkOn string `json:"walk_on"`
	// WalkOnTime is the offset into the walk-on track, in seconds.
	WalkOnTime int `json:"walk_on_time"`
}

// Player is a registered player.
type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Profile   Profile   `json:"profile"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrPlayerNameRequired is returned when creating a player without a name.
var ErrPlayerNameRequired = errors.New("player name is required")

// PlayerStore reads and writes players.
type PlayerStore struct {
	pool *pgxpool.Pool
}

// NewPlayerStore creates a new PlayerStore.
func NewPlayerStore(pool *pgxpool.Pool) *PlayerStore {
	return &PlayerStore{pool: pool}
}

// CreatePlayer inserts a player.
func (s *PlayerStore) CreatePlayer(ctx context.Context, name string, profile Profile) (*Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPlayerNameRequired
	}
	var (
		id        pgtype.UUID
		createdAt pgtype.Timestamptz
	)
	err := s.pool.QueryRow(ctx,
		`INSERT INTO players (name, walk_on, walk_on_time) VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		name, profile.WalkOn, profile.WalkOnTime,
	).Scan(&id, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("insert player: %w", err)
	}
	return &Player{
		ID:        uuidToString(id),
		Name:      name,
		Profile:   profile,
		CreatedAt: timestamptzToTime(createdAt),
	}, nil
}

// GetProfile returns the walk-on of userID. Unknown users (including IDs
// that are not UUIDs) yield nil, nil.
func (s *PlayerStore) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	id, err := stringToUUID(userID)
	if err != nil {
		return nil, nil
	}
	var p Profile
	err = s.pool.QueryRow(ctx,
		`SELECT walk_on, walk_on_time FROM players WHERE id = $1`, id,
	).Scan(&p.WalkOn, &p.WalkOnTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}
