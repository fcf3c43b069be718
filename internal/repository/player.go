package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Pc-CraftGroup/sky-haven-manager/internal/model"
)

type PlayerRepository struct {
	pool *pgxpool.Pool
}

func NewPlayerRepository(pool *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{pool: pool}
}

func (r *PlayerRepository) Create(ctx context.Context, username, email, passwordHash, airlineName string) (*model.Player, error) {
	p := &model.Player{}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO players (username, email, password_hash, airline_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT DO NOTHING
		RETURNING id, username, email, password_hash, airline_name, is_banned,
		          last_login_at, last_save_at, created_at, updated_at
	`, username, email, passwordHash, airlineName).Scan(
		&p.ID, &p.Username, &p.Email, &p.PasswordHash, &p.AirlineName, &p.IsBanned,
		&p.LastLoginAt, &p.LastSaveAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("duplicate key")
		}
		return nil, err
	}
	return p, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, id string) (*model.Player, error) {
	p := &model.Player{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, username, email, password_hash, airline_name, is_banned,
		       last_login_at, last_save_at, created_at, updated_at
		FROM players WHERE id = $1
	`, id).Scan(
		&p.ID, &p.Username, &p.Email, &p.PasswordHash, &p.AirlineName, &p.IsBanned,
		&p.LastLoginAt, &p.LastSaveAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PlayerRepository) GetByUsername(ctx context.Context, username string) (*model.Player, error) {
	p := &model.Player{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, username, email, password_hash, airline_name, is_banned,
		       last_login_at, last_save_at, created_at, updated_at
		FROM players WHERE username = $1
	`, username).Scan(
		&p.ID, &p.Username, &p.Email, &p.PasswordHash, &p.AirlineName, &p.IsBanned,
		&p.LastLoginAt, &p.LastSaveAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetProfile is the public view: player identity joined with their last saved
// game state.
func (r *PlayerRepository) GetProfile(ctx context.Context, id string) (*model.PlayerProfile, error) {
	p := &model.PlayerProfile{}
	err := r.pool.QueryRow(ctx, `
		SELECT p.id, p.username, p.airline_name,
		       COALESCE(g.reputation, 50), COALESCE(g.total_flights, 0),
		       COALESCE(jsonb_array_length(g.fleet), 0), COALESCE(g.total_revenue, 0)
		FROM players p
		LEFT JOIN game_states g ON g.player_id = p.id
		WHERE p.id = $1
	`, id).Scan(&p.ID, &p.Username, &p.AirlineName, &p.Reputation, &p.TotalFlights, &p.FleetSize, &p.TotalRevenue)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PlayerRepository) UpdateLoginTime(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `UPDATE players SET last_login_at = NOW(), updated_at = NOW() WHERE id = $1`, id)
	return err
}

func (r *PlayerRepository) SetAirlineName(ctx context.Context, id, airlineName string) error {
	_, err := r.pool.Exec(ctx, `UPDATE players SET airline_name = $2, updated_at = NOW() WHERE id = $1`, id, airlineName)
	return err
}

func (r *PlayerRepository) CountTotal(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM players`).Scan(&count)
	return count, err
}
