package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Pc-CraftGroup/sky-haven-manager/internal/model"
)

// GameRepository persists per-player game snapshots: scalar economy columns
// plus the fleet, settings and default cabin as JSONB.
type GameRepository struct {
	pool *pgxpool.Pool
}

func NewGameRepository(pool *pgxpool.Pool) *GameRepository {
	return &GameRepository{pool: pool}
}

// CreateInitial inserts the starting snapshot for a fresh player. No-op if a
// row already exists.
func (r *GameRepository) CreateInitial(ctx context.Context, playerID string, snap model.GameSnapshot) error {
	fleetJSON, err := json.Marshal(snap.Fleet)
	if err != nil {
		return err
	}
	settingsJSON, err := json.Marshal(snap.Settings)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO game_states (player_id, budget, total_revenue, total_flights, aircraft_purchased,
		                         reputation, game_start, last_update, fleet, settings)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (player_id) DO NOTHING
	`, playerID, snap.State.Budget, snap.State.TotalRevenue, snap.State.TotalFlights, snap.State.AircraftPurchased,
		snap.State.Reputation, snap.State.GameStart, snap.State.LastUpdate, fleetJSON, settingsJSON)
	return err
}

// Load reads a player's snapshot. Returns pgx.ErrNoRows when the player has
// no game state yet.
func (r *GameRepository) Load(ctx context.Context, playerID string) (model.GameSnapshot, error) {
	var snap model.GameSnapshot
	var fleetRaw, settingsRaw []byte
	var cabinRaw []byte

	err := r.pool.QueryRow(ctx, `
		SELECT budget, total_revenue, total_flights, aircraft_purchased, reputation,
		       game_start, last_update, fleet, settings, default_cabin
		FROM game_states WHERE player_id = $1
	`, playerID).Scan(
		&snap.State.Budget, &snap.State.TotalRevenue, &snap.State.TotalFlights, &snap.State.AircraftPurchased,
		&snap.State.Reputation, &snap.State.GameStart, &snap.State.LastUpdate,
		&fleetRaw, &settingsRaw, &cabinRaw,
	)
	if err != nil {
		return model.GameSnapshot{}, err
	}

	if err := json.Unmarshal(fleetRaw, &snap.Fleet); err != nil {
		return model.GameSnapshot{}, err
	}
	if len(settingsRaw) > 0 {
		if err := json.Unmarshal(settingsRaw, &snap.Settings); err != nil {
			return model.GameSnapshot{}, err
		}
	}
	if len(cabinRaw) > 0 {
		var cabin model.CabinConfiguration
		if err := json.Unmarshal(cabinRaw, &cabin); err == nil {
			snap.DefaultCabin = &cabin
		}
	}
	return snap, nil
}

// Save upserts the full snapshot and bumps the player's last_save_at.
func (r *GameRepository) Save(ctx context.Context, playerID string, snap model.GameSnapshot) error {
	fleetJSON, err := json.Marshal(snap.Fleet)
	if err != nil {
		return err
	}
	settingsJSON, err := json.Marshal(snap.Settings)
	if err != nil {
		return err
	}
	var cabinJSON []byte
	if snap.DefaultCabin != nil {
		cabinJSON, err = json.Marshal(snap.DefaultCabin)
		if err != nil {
			return err
		}
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO game_states (player_id, budget, total_revenue, total_flights, aircraft_purchased,
		                         reputation, game_start, last_update, fleet, settings, default_cabin, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		ON CONFLICT (player_id) DO UPDATE SET
			budget = EXCLUDED.budget,
			total_revenue = EXCLUDED.total_revenue,
			total_flights = EXCLUDED.total_flights,
			aircraft_purchased = EXCLUDED.aircraft_purchased,
			reputation = EXCLUDED.reputation,
			game_start = EXCLUDED.game_start,
			last_update = EXCLUDED.last_update,
			fleet = EXCLUDED.fleet,
			settings = EXCLUDED.settings,
			default_cabin = EXCLUDED.default_cabin,
			updated_at = NOW()
	`, playerID, snap.State.Budget, snap.State.TotalRevenue, snap.State.TotalFlights, snap.State.AircraftPurchased,
		snap.State.Reputation, snap.State.GameStart, snap.State.LastUpdate, fleetJSON, settingsJSON, cabinJSON)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `UPDATE players SET last_save_at = NOW(), updated_at = NOW() WHERE id = $1`, playerID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Leaderboard ranks players by total revenue from their last saved snapshots.
func (r *GameRepository) Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	rows, err := r.pool.Query(ctx, `
		SELECT p.username, p.airline_name, g.budget, g.total_revenue, g.total_flights,
		       g.reputation, jsonb_array_length(g.fleet)
		FROM game_states g
		JOIN players p ON p.id = g.player_id
		WHERE p.is_banned = FALSE
		ORDER BY g.total_revenue DESC, g.budget DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.LeaderboardEntry
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.Username, &e.AirlineName, &e.Budget, &e.TotalRevenue,
			&e.TotalFlights, &e.Reputation, &e.FleetSize); err != nil {
			return nil, err
		}
		e.Rank = len(entries) + 1
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GlobalStats aggregates the public landing-page numbers.
func (r *GameRepository) GlobalStats(ctx context.Context) (players int, flights int, revenue float64, err error) {
	err = r.pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_flights), 0), COALESCE(SUM(total_revenue), 0)
		FROM game_states
	`).Scan(&players, &flights, &revenue)
	return players, flights, revenue, err
}
