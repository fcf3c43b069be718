package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Pc-CraftGroup/sky-haven-manager/internal/model"
)

// FlightRepository maintains the shared active_flights mirror. Rows are a
// best-effort projection of each player's snapshot for the public live map;
// the snapshot stays authoritative.
type FlightRepository struct {
	pool *pgxpool.Pool
}

func NewFlightRepository(pool *pgxpool.Pool) *FlightRepository {
	return &FlightRepository{pool: pool}
}

// SyncPlayerFlights replaces a player's mirror rows with their current
// in-flight aircraft, in one transaction.
func (r *FlightRepository) SyncPlayerFlights(ctx context.Context, playerID, username string, fleet []model.Aircraft) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM active_flights WHERE player_id = $1`, playerID); err != nil {
		return err
	}

	now := time.Now()
	for _, plane := range fleet {
		if plane.Status != model.StatusInFlight && plane.Status != model.StatusDelayed {
			continue
		}
		if plane.CurrentRoute == nil {
			continue
		}
		route := plane.CurrentRoute
		_, err := tx.Exec(ctx, `
			INSERT INTO active_flights (player_id, username, aircraft_model, registration,
			                            from_airport, to_airport, progress, status,
			                            estimated_arrival, started_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (player_id, registration) DO UPDATE SET
				progress = EXCLUDED.progress,
				status = EXCLUDED.status,
				estimated_arrival = EXCLUDED.estimated_arrival,
				updated_at = EXCLUDED.updated_at
		`, playerID, username, plane.Model, plane.Registration,
			route.From, route.To, route.Progress, string(plane.Status),
			route.ArrivalTime, route.StartTime, now)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// ListActive returns the most recently updated mirror rows.
func (r *FlightRepository) ListActive(ctx context.Context, limit int) ([]model.ActiveFlight, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, player_id, username, aircraft_model, registration,
		       from_airport, to_airport, progress, status,
		       estimated_arrival, started_at, updated_at
		FROM active_flights
		ORDER BY updated_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flights []model.ActiveFlight
	for rows.Next() {
		var f model.ActiveFlight
		if err := rows.Scan(&f.ID, &f.PlayerID, &f.Username, &f.AircraftModel, &f.Registration,
			&f.FromAirport, &f.ToAirport, &f.Progress, &f.Status,
			&f.EstimatedArrival, &f.StartedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

// DeleteStale removes mirror rows whose owner stopped updating them, e.g.
// after a crash of the server or a long-gone session.
func (r *FlightRepository) DeleteStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM active_flights WHERE updated_at < $1`, time.Now().Add(-olderThan))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
