package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Pc-CraftGroup/sky-haven-manager/internal/model"
)

type EventRepository struct {
	db *pgxpool.Pool
}

func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, playerID, username, eventType, aircraftModel, registration, detail string) (*model.GameEvent, error) {
	var e model.GameEvent
	err := r.db.QueryRow(ctx,
		`INSERT INTO game_events (player_id, username, event_type, aircraft_model, registration, detail)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, player_id, username, event_type, aircraft_model, registration, detail, created_at`,
		playerID, username, eventType, aircraftModel, registration, detail,
	).Scan(&e.ID, &e.PlayerID, &e.Username, &e.EventType, &e.AircraftModel, &e.Registration, &e.Detail, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EventRepository) ListRecent(ctx context.Context, limit int) ([]model.GameEvent, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, player_id, username, event_type, aircraft_model, registration, detail, created_at
		 FROM game_events ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.GameEvent
	for rows.Next() {
		var e model.GameEvent
		if err := rows.Scan(&e.ID, &e.PlayerID, &e.Username, &e.EventType, &e.AircraftModel, &e.Registration, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *EventRepository) ListByType(ctx context.Context, eventType string, limit int) ([]model.GameEvent, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, player_id, username, event_type, aircraft_model, registration, detail, created_at
		 FROM game_events WHERE event_type = $1 ORDER BY created_at DESC LIMIT $2`,
		eventType, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.GameEvent
	for rows.Next() {
		var e model.GameEvent
		if err := rows.Scan(&e.ID, &e.PlayerID, &e.Username, &e.EventType, &e.AircraftModel, &e.Registration, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
