package model

import "time"

// GameEvent is a persisted notable event (crash, completed long-haul,
// purchase) shown on the public activity feed.
type GameEvent struct {
	ID            int64     `json:"id"`
	PlayerID      string    `json:"player_id"`
	Username      string    `json:"username"`
	EventType     string    `json:"event_type"`
	AircraftModel string    `json:"aircraft_model,omitempty"`
	Registration  string    `json:"registration,omitempty"`
	Detail        string    `json:"detail,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
