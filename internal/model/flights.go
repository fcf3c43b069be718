package model

import "time"

// ActiveFlight is one row of the shared live-flights table: a best-effort,
// eventually-consistent mirror of another player's in-flight aircraft. It is
// a write-only projection of the owner's snapshot, never a source of truth.
type ActiveFlight struct {
	ID               int64     `json:"id"`
	PlayerID         string    `json:"player_id"`
	Username         string    `json:"username"`
	AircraftModel    string    `json:"aircraft_model"`
	Registration     string    `json:"registration"`
	FromAirport      string    `json:"from_airport"`
	ToAirport        string    `json:"to_airport"`
	Progress         float64   `json:"progress"`
	Status           string    `json:"status"`
	EstimatedArrival time.Time `json:"estimated_arrival"`
	StartedAt        time.Time `json:"started_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// LeaderboardEntry is one row of the public leaderboard, built from the last
// successfully saved snapshots.
type LeaderboardEntry struct {
	Rank         int     `json:"rank"`
	Username     string  `json:"username"`
	AirlineName  string  `json:"airline_name"`
	Budget       float64 `json:"budget"`
	TotalRevenue float64 `json:"total_revenue"`
	TotalFlights int     `json:"total_flights"`
	Reputation   int     `json:"reputation"`
	FleetSize    int     `json:"fleet_size"`
}
