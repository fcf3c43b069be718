package model

import "time"

type Player struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email,omitempty"`
	PasswordHash string     `json:"-"`
	AirlineName  string     `json:"airline_name"`
	IsBanned     bool       `json:"is_banned"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	LastSaveAt   *time.Time `json:"last_save_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// PlayerProfile is the public view of a player, joined with their last saved
// game state.
type PlayerProfile struct {
	ID           string  `json:"id"`
	Username     string  `json:"username"`
	AirlineName  string  `json:"airline_name"`
	Reputation   int     `json:"reputation"`
	TotalFlights int     `json:"total_flights"`
	FleetSize    int     `json:"fleet_size"`
	TotalRevenue float64 `json:"total_revenue"`
}
