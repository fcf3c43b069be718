package model

import "time"

// GameState is the per-player economy record.
//
// The original client kept a single totalRoutes counter that was bumped on
// purchase and on flight start and decremented on sale. That conflation is
// split here into TotalFlights (flights ever started) and AircraftPurchased
// (airframes ever bought).
type GameState struct {
	Budget            float64   `json:"budget"`
	TotalRevenue      float64   `json:"total_revenue"`
	TotalFlights      int       `json:"total_flights"`
	AircraftPurchased int       `json:"aircraft_purchased"`
	Reputation        int       `json:"reputation"`
	GameStart         time.Time `json:"game_start"`
	// LastUpdate is the tick watermark: the instant up to which the
	// simulation has been applied.
	LastUpdate time.Time `json:"last_update"`
}

// Settings are per-player tunables applied to the simulation.
type Settings struct {
	// SpeedMultiplier scales effective flight duration. 1 = real time.
	SpeedMultiplier float64 `json:"speed_multiplier"`
}

// GameSnapshot is the full save/load payload for one player: everything the
// simulation needs, persisted as one row (state columns + fleet JSONB).
type GameSnapshot struct {
	State        GameState           `json:"state"`
	Fleet        []Aircraft          `json:"fleet"`
	Settings     Settings            `json:"settings"`
	DefaultCabin *CabinConfiguration `json:"default_cabin,omitempty"`
}

// Clone returns a deep copy of the snapshot.
func (s GameSnapshot) Clone() GameSnapshot {
	c := s
	c.Fleet = CloneFleet(s.Fleet)
	if s.DefaultCabin != nil {
		cc := *s.DefaultCabin
		c.DefaultCabin = &cc
	}
	return c
}

const (
	InitialBudget     = 500_000_000
	InitialReputation = 50
)

// NewGameState returns the starting economy record for a fresh player.
func NewGameState(now time.Time) GameState {
	return GameState{
		Budget:     InitialBudget,
		Reputation: InitialReputation,
		GameStart:  now,
		LastUpdate: now,
	}
}

// NewSnapshot returns a fresh snapshot with an empty fleet.
func NewSnapshot(now time.Time) GameSnapshot {
	return GameSnapshot{
		State:    NewGameState(now),
		Fleet:    []Aircraft{},
		Settings: Settings{SpeedMultiplier: 1},
	}
}
