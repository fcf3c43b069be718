package model

import (
	"time"

	"github.com/Pc-CraftGroup/sky-haven-manager/internal/geo"
)

type AircraftStatus string

const (
	StatusIdle        AircraftStatus = "idle"
	StatusInFlight    AircraftStatus = "in-flight"
	StatusMaintenance AircraftStatus = "maintenance"
	StatusGrounded    AircraftStatus = "grounded"
	StatusDelayed     AircraftStatus = "delayed"
	StatusCrashed     AircraftStatus = "crashed"
)

// CabinConfiguration is a percentage split of cabin floor space across the
// four service classes. A valid split sums to exactly 100.
type CabinConfiguration struct {
	FirstClass     int `json:"first_class"`
	Business       int `json:"business"`
	PremiumEconomy int `json:"premium_economy"`
	Economy        int `json:"economy"`
}

// Sum returns the total of the four percentages.
func (c CabinConfiguration) Sum() int {
	return c.FirstClass + c.Business + c.PremiumEconomy + c.Economy
}

// FlightRoute is the active leg an aircraft is flying. It exists only while
// the owning aircraft is in-flight or delayed.
type FlightRoute struct {
	ID              string         `json:"id"`
	From            string         `json:"from"`
	To              string         `json:"to"`
	FromCoordinates geo.Coordinate `json:"from_coordinates"`
	ToCoordinates   geo.Coordinate `json:"to_coordinates"`
	DistanceKm      float64        `json:"distance_km"`
	DurationMin     int            `json:"duration_min"`
	Price           float64        `json:"price"`
	Progress        float64        `json:"progress"`
	StartTime       time.Time      `json:"start_time"`
	ArrivalTime     time.Time      `json:"arrival_time"`
}

// Aircraft is one owned airframe in a player's fleet.
//
// CurrentRoute is set iff Status is in-flight or delayed; DelayReason iff
// delayed; CrashReason iff crashed (terminal). The sim package enforces this
// on every transition and Normalize repairs it on load.
type Aircraft struct {
	ID               string              `json:"id"`
	Model            string              `json:"model"`
	Registration     string              `json:"registration"`
	Airline          string              `json:"airline"`
	Status           AircraftStatus      `json:"status"`
	Location         string              `json:"location"`
	Passengers       int                 `json:"passengers"`
	MaxPassengers    int                 `json:"max_passengers"`
	FuelLevel        float64             `json:"fuel_level"`
	Condition        float64             `json:"condition"`
	TotalFlightHours float64             `json:"total_flight_hours"`
	Position         geo.Coordinate      `json:"position"`
	PurchasePrice    float64             `json:"purchase_price"`
	DailyRevenue     float64             `json:"daily_revenue"`
	RangeKm          float64             `json:"range_km,omitempty"`
	CabinConfig      *CabinConfiguration `json:"cabin_config,omitempty"`
	CurrentRoute     *FlightRoute        `json:"current_route,omitempty"`
	DelayReason      string              `json:"delay_reason,omitempty"`
	CrashReason      string              `json:"crash_reason,omitempty"`
	LastService      time.Time           `json:"last_service"`
	NextMaintenance  time.Time           `json:"next_maintenance"`
	// MaintenanceUntil is the due timestamp of an in-progress maintenance
	// visit. Persisted with the fleet so completion survives restarts.
	MaintenanceUntil *time.Time `json:"maintenance_until,omitempty"`
}

// Clone returns a deep copy (route and maintenance pointers included).
func (a Aircraft) Clone() Aircraft {
	c := a
	if a.CurrentRoute != nil {
		r := *a.CurrentRoute
		c.CurrentRoute = &r
	}
	if a.CabinConfig != nil {
		cc := *a.CabinConfig
		c.CabinConfig = &cc
	}
	if a.MaintenanceUntil != nil {
		t := *a.MaintenanceUntil
		c.MaintenanceUntil = &t
	}
	return c
}

// CloneFleet deep-copies a fleet slice.
func CloneFleet(fleet []Aircraft) []Aircraft {
	out := make([]Aircraft, len(fleet))
	for i, a := range fleet {
		out[i] = a.Clone()
	}
	return out
}
