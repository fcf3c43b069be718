package sim

import (
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/Pc-CraftGroup/sky-haven-manager/internal/geo"
	"github.com/Pc-CraftGroup/sky-haven-manager/internal/model"
)

const (
	minFlightDurationMin = 30
	cruiseKmPerMinute    = 8.0
	ticketPricePerKm     = 0.5
	ticketPriceJitter    = 50.0
)

// PlanRoute builds the flight leg between two airports. Duration comes from
// great-circle distance at a fixed cruise rate with a floor for short hops;
// the per-passenger ticket price gets a random markup on top of the distance
// rate. ArrivalTime is the wall-clock estimate under speedMultiplier.
func PlanRoute(from, to geo.Airport, now time.Time, speedMultiplier float64, rng *rand.Rand) model.FlightRoute {
	if speedMultiplier <= 0 {
		speedMultiplier = 1
	}
	distance := geo.Haversine(from.Coordinates, to.Coordinates)
	duration := int(math.Max(minFlightDurationMin, math.Round(distance/cruiseKmPerMinute)))
	price := math.Round(distance*ticketPricePerKm + rng.Float64()*ticketPriceJitter)

	effective := time.Duration(float64(duration)/speedMultiplier) * time.Minute
	return model.FlightRoute{
		ID:              uuid.NewString(),
		From:            from.Name,
		To:              to.Name,
		FromCoordinates: from.Coordinates,
		ToCoordinates:   to.Coordinates,
		DistanceKm:      distance,
		DurationMin:     duration,
		Price:           price,
		Progress:        0,
		StartTime:       now,
		ArrivalTime:     now.Add(effective),
	}
}
