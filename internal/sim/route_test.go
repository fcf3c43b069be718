package sim

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pc-CraftGroup/sky-haven-manager/internal/geo"
)

func TestPlanRouteLongHaul(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	route := PlanRoute(fra, jfk, tickStart, 1, rng)

	assert.NotEmpty(t, route.ID)
	assert.Equal(t, fra.Name, route.From)
	assert.Equal(t, jfk.Name, route.To)
	assert.Equal(t, 0.0, route.Progress)
	assert.Equal(t, tickStart, route.StartTime)

	// FRA-JFK great circle is roughly 6200 km
	assert.InDelta(t, 6200, route.DistanceKm, 100)
	assert.Equal(t, int(route.DistanceKm/8+0.5), route.DurationMin)

	// distance rate plus a bounded random markup
	assert.GreaterOrEqual(t, route.Price, route.DistanceKm*0.5)
	assert.LessOrEqual(t, route.Price, route.DistanceKm*0.5+51)

	assert.Equal(t, tickStart.Add(time.Duration(route.DurationMin)*time.Minute), route.ArrivalTime)
}

func TestPlanRouteShortHopDurationFloor(t *testing.T) {
	hnd, ok := geo.AirportByName("Tokyo Haneda (HND)")
	require.True(t, ok)
	nrt, ok := geo.AirportByName("Tokyo Narita (NRT)")
	require.True(t, ok)

	route := PlanRoute(hnd, nrt, tickStart, 1, rand.New(rand.NewSource(1)))

	assert.Less(t, route.DistanceKm, 200.0)
	assert.Equal(t, minFlightDurationMin, route.DurationMin)
}

func TestPlanRouteSpeedMultiplierShortensArrival(t *testing.T) {
	route := PlanRoute(fra, jfk, tickStart, 10, rand.New(rand.NewSource(1)))

	wall := route.ArrivalTime.Sub(route.StartTime)
	assert.InDelta(t, float64(route.DurationMin)/10, wall.Minutes(), 1.0)
	// the simulated leg length itself is unchanged
	assert.Greater(t, route.DurationMin, 600)
}

func TestRandomRoutesAreAlwaysSane(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 500; i++ {
		from := geo.RandomAirport(rng)
		to := geo.RandomAirport(rng)
		if from.Name == to.Name {
			continue
		}
		route := PlanRoute(from, to, tickStart, 1, rng)
		assert.GreaterOrEqual(t, route.DurationMin, minFlightDurationMin)
		assert.Greater(t, route.Price, 0.0)
		assert.Greater(t, route.DistanceKm, 0.0)
	}
}
