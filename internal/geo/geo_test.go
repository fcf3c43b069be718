package geo

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineKnownDistances(t *testing.T) {
	fra, ok := AirportByName("Frankfurt am Main (FRA)")
	require.True(t, ok)
	jfk, ok := AirportByName("New York JFK (JFK)")
	require.True(t, ok)

	// great circle FRA-JFK is about 6,200 km
	assert.InDelta(t, 6200, Haversine(fra.Coordinates, jfk.Coordinates), 100)

	// zero distance to itself
	assert.Equal(t, 0.0, Haversine(fra.Coordinates, fra.Coordinates))

	// symmetric
	assert.Equal(t,
		Haversine(fra.Coordinates, jfk.Coordinates),
		Haversine(jfk.Coordinates, fra.Coordinates))
}

func TestLerp(t *testing.T) {
	from := Coordinate{Lat: 50, Lon: 8}
	to := Coordinate{Lat: 40, Lon: -74}

	assert.Equal(t, from, Lerp(from, to, 0))
	assert.Equal(t, to, Lerp(from, to, 1))

	mid := Lerp(from, to, 0.5)
	assert.InDelta(t, 45, mid.Lat, 1e-9)
	assert.InDelta(t, -33, mid.Lon, 1e-9)
}

func TestAirportByNameIsCaseInsensitive(t *testing.T) {
	a, ok := AirportByName("  frankfurt am main (fra) ")
	require.True(t, ok)
	assert.Equal(t, "Frankfurt am Main (FRA)", a.Name)

	_, ok = AirportByName("Gotham City (GOT)")
	assert.False(t, ok)
}

func TestRandomAirportIsFromTable(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		a := RandomAirport(rng)
		found, ok := AirportByName(a.Name)
		require.True(t, ok)
		assert.Equal(t, a, found)
	}
}
