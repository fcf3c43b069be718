package geo

import "math"

// Coordinate is a latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

const earthRadiusKm = 6371.0

// Haversine returns the great-circle distance between two coordinates in km.
func Haversine(a, b Coordinate) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLon := toRad(b.Lon - a.Lon)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// Lerp interpolates linearly between two coordinates. ratio is 0..1 where 0
// is from and 1 is to. Linear interpolation, not geodesic — good enough at
// map-display scale.
func Lerp(from, to Coordinate, ratio float64) Coordinate {
	return Coordinate{
		Lat: from.Lat + (to.Lat-from.Lat)*ratio,
		Lon: from.Lon + (to.Lon-from.Lon)*ratio,
	}
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
