package geo

import (
	"math/rand"
	"strings"
)

// Airport is a named spawn/route point on the world map.
type Airport struct {
	Name        string     `json:"name"`
	Coordinates Coordinate `json:"coordinates"`
}

// Airports is the static world airport table.
var Airports = []Airport{
	// Europe
	{Name: "Frankfurt am Main (FRA)", Coordinates: Coordinate{50.0379, 8.5622}},
	{Name: "München (MUC)", Coordinates: Coordinate{48.3537, 11.7751}},
	{Name: "Berlin Brandenburg (BER)", Coordinates: Coordinate{52.3667, 13.5033}},
	{Name: "London Heathrow (LHR)", Coordinates: Coordinate{51.4700, -0.4543}},
	{Name: "Paris Charles de Gaulle (CDG)", Coordinates: Coordinate{49.0097, 2.5479}},
	{Name: "Amsterdam Schiphol (AMS)", Coordinates: Coordinate{52.3086, 4.7639}},
	{Name: "Madrid Barajas (MAD)", Coordinates: Coordinate{40.4719, -3.5626}},
	{Name: "Rome Fiumicino (FCO)", Coordinates: Coordinate{41.8003, 12.2389}},
	{Name: "Zürich (ZUR)", Coordinates: Coordinate{47.4647, 8.5492}},
	{Name: "Vienna (VIE)", Coordinates: Coordinate{48.1103, 16.5697}},

	// North America
	{Name: "New York JFK (JFK)", Coordinates: Coordinate{40.6413, -73.7781}},
	{Name: "Los Angeles (LAX)", Coordinates: Coordinate{33.9425, -118.4081}},
	{Name: "Chicago O'Hare (ORD)", Coordinates: Coordinate{41.9742, -87.9073}},
	{Name: "Miami (MIA)", Coordinates: Coordinate{25.7617, -80.1918}},
	{Name: "Toronto Pearson (YYZ)", Coordinates: Coordinate{43.6777, -79.6248}},
	{Name: "Vancouver (YVR)", Coordinates: Coordinate{49.1967, -123.1815}},
	{Name: "San Francisco (SFO)", Coordinates: Coordinate{37.6213, -122.3790}},
	{Name: "Denver (DEN)", Coordinates: Coordinate{39.8561, -104.6737}},
	{Name: "Atlanta (ATL)", Coordinates: Coordinate{33.6407, -84.4277}},
	{Name: "Seattle (SEA)", Coordinates: Coordinate{47.4502, -122.3088}},

	// Asia
	{Name: "Tokyo Haneda (HND)", Coordinates: Coordinate{35.5494, 139.7798}},
	{Name: "Tokyo Narita (NRT)", Coordinates: Coordinate{35.7720, 140.3929}},
	{Name: "Beijing Capital (PEK)", Coordinates: Coordinate{40.0799, 116.6031}},
	{Name: "Shanghai Pudong (PVG)", Coordinates: Coordinate{31.1443, 121.8083}},
	{Name: "Hong Kong (HKG)", Coordinates: Coordinate{22.3080, 113.9185}},
	{Name: "Singapore Changi (SIN)", Coordinates: Coordinate{1.3644, 103.9915}},
	{Name: "Seoul Incheon (ICN)", Coordinates: Coordinate{37.4602, 126.4407}},
	{Name: "Bangkok Suvarnabhumi (BKK)", Coordinates: Coordinate{13.6900, 100.7501}},
	{Name: "Kuala Lumpur (KUL)", Coordinates: Coordinate{2.7456, 101.7072}},
	{Name: "Mumbai (BOM)", Coordinates: Coordinate{19.0896, 72.8656}},
	{Name: "Delhi (DEL)", Coordinates: Coordinate{28.5562, 77.1000}},
	{Name: "Dubai (DXB)", Coordinates: Coordinate{25.2532, 55.3657}},
	{Name: "Doha (DOH)", Coordinates: Coordinate{25.2731, 51.6080}},

	// Australia & Oceania
	{Name: "Sydney Kingsford Smith (SYD)", Coordinates: Coordinate{-33.9399, 151.1753}},
	{Name: "Melbourne (MEL)", Coordinates: Coordinate{-37.6690, 144.8410}},
	{Name: "Brisbane (BNE)", Coordinates: Coordinate{-27.3942, 153.1218}},
	{Name: "Perth (PER)", Coordinates: Coordinate{-31.9403, 115.9669}},
	{Name: "Auckland (AKL)", Coordinates: Coordinate{-37.0082, 174.7850}},

	// South America
	{Name: "São Paulo Guarulhos (GRU)", Coordinates: Coordinate{-23.4356, -46.4731}},
	{Name: "Rio de Janeiro Galeão (GIG)", Coordinates: Coordinate{-22.8070, -43.2435}},
	{Name: "Buenos Aires Ezeiza (EZE)", Coordinates: Coordinate{-34.8222, -58.5358}},
	{Name: "Lima Jorge Chávez (LIM)", Coordinates: Coordinate{-12.0219, -77.1143}},
	{Name: "Bogotá El Dorado (BOG)", Coordinates: Coordinate{4.7016, -74.1469}},
	{Name: "Santiago (SCL)", Coordinates: Coordinate{-33.3927, -70.7854}},

	// Africa
	{Name: "Johannesburg OR Tambo (JNB)", Coordinates: Coordinate{-26.1367, 28.2411}},
	{Name: "Cape Town (CPT)", Coordinates: Coordinate{-33.9648, 18.6017}},
	{Name: "Cairo (CAI)", Coordinates: Coordinate{30.1219, 31.4056}},
	{Name: "Lagos (LOS)", Coordinates: Coordinate{6.5774, 3.3210}},
	{Name: "Casablanca (CMN)", Coordinates: Coordinate{33.3675, -7.5398}},
	{Name: "Nairobi (NBO)", Coordinates: Coordinate{-1.3192, 36.9278}},
}

var airportsByName = func() map[string]Airport {
	m := make(map[string]Airport, len(Airports))
	for _, a := range Airports {
		m[strings.ToLower(a.Name)] = a
	}
	return m
}()

// AirportByName looks up an airport by its full display name (case-insensitive).
func AirportByName(name string) (Airport, bool) {
	a, ok := airportsByName[strings.ToLower(strings.TrimSpace(name))]
	return a, ok
}

// RandomAirport picks a spawn airport for newly delivered aircraft.
func RandomAirport(rng *rand.Rand) Airport {
	return Airports[rng.Intn(len(Airports))]
}
