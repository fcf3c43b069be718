// Package catalog holds the static list of purchasable aircraft archetypes.
// An archetype is the immutable spec sheet; an owned aircraft is created from
// one at purchase time and lives in the player's fleet snapshot.
package catalog

import "strings"

type Category string

const (
	NarrowBody Category = "narrow-body"
	WideBody   Category = "wide-body"
	Regional   Category = "regional"
	Cargo      Category = "cargo"
)

type Archetype struct {
	ID             string   `json:"id"`
	Manufacturer   string   `json:"manufacturer"`
	Model          string   `json:"model"`
	Variant        string   `json:"variant"`
	Price          float64  `json:"price"`
	MaxPassengers  int      `json:"max_passengers"`
	RangeKm        float64  `json:"range_km"`
	FuelCapacity   float64  `json:"fuel_capacity"`
	CruiseSpeedKmh float64  `json:"cruise_speed_kmh"`
	Category       Category `json:"category"`
	YearIntroduced int      `json:"year_introduced"`
	Efficiency     int      `json:"efficiency"`
	Maintenance    int      `json:"maintenance"`
}

// DisplayName is the model name used on owned aircraft ("Airbus A320").
func (a Archetype) DisplayName() string {
	return a.Manufacturer + " " + a.Model
}

var Models = []Archetype{
	{ID: "a320", Manufacturer: "Airbus", Model: "A320", Variant: "A320-200", Price: 98_000_000, MaxPassengers: 180, RangeKm: 3500, FuelCapacity: 6400, CruiseSpeedKmh: 840, Category: NarrowBody, YearIntroduced: 1988, Efficiency: 85, Maintenance: 75},
	{ID: "b737", Manufacturer: "Boeing", Model: "737", Variant: "737-800", Price: 96_000_000, MaxPassengers: 189, RangeKm: 3200, FuelCapacity: 6875, CruiseSpeedKmh: 842, Category: NarrowBody, YearIntroduced: 1998, Efficiency: 82, Maintenance: 78},
	{ID: "a321", Manufacturer: "Airbus", Model: "A321", Variant: "A321neo", Price: 129_500_000, MaxPassengers: 244, RangeKm: 4000, FuelCapacity: 7980, CruiseSpeedKmh: 840, Category: NarrowBody, YearIntroduced: 2016, Efficiency: 92, Maintenance: 85},
	{ID: "b737max", Manufacturer: "Boeing", Model: "737 MAX", Variant: "737 MAX 8", Price: 121_600_000, MaxPassengers: 210, RangeKm: 3550, FuelCapacity: 6820, CruiseSpeedKmh: 839, Category: NarrowBody, YearIntroduced: 2017, Efficiency: 90, Maintenance: 82},
	{ID: "a330", Manufacturer: "Airbus", Model: "A330", Variant: "A330-300", Price: 264_200_000, MaxPassengers: 440, RangeKm: 6500, FuelCapacity: 17400, CruiseSpeedKmh: 871, Category: WideBody, YearIntroduced: 1993, Efficiency: 78, Maintenance: 70},
	{ID: "b777", Manufacturer: "Boeing", Model: "777", Variant: "777-300ER", Price: 375_500_000, MaxPassengers: 396, RangeKm: 7500, FuelCapacity: 20570, CruiseSpeedKmh: 892, Category: WideBody, YearIntroduced: 2004, Efficiency: 88, Maintenance: 80},
	{ID: "a350", Manufacturer: "Airbus", Model: "A350", Variant: "A350-900", Price: 317_400_000, MaxPassengers: 440, RangeKm: 8000, FuelCapacity: 19300, CruiseSpeedKmh: 903, Category: WideBody, YearIntroduced: 2015, Efficiency: 95, Maintenance: 90},
	{ID: "b787", Manufacturer: "Boeing", Model: "787", Variant: "787-9 Dreamliner", Price: 292_500_000, MaxPassengers: 420, RangeKm: 7800, FuelCapacity: 18600, CruiseSpeedKmh: 903, Category: WideBody, YearIntroduced: 2014, Efficiency: 93, Maintenance: 88},
	{ID: "a380", Manufacturer: "Airbus", Model: "A380", Variant: "A380-800", Price: 445_600_000, MaxPassengers: 853, RangeKm: 8500, FuelCapacity: 32000, CruiseSpeedKmh: 903, Category: WideBody, YearIntroduced: 2007, Efficiency: 75, Maintenance: 65},
	{ID: "crj900", Manufacturer: "Bombardier", Model: "CRJ-900", Variant: "CRJ-900NextGen", Price: 46_700_000, MaxPassengers: 90, RangeKm: 1800, FuelCapacity: 2840, CruiseSpeedKmh: 834, Category: Regional, YearIntroduced: 2003, Efficiency: 80, Maintenance: 75},
	{ID: "e190", Manufacturer: "Embraer", Model: "E-Jet", Variant: "E190", Price: 53_700_000, MaxPassengers: 114, RangeKm: 2200, FuelCapacity: 3700, CruiseSpeedKmh: 870, Category: Regional, YearIntroduced: 2005, Efficiency: 83, Maintenance: 78},
	{ID: "atr72", Manufacturer: "ATR", Model: "ATR 72", Variant: "ATR 72-600", Price: 26_800_000, MaxPassengers: 78, RangeKm: 900, FuelCapacity: 1500, CruiseSpeedKmh: 511, Category: Regional, YearIntroduced: 2010, Efficiency: 85, Maintenance: 80},
	{ID: "b747f", Manufacturer: "Boeing", Model: "747", Variant: "747-8F Freighter", Price: 418_400_000, MaxPassengers: 0, RangeKm: 4500, FuelCapacity: 23800, CruiseSpeedKmh: 908, Category: Cargo, YearIntroduced: 2011, Efficiency: 70, Maintenance: 60},
	{ID: "a330f", Manufacturer: "Airbus", Model: "A330", Variant: "A330-200F", Price: 241_700_000, MaxPassengers: 0, RangeKm: 4000, FuelCapacity: 17120, CruiseSpeedKmh: 871, Category: Cargo, YearIntroduced: 2010, Efficiency: 75, Maintenance: 65},
	{ID: "md11f", Manufacturer: "McDonnell Douglas", Model: "MD-11", Variant: "MD-11F", Price: 157_000_000, MaxPassengers: 0, RangeKm: 3800, FuelCapacity: 15600, CruiseSpeedKmh: 876, Category: Cargo, YearIntroduced: 1991, Efficiency: 65, Maintenance: 55},
}

var byID = func() map[string]Archetype {
	m := make(map[string]Archetype, len(Models))
	for _, a := range Models {
		m[a.ID] = a
	}
	return m
}()

// ByID looks up an archetype by its catalog id.
func ByID(id string) (Archetype, bool) {
	a, ok := byID[strings.ToLower(strings.TrimSpace(id))]
	return a, ok
}
