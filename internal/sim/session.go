package sim

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Pc-CraftGroup/sky-haven-manager/internal/cabin"
	"github.com/Pc-CraftGroup/sky-haven-manager/internal/catalog"
	"github.com/Pc-CraftGroup/sky-haven-manager/internal/geo"
	"github.com/Pc-CraftGroup/sky-haven-manager/internal/model"
)

// Command errors. Handlers map these to 4xx responses.
var (
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrAircraftNotFound    = errors.New("aircraft not found")
	ErrAircraftUnavailable = errors.New("aircraft is not available for this operation")
	ErrInsufficientFuel    = errors.New("not enough fuel for takeoff")
	ErrRouteTooLong        = errors.New("destination is beyond aircraft range")
	ErrUnknownAirport      = errors.New("unknown airport")
	ErrInvalidDestination  = errors.New("destination must differ from current location")
	ErrUnknownModel        = errors.New("unknown aircraft model")
	ErrInvalidSettings     = errors.New("invalid settings")
)

const (
	fuelUnitCost        = 100.0 // budget per fuel percentage point
	minFuelForTakeoff   = 20.0
	maintenanceCostRate = 0.02 // share of purchase price
	maintenanceDuration = 30 * time.Second
	maintenanceInterval = 90 * 24 * time.Hour
	salvageBaseRate     = 0.6
	salvageConditionCut = 0.2 // extra share recovered at 100% condition
	maxSpeedMultiplier  = 1000.0
)

// Session owns one player's live snapshot. All commands and ticks go through
// its mutex; callers only ever see deep copies.
type Session struct {
	mu   sync.Mutex
	snap model.GameSnapshot
	rng  *rand.Rand
	now  func() time.Time
}

// NewSession wraps a loaded snapshot. The snapshot is normalized first, so a
// row written by an older build (or tampered with) cannot poison the
// simulation.
func NewSession(snap model.GameSnapshot, now func() time.Time, rng *rand.Rand) *Session {
	if now == nil {
		now = time.Now
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	Normalize(&snap, now())
	return &Session{snap: snap, rng: rng, now: now}
}

// Normalize repairs snapshot invariants in place: clamps percentage fields,
// reconciles status with route/reason fields and resets a watermark that sits
// in the future back to now.
func Normalize(snap *model.GameSnapshot, now time.Time) {
	if snap.Settings.SpeedMultiplier <= 0 {
		snap.Settings.SpeedMultiplier = 1
	}
	snap.State.Reputation = clampReputation(snap.State.Reputation)
	if snap.State.LastUpdate.IsZero() || snap.State.LastUpdate.After(now) {
		snap.State.LastUpdate = now
	}
	if snap.Fleet == nil {
		snap.Fleet = []model.Aircraft{}
	}
	for i := range snap.Fleet {
		plane := &snap.Fleet[i]
		plane.FuelLevel = clampPct(plane.FuelLevel)
		plane.Condition = clampPct(plane.Condition)
		if plane.CurrentRoute != nil {
			plane.CurrentRoute.Progress = clampPct(plane.CurrentRoute.Progress)
		}

		switch plane.Status {
		case model.StatusInFlight, model.StatusDelayed:
			if plane.CurrentRoute == nil {
				plane.Status = model.StatusIdle
				plane.DelayReason = ""
			}
		case model.StatusMaintenance:
			plane.CurrentRoute = nil
			plane.DelayReason = ""
		case model.StatusCrashed:
			plane.CurrentRoute = nil
			plane.DelayReason = ""
		default:
			plane.Status = model.StatusIdle
			plane.CurrentRoute = nil
			plane.DelayReason = ""
			plane.CrashReason = ""
		}
		if plane.Status != model.StatusDelayed {
			plane.DelayReason = ""
		}
		if plane.Status != model.StatusCrashed {
			plane.CrashReason = ""
		}
		if plane.Status != model.StatusMaintenance {
			plane.MaintenanceUntil = nil
		}
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Session) Snapshot() model.GameSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}

// Tick advances the simulation from the watermark to now, in whole minutes.
// Sub-minute remainders stay unsimulated until they accumulate; the watermark
// only moves when at least one minute is applied, so nothing is lost.
func (s *Session) Tick() (model.GameSnapshot, []model.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	minutes := int(now.Sub(s.snap.State.LastUpdate).Minutes())
	if minutes <= 0 {
		return s.snap.Clone(), nil
	}
	tickAt := s.snap.State.LastUpdate.Add(time.Duration(minutes) * time.Minute)

	fleet, state, notifs := Advance(s.snap.Fleet, s.snap.State, minutes, s.snap.Settings.SpeedMultiplier, tickAt, s.rng)
	s.snap.Fleet = fleet
	s.snap.State = state
	return s.snap.Clone(), notifs
}

// Purchase buys one airframe of the given catalog model. The registration is
// generated when empty. The new aircraft spawns idle, fully fueled, at a
// random airport.
func (s *Session) Purchase(modelID, registration, airline string) (model.Aircraft, error) {
	arch, ok := catalog.ByID(modelID)
	if !ok {
		return model.Aircraft{}, ErrUnknownModel
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap.State.Budget < arch.Price {
		return model.Aircraft{}, ErrInsufficientFunds
	}
	if registration == "" {
		registration = s.newRegistration()
	}

	now := s.now()
	home := geo.RandomAirport(s.rng)
	plane := model.Aircraft{
		ID:              uuid.NewString(),
		Model:           arch.DisplayName(),
		Registration:    registration,
		Airline:         airline,
		Status:          model.StatusIdle,
		Location:        home.Name,
		Position:        home.Coordinates,
		MaxPassengers:   arch.MaxPassengers,
		FuelLevel:       100,
		Condition:       100,
		PurchasePrice:   arch.Price,
		RangeKm:         arch.RangeKm,
		LastService:     now,
		NextMaintenance: now.Add(maintenanceInterval),
	}
	if s.snap.DefaultCabin != nil {
		cc := *s.snap.DefaultCabin
		plane.CabinConfig = &cc
	}

	s.snap.State.Budget -= arch.Price
	s.snap.State.AircraftPurchased++
	s.snap.Fleet = append(s.snap.Fleet, plane)
	return plane.Clone(), nil
}

// StartFlight dispatches an idle aircraft from its current location to the
// named destination. Passenger load is derived from the cabin split at
// departure and stays fixed for the leg.
func (s *Session) StartFlight(aircraftID, destination string) (model.Aircraft, error) {
	to, ok := geo.AirportByName(destination)
	if !ok {
		return model.Aircraft{}, ErrUnknownAirport
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	plane := s.findAircraft(aircraftID)
	if plane == nil {
		return model.Aircraft{}, ErrAircraftNotFound
	}
	if plane.Status != model.StatusIdle {
		return model.Aircraft{}, ErrAircraftUnavailable
	}
	if plane.FuelLevel < minFuelForTakeoff {
		return model.Aircraft{}, ErrInsufficientFuel
	}
	from, ok := geo.AirportByName(plane.Location)
	if !ok {
		return model.Aircraft{}, ErrUnknownAirport
	}
	if from.Name == to.Name {
		return model.Aircraft{}, ErrInvalidDestination
	}

	now := s.now()
	route := PlanRoute(from, to, now, s.snap.Settings.SpeedMultiplier, s.rng)
	if plane.RangeKm > 0 && route.DistanceKm > plane.RangeKm {
		return model.Aircraft{}, ErrRouteTooLong
	}

	plane.Passengers = cabin.Allocate(s.cabinFor(plane), plane.MaxPassengers).Total()
	plane.Status = model.StatusInFlight
	plane.CurrentRoute = &route
	plane.Position = from.Coordinates
	plane.Location = from.Name
	s.snap.State.TotalFlights++
	return plane.Clone(), nil
}

// Refuel tops the tank back to 100% at a fixed cost per percentage point.
func (s *Session) Refuel(aircraftID string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plane := s.findAircraft(aircraftID)
	if plane == nil {
		return 0, ErrAircraftNotFound
	}
	cost := (100 - plane.FuelLevel) * fuelUnitCost
	if s.snap.State.Budget < cost {
		return 0, ErrInsufficientFunds
	}
	s.snap.State.Budget -= cost
	plane.FuelLevel = 100
	return cost, nil
}

// PerformMaintenance sends a parked aircraft into the shop: condition is
// restored immediately, the airframe is unavailable until the visit's due
// timestamp passes and the tick releases it.
func (s *Session) PerformMaintenance(aircraftID string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plane := s.findAircraft(aircraftID)
	if plane == nil {
		return 0, ErrAircraftNotFound
	}
	if plane.Status != model.StatusIdle && plane.Status != model.StatusGrounded {
		return 0, ErrAircraftUnavailable
	}
	cost := plane.PurchasePrice * maintenanceCostRate
	if s.snap.State.Budget < cost {
		return 0, ErrInsufficientFunds
	}

	now := s.now()
	until := now.Add(maintenanceDuration)
	s.snap.State.Budget -= cost
	plane.Condition = 100
	plane.Status = model.StatusMaintenance
	plane.MaintenanceUntil = &until
	plane.LastService = now
	plane.NextMaintenance = now.Add(maintenanceInterval)
	return cost, nil
}

// Sell removes an aircraft from the fleet for its salvage value: 60% of the
// purchase price plus up to 20% more scaled by remaining condition.
func (s *Session) Sell(aircraftID string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.snap.Fleet {
		if s.snap.Fleet[i].ID == aircraftID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, ErrAircraftNotFound
	}
	plane := s.snap.Fleet[idx]
	salvage := math.Floor(plane.PurchasePrice * (salvageBaseRate + plane.Condition/100*salvageConditionCut))

	s.snap.State.Budget += salvage
	s.snap.Fleet = append(s.snap.Fleet[:idx], s.snap.Fleet[idx+1:]...)
	return salvage, nil
}

// ConfigureCabin sets one aircraft's service-class split. Not allowed while
// the aircraft is flying a leg.
func (s *Session) ConfigureCabin(aircraftID string, cfg model.CabinConfiguration) error {
	if err := cabin.Validate(cfg); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	plane := s.findAircraft(aircraftID)
	if plane == nil {
		return ErrAircraftNotFound
	}
	if plane.Status == model.StatusInFlight || plane.Status == model.StatusDelayed {
		return ErrAircraftUnavailable
	}
	cc := cfg
	plane.CabinConfig = &cc
	return nil
}

// SetDefaultCabin sets the split applied to future purchases and to aircraft
// without their own configuration.
func (s *Session) SetDefaultCabin(cfg model.CabinConfiguration) error {
	if err := cabin.Validate(cfg); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cc := cfg
	s.snap.DefaultCabin = &cc
	return nil
}

// UpdateSettings replaces the per-player simulation tunables.
func (s *Session) UpdateSettings(settings model.Settings) error {
	if settings.SpeedMultiplier <= 0 || settings.SpeedMultiplier > maxSpeedMultiplier {
		return ErrInvalidSettings
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Settings = settings
	return nil
}

// Reset discards everything and starts the player over with the initial
// budget and an empty fleet.
func (s *Session) Reset() model.GameSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = model.NewSnapshot(s.now())
	return s.snap.Clone()
}

// LiveFleet projects in-flight positions forward to the wall clock for
// display. The projection is cosmetic: nothing here is written back, and the
// next economic tick recomputes from the authoritative watermark.
func (s *Session) LiveFleet() []model.Aircraft {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	elapsedMin := now.Sub(s.snap.State.LastUpdate).Minutes()
	speed := s.snap.Settings.SpeedMultiplier

	fleet := model.CloneFleet(s.snap.Fleet)
	for i := range fleet {
		plane := &fleet[i]
		if plane.Status != model.StatusInFlight || plane.CurrentRoute == nil || elapsedMin <= 0 {
			continue
		}
		route := plane.CurrentRoute
		effective := float64(route.DurationMin) / speed
		progress := math.Min(100, route.Progress+elapsedMin/effective*100)
		route.Progress = progress
		plane.Position = geo.Lerp(route.FromCoordinates, route.ToCoordinates, progress/100)
	}
	return fleet
}

func (s *Session) findAircraft(id string) *model.Aircraft {
	for i := range s.snap.Fleet {
		if s.snap.Fleet[i].ID == id {
			return &s.snap.Fleet[i]
		}
	}
	return nil
}

func (s *Session) cabinFor(plane *model.Aircraft) model.CabinConfiguration {
	if plane.CabinConfig != nil {
		return *plane.CabinConfig
	}
	if s.snap.DefaultCabin != nil {
		return *s.snap.DefaultCabin
	}
	return cabin.DefaultConfiguration
}

func (s *Session) newRegistration() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	b := make([]byte, 4)
	for i := range b {
		b[i] = letters[s.rng.Intn(len(letters))]
	}
	return fmt.Sprintf("D-%s", b)
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
