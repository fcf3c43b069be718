package sim

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pc-CraftGroup/sky-haven-manager/internal/geo"
	"github.com/Pc-CraftGroup/sky-haven-manager/internal/model"
)

// zeroSource makes rand.Float64 return 0 and rand.Intn return 0, forcing the
// lowest-probability branch (crash/delay/recovery) to fire.
type zeroSource struct{}

func (zeroSource) Int63() int64 { return 0 }
func (zeroSource) Seed(int64)   {}

// halfSource makes rand.Float64 return 0.5, suppressing every stochastic
// event in the tick.
type halfSource struct{}

func (halfSource) Int63() int64 { return 1 << 62 }
func (halfSource) Seed(int64)   {}

func quietRand() *rand.Rand  { return rand.New(halfSource{}) }
func forcedRand() *rand.Rand { return rand.New(zeroSource{}) }

var (
	tickStart = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fra, _    = geo.AirportByName("Frankfurt am Main (FRA)")
	jfk, _    = geo.AirportByName("New York JFK (JFK)")
)

func inFlightAircraft(progress float64) model.Aircraft {
	return model.Aircraft{
		ID:            "ac-1",
		Model:         "Airbus A320",
		Registration:  "D-TEST",
		Status:        model.StatusInFlight,
		Location:      fra.Name,
		Passengers:    50,
		MaxPassengers: 180,
		FuelLevel:     100,
		Condition:     100,
		Position:      fra.Coordinates,
		CurrentRoute: &model.FlightRoute{
			ID:              "rt-1",
			From:            fra.Name,
			To:              jfk.Name,
			FromCoordinates: fra.Coordinates,
			ToCoordinates:   jfk.Coordinates,
			DistanceKm:      6200,
			DurationMin:     60,
			Price:           100,
			Progress:        progress,
			StartTime:       tickStart.Add(-time.Hour),
		},
	}
}

func baseState() model.GameState {
	return model.GameState{
		Budget:     10_000,
		Reputation: 50,
		GameStart:  tickStart.Add(-24 * time.Hour),
		LastUpdate: tickStart.Add(-10 * time.Minute),
	}
}

func TestAdvanceZeroMinutesIsNoOp(t *testing.T) {
	fleet := []model.Aircraft{inFlightAircraft(40)}
	state := baseState()

	next, nextState, notifs := Advance(fleet, state, 0, 1, tickStart, quietRand())

	assert.Empty(t, notifs)
	assert.Equal(t, state, nextState)
	require.Len(t, next, 1)
	assert.Equal(t, fleet[0], next[0])
}

func TestAdvanceDoesNotMutateInput(t *testing.T) {
	fleet := []model.Aircraft{inFlightAircraft(40)}
	state := baseState()

	Advance(fleet, state, 10, 1, tickStart, quietRand())

	assert.Equal(t, 40.0, fleet[0].CurrentRoute.Progress)
	assert.Equal(t, 100.0, fleet[0].FuelLevel)
}

func TestAdvanceProgressAndWear(t *testing.T) {
	fleet := []model.Aircraft{inFlightAircraft(10)}

	next, _, notifs := Advance(fleet, baseState(), 30, 1, tickStart, quietRand())

	plane := next[0]
	require.NotNil(t, plane.CurrentRoute)
	assert.InDelta(t, 60.0, plane.CurrentRoute.Progress, 1e-9) // 10 + 30/60*100
	assert.InDelta(t, 70.0, plane.FuelLevel, 1e-9)             // burn floor 1/min
	assert.InDelta(t, 97.0, plane.Condition, 1e-9)             // 0.1/min
	assert.InDelta(t, 0.5, plane.TotalFlightHours, 1e-9)
	assert.Equal(t, model.StatusInFlight, plane.Status)
	assert.Empty(t, notifs)
}

func TestAdvanceProgressIsMonotonicAndCapped(t *testing.T) {
	fleet := []model.Aircraft{inFlightAircraft(0)}
	state := baseState()
	rng := rand.New(rand.NewSource(1))

	last := 0.0
	now := tickStart
	for i := 0; i < 20; i++ {
		now = now.Add(5 * time.Minute)
		fleet, state, _ = Advance(fleet, state, 5, 1, now, rng)
		plane := fleet[0]
		progress := 100.0
		if plane.CurrentRoute != nil {
			progress = plane.CurrentRoute.Progress
		}
		assert.GreaterOrEqual(t, progress, last)
		assert.LessOrEqual(t, progress, 100.0)
		last = progress
	}
	assert.Equal(t, model.StatusIdle, fleet[0].Status)
}

func TestAdvanceFuelAndConditionNeverGoNegative(t *testing.T) {
	plane := inFlightAircraft(0)
	plane.FuelLevel = 0.4
	plane.Condition = 0.05

	next, _, _ := Advance([]model.Aircraft{plane}, baseState(), 5, 1, tickStart, quietRand())

	assert.Equal(t, 0.0, next[0].FuelLevel)
	assert.Equal(t, 0.0, next[0].Condition)
}

func TestAdvanceSpeedMultiplierScalesProgress(t *testing.T) {
	fleet := []model.Aircraft{inFlightAircraft(0)}

	next, _, _ := Advance(fleet, baseState(), 6, 5, tickStart, quietRand())

	// effective duration 60/5 = 12 min, so 6 min is half the leg
	assert.InDelta(t, 50.0, next[0].CurrentRoute.Progress, 1e-9)
}

func TestAdvanceCompletionSettlesRevenueOnce(t *testing.T) {
	// duration 60, progress 90, price 100, 50 pax: a 10-minute tick finishes
	// the leg and pays out exactly price*passengers.
	fleet := []model.Aircraft{inFlightAircraft(90)}
	state := baseState()
	state.Budget = 10_000
	state.TotalRevenue = 0

	next, nextState, notifs := Advance(fleet, state, 10, 1, tickStart, quietRand())

	plane := next[0]
	assert.Equal(t, model.StatusIdle, plane.Status)
	assert.Nil(t, plane.CurrentRoute)
	assert.Equal(t, jfk.Name, plane.Location)
	assert.Equal(t, jfk.Coordinates, plane.Position)
	assert.InDelta(t, 15_000.0, nextState.Budget, 1e-9)
	assert.InDelta(t, 5_000.0, nextState.TotalRevenue, 1e-9)

	require.Len(t, notifs, 1)
	assert.Equal(t, model.NotifyFlightCompleted, notifs[0].Type)
	assert.InDelta(t, 5_000.0, notifs[0].Revenue, 1e-9)

	// idle aircraft: a further tick pays nothing again
	_, afterState, after := Advance(next, nextState, 10, 1, tickStart.Add(10*time.Minute), quietRand())
	assert.Empty(t, after)
	assert.InDelta(t, 5_000.0, afterState.TotalRevenue, 1e-9)
}

func TestAdvanceDelayHaltsFlight(t *testing.T) {
	fleet := []model.Aircraft{inFlightAircraft(40)}

	next, _, notifs := Advance(fleet, baseState(), 10, 1, tickStart, forcedRand())

	plane := next[0]
	assert.Equal(t, model.StatusDelayed, plane.Status)
	assert.NotEmpty(t, plane.DelayReason)
	require.NotNil(t, plane.CurrentRoute)
	assert.Equal(t, 40.0, plane.CurrentRoute.Progress)
	assert.Equal(t, 100.0, plane.FuelLevel)

	require.Len(t, notifs, 1)
	assert.Equal(t, model.NotifyDelayStarted, notifs[0].Type)
}

func TestAdvanceDelayedFlightRecovers(t *testing.T) {
	plane := inFlightAircraft(40)
	plane.Status = model.StatusDelayed
	plane.DelayReason = "Severe weather"

	next, _, notifs := Advance([]model.Aircraft{plane}, baseState(), 10, 1, tickStart, forcedRand())

	assert.Equal(t, model.StatusInFlight, next[0].Status)
	assert.Empty(t, next[0].DelayReason)
	assert.Equal(t, 40.0, next[0].CurrentRoute.Progress) // resumes next tick
	require.Len(t, notifs, 1)
	assert.Equal(t, model.NotifyDelayCleared, notifs[0].Type)
}

func TestAdvanceDelayedFlightCanStayHeld(t *testing.T) {
	plane := inFlightAircraft(40)
	plane.Status = model.StatusDelayed
	plane.DelayReason = "Severe weather"

	next, _, notifs := Advance([]model.Aircraft{plane}, baseState(), 10, 1, tickStart, quietRand())

	assert.Equal(t, model.StatusDelayed, next[0].Status)
	assert.Empty(t, notifs)
}

func TestAdvanceWornAircraftCanCrash(t *testing.T) {
	plane := inFlightAircraft(40)
	plane.Condition = 20
	plane.PurchasePrice = 1_000_000
	state := baseState()
	state.Budget = 0
	state.Reputation = 50

	next, nextState, notifs := Advance([]model.Aircraft{plane}, state, 10, 1, tickStart, forcedRand())

	crashed := next[0]
	assert.Equal(t, model.StatusCrashed, crashed.Status)
	assert.NotEmpty(t, crashed.CrashReason)
	assert.Nil(t, crashed.CurrentRoute)
	assert.Equal(t, 30, nextState.Reputation)
	assert.InDelta(t, 800_000.0, nextState.Budget, 1e-9) // 80% insurance payout

	require.Len(t, notifs, 1)
	assert.Equal(t, model.NotifyCrash, notifs[0].Type)
}

func TestAdvanceHealthyAircraftNeverCrashes(t *testing.T) {
	// condition >= 30 zeroes the crash chance, so even a forced roll of 0
	// lands on the delay branch, not the crash branch
	plane := inFlightAircraft(40)
	plane.Condition = 30

	next, _, _ := Advance([]model.Aircraft{plane}, baseState(), 10, 1, tickStart, forcedRand())

	assert.Equal(t, model.StatusDelayed, next[0].Status)
}

func TestAdvanceReputationClampsAtZero(t *testing.T) {
	plane := inFlightAircraft(40)
	plane.Condition = 10
	state := baseState()
	state.Reputation = 5

	_, nextState, _ := Advance([]model.Aircraft{plane}, state, 10, 1, tickStart, forcedRand())

	assert.Equal(t, 0, nextState.Reputation)
}

func TestAdvanceCrashedAircraftStaysInert(t *testing.T) {
	plane := inFlightAircraft(0)
	plane.Status = model.StatusCrashed
	plane.CrashReason = "Severe storm"
	plane.CurrentRoute = nil
	plane.PurchasePrice = 1_000_000
	state := baseState()
	state.Budget = 500

	next, nextState, notifs := Advance([]model.Aircraft{plane}, state, 60, 1, tickStart, forcedRand())

	assert.Equal(t, model.StatusCrashed, next[0].Status)
	assert.Empty(t, notifs)
	// no upkeep either
	assert.Equal(t, 500.0, nextState.Budget)
}

func TestAdvanceUpkeepDrainsBudget(t *testing.T) {
	plane := model.Aircraft{
		ID:            "ac-1",
		Status:        model.StatusIdle,
		PurchasePrice: 98_000_000,
		FuelLevel:     100,
		Condition:     100,
	}
	state := baseState()
	state.Budget = 1_000_000

	// 0.1% of purchase price per day, prorated: 98M * 0.001 / 1440 per minute
	_, nextState, _ := Advance([]model.Aircraft{plane}, state, 1440, 1, tickStart, quietRand())

	assert.InDelta(t, 1_000_000-98_000, nextState.Budget, 1e-6)
}

func TestAdvanceMaintenanceCompletesAtDueTime(t *testing.T) {
	due := tickStart.Add(-time.Second)
	plane := model.Aircraft{
		ID:               "ac-1",
		Registration:     "D-TEST",
		Status:           model.StatusMaintenance,
		Condition:        100,
		FuelLevel:        80,
		MaintenanceUntil: &due,
	}

	next, _, notifs := Advance([]model.Aircraft{plane}, baseState(), 1, 1, tickStart, quietRand())

	assert.Equal(t, model.StatusIdle, next[0].Status)
	assert.Nil(t, next[0].MaintenanceUntil)
	require.Len(t, notifs, 1)
	assert.Equal(t, model.NotifyMaintenanceCompleted, notifs[0].Type)
}

func TestAdvanceMaintenanceStaysUntilDue(t *testing.T) {
	due := tickStart.Add(time.Hour)
	plane := model.Aircraft{
		ID:               "ac-1",
		Status:           model.StatusMaintenance,
		MaintenanceUntil: &due,
	}

	next, _, notifs := Advance([]model.Aircraft{plane}, baseState(), 1, 1, tickStart, quietRand())

	assert.Equal(t, model.StatusMaintenance, next[0].Status)
	assert.Empty(t, notifs)
}

// Route presence must track status through arbitrary tick sequences: a route
// exists iff the aircraft is in-flight or delayed.
func TestAdvanceRouteStatusInvariant(t *testing.T) {
	worn := inFlightAircraft(0)
	worn.ID = "ac-2"
	worn.Condition = 15
	fleet := []model.Aircraft{inFlightAircraft(0), worn}
	state := baseState()
	rng := rand.New(rand.NewSource(7))

	now := tickStart
	for i := 0; i < 200; i++ {
		now = now.Add(3 * time.Minute)
		fleet, state, _ = Advance(fleet, state, 3, 1, now, rng)
		for _, plane := range fleet {
			flying := plane.Status == model.StatusInFlight || plane.Status == model.StatusDelayed
			if flying {
				assert.NotNil(t, plane.CurrentRoute, "tick %d: %s flying without a route", i, plane.ID)
			} else {
				assert.Nil(t, plane.CurrentRoute, "tick %d: %s has a route while %s", i, plane.ID, plane.Status)
			}
			assert.GreaterOrEqual(t, plane.FuelLevel, 0.0)
			assert.GreaterOrEqual(t, plane.Condition, 0.0)
		}
		assert.GreaterOrEqual(t, state.Reputation, 0)
		assert.LessOrEqual(t, state.Reputation, 100)
	}
}
