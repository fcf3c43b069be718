package sim

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pc-CraftGroup/sky-haven-manager/internal/cabin"
	"github.com/Pc-CraftGroup/sky-haven-manager/internal/model"
)

type clock struct {
	t time.Time
}

func (c *clock) Now() time.Time          { return c.t }
func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestSession(t *testing.T, snap model.GameSnapshot) (*Session, *clock) {
	t.Helper()
	c := &clock{t: tickStart}
	return NewSession(snap, c.Now, quietRand()), c
}

func freshSnapshot() model.GameSnapshot {
	return model.NewSnapshot(tickStart)
}

func TestPurchaseDebitsBudget(t *testing.T) {
	s, _ := newTestSession(t, freshSnapshot())

	plane, err := s.Purchase("a320", "D-ABCD", "Sky Haven")
	require.NoError(t, err)

	assert.Equal(t, "Airbus A320", plane.Model)
	assert.Equal(t, "D-ABCD", plane.Registration)
	assert.Equal(t, model.StatusIdle, plane.Status)
	assert.Equal(t, 100.0, plane.FuelLevel)
	assert.Equal(t, 100.0, plane.Condition)
	assert.NotEmpty(t, plane.Location)
	assert.NotEmpty(t, plane.ID)

	snap := s.Snapshot()
	assert.InDelta(t, model.InitialBudget-98_000_000, snap.State.Budget, 1e-6)
	assert.Equal(t, 1, snap.State.AircraftPurchased)
	assert.Equal(t, 0, snap.State.TotalFlights)
	require.Len(t, snap.Fleet, 1)
}

func TestPurchaseInsufficientFunds(t *testing.T) {
	snap := freshSnapshot()
	snap.State.Budget = 1_000
	s, _ := newTestSession(t, snap)

	_, err := s.Purchase("a320", "", "Sky Haven")
	require.ErrorIs(t, err, ErrInsufficientFunds)

	after := s.Snapshot()
	assert.Equal(t, 1_000.0, after.State.Budget)
	assert.Empty(t, after.Fleet)
	assert.Equal(t, 0, after.State.AircraftPurchased)
}

func TestPurchaseUnknownModel(t *testing.T) {
	s, _ := newTestSession(t, freshSnapshot())
	_, err := s.Purchase("concorde", "", "Sky Haven")
	require.ErrorIs(t, err, ErrUnknownModel)
}

func TestPurchaseGeneratesRegistration(t *testing.T) {
	s, _ := newTestSession(t, freshSnapshot())
	plane, err := s.Purchase("atr72", "", "Sky Haven")
	require.NoError(t, err)
	assert.Regexp(t, `^D-[A-Z]{4}$`, plane.Registration)
}

func idleAircraftAt(location string) model.Aircraft {
	return model.Aircraft{
		ID:            "ac-1",
		Model:         "Airbus A320",
		Registration:  "D-TEST",
		Status:        model.StatusIdle,
		Location:      location,
		MaxPassengers: 180,
		FuelLevel:     100,
		Condition:     100,
		PurchasePrice: 98_000_000,
		RangeKm:       15_000,
	}
}

func TestStartFlight(t *testing.T) {
	snap := freshSnapshot()
	snap.Fleet = []model.Aircraft{idleAircraftAt(fra.Name)}
	s, _ := newTestSession(t, snap)

	plane, err := s.StartFlight("ac-1", jfk.Name)
	require.NoError(t, err)

	assert.Equal(t, model.StatusInFlight, plane.Status)
	require.NotNil(t, plane.CurrentRoute)
	assert.Equal(t, fra.Name, plane.CurrentRoute.From)
	assert.Equal(t, jfk.Name, plane.CurrentRoute.To)
	assert.Equal(t, 0.0, plane.CurrentRoute.Progress)
	assert.Equal(t, fra.Name, plane.Location)

	// 180 seats under the default split
	want := cabin.Allocate(cabin.DefaultConfiguration, 180).Total()
	assert.Equal(t, want, plane.Passengers)

	assert.Equal(t, 1, s.Snapshot().State.TotalFlights)
}

func TestStartFlightErrors(t *testing.T) {
	lowFuel := idleAircraftAt(fra.Name)
	lowFuel.ID = "ac-2"
	lowFuel.FuelLevel = 10
	flying := idleAircraftAt(fra.Name)
	flying.ID = "ac-3"
	flying.Status = model.StatusInFlight
	flying.CurrentRoute = &model.FlightRoute{From: fra.Name, To: jfk.Name}
	shortRange := idleAircraftAt(fra.Name)
	shortRange.ID = "ac-4"
	shortRange.RangeKm = 500

	snap := freshSnapshot()
	snap.Fleet = []model.Aircraft{idleAircraftAt(fra.Name), lowFuel, flying, shortRange}
	s, _ := newTestSession(t, snap)

	tests := []struct {
		name        string
		aircraftID  string
		destination string
		wantErr     error
	}{
		{"unknown aircraft", "nope", jfk.Name, ErrAircraftNotFound},
		{"unknown destination", "ac-1", "Atlantis (ATL)", ErrUnknownAirport},
		{"same airport", "ac-1", fra.Name, ErrInvalidDestination},
		{"low fuel", "ac-2", jfk.Name, ErrInsufficientFuel},
		{"already flying", "ac-3", jfk.Name, ErrAircraftUnavailable},
		{"beyond range", "ac-4", jfk.Name, ErrRouteTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.StartFlight(tt.aircraftID, tt.destination)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Equal(t, 0, s.Snapshot().State.TotalFlights)
}

func TestRefuelCost(t *testing.T) {
	plane := idleAircraftAt(fra.Name)
	plane.FuelLevel = 40
	snap := freshSnapshot()
	snap.State.Budget = 10_000
	snap.Fleet = []model.Aircraft{plane}
	s, _ := newTestSession(t, snap)

	cost, err := s.Refuel("ac-1")
	require.NoError(t, err)

	// (100 - 40) * 100 per point
	assert.InDelta(t, 6_000.0, cost, 1e-9)
	after := s.Snapshot()
	assert.InDelta(t, 4_000.0, after.State.Budget, 1e-9)
	assert.Equal(t, 100.0, after.Fleet[0].FuelLevel)
}

func TestRefuelInsufficientFunds(t *testing.T) {
	plane := idleAircraftAt(fra.Name)
	plane.FuelLevel = 40
	snap := freshSnapshot()
	snap.State.Budget = 5_999
	snap.Fleet = []model.Aircraft{plane}
	s, _ := newTestSession(t, snap)

	_, err := s.Refuel("ac-1")
	require.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, 40.0, s.Snapshot().Fleet[0].FuelLevel)
}

func TestSellSalvageValue(t *testing.T) {
	plane := idleAircraftAt(fra.Name)
	plane.PurchasePrice = 100_000_000
	plane.Condition = 50
	snap := freshSnapshot()
	snap.State.Budget = 0
	snap.Fleet = []model.Aircraft{plane}
	s, _ := newTestSession(t, snap)

	salvage, err := s.Sell("ac-1")
	require.NoError(t, err)

	// 100M * (0.6 + 50/100*0.2) = 70M
	assert.InDelta(t, 70_000_000.0, salvage, 1e-6)
	after := s.Snapshot()
	assert.InDelta(t, 70_000_000.0, after.State.Budget, 1e-6)
	assert.Empty(t, after.Fleet)
}

func TestSellUnknownAircraft(t *testing.T) {
	s, _ := newTestSession(t, freshSnapshot())
	_, err := s.Sell("nope")
	require.ErrorIs(t, err, ErrAircraftNotFound)
}

func TestPerformMaintenance(t *testing.T) {
	plane := idleAircraftAt(fra.Name)
	plane.Condition = 55
	snap := freshSnapshot()
	snap.State.Budget = 10_000_000
	snap.Fleet = []model.Aircraft{plane}
	s, c := newTestSession(t, snap)

	cost, err := s.PerformMaintenance("ac-1")
	require.NoError(t, err)

	// 2% of a 98M airframe
	assert.InDelta(t, 1_960_000.0, cost, 1e-6)
	mid := s.Snapshot()
	assert.Equal(t, model.StatusMaintenance, mid.Fleet[0].Status)
	assert.Equal(t, 100.0, mid.Fleet[0].Condition)
	require.NotNil(t, mid.Fleet[0].MaintenanceUntil)

	// unavailable while in the shop
	_, err = s.StartFlight("ac-1", jfk.Name)
	require.ErrorIs(t, err, ErrAircraftUnavailable)
	_, err = s.PerformMaintenance("ac-1")
	require.ErrorIs(t, err, ErrAircraftUnavailable)

	// released by the tick once the visit is due
	c.Advance(time.Minute)
	after, notifs := s.Tick()
	assert.Equal(t, model.StatusIdle, after.Fleet[0].Status)
	require.Len(t, notifs, 1)
	assert.Equal(t, model.NotifyMaintenanceCompleted, notifs[0].Type)
}

func TestTickSettlesArrivedFlight(t *testing.T) {
	plane := inFlightAircraft(90)
	plane.PurchasePrice = 0
	snap := freshSnapshot()
	snap.State.Budget = 10_000
	snap.Fleet = []model.Aircraft{plane}
	s, c := newTestSession(t, snap)

	c.Advance(10 * time.Minute)
	after, notifs := s.Tick()

	assert.Equal(t, model.StatusIdle, after.Fleet[0].Status)
	assert.InDelta(t, 15_000.0, after.State.Budget, 1e-9)
	assert.InDelta(t, 5_000.0, after.State.TotalRevenue, 1e-9)
	require.Len(t, notifs, 1)
	assert.Equal(t, model.NotifyFlightCompleted, notifs[0].Type)
}

func TestTickBeforeOneMinuteIsNoOp(t *testing.T) {
	plane := inFlightAircraft(50)
	snap := freshSnapshot()
	snap.Fleet = []model.Aircraft{plane}
	s, c := newTestSession(t, snap)

	c.Advance(30 * time.Second)
	after, notifs := s.Tick()

	assert.Empty(t, notifs)
	assert.Equal(t, 50.0, after.Fleet[0].CurrentRoute.Progress)
	assert.Equal(t, tickStart, after.State.LastUpdate)
}

func TestTickKeepsSubMinuteRemainder(t *testing.T) {
	snap := freshSnapshot()
	s, c := newTestSession(t, snap)

	c.Advance(90 * time.Second)
	after, _ := s.Tick()

	// one whole minute applied, 30s left for the next tick
	assert.Equal(t, tickStart.Add(time.Minute), after.State.LastUpdate)
}

func TestResetRestoresInitialState(t *testing.T) {
	snap := freshSnapshot()
	snap.State.Budget = 123
	snap.State.TotalFlights = 9
	snap.Fleet = []model.Aircraft{idleAircraftAt(fra.Name)}
	s, c := newTestSession(t, snap)
	c.Advance(time.Hour)

	after := s.Reset()

	assert.Equal(t, float64(model.InitialBudget), after.State.Budget)
	assert.Equal(t, model.InitialReputation, after.State.Reputation)
	assert.Empty(t, after.Fleet)
	assert.Equal(t, 0, after.State.TotalFlights)
	assert.Equal(t, c.Now(), after.State.LastUpdate)
}

func TestConfigureCabin(t *testing.T) {
	snap := freshSnapshot()
	snap.Fleet = []model.Aircraft{idleAircraftAt(fra.Name)}
	s, _ := newTestSession(t, snap)

	err := s.ConfigureCabin("ac-1", model.CabinConfiguration{Business: 40, Economy: 60})
	require.NoError(t, err)
	require.NotNil(t, s.Snapshot().Fleet[0].CabinConfig)

	err = s.ConfigureCabin("ac-1", model.CabinConfiguration{Economy: 99})
	require.ErrorIs(t, err, cabin.ErrInvalidSplit)
}

func TestSetDefaultCabinAppliesToPurchases(t *testing.T) {
	s, _ := newTestSession(t, freshSnapshot())

	cfg := model.CabinConfiguration{Business: 50, Economy: 50}
	require.NoError(t, s.SetDefaultCabin(cfg))

	plane, err := s.Purchase("a320", "", "Sky Haven")
	require.NoError(t, err)
	require.NotNil(t, plane.CabinConfig)
	assert.Equal(t, cfg, *plane.CabinConfig)
}

func TestUpdateSettings(t *testing.T) {
	s, _ := newTestSession(t, freshSnapshot())

	require.NoError(t, s.UpdateSettings(model.Settings{SpeedMultiplier: 10}))
	assert.Equal(t, 10.0, s.Snapshot().Settings.SpeedMultiplier)

	require.ErrorIs(t, s.UpdateSettings(model.Settings{SpeedMultiplier: 0}), ErrInvalidSettings)
	require.ErrorIs(t, s.UpdateSettings(model.Settings{SpeedMultiplier: -2}), ErrInvalidSettings)
}

func TestNormalizeRepairsSnapshot(t *testing.T) {
	orphan := idleAircraftAt(fra.Name)
	orphan.Status = model.StatusInFlight // flying with no route
	stale := idleAircraftAt(fra.Name)
	stale.ID = "ac-2"
	stale.DelayReason = "Severe weather" // reason without delayed status
	stale.FuelLevel = 180
	stale.Condition = -3

	snap := freshSnapshot()
	snap.Fleet = []model.Aircraft{orphan, stale}
	snap.Settings.SpeedMultiplier = 0
	snap.State.Reputation = 400
	snap.State.LastUpdate = tickStart.Add(time.Hour) // watermark in the future

	Normalize(&snap, tickStart)

	assert.Equal(t, model.StatusIdle, snap.Fleet[0].Status)
	assert.Empty(t, snap.Fleet[1].DelayReason)
	assert.Equal(t, 100.0, snap.Fleet[1].FuelLevel)
	assert.Equal(t, 0.0, snap.Fleet[1].Condition)
	assert.Equal(t, 1.0, snap.Settings.SpeedMultiplier)
	assert.Equal(t, 100, snap.State.Reputation)
	assert.Equal(t, tickStart, snap.State.LastUpdate)
}

func TestLiveFleetProjectionIsCosmetic(t *testing.T) {
	plane := inFlightAircraft(50)
	snap := freshSnapshot()
	snap.Fleet = []model.Aircraft{plane}
	s, c := newTestSession(t, snap)

	c.Advance(6 * time.Minute)
	live := s.LiveFleet()

	// 50 + 6/60*100 projected, authoritative snapshot untouched
	require.NotNil(t, live[0].CurrentRoute)
	assert.InDelta(t, 60.0, live[0].CurrentRoute.Progress, 1e-9)
	assert.Equal(t, 50.0, s.Snapshot().Fleet[0].CurrentRoute.Progress)
}

func TestSessionConcurrentCommands(t *testing.T) {
	snap := freshSnapshot()
	s := NewSession(snap, time.Now, rand.New(rand.NewSource(42)))

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				s.Purchase("atr72", "", "Sky Haven")
				s.Tick()
				s.Snapshot()
				s.LiveFleet()
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	after := s.Snapshot()
	assert.Equal(t, len(after.Fleet), after.State.AircraftPurchased)
}