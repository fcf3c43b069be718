// Package sim is the flight/economy simulation core. The tick engine is a
// pure state-transition function over a player's snapshot; Session wraps a
// snapshot with the locking, watermark and command surface the service layer
// drives.
package sim

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/Pc-CraftGroup/sky-haven-manager/internal/geo"
	"github.com/Pc-CraftGroup/sky-haven-manager/internal/model"
)

// Tunables of the economic tick.
const (
	delayChancePerHour  = 0.02  // chance per flight-hour of a delay starting
	crashChancePerHour  = 0.001 // chance per flight-hour of a crash, condition < 30 only
	crashConditionFloor = 30.0
	delayRecoveryChance = 0.3 // per-tick chance a delayed flight resumes
	crashReputationHit  = 20
	insurancePayoutRate = 0.8
	conditionWearPerMin = 0.1
	dailyUpkeepRate     = 0.001 // share of purchase price per day, any non-crashed airframe
	minutesPerDay       = 24 * 60
)

var delayReasons = []string{
	"Severe weather",
	"Technical inspection",
	"Air traffic control",
	"Late connecting flight",
	"Crew scheduling",
}

var crashReasons = []string{
	"Severe storm",
	"Technical failure",
	"Pilot error",
	"Poor maintenance",
}

// Advance applies minutes of elapsed time to a fleet and game state and
// returns the next snapshot plus the notifications the transition produced.
//
// It is pure: inputs are never mutated, all randomness comes from rng, all
// clock reads from now. minutes <= 0 returns the inputs unchanged (copied).
func Advance(fleet []model.Aircraft, state model.GameState, minutes int, speedMultiplier float64, now time.Time, rng *rand.Rand) ([]model.Aircraft, model.GameState, []model.Notification) {
	next := model.CloneFleet(fleet)
	if minutes <= 0 {
		return next, state, nil
	}
	if speedMultiplier <= 0 {
		speedMultiplier = 1
	}

	var notifs []model.Notification
	var budgetChange, revenueChange float64
	reputationChange := 0

	for i := range next {
		plane := &next[i]

		switch plane.Status {
		case model.StatusCrashed:
			// Terminal. Never simulated again, no upkeep either.
			continue

		case model.StatusGrounded:
			// Parked with no crew assigned; only upkeep applies.

		case model.StatusMaintenance:
			if plane.MaintenanceUntil != nil && !now.Before(*plane.MaintenanceUntil) {
				plane.Status = model.StatusIdle
				plane.MaintenanceUntil = nil
				notifs = append(notifs, model.Notification{
					Type:         model.NotifyMaintenanceCompleted,
					AircraftID:   plane.ID,
					Registration: plane.Registration,
					Model:        plane.Model,
					Message:      fmt.Sprintf("%s is back in service", plane.Registration),
				})
			}

		case model.StatusDelayed:
			if rng.Float64() < delayRecoveryChance {
				plane.Status = model.StatusInFlight
				plane.DelayReason = ""
				notifs = append(notifs, model.Notification{
					Type:         model.NotifyDelayCleared,
					AircraftID:   plane.ID,
					Registration: plane.Registration,
					Model:        plane.Model,
					Message:      fmt.Sprintf("%s has resumed its flight", plane.Registration),
				})
			}
			// No progress, wear or fuel burn while held.

		case model.StatusInFlight:
			if plane.CurrentRoute == nil {
				// Snapshot corruption; park the aircraft rather than fail the tick.
				plane.Status = model.StatusIdle
				break
			}

			// Delay and crash are mutually exclusive outcomes of a single
			// draw: {none, delay, crash} with crash taking priority.
			crashChance := 0.0
			if plane.Condition < crashConditionFloor {
				crashChance = crashChancePerHour * float64(minutes) / 60
			}
			delayChance := 0.0
			if plane.DelayReason == "" {
				delayChance = delayChancePerHour * float64(minutes) / 60
			}
			roll := rng.Float64()

			if roll < crashChance {
				reason := crashReasons[rng.Intn(len(crashReasons))]
				plane.Status = model.StatusCrashed
				plane.CrashReason = reason
				plane.CurrentRoute = nil
				plane.DelayReason = ""
				reputationChange -= crashReputationHit
				budgetChange += plane.PurchasePrice * insurancePayoutRate
				notifs = append(notifs, model.Notification{
					Type:         model.NotifyCrash,
					AircraftID:   plane.ID,
					Registration: plane.Registration,
					Model:        plane.Model,
					Reason:       reason,
					Message:      fmt.Sprintf("%s has crashed: %s", plane.Registration, reason),
				})
				// No upkeep on the crash tick.
				continue
			}

			if roll < crashChance+delayChance {
				reason := delayReasons[rng.Intn(len(delayReasons))]
				plane.Status = model.StatusDelayed
				plane.DelayReason = reason
				notifs = append(notifs, model.Notification{
					Type:         model.NotifyDelayStarted,
					AircraftID:   plane.ID,
					Registration: plane.Registration,
					Model:        plane.Model,
					Reason:       reason,
					Message:      fmt.Sprintf("%s is delayed: %s", plane.Registration, reason),
				})
				// The flight makes no progress on the tick the delay begins.
				break
			}

			route := plane.CurrentRoute
			effectiveDuration := float64(route.DurationMin) / speedMultiplier
			progress := math.Min(100, route.Progress+float64(minutes)/effectiveDuration*100)
			route.Progress = progress
			plane.Position = geo.Lerp(route.FromCoordinates, route.ToCoordinates, progress/100)

			fuelBurn := fuelConsumptionPerMinute(plane.Passengers, plane.MaxPassengers)
			plane.FuelLevel = math.Max(0, plane.FuelLevel-fuelBurn*float64(minutes))
			plane.TotalFlightHours += float64(minutes) / 60
			plane.Condition = math.Max(0, plane.Condition-conditionWearPerMin*float64(minutes))

			if progress >= 100 {
				revenue := route.Price * float64(plane.Passengers)
				plane.Status = model.StatusIdle
				plane.Location = route.To
				plane.Position = route.ToCoordinates
				plane.CurrentRoute = nil
				budgetChange += revenue
				revenueChange += revenue
				notifs = append(notifs, model.Notification{
					Type:         model.NotifyFlightCompleted,
					AircraftID:   plane.ID,
					Registration: plane.Registration,
					Model:        plane.Model,
					Location:     route.To,
					Revenue:      revenue,
					Message:      fmt.Sprintf("%s has landed in %s", plane.Registration, route.To),
				})
			}
		}

		// Fleet carrying cost, prorated from a daily rate.
		budgetChange -= plane.PurchasePrice * dailyUpkeepRate * float64(minutes) / minutesPerDay
	}

	state.Budget += budgetChange
	state.TotalRevenue += revenueChange
	state.Reputation = clampReputation(state.Reputation + reputationChange)
	state.LastUpdate = now

	return next, state, notifs
}

func fuelConsumptionPerMinute(passengers, maxPassengers int) float64 {
	if maxPassengers <= 0 {
		return 1
	}
	return math.Max(1, float64(passengers)/float64(maxPassengers)*2)
}

func clampReputation(rep int) int {
	if rep < 0 {
		return 0
	}
	if rep > 100 {
		return 100
	}
	return rep
}
