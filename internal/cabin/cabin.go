// Package cabin converts a percentage-based service-class split into actual
// seat counts for an airframe, weighting each class by how much floor space
// one seat consumes relative to economy.
package cabin

import (
	"errors"
	"math"

	"github.com/Pc-CraftGroup/sky-haven-manager/internal/model"
)

// ErrInvalidSplit is returned when the four class percentages do not form a
// valid 100% split.
var ErrInvalidSplit = errors.New("cabin split percentages must be non-negative and sum to 100")

// Space consumed by one seat, relative to economy.
const (
	firstClassWeight     = 4.0
	businessWeight       = 2.0
	premiumEconomyWeight = 1.5
	economyWeight        = 1.0
)

// DefaultConfiguration is the fallback split applied to newly purchased
// aircraft when the player has not saved their own default.
var DefaultConfiguration = model.CabinConfiguration{
	FirstClass:     5,
	Business:       15,
	PremiumEconomy: 20,
	Economy:        60,
}

// Allocation is the realized per-class seat count for a given airframe.
type Allocation struct {
	FirstClass     int `json:"first_class"`
	Business       int `json:"business"`
	PremiumEconomy int `json:"premium_economy"`
	Economy        int `json:"economy"`
}

// Total is the number of installable seats under the allocation. Always at
// most maxPassengers, usually a little under because of per-class flooring.
func (a Allocation) Total() int {
	return a.FirstClass + a.Business + a.PremiumEconomy + a.Economy
}

// Validate rejects splits that are negative or do not sum to 100.
func Validate(cfg model.CabinConfiguration) error {
	if cfg.FirstClass < 0 || cfg.Business < 0 || cfg.PremiumEconomy < 0 || cfg.Economy < 0 {
		return ErrInvalidSplit
	}
	if cfg.Sum() != 100 {
		return ErrInvalidSplit
	}
	return nil
}

// Allocate maps a percentage split onto maxPassengers seats. Each class's
// share of floor space is its percentage times its space weight; the seats a
// class yields is its share of the weighted total divided back by its weight.
func Allocate(cfg model.CabinConfiguration, maxPassengers int) Allocation {
	if maxPassengers <= 0 {
		return Allocation{}
	}
	totalWeight := float64(cfg.FirstClass)*firstClassWeight +
		float64(cfg.Business)*businessWeight +
		float64(cfg.PremiumEconomy)*premiumEconomyWeight +
		float64(cfg.Economy)*economyWeight
	if totalWeight <= 0 {
		return Allocation{Economy: maxPassengers}
	}
	seats := func(pct int, weight float64) int {
		return int(math.Floor(float64(pct) / totalWeight * float64(maxPassengers) / weight))
	}
	return Allocation{
		FirstClass:     seats(cfg.FirstClass, firstClassWeight),
		Business:       seats(cfg.Business, businessWeight),
		PremiumEconomy: seats(cfg.PremiumEconomy, premiumEconomyWeight),
		Economy:        seats(cfg.Economy, economyWeight),
	}
}
