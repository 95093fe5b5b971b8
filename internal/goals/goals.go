// Package goals derives daily water and calorie targets from a profile
// and, for water, the live temperature in the profile's city.
package goals

import (
	"context"
	"fmt"
	"math"

	"github.com/m3rciful/fitbot/internal/model"
)

// TemperatureSource reports the current temperature in Celsius for a city.
type TemperatureSource interface {
	Temperature(ctx context.Context, city string) (float64, error)
}

// Params are the tunable constants of the water formula.
type Params struct {
	// WaterPerKg is ml of water per kg of body weight.
	WaterPerKg int
	// WaterPerActivity is ml added per 30 minutes of daily activity.
	WaterPerActivity int
	// HotBonusML is added when the live temperature exceeds HotThresholdC.
	HotBonusML int
	// HotThresholdC is the temperature above which the bonus applies.
	HotThresholdC float64
}

// DefaultParams returns the pinned formula constants.
func DefaultParams() Params {
	return Params{
		WaterPerKg:       15,
		WaterPerActivity: 250,
		HotBonusML:       1000,
		HotThresholdC:    25,
	}
}

// Calculator computes goals with fixed params and a temperature source.
type Calculator struct {
	params Params
	temp   TemperatureSource
}

// New builds a Calculator. Zeroed params fall back to defaults.
func New(params Params, temp TemperatureSource) *Calculator {
	def := DefaultParams()
	if params.WaterPerKg <= 0 {
		params.WaterPerKg = def.WaterPerKg
	}
	if params.WaterPerActivity <= 0 {
		params.WaterPerActivity = def.WaterPerActivity
	}
	if params.HotBonusML <= 0 {
		params.HotBonusML = def.HotBonusML
	}
	if params.HotThresholdC == 0 {
		params.HotThresholdC = def.HotThresholdC
	}
	return &Calculator{params: params, temp: temp}
}

// CalorieGoal returns the daily calorie target. Pure and deterministic.
func CalorieGoal(p model.Profile) int {
	return p.Weight*10 +
		int(math.Round(6.25*float64(p.Height))) -
		5*p.Age +
		int(math.Round(float64(p.Activity)/30*300))
}

// WaterGoal returns the daily water target in ml. It consults the live
// temperature in the profile's city; when the source fails the goal is
// unavailable and the caller must surface a retry, never a stale value.
func (c *Calculator) WaterGoal(ctx context.Context, p model.Profile) (int, error) {
	temp, err := c.temp.Temperature(ctx, p.City)
	if err != nil {
		return 0, fmt.Errorf("water goal for %q: %w", p.City, err)
	}
	goal := p.Weight*c.params.WaterPerKg +
		int(math.Round(float64(p.Activity)/30*float64(c.params.WaterPerActivity)))
	if temp > c.params.HotThresholdC {
		goal += c.params.HotBonusML
	}
	return goal, nil
}
