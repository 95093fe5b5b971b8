// Package ledger maintains the per-day hourly activity buckets of a user
// record: water and calories, logged and burned. Dates are local-clock
// ISO days ("2006-01-02"), each mapped to 24 integer slots.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/m3rciful/fitbot/internal/model"
)

// DateLayout is the ledger day key format.
const DateLayout = "2006-01-02"

// HoursPerDay is the fixed bucket count for every ledger day.
const HoursPerDay = 24

var (
	// ErrInvalidAmount rejects negative deltas.
	ErrInvalidAmount = errors.New("ledger: amount must not be negative")
	// ErrInvalidHour rejects hours outside [0,23].
	ErrInvalidHour = errors.New("ledger: hour out of range")
)

// Summary aggregates one ledger day.
type Summary struct {
	LoggedWater int
	BurnedWater int
	LoggedCal   int
	BurnedCal   int
}

// DateOf formats t as a ledger day key.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// EnsureDay inserts date into all four maps with zeroed buckets.
// A day either exists in all maps or in none; calling EnsureDay for an
// existing day is a no-op. Reports whether the user record was mutated.
func EnsureDay(u *model.User, date string) bool {
	if u.LoggedWater == nil {
		u.LoggedWater = make(map[string][]int)
	}
	if u.BurnedWater == nil {
		u.BurnedWater = make(map[string][]int)
	}
	if u.LoggedCal == nil {
		u.LoggedCal = make(map[string][]int)
	}
	if u.BurnedCal == nil {
		u.BurnedCal = make(map[string][]int)
	}
	if _, ok := u.LoggedWater[date]; ok {
		return false
	}
	u.LoggedWater[date] = make([]int, HoursPerDay)
	u.BurnedWater[date] = make([]int, HoursPerDay)
	u.LoggedCal[date] = make([]int, HoursPerDay)
	u.BurnedCal[date] = make([]int, HoursPerDay)
	return true
}

func add(m map[string][]int, date string, hour, delta int) error {
	if delta < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidAmount, delta)
	}
	if hour < 0 || hour >= HoursPerDay {
		return fmt.Errorf("%w: %d", ErrInvalidHour, hour)
	}
	buckets, ok := m[date]
	if !ok || len(buckets) != HoursPerDay {
		return fmt.Errorf("ledger: day %s not initialized", date)
	}
	buckets[hour] += delta
	return nil
}

// AddLoggedWater adds ml to the logged-water bucket for date/hour.
func AddLoggedWater(u *model.User, date string, hour, ml int) error {
	return add(u.LoggedWater, date, hour, ml)
}

// AddBurnedWater adds ml to the burned-water bucket for date/hour.
func AddBurnedWater(u *model.User, date string, hour, ml int) error {
	return add(u.BurnedWater, date, hour, ml)
}

// AddLoggedCalories adds kcal to the logged-calories bucket for date/hour.
func AddLoggedCalories(u *model.User, date string, hour, kcal int) error {
	return add(u.LoggedCal, date, hour, kcal)
}

// AddBurnedCalories adds kcal to the burned-calories bucket for date/hour.
func AddBurnedCalories(u *model.User, date string, hour, kcal int) error {
	return add(u.BurnedCal, date, hour, kcal)
}

func sum(m map[string][]int, date string) int {
	total := 0
	for _, v := range m[date] {
		total += v
	}
	return total
}

// DaySummary sums the four bucket arrays for date. A date that was never
// initialized yields all zeros; the read path never fails on a fresh day.
func DaySummary(u *model.User, date string) Summary {
	return Summary{
		LoggedWater: sum(u.LoggedWater, date),
		BurnedWater: sum(u.BurnedWater, date),
		LoggedCal:   sum(u.LoggedCal, date),
		BurnedCal:   sum(u.BurnedCal, date),
	}
}

// DayBuckets returns copies of the logged and burned buckets of one
// metric for plotting. Missing days come back as zeroed slices.
func DayBuckets(logged, burned map[string][]int, date string) ([]int, []int) {
	out := func(m map[string][]int) []int {
		buckets := make([]int, HoursPerDay)
		copy(buckets, m[date])
		return buckets
	}
	return out(logged), out(burned)
}
