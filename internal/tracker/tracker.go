// Package tracker implements the fitness tracking operations behind the
// bot commands: profile persistence, activity logging into the daily
// ledger, and progress reporting against computed goals.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/m3rciful/fitbot/core/logger"
	"github.com/m3rciful/fitbot/internal/food"
	"github.com/m3rciful/fitbot/internal/goals"
	"github.com/m3rciful/fitbot/internal/ledger"
	"github.com/m3rciful/fitbot/internal/model"
	"github.com/m3rciful/fitbot/internal/storage"
	"log/slog"
)

// Workout burn rates, fixed design parameters.
const (
	KcalPerWorkoutMinute  = 16
	WaterPerWorkoutMinute = 10
)

// ErrInvalidProfile rejects profiles with non-positive numbers or an
// empty city.
var ErrInvalidProfile = errors.New("tracker: invalid profile")

// Report carries the derived numbers of one progress check.
type Report struct {
	WaterGoal      int
	LoggedWater    int
	BurnedWater    int
	RemainingWater int
	CalorieGoal    int
	LoggedCal      int
	BurnedCal      int
	CalorieBalance int
}

// DayWater is the day's total water target: goal plus what workouts
// burned.
func (r Report) DayWater() int {
	return r.WaterGoal + r.BurnedWater
}

// Service serializes per-user read-modify-write sequences over the
// store and exposes the tracking operations.
type Service struct {
	store storage.Store
	calc  *goals.Calculator
	food  food.Lookup

	mu    sync.Mutex
	locks map[int64]*sync.Mutex

	now func() time.Time
}

// New builds a Service. The zero now function defaults to time.Now.
func New(store storage.Store, calc *goals.Calculator, lookup food.Lookup) *Service {
	return &Service{
		store: store,
		calc:  calc,
		food:  lookup,
		locks: make(map[int64]*sync.Mutex),
		now:   time.Now,
	}
}

// SetClock overrides the time source. Used in tests.
func (s *Service) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// lockFor returns the mutex guarding one user id. Cross-user operations
// never contend.
func (s *Service) lockFor(id int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

// SaveProfile overwrites the user record with a fresh profile and an
// empty ledger. Re-running setup re-creates the user.
func (s *Service) SaveProfile(ctx context.Context, id int64, p model.Profile) error {
	if p.Weight <= 0 || p.Height <= 0 || p.Age <= 0 || p.Activity <= 0 || p.City == "" {
		return fmt.Errorf("%w: %+v", ErrInvalidProfile, p)
	}
	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	u := model.NewUser(id, p)
	ledger.EnsureDay(u, ledger.DateOf(s.now()))
	if err := s.store.Put(ctx, u); err != nil {
		return err
	}
	logger.L.LogAttrs(ctx, slog.LevelInfo, "profile.saved",
		slog.String("component", "tracker"),
		slog.Int64("user_id", id),
		slog.String("city", p.City),
	)
	return nil
}

// mutate runs fn against the stored user under the per-user lock with
// today's ledger day bootstrapped, then persists the record.
func (s *Service) mutate(ctx context.Context, id int64, fn func(u *model.User, date string, hour int) error) error {
	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	u, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	now := s.now()
	date, hour := ledger.DateOf(now), now.Hour()
	ledger.EnsureDay(u, date)
	if err := fn(u, date, hour); err != nil {
		return err
	}
	return s.store.Put(ctx, u)
}

// LogWater adds ml of drunk water at the current hour.
func (s *Service) LogWater(ctx context.Context, id int64, ml int) error {
	err := s.mutate(ctx, id, func(u *model.User, date string, hour int) error {
		return ledger.AddLoggedWater(u, date, hour, ml)
	})
	if err != nil {
		return err
	}
	logger.L.LogAttrs(ctx, slog.LevelInfo, "water.logged",
		slog.String("component", "tracker"),
		slog.Int64("user_id", id),
		slog.Int("ml", ml),
	)
	return nil
}

// FoodInfo resolves the caloric density of a product. The chain's
// fallback default is a valid answer.
func (s *Service) FoodInfo(ctx context.Context, product string) (int, error) {
	return s.food.KcalPer100g(ctx, product)
}

// LogFood converts grams eaten at the given density into kcal, logs
// them at the current hour, and returns the logged amount.
func (s *Service) LogFood(ctx context.Context, id int64, grams, kcalPer100g int) (int, error) {
	kcal := int(math.Round(float64(grams) / 100 * float64(kcalPer100g)))
	err := s.mutate(ctx, id, func(u *model.User, date string, hour int) error {
		return ledger.AddLoggedCalories(u, date, hour, kcal)
	})
	if err != nil {
		return 0, err
	}
	logger.L.LogAttrs(ctx, slog.LevelInfo, "food.logged",
		slog.String("component", "tracker"),
		slog.Int64("user_id", id),
		slog.Int("grams", grams),
		slog.Int("kcal_per_100g", kcalPer100g),
		slog.Int("kcal", kcal),
	)
	return kcal, nil
}

// LogWorkout records burned calories and extra water demand for a
// workout of the given duration. Returns (burned kcal, burned water ml).
// Workout math has no upstream dependency and must never be blocked by
// one.
func (s *Service) LogWorkout(ctx context.Context, id int64, minutes int) (int, int, error) {
	kcal := minutes * KcalPerWorkoutMinute
	water := minutes * WaterPerWorkoutMinute
	err := s.mutate(ctx, id, func(u *model.User, date string, hour int) error {
		if err := ledger.AddBurnedCalories(u, date, hour, kcal); err != nil {
			return err
		}
		return ledger.AddBurnedWater(u, date, hour, water)
	})
	if err != nil {
		return 0, 0, err
	}
	logger.L.LogAttrs(ctx, slog.LevelInfo, "workout.logged",
		slog.String("component", "tracker"),
		slog.Int64("user_id", id),
		slog.Int("minutes", minutes),
		slog.Int("kcal", kcal),
		slog.Int("ml", water),
	)
	return kcal, water, nil
}

// Progress computes the daily report: goals, sums of today's buckets,
// remaining water (never negative) and the calorie balance.
func (s *Service) Progress(ctx context.Context, id int64) (Report, error) {
	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	u, err := s.store.Get(ctx, id)
	if err != nil {
		return Report{}, err
	}
	date := ledger.DateOf(s.now())
	if ledger.EnsureDay(u, date) {
		if err := s.store.Put(ctx, u); err != nil {
			return Report{}, err
		}
	}

	waterGoal, err := s.calc.WaterGoal(ctx, u.Profile)
	if err != nil {
		return Report{}, err
	}
	sum := ledger.DaySummary(u, date)

	remaining := waterGoal + sum.BurnedWater - sum.LoggedWater
	if remaining < 0 {
		remaining = 0
	}
	return Report{
		WaterGoal:      waterGoal,
		LoggedWater:    sum.LoggedWater,
		BurnedWater:    sum.BurnedWater,
		RemainingWater: remaining,
		CalorieGoal:    goals.CalorieGoal(u.Profile),
		LoggedCal:      sum.LoggedCal,
		BurnedCal:      sum.BurnedCal,
		CalorieBalance: sum.LoggedCal - sum.BurnedCal,
	}, nil
}

// WaterPlot returns today's hourly water buckets and the water goal for
// chart rendering.
func (s *Service) WaterPlot(ctx context.Context, id int64) (logged, burned []int, goal int, err error) {
	u, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, nil, 0, err
	}
	goal, err = s.calc.WaterGoal(ctx, u.Profile)
	if err != nil {
		return nil, nil, 0, err
	}
	logged, burned = ledger.DayBuckets(u.LoggedWater, u.BurnedWater, ledger.DateOf(s.now()))
	return logged, burned, goal, nil
}

// CaloriePlot returns today's hourly calorie buckets and the calorie
// goal for chart rendering.
func (s *Service) CaloriePlot(ctx context.Context, id int64) (logged, burned []int, goal int, err error) {
	u, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, nil, 0, err
	}
	logged, burned = ledger.DayBuckets(u.LoggedCal, u.BurnedCal, ledger.DateOf(s.now()))
	return logged, burned, goals.CalorieGoal(u.Profile), nil
}

// HasProfile reports whether a record exists for the id. A failing
// store read is returned as an error so callers do not mistake an
// unavailable store for an absent profile.
func (s *Service) HasProfile(ctx context.Context, id int64) (bool, error) {
	_, err := s.store.Get(ctx, id)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}
