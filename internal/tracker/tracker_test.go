package tracker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/m3rciful/fitbot/internal/goals"
	"github.com/m3rciful/fitbot/internal/ledger"
	"github.com/m3rciful/fitbot/internal/model"
	"github.com/m3rciful/fitbot/internal/storage"
)

type memStore struct {
	mu    sync.Mutex
	users map[int64]*model.User
}

func newMemStore() *memStore {
	return &memStore{users: make(map[int64]*model.User)}
}

func (m *memStore) Init(ctx context.Context) error { return nil }

func (m *memStore) Get(ctx context.Context, id int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return u, nil
}

func (m *memStore) Put(ctx context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	return nil
}

type fixedTemp struct{ temp float64 }

func (f fixedTemp) Temperature(ctx context.Context, city string) (float64, error) {
	return f.temp, nil
}

type fixedLookup struct{ kcal int }

func (f fixedLookup) KcalPer100g(ctx context.Context, product string) (int, error) {
	return f.kcal, nil
}

var testClock = time.Date(2026, 8, 30, 14, 30, 0, 0, time.Local)

func newService(t *testing.T) (*Service, *memStore) {
	t.Helper()
	store := newMemStore()
	calc := goals.New(goals.DefaultParams(), fixedTemp{temp: 18})
	svc := New(store, calc, fixedLookup{kcal: 100})
	svc.SetClock(func() time.Time { return testClock })
	return svc, store
}

var testProfile = model.Profile{Weight: 70, Height: 175, Age: 30, Activity: 30, City: "Berlin"}

func TestSaveProfileValidation(t *testing.T) {
	svc, _ := newService(t)
	bad := testProfile
	bad.City = ""
	if err := svc.SaveProfile(context.Background(), 1, bad); !errors.Is(err, ErrInvalidProfile) {
		t.Fatalf("got %v, want ErrInvalidProfile", err)
	}
	bad = testProfile
	bad.Weight = 0
	if err := svc.SaveProfile(context.Background(), 1, bad); !errors.Is(err, ErrInvalidProfile) {
		t.Fatalf("got %v, want ErrInvalidProfile", err)
	}
}

func TestSaveProfileOverwrites(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	if err := svc.SaveProfile(ctx, 1, testProfile); err != nil {
		t.Fatal(err)
	}
	if err := svc.LogWater(ctx, 1, 500); err != nil {
		t.Fatal(err)
	}

	if err := svc.SaveProfile(ctx, 1, testProfile); err != nil {
		t.Fatal(err)
	}
	u, _ := store.Get(ctx, 1)
	sum := ledger.DaySummary(u, "2026-08-30")
	if sum.LoggedWater != 0 {
		t.Fatalf("re-running setup must reset the ledger, logged water = %d", sum.LoggedWater)
	}
}

func TestLogRequiresProfile(t *testing.T) {
	svc, _ := newService(t)
	if err := svc.LogWater(context.Background(), 404, 300); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if _, _, err := svc.LogWorkout(context.Background(), 404, 30); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if _, err := svc.Progress(context.Background(), 404); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestLogWorkoutRates(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	if err := svc.SaveProfile(ctx, 1, testProfile); err != nil {
		t.Fatal(err)
	}

	kcal, water, err := svc.LogWorkout(ctx, 1, 30)
	if err != nil {
		t.Fatal(err)
	}
	if kcal != 480 || water != 300 {
		t.Fatalf("30 min workout = %d kcal, %d ml; want 480, 300", kcal, water)
	}

	u, _ := store.Get(ctx, 1)
	if u.BurnedCal["2026-08-30"][14] != 480 {
		t.Fatalf("burned calories not recorded at hour 14")
	}
	if u.BurnedWater["2026-08-30"][14] != 300 {
		t.Fatalf("burned water not recorded at hour 14")
	}
}

func TestLogFoodRounding(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	if err := svc.SaveProfile(ctx, 1, testProfile); err != nil {
		t.Fatal(err)
	}

	// 150 g at 379 kcal/100g -> round(568.5) = 569
	kcal, err := svc.LogFood(ctx, 1, 150, 379)
	if err != nil {
		t.Fatal(err)
	}
	if kcal != 569 {
		t.Fatalf("LogFood = %d kcal, want 569", kcal)
	}
}

func TestProgressEndToEnd(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	if err := svc.SaveProfile(ctx, 1, testProfile); err != nil {
		t.Fatal(err)
	}
	if err := svc.LogWater(ctx, 1, 500); err != nil {
		t.Fatal(err)
	}
	u, _ := store.Get(ctx, 1)
	if u.LoggedWater["2026-08-30"][14] != 500 {
		t.Fatalf("ledger[today][14] = %d, want 500", u.LoggedWater["2026-08-30"][14])
	}

	rep, err := svc.Progress(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if rep.WaterGoal != 1300 {
		t.Fatalf("WaterGoal = %d, want 1300", rep.WaterGoal)
	}
	if rep.CalorieGoal != 1944 {
		t.Fatalf("CalorieGoal = %d, want 1944", rep.CalorieGoal)
	}
	if rep.LoggedWater != 500 || rep.RemainingWater != 800 {
		t.Fatalf("water progress = %d/%d remaining, want 500/800", rep.LoggedWater, rep.RemainingWater)
	}
}

func TestRemainingWaterNeverNegative(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	if err := svc.SaveProfile(ctx, 1, testProfile); err != nil {
		t.Fatal(err)
	}
	if err := svc.LogWater(ctx, 1, 5000); err != nil {
		t.Fatal(err)
	}

	rep, err := svc.Progress(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if rep.RemainingWater != 0 {
		t.Fatalf("RemainingWater = %d, want 0", rep.RemainingWater)
	}
}

func TestProgressFreshDay(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	if err := svc.SaveProfile(ctx, 1, testProfile); err != nil {
		t.Fatal(err)
	}

	// Move the clock to the next day; Progress must bootstrap it.
	svc.SetClock(func() time.Time { return testClock.Add(24 * time.Hour) })
	rep, err := svc.Progress(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if rep.LoggedWater != 0 || rep.CalorieBalance != 0 {
		t.Fatalf("fresh day must report zeros, got %+v", rep)
	}
	u, _ := store.Get(ctx, 1)
	if _, ok := u.LoggedWater["2026-08-31"]; !ok {
		t.Fatal("Progress must persist the bootstrapped day")
	}
}

func TestCalorieBalance(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	if err := svc.SaveProfile(ctx, 1, testProfile); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.LogFood(ctx, 1, 200, 320); err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.LogWorkout(ctx, 1, 15); err != nil {
		t.Fatal(err)
	}

	rep, err := svc.Progress(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if rep.LoggedCal != 640 || rep.BurnedCal != 240 {
		t.Fatalf("calories = %d logged, %d burned; want 640, 240", rep.LoggedCal, rep.BurnedCal)
	}
	if rep.CalorieBalance != 400 {
		t.Fatalf("CalorieBalance = %d, want 400", rep.CalorieBalance)
	}
}

type brokenStore struct{}

func (brokenStore) Init(ctx context.Context) error { return nil }
func (brokenStore) Get(ctx context.Context, id int64) (*model.User, error) {
	return nil, errors.New("disk read")
}
func (brokenStore) Put(ctx context.Context, u *model.User) error { return nil }

func TestHasProfile(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	ok, err := svc.HasProfile(ctx, 404)
	if err != nil || ok {
		t.Fatalf("missing record: got (%v, %v), want (false, nil)", ok, err)
	}

	if err := svc.SaveProfile(ctx, 1, testProfile); err != nil {
		t.Fatal(err)
	}
	ok, err = svc.HasProfile(ctx, 1)
	if err != nil || !ok {
		t.Fatalf("existing record: got (%v, %v), want (true, nil)", ok, err)
	}
}

func TestHasProfileStoreFailure(t *testing.T) {
	calc := goals.New(goals.DefaultParams(), fixedTemp{temp: 18})
	svc := New(brokenStore{}, calc, fixedLookup{kcal: 100})

	ok, err := svc.HasProfile(context.Background(), 1)
	if err == nil {
		t.Fatal("store failure must surface as an error, not an absent profile")
	}
	if ok {
		t.Fatal("ok = true on store failure")
	}
	if errors.Is(err, storage.ErrNotFound) {
		t.Fatal("read failure must not be reported as ErrNotFound")
	}
}
