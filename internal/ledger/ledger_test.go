package ledger

import (
	"errors"
	"testing"

	"github.com/m3rciful/fitbot/internal/model"
)

func newUser() *model.User {
	return model.NewUser(1, model.Profile{Weight: 70, Height: 175, Age: 30, Activity: 30, City: "Berlin"})
}

func TestEnsureDayIdempotent(t *testing.T) {
	u := newUser()
	const day = "2026-08-30"

	if !EnsureDay(u, day) {
		t.Fatal("first EnsureDay must report mutation")
	}
	if err := AddLoggedWater(u, day, 9, 500); err != nil {
		t.Fatalf("AddLoggedWater: %v", err)
	}

	if EnsureDay(u, day) {
		t.Fatal("second EnsureDay must be a no-op")
	}
	if got := u.LoggedWater[day][9]; got != 500 {
		t.Fatalf("EnsureDay wiped existing buckets, hour 9 = %d", got)
	}

	for _, m := range []map[string][]int{u.LoggedWater, u.BurnedWater, u.LoggedCal, u.BurnedCal} {
		buckets, ok := m[day]
		if !ok {
			t.Fatal("day must exist in all four maps")
		}
		if len(buckets) != HoursPerDay {
			t.Fatalf("bucket length = %d, want %d", len(buckets), HoursPerDay)
		}
	}
}

func TestEnsureDayNilMaps(t *testing.T) {
	u := &model.User{ID: 2}
	if !EnsureDay(u, "2026-08-30") {
		t.Fatal("EnsureDay must bootstrap nil maps")
	}
	if err := AddBurnedCalories(u, "2026-08-30", 0, 100); err != nil {
		t.Fatalf("AddBurnedCalories after bootstrap: %v", err)
	}
}

func TestAddValidation(t *testing.T) {
	u := newUser()
	const day = "2026-08-30"
	EnsureDay(u, day)

	if err := AddLoggedWater(u, day, 10, -1); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("negative delta: got %v, want ErrInvalidAmount", err)
	}
	if err := AddLoggedWater(u, day, 24, 100); !errors.Is(err, ErrInvalidHour) {
		t.Fatalf("hour 24: got %v, want ErrInvalidHour", err)
	}
	if err := AddLoggedWater(u, "2026-08-31", 10, 100); err == nil {
		t.Fatal("write to an uninitialized day must fail")
	}
}

func TestDaySummary(t *testing.T) {
	u := newUser()
	const day = "2026-08-30"
	EnsureDay(u, day)

	mustAdd := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	mustAdd(AddLoggedWater(u, day, 8, 300))
	mustAdd(AddLoggedWater(u, day, 12, 200))
	mustAdd(AddBurnedWater(u, day, 18, 150))
	mustAdd(AddLoggedCalories(u, day, 13, 640))
	mustAdd(AddBurnedCalories(u, day, 18, 240))

	got := DaySummary(u, day)
	want := Summary{LoggedWater: 500, BurnedWater: 150, LoggedCal: 640, BurnedCal: 240}
	if got != want {
		t.Fatalf("DaySummary = %+v, want %+v", got, want)
	}
}

func TestDaySummaryMissingDay(t *testing.T) {
	u := newUser()
	if got := DaySummary(u, "1999-01-01"); got != (Summary{}) {
		t.Fatalf("missing day must sum to zeros, got %+v", got)
	}
}

func TestDayBucketsCopies(t *testing.T) {
	u := newUser()
	const day = "2026-08-30"
	EnsureDay(u, day)
	if err := AddLoggedWater(u, day, 7, 250); err != nil {
		t.Fatal(err)
	}

	logged, burned := DayBuckets(u.LoggedWater, u.BurnedWater, day)
	if logged[7] != 250 || burned[7] != 0 {
		t.Fatalf("unexpected buckets: logged[7]=%d burned[7]=%d", logged[7], burned[7])
	}
	logged[7] = 0
	if u.LoggedWater[day][7] != 250 {
		t.Fatal("DayBuckets must return copies")
	}

	logged, burned = DayBuckets(u.LoggedWater, u.BurnedWater, "1999-01-01")
	if len(logged) != HoursPerDay || len(burned) != HoursPerDay {
		t.Fatal("missing day must yield zeroed full-length slices")
	}
}
