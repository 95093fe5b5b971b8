package goals

import (
	"context"
	"errors"
	"testing"

	"github.com/m3rciful/fitbot/internal/model"
)

type fixedTemp struct {
	temp float64
	err  error
}

func (f fixedTemp) Temperature(ctx context.Context, city string) (float64, error) {
	return f.temp, f.err
}

var profile = model.Profile{Weight: 70, Height: 175, Age: 30, Activity: 30, City: "Berlin"}

func TestCalorieGoal(t *testing.T) {
	// 700 + round(1093.75) - 150 + 300
	if got := CalorieGoal(profile); got != 1944 {
		t.Fatalf("CalorieGoal = %d, want 1944", got)
	}
}

func TestCalorieGoalDeterministic(t *testing.T) {
	first := CalorieGoal(profile)
	for i := 0; i < 10; i++ {
		if got := CalorieGoal(profile); got != first {
			t.Fatalf("CalorieGoal not deterministic: %d vs %d", got, first)
		}
	}
}

func TestWaterGoal(t *testing.T) {
	calc := New(DefaultParams(), fixedTemp{temp: 18})
	got, err := calc.WaterGoal(context.Background(), profile)
	if err != nil {
		t.Fatalf("WaterGoal: %v", err)
	}
	// 70*15 + 250
	if got != 1300 {
		t.Fatalf("WaterGoal = %d, want 1300", got)
	}
}

func TestWaterGoalHotWeather(t *testing.T) {
	calc := New(DefaultParams(), fixedTemp{temp: 31})
	got, err := calc.WaterGoal(context.Background(), profile)
	if err != nil {
		t.Fatalf("WaterGoal: %v", err)
	}
	if got != 2300 {
		t.Fatalf("WaterGoal = %d, want 2300 with hot bonus", got)
	}
}

func TestWaterGoalUpstreamFailure(t *testing.T) {
	upstream := errors.New("boom")
	calc := New(DefaultParams(), fixedTemp{err: upstream})
	if _, err := calc.WaterGoal(context.Background(), profile); !errors.Is(err, upstream) {
		t.Fatalf("expected wrapped upstream error, got %v", err)
	}
}
