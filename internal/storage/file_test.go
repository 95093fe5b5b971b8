package storage

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/m3rciful/fitbot/internal/ledger"
	"github.com/m3rciful/fitbot/internal/model"
)

func newFileStore(t *testing.T) *FileStore {
	t.Helper()
	s := NewFileStore(filepath.Join(t.TempDir(), "users.json"))
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return s
}

func TestFileStoreInitIdempotent(t *testing.T) {
	s := newFileStore(t)
	u := model.NewUser(1, model.Profile{Weight: 70, Height: 175, Age: 30, Activity: 30, City: "Berlin"})
	if err := s.Put(context.Background(), u); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("second Init: %v", err)
	}
	if _, err := s.Get(context.Background(), 1); err != nil {
		t.Fatalf("Init must not wipe existing data: %v", err)
	}
}

func TestFileStoreGetNotFound(t *testing.T) {
	s := newFileStore(t)
	_, err := s.Get(context.Background(), 404)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	s := newFileStore(t)
	ctx := context.Background()

	u := model.NewUser(7, model.Profile{Weight: 70, Height: 175, Age: 30, Activity: 30, City: "Berlin"})
	ledger.EnsureDay(u, "2026-08-30")
	if err := ledger.AddLoggedWater(u, "2026-08-30", 9, 500); err != nil {
		t.Fatal(err)
	}
	if err := ledger.AddLoggedCalories(u, "2026-08-30", 13, 640); err != nil {
		t.Fatal(err)
	}

	if err := s.Put(ctx, u); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := s.Get(ctx, 7)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !reflect.DeepEqual(got, u) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, u)
	}
}

func TestFileStorePutOverwrites(t *testing.T) {
	s := newFileStore(t)
	ctx := context.Background()

	first := model.NewUser(5, model.Profile{Weight: 70, Height: 175, Age: 30, Activity: 30, City: "Berlin"})
	ledger.EnsureDay(first, "2026-08-30")
	if err := s.Put(ctx, first); err != nil {
		t.Fatal(err)
	}

	second := model.NewUser(5, model.Profile{Weight: 80, Height: 180, Age: 31, Activity: 60, City: "Hamburg"})
	if err := s.Put(ctx, second); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, 5)
	if err != nil {
		t.Fatal(err)
	}
	if got.Profile.City != "Hamburg" {
		t.Fatalf("Put must fully overwrite, city = %q", got.Profile.City)
	}
	if len(got.LoggedWater) != 0 {
		t.Fatal("overwritten record must not retain the previous ledger")
	}
}
