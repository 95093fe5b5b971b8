package storage

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/m3rciful/fitbot/core/database"
	"github.com/m3rciful/fitbot/internal/ledger"
	"github.com/m3rciful/fitbot/internal/model"
)

func newSQLStore(t *testing.T) *SQLStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fitbot.db")
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	cfg := database.Config{Driver: database.DriverSQLite, Path: path}
	s := NewSQLStore(db, cfg)
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return s
}

func TestSQLStoreGetNotFound(t *testing.T) {
	s := newSQLStore(t)
	_, err := s.Get(context.Background(), 404)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestSQLStoreRoundTrip(t *testing.T) {
	s := newSQLStore(t)
	ctx := context.Background()

	u := model.NewUser(7, model.Profile{Weight: 70, Height: 175, Age: 30, Activity: 30, City: "Berlin"})
	ledger.EnsureDay(u, "2026-08-30")
	if err := ledger.AddBurnedWater(u, "2026-08-30", 18, 300); err != nil {
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

	// Upsert replaces the record.
	u.Profile.Weight = 75
	if err := s.Put(ctx, u); err != nil {
		t.Fatal(err)
	}
	got, err = s.Get(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	if got.Profile.Weight != 75 {
		t.Fatalf("upsert did not overwrite, weight = %d", got.Profile.Weight)
	}
}
