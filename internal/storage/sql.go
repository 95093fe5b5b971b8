package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/fitbot/core/database"
	"github.com/m3rciful/fitbot/core/logger"
	"github.com/m3rciful/fitbot/internal/model"
	"github.com/m3rciful/fitbot/migrations"
	"log/slog"
)

// SQLStore keeps user records in a users(id, record) table with the
// whole document serialized into the record column. The upsert makes Put
// an atomic per-key overwrite on both postgres and sqlite.
type SQLStore struct {
	db  *sqlx.DB
	cfg database.Config
}

// NewSQLStore builds a store over an open sqlx connection.
func NewSQLStore(db *sqlx.DB, cfg database.Config) *SQLStore {
	return &SQLStore{db: db, cfg: cfg}
}

// Init applies the embedded schema migrations. Idempotent.
func (s *SQLStore) Init(ctx context.Context) error {
	if err := database.RunMigrations(s.cfg, migrations.FS, "."); err != nil {
		return fmt.Errorf("storage: migrate: %w", err)
	}
	logger.DB.Info("store initialized",
		slog.String("event", "store.init"),
		slog.String("backend", database.DriverName(s.cfg)),
		slog.String("db", s.cfg.Name),
	)
	return nil
}

// Get returns the record for id or ErrNotFound.
func (s *SQLStore) Get(ctx context.Context, id int64) (*model.User, error) {
	var raw string
	query := s.db.Rebind("SELECT record FROM users WHERE id = ?")
	err := s.db.GetContext(ctx, &raw, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: select user %d: %w", id, err)
	}
	var u model.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("storage: decode user %d: %w", id, err)
	}
	return &u, nil
}

// Put overwrites the record for u.ID.
func (s *SQLStore) Put(ctx context.Context, u *model.User) error {
	start := time.Now()
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("storage: encode user %d: %w", u.ID, err)
	}
	query := s.db.Rebind(
		"INSERT INTO users (id, record) VALUES (?, ?) " +
			"ON CONFLICT (id) DO UPDATE SET record = excluded.record",
	)
	if _, err := s.db.ExecContext(ctx, query, u.ID, string(raw)); err != nil {
		logger.DB.Error("store put failed",
			slog.String("event", "store.put"),
			slog.String("backend", database.DriverName(s.cfg)),
			slog.Int64("user_id", u.ID),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("storage: upsert user %d: %w", u.ID, err)
	}
	logger.DB.Debug("store put",
		slog.String("event", "store.put"),
		slog.String("backend", database.DriverName(s.cfg)),
		slog.Int64("user_id", u.ID),
		slog.Duration("duration", logger.Took(start)),
	)
	return nil
}
