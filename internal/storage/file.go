package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/m3rciful/fitbot/core/logger"
	"github.com/m3rciful/fitbot/internal/model"
	"log/slog"
)

// FileStore keeps all users in a single JSON document keyed by
// stringified user id. Writes go to a temp file followed by rename so an
// interrupted Put never leaves a corrupted document.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore builds a store over the given JSON file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Init creates the document (and its directory) when missing.
func (s *FileStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("storage: create dir: %w", err)
		}
	}
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("storage: stat %s: %w", s.path, err)
	}
	if err := s.writeAll(map[string]*model.User{}); err != nil {
		return err
	}
	logger.DB.Info("store initialized",
		slog.String("event", "store.init"),
		slog.String("backend", "file"),
		slog.String("db", s.path),
	)
	return nil
}

// Get returns the record for id or ErrNotFound.
func (s *FileStore) Get(ctx context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.readAll()
	if err != nil {
		return nil, err
	}
	u, ok := users[strconv.FormatInt(id, 10)]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return u, nil
}

// Put overwrites the record for u.ID.
func (s *FileStore) Put(ctx context.Context, u *model.User) error {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.readAll()
	if err != nil {
		return err
	}
	users[strconv.FormatInt(u.ID, 10)] = u
	if err := s.writeAll(users); err != nil {
		logger.DB.Error("store put failed",
			slog.String("event", "store.put"),
			slog.String("backend", "file"),
			slog.Int64("user_id", u.ID),
			slog.String("err", err.Error()),
		)
		return err
	}
	logger.DB.Debug("store put",
		slog.String("event", "store.put"),
		slog.String("backend", "file"),
		slog.Int64("user_id", u.ID),
		slog.Duration("duration", logger.Took(start)),
	)
	return nil
}

func (s *FileStore) readAll() (map[string]*model.User, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]*model.User{}, nil
		}
		return nil, fmt.Errorf("storage: read %s: %w", s.path, err)
	}
	users := map[string]*model.User{}
	if len(data) == 0 {
		return users, nil
	}
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("storage: decode %s: %w", s.path, err)
	}
	return users, nil
}

func (s *FileStore) writeAll(users map[string]*model.User) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: encode: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".users-*.json")
	if err != nil {
		return fmt.Errorf("storage: temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("storage: write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("storage: close temp: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("storage: rename: %w", err)
	}
	return nil
}
