// Package storage persists user records. Backends share get/put
// semantics: Get fails with ErrNotFound for unknown ids, Put atomically
// overwrites the whole record (last writer wins).
package storage

import (
	"context"
	"errors"

	"github.com/m3rciful/fitbot/internal/model"
)

// ErrNotFound is returned by Get when no record exists for the id.
// Command entry points translate it into a profile-setup prompt.
var ErrNotFound = errors.New("storage: user not found")

// Store is the durable keyed user store.
type Store interface {
	// Init bootstraps the backing store. Idempotent.
	Init(ctx context.Context) error
	// Get returns the record for id or ErrNotFound.
	Get(ctx context.Context, id int64) (*model.User, error)
	// Put atomically overwrites the record for u.ID.
	Put(ctx context.Context, u *model.User) error
}
