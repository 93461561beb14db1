// Package blob is the durable key-value store behind the time store's
// persistence gateway. The gateway addresses exactly two blobs: the
// serialized entry collection and the user settings.
package blob

import (
	"context"
	"errors"
)

// The two keys the persistence gateway uses.
const (
	KeyEntries  = "entries"
	KeySettings = "settings"
)

// ErrNotFound reports a key with no stored blob. Callers substitute a
// well-defined default for it; every other Get error means the blob is
// present but unreadable and must propagate.
var ErrNotFound = errors.New("blob not found")

// Store is a durable blob store addressed by key.
type Store interface {
	// Get returns the stored bytes for key, or an error wrapping
	// ErrNotFound when nothing has been stored yet.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put durably replaces the bytes stored under key.
	Put(ctx context.Context, key string, data []byte) error

	Close() error
}
