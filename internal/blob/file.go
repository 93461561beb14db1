package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps each blob in its own file inside a data directory,
// so the entries and settings blobs remain two independent files with
// fixed names (entries.json, settings.json).
type FileStore struct {
	dir string
}

// NewFileStore creates the data directory if needed and returns a
// store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create data directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get reads the blob file for key. A missing file maps to ErrNotFound;
// a present but unreadable file propagates as-is.
func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("blob %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read blob %q: %w", key, err)
	}
	return data, nil
}

// Put writes the blob through a temp file and renames it into place,
// so a crash mid-write never leaves a truncated blob behind. The two
// gateway blobs are still written independently; cross-file atomicity
// is not provided.
func (s *FileStore) Put(_ context.Context, key string, data []byte) error {
	path := s.path(key)
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp blob %q: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename blob %q into place: %w", key, err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
