// Package cache stores compiled validation artifacts and the validators
// loaded from them.
package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

// Store persists artifacts by key.
// Implementations MUST be safe for concurrent calls.
type Store interface {
	// Get returns the data stored under key. A missing key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put stores data under key, replacing any previous value.
	Put(ctx context.Context, key string, data []byte) error
}

// ValidateKey checks that key is usable as a flat file name:
// non-empty, made of letters, digits, '.', '-' and '_', and not starting
// with a dot.
func ValidateKey(key string) error {
	if key == "" {
		return errors.New("key is empty")
	}
	if key[0] == '.' {
		return errors.New("key must not start with a dot")
	}
	for _, r := range key {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9':
		case r == '.', r == '-', r == '_':
		default:
			return fmt.Errorf("key contains %q", r)
		}
	}
	return nil
}

// MemoryStore keeps artifacts in memory.
// All operations are thread-safe.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemoryStore creates a new MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string][]byte),
	}
}

// Get implements Store.
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ValidateKey(key); err != nil {
		return nil, false, fmt.Errorf("invalid key %q: %w", key, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.items[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

// Put implements Store.
func (s *MemoryStore) Put(ctx context.Context, key string, data []byte) error {
	if err := ValidateKey(key); err != nil {
		return fmt.Errorf("invalid key %q: %w", key, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = append([]byte(nil), data...)
	return nil
}

// Len returns the number of stored items.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// lockFileName is the file guarding writes to a FileStore directory.
const lockFileName = ".valtype.lock"

// FileStore keeps artifacts as files in a directory. Writes are atomic
// (temp file + rename) and serialized across processes with a file lock,
// so several processes can share one cache directory.
type FileStore struct {
	// Root is the directory holding the artifacts.
	Root string

	// Mode is the file permission mode (default: 0644).
	Mode os.FileMode

	// LockRetry is the delay between attempts to take the file lock
	// (default: 50ms).
	LockRetry time.Duration

	mu   sync.Mutex
	lock *flock.Flock
}

// NewFileStore creates a FileStore rooted at root.
func NewFileStore(root string) *FileStore {
	return &FileStore{
		Root:      root,
		Mode:      0644,
		LockRetry: 50 * time.Millisecond,
	}
}

// Get implements Store.
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ValidateKey(key); err != nil {
		return nil, false, fmt.Errorf("invalid key %q: %w", key, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(filepath.Join(s.Root, key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return data, true, nil
}

// Put implements Store. It blocks until the directory lock is taken or
// ctx is done.
func (s *FileStore) Put(ctx context.Context, key string, data []byte) error {
	if err := ValidateKey(key); err != nil {
		return fmt.Errorf("invalid key %q: %w", key, err)
	}
	if err := os.MkdirAll(s.Root, 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	unlock, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	mode := s.Mode
	if mode == 0 {
		mode = 0644
	}

	tempFile, err := os.CreateTemp(s.Root, ".valtype-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	_, writeErr := tempFile.Write(data)
	closeErr := tempFile.Close()

	cleanupTempFile := func() {
		_ = os.Remove(tempPath)
	}

	if writeErr != nil {
		cleanupTempFile()
		return fmt.Errorf("failed to write temp file: %w", writeErr)
	}
	if closeErr != nil {
		cleanupTempFile()
		return fmt.Errorf("failed to close temp file: %w", closeErr)
	}
	if err := os.Chmod(tempPath, mode); err != nil {
		cleanupTempFile()
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := ctx.Err(); err != nil {
		cleanupTempFile()
		return err
	}
	if err := os.Rename(tempPath, filepath.Join(s.Root, key)); err != nil {
		cleanupTempFile()
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// acquire takes the in-process mutex, then the directory file lock.
func (s *FileStore) acquire(ctx context.Context) (func(), error) {
	s.mu.Lock()
	if s.lock == nil {
		s.lock = flock.New(filepath.Join(s.Root, lockFileName))
	}

	retry := s.LockRetry
	if retry <= 0 {
		retry = 50 * time.Millisecond
	}
	locked, err := s.lock.TryLockContext(ctx, retry)
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("failed to take lock on %s: %w", s.Root, err)
	}
	if !locked {
		s.mu.Unlock()
		return nil, fmt.Errorf("context done, unable to take lock on %s", s.Root)
	}
	return func() {
		_ = s.lock.Unlock()
		s.mu.Unlock()
	}, nil
}
