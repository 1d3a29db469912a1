// Package filestore provides a plain-text implementation of OutlineRepository.
package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/runoshun/whiteboard/internal/domain"
)

// Store implements domain.OutlineRepository using a todo.txt file.
// Writers are serialized with flock(2) on a sibling lock file, and every
// write goes through a temp file and rename so readers never see a partial
// outline.
type Store struct {
	path     string
	lockPath string
}

// New creates a new Store for the given outline file.
// The file does not need to exist; Initialize creates it.
func New(path string) *Store {
	return &Store{
		path:     path,
		lockPath: domain.LockPath(path),
	}
}

// Path returns the outline file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the outline text.
func (s *Store) Load(_ context.Context) (string, error) {
	var text string
	err := s.withLock(syscall.LOCK_SH, func() error {
		var err error
		text, err = s.read()
		return err
	})
	return text, err
}

// Save replaces the outline text.
func (s *Store) Save(_ context.Context, text string) error {
	return s.withLock(syscall.LOCK_EX, func() error {
		if _, err := os.Stat(s.path); os.IsNotExist(err) {
			return domain.ErrNotInitialized
		}
		return s.write(text)
	})
}

// Update runs fn on the current text under an exclusive lock and writes the result.
func (s *Store) Update(ctx context.Context, fn func(text string) (string, error)) error {
	return s.withLock(syscall.LOCK_EX, func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		before, err := s.read()
		if err != nil {
			return err
		}
		after, err := fn(before)
		if err != nil {
			return err
		}
		if after == strings.TrimRight(before, "\n") || after == before {
			return nil
		}
		return s.write(after)
	})
}

// IsInitialized checks if the outline file exists.
func (s *Store) IsInitialized() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Initialize creates an empty outline file if it doesn't exist.
// Returns true if the file was created.
func (s *Store) Initialize() (bool, error) {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return false, fmt.Errorf("create directory: %w", err)
	}

	created := false
	err := s.withLock(syscall.LOCK_EX, func() error {
		if _, err := os.Stat(s.path); err == nil {
			return nil
		}
		created = true
		return s.write("")
	})
	return created, err
}

func (s *Store) withLock(lockType int, fn func() error) error {
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer func() { _ = lock.Close() }()

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer func() { _ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN) }()

	return fn()
}

func (s *Store) read() (string, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", domain.ErrNotInitialized
		}
		return "", fmt.Errorf("read outline file: %w", err)
	}
	return string(content), nil
}

func (s *Store) write(text string) error {
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	// Write to temp file first, then rename for atomicity
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.WriteString(text); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Ensure Store implements the ports.
var (
	_ domain.OutlineRepository = (*Store)(nil)
	_ domain.StoreInitializer  = (*Store)(nil)
)
