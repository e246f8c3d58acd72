// Package store provides persistence for session records behind a
// small Repository interface with interchangeable local (SQLite) and
// remote (hosted API) implementations.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/solomonaboyeji/driving-star-tracker/internal/session"
)

// ErrNotFound is returned when an operation names a session id that is
// not in the store.
var ErrNotFound = errors.New("session not found")

// RepositoryError wraps any failure at the persistence boundary
// (storage, network, permission). The core never retries; callers
// decide what to surface.
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository %s: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// Repository persists and retrieves session records. List returns
// sessions most recent first; after a completed Create or Delete, a
// subsequent List reflects the write.
type Repository interface {
	// List returns all sessions sorted by date descending.
	List(ctx context.Context) ([]session.Session, error)

	// Create persists a new session. The record is immutable once stored.
	Create(ctx context.Context, s session.Session) error

	// Delete removes a session by id. Unknown ids return ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error

	// Close releases the underlying connection.
	Close() error
}

// DefaultDBPath resolves the database file path in priority order:
// 1. DRIVESTAR_DB environment variable
// 2. $XDG_DATA_HOME/drivestar/drivestar.db
// 3. ~/.local/share/drivestar/drivestar.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("DRIVESTAR_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "drivestar", "drivestar.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
