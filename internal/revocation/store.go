// Package revocation tracks revoked token IDs (jti claims) until the token
// they belong to would have expired anyway.
package revocation

import (
	"context"
	"errors"
	"time"
)

// ErrStoreClosed is returned by any operation on a closed store or manager.
var ErrStoreClosed = errors.New("revocation store is closed")

// Store is a set of revoked token IDs with per-entry expiry.
type Store interface {
	// Add marks tokenID revoked until expiresAt.
	Add(ctx context.Context, tokenID string, expiresAt time.Time) error

	// Contains reports whether tokenID is currently revoked. Expired entries
	// read as absent even before cleanup removes them.
	Contains(ctx context.Context, tokenID string) (bool, error)

	// Remove un-revokes tokenID.
	Remove(ctx context.Context, tokenID string) error

	// Cleanup drops expired entries and returns how many were removed.
	Cleanup(ctx context.Context) (int, error)

	// Size returns the number of live entries.
	Size(ctx context.Context) (int, error)

	// Close releases store resources.
	Close() error
}

// Config controls manager and store behavior.
type Config struct {
	// CleanupInterval is how often the manager sweeps expired entries.
	CleanupInterval time.Duration

	// MaxSize caps the in-memory store; oldest entries are evicted beyond it.
	MaxSize int

	// AutoCleanup starts the background sweep goroutine.
	AutoCleanup bool
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		CleanupInterval: 5 * time.Minute,
		MaxSize:         100000,
		AutoCleanup:     true,
	}
}
