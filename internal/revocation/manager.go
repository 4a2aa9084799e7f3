package revocation

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrEmptyTokenID is returned when a revocation is attempted without a jti.
var ErrEmptyTokenID = errors.New("token ID cannot be empty")

// Manager wraps a Store with input checks and an optional background sweep
// of expired entries.
type Manager struct {
	store  Store
	config Config

	mu     sync.RWMutex
	closed bool

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
}

// NewManager wraps store. With config.AutoCleanup set, a goroutine sweeps
// expired entries every CleanupInterval until Close.
func NewManager(store Store, config Config) *Manager {
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = DefaultConfig().CleanupInterval
	}

	m := &Manager{
		store:  store,
		config: config,
		stop:   make(chan struct{}),
	}

	if config.AutoCleanup {
		m.ticker = time.NewTicker(config.CleanupInterval)
		m.wg.Add(1)
		go m.sweepLoop()
	}

	return m
}

// Revoke marks tokenID revoked until expiresAt.
func (m *Manager) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return ErrStoreClosed
	}
	if tokenID == "" {
		return ErrEmptyTokenID
	}

	return m.store.Add(ctx, tokenID, expiresAt)
}

// IsRevoked reports whether tokenID is currently revoked. An empty ID is
// never revoked.
func (m *Manager) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return false, ErrStoreClosed
	}
	if tokenID == "" {
		return false, nil
	}

	return m.store.Contains(ctx, tokenID)
}

// Close stops the sweep goroutine and closes the underlying store.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true

	if m.ticker != nil {
		m.ticker.Stop()
		close(m.stop)
		m.wg.Wait()
	}

	return m.store.Close()
}

func (m *Manager) sweepLoop() {
	defer m.wg.Done()

	for {
		select {
		case <-m.ticker.C:
			// Sweep errors are transient (e.g. store briefly unavailable)
			// and retried on the next tick.
			_, _ = m.store.Cleanup(context.Background())
		case <-m.stop:
			return
		}
	}
}
