package revocation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "jwt:revoked:"

// redisStore keeps revoked IDs as individual Redis keys with a TTL matching
// the token's remaining lifetime, so Redis expires entries on its own and
// Cleanup has nothing to do.
type redisStore struct {
	client redis.UniversalClient
	prefix string

	mu     sync.RWMutex
	closed bool
}

// NewRedisStore returns a Store backed by the given Redis client. The client
// stays owned by the caller and is not closed by Close. An empty prefix
// selects "jwt:revoked:".
func NewRedisStore(client redis.UniversalClient, prefix string) Store {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &redisStore{client: client, prefix: prefix}
}

func (r *redisStore) Add(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if err := r.checkClosed(); err != nil {
		return err
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// Already expired; nothing to revoke.
		return nil
	}

	if err := r.client.Set(ctx, r.prefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis revocation add: %w", err)
	}
	return nil
}

func (r *redisStore) Contains(ctx context.Context, tokenID string) (bool, error) {
	if err := r.checkClosed(); err != nil {
		return false, err
	}

	n, err := r.client.Exists(ctx, r.prefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("redis revocation lookup: %w", err)
	}
	return n > 0, nil
}

func (r *redisStore) Remove(ctx context.Context, tokenID string) error {
	if err := r.checkClosed(); err != nil {
		return err
	}

	if err := r.client.Del(ctx, r.prefix+tokenID).Err(); err != nil {
		return fmt.Errorf("redis revocation remove: %w", err)
	}
	return nil
}

func (r *redisStore) Cleanup(context.Context) (int, error) {
	// Redis TTLs expire entries server-side.
	return 0, r.checkClosed()
}

func (r *redisStore) Size(ctx context.Context) (int, error) {
	if err := r.checkClosed(); err != nil {
		return 0, err
	}

	var (
		cursor uint64
		total  int
	)
	for {
		keys, next, err := r.client.Scan(ctx, cursor, r.prefix+"*", 1000).Result()
		if err != nil {
			return 0, fmt.Errorf("redis revocation scan: %w", err)
		}
		total += len(keys)
		if next == 0 {
			return total, nil
		}
		cursor = next
	}
}

func (r *redisStore) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *redisStore) checkClosed() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return ErrStoreClosed
	}
	return nil
}
