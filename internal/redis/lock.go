package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore handles distributed locking in Redis.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireCheckoutLock attempts to acquire the payment lock for a trip.
// Returns true if the lock was acquired, false if a checkout for the same
// trip is already in flight.
func (s *LockStore) AcquireCheckoutLock(ctx context.Context, tripID string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("lock:checkout:%s", tripID)

	ok, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// ReleaseCheckoutLock releases the payment lock for a trip.
func (s *LockStore) ReleaseCheckoutLock(ctx context.Context, tripID string) error {
	key := fmt.Sprintf("lock:checkout:%s", tripID)

	return s.client.Del(ctx, key).Err()
}
