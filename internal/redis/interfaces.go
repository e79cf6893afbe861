package redis

import (
	"context"
	"time"
)

// CacheStoreInterface defines the interface for classification and catalog caching.
type CacheStoreInterface interface {
	GetClassification(ctx context.Context, prefix string) (*CachedClassification, error)
	SetClassification(ctx context.Context, classification *CachedClassification) error
	GetService(ctx context.Context, serviceID string) (*CachedService, error)
	SetService(ctx context.Context, service *CachedService) error
	InvalidateService(ctx context.Context, serviceID string) error
}

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquireCheckoutLock(ctx context.Context, tripID string, ttl time.Duration) (bool, error)
	ReleaseCheckoutLock(ctx context.Context, tripID string) error
}

// Ensure concrete types implement interfaces.
var (
	_ CacheStoreInterface = (*CacheStore)(nil)
	_ LockStoreInterface  = (*LockStore)(nil)
)
