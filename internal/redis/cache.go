package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStore handles entity caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// Cache TTL constants
const (
	ClassificationCacheTTL = 12 * time.Hour   // BIN ranges change rarely
	ServiceCacheTTL        = 60 * time.Second // Partner catalog edits should surface quickly
)

// Key prefixes
const (
	binCachePrefix     = "cache:bin:"
	serviceCachePrefix = "cache:service:"
)

// CachedClassification is a cached BIN classification.
type CachedClassification struct {
	Prefix  string `json:"prefix"`
	Foreign bool   `json:"foreign"`
}

// CachedService is a cached partner offering.
type CachedService struct {
	ID        string  `json:"id"`
	PartnerID string  `json:"partner_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
}

// GetClassification retrieves a BIN classification from cache.
// Returns nil on a cache miss.
func (s *CacheStore) GetClassification(ctx context.Context, prefix string) (*CachedClassification, error) {
	key := binCachePrefix + prefix
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var classification CachedClassification
	if err := json.Unmarshal(data, &classification); err != nil {
		return nil, err
	}
	return &classification, nil
}

// SetClassification stores a BIN classification in cache.
func (s *CacheStore) SetClassification(ctx context.Context, classification *CachedClassification) error {
	key := binCachePrefix + classification.Prefix
	data, err := json.Marshal(classification)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, ClassificationCacheTTL).Err()
}

// GetService retrieves a service from cache. Returns nil on a cache miss.
func (s *CacheStore) GetService(ctx context.Context, serviceID string) (*CachedService, error) {
	key := serviceCachePrefix + serviceID
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var service CachedService
	if err := json.Unmarshal(data, &service); err != nil {
		return nil, err
	}
	return &service, nil
}

// SetService stores a service in cache.
func (s *CacheStore) SetService(ctx context.Context, service *CachedService) error {
	key := serviceCachePrefix + service.ID
	data, err := json.Marshal(service)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, ServiceCacheTTL).Err()
}

// InvalidateService removes a service from cache.
func (s *CacheStore) InvalidateService(ctx context.Context, serviceID string) error {
	key := serviceCachePrefix + serviceID
	return s.client.Del(ctx, key).Err()
}
