package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"escapada/internal/domain"
	"escapada/internal/redis"
	"escapada/internal/repository"
)

// CatalogService handles partner service offerings.
type CatalogService struct {
	serviceRepo repository.ServiceRepository
	profileRepo repository.ProfileRepository
	cacheStore  redis.CacheStoreInterface
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(
	serviceRepo repository.ServiceRepository,
	profileRepo repository.ProfileRepository,
	cacheStore redis.CacheStoreInterface,
) *CatalogService {
	return &CatalogService{
		serviceRepo: serviceRepo,
		profileRepo: profileRepo,
		cacheStore:  cacheStore,
	}
}

// PublishServiceRequest contains the parameters for publishing an offering.
type PublishServiceRequest struct {
	PartnerID   string
	Title       string
	Description string
	Price       float64
	Category    domain.ServiceCategory
}

// PublishService creates a new offering for a partner.
func (s *CatalogService) PublishService(ctx context.Context, req PublishServiceRequest) (*domain.Service, error) {
	if req.PartnerID == "" {
		return nil, ErrInvalidPartnerID
	}

	if req.Price < 0 {
		return nil, ErrInvalidServicePrice
	}

	// The publisher must be a known partner account.
	if _, err := s.profileRepo.GetByID(ctx, req.PartnerID); err != nil {
		return nil, err
	}

	service := &domain.Service{
		ID:          uuid.New().String(),
		PartnerID:   req.PartnerID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		CreatedAt:   time.Now(),
	}

	if err := s.serviceRepo.Create(ctx, service); err != nil {
		return nil, err
	}

	// Warm the cache so the next quote sees the new offering immediately.
	_ = s.cacheStore.SetService(ctx, &redis.CachedService{
		ID:        service.ID,
		PartnerID: service.PartnerID,
		Title:     service.Title,
		Price:     service.Price,
		Category:  string(service.Category),
	})

	return service, nil
}

// GetService retrieves a single offering.
func (s *CatalogService) GetService(ctx context.Context, serviceID string) (*domain.Service, error) {
	if serviceID == "" {
		return nil, ErrInvalidServiceID
	}

	return s.serviceRepo.GetByID(ctx, serviceID)
}

// ListServices returns the catalog, optionally filtered by partner.
func (s *CatalogService) ListServices(ctx context.Context, partnerID string) ([]*domain.Service, error) {
	if partnerID != "" {
		return s.serviceRepo.GetByPartnerID(ctx, partnerID)
	}
	return s.serviceRepo.GetAll(ctx)
}
