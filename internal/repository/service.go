package repository

import (
	"context"

	"escapada/internal/domain"
)

// ServiceRepository defines the persistence operations for partner offerings.
type ServiceRepository interface {
	// Create persists a new service.
	Create(ctx context.Context, service *domain.Service) error

	// GetByID retrieves a service by ID.
	GetByID(ctx context.Context, id string) (*domain.Service, error)

	// GetByPartnerID retrieves all services published by a partner.
	GetByPartnerID(ctx context.Context, partnerID string) ([]*domain.Service, error)

	// GetAll retrieves the full catalog.
	GetAll(ctx context.Context) ([]*domain.Service, error)
}
