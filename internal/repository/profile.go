package repository

import (
	"context"

	"escapada/internal/domain"
)

// ProfileRepository defines the persistence operations for accounts.
type ProfileRepository interface {
	// Create persists a new profile.
	Create(ctx context.Context, profile *domain.Profile) error

	// GetByID retrieves a profile by ID.
	GetByID(ctx context.Context, id string) (*domain.Profile, error)

	// GetByEmail retrieves a profile by email.
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)

	// GetAll retrieves all profiles.
	GetAll(ctx context.Context) ([]*domain.Profile, error)
}
