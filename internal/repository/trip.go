package repository

import (
	"context"

	"escapada/internal/domain"
)

// TripRepository defines the persistence operations for trips and their items.
type TripRepository interface {
	// Create persists a new trip.
	Create(ctx context.Context, trip *domain.Trip) error

	// GetByID retrieves a trip by ID.
	GetByID(ctx context.Context, id string) (*domain.Trip, error)

	// GetActiveByTouristID retrieves the tourist's most recent active trip.
	// Returns nil if the tourist has no active trip.
	GetActiveByTouristID(ctx context.Context, touristID string) (*domain.Trip, error)

	// UpdateStatusAndTotal flips the trip status and records its final total.
	UpdateStatusAndTotal(ctx context.Context, id string, status domain.TripStatus, total float64) error

	// AddItem persists a new trip item.
	AddItem(ctx context.Context, item *domain.TripItem) error

	// GetItems retrieves the items of a trip ordered by day and time.
	GetItems(ctx context.Context, tripID string) ([]*domain.TripItem, error)
}
