package repository

import (
	"context"
	"time"

	"escapada/internal/domain"
)

// BookingRepository defines the persistence operations for bookings.
type BookingRepository interface {
	// Create persists a new booking.
	Create(ctx context.Context, booking *domain.Booking) error

	// GetByID retrieves a booking by ID.
	GetByID(ctx context.Context, id string) (*domain.Booking, error)

	// GetByTripID retrieves all bookings written for a trip.
	GetByTripID(ctx context.Context, tripID string) ([]*domain.Booking, error)

	// GetByPartnerID retrieves all bookings owed to a partner.
	GetByPartnerID(ctx context.Context, partnerID string) ([]*domain.Booking, error)

	// GetByTouristID retrieves a tourist's booking history.
	GetByTouristID(ctx context.Context, touristID string) ([]*domain.Booking, error)

	// MarkRedeemed flips a booking to REDEEMED at the given time.
	MarkRedeemed(ctx context.Context, id string, at time.Time) error
}
