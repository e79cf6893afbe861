package service

import (
	"context"
	"time"

	"escapada/internal/domain"
	"escapada/internal/repository"
)

// BookingService handles booking lookups and venue redemption.
type BookingService struct {
	bookingRepo         repository.BookingRepository
	notificationService *NotificationService
}

// NewBookingService creates a new BookingService.
func NewBookingService(bookingRepo repository.BookingRepository, notificationService *NotificationService) *BookingService {
	return &BookingService{
		bookingRepo:         bookingRepo,
		notificationService: notificationService,
	}
}

// GetBooking retrieves a booking by ID.
func (s *BookingService) GetBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	if bookingID == "" {
		return nil, ErrInvalidBookingID
	}

	return s.bookingRepo.GetByID(ctx, bookingID)
}

// ListByTourist retrieves a tourist's booking history.
func (s *BookingService) ListByTourist(ctx context.Context, touristID string) ([]*domain.Booking, error) {
	if touristID == "" {
		return nil, ErrInvalidTouristID
	}

	return s.bookingRepo.GetByTouristID(ctx, touristID)
}

// ListByPartner retrieves the bookings owed to a partner.
func (s *BookingService) ListByPartner(ctx context.Context, partnerID string) ([]*domain.Booking, error) {
	if partnerID == "" {
		return nil, ErrInvalidPartnerID
	}

	return s.bookingRepo.GetByPartnerID(ctx, partnerID)
}

// RedeemRequest contains the parameters for redeeming a booking at the venue.
type RedeemRequest struct {
	BookingID string
	PartnerID string
}

// Redeem marks a confirmed booking as redeemed when the partner scans it
// at service delivery. Only the owning partner may redeem, and only once.
func (s *BookingService) Redeem(ctx context.Context, req RedeemRequest) (*domain.Booking, error) {
	if req.BookingID == "" {
		return nil, ErrInvalidBookingID
	}

	if req.PartnerID == "" {
		return nil, ErrInvalidPartnerID
	}

	booking, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	if booking.PartnerID != req.PartnerID {
		return nil, ErrPartnerMismatch
	}

	if booking.Status == domain.BookingStatusRedeemed {
		return nil, ErrBookingAlreadyRedeemed
	}

	if booking.Status != domain.BookingStatusConfirmed {
		return nil, ErrBookingNotConfirmed
	}

	now := time.Now()
	if err := s.bookingRepo.MarkRedeemed(ctx, booking.ID, now); err != nil {
		return nil, err
	}

	booking.Status = domain.BookingStatusRedeemed
	booking.RedeemedAt = now

	if s.notificationService != nil {
		_ = s.notificationService.NotifyBookingRedeemed(ctx, booking)
	}

	return booking, nil
}
