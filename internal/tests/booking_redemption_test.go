package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"escapada/internal/domain"
	"escapada/internal/service"
)

// ──────────────────────────────────────────────
// 4. BOOKING REDEMPTION
// ──────────────────────────────────────────────

func newBookingService(bookingRepo *MockBookingRepository) *service.BookingService {
	return service.NewBookingService(bookingRepo, service.NewNotificationService())
}

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:           "booking-1",
		TripID:       "trip-1",
		ServiceID:    "svc-1",
		PartnerID:    "partner-1",
		TouristID:    "tourist-1",
		OrderCode:    "ESC-4F9C2",
		ServicePrice: 850,
		PlatformFee:  127.5,
		PartnerNet:   722.5,
		Status:       domain.BookingStatusConfirmed,
		CreatedAt:    time.Now(),
	}
}

func TestRedeem_ByOwningPartner_Succeeds(t *testing.T) {
	t.Parallel()

	bookingRepo := NewMockBookingRepository()
	bookingRepo.AddBooking(confirmedBooking())

	svc := newBookingService(bookingRepo)

	booking, err := svc.Redeem(context.Background(), service.RedeemRequest{
		BookingID: "booking-1",
		PartnerID: "partner-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.Status != domain.BookingStatusRedeemed {
		t.Errorf("expected status %s, got %s", domain.BookingStatusRedeemed, booking.Status)
	}
	if booking.RedeemedAt.IsZero() {
		t.Error("expected redemption timestamp to be set")
	}

	stored := bookingRepo.GetBooking("booking-1")
	if stored.Status != domain.BookingStatusRedeemed {
		t.Errorf("expected stored status %s, got %s", domain.BookingStatusRedeemed, stored.Status)
	}
}

func TestRedeem_ByWrongPartner_Rejected(t *testing.T) {
	t.Parallel()

	bookingRepo := NewMockBookingRepository()
	bookingRepo.AddBooking(confirmedBooking())

	svc := newBookingService(bookingRepo)

	_, err := svc.Redeem(context.Background(), service.RedeemRequest{
		BookingID: "booking-1",
		PartnerID: "partner-2",
	})
	if !errors.Is(err, service.ErrPartnerMismatch) {
		t.Errorf("expected ErrPartnerMismatch, got %v", err)
	}

	// Booking must be untouched.
	if got := bookingRepo.GetBooking("booking-1").Status; got != domain.BookingStatusConfirmed {
		t.Errorf("expected booking to stay CONFIRMED, got %s", got)
	}
}

func TestRedeem_Twice_Rejected(t *testing.T) {
	t.Parallel()

	bookingRepo := NewMockBookingRepository()
	bookingRepo.AddBooking(confirmedBooking())

	svc := newBookingService(bookingRepo)
	ctx := context.Background()

	req := service.RedeemRequest{BookingID: "booking-1", PartnerID: "partner-1"}

	if _, err := svc.Redeem(ctx, req); err != nil {
		t.Fatalf("first redemption failed: %v", err)
	}

	_, err := svc.Redeem(ctx, req)
	if !errors.Is(err, service.ErrBookingAlreadyRedeemed) {
		t.Errorf("expected ErrBookingAlreadyRedeemed, got %v", err)
	}

	if bookingRepo.MarkRedeemedCallCount != 1 {
		t.Errorf("expected 1 redemption write, got %d", bookingRepo.MarkRedeemedCallCount)
	}
}

func TestRedeem_CancelledBooking_Rejected(t *testing.T) {
	t.Parallel()

	bookingRepo := NewMockBookingRepository()
	booking := confirmedBooking()
	booking.Status = domain.BookingStatusCancelled
	bookingRepo.AddBooking(booking)

	svc := newBookingService(bookingRepo)

	_, err := svc.Redeem(context.Background(), service.RedeemRequest{
		BookingID: "booking-1",
		PartnerID: "partner-1",
	})
	if !errors.Is(err, service.ErrBookingNotConfirmed) {
		t.Errorf("expected ErrBookingNotConfirmed, got %v", err)
	}
}

func TestRedeem_UnknownBooking_Fails(t *testing.T) {
	t.Parallel()

	svc := newBookingService(NewMockBookingRepository())

	_, err := svc.Redeem(context.Background(), service.RedeemRequest{
		BookingID: "nonexistent",
		PartnerID: "partner-1",
	})
	if err == nil {
		t.Error("expected error for unknown booking")
	}
}

func TestRedeem_MissingIDs_Rejected(t *testing.T) {
	t.Parallel()

	svc := newBookingService(NewMockBookingRepository())
	ctx := context.Background()

	if _, err := svc.Redeem(ctx, service.RedeemRequest{PartnerID: "partner-1"}); !errors.Is(err, service.ErrInvalidBookingID) {
		t.Errorf("expected ErrInvalidBookingID, got %v", err)
	}
	if _, err := svc.Redeem(ctx, service.RedeemRequest{BookingID: "booking-1"}); !errors.Is(err, service.ErrInvalidPartnerID) {
		t.Errorf("expected ErrInvalidPartnerID, got %v", err)
	}
}

func TestListBookings_ByPartnerAndTourist(t *testing.T) {
	t.Parallel()

	bookingRepo := NewMockBookingRepository()
	bookingRepo.AddBooking(&domain.Booking{ID: "b-1", PartnerID: "partner-1", TouristID: "tourist-1", Status: domain.BookingStatusConfirmed})
	bookingRepo.AddBooking(&domain.Booking{ID: "b-2", PartnerID: "partner-1", TouristID: "tourist-2", Status: domain.BookingStatusConfirmed})
	bookingRepo.AddBooking(&domain.Booking{ID: "b-3", PartnerID: "partner-2", TouristID: "tourist-1", Status: domain.BookingStatusConfirmed})

	svc := newBookingService(bookingRepo)
	ctx := context.Background()

	byPartner, err := svc.ListByPartner(ctx, "partner-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(byPartner) != 2 {
		t.Errorf("expected 2 bookings for partner-1, got %d", len(byPartner))
	}

	byTourist, err := svc.ListByTourist(ctx, "tourist-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(byTourist) != 2 {
		t.Errorf("expected 2 bookings for tourist-1, got %d", len(byTourist))
	}
}
