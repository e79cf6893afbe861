package tests

import (
	"context"
	"errors"
	"math"
	"testing"

	"escapada/internal/checkout"
	"escapada/internal/domain"
	"escapada/internal/service"
)

// ──────────────────────────────────────────────
// 1. CARD CLASSIFICATION
// ──────────────────────────────────────────────

func newCheckoutService(
	tripRepo *MockTripRepository,
	serviceRepo *MockServiceRepository,
	bookingRepo *MockBookingRepository,
	cacheStore *MockCacheStore,
	lockStore *MockLockStore,
) *service.CheckoutService {
	return service.NewCheckoutService(
		nil, // *sql.DB is only touched by the commit path
		tripRepo,
		serviceRepo,
		bookingRepo,
		cacheStore,
		lockStore,
		service.NewNotificationService(),
	)
}

func TestClassifyCard_DomesticAndForeign(t *testing.T) {
	t.Parallel()

	svc := newCheckoutService(
		NewMockTripRepository(),
		NewMockServiceRepository(),
		NewMockBookingRepository(),
		NewMockCacheStore(),
		NewMockLockStore(),
	)
	ctx := context.Background()

	testCases := []struct {
		name        string
		cardNumber  string
		wantForeign bool
	}{
		{"domestic issuer", "5164000000000000", false},
		{"domestic issuer with separators", "5896-5700-0000-0000", false},
		{"foreign visa", "4111111111111111", true},
		{"just below domestic range", "5163991111111111", true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			classification, err := svc.ClassifyCard(ctx, tc.cardNumber)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if classification.Foreign != tc.wantForeign {
				t.Errorf("expected foreign=%v, got %v", tc.wantForeign, classification.Foreign)
			}
		})
	}
}

func TestClassifyCard_TooFewDigits_Rejected(t *testing.T) {
	t.Parallel()

	svc := newCheckoutService(
		NewMockTripRepository(),
		NewMockServiceRepository(),
		NewMockBookingRepository(),
		NewMockCacheStore(),
		NewMockLockStore(),
	)

	_, err := svc.ClassifyCard(context.Background(), "41111")
	if !errors.Is(err, service.ErrCardNumberTooShort) {
		t.Errorf("expected ErrCardNumberTooShort, got %v", err)
	}
}

func TestClassifyCard_ResultIsCached(t *testing.T) {
	t.Parallel()

	cacheStore := NewMockCacheStore()
	svc := newCheckoutService(
		NewMockTripRepository(),
		NewMockServiceRepository(),
		NewMockBookingRepository(),
		cacheStore,
		NewMockLockStore(),
	)
	ctx := context.Background()

	if _, err := svc.ClassifyCard(ctx, "4111111111111111"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !cacheStore.HasClassification("411111") {
		t.Error("expected classification to be cached after first lookup")
	}

	// Second call must hit the cache, not write again.
	if _, err := svc.ClassifyCard(ctx, "4111111111111111"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cacheStore.SetClassificationCallCount != 1 {
		t.Errorf("expected 1 cache write, got %d", cacheStore.SetClassificationCallCount)
	}
}

// ──────────────────────────────────────────────
// 2. QUOTE FLOW
// ──────────────────────────────────────────────

// seedTrip wires a trip with the given services into the mocks.
func seedTrip(tripRepo *MockTripRepository, serviceRepo *MockServiceRepository, trip *domain.Trip, services []*domain.Service, planB map[string]bool) {
	tripRepo.AddTrip(trip)
	for _, svc := range services {
		serviceRepo.AddService(svc)
		_ = tripRepo.AddItem(context.Background(), &domain.TripItem{
			ID:        "item-" + svc.ID,
			TripID:    trip.ID,
			ServiceID: svc.ID,
			PlanB:     planB[svc.ID],
		})
	}
}

func TestQuoteTrip_ForeignCard_AppliesBenefits(t *testing.T) {
	t.Parallel()

	tripRepo := NewMockTripRepository()
	serviceRepo := NewMockServiceRepository()
	svc := newCheckoutService(tripRepo, serviceRepo, NewMockBookingRepository(), NewMockCacheStore(), NewMockLockStore())

	trip := &domain.Trip{ID: "trip-1", TouristID: "tourist-1", Status: domain.TripStatusActive, Adults: 1}
	seedTrip(tripRepo, serviceRepo, trip, []*domain.Service{
		{ID: "svc-1", PartnerID: "partner-1", Title: "Posada del Faro", Price: 1000, Category: domain.CategoryAccommodation},
		{ID: "svc-2", PartnerID: "partner-2", Title: "Parrillada completa", Price: 500, Category: domain.CategoryGastronomy},
		{ID: "svc-3", PartnerID: "partner-3", Title: "Cabalgata por la sierra", Price: 500, Category: domain.CategoryOutdoor},
	}, nil)

	quote, err := svc.QuoteTrip(context.Background(), service.QuoteTripRequest{
		TripID:     "trip-1",
		CardNumber: "4111111111111111",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quote.Subtotal != 2000 {
		t.Errorf("expected subtotal 2000, got %v", quote.Subtotal)
	}
	// 220 + 110 + 50
	if quote.Discount != 380 {
		t.Errorf("expected discount 380, got %v", quote.Discount)
	}
	if quote.FinalTotal != 1620 {
		t.Errorf("expected final total 1620, got %v", quote.FinalTotal)
	}
	if quote.Deposit != 243 {
		t.Errorf("expected deposit 243, got %v", quote.Deposit)
	}
	if quote.Balance != 1377 {
		t.Errorf("expected balance 1377, got %v", quote.Balance)
	}
	if !quote.BenefitApplied {
		t.Error("expected benefit to apply for foreign card")
	}
	if len(quote.Breakdown) != 3 {
		t.Errorf("expected 3 breakdown lines, got %d", len(quote.Breakdown))
	}
}

func TestQuoteTrip_DomesticCard_NoBenefit(t *testing.T) {
	t.Parallel()

	tripRepo := NewMockTripRepository()
	serviceRepo := NewMockServiceRepository()
	svc := newCheckoutService(tripRepo, serviceRepo, NewMockBookingRepository(), NewMockCacheStore(), NewMockLockStore())

	trip := &domain.Trip{ID: "trip-1", TouristID: "tourist-1", Status: domain.TripStatusActive, Adults: 1}
	seedTrip(tripRepo, serviceRepo, trip, []*domain.Service{
		{ID: "svc-1", PartnerID: "partner-1", Title: "Posada del Faro", Price: 1000, Category: domain.CategoryAccommodation},
	}, nil)

	quote, err := svc.QuoteTrip(context.Background(), service.QuoteTripRequest{
		TripID:     "trip-1",
		CardNumber: "5164000000000000",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quote.Discount != 0 {
		t.Errorf("expected no discount for domestic card, got %v", quote.Discount)
	}
	if quote.FinalTotal != 1000 {
		t.Errorf("expected final total 1000, got %v", quote.FinalTotal)
	}
	if quote.BenefitApplied {
		t.Error("benefit should not apply for a domestic card on a non-exempt trip")
	}
}

func TestQuoteTrip_NoCardYet_PricesAsDomestic(t *testing.T) {
	t.Parallel()

	tripRepo := NewMockTripRepository()
	serviceRepo := NewMockServiceRepository()
	svc := newCheckoutService(tripRepo, serviceRepo, NewMockBookingRepository(), NewMockCacheStore(), NewMockLockStore())

	trip := &domain.Trip{ID: "trip-1", TouristID: "tourist-1", Status: domain.TripStatusActive, Adults: 1}
	seedTrip(tripRepo, serviceRepo, trip, []*domain.Service{
		{ID: "svc-1", PartnerID: "partner-1", Title: "Posada del Faro", Price: 1000, Category: domain.CategoryAccommodation},
	}, nil)

	quote, err := svc.QuoteTrip(context.Background(), service.QuoteTripRequest{TripID: "trip-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quote.ForeignCard {
		t.Error("expected domestic pricing before any card digits are entered")
	}
	if quote.FinalTotal != 1000 {
		t.Errorf("expected final total 1000, got %v", quote.FinalTotal)
	}
}

func TestQuoteTrip_PlanB_AddsGuaranteeLine(t *testing.T) {
	t.Parallel()

	tripRepo := NewMockTripRepository()
	serviceRepo := NewMockServiceRepository()
	svc := newCheckoutService(tripRepo, serviceRepo, NewMockBookingRepository(), NewMockCacheStore(), NewMockLockStore())

	trip := &domain.Trip{ID: "trip-1", TouristID: "tourist-1", Status: domain.TripStatusActive, Adults: 1}
	seedTrip(tripRepo, serviceRepo, trip, []*domain.Service{
		{ID: "svc-1", PartnerID: "partner-1", Title: "Hotel del Puerto", Price: 500, Category: domain.CategoryAccommodation},
	}, map[string]bool{"svc-1": true})

	quote, err := svc.QuoteTrip(context.Background(), service.QuoteTripRequest{
		TripID:     "trip-1",
		CardNumber: "4111111111111111",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(quote.Items) != 2 {
		t.Fatalf("expected 2 items including guarantee, got %d", len(quote.Items))
	}

	guarantee := quote.Items[len(quote.Items)-1]
	if guarantee.ID != checkout.GuaranteeItemID || !guarantee.Synthetic {
		t.Errorf("expected synthetic guarantee line, got %+v", guarantee)
	}
	if guarantee.Price != 75 {
		t.Errorf("expected guarantee price 75, got %v", guarantee.Price)
	}

	// The guarantee never enters the subtotal, the discount, or the total.
	if quote.Subtotal != 500 {
		t.Errorf("expected subtotal 500, got %v", quote.Subtotal)
	}
	if quote.Discount != 110 {
		t.Errorf("expected discount 110, got %v", quote.Discount)
	}
	if quote.FinalTotal != 390 {
		t.Errorf("expected final total 390, got %v", quote.FinalTotal)
	}
	if quote.Deposit != 59 {
		t.Errorf("expected deposit 59, got %v", quote.Deposit)
	}
}

func TestQuoteTrip_VATExemptTrip_DomesticCardStillDiscounted(t *testing.T) {
	t.Parallel()

	tripRepo := NewMockTripRepository()
	serviceRepo := NewMockServiceRepository()
	svc := newCheckoutService(tripRepo, serviceRepo, NewMockBookingRepository(), NewMockCacheStore(), NewMockLockStore())

	trip := &domain.Trip{ID: "trip-1", TouristID: "tourist-1", Status: domain.TripStatusActive, Adults: 1, VATExempt: true}
	seedTrip(tripRepo, serviceRepo, trip, []*domain.Service{
		{ID: "svc-1", PartnerID: "partner-1", Title: "Posada del Faro", Price: 1000, Category: domain.CategoryAccommodation},
	}, nil)

	quote, err := svc.QuoteTrip(context.Background(), service.QuoteTripRequest{
		TripID:     "trip-1",
		CardNumber: "5164000000000000",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quote.ForeignCard {
		t.Error("card should classify as domestic")
	}
	if !quote.BenefitApplied {
		t.Error("expected benefit to apply on a VAT-exempt trip")
	}
	if quote.Discount != 220 {
		t.Errorf("expected discount 220, got %v", quote.Discount)
	}
}

func TestQuoteTrip_UnknownTrip_Fails(t *testing.T) {
	t.Parallel()

	svc := newCheckoutService(
		NewMockTripRepository(),
		NewMockServiceRepository(),
		NewMockBookingRepository(),
		NewMockCacheStore(),
		NewMockLockStore(),
	)

	if _, err := svc.QuoteTrip(context.Background(), service.QuoteTripRequest{TripID: "nope"}); err == nil {
		t.Error("expected error for unknown trip")
	}
}

// ──────────────────────────────────────────────
// 3. PAYMENT CONFIRMATION GUARDS
// ──────────────────────────────────────────────

func TestConfirmPayment_ShortCardNumber_Rejected(t *testing.T) {
	t.Parallel()

	svc := newCheckoutService(
		NewMockTripRepository(),
		NewMockServiceRepository(),
		NewMockBookingRepository(),
		NewMockCacheStore(),
		NewMockLockStore(),
	)

	_, err := svc.ConfirmPayment(context.Background(), service.ConfirmPaymentRequest{
		TripID:     "trip-1",
		CardNumber: "411111", // enough to classify, not enough to charge
	})
	if !errors.Is(err, service.ErrCardNumberInvalid) {
		t.Errorf("expected ErrCardNumberInvalid, got %v", err)
	}
}

func TestConfirmPayment_TripNotActive_Rejected(t *testing.T) {
	t.Parallel()

	tripRepo := NewMockTripRepository()
	svc := newCheckoutService(tripRepo, NewMockServiceRepository(), NewMockBookingRepository(), NewMockCacheStore(), NewMockLockStore())

	tripRepo.AddTrip(&domain.Trip{ID: "trip-1", TouristID: "tourist-1", Status: domain.TripStatusConfirmed, Adults: 1})

	_, err := svc.ConfirmPayment(context.Background(), service.ConfirmPaymentRequest{
		TripID:     "trip-1",
		CardNumber: "4111111111111111",
	})
	if !errors.Is(err, service.ErrTripNotActive) {
		t.Errorf("expected ErrTripNotActive, got %v", err)
	}
}

func TestConfirmPayment_ConcurrentAttempt_Blocked(t *testing.T) {
	t.Parallel()

	tripRepo := NewMockTripRepository()
	lockStore := NewMockLockStore()
	lockStore.ForceAcquireFailure = true

	svc := newCheckoutService(tripRepo, NewMockServiceRepository(), NewMockBookingRepository(), NewMockCacheStore(), lockStore)

	tripRepo.AddTrip(&domain.Trip{ID: "trip-1", TouristID: "tourist-1", Status: domain.TripStatusActive, Adults: 1})

	_, err := svc.ConfirmPayment(context.Background(), service.ConfirmPaymentRequest{
		TripID:     "trip-1",
		CardNumber: "4111111111111111",
	})
	if !errors.Is(err, service.ErrCheckoutInFlight) {
		t.Errorf("expected ErrCheckoutInFlight, got %v", err)
	}
}

func TestConfirmPayment_SplitIntegrityFailure_AbortsWithoutWrites(t *testing.T) {
	t.Parallel()

	tripRepo := NewMockTripRepository()
	serviceRepo := NewMockServiceRepository()
	bookingRepo := NewMockBookingRepository()
	lockStore := NewMockLockStore()

	svc := newCheckoutService(tripRepo, serviceRepo, bookingRepo, NewMockCacheStore(), lockStore)

	trip := &domain.Trip{ID: "trip-1", TouristID: "tourist-1", Status: domain.TripStatusActive, Adults: 1}
	// A corrupted price poisons the split reconstruction.
	seedTrip(tripRepo, serviceRepo, trip, []*domain.Service{
		{ID: "svc-1", PartnerID: "partner-1", Title: "Posada del Faro", Price: 1000, Category: domain.CategoryAccommodation},
		{ID: "svc-2", PartnerID: "partner-2", Title: "Parrillada completa", Price: math.NaN(), Category: domain.CategoryGastronomy},
	}, nil)

	_, err := svc.ConfirmPayment(context.Background(), service.ConfirmPaymentRequest{
		TripID:     "trip-1",
		CardNumber: "4111111111111111",
	})
	if !errors.Is(err, checkout.ErrSplitIntegrity) {
		t.Fatalf("expected ErrSplitIntegrity, got %v", err)
	}

	// Aborted attempt leaves nothing behind.
	if bookingRepo.CountBookings() != 0 {
		t.Errorf("expected no bookings after abort, got %d", bookingRepo.CountBookings())
	}
	if got := tripRepo.GetTrip("trip-1").Status; got != domain.TripStatusActive {
		t.Errorf("expected trip to stay ACTIVE, got %s", got)
	}
	if lockStore.IsLocked("trip-1") {
		t.Error("expected checkout lock to be released after abort")
	}
}
