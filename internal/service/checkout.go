package service

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"escapada/internal/checkout"
	"escapada/internal/domain"
	"escapada/internal/redis"
	"escapada/internal/repository"
	"escapada/internal/repository/postgres"
)

// checkoutLockTTL bounds how long a trip's payment lock can outlive a
// crashed attempt.
const checkoutLockTTL = 30 * time.Second

// minCardDigits is the shortest plausible full card number accepted at
// confirmation time (classification only needs the 6-digit BIN).
const minCardDigits = 14

// CheckoutService drives a checkout session from card classification to
// the committed booking records. The money math itself lives in the
// checkout package; this service feeds it and persists its outputs.
//
// A session moves AwaitingCard -> Classified (re-entered on every prefix
// change) -> AwaitingConfirmation -> Verifying -> Committed or Aborted.
// Aborted is terminal for the attempt; the tourist may confirm again.
type CheckoutService struct {
	db                  *sql.DB
	tripRepo            repository.TripRepository
	serviceRepo         repository.ServiceRepository
	bookingRepo         repository.BookingRepository
	cacheStore          redis.CacheStoreInterface
	lockStore           redis.LockStoreInterface
	notificationService *NotificationService
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(
	db *sql.DB,
	tripRepo repository.TripRepository,
	serviceRepo repository.ServiceRepository,
	bookingRepo repository.BookingRepository,
	cacheStore redis.CacheStoreInterface,
	lockStore redis.LockStoreInterface,
	notificationService *NotificationService,
) *CheckoutService {
	return &CheckoutService{
		db:                  db,
		tripRepo:            tripRepo,
		serviceRepo:         serviceRepo,
		bookingRepo:         bookingRepo,
		cacheStore:          cacheStore,
		lockStore:           lockStore,
		notificationService: notificationService,
	}
}

// CardClassification is the result of a BIN check.
type CardClassification struct {
	Prefix  string
	Foreign bool
}

// ClassifyCard classifies a card from its leading digits. Non-digit
// characters are stripped; fewer than 6 remaining digits is a caller
// error, not a classification.
func (s *CheckoutService) ClassifyCard(ctx context.Context, cardNumber string) (*CardClassification, error) {
	digits := digitsOnly(cardNumber)
	if len(digits) < checkout.MinBINDigits {
		return nil, ErrCardNumberTooShort
	}

	prefix := digits[:checkout.MinBINDigits]

	// Cache hit saves nothing but a table scan; it mostly keeps the
	// keystroke-driven card-check endpoint quiet.
	if cached, err := s.cacheStore.GetClassification(ctx, prefix); err == nil && cached != nil {
		return &CardClassification{Prefix: prefix, Foreign: cached.Foreign}, nil
	}

	foreign := checkout.IsForeignCard(prefix)

	_ = s.cacheStore.SetClassification(ctx, &redis.CachedClassification{
		Prefix:  prefix,
		Foreign: foreign,
	})

	return &CardClassification{Prefix: prefix, Foreign: foreign}, nil
}

// QuoteTripRequest contains the parameters for pricing a trip.
type QuoteTripRequest struct {
	TripID     string
	CardNumber string // optional; without at least 6 digits the card counts as domestic
}

// TripQuote is a priced trip plus the trip-level deposit preview.
type TripQuote struct {
	TripID         string
	Items          []checkout.PricedItem
	Subtotal       float64
	Discount       float64
	FinalTotal     float64
	Breakdown      []checkout.BenefitLine
	Deposit        float64
	Balance        float64
	ForeignCard    bool
	BenefitApplied bool
}

// QuoteTrip prices a trip against the current card input.
func (s *CheckoutService) QuoteTrip(ctx context.Context, req QuoteTripRequest) (*TripQuote, error) {
	if req.TripID == "" {
		return nil, ErrInvalidTripID
	}

	trip, err := s.tripRepo.GetByID(ctx, req.TripID)
	if err != nil {
		return nil, err
	}

	foreign := false
	if digits := digitsOnly(req.CardNumber); len(digits) >= checkout.MinBINDigits {
		classification, err := s.ClassifyCard(ctx, digits)
		if err != nil {
			return nil, err
		}
		foreign = classification.Foreign
	}

	items, err := s.buildLineItems(ctx, trip.ID)
	if err != nil {
		return nil, err
	}

	result := checkout.Quote(items, checkout.QuoteParams{
		Adults:      trip.Adults,
		Children:    trip.Children,
		ForeignCard: foreign,
		VATExempt:   trip.VATExempt,
	})

	return &TripQuote{
		TripID:         trip.ID,
		Items:          result.Items,
		Subtotal:       result.Subtotal,
		Discount:       result.Discount,
		FinalTotal:     result.FinalTotal,
		Breakdown:      result.Breakdown,
		Deposit:        checkout.Deposit(result.FinalTotal),
		Balance:        checkout.Balance(result.FinalTotal),
		ForeignCard:    foreign,
		BenefitApplied: foreign || trip.VATExempt,
	}, nil
}

// ConfirmPaymentRequest contains the parameters for committing a checkout.
type ConfirmPaymentRequest struct {
	TripID     string
	CardNumber string
}

// CheckoutResult is the outcome of a committed payment.
type CheckoutResult struct {
	TripID     string
	OrderCode  string
	Bookings   []*domain.Booking
	Subtotal   float64
	Discount   float64
	FinalTotal float64
	Deposit    float64
	Balance    float64
}

// ConfirmPayment verifies the split integrity of the priced trip and, only
// on success, writes every partner booking and confirms the trip in one
// transaction. An integrity failure aborts the attempt with no writes.
func (s *CheckoutService) ConfirmPayment(ctx context.Context, req ConfirmPaymentRequest) (*CheckoutResult, error) {
	if req.TripID == "" {
		return nil, ErrInvalidTripID
	}

	digits := digitsOnly(req.CardNumber)
	if len(digits) < minCardDigits {
		return nil, ErrCardNumberInvalid
	}

	trip, err := s.tripRepo.GetByID(ctx, req.TripID)
	if err != nil {
		return nil, err
	}

	if trip.Status != domain.TripStatusActive {
		return nil, ErrTripNotActive
	}

	// One payment attempt per trip at a time.
	acquired, err := s.lockStore.AcquireCheckoutLock(ctx, trip.ID, checkoutLockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, ErrCheckoutInFlight
	}
	defer func() {
		_ = s.lockStore.ReleaseCheckoutLock(ctx, trip.ID)
	}()

	classification, err := s.ClassifyCard(ctx, digits)
	if err != nil {
		return nil, err
	}

	items, err := s.buildLineItems(ctx, trip.ID)
	if err != nil {
		return nil, err
	}

	quote := checkout.Quote(items, checkout.QuoteParams{
		Adults:      trip.Adults,
		Children:    trip.Children,
		ForeignCard: classification.Foreign,
		VATExempt:   trip.VATExempt,
	})

	// Verifying: the 15/85 reconstruction must hold for every real item
	// before any money-moving record is written.
	splits, err := checkout.VerifyAndSplit(quote.Items)
	if err != nil {
		if s.notificationService != nil {
			_ = s.notificationService.NotifyPaymentAborted(ctx, trip.TouristID, trip.ID, err.Error())
		}
		return nil, err
	}

	splitByItem := make(map[string]checkout.PaymentSplit, len(splits))
	for _, split := range splits {
		splitByItem[split.ItemID] = split
	}

	orderCode := newOrderCode()
	now := time.Now()

	var bookings []*domain.Booking
	for _, item := range quote.Items {
		if item.Synthetic || item.PartnerID == "" {
			continue
		}

		split := splitByItem[item.ID]

		scheduledTime := item.ScheduledTime
		if scheduledTime == "" {
			scheduledTime = "10:00"
		}
		dayNumber := item.DayNumber
		if dayNumber == 0 {
			dayNumber = 1
		}

		bookings = append(bookings, &domain.Booking{
			ID:            uuid.New().String(),
			TripID:        trip.ID,
			ServiceID:     item.ID,
			PartnerID:     item.PartnerID,
			TouristID:     trip.TouristID,
			OrderCode:     orderCode,
			ServicePrice:  split.Price,
			PlatformFee:   split.Fee,
			PartnerNet:    split.Net,
			Status:        domain.BookingStatusConfirmed,
			ScheduledTime: scheduledTime,
			DayNumber:     dayNumber,
			CreatedAt:     now,
		})
	}

	// Use transaction to write bookings and confirm the trip atomically.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txBookingRepo := postgres.NewBookingRepositoryWithTx(tx)
	txTripRepo := postgres.NewTripRepositoryWithTx(tx)

	for _, booking := range bookings {
		if err = txBookingRepo.Create(ctx, booking); err != nil {
			return nil, err
		}
	}

	if err = txTripRepo.UpdateStatusAndTotal(ctx, trip.ID, domain.TripStatusConfirmed, quote.FinalTotal); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	deposit := checkout.Deposit(quote.FinalTotal)
	balance := checkout.Balance(quote.FinalTotal)

	if s.notificationService != nil {
		_ = s.notificationService.NotifyBookingConfirmed(ctx, trip.TouristID, orderCode, quote.FinalTotal, deposit, balance)
	}

	return &CheckoutResult{
		TripID:     trip.ID,
		OrderCode:  orderCode,
		Bookings:   bookings,
		Subtotal:   quote.Subtotal,
		Discount:   quote.Discount,
		FinalTotal: quote.FinalTotal,
		Deposit:    deposit,
		Balance:    balance,
	}, nil
}

// buildLineItems resolves a trip's items against the service catalog.
func (s *CheckoutService) buildLineItems(ctx context.Context, tripID string) ([]checkout.LineItem, error) {
	tripItems, err := s.tripRepo.GetItems(ctx, tripID)
	if err != nil {
		return nil, err
	}

	items := make([]checkout.LineItem, 0, len(tripItems))
	for _, tripItem := range tripItems {
		line, err := s.resolveService(ctx, tripItem)
		if err != nil {
			return nil, err
		}
		items = append(items, line)
	}

	return items, nil
}

// resolveService fetches the priced service behind a trip item, consulting
// the catalog cache first.
func (s *CheckoutService) resolveService(ctx context.Context, tripItem *domain.TripItem) (checkout.LineItem, error) {
	if cached, err := s.cacheStore.GetService(ctx, tripItem.ServiceID); err == nil && cached != nil {
		return checkout.LineItem{
			ID:            cached.ID,
			Title:         cached.Title,
			BasePrice:     cached.Price,
			Category:      domain.ServiceCategory(cached.Category),
			PartnerID:     cached.PartnerID,
			PlanB:         tripItem.PlanB,
			ScheduledTime: tripItem.ScheduledTime,
			DayNumber:     tripItem.DayNumber,
		}, nil
	}

	service, err := s.serviceRepo.GetByID(ctx, tripItem.ServiceID)
	if err != nil {
		return checkout.LineItem{}, err
	}

	_ = s.cacheStore.SetService(ctx, &redis.CachedService{
		ID:        service.ID,
		PartnerID: service.PartnerID,
		Title:     service.Title,
		Price:     service.Price,
		Category:  string(service.Category),
	})

	return checkout.LineItem{
		ID:            service.ID,
		Title:         service.Title,
		BasePrice:     service.Price,
		Category:      service.Category,
		PartnerID:     service.PartnerID,
		PlanB:         tripItem.PlanB,
		ScheduledTime: tripItem.ScheduledTime,
		DayNumber:     tripItem.DayNumber,
	}, nil
}

// digitsOnly strips every non-digit rune from a card number input.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// newOrderCode issues the short human-readable code printed on booking
// confirmations, e.g. ESC-4F9C2.
func newOrderCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "ESC-" + raw[:5]
}
