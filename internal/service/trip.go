package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"escapada/internal/domain"
	"escapada/internal/repository"
	"escapada/internal/repository/postgres"
)

// TripService handles itinerary assembly.
type TripService struct {
	db          *sql.DB
	tripRepo    repository.TripRepository
	serviceRepo repository.ServiceRepository
}

// NewTripService creates a new TripService.
func NewTripService(db *sql.DB, tripRepo repository.TripRepository, serviceRepo repository.ServiceRepository) *TripService {
	return &TripService{
		db:          db,
		tripRepo:    tripRepo,
		serviceRepo: serviceRepo,
	}
}

// TripItemRequest is one service placed into a trip's day plan.
type TripItemRequest struct {
	ServiceID     string
	DayNumber     int
	ScheduledTime string
	PlanB         bool
}

// CreateTripRequest contains the parameters for assembling a trip.
type CreateTripRequest struct {
	TouristID string
	Adults    int
	Children  int
	VATExempt bool
	Items     []TripItemRequest
}

// CreateTrip assembles a new trip with its items. An unspecified adult
// count defaults to 1 and children to 0; the stored counts are what every
// later quote prices against.
func (s *TripService) CreateTrip(ctx context.Context, req CreateTripRequest) (*domain.Trip, error) {
	if req.TouristID == "" {
		return nil, ErrInvalidTouristID
	}

	if req.Adults < 0 || req.Children < 0 {
		return nil, ErrInvalidPassengerCount
	}

	adults := req.Adults
	if adults == 0 {
		adults = 1
	}

	// Every referenced service must exist before anything is written.
	for _, item := range req.Items {
		if item.ServiceID == "" {
			return nil, ErrInvalidServiceID
		}
		if _, err := s.serviceRepo.GetByID(ctx, item.ServiceID); err != nil {
			return nil, err
		}
	}

	trip := &domain.Trip{
		ID:        uuid.New().String(),
		TouristID: req.TouristID,
		Status:    domain.TripStatusActive,
		Adults:    adults,
		Children:  req.Children,
		VATExempt: req.VATExempt,
		CreatedAt: time.Now(),
	}

	// Use transaction to create the trip and its items together.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txTripRepo := postgres.NewTripRepositoryWithTx(tx)

	if err = txTripRepo.Create(ctx, trip); err != nil {
		return nil, err
	}

	for _, item := range req.Items {
		tripItem := &domain.TripItem{
			ID:            uuid.New().String(),
			TripID:        trip.ID,
			ServiceID:     item.ServiceID,
			DayNumber:     item.DayNumber,
			ScheduledTime: item.ScheduledTime,
			PlanB:         item.PlanB,
		}
		if err = txTripRepo.AddItem(ctx, tripItem); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return trip, nil
}

// GetTrip retrieves a trip by ID.
func (s *TripService) GetTrip(ctx context.Context, tripID string) (*domain.Trip, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}

	return s.tripRepo.GetByID(ctx, tripID)
}

// GetTripItems retrieves the items of a trip.
func (s *TripService) GetTripItems(ctx context.Context, tripID string) ([]*domain.TripItem, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}

	return s.tripRepo.GetItems(ctx, tripID)
}

// GetActiveTrip retrieves the tourist's current active trip.
// Returns nil if the tourist has no active trip.
func (s *TripService) GetActiveTrip(ctx context.Context, touristID string) (*domain.Trip, error) {
	if touristID == "" {
		return nil, ErrInvalidTouristID
	}

	return s.tripRepo.GetActiveByTouristID(ctx, touristID)
}

// CancelTrip cancels an active trip. Confirmed trips cannot be cancelled
// here; bookings already exist for them.
func (s *TripService) CancelTrip(ctx context.Context, tripID string) (*domain.Trip, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if trip.Status != domain.TripStatusActive {
		return nil, ErrTripNotActive
	}

	if err := s.tripRepo.UpdateStatusAndTotal(ctx, tripID, domain.TripStatusCancelled, trip.TotalPrice); err != nil {
		return nil, err
	}

	trip.Status = domain.TripStatusCancelled
	return trip, nil
}
