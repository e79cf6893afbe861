package postgres

import (
	"context"
	"database/sql"
	"errors"

	"escapada/internal/domain"
	"escapada/internal/repository"
)

// TripRepository is a PostgreSQL implementation of repository.TripRepository.
type TripRepository struct {
	q Querier
}

// NewTripRepository creates a new PostgreSQL trip repository.
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{q: db}
}

// NewTripRepositoryWithTx creates a trip repository using a transaction.
func NewTripRepositoryWithTx(tx *sql.Tx) *TripRepository {
	return &TripRepository{q: tx}
}

// Create persists a new trip.
func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	query := `
		INSERT INTO trips (id, tourist_id, status, adults, children, vat_exempt, total_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.q.ExecContext(ctx, query,
		trip.ID,
		trip.TouristID,
		trip.Status,
		trip.Adults,
		trip.Children,
		trip.VATExempt,
		trip.TotalPrice,
		trip.CreatedAt,
	)

	return err
}

// GetByID retrieves a trip by ID.
func (r *TripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	query := `
		SELECT id, tourist_id, status, adults, children, vat_exempt, total_price, created_at
		FROM trips WHERE id = $1
	`

	var trip domain.Trip
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&trip.ID,
		&trip.TouristID,
		&trip.Status,
		&trip.Adults,
		&trip.Children,
		&trip.VATExempt,
		&trip.TotalPrice,
		&trip.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &trip, nil
}

// GetActiveByTouristID retrieves the tourist's most recent active trip.
// Returns nil if the tourist has no active trip.
func (r *TripRepository) GetActiveByTouristID(ctx context.Context, touristID string) (*domain.Trip, error) {
	query := `
		SELECT id, tourist_id, status, adults, children, vat_exempt, total_price, created_at
		FROM trips
		WHERE tourist_id = $1 AND status = $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	var trip domain.Trip
	err := r.q.QueryRowContext(ctx, query, touristID, domain.TripStatusActive).Scan(
		&trip.ID,
		&trip.TouristID,
		&trip.Status,
		&trip.Adults,
		&trip.Children,
		&trip.VATExempt,
		&trip.TotalPrice,
		&trip.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &trip, nil
}

// UpdateStatusAndTotal flips the trip status and records its final total.
func (r *TripRepository) UpdateStatusAndTotal(ctx context.Context, id string, status domain.TripStatus, total float64) error {
	query := `UPDATE trips SET status = $1, total_price = $2 WHERE id = $3`

	result, err := r.q.ExecContext(ctx, query, status, total, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// AddItem persists a new trip item.
func (r *TripRepository) AddItem(ctx context.Context, item *domain.TripItem) error {
	query := `
		INSERT INTO trip_items (id, trip_id, service_id, day_number, scheduled_time, plan_b)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.q.ExecContext(ctx, query,
		item.ID,
		item.TripID,
		item.ServiceID,
		item.DayNumber,
		item.ScheduledTime,
		item.PlanB,
	)

	return err
}

// GetItems retrieves the items of a trip ordered by day and time.
func (r *TripRepository) GetItems(ctx context.Context, tripID string) ([]*domain.TripItem, error) {
	query := `
		SELECT id, trip_id, service_id, day_number, scheduled_time, plan_b
		FROM trip_items WHERE trip_id = $1 ORDER BY day_number, scheduled_time
	`

	rows, err := r.q.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.TripItem
	for rows.Next() {
		var item domain.TripItem
		if err := rows.Scan(
			&item.ID,
			&item.TripID,
			&item.ServiceID,
			&item.DayNumber,
			&item.ScheduledTime,
			&item.PlanB,
		); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}

// Ensure TripRepository implements repository.TripRepository.
var _ repository.TripRepository = (*TripRepository)(nil)
