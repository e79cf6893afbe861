package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"escapada/internal/domain"
	"escapada/internal/repository"
)

// BookingRepository is a PostgreSQL implementation of repository.BookingRepository.
type BookingRepository struct {
	q Querier
}

// NewBookingRepository creates a new PostgreSQL booking repository.
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{q: db}
}

// NewBookingRepositoryWithTx creates a booking repository using a transaction.
func NewBookingRepositoryWithTx(tx *sql.Tx) *BookingRepository {
	return &BookingRepository{q: tx}
}

const bookingColumns = `id, trip_id, service_id, partner_id, tourist_id, order_code, service_price, platform_fee, partner_net, status, scheduled_time, day_number, created_at, redeemed_at`

// Create persists a new booking.
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	var redeemedAt sql.NullTime
	if !booking.RedeemedAt.IsZero() {
		redeemedAt = sql.NullTime{Time: booking.RedeemedAt, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		booking.ID,
		booking.TripID,
		booking.ServiceID,
		booking.PartnerID,
		booking.TouristID,
		booking.OrderCode,
		booking.ServicePrice,
		booking.PlatformFee,
		booking.PartnerNet,
		booking.Status,
		booking.ScheduledTime,
		booking.DayNumber,
		booking.CreatedAt,
		redeemedAt,
	)

	return err
}

// GetByID retrieves a booking by ID.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return booking, nil
}

// GetByTripID retrieves all bookings written for a trip.
func (r *BookingRepository) GetByTripID(ctx context.Context, tripID string) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE trip_id = $1 ORDER BY day_number, scheduled_time`
	return r.queryBookings(ctx, query, tripID)
}

// GetByPartnerID retrieves all bookings owed to a partner.
func (r *BookingRepository) GetByPartnerID(ctx context.Context, partnerID string) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE partner_id = $1 ORDER BY created_at DESC`
	return r.queryBookings(ctx, query, partnerID)
}

// GetByTouristID retrieves a tourist's booking history.
func (r *BookingRepository) GetByTouristID(ctx context.Context, touristID string) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE tourist_id = $1 ORDER BY created_at DESC`
	return r.queryBookings(ctx, query, touristID)
}

// MarkRedeemed flips a booking to REDEEMED at the given time.
func (r *BookingRepository) MarkRedeemed(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE bookings SET status = $1, redeemed_at = $2 WHERE id = $3`

	result, err := r.q.ExecContext(ctx, query, domain.BookingStatusRedeemed, at, id)
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

func (r *BookingRepository) queryBookings(ctx context.Context, query string, args ...any) ([]*domain.Booking, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var redeemedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.TripID,
		&booking.ServiceID,
		&booking.PartnerID,
		&booking.TouristID,
		&booking.OrderCode,
		&booking.ServicePrice,
		&booking.PlatformFee,
		&booking.PartnerNet,
		&booking.Status,
		&booking.ScheduledTime,
		&booking.DayNumber,
		&booking.CreatedAt,
		&redeemedAt,
	)
	if err != nil {
		return nil, err
	}

	if redeemedAt.Valid {
		booking.RedeemedAt = redeemedAt.Time
	}

	return &booking, nil
}

// Ensure BookingRepository implements repository.BookingRepository.
var _ repository.BookingRepository = (*BookingRepository)(nil)
