package postgres

import (
	"context"
	"database/sql"
	"errors"

	"escapada/internal/domain"
	"escapada/internal/repository"
)

// ServiceRepository is a PostgreSQL implementation of repository.ServiceRepository.
type ServiceRepository struct {
	q Querier
}

// NewServiceRepository creates a new PostgreSQL service repository.
func NewServiceRepository(db *sql.DB) *ServiceRepository {
	return &ServiceRepository{q: db}
}

// Create persists a new service.
func (r *ServiceRepository) Create(ctx context.Context, service *domain.Service) error {
	query := `
		INSERT INTO services (id, partner_id, title, description, price, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.q.ExecContext(ctx, query,
		service.ID,
		service.PartnerID,
		service.Title,
		service.Description,
		service.Price,
		service.Category,
		service.CreatedAt,
	)

	return err
}

// GetByID retrieves a service by ID.
func (r *ServiceRepository) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	query := `
		SELECT id, partner_id, title, description, price, category, created_at
		FROM services WHERE id = $1
	`

	var service domain.Service
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&service.ID,
		&service.PartnerID,
		&service.Title,
		&service.Description,
		&service.Price,
		&service.Category,
		&service.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &service, nil
}

// GetByPartnerID retrieves all services published by a partner.
func (r *ServiceRepository) GetByPartnerID(ctx context.Context, partnerID string) ([]*domain.Service, error) {
	query := `
		SELECT id, partner_id, title, description, price, category, created_at
		FROM services WHERE partner_id = $1 ORDER BY created_at DESC
	`

	return r.queryServices(ctx, query, partnerID)
}

// GetAll retrieves the full catalog.
func (r *ServiceRepository) GetAll(ctx context.Context) ([]*domain.Service, error) {
	query := `
		SELECT id, partner_id, title, description, price, category, created_at
		FROM services ORDER BY created_at DESC LIMIT 200
	`

	return r.queryServices(ctx, query)
}

func (r *ServiceRepository) queryServices(ctx context.Context, query string, args ...any) ([]*domain.Service, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []*domain.Service
	for rows.Next() {
		var service domain.Service
		if err := rows.Scan(
			&service.ID,
			&service.PartnerID,
			&service.Title,
			&service.Description,
			&service.Price,
			&service.Category,
			&service.CreatedAt,
		); err != nil {
			return nil, err
		}
		services = append(services, &service)
	}

	return services, rows.Err()
}

// Ensure ServiceRepository implements repository.ServiceRepository.
var _ repository.ServiceRepository = (*ServiceRepository)(nil)
