package postgres

import (
	"context"
	"database/sql"
	"errors"

	"escapada/internal/domain"
	"escapada/internal/repository"
)

// ProfileRepository is a PostgreSQL implementation of repository.ProfileRepository.
type ProfileRepository struct {
	q Querier
}

// NewProfileRepository creates a new PostgreSQL profile repository.
func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{q: db}
}

// Create persists a new profile.
func (r *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (id, role, full_name, email, business_name, rut, business_address, business_city, business_phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.q.ExecContext(ctx, query,
		profile.ID,
		profile.Role,
		profile.FullName,
		profile.Email,
		nullString(profile.BusinessName),
		nullString(profile.RUT),
		nullString(profile.BusinessAddress),
		nullString(profile.BusinessCity),
		nullString(profile.BusinessPhone),
		profile.CreatedAt,
	)

	return err
}

// GetByID retrieves a profile by ID.
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `
		SELECT id, role, full_name, email, business_name, rut, business_address, business_city, business_phone, created_at
		FROM profiles WHERE id = $1
	`

	profile, err := scanProfile(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return profile, nil
}

// GetByEmail retrieves a profile by email.
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	query := `
		SELECT id, role, full_name, email, business_name, rut, business_address, business_city, business_phone, created_at
		FROM profiles WHERE email = $1
	`

	profile, err := scanProfile(r.q.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return profile, nil
}

// GetAll retrieves all profiles.
func (r *ProfileRepository) GetAll(ctx context.Context) ([]*domain.Profile, error) {
	query := `
		SELECT id, role, full_name, email, business_name, rut, business_address, business_city, business_phone, created_at
		FROM profiles ORDER BY created_at DESC LIMIT 100
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}

	return profiles, rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	var profile domain.Profile
	var businessName, rut, address, city, phone sql.NullString

	err := row.Scan(
		&profile.ID,
		&profile.Role,
		&profile.FullName,
		&profile.Email,
		&businessName,
		&rut,
		&address,
		&city,
		&phone,
		&profile.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	profile.BusinessName = businessName.String
	profile.RUT = rut.String
	profile.BusinessAddress = address.String
	profile.BusinessCity = city.String
	profile.BusinessPhone = phone.String

	return &profile, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Ensure ProfileRepository implements repository.ProfileRepository.
var _ repository.ProfileRepository = (*ProfileRepository)(nil)
