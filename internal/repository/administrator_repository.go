package repository

import (
	"context"

	"github.com/ecompjr/company-service/internal/domain"
)

// Unique constraint on administrators.username.
const AdministratorUsernameConstraint = "administrators_username_key"

// AdministratorRepository defines persistence access for credential records.
type AdministratorRepository interface {
	// Create inserts the record and fills ID and CreatedAt. A taken username
	// yields a *ConflictError.
	Create(ctx context.Context, admin *domain.Administrator) error
	GetByUsername(ctx context.Context, username string) (*domain.Administrator, error)
}

type administratorRepository struct {
	db DBTX
}

// NewAdministratorRepository returns a Postgres-backed implementation.
func NewAdministratorRepository(db DBTX) AdministratorRepository {
	return &administratorRepository{db: db}
}

func (r *administratorRepository) Create(ctx context.Context, admin *domain.Administrator) error {
	const query = `
        INSERT INTO administrators (username, password_hash)
        VALUES ($1, $2)
        RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		admin.Username,
		admin.PasswordHash,
	).Scan(&admin.ID, &admin.CreatedAt)
	return mapError(err)
}

func (r *administratorRepository) GetByUsername(ctx context.Context, username string) (*domain.Administrator, error) {
	const query = `
        SELECT id, username, password_hash, created_at
        FROM administrators WHERE username=$1`

	var admin domain.Administrator
	if err := r.db.QueryRow(ctx, query, username).Scan(
		&admin.ID,
		&admin.Username,
		&admin.PasswordHash,
		&admin.CreatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &admin, nil
}
