package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecompjr/company-service/internal/domain"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestAdministratorRepositoryCreate(t *testing.T) {
	t.Parallel()
	mock := newMockPool(t)
	repo := NewAdministratorRepository(mock)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO administrators`).
		WithArgs("alice", "$2a$10$hash").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), now))

	admin := &domain.Administrator{Username: "alice", PasswordHash: "$2a$10$hash"}
	require.NoError(t, repo.Create(context.Background(), admin))
	assert.Equal(t, int64(7), admin.ID)
	assert.Equal(t, now, admin.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdministratorRepositoryCreateDuplicate(t *testing.T) {
	t.Parallel()
	mock := newMockPool(t)
	repo := NewAdministratorRepository(mock)

	mock.ExpectQuery(`INSERT INTO administrators`).
		WithArgs("alice", "h").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: AdministratorUsernameConstraint})

	err := repo.Create(context.Background(), &domain.Administrator{Username: "alice", PasswordHash: "h"})
	conflict, ok := AsConflict(err)
	require.True(t, ok, "expected conflict, got %v", err)
	assert.Equal(t, AdministratorUsernameConstraint, conflict.Constraint)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdministratorRepositoryGetByUsername(t *testing.T) {
	t.Parallel()
	mock := newMockPool(t)
	repo := NewAdministratorRepository(mock)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM administrators WHERE username=`).
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
			AddRow(int64(1), "alice", "h", now))

	admin, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, &domain.Administrator{ID: 1, Username: "alice", PasswordHash: "h", CreatedAt: now}, admin)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdministratorRepositoryGetByUsernameMissing(t *testing.T) {
	t.Parallel()
	mock := newMockPool(t)
	repo := NewAdministratorRepository(mock)

	mock.ExpectQuery(`FROM administrators WHERE username=`).
		WithArgs("nobody").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByUsername(context.Background(), "nobody")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAdministratorRepositoryPassesThroughConnectionErrors(t *testing.T) {
	t.Parallel()
	mock := newMockPool(t)
	repo := NewAdministratorRepository(mock)
	connErr := errors.New("failed to connect")

	mock.ExpectQuery(`FROM administrators`).WithArgs("alice").WillReturnError(connErr)

	_, err := repo.GetByUsername(context.Background(), "alice")
	require.ErrorIs(t, err, connErr)
	assert.NotErrorIs(t, err, ErrNotFound)
	_, isConflict := AsConflict(err)
	assert.False(t, isConflict)
}
