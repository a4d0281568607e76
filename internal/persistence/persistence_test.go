package persistence

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ecompjr/company-service/internal/config"
)

func TestEmbeddedMigrationsAreGooseFiles(t *testing.T) {
	files, err := fs.Glob(migrationsFS, migrationsDir+"/*.sql")
	require.NoError(t, err)
	require.Len(t, files, 2)

	for _, name := range files {
		raw, err := migrationsFS.ReadFile(name)
		require.NoError(t, err)
		body := string(raw)
		assert.Contains(t, body, "-- +goose Up", name)
		assert.Contains(t, body, "-- +goose Down", name)
	}

	companies, err := migrationsFS.ReadFile(migrationsDir + "/00002_create_companies.sql")
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(companies), "companies_cnpj_key"))
	assert.True(t, strings.Contains(string(companies), "companies_contact_email_key"))
}

func TestNewPostgresRequiresDSN(t *testing.T) {
	_, err := NewPostgres(context.Background(), config.PostgresConfig{}, zap.NewNop())
	require.Error(t, err)
}

func TestRunMigrationsWithoutPool(t *testing.T) {
	require.Error(t, RunMigrations(context.Background(), nil, zap.NewNop()))
}

func TestRedisPing(t *testing.T) {
	mr := miniredis.RunT(t)
	r := NewRedis(context.Background(), config.RedisConfig{Addr: mr.Addr()}, zap.NewNop())
	defer r.Close()
	require.NoError(t, r.Ping(context.Background()))

	var missing *Redis
	assert.Error(t, missing.Ping(context.Background()))

	var pg *Postgres
	assert.Error(t, pg.Ping(context.Background()))
}
