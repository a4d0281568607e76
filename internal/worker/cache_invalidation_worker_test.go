package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ecompjr/company-service/internal/domain"
	"github.com/ecompjr/company-service/internal/events"
	"github.com/ecompjr/company-service/internal/service"
	"github.com/ecompjr/company-service/internal/testutil/memstore"
)

type recordingCache struct {
	service.CompanyCache
	failures    int
	calls       int
	invalidated []int64
}

func (c *recordingCache) Invalidate(_ context.Context, id int64) error {
	c.calls++
	if c.failures > 0 {
		c.failures--
		return errors.New("redis: connection reset")
	}
	c.invalidated = append(c.invalidated, id)
	return nil
}

func TestCacheInvalidationOnWrites(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher(nil)
	cache := &recordingCache{CompanyCache: service.NewNoopCompanyCache()}
	StartCacheInvalidation(dispatcher, cache, nil)

	svc := service.NewCompanyService(service.CompanyDependencies{
		CompanyRepo: memstore.NewCompanies(),
		Cache:       cache,
		Dispatcher:  dispatcher,
	})
	ctx := context.Background()

	created, err := svc.Create(ctx, nil, &domain.Company{CNPJ: "12345678000190", ContactEmail: "a@acme.com"})
	require.NoError(t, err)
	assert.Empty(t, cache.invalidated)

	_, err = svc.Update(ctx, nil, created.ID, domain.CompanyUpdate{Name: "Acme"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, nil, created.ID))

	assert.Equal(t, []int64{created.ID, created.ID}, cache.invalidated)
}

func TestStartCacheInvalidationNilSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		StartCacheInvalidation(nil, nil, nil)
	})
}

func TestCacheInvalidationRetriesTransientFailure(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher(nil)
	cache := &recordingCache{CompanyCache: service.NewNoopCompanyCache(), failures: 1}
	StartCacheInvalidation(dispatcher, cache, nil)

	dispatcher.Publish(context.Background(), events.Event{Type: events.EventCompanyDeleted, CompanyID: 5})

	assert.Equal(t, 2, cache.calls)
	assert.Equal(t, []int64{5}, cache.invalidated)
}

func TestCacheInvalidationLogsPersistentFailure(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger := zap.New(core)
	dispatcher := events.NewInMemoryDispatcher(logger)
	cache := &recordingCache{CompanyCache: service.NewNoopCompanyCache(), failures: 10}
	StartCacheInvalidation(dispatcher, cache, logger)

	dispatcher.Publish(context.Background(), events.Event{Type: events.EventCompanyUpdated, CompanyID: 8})

	assert.Equal(t, invalidateAttempts, cache.calls)
	assert.Empty(t, cache.invalidated)
	entries := logs.FilterField(zap.Int64("company_id", 8)).All()
	require.NotEmpty(t, entries)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, 1, logs.FilterMessage("event handler failed").Len())
}
