package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ecompjr/company-service/internal/domain"
)

// CompanyCache is a read-through cache for single-company lookups. Failures
// are treated as misses; the database stays the source of truth.
type CompanyCache interface {
	Get(ctx context.Context, id int64) (*domain.Company, bool)
	Set(ctx context.Context, company *domain.Company)
	Invalidate(ctx context.Context, id int64) error
}

const companyCachePrefix = "company:"

type redisCompanyCache struct {
	client redis.Cmdable
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisCompanyCache stores companies as JSON under "company:<id>".
func NewRedisCompanyCache(client redis.Cmdable, ttl time.Duration, logger *zap.Logger) CompanyCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &redisCompanyCache{client: client, ttl: ttl, logger: logger}
}

type cachedCompany struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	CNPJ         string    `json:"cnpj"`
	City         string    `json:"city"`
	Industry     string    `json:"industry"`
	Phone        string    `json:"phone"`
	ContactEmail string    `json:"contact_email"`
	CreatedAt    time.Time `json:"created_at"`
}

func companyKey(id int64) string {
	return companyCachePrefix + strconv.FormatInt(id, 10)
}

func (c *redisCompanyCache) Get(ctx context.Context, id int64) (*domain.Company, bool) {
	raw, err := c.client.Get(ctx, companyKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("company cache read failed", zap.Int64("company_id", id), zap.Error(err))
		}
		return nil, false
	}
	var cached cachedCompany
	if err := json.Unmarshal(raw, &cached); err != nil {
		c.logger.Warn("company cache entry corrupt", zap.Int64("company_id", id), zap.Error(err))
		return nil, false
	}
	company := domain.Company(cached)
	return &company, true
}

func (c *redisCompanyCache) Set(ctx context.Context, company *domain.Company) {
	raw, err := json.Marshal(cachedCompany(*company))
	if err != nil {
		c.logger.Warn("company cache encode failed", zap.Int64("company_id", company.ID), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, companyKey(company.ID), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("company cache write failed", zap.Int64("company_id", company.ID), zap.Error(err))
	}
}

func (c *redisCompanyCache) Invalidate(ctx context.Context, id int64) error {
	return c.client.Del(ctx, companyKey(id)).Err()
}

type noopCompanyCache struct{}

// NewNoopCompanyCache returns a cache that never stores anything.
func NewNoopCompanyCache() CompanyCache {
	return noopCompanyCache{}
}

func (noopCompanyCache) Get(context.Context, int64) (*domain.Company, bool) { return nil, false }

func (noopCompanyCache) Set(context.Context, *domain.Company) {}

func (noopCompanyCache) Invalidate(context.Context, int64) error { return nil }
