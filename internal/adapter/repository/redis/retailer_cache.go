package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/user/retailer-registry/internal/adapter/metrics"
	"github.com/user/retailer-registry/internal/domain"
)

// RetailerCache is a read-through cache in front of a RetailerRepository,
// keyed by tenant type. Every authenticated request performs a tenant
// lookup, so the hot path is FindByTenantType; the remaining operations
// delegate and invalidate. Cache failures degrade to the inner repository,
// never to an authentication failure.
type RetailerCache struct {
	inner   domain.RetailerRepository
	client  redis.Cmdable
	logger  *slog.Logger
	ttl     time.Duration
	metrics *metrics.RegistryMetrics
}

// cachedRetailer is the cache encoding of a retailer. domain.Retailer's own
// JSON tags are API-facing and omit the secret hash, which the gate needs on
// every lookup, so the cache carries its own codec.
type cachedRetailer struct {
	ID         uuid.UUID         `json:"id"`
	Name       string            `json:"name"`
	TenantType domain.TenantType `json:"tenant_type"`
	SecretHash string            `json:"secret_hash"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

func toCached(r *domain.Retailer) *cachedRetailer {
	return &cachedRetailer{
		ID:         r.ID,
		Name:       r.Name,
		TenantType: r.TenantType,
		SecretHash: r.SecretHash,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func (c *cachedRetailer) toDomain() *domain.Retailer {
	return &domain.Retailer{
		ID:         c.ID,
		Name:       c.Name,
		TenantType: c.TenantType,
		SecretHash: c.SecretHash,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// NewRetailerCache wraps inner with a Redis read-through cache.
func NewRetailerCache(inner domain.RetailerRepository, client redis.Cmdable, logger *slog.Logger, ttl time.Duration, m *metrics.RegistryMetrics) *RetailerCache {
	return &RetailerCache{
		inner:   inner,
		client:  client,
		logger:  logger,
		ttl:     ttl,
		metrics: m,
	}
}

func tenantKey(t domain.TenantType) string {
	return fmt.Sprintf("retailer:type:%s", t)
}

func (c *RetailerCache) FindByTenantType(ctx context.Context, t domain.TenantType) (*domain.Retailer, error) {
	if data, err := c.client.Get(ctx, tenantKey(t)).Bytes(); err == nil {
		var cached cachedRetailer
		if err := json.Unmarshal(data, &cached); err == nil {
			if c.metrics != nil {
				c.metrics.RetailerCacheHits.Inc()
			}
			return cached.toDomain(), nil
		}
		c.logger.Warn("corrupt retailer cache entry, falling back to store", "tenant_type", t)
	} else if err != redis.Nil {
		c.logger.Warn("retailer cache read failed, falling back to store", "error", err)
	}

	if c.metrics != nil {
		c.metrics.RetailerCacheMisses.Inc()
	}

	ret, err := c.inner.FindByTenantType(ctx, t)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(toCached(ret)); err == nil {
		if err := c.client.Set(ctx, tenantKey(t), data, c.ttl).Err(); err != nil {
			c.logger.Warn("retailer cache write failed", "error", err)
		}
	}
	return ret, nil
}

func (c *RetailerCache) FindByName(ctx context.Context, name string) (*domain.Retailer, error) {
	return c.inner.FindByName(ctx, name)
}

func (c *RetailerCache) FindByID(ctx context.Context, id uuid.UUID) (*domain.Retailer, error) {
	return c.inner.FindByID(ctx, id)
}

func (c *RetailerCache) FindAll(ctx context.Context) ([]*domain.Retailer, error) {
	return c.inner.FindAll(ctx)
}

func (c *RetailerCache) Store(ctx context.Context, r *domain.Retailer) error {
	if err := c.inner.Store(ctx, r); err != nil {
		return err
	}
	c.invalidate(ctx, r.TenantType)
	return nil
}

func (c *RetailerCache) Update(ctx context.Context, r *domain.Retailer) error {
	if err := c.inner.Update(ctx, r); err != nil {
		return err
	}
	c.invalidate(ctx, r.TenantType)
	return nil
}

func (c *RetailerCache) Delete(ctx context.Context, id uuid.UUID) error {
	// Look up the tenant type first so the cache entry can be dropped too.
	ret, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, ret.TenantType)
	return nil
}

func (c *RetailerCache) invalidate(ctx context.Context, t domain.TenantType) {
	if err := c.client.Del(ctx, tenantKey(t)).Err(); err != nil {
		c.logger.Warn("retailer cache invalidation failed", "error", err, "tenant_type", t)
	}
}
