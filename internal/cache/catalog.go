package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/salon-de-belleza/internal/models"
)

const CatalogKey = "salon:catalog:services"

// CatalogCache guarda a lista pública de serviços. Com client nil todas as
// operações são no-op e Get sempre falha.
type CatalogCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCatalogCache(rdb *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{rdb: rdb, ttl: ttl}
}

func (c *CatalogCache) Get(ctx context.Context) ([]models.Service, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, CatalogKey).Bytes()
	if err != nil {
		return nil, false
	}

	var services []models.Service
	if err := json.Unmarshal(raw, &services); err != nil {
		return nil, false
	}
	return services, true
}

func (c *CatalogCache) Set(ctx context.Context, services []models.Service) error {
	if c == nil || c.rdb == nil {
		return nil
	}

	raw, err := json.Marshal(services)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, CatalogKey, raw, c.ttl).Err()
}

// Invalidate é chamado depois de qualquer escrita em serviços.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, CatalogKey).Err()
}
