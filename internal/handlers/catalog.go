package handlers

import (
	"context"
	"log/slog"

	"github.com/BruksfildServices01/salon-de-belleza/internal/cache"
	domain "github.com/BruksfildServices01/salon-de-belleza/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-de-belleza/internal/models"
)

// serviceCatalog lê a lista pública de serviços, via Redis quando disponível.
type serviceCatalog struct {
	repo  domain.Repository
	cache *cache.CatalogCache
	log   *slog.Logger
}

func (s serviceCatalog) list(ctx context.Context) ([]models.Service, error) {
	if services, ok := s.cache.Get(ctx); ok {
		return services, nil
	}

	services, err := s.repo.ListServices(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, services); err != nil {
		s.log.Warn("catalog cache write failed", "error", err)
	}
	return services, nil
}
