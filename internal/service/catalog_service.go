package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"kinopro/internal/core/cache"
	"kinopro/internal/domain"
)

const (
	keyCities      = "catalog:cities"
	keyGroups      = "catalog:profession_groups"
	keyProfessions = "catalog:professions"
)

func keyProfessionsByGroup(id uint) string { return fmt.Sprintf("catalog:professions:group:%d", id) }

// CatalogService serves reference data through the cache.
type CatalogService struct {
	repo     domain.CatalogRepository
	cache    *cache.Cache
	ttl      time.Duration
	taxonomy domain.Taxonomy
	log      *zap.Logger
}

func NewCatalogService(repo domain.CatalogRepository, c *cache.Cache, ttl time.Duration, taxonomy domain.Taxonomy, l *zap.Logger) *CatalogService {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CatalogService{repo: repo, cache: c, ttl: ttl, taxonomy: taxonomy, log: l}
}

func (s *CatalogService) Cities(ctx context.Context) ([]domain.City, error) {
	out, err := cache.GetOrLoadJSON(s.cache, ctx, keyCities, s.ttl, s.repo.Cities)
	if err != nil {
		return nil, domain.Internal("list cities", err)
	}
	return out, nil
}

func (s *CatalogService) ProfessionGroups(ctx context.Context) ([]domain.ProfessionGroup, error) {
	out, err := cache.GetOrLoadJSON(s.cache, ctx, keyGroups, s.ttl, s.repo.ProfessionGroups)
	if err != nil {
		return nil, domain.Internal("list profession groups", err)
	}
	return out, nil
}

func (s *CatalogService) Professions(ctx context.Context) ([]domain.Profession, error) {
	out, err := cache.GetOrLoadJSON(s.cache, ctx, keyProfessions, s.ttl, func(ctx context.Context) ([]domain.Profession, error) {
		return s.repo.Professions(ctx, nil)
	})
	if err != nil {
		return nil, domain.Internal("list professions", err)
	}
	return out, nil
}

func (s *CatalogService) ProfessionsByGroup(ctx context.Context, groupID uint) ([]domain.Profession, error) {
	out, err := cache.GetOrLoadJSON(s.cache, ctx, keyProfessionsByGroup(groupID), s.ttl, func(ctx context.Context) ([]domain.Profession, error) {
		return s.repo.Professions(ctx, &groupID)
	})
	if err != nil {
		return nil, domain.Internal("list professions by group", err)
	}
	return out, nil
}

// Seed inserts the default taxonomy and drops cached lists.
func (s *CatalogService) Seed(ctx context.Context) (domain.SeedResult, error) {
	res, err := s.repo.Seed(ctx, s.taxonomy)
	if err != nil {
		return res, domain.Wrap(err, "seed catalog")
	}
	keys := []string{keyCities, keyGroups, keyProfessions}
	groups, err := s.repo.ProfessionGroups(ctx)
	if err == nil {
		for _, g := range groups {
			keys = append(keys, keyProfessionsByGroup(g.ID))
		}
	}
	s.cache.Invalidate(ctx, keys...)
	s.log.Info("catalog seeded",
		zap.Int64("cities", res.Cities),
		zap.Int64("groups", res.Groups),
		zap.Int64("professions", res.Professions))
	return res, nil
}
