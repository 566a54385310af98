// Package service holds the Featured Companies business logic:
// admin-curated highlights with a TTL cache over the presentation list,
// invalidated atomically on every mutation.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avpavlenko/jobboard/internal/platform/actor"
	"github.com/avpavlenko/jobboard/internal/platform/apperror"
	"github.com/avpavlenko/jobboard/internal/platform/cache"
	"github.com/avpavlenko/jobboard/modules/featuredcompanies/model"
	"github.com/avpavlenko/jobboard/modules/featuredcompanies/ports"
)

const listCacheTTL = 5 * time.Minute

type FeaturedCompanyService struct {
	repo  ports.Repository
	cache *cache.Cache
}

func NewFeaturedCompanyService(repo ports.Repository, c *cache.Cache) *FeaturedCompanyService {
	return &FeaturedCompanyService{repo: repo, cache: c}
}

func listCacheKey(limit int) string {
	return fmt.Sprintf("list:%d", limit)
}

func (s *FeaturedCompanyService) List(ctx context.Context, limit int) ([]*model.DTO, error) {
	if limit <= 0 {
		limit = 20
	}
	key := listCacheKey(limit)

	var cached []*model.DTO
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	companies, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	dtos := make([]*model.DTO, 0, len(companies))
	for i := range companies {
		dtos = append(dtos, companies[i].ToDTO())
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, dtos, listCacheTTL)
	}
	return dtos, nil
}

// Add features companyID, admitted to admin only. A pre-existing
// feature is idempotent.
func (s *FeaturedCompanyService) Add(ctx context.Context, a *actor.Actor, companyID int64) (alreadyFeatured bool, err error) {
	if appErr := actor.RequireType(a, actor.Admin); appErr != nil {
		return false, appErr
	}

	exists, existsErr := s.repo.Exists(ctx, companyID)
	if existsErr != nil {
		return false, apperror.Internal(existsErr)
	}
	if exists {
		return true, nil
	}

	if addErr := s.repo.Add(ctx, &model.FeaturedCompany{CompanyID: companyID, CreatedAt: time.Now()}); addErr != nil {
		return false, apperror.Internal(addErr)
	}
	s.invalidate(ctx)
	return false, nil
}

// Remove un-features companyID, admitted to admin only.
func (s *FeaturedCompanyService) Remove(ctx context.Context, a *actor.Actor, companyID int64) error {
	if appErr := actor.RequireType(a, actor.Admin); appErr != nil {
		return appErr
	}
	if err := s.repo.Remove(ctx, companyID); err != nil {
		return apperror.Internal(err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *FeaturedCompanyService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.InvalidatePrefix(ctx, "list:")
}
