// Package service holds the Favorites business logic: candidate
// self-service bookmarking with idempotent duplicate handling.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/avpavlenko/jobboard/internal/platform/actor"
	"github.com/avpavlenko/jobboard/internal/platform/apperror"
	"github.com/avpavlenko/jobboard/internal/platform/counter"
	"github.com/avpavlenko/jobboard/internal/search/query"
	"github.com/avpavlenko/jobboard/modules/favorites/model"
	"github.com/avpavlenko/jobboard/modules/favorites/ports"
)

type FavoriteService struct {
	repo    ports.Repository
	counter *counter.Counter
}

func NewFavoriteService(repo ports.Repository, ctr *counter.Counter) *FavoriteService {
	return &FavoriteService{repo: repo, counter: ctr}
}

func (s *FavoriteService) List(ctx context.Context, a *actor.Actor, candidateID int64, page query.Pagination) ([]*model.DTO, int, error) {
	if appErr := actor.RequireSelfCandidate(a, candidateID); appErr != nil {
		return nil, 0, appErr
	}
	favorites, total, err := s.repo.List(ctx, candidateID, page)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	dtos := make([]*model.DTO, 0, len(favorites))
	for i := range favorites {
		dtos = append(dtos, favorites[i].ToDTO())
	}
	return dtos, total, nil
}

// Add bookmarks jobID for the owning candidate. A pre-existing pair is
// idempotent: the existing record is returned with alreadyFavorite=true.
func (s *FavoriteService) Add(ctx context.Context, a *actor.Actor, candidateID, jobID int64) (dto *model.DTO, alreadyFavorite bool, err error) {
	if appErr := actor.RequireSelfCandidate(a, candidateID); appErr != nil {
		return nil, false, appErr
	}

	id, counterErr := s.counter.Next(ctx, counter.Favorite)
	if counterErr != nil {
		return nil, false, apperror.Internal(counterErr)
	}

	favorite := &model.Favorite{
		FavoriteID:  id,
		CandidateID: candidateID,
		JobID:       jobID,
		CreatedAt:   time.Now(),
	}
	created, createErr := s.repo.Create(ctx, favorite)
	if createErr != nil {
		return nil, false, apperror.Internal(createErr)
	}
	if created {
		return favorite.ToDTO(), false, nil
	}

	// Lost the race to a concurrent add for the same pair.
	existing, getErr := s.repo.GetByCandidateAndJob(ctx, candidateID, jobID)
	if getErr != nil {
		return nil, false, apperror.Internal(getErr)
	}
	if existing == nil {
		return nil, false, apperror.Internal(errors.New("favorite insert reported a conflict but no row was found"))
	}
	return existing.ToDTO(), true, nil
}

func (s *FavoriteService) Remove(ctx context.Context, a *actor.Actor, candidateID, jobID int64) error {
	if appErr := actor.RequireSelfCandidate(a, candidateID); appErr != nil {
		return appErr
	}
	if err := s.repo.Delete(ctx, candidateID, jobID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
