// Package ports declares the repository seam the favorites service
// consumes.
package ports

import (
	"context"

	"github.com/avpavlenko/jobboard/internal/search/query"
	"github.com/avpavlenko/jobboard/modules/favorites/model"
)

// Repository is the storage-layer contract for Favorites.
type Repository interface {
	List(ctx context.Context, candidateID int64, page query.Pagination) ([]model.Favorite, int, error)
	GetByCandidateAndJob(ctx context.Context, candidateID, jobID int64) (*model.Favorite, error)

	// Create inserts f atomically, ignoring a conflict on the
	// (candidate_id, job_id) unique constraint. created is false when a
	// concurrent insert won the race; callers re-read via
	// GetByCandidateAndJob in that case.
	Create(ctx context.Context, f *model.Favorite) (created bool, err error)
	Delete(ctx context.Context, candidateID, jobID int64) error
}
