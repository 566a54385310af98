// Package ports declares the repository seam the applications service
// consumes.
package ports

import (
	"context"
	"time"

	"github.com/avpavlenko/jobboard/internal/search/query"
	"github.com/avpavlenko/jobboard/modules/applications/model"
)

// Repository is the storage-layer contract for Applications.
type Repository interface {
	List(ctx context.Context, filter model.Filter, sort query.Sort, page query.Pagination) ([]model.Application, int, error)
	GetByID(ctx context.Context, applicationID int64) (*model.Application, error)
	GetByCandidateAndJob(ctx context.Context, candidateID, jobID int64) (*model.Application, error)

	// Create inserts app atomically, ignoring a conflict on the
	// (candidate_id, job_id) unique constraint. created is false when a
	// concurrent insert won the race; callers re-read via
	// GetByCandidateAndJob in that case.
	Create(ctx context.Context, app *model.Application) (created bool, err error)
	UpdateStatus(ctx context.Context, applicationID int64, status model.Status, updatedAt time.Time) error
	CountByStatus(ctx context.Context, filter model.Filter) ([]model.StatusCount, error)

	// StatusesForJobs batch-resolves candidateID's application status
	// across jobIDs, for the "have I applied" badge on a job listing.
	StatusesForJobs(ctx context.Context, candidateID int64, jobIDs []int64) (map[int64]model.Status, error)

	// ApplicationExists backs actor.ApplicationExistenceChecker: whether
	// at least one Application exists for the (companyID, candidateID) pair.
	ApplicationExists(ctx context.Context, companyID, candidateID int64) (bool, error)
}
