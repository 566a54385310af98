// Package ports declares the repository seam the companies service
// consumes.
package ports

import (
	"context"

	"github.com/avpavlenko/jobboard/internal/search/query"
	"github.com/avpavlenko/jobboard/modules/companies/model"
)

// Repository is the storage-layer contract for Company.
type Repository interface {
	// List runs the plain (no-q) path: filter + sort + paginate.
	List(ctx context.Context, filter model.Filter, sort query.Sort, page query.Pagination) ([]model.Company, int, error)

	// ListCandidates fetches every company matching filter, unranked and
	// unpaginated, for the caller to score and paginate in memory (§4.5).
	ListCandidates(ctx context.Context, filter model.Filter) ([]model.Company, error)

	GetByID(ctx context.Context, companyID int64) (*model.Company, error)
	SummariesByIDs(ctx context.Context, companyIDs []int64) (map[int64]model.Summary, error)
	Create(ctx context.Context, company *model.Company) error
	Update(ctx context.Context, company *model.Company) error
	Delete(ctx context.Context, companyID int64) error
}
