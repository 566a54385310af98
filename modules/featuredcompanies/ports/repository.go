// Package ports declares the repository seam the featured-companies
// service consumes.
package ports

import (
	"context"

	"github.com/avpavlenko/jobboard/modules/featuredcompanies/model"
)

// Repository is the storage-layer contract for FeaturedCompany, always
// presented ordered by created_at DESC.
type Repository interface {
	List(ctx context.Context, limit int) ([]model.FeaturedCompany, error)
	Exists(ctx context.Context, companyID int64) (bool, error)
	Add(ctx context.Context, f *model.FeaturedCompany) error
	Remove(ctx context.Context, companyID int64) error
}
