// Package ports declares the repository seam the jobs service consumes,
// kept independent of any storage engine so the service can be tested
// against a hand-rolled mock.
package ports

import (
	"context"

	"github.com/avpavlenko/jobboard/internal/search/query"
	"github.com/avpavlenko/jobboard/modules/jobs/model"
)

// FilterOptions is the deduplicated, sorted set of values the jobs
// filter-options endpoint exposes.
type FilterOptions struct {
	WorkTypes         []string
	WorkLocationTypes []string
	PayPeriods        []string
}

// Repository is the storage-layer contract for Jobs.
type Repository interface {
	// List runs filter+sort mode (spec §4.4 modes 1 and 2): either no
	// text query, or a text query with an explicit sort field.
	List(ctx context.Context, filter model.Filter, sort query.Sort, page query.Pagination) ([]model.Job, int, error)

	// ListHybrid runs the hybrid-ranked mode (spec §4.4 mode 3): a text
	// query with no explicit sort, combining index score, per-token
	// hits, phrase hits, and recency into one ordering.
	ListHybrid(ctx context.Context, filter model.Filter, q string, page query.Pagination) ([]model.Job, int, error)

	GetByID(ctx context.Context, jobID int64) (*model.Job, error)
	Create(ctx context.Context, job *model.Job) error
	Update(ctx context.Context, job *model.Job) error
	Delete(ctx context.Context, jobID int64) error

	FilterOptions(ctx context.Context) (FilterOptions, error)
	SuggestTitles(ctx context.Context, q string, limit int) ([]string, error)
}
