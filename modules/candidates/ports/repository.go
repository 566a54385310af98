// Package ports declares the repository seam the candidates service
// consumes.
package ports

import (
	"context"

	"github.com/avpavlenko/jobboard/modules/candidates/model"
)

type Repository interface {
	GetByID(ctx context.Context, candidateID int64) (*model.Candidate, error)
	Create(ctx context.Context, candidate *model.Candidate) error
	Update(ctx context.Context, candidate *model.Candidate) error
}
