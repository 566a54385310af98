package ports

import (
	"context"

	"github.com/avpavlenko/jobboard/modules/users/model"
)

// Repository defines the data access contract for users.
type Repository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, userID int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}
