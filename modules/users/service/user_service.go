// Package service holds the Users business logic: registration and
// credential lookup. Session issuance lives in the auth module, which
// consumes this service rather than talking to the repository directly.
package service

import (
	"context"

	"github.com/avpavlenko/jobboard/internal/platform/apperror"
	"github.com/avpavlenko/jobboard/internal/platform/auth"
	"github.com/avpavlenko/jobboard/internal/platform/counter"
	"github.com/avpavlenko/jobboard/modules/users/model"
	"github.com/avpavlenko/jobboard/modules/users/ports"
)

type UserService struct {
	repo    ports.Repository
	counter *counter.Counter
}

func NewUserService(repo ports.Repository, ctr *counter.Counter) *UserService {
	return &UserService{repo: repo, counter: ctr}
}

// Register creates a new login identity. Duplicate emails fail with
// ErrUserAlreadyExists.
func (s *UserService) Register(ctx context.Context, email, fullName, password, actorType string, companyID, candidateID *int64) (*model.User, error) {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, apperror.Conflict(model.ErrUserAlreadyExists.Error())
	}

	hash, hashErr := auth.HashPassword(password)
	if hashErr != nil {
		return nil, apperror.Internal(hashErr)
	}

	id, counterErr := s.counter.Next(ctx, counter.User)
	if counterErr != nil {
		return nil, apperror.Internal(counterErr)
	}

	u := model.NewUser(id, email, fullName, hash, actorType)
	u.CompanyID = companyID
	u.CandidateID = candidateID

	if createErr := s.repo.Create(ctx, u); createErr != nil {
		return nil, apperror.Internal(createErr)
	}
	return u, nil
}

// Authenticate verifies email/password and returns the matching user.
// Both a missing account and a bad password fail with ErrInvalidCredentials,
// so callers can't enumerate valid emails from the response.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if u == nil {
		return nil, apperror.Unauthorized(model.ErrInvalidCredentials.Error())
	}
	if verifyErr := auth.VerifyPassword(password, u.PasswordHash); verifyErr != nil {
		return nil, apperror.Unauthorized(model.ErrInvalidCredentials.Error())
	}
	return u, nil
}

func (s *UserService) GetByID(ctx context.Context, userID int64) (*model.User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if u == nil {
		return nil, apperror.NotFound(model.ErrUserNotFound.Error())
	}
	return u, nil
}
