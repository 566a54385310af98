// Package service holds the Candidates business logic: self/admin
// editable profile with an account-email default.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/avpavlenko/jobboard/internal/platform/actor"
	"github.com/avpavlenko/jobboard/internal/platform/apperror"
	"github.com/avpavlenko/jobboard/internal/platform/counter"
	"github.com/avpavlenko/jobboard/modules/candidates/model"
	"github.com/avpavlenko/jobboard/modules/candidates/ports"
)

// CreateRequest is the validated input to Create. Create's accountEmail
// argument is the email the candidate registered with; Email defaults
// to it when blank.
type CreateRequest struct {
	FullName    string
	Email       string
	Phone       *string
	LinkedInURL *string
	Country     *string
	State       *string
	City        *string
	Headline    *string
}

type UpdateRequest struct {
	FullName    *string
	Email       *string
	Phone       *string
	LinkedInURL *string
	Country     *string
	State       *string
	City        *string
	Headline    *string
}

type CandidateService struct {
	repo    ports.Repository
	counter *counter.Counter
}

func NewCandidateService(repo ports.Repository, ctr *counter.Counter) *CandidateService {
	return &CandidateService{repo: repo, counter: ctr}
}

func (s *CandidateService) GetByID(ctx context.Context, candidateID int64) (*model.DTO, error) {
	candidate, err := s.repo.GetByID(ctx, candidateID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if candidate == nil {
		return nil, apperror.NotFound("candidate not found")
	}
	return candidate.ToDTO(), nil
}

// Create mints a new candidate profile, defaulting contact email to
// accountEmail when the request omits one (the registration path).
func (s *CandidateService) Create(ctx context.Context, accountEmail string, req CreateRequest) (*model.DTO, error) {
	if strings.TrimSpace(req.FullName) == "" {
		return nil, apperror.BadRequest("full_name is required")
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = accountEmail
	}
	if email == "" {
		return nil, apperror.BadRequest("contact email is required")
	}

	id, err := s.counter.Next(ctx, counter.Candidate)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	candidate := &model.Candidate{
		CandidateID: id,
		FullName:    strings.TrimSpace(req.FullName),
		Contact:     model.Contact{Email: email, Phone: req.Phone, LinkedInURL: req.LinkedInURL},
		Country:     req.Country,
		State:       req.State,
		City:        req.City,
		Headline:    req.Headline,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, candidate); err != nil {
		return nil, apperror.Internal(err)
	}
	return candidate.ToDTO(), nil
}

func (s *CandidateService) Update(ctx context.Context, a *actor.Actor, candidateID int64, req UpdateRequest) (*model.DTO, error) {
	candidate, err := s.repo.GetByID(ctx, candidateID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if candidate == nil {
		return nil, apperror.NotFound("candidate not found")
	}
	if appErr := actor.RequireSelfCandidate(a, candidateID); appErr != nil {
		return nil, appErr
	}

	if req.FullName != nil {
		if strings.TrimSpace(*req.FullName) == "" {
			return nil, apperror.BadRequest("full_name cannot be blank")
		}
		candidate.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Email != nil {
		if strings.TrimSpace(*req.Email) == "" {
			return nil, apperror.BadRequest("contact email cannot be blank")
		}
		candidate.Contact.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		candidate.Contact.Phone = req.Phone
	}
	if req.LinkedInURL != nil {
		candidate.Contact.LinkedInURL = req.LinkedInURL
	}
	if req.Country != nil {
		candidate.Country = req.Country
	}
	if req.State != nil {
		candidate.State = req.State
	}
	if req.City != nil {
		candidate.City = req.City
	}
	if req.Headline != nil {
		candidate.Headline = req.Headline
	}

	if err := s.repo.Update(ctx, candidate); err != nil {
		return nil, apperror.Internal(err)
	}
	return candidate.ToDTO(), nil
}
