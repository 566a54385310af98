// Package service holds the Applications business logic: candidate
// self-service creation with idempotent duplicate handling, actor-scope
// enforcement on reads and status transitions, and the pipeline-count
// aggregation.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/avpavlenko/jobboard/internal/platform/actor"
	"github.com/avpavlenko/jobboard/internal/platform/apperror"
	"github.com/avpavlenko/jobboard/internal/platform/counter"
	"github.com/avpavlenko/jobboard/internal/search/query"
	"github.com/avpavlenko/jobboard/modules/applications/model"
	"github.com/avpavlenko/jobboard/modules/applications/ports"
)

// ErrInvalidStatus is returned by UpdateStatus when the requested value
// is not one of model.AllowedStatuses; the mutation does not occur.
var ErrInvalidStatus = errors.New("invalid status")

// JobLookup is the narrow seam into the jobs module the service needs
// to derive company_id at creation time, kept independent of the jobs
// model to avoid an import cycle.
type JobLookup interface {
	JobCompanyID(ctx context.Context, jobID int64) (int64, error)
}

type ApplicationService struct {
	repo    ports.Repository
	jobs    JobLookup
	counter *counter.Counter
}

func NewApplicationService(repo ports.Repository, jobs JobLookup, ctr *counter.Counter) *ApplicationService {
	return &ApplicationService{repo: repo, jobs: jobs, counter: ctr}
}

func (s *ApplicationService) List(ctx context.Context, a *actor.Actor, filter model.Filter, sortBy, sortDir string, page query.Pagination) ([]*model.DTO, int, error) {
	if appErr := actor.RequireActor(a); appErr != nil {
		return nil, 0, appErr
	}
	switch a.Type {
	case actor.Candidate:
		if a.CandidateID == nil {
			return nil, 0, apperror.Forbidden("")
		}
		filter.CandidateID = a.CandidateID
	case actor.Company:
		if a.CompanyID == nil {
			return nil, 0, apperror.Forbidden("")
		}
		filter.CompanyID = a.CompanyID
	}

	sort := query.ParseSort(sortBy, sortDir, model.AllowedSortFields, model.DefaultSortField, true)
	applications, total, err := s.repo.List(ctx, filter, sort, page)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return toDTOs(applications), total, nil
}

func (s *ApplicationService) GetByID(ctx context.Context, a *actor.Actor, applicationID int64) (*model.DTO, error) {
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if app == nil {
		return nil, apperror.NotFound("application not found")
	}
	if appErr := actor.RequireApplicationOwnership(a, actor.ApplicationOwnership{CandidateID: app.CandidateID, CompanyID: app.CompanyID}); appErr != nil {
		return nil, appErr
	}
	return app.ToDTO(), nil
}

// Create applies the owning candidate to jobID. A pre-existing
// (candidateID, jobID) pair is idempotent: the existing record is
// returned with alreadyExists=true instead of erroring.
func (s *ApplicationService) Create(ctx context.Context, a *actor.Actor, jobID int64) (dto *model.DTO, alreadyExists bool, err error) {
	if appErr := actor.RequireType(a, actor.Candidate, actor.Admin); appErr != nil {
		return nil, false, appErr
	}
	if a.Type == actor.Candidate && a.CandidateID == nil {
		return nil, false, apperror.Forbidden("")
	}
	candidateID := *a.CandidateID

	companyID, lookupErr := s.jobs.JobCompanyID(ctx, jobID)
	if lookupErr != nil {
		return nil, false, apperror.As(lookupErr)
	}

	id, counterErr := s.counter.Next(ctx, counter.Application)
	if counterErr != nil {
		return nil, false, apperror.Internal(counterErr)
	}

	now := time.Now()
	app := &model.Application{
		ApplicationID: id,
		JobID:         jobID,
		CandidateID:   candidateID,
		CompanyID:     companyID,
		Status:        model.Applied,
		AppliedAt:     now,
		UpdatedAt:     now,
	}
	created, createErr := s.repo.Create(ctx, app)
	if createErr != nil {
		return nil, false, apperror.Internal(createErr)
	}
	if created {
		return app.ToDTO(), false, nil
	}

	// Lost the race to a concurrent create for the same pair.
	existing, getErr := s.repo.GetByCandidateAndJob(ctx, candidateID, jobID)
	if getErr != nil {
		return nil, false, apperror.Internal(getErr)
	}
	if existing == nil {
		return nil, false, apperror.Internal(errors.New("application insert reported a conflict but no row was found"))
	}
	return existing.ToDTO(), true, nil
}

// UpdateStatus transitions an application to status, admitted to the
// owning candidate's company or admin. An unrecognized status returns
// ErrInvalidStatus and leaves the record untouched.
func (s *ApplicationService) UpdateStatus(ctx context.Context, a *actor.Actor, applicationID int64, status string) (*model.DTO, error) {
	if !model.IsValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if app == nil {
		return nil, apperror.NotFound("application not found")
	}
	if appErr := actor.RequireType(a, actor.Company, actor.Admin); appErr != nil {
		return nil, appErr
	}
	if appErr := actor.RequireApplicationOwnership(a, actor.ApplicationOwnership{CandidateID: app.CandidateID, CompanyID: app.CompanyID}); appErr != nil {
		return nil, appErr
	}

	now := time.Now()
	if err := s.repo.UpdateStatus(ctx, applicationID, model.Status(status), now); err != nil {
		return nil, apperror.Internal(err)
	}
	app.Status = model.Status(status)
	app.UpdatedAt = now
	return app.ToDTO(), nil
}

// PipelineCounts returns group-by-status counts over filter, admitted
// to admin or the company scoped by filter.CompanyID.
func (s *ApplicationService) PipelineCounts(ctx context.Context, a *actor.Actor, filter model.Filter) ([]model.StatusCount, error) {
	if a == nil || a.Type != actor.Admin {
		if filter.CompanyID == nil {
			return nil, apperror.BadRequest("company_id is required")
		}
		if appErr := actor.RequireSelfCompany(a, *filter.CompanyID); appErr != nil {
			return nil, appErr
		}
	}
	counts, err := s.repo.CountByStatus(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return counts, nil
}

// StatusesForJobs batch-resolves the caller's own application status
// across jobIDs, admitted to the owning candidate or admin.
func (s *ApplicationService) StatusesForJobs(ctx context.Context, a *actor.Actor, candidateID int64, jobIDs []int64) (map[int64]model.Status, error) {
	if appErr := actor.RequireSelfCandidate(a, candidateID); appErr != nil {
		return nil, appErr
	}
	statuses, err := s.repo.StatusesForJobs(ctx, candidateID, jobIDs)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return statuses, nil
}

func toDTOs(applications []model.Application) []*model.DTO {
	dtos := make([]*model.DTO, 0, len(applications))
	for i := range applications {
		dtos = append(dtos, applications[i].ToDTO())
	}
	return dtos
}
