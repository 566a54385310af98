// Package service holds the Jobs business logic: mode selection between
// filter+sort and the hybrid ranker, actor-scope enforcement on
// mutations, and normalized-salary recomputation.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/avpavlenko/jobboard/internal/platform/actor"
	"github.com/avpavlenko/jobboard/internal/platform/apperror"
	"github.com/avpavlenko/jobboard/internal/platform/cache"
	"github.com/avpavlenko/jobboard/internal/platform/counter"
	"github.com/avpavlenko/jobboard/internal/search/query"
	"github.com/avpavlenko/jobboard/internal/search/text"
	"github.com/avpavlenko/jobboard/modules/jobs/model"
	"github.com/avpavlenko/jobboard/modules/jobs/ports"
)

const filterOptionsCacheTTL = 5 * time.Minute
const filterOptionsCacheKey = "filter_options"

// CompanyLookup is the narrow seam into the companies module the
// formatter needs for batch company hydration; kept independent of
// the companies model to avoid an import cycle.
type CompanyLookup interface {
	SummariesByIDs(ctx context.Context, companyIDs []int64) (map[int64]model.CompanySummary, error)
}

// CreateRequest is the validated input to Create.
type CreateRequest struct {
	CompanyID        *int64
	Title            string
	Description      string
	MinSalary        *float64
	MaxSalary        *float64
	PayPeriod        string
	Currency         string
	ListedTime       *time.Time
	WorkType         string
	WorkLocationType string
	City             string
	State            string
	Country          string
}

// UpdateRequest carries only the fields the caller supplied.
type UpdateRequest struct {
	Title            *string
	Description      *string
	MinSalary        *float64
	MaxSalary        *float64
	PayPeriod        *string
	Currency         *string
	WorkType         *string
	WorkLocationType *string
	City             *string
	State            *string
	Country          *string
}

type JobService struct {
	repo      ports.Repository
	counter   *counter.Counter
	companies CompanyLookup
	cache     *cache.Cache
}

func NewJobService(repo ports.Repository, ctr *counter.Counter, companies CompanyLookup) *JobService {
	return &JobService{repo: repo, counter: ctr, companies: companies}
}

// NewJobServiceWithCache additionally wires a TTL cache over
// FilterOptions, invalidated on every Create/Update/Delete.
func NewJobServiceWithCache(repo ports.Repository, ctr *counter.Counter, companies CompanyLookup, c *cache.Cache) *JobService {
	return &JobService{repo: repo, counter: ctr, companies: companies, cache: c}
}

// List chooses between filter+sort and the hybrid ranker per spec §4.4:
// no q → mode 1; q and sortBy → mode 2 (text predicate + explicit sort);
// q and no sortBy → mode 3 (hybrid ranker).
func (s *JobService) List(ctx context.Context, filter model.Filter, q string, sortBy, sortDir string, page query.Pagination, includeCompany bool) ([]*model.DTO, query.Pagination, int, error) {
	tokens := text.Tokenize(q)

	var jobs []model.Job
	var total int
	var err error

	switch {
	case len(tokens) == 0:
		sort := query.ParseSort(sortBy, sortDir, model.AllowedSortFields, model.DefaultSortField, true)
		jobs, total, err = s.repo.List(ctx, filter, sort, page)
	case sortBy != "":
		normQ := *text.NormalizeSearchTerm(q)
		filter.Q = &normQ
		sort := query.ParseSort(sortBy, sortDir, model.AllowedSortFields, model.DefaultSortField, true)
		jobs, total, err = s.repo.List(ctx, filter, sort, page)
	default:
		normQ := *text.NormalizeSearchTerm(q)
		jobs, total, err = s.repo.ListHybrid(ctx, filter, normQ, page)
	}
	if err != nil {
		return nil, page, 0, apperror.Internal(err)
	}

	dtos, err := s.hydrate(ctx, jobs, includeCompany)
	if err != nil {
		return nil, page, 0, err
	}
	return dtos, page, total, nil
}

func (s *JobService) hydrate(ctx context.Context, jobs []model.Job, includeCompany bool) ([]*model.DTO, error) {
	dtos := make([]*model.DTO, len(jobs))
	for i := range jobs {
		dtos[i] = jobs[i].ToDTO()
	}

	if !includeCompany || s.companies == nil || len(dtos) == 0 {
		return dtos, nil
	}

	ids := make([]int64, 0, len(dtos))
	seen := make(map[int64]struct{}, len(dtos))
	for _, d := range dtos {
		if _, ok := seen[d.CompanyID]; ok {
			continue
		}
		seen[d.CompanyID] = struct{}{}
		ids = append(ids, d.CompanyID)
	}

	summaries, err := s.companies.SummariesByIDs(ctx, ids)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	for _, d := range dtos {
		if summary, ok := summaries[d.CompanyID]; ok {
			s := summary
			d.Company = &s
		}
	}
	return dtos, nil
}

func (s *JobService) GetByID(ctx context.Context, jobID int64, includeCompany bool) (*model.DTO, error) {
	job, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if job == nil {
		return nil, apperror.NotFound("job not found")
	}
	dtos, err := s.hydrate(ctx, []model.Job{*job}, includeCompany)
	if err != nil {
		return nil, err
	}
	return dtos[0], nil
}

// Create requires a company or admin actor; admin must supply CompanyID
// on the request, a company actor is always scoped to its own CompanyID.
func (s *JobService) Create(ctx context.Context, a *actor.Actor, req CreateRequest) (*model.DTO, error) {
	if appErr := actor.RequireType(a, actor.Company, actor.Admin); appErr != nil {
		return nil, appErr
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperror.BadRequest("title is required")
	}
	if req.MinSalary != nil && req.MaxSalary != nil && *req.MinSalary > *req.MaxSalary {
		return nil, apperror.BadRequest("min_salary must be <= max_salary")
	}
	if req.WorkLocationType != "" && !model.IsValidWorkLocationType(req.WorkLocationType) {
		return nil, apperror.BadRequest("invalid work_location_type")
	}

	var companyID int64
	switch a.Type {
	case actor.Admin:
		if req.CompanyID == nil {
			return nil, apperror.BadRequest("company_id is required for admin-created jobs")
		}
		companyID = *req.CompanyID
	case actor.Company:
		companyID = *a.CompanyID
	}

	id, err := s.counter.Next(ctx, counter.Job)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := time.Now()
	listedTime := now
	if req.ListedTime != nil {
		listedTime = *req.ListedTime
	}

	job := &model.Job{
		JobID:            id,
		Title:            strings.TrimSpace(req.Title),
		Description:      req.Description,
		MinSalary:        req.MinSalary,
		MaxSalary:        req.MaxSalary,
		PayPeriod:        req.PayPeriod,
		Currency:         req.Currency,
		ListedTime:       listedTime,
		WorkType:         req.WorkType,
		WorkLocationType: model.WorkLocationType(req.WorkLocationType),
		NormalizedSalary: model.NormalizedSalary(req.MinSalary, req.MaxSalary, req.PayPeriod),
		City:             req.City,
		State:            req.State,
		Country:          req.Country,
		CompanyID:        companyID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, job); err != nil {
		return nil, apperror.Internal(err)
	}
	s.invalidateFilterOptions(ctx)
	return job.ToDTO(), nil
}

func (s *JobService) Update(ctx context.Context, a *actor.Actor, jobID int64, req UpdateRequest) (*model.DTO, error) {
	job, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if job == nil {
		return nil, apperror.NotFound("job not found")
	}
	if appErr := actor.RequireSelfCompany(a, job.CompanyID); appErr != nil {
		return nil, appErr
	}

	recompute := false
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, apperror.BadRequest("title cannot be blank")
		}
		job.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.MinSalary != nil {
		job.MinSalary = req.MinSalary
		recompute = true
	}
	if req.MaxSalary != nil {
		job.MaxSalary = req.MaxSalary
		recompute = true
	}
	if req.PayPeriod != nil {
		job.PayPeriod = *req.PayPeriod
		recompute = true
	}
	if job.MinSalary != nil && job.MaxSalary != nil && *job.MinSalary > *job.MaxSalary {
		return nil, apperror.BadRequest("min_salary must be <= max_salary")
	}
	if req.Currency != nil {
		job.Currency = *req.Currency
	}
	if req.WorkType != nil {
		job.WorkType = *req.WorkType
	}
	if req.WorkLocationType != nil {
		if !model.IsValidWorkLocationType(*req.WorkLocationType) {
			return nil, apperror.BadRequest("invalid work_location_type")
		}
		job.WorkLocationType = model.WorkLocationType(*req.WorkLocationType)
	}
	if req.City != nil {
		job.City = *req.City
	}
	if req.State != nil {
		job.State = *req.State
	}
	if req.Country != nil {
		job.Country = *req.Country
	}
	if recompute {
		job.NormalizedSalary = model.NormalizedSalary(job.MinSalary, job.MaxSalary, job.PayPeriod)
	}
	job.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, job); err != nil {
		return nil, apperror.Internal(err)
	}
	s.invalidateFilterOptions(ctx)
	return job.ToDTO(), nil
}

func (s *JobService) Delete(ctx context.Context, a *actor.Actor, jobID int64) error {
	job, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return apperror.Internal(err)
	}
	if job == nil {
		return apperror.NotFound("job not found")
	}
	if appErr := actor.RequireSelfCompany(a, job.CompanyID); appErr != nil {
		return appErr
	}
	if err := s.repo.Delete(ctx, jobID); err != nil {
		return apperror.Internal(err)
	}
	s.invalidateFilterOptions(ctx)
	return nil
}

func (s *JobService) FilterOptions(ctx context.Context) (ports.FilterOptions, error) {
	var cached ports.FilterOptions
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, filterOptionsCacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	opts, err := s.repo.FilterOptions(ctx)
	if err != nil {
		return ports.FilterOptions{}, apperror.Internal(err)
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, filterOptionsCacheKey, opts, filterOptionsCacheTTL)
	}
	return opts, nil
}

func (s *JobService) invalidateFilterOptions(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Invalidate(ctx, filterOptionsCacheKey)
}

func (s *JobService) SuggestTitles(ctx context.Context, q string, limit int) ([]string, error) {
	titles, err := s.repo.SuggestTitles(ctx, q, limit)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return titles, nil
}

// JobCompanyID resolves a job's owning company, the one fact the
// applications module needs from a Job at creation time. Kept on the
// service rather than exposing the raw repository to other modules.
func (s *JobService) JobCompanyID(ctx context.Context, jobID int64) (int64, error) {
	job, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	if job == nil {
		return 0, apperror.NotFound("job not found")
	}
	return job.CompanyID, nil
}
