// Package service holds the Companies business logic: the §4.5
// in-memory composite ranker, actor-scope enforcement on mutations,
// and the adapter that lets the jobs module hydrate company summaries
// without importing this package's model directly.
package service

import (
	"context"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/avpavlenko/jobboard/internal/platform/actor"
	"github.com/avpavlenko/jobboard/internal/platform/apperror"
	"github.com/avpavlenko/jobboard/internal/platform/counter"
	"github.com/avpavlenko/jobboard/internal/search/companyrank"
	"github.com/avpavlenko/jobboard/internal/search/query"
	"github.com/avpavlenko/jobboard/internal/search/text"
	"github.com/avpavlenko/jobboard/modules/companies/model"
	"github.com/avpavlenko/jobboard/modules/companies/ports"
	jobsmodel "github.com/avpavlenko/jobboard/modules/jobs/model"
)

// CreateRequest is the validated input to Create.
type CreateRequest struct {
	Name           string
	Description    string
	Country        string
	State          string
	City           string
	Address        string
	URL            string
	CompanySizeMin *int
	CompanySizeMax *int
}

// UpdateRequest carries only the fields the caller supplied.
type UpdateRequest struct {
	Name           *string
	Description    *string
	Country        *string
	State          *string
	City           *string
	Address        *string
	URL            *string
	CompanySizeMin *int
	CompanySizeMax *int
}

type CompanyService struct {
	repo    ports.Repository
	counter *counter.Counter
	weights companyrank.Weights
}

func NewCompanyService(repo ports.Repository, ctr *counter.Counter) *CompanyService {
	return &CompanyService{repo: repo, counter: ctr, weights: companyrank.DefaultWeights()}
}

// List chooses between the plain filter+sort path (no q) and the §4.5
// in-memory composite ranker (q present): the ranker fetches every
// candidate matching filter, scores and sorts in memory, then slices
// the page out of the ranked slice.
func (s *CompanyService) List(ctx context.Context, filter model.Filter, q string, sortBy, sortDir string, page query.Pagination) ([]*model.DTO, int, error) {
	normQ := strings.TrimSpace(q)

	if normQ == "" {
		sort := query.ParseSort(sortBy, sortDir, model.AllowedSortFields, model.DefaultSortField, true)
		companies, total, err := s.repo.List(ctx, filter, sort, page)
		if err != nil {
			return nil, 0, apperror.Internal(err)
		}
		return toDTOs(companies), total, nil
	}

	candidates, err := s.repo.ListCandidates(ctx, filter)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}

	normQ = text.Normalize(normQ)
	col := collate.New(language.Und)
	scored := companyrank.Rank(candidates, func(c model.Company) float64 {
		return companyrank.Score(companyrank.Candidate{
			Name:        c.Name,
			Description: c.Description,
			Country:     c.Country,
			State:       c.State,
			City:        c.City,
		}, normQ, s.weights)
	}, func(a, b companyrank.Scored[model.Company]) bool {
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if cmp := col.CompareString(a.Item.Name, b.Item.Name); cmp != 0 {
			return cmp < 0
		}
		return a.Item.CreatedAt.After(b.Item.CreatedAt)
	})

	total := len(scored)
	start := page.Skip
	if start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}

	page2 := scored[start:end]
	companies := make([]model.Company, len(page2))
	for i, sc := range page2 {
		companies[i] = sc.Item
	}
	return toDTOs(companies), total, nil
}

func toDTOs(companies []model.Company) []*model.DTO {
	dtos := make([]*model.DTO, len(companies))
	for i := range companies {
		dtos[i] = companies[i].ToDTO()
	}
	return dtos
}

func (s *CompanyService) GetByID(ctx context.Context, companyID int64) (*model.DTO, error) {
	company, err := s.repo.GetByID(ctx, companyID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if company == nil {
		return nil, apperror.NotFound("company not found")
	}
	return company.ToDTO(), nil
}

// SummariesForJobs converts this module's Summary into the jobs
// module's CompanySummary so the two modules never need to share a
// model package.
func (s *CompanyService) SummariesForJobs(ctx context.Context, companyIDs []int64) (map[int64]jobsmodel.CompanySummary, error) {
	summaries, err := s.repo.SummariesByIDs(ctx, companyIDs)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	out := make(map[int64]jobsmodel.CompanySummary, len(summaries))
	for id, s := range summaries {
		out[id] = jobsmodel.CompanySummary{CompanyID: s.CompanyID, Name: s.Name, LogoFullPath: s.LogoFullPath}
	}
	return out, nil
}

// JobCompanyLookup adapts CompanyService to jobs/service.CompanyLookup
// without the jobs module importing this package's model.
type JobCompanyLookup struct {
	companies *CompanyService
}

func NewJobCompanyLookup(companies *CompanyService) *JobCompanyLookup {
	return &JobCompanyLookup{companies: companies}
}

func (a *JobCompanyLookup) SummariesByIDs(ctx context.Context, companyIDs []int64) (map[int64]jobsmodel.CompanySummary, error) {
	return a.companies.SummariesForJobs(ctx, companyIDs)
}

// Create requires a company or admin actor. A company actor may only
// create its own profile once per account; that uniqueness is left to
// the caller's auth flow (account creation), not enforced here.
func (s *CompanyService) Create(ctx context.Context, a *actor.Actor, req CreateRequest) (*model.DTO, error) {
	if appErr := actor.RequireType(a, actor.Company, actor.Admin); appErr != nil {
		return nil, appErr
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperror.BadRequest("name is required")
	}
	if req.CompanySizeMin != nil && req.CompanySizeMax != nil && *req.CompanySizeMin > *req.CompanySizeMax {
		return nil, apperror.BadRequest("company_size_min must be <= company_size_max")
	}

	id, err := s.counter.Next(ctx, counter.Company)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := time.Now()
	company := &model.Company{
		CompanyID:      id,
		Name:           strings.TrimSpace(req.Name),
		Description:    req.Description,
		Country:        req.Country,
		State:          req.State,
		City:           req.City,
		Address:        req.Address,
		URL:            req.URL,
		CompanySizeMin: req.CompanySizeMin,
		CompanySizeMax: req.CompanySizeMax,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, company); err != nil {
		return nil, apperror.Internal(err)
	}
	return company.ToDTO(), nil
}

func (s *CompanyService) Update(ctx context.Context, a *actor.Actor, companyID int64, req UpdateRequest) (*model.DTO, error) {
	company, err := s.repo.GetByID(ctx, companyID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if company == nil {
		return nil, apperror.NotFound("company not found")
	}
	if appErr := actor.RequireSelfCompany(a, company.CompanyID); appErr != nil {
		return nil, appErr
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, apperror.BadRequest("name cannot be blank")
		}
		company.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		company.Description = *req.Description
	}
	if req.Country != nil {
		company.Country = *req.Country
	}
	if req.State != nil {
		company.State = *req.State
	}
	if req.City != nil {
		company.City = *req.City
	}
	if req.Address != nil {
		company.Address = *req.Address
	}
	if req.URL != nil {
		company.URL = *req.URL
	}
	if req.CompanySizeMin != nil {
		company.CompanySizeMin = req.CompanySizeMin
	}
	if req.CompanySizeMax != nil {
		company.CompanySizeMax = req.CompanySizeMax
	}
	if company.CompanySizeMin != nil && company.CompanySizeMax != nil && *company.CompanySizeMin > *company.CompanySizeMax {
		return nil, apperror.BadRequest("company_size_min must be <= company_size_max")
	}
	company.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, company); err != nil {
		return nil, apperror.Internal(err)
	}
	return company.ToDTO(), nil
}

func (s *CompanyService) Delete(ctx context.Context, a *actor.Actor, companyID int64) error {
	company, err := s.repo.GetByID(ctx, companyID)
	if err != nil {
		return apperror.Internal(err)
	}
	if company == nil {
		return apperror.NotFound("company not found")
	}
	if appErr := actor.RequireSelfCompany(a, company.CompanyID); appErr != nil {
		return appErr
	}
	if err := s.repo.Delete(ctx, companyID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
