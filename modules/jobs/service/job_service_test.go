package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avpavlenko/jobboard/internal/platform/actor"
	"github.com/avpavlenko/jobboard/internal/platform/cache"
	"github.com/avpavlenko/jobboard/internal/platform/counter"
	"github.com/avpavlenko/jobboard/internal/search/query"
	"github.com/avpavlenko/jobboard/modules/jobs/model"
	"github.com/avpavlenko/jobboard/modules/jobs/ports"
)

type mockJobRepository struct {
	ListFunc          func(ctx context.Context, filter model.Filter, sort query.Sort, page query.Pagination) ([]model.Job, int, error)
	ListHybridFunc    func(ctx context.Context, filter model.Filter, q string, page query.Pagination) ([]model.Job, int, error)
	GetByIDFunc       func(ctx context.Context, jobID int64) (*model.Job, error)
	CreateFunc        func(ctx context.Context, job *model.Job) error
	UpdateFunc        func(ctx context.Context, job *model.Job) error
	DeleteFunc        func(ctx context.Context, jobID int64) error
	FilterOptionsFunc func(ctx context.Context) (ports.FilterOptions, error)
	SuggestTitlesFunc func(ctx context.Context, q string, limit int) ([]string, error)
}

func (m *mockJobRepository) List(ctx context.Context, filter model.Filter, sort query.Sort, page query.Pagination) ([]model.Job, int, error) {
	return m.ListFunc(ctx, filter, sort, page)
}
func (m *mockJobRepository) ListHybrid(ctx context.Context, filter model.Filter, q string, page query.Pagination) ([]model.Job, int, error) {
	return m.ListHybridFunc(ctx, filter, q, page)
}
func (m *mockJobRepository) GetByID(ctx context.Context, jobID int64) (*model.Job, error) {
	return m.GetByIDFunc(ctx, jobID)
}
func (m *mockJobRepository) Create(ctx context.Context, job *model.Job) error {
	return m.CreateFunc(ctx, job)
}
func (m *mockJobRepository) Update(ctx context.Context, job *model.Job) error {
	return m.UpdateFunc(ctx, job)
}
func (m *mockJobRepository) Delete(ctx context.Context, jobID int64) error {
	return m.DeleteFunc(ctx, jobID)
}
func (m *mockJobRepository) FilterOptions(ctx context.Context) (ports.FilterOptions, error) {
	return m.FilterOptionsFunc(ctx)
}
func (m *mockJobRepository) SuggestTitles(ctx context.Context, q string, limit int) ([]string, error) {
	return m.SuggestTitlesFunc(ctx, q, limit)
}

var _ ports.Repository = (*mockJobRepository)(nil)

// fakeCounterPool backs counter.Counter so JobService tests never touch
// a live database: Next always hands back a fixed sequence.
type fakeCounterPool struct {
	seq int64
}

func (p *fakeCounterPool) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	p.seq++
	return fakeRow{p.seq}
}
func (p *fakeCounterPool) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

type fakeRow struct{ seq int64 }

func (r fakeRow) Scan(dest ...interface{}) error {
	*dest[0].(*int64) = r.seq
	return nil
}

func newTestCounter() *counter.Counter {
	return counter.NewWithPool(&fakeCounterPool{})
}

type mockCompanyLookup struct {
	summaries map[int64]model.CompanySummary
}

func (m *mockCompanyLookup) SummariesByIDs(ctx context.Context, ids []int64) (map[int64]model.CompanySummary, error) {
	out := make(map[int64]model.CompanySummary, len(ids))
	for _, id := range ids {
		if s, ok := m.summaries[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

func adminActor() *actor.Actor   { return &actor.Actor{Type: actor.Admin, UserID: 1} }
func candidateActor() *actor.Actor {
	cid := int64(9)
	return &actor.Actor{Type: actor.Candidate, UserID: 9, CandidateID: &cid}
}
func companyActor(id int64) *actor.Actor {
	return &actor.Actor{Type: actor.Company, UserID: id, CompanyID: &id}
}

func TestJobService_Create(t *testing.T) {
	t.Run("company actor creates job scoped to its own company", func(t *testing.T) {
		var created model.Job
		repo := &mockJobRepository{
			CreateFunc: func(ctx context.Context, job *model.Job) error {
				created = *job
				return nil
			},
		}
		svc := NewJobService(repo, newTestCounter(), nil)

		dto, err := svc.Create(context.Background(), companyActor(7), CreateRequest{
			Title: "Backend Engineer", PayPeriod: "YEARLY",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(7), created.CompanyID)
		assert.Equal(t, "Backend Engineer", dto.Title)
	})

	t.Run("admin must supply company_id", func(t *testing.T) {
		repo := &mockJobRepository{}
		svc := NewJobService(repo, newTestCounter(), nil)

		_, err := svc.Create(context.Background(), adminActor(), CreateRequest{Title: "Role"})

		require.Error(t, err)
	})

	t.Run("candidate actor forbidden", func(t *testing.T) {
		repo := &mockJobRepository{}
		svc := NewJobService(repo, newTestCounter(), nil)

		_, err := svc.Create(context.Background(), candidateActor(), CreateRequest{Title: "Role"})

		require.Error(t, err)
	})

	t.Run("blank title rejected", func(t *testing.T) {
		repo := &mockJobRepository{}
		svc := NewJobService(repo, newTestCounter(), nil)

		_, err := svc.Create(context.Background(), companyActor(1), CreateRequest{Title: "   "})

		require.Error(t, err)
	})

	t.Run("recomputes normalized salary", func(t *testing.T) {
		var created model.Job
		repo := &mockJobRepository{
			CreateFunc: func(ctx context.Context, job *model.Job) error {
				created = *job
				return nil
			},
		}
		svc := NewJobService(repo, newTestCounter(), nil)
		min, max := 80000.0, 100000.0

		_, err := svc.Create(context.Background(), companyActor(1), CreateRequest{
			Title: "Engineer", MinSalary: &min, MaxSalary: &max, PayPeriod: "YEARLY",
		})

		require.NoError(t, err)
		require.NotNil(t, created.NormalizedSalary)
		assert.Equal(t, 90000.0, *created.NormalizedSalary)
	})
}

func TestJobService_Update(t *testing.T) {
	baseJob := func() *model.Job {
		return &model.Job{JobID: 1, Title: "Old", CompanyID: 7}
	}

	t.Run("owning company can update", func(t *testing.T) {
		job := baseJob()
		repo := &mockJobRepository{
			GetByIDFunc: func(ctx context.Context, id int64) (*model.Job, error) { return job, nil },
			UpdateFunc:  func(ctx context.Context, j *model.Job) error { return nil },
		}
		svc := NewJobService(repo, newTestCounter(), nil)
		newTitle := "New Title"

		dto, err := svc.Update(context.Background(), companyActor(7), 1, UpdateRequest{Title: &newTitle})

		require.NoError(t, err)
		assert.Equal(t, "New Title", dto.Title)
	})

	t.Run("non-owning company forbidden", func(t *testing.T) {
		job := baseJob()
		repo := &mockJobRepository{
			GetByIDFunc: func(ctx context.Context, id int64) (*model.Job, error) { return job, nil },
		}
		svc := NewJobService(repo, newTestCounter(), nil)
		newTitle := "New Title"

		_, err := svc.Update(context.Background(), companyActor(999), 1, UpdateRequest{Title: &newTitle})

		require.Error(t, err)
	})

	t.Run("missing job is not found", func(t *testing.T) {
		repo := &mockJobRepository{
			GetByIDFunc: func(ctx context.Context, id int64) (*model.Job, error) { return nil, nil },
		}
		svc := NewJobService(repo, newTestCounter(), nil)

		_, err := svc.Update(context.Background(), companyActor(7), 1, UpdateRequest{})

		require.Error(t, err)
	})
}

func TestJobService_Delete(t *testing.T) {
	t.Run("admin can delete any job", func(t *testing.T) {
		job := &model.Job{JobID: 1, CompanyID: 7}
		repo := &mockJobRepository{
			GetByIDFunc: func(ctx context.Context, id int64) (*model.Job, error) { return job, nil },
			DeleteFunc:  func(ctx context.Context, id int64) error { return nil },
		}
		svc := NewJobService(repo, newTestCounter(), nil)

		err := svc.Delete(context.Background(), adminActor(), 1)

		require.NoError(t, err)
	})
}

func TestJobService_List_ModeSelection(t *testing.T) {
	t.Run("no q uses filter+sort", func(t *testing.T) {
		called := false
		repo := &mockJobRepository{
			ListFunc: func(ctx context.Context, filter model.Filter, sort query.Sort, page query.Pagination) ([]model.Job, int, error) {
				called = true
				return nil, 0, nil
			},
		}
		svc := NewJobService(repo, newTestCounter(), nil)

		_, _, _, err := svc.List(context.Background(), model.Filter{}, "", "", "", query.Pagination{Limit: 20}, false)

		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("q with sortBy uses filter+sort with text predicate", func(t *testing.T) {
		var gotFilter model.Filter
		repo := &mockJobRepository{
			ListFunc: func(ctx context.Context, filter model.Filter, sort query.Sort, page query.Pagination) ([]model.Job, int, error) {
				gotFilter = filter
				return nil, 0, nil
			},
		}
		svc := NewJobService(repo, newTestCounter(), nil)

		_, _, _, err := svc.List(context.Background(), model.Filter{}, "backend", "min_salary", "", query.Pagination{Limit: 20}, false)

		require.NoError(t, err)
		require.NotNil(t, gotFilter.Q)
		assert.Equal(t, "backend", *gotFilter.Q)
	})

	t.Run("q without sortBy uses hybrid ranker", func(t *testing.T) {
		called := false
		repo := &mockJobRepository{
			ListHybridFunc: func(ctx context.Context, filter model.Filter, q string, page query.Pagination) ([]model.Job, int, error) {
				called = true
				return nil, 0, nil
			},
		}
		svc := NewJobService(repo, newTestCounter(), nil)

		_, _, _, err := svc.List(context.Background(), model.Filter{}, "backend", "", "", query.Pagination{Limit: 20}, false)

		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("punctuation-only q normalizes to empty token set and falls back to filter+sort", func(t *testing.T) {
		hybridCalled := false
		listCalled := false
		repo := &mockJobRepository{
			ListFunc: func(ctx context.Context, filter model.Filter, sort query.Sort, page query.Pagination) ([]model.Job, int, error) {
				listCalled = true
				return nil, 0, nil
			},
			ListHybridFunc: func(ctx context.Context, filter model.Filter, q string, page query.Pagination) ([]model.Job, int, error) {
				hybridCalled = true
				return nil, 0, nil
			},
		}
		svc := NewJobService(repo, newTestCounter(), nil)

		_, _, _, err := svc.List(context.Background(), model.Filter{}, "!!!", "", "", query.Pagination{Limit: 20}, false)

		require.NoError(t, err)
		assert.True(t, listCalled)
		assert.False(t, hybridCalled)
	})
}

func TestJobService_List_CompanyHydration(t *testing.T) {
	jobs := []model.Job{{JobID: 1, CompanyID: 7, CreatedAt: time.Now(), UpdatedAt: time.Now()}}
	repo := &mockJobRepository{
		ListFunc: func(ctx context.Context, filter model.Filter, sort query.Sort, page query.Pagination) ([]model.Job, int, error) {
			return jobs, 1, nil
		},
	}
	companies := &mockCompanyLookup{summaries: map[int64]model.CompanySummary{
		7: {CompanyID: 7, Name: "Acme"},
	}}
	svc := NewJobService(repo, newTestCounter(), companies)

	dtos, _, total, err := svc.List(context.Background(), model.Filter{}, "", "", "", query.Pagination{Limit: 20}, true)

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.NotNil(t, dtos[0].Company)
	assert.Equal(t, "Acme", dtos[0].Company.Name)
}

func TestJobService_GetByID_NotFound(t *testing.T) {
	repo := &mockJobRepository{
		GetByIDFunc: func(ctx context.Context, id int64) (*model.Job, error) { return nil, nil },
	}
	svc := NewJobService(repo, newTestCounter(), nil)

	_, err := svc.GetByID(context.Background(), 404, false)

	require.Error(t, err)
}

func TestJobService_FilterOptions_CachesAcrossCalls(t *testing.T) {
	var repoCalls int
	repo := &mockJobRepository{
		FilterOptionsFunc: func(ctx context.Context) (ports.FilterOptions, error) {
			repoCalls++
			return ports.FilterOptions{WorkTypes: []string{"FULL_TIME"}}, nil
		},
	}
	svc := NewJobServiceWithCache(repo, newTestCounter(), nil, cache.New(nil, "test_job_filter_options"))

	first, err := svc.FilterOptions(context.Background())
	require.NoError(t, err)
	second, err := svc.FilterOptions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, repoCalls)
	assert.Equal(t, first, second)
}

func TestJobService_Create_InvalidatesFilterOptionsCache(t *testing.T) {
	var repoCalls int
	repo := &mockJobRepository{
		FilterOptionsFunc: func(ctx context.Context) (ports.FilterOptions, error) {
			repoCalls++
			return ports.FilterOptions{WorkTypes: []string{"FULL_TIME"}}, nil
		},
		CreateFunc: func(ctx context.Context, job *model.Job) error { return nil },
	}
	svc := NewJobServiceWithCache(repo, newTestCounter(), nil, cache.New(nil, "test_job_filter_options"))

	_, err := svc.FilterOptions(context.Background())
	require.NoError(t, err)

	companyID := int64(7)
	_, err = svc.Create(context.Background(), &actor.Actor{Type: actor.Admin}, CreateRequest{Title: "Engineer", CompanyID: &companyID})
	require.NoError(t, err)

	_, err = svc.FilterOptions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, repoCalls)
}
