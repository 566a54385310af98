package repository

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avpavlenko/jobboard/internal/search/query"
	"github.com/avpavlenko/jobboard/modules/jobs/model"
)

func jobColumns() []string {
	return []string{
		"job_id", "title", "description", "min_salary", "max_salary", "pay_period", "currency",
		"listed_time", "work_type", "work_location_type", "normalized_salary",
		"city", "state", "country", "company_id", "created_at", "updated_at",
	}
}

func TestJobRepository_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewJobRepositoryWithPool(mock)
	now := time.Now()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM jobs").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery("SELECT job_id, title, description").
		WillReturnRows(pgxmock.NewRows(jobColumns()).
			AddRow(int64(1), "Backend Engineer", "desc", nil, nil, "YEARLY", "USD",
				now, "FULL_TIME", model.Remote, nil, "Austin", "Texas", "US", int64(7), now, now))

	sort := query.Sort{Field: "listed_time", Dir: query.SortDesc}
	page := query.Pagination{Page: 1, Limit: 20, Skip: 0}

	jobs, total, err := repo.List(context.Background(), model.Filter{}, sort, page)

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Backend Engineer", jobs[0].Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepository_ListHybrid(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewJobRepositoryWithPool(mock)
	now := time.Now()

	cols := append(jobColumns(), "total_count")
	mock.ExpectQuery("WITH scored AS").
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow(int64(2), "Senior Backend Engineer", "Go backend role", nil, nil, "YEARLY", "USD",
				now, "FULL_TIME", model.Hybrid, nil, "Austin", "Texas", "US", int64(7), now, now, 1))

	page := query.Pagination{Page: 1, Limit: 20, Skip: 0}
	jobs, total, err := repo.ListHybrid(context.Background(), model.Filter{}, "backend engineer", page)

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Senior Backend Engineer", jobs[0].Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepository_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewJobRepositoryWithPool(mock)

	mock.ExpectQuery("SELECT job_id, title, description").
		WithArgs(int64(404)).
		WillReturnRows(pgxmock.NewRows(jobColumns()))

	job, err := repo.GetByID(context.Background(), 404)

	require.NoError(t, err)
	assert.Nil(t, job)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewJobRepositoryWithPool(mock)
	now := time.Now()
	min, max := 90000.0, 130000.0

	job := &model.Job{
		JobID:            1,
		Title:            "Backend Engineer",
		Description:      "desc",
		MinSalary:        &min,
		MaxSalary:        &max,
		PayPeriod:        "YEARLY",
		Currency:         "USD",
		ListedTime:       now,
		WorkType:         "FULL_TIME",
		WorkLocationType: model.Remote,
		NormalizedSalary: model.NormalizedSalary(&min, &max, "YEARLY"),
		City:             "Austin",
		State:            "Texas",
		Country:          "US",
		CompanyID:        7,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	mock.ExpectExec("INSERT INTO jobs").
		WithArgs(
			job.JobID, job.Title, job.Description, job.MinSalary, job.MaxSalary, job.PayPeriod, job.Currency,
			job.ListedTime, job.WorkType, job.WorkLocationType, job.NormalizedSalary,
			job.City, job.State, job.Country, job.CompanyID, job.CreatedAt, job.UpdatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), job)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepository_Delete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewJobRepositoryWithPool(mock)

	mock.ExpectExec("DELETE FROM jobs").
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err = repo.Delete(context.Background(), 5)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepository_FilterOptions(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewJobRepositoryWithPool(mock)

	mock.ExpectQuery("SELECT DISTINCT work_type").
		WillReturnRows(pgxmock.NewRows([]string{"work_type"}).AddRow("FULL_TIME").AddRow("PART_TIME"))
	mock.ExpectQuery("SELECT DISTINCT work_location_type").
		WillReturnRows(pgxmock.NewRows([]string{"work_location_type"}).AddRow("REMOTE"))
	mock.ExpectQuery("SELECT DISTINCT pay_period").
		WillReturnRows(pgxmock.NewRows([]string{"pay_period"}).AddRow("YEARLY").AddRow("HOURLY"))

	opts, err := repo.FilterOptions(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"FULL_TIME", "PART_TIME"}, opts.WorkTypes)
	assert.Equal(t, []string{"REMOTE"}, opts.WorkLocationTypes)
	assert.Equal(t, []string{"YEARLY", "HOURLY"}, opts.PayPeriods)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepository_SuggestTitles(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewJobRepositoryWithPool(mock)

	mock.ExpectQuery("SELECT title, COUNT").
		WillReturnRows(pgxmock.NewRows([]string{"title", "count"}).
			AddRow("Senior Backend Engineer", 50).
			AddRow("Backend Developer", 5))

	titles, err := repo.SuggestTitles(context.Background(), "backend", 10)

	require.NoError(t, err)
	assert.Equal(t, []string{"Backend Developer", "Senior Backend Engineer"}, titles)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepository_SuggestTitles_BlankQueryReturnsEmpty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewJobRepositoryWithPool(mock)

	titles, err := repo.SuggestTitles(context.Background(), "   ", 10)

	require.NoError(t, err)
	assert.Empty(t, titles)
}
