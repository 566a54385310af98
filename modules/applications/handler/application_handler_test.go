package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avpavlenko/jobboard/internal/platform/actor"
	"github.com/avpavlenko/jobboard/internal/platform/counter"
	"github.com/avpavlenko/jobboard/internal/search/query"
	"github.com/avpavlenko/jobboard/modules/applications/model"
	"github.com/avpavlenko/jobboard/modules/applications/ports"
	"github.com/avpavlenko/jobboard/modules/applications/service"
)

type mockApplicationRepository struct {
	ListFunc                 func(ctx context.Context, filter model.Filter, sort query.Sort, page query.Pagination) ([]model.Application, int, error)
	GetByIDFunc              func(ctx context.Context, id int64) (*model.Application, error)
	GetByCandidateAndJobFunc func(ctx context.Context, candidateID, jobID int64) (*model.Application, error)
	CreateFunc               func(ctx context.Context, a *model.Application) (bool, error)
	UpdateStatusFunc         func(ctx context.Context, id int64, status model.Status, updatedAt time.Time) error
	CountByStatusFunc        func(ctx context.Context, filter model.Filter) ([]model.StatusCount, error)
	ApplicationExistsFunc    func(ctx context.Context, companyID, candidateID int64) (bool, error)
	StatusesForJobsFunc      func(ctx context.Context, candidateID int64, jobIDs []int64) (map[int64]model.Status, error)
}

func (m *mockApplicationRepository) List(ctx context.Context, filter model.Filter, sort query.Sort, page query.Pagination) ([]model.Application, int, error) {
	return m.ListFunc(ctx, filter, sort, page)
}
func (m *mockApplicationRepository) GetByID(ctx context.Context, id int64) (*model.Application, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockApplicationRepository) GetByCandidateAndJob(ctx context.Context, candidateID, jobID int64) (*model.Application, error) {
	return m.GetByCandidateAndJobFunc(ctx, candidateID, jobID)
}
func (m *mockApplicationRepository) Create(ctx context.Context, a *model.Application) (bool, error) {
	return m.CreateFunc(ctx, a)
}
func (m *mockApplicationRepository) UpdateStatus(ctx context.Context, id int64, status model.Status, updatedAt time.Time) error {
	return m.UpdateStatusFunc(ctx, id, status, updatedAt)
}
func (m *mockApplicationRepository) CountByStatus(ctx context.Context, filter model.Filter) ([]model.StatusCount, error) {
	return m.CountByStatusFunc(ctx, filter)
}
func (m *mockApplicationRepository) ApplicationExists(ctx context.Context, companyID, candidateID int64) (bool, error) {
	return m.ApplicationExistsFunc(ctx, companyID, candidateID)
}
func (m *mockApplicationRepository) StatusesForJobs(ctx context.Context, candidateID int64, jobIDs []int64) (map[int64]model.Status, error) {
	return m.StatusesForJobsFunc(ctx, candidateID, jobIDs)
}

var _ ports.Repository = (*mockApplicationRepository)(nil)

type fakeJobLookup struct{ companyID int64 }

func (f *fakeJobLookup) JobCompanyID(ctx context.Context, jobID int64) (int64, error) {
	return f.companyID, nil
}

type fakeCounterPool struct{ seq int64 }

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

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func withActor(a *actor.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("actor", a)
		c.Next()
	}
}

func TestApplicationHandler_Create_IdempotentDuplicate(t *testing.T) {
	existing := &model.Application{ApplicationID: 1, JobID: 42, CandidateID: 5, CompanyID: 30, Status: model.Applied}
	repo := &mockApplicationRepository{
		CreateFunc:               func(ctx context.Context, a *model.Application) (bool, error) { return false, nil },
		GetByCandidateAndJobFunc: func(ctx context.Context, candidateID, jobID int64) (*model.Application, error) { return existing, nil },
	}
	svc := service.NewApplicationService(repo, &fakeJobLookup{companyID: 30}, newTestCounter())
	h := NewApplicationHandler(svc)

	router := setupTestRouter()
	candidateID := int64(5)
	h.RegisterRoutes(router.Group("/api"), withActor(&actor.Actor{Type: actor.Candidate, CandidateID: &candidateID}))

	body, _ := json.Marshal(map[string]interface{}{"job_id": 42})
	req := httptest.NewRequest(http.MethodPost, "/api/applications", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "already_exists", resp.Status)
}

func TestApplicationHandler_UpdateStatus_InvalidStatus(t *testing.T) {
	app := &model.Application{ApplicationID: 1, JobID: 42, CandidateID: 5, CompanyID: 30, Status: model.Applied}
	repo := &mockApplicationRepository{
		GetByIDFunc: func(ctx context.Context, id int64) (*model.Application, error) { return app, nil },
	}
	svc := service.NewApplicationService(repo, &fakeJobLookup{}, newTestCounter())
	h := NewApplicationHandler(svc)

	router := setupTestRouter()
	companyID := int64(30)
	h.RegisterRoutes(router.Group("/api"), withActor(&actor.Actor{Type: actor.Company, CompanyID: &companyID}))

	body, _ := json.Marshal(map[string]interface{}{"status": "NOT_A_STATUS"})
	req := httptest.NewRequest(http.MethodPatch, "/api/applications/1/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp struct {
		Status  string   `json:"status"`
		Allowed []string `json:"allowed"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_status", resp.Status)
	assert.NotEmpty(t, resp.Allowed)
}
