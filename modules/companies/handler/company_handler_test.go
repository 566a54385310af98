package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avpavlenko/jobboard/internal/platform/actor"
	"github.com/avpavlenko/jobboard/internal/platform/counter"
	"github.com/avpavlenko/jobboard/internal/search/query"
	"github.com/avpavlenko/jobboard/modules/companies/model"
	"github.com/avpavlenko/jobboard/modules/companies/ports"
	"github.com/avpavlenko/jobboard/modules/companies/service"
	jobsservice "github.com/avpavlenko/jobboard/modules/jobs/service"
)

type mockCompanyRepository struct {
	ListFunc           func(ctx context.Context, filter model.Filter, sort query.Sort, page query.Pagination) ([]model.Company, int, error)
	ListCandidatesFunc func(ctx context.Context, filter model.Filter) ([]model.Company, error)
	GetByIDFunc        func(ctx context.Context, companyID int64) (*model.Company, error)
	SummariesByIDsFunc func(ctx context.Context, ids []int64) (map[int64]model.Summary, error)
	CreateFunc         func(ctx context.Context, company *model.Company) error
	UpdateFunc         func(ctx context.Context, company *model.Company) error
	DeleteFunc         func(ctx context.Context, companyID int64) error
}

func (m *mockCompanyRepository) List(ctx context.Context, filter model.Filter, sort query.Sort, page query.Pagination) ([]model.Company, int, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter, sort, page)
	}
	return nil, 0, nil
}
func (m *mockCompanyRepository) ListCandidates(ctx context.Context, filter model.Filter) ([]model.Company, error) {
	if m.ListCandidatesFunc != nil {
		return m.ListCandidatesFunc(ctx, filter)
	}
	return nil, nil
}
func (m *mockCompanyRepository) GetByID(ctx context.Context, companyID int64) (*model.Company, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, companyID)
	}
	return nil, nil
}
func (m *mockCompanyRepository) SummariesByIDs(ctx context.Context, ids []int64) (map[int64]model.Summary, error) {
	if m.SummariesByIDsFunc != nil {
		return m.SummariesByIDsFunc(ctx, ids)
	}
	return nil, nil
}
func (m *mockCompanyRepository) Create(ctx context.Context, company *model.Company) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, company)
	}
	return nil
}
func (m *mockCompanyRepository) Update(ctx context.Context, company *model.Company) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, company)
	}
	return nil
}
func (m *mockCompanyRepository) Delete(ctx context.Context, companyID int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, companyID)
	}
	return nil
}

var _ ports.Repository = (*mockCompanyRepository)(nil)

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

func TestCompanyHandler_List(t *testing.T) {
	repo := &mockCompanyRepository{
		ListFunc: func(ctx context.Context, filter model.Filter, sort query.Sort, page query.Pagination) ([]model.Company, int, error) {
			return []model.Company{{CompanyID: 7, Name: "Acme Corp"}}, 1, nil
		},
	}
	svc := service.NewCompanyService(repo, newTestCounter())
	h := NewCompanyHandler(svc, jobsservice.NewJobService(nil, newTestCounter(), nil), nil)

	router := setupTestRouter()
	h.RegisterRoutes(router.Group("/api"), withActor(nil))

	req := httptest.NewRequest(http.MethodGet, "/api/companies", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Meta struct{ Total int } `json:"meta"`
		Data []model.DTO         `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Meta.Total)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Acme Corp", body.Data[0].Name)
}

func TestCompanyHandler_Get_NotFound(t *testing.T) {
	repo := &mockCompanyRepository{
		GetByIDFunc: func(ctx context.Context, id int64) (*model.Company, error) { return nil, nil },
	}
	svc := service.NewCompanyService(repo, newTestCounter())
	h := NewCompanyHandler(svc, jobsservice.NewJobService(nil, newTestCounter(), nil), nil)

	router := setupTestRouter()
	h.RegisterRoutes(router.Group("/api"), withActor(nil))

	req := httptest.NewRequest(http.MethodGet, "/api/companies/404", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompanyHandler_Create_RequiresActor(t *testing.T) {
	repo := &mockCompanyRepository{}
	svc := service.NewCompanyService(repo, newTestCounter())
	h := NewCompanyHandler(svc, jobsservice.NewJobService(nil, newTestCounter(), nil), nil)

	router := setupTestRouter()
	h.RegisterRoutes(router.Group("/api"), func(c *gin.Context) { c.Next() })

	body, _ := json.Marshal(map[string]any{"name": "Acme Corp"})
	req := httptest.NewRequest(http.MethodPost, "/api/companies", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCompanyHandler_Create_CompanyActorSucceeds(t *testing.T) {
	repo := &mockCompanyRepository{
		CreateFunc: func(ctx context.Context, c *model.Company) error { return nil },
	}
	svc := service.NewCompanyService(repo, newTestCounter())
	h := NewCompanyHandler(svc, jobsservice.NewJobService(nil, newTestCounter(), nil), nil)

	companyID := int64(7)
	router := setupTestRouter()
	h.RegisterRoutes(router.Group("/api"), withActor(&actor.Actor{Type: actor.Company, UserID: 7, CompanyID: &companyID}))

	body, _ := json.Marshal(map[string]any{"name": "Acme Corp"})
	req := httptest.NewRequest(http.MethodPost, "/api/companies", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}
