package handler

import (
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
	"github.com/avpavlenko/jobboard/modules/favorites/model"
	"github.com/avpavlenko/jobboard/modules/favorites/ports"
	"github.com/avpavlenko/jobboard/modules/favorites/service"
)

type mockFavoriteRepository struct {
	ListFunc                 func(ctx context.Context, candidateID int64, page query.Pagination) ([]model.Favorite, int, error)
	GetByCandidateAndJobFunc func(ctx context.Context, candidateID, jobID int64) (*model.Favorite, error)
	CreateFunc               func(ctx context.Context, f *model.Favorite) (bool, error)
	DeleteFunc               func(ctx context.Context, candidateID, jobID int64) error
}

func (m *mockFavoriteRepository) List(ctx context.Context, candidateID int64, page query.Pagination) ([]model.Favorite, int, error) {
	return m.ListFunc(ctx, candidateID, page)
}
func (m *mockFavoriteRepository) GetByCandidateAndJob(ctx context.Context, candidateID, jobID int64) (*model.Favorite, error) {
	return m.GetByCandidateAndJobFunc(ctx, candidateID, jobID)
}
func (m *mockFavoriteRepository) Create(ctx context.Context, f *model.Favorite) (bool, error) {
	return m.CreateFunc(ctx, f)
}
func (m *mockFavoriteRepository) Delete(ctx context.Context, candidateID, jobID int64) error {
	return m.DeleteFunc(ctx, candidateID, jobID)
}

var _ ports.Repository = (*mockFavoriteRepository)(nil)

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

func TestFavoriteHandler_Add_FirstTimeThenIdempotent(t *testing.T) {
	var stored *model.Favorite
	repo := &mockFavoriteRepository{
		GetByCandidateAndJobFunc: func(ctx context.Context, candidateID, jobID int64) (*model.Favorite, error) { return stored, nil },
		CreateFunc: func(ctx context.Context, f *model.Favorite) (bool, error) {
			if stored != nil {
				return false, nil
			}
			stored = f
			return true, nil
		},
	}
	svc := service.NewFavoriteService(repo, newTestCounter())
	h := NewFavoriteHandler(svc)

	router := setupTestRouter()
	candidateID := int64(5)
	router.Use(withActor(&actor.Actor{Type: actor.Candidate, CandidateID: &candidateID}))
	h.RegisterRoutes(router.Group("/api"), func(c *gin.Context) { c.Next() })

	req := httptest.NewRequest(http.MethodPost, "/api/favorites/42", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "added", resp.Status)

	req2 := httptest.NewRequest(http.MethodPost, "/api/favorites/42", nil)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req2)

	require.Equal(t, http.StatusOK, w2.Code)
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &resp))
	assert.Equal(t, "already_favorite", resp.Status)
}
