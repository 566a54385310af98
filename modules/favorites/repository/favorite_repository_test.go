package repository

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avpavlenko/jobboard/internal/search/query"
	"github.com/avpavlenko/jobboard/modules/favorites/model"
)

func favoriteColumnNames() []string {
	return []string{"favorite_id", "candidate_id", "job_id", "created_at"}
}

func TestFavoriteRepository_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewFavoriteRepositoryWithPool(mock)
	now := time.Now()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM favorites").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT favorite_id, candidate_id, job_id").
		WillReturnRows(pgxmock.NewRows(favoriteColumnNames()).AddRow(int64(1), int64(5), int64(42), now))

	favorites, total, err := repo.List(context.Background(), 5, query.Pagination{Limit: 20, Skip: 0})

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, favorites, 1)
	assert.Equal(t, int64(42), favorites[0].JobID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteRepository_GetByCandidateAndJob_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewFavoriteRepositoryWithPool(mock)

	mock.ExpectQuery("SELECT favorite_id, candidate_id, job_id").
		WillReturnRows(pgxmock.NewRows(favoriteColumnNames()))

	favorite, err := repo.GetByCandidateAndJob(context.Background(), 5, 42)

	require.NoError(t, err)
	assert.Nil(t, favorite)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewFavoriteRepositoryWithPool(mock)

	mock.ExpectQuery("INSERT INTO favorites").
		WillReturnRows(pgxmock.NewRows([]string{"favorite_id"}).AddRow(int64(1)))

	favorite := &model.Favorite{FavoriteID: 1, CandidateID: 5, JobID: 42, CreatedAt: time.Now()}
	created, err := repo.Create(context.Background(), favorite)

	require.NoError(t, err)
	assert.True(t, created)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteRepository_Create_ConflictReturnsNoRows(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewFavoriteRepositoryWithPool(mock)

	mock.ExpectQuery("INSERT INTO favorites").
		WillReturnRows(pgxmock.NewRows([]string{"favorite_id"}))

	favorite := &model.Favorite{FavoriteID: 1, CandidateID: 5, JobID: 42, CreatedAt: time.Now()}
	created, err := repo.Create(context.Background(), favorite)

	require.NoError(t, err)
	assert.False(t, created)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteRepository_Delete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewFavoriteRepositoryWithPool(mock)

	mock.ExpectExec("DELETE FROM favorites").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err = repo.Delete(context.Background(), 5, 42)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
