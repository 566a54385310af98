package repository

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avpavlenko/jobboard/modules/candidates/model"
)

func candidateColumnNames() []string {
	return []string{"candidate_id", "full_name", "email", "phone", "linkedin_url", "country", "state", "city", "headline", "created_at"}
}

func TestCandidateRepository_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCandidateRepositoryWithPool(mock)
	now := time.Now()

	mock.ExpectQuery("SELECT candidate_id, full_name, email").
		WillReturnRows(pgxmock.NewRows(candidateColumnNames()).
			AddRow(int64(1), "Jane Doe", "jane@example.com", nil, nil, nil, nil, nil, nil, now))

	candidate, err := repo.GetByID(context.Background(), 1)

	require.NoError(t, err)
	require.NotNil(t, candidate)
	assert.Equal(t, "Jane Doe", candidate.FullName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCandidateRepository_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCandidateRepositoryWithPool(mock)

	mock.ExpectQuery("SELECT candidate_id, full_name, email").
		WillReturnRows(pgxmock.NewRows(candidateColumnNames()))

	candidate, err := repo.GetByID(context.Background(), 404)

	require.NoError(t, err)
	assert.Nil(t, candidate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCandidateRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCandidateRepositoryWithPool(mock)

	mock.ExpectExec("INSERT INTO candidates").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	candidate := &model.Candidate{
		CandidateID: 1, FullName: "Jane Doe",
		Contact:   model.Contact{Email: "jane@example.com"},
		CreatedAt: time.Now(),
	}
	err = repo.Create(context.Background(), candidate)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
