package repository

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avpavlenko/jobboard/modules/users/model"
)

func userColumnNames() []string {
	return []string{"user_id", "email", "full_name", "password_hash", "actor_type", "company_id", "candidate_id", "created_at", "updated_at"}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepositoryWithPool(mock)
	now := time.Now()

	mock.ExpectQuery("SELECT user_id, email, full_name").
		WillReturnRows(pgxmock.NewRows(userColumnNames()).
			AddRow(int64(1), "jane@example.com", "Jane Doe", "hash", "candidate", nil, int64(9), now, now))

	u, err := repo.GetByEmail(context.Background(), "jane@example.com")

	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Jane Doe", u.FullName)
	assert.Equal(t, int64(9), *u.CandidateID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepositoryWithPool(mock)

	mock.ExpectQuery("SELECT user_id, email, full_name").
		WillReturnRows(pgxmock.NewRows(userColumnNames()))

	u, err := repo.GetByEmail(context.Background(), "missing@example.com")

	require.NoError(t, err)
	assert.Nil(t, u)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepositoryWithPool(mock)
	now := time.Now()

	mock.ExpectQuery("SELECT user_id, email, full_name").
		WillReturnRows(pgxmock.NewRows(userColumnNames()).
			AddRow(int64(1), "jane@example.com", "Jane Doe", "hash", "candidate", nil, int64(9), now, now))

	u, err := repo.GetByID(context.Background(), 1)

	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, int64(1), u.UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepositoryWithPool(mock)
	now := time.Now()
	candidateID := int64(9)

	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), &model.User{
		UserID:       1,
		Email:        "jane@example.com",
		FullName:     "Jane Doe",
		PasswordHash: "hash",
		ActorType:    "candidate",
		CandidateID:  &candidateID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
