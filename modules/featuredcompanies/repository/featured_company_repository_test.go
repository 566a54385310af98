package repository

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avpavlenko/jobboard/modules/featuredcompanies/model"
)

func TestFeaturedCompanyRepository_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewFeaturedCompanyRepositoryWithPool(mock)
	now := time.Now()

	mock.ExpectQuery("SELECT company_id, created_at FROM featured_companies").
		WillReturnRows(pgxmock.NewRows([]string{"company_id", "created_at"}).AddRow(int64(7), now))

	companies, err := repo.List(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, int64(7), companies[0].CompanyID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFeaturedCompanyRepository_Exists(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewFeaturedCompanyRepositoryWithPool(mock)

	mock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.Exists(context.Background(), 7)

	require.NoError(t, err)
	assert.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFeaturedCompanyRepository_Add(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewFeaturedCompanyRepositoryWithPool(mock)

	mock.ExpectExec("INSERT INTO featured_companies").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Add(context.Background(), &model.FeaturedCompany{CompanyID: 7, CreatedAt: time.Now()})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
