// Package repository implements the Featured Companies storage layer.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avpavlenko/jobboard/modules/featuredcompanies/model"
	"github.com/avpavlenko/jobboard/modules/featuredcompanies/ports"
)

type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type FeaturedCompanyRepository struct {
	pool DBPool
}

func NewFeaturedCompanyRepository(pool *pgxpool.Pool) *FeaturedCompanyRepository {
	return &FeaturedCompanyRepository{pool: pool}
}

func NewFeaturedCompanyRepositoryWithPool(pool DBPool) *FeaturedCompanyRepository {
	return &FeaturedCompanyRepository{pool: pool}
}

var _ ports.Repository = (*FeaturedCompanyRepository)(nil)

func (r *FeaturedCompanyRepository) List(ctx context.Context, limit int) ([]model.FeaturedCompany, error) {
	rows, err := r.pool.Query(ctx, `SELECT company_id, created_at FROM featured_companies ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []model.FeaturedCompany
	for rows.Next() {
		var f model.FeaturedCompany
		if err := rows.Scan(&f.CompanyID, &f.CreatedAt); err != nil {
			return nil, err
		}
		companies = append(companies, f)
	}
	return companies, rows.Err()
}

func (r *FeaturedCompanyRepository) Exists(ctx context.Context, companyID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM featured_companies WHERE company_id = $1)`, companyID).Scan(&exists)
	return exists, err
}

func (r *FeaturedCompanyRepository) Add(ctx context.Context, f *model.FeaturedCompany) error {
	const sql = `INSERT INTO featured_companies (company_id, created_at) VALUES ($1,$2)`
	_, err := r.pool.Exec(ctx, sql, f.CompanyID, f.CreatedAt)
	return err
}

func (r *FeaturedCompanyRepository) Remove(ctx context.Context, companyID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM featured_companies WHERE company_id = $1`, companyID)
	return err
}
