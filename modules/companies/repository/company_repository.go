// Package repository implements the Companies storage layer.
package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avpavlenko/jobboard/internal/search/query"
	"github.com/avpavlenko/jobboard/modules/companies/model"
	"github.com/avpavlenko/jobboard/modules/companies/ports"
)

type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type CompanyRepository struct {
	pool DBPool
}

func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{pool: pool}
}

func NewCompanyRepositoryWithPool(pool DBPool) *CompanyRepository {
	return &CompanyRepository{pool: pool}
}

var _ ports.Repository = (*CompanyRepository)(nil)

const companyColumns = `company_id, name, description, country, state, city, address, url, company_size_min, company_size_max, created_at, updated_at`

func buildCompanyWhere(f model.Filter) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	add := func(clause string, arg interface{}) {
		args = append(args, arg)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if f.Country != nil {
		add("country = $%d", *f.Country)
	}
	if f.State != nil {
		add("state = $%d", *f.State)
	}
	if f.City != nil {
		add("city = $%d", *f.City)
	}
	if f.MinSize != nil {
		add("(company_size_max IS NULL OR company_size_max >= $%d)", *f.MinSize)
	}
	if f.MaxSize != nil {
		add("(company_size_min IS NULL OR company_size_min <= $%d)", *f.MaxSize)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *CompanyRepository) List(ctx context.Context, filter model.Filter, sort query.Sort, page query.Pagination) ([]model.Company, int, error) {
	where, args := buildCompanyWhere(filter)

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM companies"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dir := "DESC"
	if sort.Dir == query.SortAsc {
		dir = "ASC"
	}
	column := model.SortColumn(sort.Field)

	queryArgs := append(append([]interface{}{}, args...), page.Limit, page.Skip)
	sql := fmt.Sprintf(`SELECT %s FROM companies%s ORDER BY %s %s, company_id DESC LIMIT $%d OFFSET $%d`,
		companyColumns, where, column, dir, len(queryArgs)-1, len(queryArgs))

	rows, err := r.pool.Query(ctx, sql, queryArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	companies, err := scanCompanies(rows)
	if err != nil {
		return nil, 0, err
	}
	return companies, total, nil
}

func (r *CompanyRepository) ListCandidates(ctx context.Context, filter model.Filter) ([]model.Company, error) {
	where, args := buildCompanyWhere(filter)
	sql := fmt.Sprintf(`SELECT %s FROM companies%s`, companyColumns, where)

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCompanies(rows)
}

func (r *CompanyRepository) GetByID(ctx context.Context, companyID int64) (*model.Company, error) {
	sql := fmt.Sprintf(`SELECT %s FROM companies WHERE company_id = $1`, companyColumns)
	var c model.Company
	err := r.pool.QueryRow(ctx, sql, companyID).Scan(
		&c.CompanyID, &c.Name, &c.Description, &c.Country, &c.State, &c.City,
		&c.Address, &c.URL, &c.CompanySizeMin, &c.CompanySizeMax, &c.CreatedAt, &c.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CompanyRepository) SummariesByIDs(ctx context.Context, companyIDs []int64) (map[int64]model.Summary, error) {
	out := make(map[int64]model.Summary, len(companyIDs))
	if len(companyIDs) == 0 {
		return out, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT company_id, name FROM companies WHERE company_id = ANY($1)`, companyIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		out[id] = model.Summary{CompanyID: id, Name: name, LogoFullPath: model.LogoFullPath(id)}
	}
	return out, rows.Err()
}

func (r *CompanyRepository) Create(ctx context.Context, c *model.Company) error {
	sql := fmt.Sprintf(`INSERT INTO companies (%s) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`, companyColumns)
	_, err := r.pool.Exec(ctx, sql,
		c.CompanyID, c.Name, c.Description, c.Country, c.State, c.City,
		c.Address, c.URL, c.CompanySizeMin, c.CompanySizeMax, c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func (r *CompanyRepository) Update(ctx context.Context, c *model.Company) error {
	const sql = `
		UPDATE companies SET name=$2, description=$3, country=$4, state=$5, city=$6,
		       address=$7, url=$8, company_size_min=$9, company_size_max=$10, updated_at=$11
		WHERE company_id=$1
	`
	_, err := r.pool.Exec(ctx, sql,
		c.CompanyID, c.Name, c.Description, c.Country, c.State, c.City,
		c.Address, c.URL, c.CompanySizeMin, c.CompanySizeMax, c.UpdatedAt,
	)
	return err
}

func (r *CompanyRepository) Delete(ctx context.Context, companyID int64) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM companies WHERE company_id = $1", companyID)
	return err
}

func scanCompanies(rows pgx.Rows) ([]model.Company, error) {
	var companies []model.Company
	for rows.Next() {
		var c model.Company
		if err := rows.Scan(
			&c.CompanyID, &c.Name, &c.Description, &c.Country, &c.State, &c.City,
			&c.Address, &c.URL, &c.CompanySizeMin, &c.CompanySizeMax, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}
