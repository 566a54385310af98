// Package repository implements the Applications storage layer.
package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avpavlenko/jobboard/internal/search/query"
	"github.com/avpavlenko/jobboard/modules/applications/model"
	"github.com/avpavlenko/jobboard/modules/applications/ports"
)

type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type ApplicationRepository struct {
	pool DBPool
}

func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{pool: pool}
}

func NewApplicationRepositoryWithPool(pool DBPool) *ApplicationRepository {
	return &ApplicationRepository{pool: pool}
}

var _ ports.Repository = (*ApplicationRepository)(nil)

const applicationColumns = `application_id, job_id, candidate_id, company_id, status, applied_at, updated_at`

func buildApplicationWhere(f model.Filter) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	add := func(clause string, arg interface{}) {
		args = append(args, arg)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if f.CandidateID != nil {
		add("candidate_id = $%d", *f.CandidateID)
	}
	if f.CompanyID != nil {
		add("company_id = $%d", *f.CompanyID)
	}
	if f.JobID != nil {
		add("job_id = $%d", *f.JobID)
	}
	if f.Status != nil {
		add("status = $%d", *f.Status)
	}
	if f.From != nil {
		add("applied_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("applied_at <= $%d", *f.To)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *ApplicationRepository) List(ctx context.Context, filter model.Filter, sort query.Sort, page query.Pagination) ([]model.Application, int, error) {
	where, args := buildApplicationWhere(filter)

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM applications"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dir := "DESC"
	if sort.Dir == query.SortAsc {
		dir = "ASC"
	}
	column := model.SortColumn(sort.Field)

	queryArgs := append(append([]interface{}{}, args...), page.Limit, page.Skip)
	sql := fmt.Sprintf(`SELECT %s FROM applications%s ORDER BY %s %s, application_id DESC LIMIT $%d OFFSET $%d`,
		applicationColumns, where, column, dir, len(queryArgs)-1, len(queryArgs))

	rows, err := r.pool.Query(ctx, sql, queryArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	applications, err := scanApplications(rows)
	if err != nil {
		return nil, 0, err
	}
	return applications, total, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, applicationID int64) (*model.Application, error) {
	sql := fmt.Sprintf(`SELECT %s FROM applications WHERE application_id = $1`, applicationColumns)
	return r.scanOne(ctx, sql, applicationID)
}

func (r *ApplicationRepository) GetByCandidateAndJob(ctx context.Context, candidateID, jobID int64) (*model.Application, error) {
	sql := fmt.Sprintf(`SELECT %s FROM applications WHERE candidate_id = $1 AND job_id = $2`, applicationColumns)
	return r.scanOne(ctx, sql, candidateID, jobID)
}

func (r *ApplicationRepository) scanOne(ctx context.Context, sql string, args ...interface{}) (*model.Application, error) {
	var a model.Application
	err := r.pool.QueryRow(ctx, sql, args...).Scan(
		&a.ApplicationID, &a.JobID, &a.CandidateID, &a.CompanyID, &a.Status, &a.AppliedAt, &a.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ApplicationRepository) Create(ctx context.Context, a *model.Application) (bool, error) {
	sql := fmt.Sprintf(
		`INSERT INTO applications (%s) VALUES ($1,$2,$3,$4,$5,$6,$7)
		 ON CONFLICT (candidate_id, job_id) DO NOTHING
		 RETURNING application_id`,
		applicationColumns,
	)
	var id int64
	err := r.pool.QueryRow(ctx, sql,
		a.ApplicationID, a.JobID, a.CandidateID, a.CompanyID, a.Status, a.AppliedAt, a.UpdatedAt,
	).Scan(&id)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, applicationID int64, status model.Status, updatedAt time.Time) error {
	const sql = `UPDATE applications SET status = $2, updated_at = $3 WHERE application_id = $1`
	_, err := r.pool.Exec(ctx, sql, applicationID, status, updatedAt)
	return err
}

func (r *ApplicationRepository) CountByStatus(ctx context.Context, filter model.Filter) ([]model.StatusCount, error) {
	where, args := buildApplicationWhere(filter)
	sql := fmt.Sprintf(`SELECT status, COUNT(*) FROM applications%s GROUP BY status`, where)

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []model.StatusCount
	for rows.Next() {
		var sc model.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, sc)
	}
	return counts, rows.Err()
}

func (r *ApplicationRepository) StatusesForJobs(ctx context.Context, candidateID int64, jobIDs []int64) (map[int64]model.Status, error) {
	out := make(map[int64]model.Status, len(jobIDs))
	if len(jobIDs) == 0 {
		return out, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT job_id, status FROM applications WHERE candidate_id = $1 AND job_id = ANY($2)`, candidateID, jobIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var jobID int64
		var status model.Status
		if err := rows.Scan(&jobID, &status); err != nil {
			return nil, err
		}
		out[jobID] = status
	}
	return out, rows.Err()
}

func (r *ApplicationRepository) ApplicationExists(ctx context.Context, companyID, candidateID int64) (bool, error) {
	var exists bool
	sql := `SELECT EXISTS(SELECT 1 FROM applications WHERE company_id = $1 AND candidate_id = $2)`
	if err := r.pool.QueryRow(ctx, sql, companyID, candidateID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanApplications(rows pgx.Rows) ([]model.Application, error) {
	var applications []model.Application
	for rows.Next() {
		var a model.Application
		if err := rows.Scan(
			&a.ApplicationID, &a.JobID, &a.CandidateID, &a.CompanyID, &a.Status, &a.AppliedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		applications = append(applications, a)
	}
	return applications, rows.Err()
}
