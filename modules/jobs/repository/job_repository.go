// Package repository implements the Jobs storage layer: filter+sort
// listing and the hybrid text ranker, both expressed as parametrized
// Postgres statements in the CTE-heavy style the rest of this codebase
// uses for aggregate queries.
package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avpavlenko/jobboard/internal/search/query"
	"github.com/avpavlenko/jobboard/internal/search/text"
	"github.com/avpavlenko/jobboard/internal/search/titlesuggest"
	"github.com/avpavlenko/jobboard/modules/jobs/model"
	"github.com/avpavlenko/jobboard/modules/jobs/ports"
)

// DBPool is the slice of pgxpool.Pool this repository needs.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type JobRepository struct {
	pool DBPool
}

func NewJobRepository(pool *pgxpool.Pool) *JobRepository {
	return &JobRepository{pool: pool}
}

func NewJobRepositoryWithPool(pool DBPool) *JobRepository {
	return &JobRepository{pool: pool}
}

var _ ports.Repository = (*JobRepository)(nil)

type whereBuilder struct {
	clauses []string
	args    []interface{}
}

func (w *whereBuilder) add(clause string, arg interface{}) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, fmt.Sprintf(clause, len(w.args)))
}

func (w *whereBuilder) sql() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

func buildFilterWhere(f model.Filter) *whereBuilder {
	w := &whereBuilder{}
	if f.Country != nil {
		w.add("country = $%d", *f.Country)
	}
	if f.State != nil {
		w.add("state = $%d", *f.State)
	}
	if f.City != nil {
		w.add("city = $%d", *f.City)
	}
	if f.WorkType != nil {
		w.add("work_type = $%d", *f.WorkType)
	}
	if f.WorkLocationType != nil {
		w.add("work_location_type = $%d", *f.WorkLocationType)
	}
	if f.PayPeriod != nil {
		w.add("pay_period = $%d", *f.PayPeriod)
	}
	if f.CompanyID != nil {
		w.add("company_id = $%d", *f.CompanyID)
	}
	if f.MinSalary != nil {
		w.add("min_salary >= $%d", *f.MinSalary)
	}
	if f.MaxSalary != nil {
		w.add("max_salary <= $%d", *f.MaxSalary)
	}
	if f.MinNormSalary != nil {
		w.add("normalized_salary >= $%d", *f.MinNormSalary)
	}
	if f.MaxNormSalary != nil {
		w.add("normalized_salary <= $%d", *f.MaxNormSalary)
	}
	if f.ListedFrom != nil {
		w.add("listed_time >= $%d", *f.ListedFrom)
	}
	if f.ListedTo != nil {
		w.add("listed_time <= $%d", *f.ListedTo)
	}
	if f.Q != nil {
		like := "%" + *f.Q + "%"
		w.args = append(w.args, like, like)
		n := len(w.args)
		w.clauses = append(w.clauses, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", n-1, n))
	}
	return w
}

// List implements filter+sort mode: no text query, or an explicit sort.
func (r *JobRepository) List(ctx context.Context, filter model.Filter, sort query.Sort, page query.Pagination) ([]model.Job, int, error) {
	w := buildFilterWhere(filter)

	dir := "DESC"
	if sort.Dir == query.SortAsc {
		dir = "ASC"
	}
	column := model.SortColumn(sort.Field)

	countSQL := "SELECT COUNT(*) FROM jobs" + w.sql()
	var total int
	if err := r.pool.QueryRow(ctx, countSQL, w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args := append([]interface{}{}, w.args...)
	args = append(args, page.Limit, page.Skip)
	listSQL := fmt.Sprintf(`
		SELECT job_id, title, description, min_salary, max_salary, pay_period, currency,
		       listed_time, work_type, work_location_type, normalized_salary,
		       city, state, country, company_id, created_at, updated_at
		FROM jobs
		%s
		ORDER BY %s %s, job_id DESC
		LIMIT $%d OFFSET $%d
	`, w.sql(), column, dir, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	jobs, err := scanJobs(rows)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// ListHybrid implements the hybrid-ranked mode described in spec §4.4:
// a single statement combining tsvector match, per-token hits, phrase
// hits, and recency decay into final_score, with COUNT(*) OVER() as the
// facet total.
func (r *JobRepository) ListHybrid(ctx context.Context, filter model.Filter, q string, page query.Pagination) ([]model.Job, int, error) {
	w := buildFilterWhere(filter)
	tokens := text.Tokenize(q)
	escaped := text.EscapeRegex(q)

	tokenArgs := make([]interface{}, 0, len(tokens))
	for _, t := range tokens {
		tokenArgs = append(tokenArgs, "%"+t+"%")
	}

	// Placeholder positions, computed explicitly rather than derived by
	// arithmetic on shared offsets: filter args, then q (websearch),
	// then one per token, then the escaped phrase, then limit/offset.
	qIdx := len(w.args) + 1
	tokenBaseIdx := qIdx + 1

	titleHitExprs := make([]string, 0, len(tokens))
	descHitExprs := make([]string, 0, len(tokens))
	for i := range tokens {
		ph := tokenBaseIdx + i
		titleHitExprs = append(titleHitExprs, fmt.Sprintf("(CASE WHEN lower(title) LIKE $%d THEN 1 ELSE 0 END)", ph))
		descHitExprs = append(descHitExprs, fmt.Sprintf("(CASE WHEN lower(description) LIKE $%d THEN 1 ELSE 0 END)", ph))
	}

	titleTermScore := "0"
	descTermScore := "0"
	allTermsInTitle := "1"
	if len(tokens) > 0 {
		titleTermScore = strings.Join(titleHitExprs, " + ")
		descTermScore = strings.Join(descHitExprs, " + ")
		allTermsInTitle = fmt.Sprintf("(CASE WHEN (%s) = %d THEN 1 ELSE 0 END)", strings.Join(titleHitExprs, " + "), len(tokens))
	}

	phraseArgIdx := tokenBaseIdx + len(tokens)
	phraseTitle := fmt.Sprintf("(CASE WHEN title ~* $%d THEN 1 ELSE 0 END)", phraseArgIdx)
	phraseDesc := fmt.Sprintf("(CASE WHEN description ~* $%d THEN 1 ELSE 0 END)", phraseArgIdx)

	args := append([]interface{}{}, w.args...)
	args = append(args, q)
	args = append(args, tokenArgs...)
	args = append(args, escaped)
	limitIdx := len(args) + 1
	offsetIdx := len(args) + 2
	args = append(args, page.Limit, page.Skip)

	sql := fmt.Sprintf(`
		WITH scored AS (
			SELECT
				job_id, title, description, min_salary, max_salary, pay_period, currency,
				listed_time, work_type, work_location_type, normalized_salary,
				city, state, country, company_id, created_at, updated_at,
				ts_rank_cd(
					to_tsvector('simple', coalesce(title,'') || ' ' || coalesce(description,'')),
					websearch_to_tsquery('simple', $%d)
				) AS text_score,
				(%s) AS title_term_score,
				(%s) AS desc_term_score,
				%s AS all_terms_in_title,
				%s AS phrase_in_title,
				%s AS phrase_in_desc,
				GREATEST(0, 60 - COALESCE(EXTRACT(EPOCH FROM (now() - listed_time)) / 86400, 365)) AS recency_boost
			FROM jobs
			%s
			AND to_tsvector('simple', coalesce(title,'') || ' ' || coalesce(description,'')) @@ websearch_to_tsquery('simple', $%d)
		),
		final AS (
			SELECT *,
				(5 * text_score) + (4 * title_term_score) + (1 * desc_term_score)
				+ (15 * all_terms_in_title) + (25 * phrase_in_title) + (8 * phrase_in_desc)
				+ recency_boost AS final_score,
				COUNT(*) OVER() AS total_count
			FROM scored
		)
		SELECT job_id, title, description, min_salary, max_salary, pay_period, currency,
		       listed_time, work_type, work_location_type, normalized_salary,
		       city, state, country, company_id, created_at, updated_at, total_count
		FROM final
		ORDER BY final_score DESC, listed_time DESC
		LIMIT $%d OFFSET $%d
	`, qIdx, titleTermScore, descTermScore, allTermsInTitle, phraseTitle, phraseDesc, whereWithAnd(w), qIdx, limitIdx, offsetIdx)

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []model.Job
	var total int
	for rows.Next() {
		var j model.Job
		if err := rows.Scan(
			&j.JobID, &j.Title, &j.Description, &j.MinSalary, &j.MaxSalary, &j.PayPeriod, &j.Currency,
			&j.ListedTime, &j.WorkType, &j.WorkLocationType, &j.NormalizedSalary,
			&j.City, &j.State, &j.Country, &j.CompanyID, &j.CreatedAt, &j.UpdatedAt, &total,
		); err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// whereWithAnd renders the filter predicate prefixed with WHERE/AND so
// it composes with the hybrid query's own tsvector match clause.
func whereWithAnd(w *whereBuilder) string {
	if len(w.clauses) == 0 {
		return "WHERE TRUE"
	}
	return w.sql()
}

func (r *JobRepository) GetByID(ctx context.Context, jobID int64) (*model.Job, error) {
	const sqlStmt = `
		SELECT job_id, title, description, min_salary, max_salary, pay_period, currency,
		       listed_time, work_type, work_location_type, normalized_salary,
		       city, state, country, company_id, created_at, updated_at
		FROM jobs WHERE job_id = $1
	`
	var j model.Job
	err := r.pool.QueryRow(ctx, sqlStmt, jobID).Scan(
		&j.JobID, &j.Title, &j.Description, &j.MinSalary, &j.MaxSalary, &j.PayPeriod, &j.Currency,
		&j.ListedTime, &j.WorkType, &j.WorkLocationType, &j.NormalizedSalary,
		&j.City, &j.State, &j.Country, &j.CompanyID, &j.CreatedAt, &j.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *JobRepository) Create(ctx context.Context, job *model.Job) error {
	const sqlStmt = `
		INSERT INTO jobs (job_id, title, description, min_salary, max_salary, pay_period, currency,
		                   listed_time, work_type, work_location_type, normalized_salary,
		                   city, state, country, company_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
	`
	_, err := r.pool.Exec(ctx, sqlStmt,
		job.JobID, job.Title, job.Description, job.MinSalary, job.MaxSalary, job.PayPeriod, job.Currency,
		job.ListedTime, job.WorkType, job.WorkLocationType, job.NormalizedSalary,
		job.City, job.State, job.Country, job.CompanyID, job.CreatedAt, job.UpdatedAt,
	)
	return err
}

func (r *JobRepository) Update(ctx context.Context, job *model.Job) error {
	const sqlStmt = `
		UPDATE jobs SET title=$2, description=$3, min_salary=$4, max_salary=$5, pay_period=$6,
		       currency=$7, listed_time=$8, work_type=$9, work_location_type=$10,
		       normalized_salary=$11, city=$12, state=$13, country=$14, updated_at=$15
		WHERE job_id=$1
	`
	_, err := r.pool.Exec(ctx, sqlStmt,
		job.JobID, job.Title, job.Description, job.MinSalary, job.MaxSalary, job.PayPeriod,
		job.Currency, job.ListedTime, job.WorkType, job.WorkLocationType,
		job.NormalizedSalary, job.City, job.State, job.Country, job.UpdatedAt,
	)
	return err
}

func (r *JobRepository) Delete(ctx context.Context, jobID int64) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM jobs WHERE job_id = $1", jobID)
	return err
}

func (r *JobRepository) FilterOptions(ctx context.Context) (ports.FilterOptions, error) {
	opts := ports.FilterOptions{}
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT work_type FROM jobs WHERE work_type IS NOT NULL AND work_type <> '' ORDER BY 1
	`)
	if err != nil {
		return opts, err
	}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			rows.Close()
			return opts, err
		}
		opts.WorkTypes = append(opts.WorkTypes, v)
	}
	rows.Close()

	rows, err = r.pool.Query(ctx, `
		SELECT DISTINCT work_location_type FROM jobs WHERE work_location_type IS NOT NULL AND work_location_type <> '' ORDER BY 1
	`)
	if err != nil {
		return opts, err
	}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			rows.Close()
			return opts, err
		}
		opts.WorkLocationTypes = append(opts.WorkLocationTypes, v)
	}
	rows.Close()

	rows, err = r.pool.Query(ctx, `
		SELECT DISTINCT pay_period FROM jobs WHERE pay_period IS NOT NULL AND pay_period <> '' ORDER BY 1
	`)
	if err != nil {
		return opts, err
	}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			rows.Close()
			return opts, err
		}
		opts.PayPeriods = append(opts.PayPeriods, v)
	}
	rows.Close()

	return opts, nil
}

func (r *JobRepository) SuggestTitles(ctx context.Context, q string, limit int) ([]string, error) {
	normQ := text.NormalizeSearchTerm(q)
	if normQ == nil {
		return []string{}, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT title, COUNT(*) FROM jobs WHERE title ~* $1 GROUP BY title
	`, text.EscapeRegex(*normQ))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []titlesuggest.Group
	for rows.Next() {
		var g titlesuggest.Group
		if err := rows.Scan(&g.Title, &g.Count); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return titlesuggest.Rank(groups, *normQ, limit), nil
}

func scanJobs(rows pgx.Rows) ([]model.Job, error) {
	var jobs []model.Job
	for rows.Next() {
		var j model.Job
		if err := rows.Scan(
			&j.JobID, &j.Title, &j.Description, &j.MinSalary, &j.MaxSalary, &j.PayPeriod, &j.Currency,
			&j.ListedTime, &j.WorkType, &j.WorkLocationType, &j.NormalizedSalary,
			&j.City, &j.State, &j.Country, &j.CompanyID, &j.CreatedAt, &j.UpdatedAt,
		); err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}
