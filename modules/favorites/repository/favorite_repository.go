// Package repository implements the Favorites storage layer.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avpavlenko/jobboard/internal/search/query"
	"github.com/avpavlenko/jobboard/modules/favorites/model"
	"github.com/avpavlenko/jobboard/modules/favorites/ports"
)

type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type FavoriteRepository struct {
	pool DBPool
}

func NewFavoriteRepository(pool *pgxpool.Pool) *FavoriteRepository {
	return &FavoriteRepository{pool: pool}
}

func NewFavoriteRepositoryWithPool(pool DBPool) *FavoriteRepository {
	return &FavoriteRepository{pool: pool}
}

var _ ports.Repository = (*FavoriteRepository)(nil)

const favoriteColumns = `favorite_id, candidate_id, job_id, created_at`

func (r *FavoriteRepository) List(ctx context.Context, candidateID int64, page query.Pagination) ([]model.Favorite, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM favorites WHERE candidate_id = $1`, candidateID).Scan(&total); err != nil {
		return nil, 0, err
	}

	sql := `SELECT ` + favoriteColumns + ` FROM favorites WHERE candidate_id = $1 ORDER BY created_at DESC, favorite_id DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, sql, candidateID, page.Limit, page.Skip)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var favorites []model.Favorite
	for rows.Next() {
		var f model.Favorite
		if err := rows.Scan(&f.FavoriteID, &f.CandidateID, &f.JobID, &f.CreatedAt); err != nil {
			return nil, 0, err
		}
		favorites = append(favorites, f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return favorites, total, nil
}

func (r *FavoriteRepository) GetByCandidateAndJob(ctx context.Context, candidateID, jobID int64) (*model.Favorite, error) {
	sql := `SELECT ` + favoriteColumns + ` FROM favorites WHERE candidate_id = $1 AND job_id = $2`
	var f model.Favorite
	err := r.pool.QueryRow(ctx, sql, candidateID, jobID).Scan(&f.FavoriteID, &f.CandidateID, &f.JobID, &f.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FavoriteRepository) Create(ctx context.Context, f *model.Favorite) (bool, error) {
	const sql = `INSERT INTO favorites (favorite_id, candidate_id, job_id, created_at) VALUES ($1,$2,$3,$4)
		ON CONFLICT (candidate_id, job_id) DO NOTHING
		RETURNING favorite_id`
	var id int64
	err := r.pool.QueryRow(ctx, sql, f.FavoriteID, f.CandidateID, f.JobID, f.CreatedAt).Scan(&id)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *FavoriteRepository) Delete(ctx context.Context, candidateID, jobID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM favorites WHERE candidate_id = $1 AND job_id = $2`, candidateID, jobID)
	return err
}
