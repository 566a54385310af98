// Package repository implements the Users storage layer.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avpavlenko/jobboard/modules/users/model"
	"github.com/avpavlenko/jobboard/modules/users/ports"
)

type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type UserRepository struct {
	pool DBPool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func NewUserRepositoryWithPool(pool DBPool) *UserRepository {
	return &UserRepository{pool: pool}
}

var _ ports.Repository = (*UserRepository)(nil)

const userColumns = `user_id, email, full_name, password_hash, actor_type, company_id, candidate_id, created_at, updated_at`

func (r *UserRepository) scanOne(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.UserID, &u.Email, &u.FullName, &u.PasswordHash, &u.ActorType,
		&u.CompanyID, &u.CandidateID, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, sql, userID))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanOne(r.pool.QueryRow(ctx, sql, email))
}

func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	const sql = `
		INSERT INTO users (user_id, email, full_name, password_hash, actor_type, company_id, candidate_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`
	_, err := r.pool.Exec(ctx, sql,
		u.UserID, u.Email, u.FullName, u.PasswordHash, u.ActorType,
		u.CompanyID, u.CandidateID, u.CreatedAt, u.UpdatedAt,
	)
	return err
}
