// Package repository implements the Auth module's storage layer: the
// revocable refresh token ledger.
package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avpavlenko/jobboard/modules/auth/model"
	"github.com/avpavlenko/jobboard/modules/auth/ports"
)

type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type RefreshTokenRepository struct {
	pool DBPool
}

func NewRefreshTokenRepository(pool *pgxpool.Pool) *RefreshTokenRepository {
	return &RefreshTokenRepository{pool: pool}
}

func NewRefreshTokenRepositoryWithPool(pool DBPool) *RefreshTokenRepository {
	return &RefreshTokenRepository{pool: pool}
}

var _ ports.RefreshTokenRepository = (*RefreshTokenRepository)(nil)

func (r *RefreshTokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	const sql = `
		INSERT INTO refresh_tokens (token_hash, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.pool.Exec(ctx, sql, token.TokenHash, token.UserID, token.ExpiresAt, token.CreatedAt)
	return err
}

func (r *RefreshTokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	const sql = `
		SELECT token_hash, user_id, expires_at, created_at, revoked_at
		FROM refresh_tokens
		WHERE token_hash = $1
	`
	var t model.RefreshToken
	err := r.pool.QueryRow(ctx, sql, tokenHash).Scan(
		&t.TokenHash, &t.UserID, &t.ExpiresAt, &t.CreatedAt, &t.RevokedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *RefreshTokenRepository) Revoke(ctx context.Context, tokenHash string) error {
	const sql = `
		UPDATE refresh_tokens SET revoked_at = $2
		WHERE token_hash = $1 AND revoked_at IS NULL
	`
	_, err := r.pool.Exec(ctx, sql, tokenHash, time.Now().UTC())
	return err
}

func (r *RefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID int64) error {
	const sql = `
		UPDATE refresh_tokens SET revoked_at = $2
		WHERE user_id = $1 AND revoked_at IS NULL
	`
	_, err := r.pool.Exec(ctx, sql, userID, time.Now().UTC())
	return err
}

func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context) error {
	const sql = `DELETE FROM refresh_tokens WHERE expires_at < $1`
	_, err := r.pool.Exec(ctx, sql, time.Now().UTC())
	return err
}
