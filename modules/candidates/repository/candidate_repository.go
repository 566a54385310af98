// Package repository implements the Candidates storage layer.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avpavlenko/jobboard/modules/candidates/model"
	"github.com/avpavlenko/jobboard/modules/candidates/ports"
)

type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type CandidateRepository struct {
	pool DBPool
}

func NewCandidateRepository(pool *pgxpool.Pool) *CandidateRepository {
	return &CandidateRepository{pool: pool}
}

func NewCandidateRepositoryWithPool(pool DBPool) *CandidateRepository {
	return &CandidateRepository{pool: pool}
}

var _ ports.Repository = (*CandidateRepository)(nil)

const candidateColumns = `candidate_id, full_name, email, phone, linkedin_url, country, state, city, headline, created_at`

func (r *CandidateRepository) GetByID(ctx context.Context, candidateID int64) (*model.Candidate, error) {
	sql := `SELECT ` + candidateColumns + ` FROM candidates WHERE candidate_id = $1`
	var c model.Candidate
	err := r.pool.QueryRow(ctx, sql, candidateID).Scan(
		&c.CandidateID, &c.FullName, &c.Contact.Email, &c.Contact.Phone, &c.Contact.LinkedInURL,
		&c.Country, &c.State, &c.City, &c.Headline, &c.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CandidateRepository) Create(ctx context.Context, c *model.Candidate) error {
	const sql = `
		INSERT INTO candidates (candidate_id, full_name, email, phone, linkedin_url, country, state, city, headline, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`
	_, err := r.pool.Exec(ctx, sql,
		c.CandidateID, c.FullName, c.Contact.Email, c.Contact.Phone, c.Contact.LinkedInURL,
		c.Country, c.State, c.City, c.Headline, c.CreatedAt,
	)
	return err
}

func (r *CandidateRepository) Update(ctx context.Context, c *model.Candidate) error {
	const sql = `
		UPDATE candidates SET full_name=$2, email=$3, phone=$4, linkedin_url=$5,
		       country=$6, state=$7, city=$8, headline=$9
		WHERE candidate_id=$1
	`
	_, err := r.pool.Exec(ctx, sql,
		c.CandidateID, c.FullName, c.Contact.Email, c.Contact.Phone, c.Contact.LinkedInURL,
		c.Country, c.State, c.City, c.Headline,
	)
	return err
}
