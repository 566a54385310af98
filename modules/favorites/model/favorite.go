// Package model defines the Favorite entity: a candidate's bookmark of
// a job, unique per (candidate_id, job_id) pair.
package model

import "time"

// Favorite is the persisted entity.
type Favorite struct {
	FavoriteID  int64
	CandidateID int64
	JobID       int64
	CreatedAt   time.Time
}

// DTO is the wire projection of Favorite.
type DTO struct {
	FavoriteID  int64     `json:"favorite_id"`
	CandidateID int64     `json:"candidate_id"`
	JobID       int64     `json:"job_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToDTO projects Favorite onto its wire representation.
func (f *Favorite) ToDTO() *DTO {
	return &DTO{
		FavoriteID:  f.FavoriteID,
		CandidateID: f.CandidateID,
		JobID:       f.JobID,
		CreatedAt:   f.CreatedAt,
	}
}
