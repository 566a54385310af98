// Package model defines the User entity: the login identity behind an
// actor. A User is keyed by a counter-minted UserID and optionally
// linked to a Company or Candidate profile depending on actor type.
package model

import "time"

// User is the persisted login identity.
type User struct {
	UserID       int64
	Email        string
	FullName     string
	PasswordHash string
	ActorType    string
	CompanyID    *int64
	CandidateID  *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser builds a User ready for persistence, with CreatedAt/UpdatedAt
// stamped to now. UserID is assigned by the caller from the counter.
func NewUser(userID int64, email, fullName, passwordHash, actorType string) *User {
	now := time.Now().UTC()
	return &User{
		UserID:       userID,
		Email:        email,
		FullName:     fullName,
		PasswordHash: passwordHash,
		ActorType:    actorType,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// DTO is the wire projection of User, omitting PasswordHash.
type DTO struct {
	UserID      int64     `json:"user_id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	ActorType   string    `json:"actor_type"`
	CompanyID   *int64    `json:"company_id,omitempty"`
	CandidateID *int64    `json:"candidate_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (u *User) ToDTO() *DTO {
	return &DTO{
		UserID:      u.UserID,
		Email:       u.Email,
		FullName:    u.FullName,
		ActorType:   u.ActorType,
		CompanyID:   u.CompanyID,
		CandidateID: u.CandidateID,
		CreatedAt:   u.CreatedAt,
	}
}
