// Package model defines the Candidate entity: a job-seeker profile.
package model

import "time"

// Contact is the candidate's reachable-at information. Email is
// required; the other fields are optional.
type Contact struct {
	Email       string
	Phone       *string
	LinkedInURL *string
}

// Candidate is the persisted entity.
type Candidate struct {
	CandidateID int64
	FullName    string
	Contact     Contact
	Country     *string
	State       *string
	City        *string
	Headline    *string
	CreatedAt   time.Time
}

// ContactDTO is the wire projection of Contact.
type ContactDTO struct {
	Email       string  `json:"email"`
	Phone       *string `json:"phone,omitempty"`
	LinkedInURL *string `json:"linkedin_url,omitempty"`
}

// DTO is the wire projection of Candidate.
type DTO struct {
	CandidateID int64      `json:"candidate_id"`
	FullName    string     `json:"full_name"`
	Contact     ContactDTO `json:"contact"`
	Country     *string    `json:"country,omitempty"`
	State       *string    `json:"state,omitempty"`
	City        *string    `json:"city,omitempty"`
	Headline    *string    `json:"headline,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (c *Candidate) ToDTO() *DTO {
	return &DTO{
		CandidateID: c.CandidateID,
		FullName:    c.FullName,
		Contact: ContactDTO{
			Email:       c.Contact.Email,
			Phone:       c.Contact.Phone,
			LinkedInURL: c.Contact.LinkedInURL,
		},
		Country:   c.Country,
		State:     c.State,
		City:      c.City,
		Headline:  c.Headline,
		CreatedAt: c.CreatedAt,
	}
}
