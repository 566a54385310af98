// Package model defines the Application entity: the join between a
// Candidate and a Job, tracked through a fixed status lifecycle.
package model

import "time"

// Status is the application lifecycle stage.
type Status string

const (
	Applied   Status = "APPLIED"
	Reviewing Status = "REVIEWING"
	Interview Status = "INTERVIEW"
	Offered   Status = "OFFERED"
	Rejected  Status = "REJECTED"
	Hired     Status = "HIRED"
)

// AllowedStatuses lists every allowed value, in lifecycle order, for
// validation and for the invalid-status response's allow-list.
var AllowedStatuses = []Status{Applied, Reviewing, Interview, Offered, Rejected, Hired}

// IsValidStatus reports whether s is one of the enum members.
func IsValidStatus(s string) bool {
	switch Status(s) {
	case Applied, Reviewing, Interview, Offered, Rejected, Hired:
		return true
	default:
		return false
	}
}

// Application is the persisted entity. CompanyID is derived from the
// job at creation and never changes afterward.
type Application struct {
	ApplicationID int64
	JobID         int64
	CandidateID   int64
	CompanyID     int64
	Status        Status
	AppliedAt     time.Time
	UpdatedAt     time.Time
}

// DTO is the wire projection of Application.
type DTO struct {
	ApplicationID int64     `json:"application_id"`
	JobID         int64     `json:"job_id"`
	CandidateID   int64     `json:"candidate_id"`
	CompanyID     int64     `json:"company_id"`
	Status        Status    `json:"status"`
	AppliedAt     time.Time `json:"applied_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToDTO projects Application onto its wire representation.
func (a *Application) ToDTO() *DTO {
	return &DTO{
		ApplicationID: a.ApplicationID,
		JobID:         a.JobID,
		CandidateID:   a.CandidateID,
		CompanyID:     a.CompanyID,
		Status:        a.Status,
		AppliedAt:     a.AppliedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// Filter narrows an Application listing.
type Filter struct {
	CandidateID *int64
	CompanyID   *int64
	JobID       *int64
	Status      *Status
	From        *time.Time
	To          *time.Time
}

// AllowedSortFields lists the sort-by values the query parser accepts.
var AllowedSortFields = []string{"appliedAt", "updatedAt"}

// DefaultSortField is used when sortBy is absent or not allow-listed.
const DefaultSortField = "appliedAt"

var sortColumns = map[string]string{
	"appliedAt": "applied_at",
	"updatedAt": "updated_at",
}

// SortColumn maps an allow-listed API sort field to its storage column,
// falling back to DefaultSortField's column for anything unrecognized.
func SortColumn(field string) string {
	if col, ok := sortColumns[field]; ok {
		return col
	}
	return sortColumns[DefaultSortField]
}

// StatusCount is one row of the pipeline-count aggregation.
type StatusCount struct {
	Status Status `json:"status"`
	Count  int    `json:"count"`
}
