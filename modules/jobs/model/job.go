// Package model defines the Job entity and its wire-facing projection.
package model

import "time"

// WorkLocationType is the work arrangement enum for a Job.
type WorkLocationType string

const (
	Onsite WorkLocationType = "ONSITE"
	Hybrid WorkLocationType = "HYBRID"
	Remote WorkLocationType = "REMOTE"
)

// ValidWorkLocationTypes lists every allowed value, for request
// validation and the filter-options endpoint.
var ValidWorkLocationTypes = []WorkLocationType{Onsite, Hybrid, Remote}

// IsValidWorkLocationType reports whether t is one of the enum members.
func IsValidWorkLocationType(t string) bool {
	switch WorkLocationType(t) {
	case Onsite, Hybrid, Remote:
		return true
	default:
		return false
	}
}

// payPeriodFactors converts a salary at the given pay period into its
// annualized equivalent, per the normalized_salary invariant.
var payPeriodFactors = map[string]float64{
	"HOURLY":   2080,
	"WEEKLY":   52,
	"BIWEEKLY": 26,
	"MONTHLY":  12,
	"YEARLY":   1,
}

// NormalizedSalary computes ((min+max)/2) * factor(payPeriod). It
// returns nil when min, max, or payPeriod is absent or payPeriod is
// unrecognized.
func NormalizedSalary(minSalary, maxSalary *float64, payPeriod string) *float64 {
	if minSalary == nil || maxSalary == nil {
		return nil
	}
	factor, ok := payPeriodFactors[payPeriod]
	if !ok {
		return nil
	}
	normalized := ((*minSalary + *maxSalary) / 2) * factor
	return &normalized
}

// Job is the persisted entity.
type Job struct {
	JobID            int64
	Title            string
	Description      string
	MinSalary        *float64
	MaxSalary        *float64
	PayPeriod        string
	Currency         string
	ListedTime       time.Time
	WorkType         string
	WorkLocationType WorkLocationType
	NormalizedSalary *float64
	City             string
	State            string
	Country          string
	CompanyID        int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CompanySummary is the compact company projection embedded in a Job
// DTO when the caller requests company hydration.
type CompanySummary struct {
	CompanyID    int64  `json:"company_id"`
	Name         string `json:"name"`
	LogoFullPath string `json:"logo_full_path,omitempty"`
}

// DTO is the wire projection of Job: internal bookkeeping fields never
// appear here, and Company is attached only when hydration was requested.
type DTO struct {
	JobID            int64            `json:"job_id"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	MinSalary        *float64         `json:"min_salary,omitempty"`
	MaxSalary        *float64         `json:"max_salary,omitempty"`
	PayPeriod        string           `json:"pay_period,omitempty"`
	Currency         string           `json:"currency,omitempty"`
	ListedTime       time.Time        `json:"listed_time"`
	WorkType         string           `json:"work_type,omitempty"`
	WorkLocationType WorkLocationType `json:"work_location_type,omitempty"`
	NormalizedSalary *float64         `json:"normalized_salary,omitempty"`
	City             string           `json:"city,omitempty"`
	State            string           `json:"state,omitempty"`
	Country          string           `json:"country,omitempty"`
	CompanyID        int64            `json:"company_id"`
	Company          *CompanySummary  `json:"company,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// ToDTO projects Job onto its wire representation.
func (j *Job) ToDTO() *DTO {
	return &DTO{
		JobID:            j.JobID,
		Title:            j.Title,
		Description:      j.Description,
		MinSalary:        j.MinSalary,
		MaxSalary:        j.MaxSalary,
		PayPeriod:        j.PayPeriod,
		Currency:         j.Currency,
		ListedTime:       j.ListedTime,
		WorkType:         j.WorkType,
		WorkLocationType: j.WorkLocationType,
		NormalizedSalary: j.NormalizedSalary,
		City:             j.City,
		State:            j.State,
		Country:          j.Country,
		CompanyID:        j.CompanyID,
		CreatedAt:        j.CreatedAt,
		UpdatedAt:        j.UpdatedAt,
	}
}
