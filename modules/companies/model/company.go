// Package model defines the Company entity: an employer profile, not
// a job-application-tracker's notion of a company applied to.
package model

import (
	"fmt"
	"time"
)

// Company is the persisted entity.
type Company struct {
	CompanyID      int64
	Name           string
	Description    string
	Country        string
	State          string
	City           string
	Address        string
	URL            string
	CompanySizeMin *int
	CompanySizeMax *int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// LogoFullPath derives the processed-logo disk path from CompanyID,
// the pattern every Company DTO exposes per the logo-URL invariant.
func LogoFullPath(companyID int64) string {
	return fmt.Sprintf("data/company_logos/processed/%d.png", companyID)
}

// DTO is the wire projection of Company.
type DTO struct {
	CompanyID      int64     `json:"company_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Country        string    `json:"country,omitempty"`
	State          string    `json:"state,omitempty"`
	City           string    `json:"city,omitempty"`
	Address        string    `json:"address,omitempty"`
	URL            string    `json:"url,omitempty"`
	CompanySizeMin *int      `json:"company_size_min,omitempty"`
	CompanySizeMax *int      `json:"company_size_max,omitempty"`
	LogoFullPath   string    `json:"logo_full_path,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ToDTO projects Company onto its wire representation, attaching the
// derived logo path.
func (c *Company) ToDTO() *DTO {
	return &DTO{
		CompanyID:      c.CompanyID,
		Name:           c.Name,
		Description:    c.Description,
		Country:        c.Country,
		State:          c.State,
		City:           c.City,
		Address:        c.Address,
		URL:            c.URL,
		CompanySizeMin: c.CompanySizeMin,
		CompanySizeMax: c.CompanySizeMax,
		LogoFullPath:   LogoFullPath(c.CompanyID),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// Summary is the compact projection embedded in a Job DTO.
type Summary struct {
	CompanyID    int64  `json:"company_id"`
	Name         string `json:"name"`
	LogoFullPath string `json:"logo_full_path,omitempty"`
}

func (c *Company) ToSummary() Summary {
	return Summary{CompanyID: c.CompanyID, Name: c.Name, LogoFullPath: LogoFullPath(c.CompanyID)}
}
