// Package model defines the FeaturedCompany entity: a curated,
// admin-managed highlight slot, one row per company.
package model

import "time"

// FeaturedCompany is the persisted entity.
type FeaturedCompany struct {
	CompanyID int64
	CreatedAt time.Time
}

// DTO is the wire projection of FeaturedCompany.
type DTO struct {
	CompanyID int64     `json:"company_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (f *FeaturedCompany) ToDTO() *DTO {
	return &DTO{CompanyID: f.CompanyID, CreatedAt: f.CreatedAt}
}
