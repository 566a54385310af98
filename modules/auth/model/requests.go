package model

// RegisterRequest registers a login identity. ActorType selects which
// scope the resulting actor is admitted to. A candidate registration
// mints a new candidate profile inline; a company registration links
// the identity to an already-created company (companies are
// admin-curated, so CompanyID must name one created out of band).
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FullName  string `json:"full_name" binding:"required"`
	ActorType string `json:"actor_type" binding:"required,oneof=company candidate"`
	CompanyID *int64 `json:"company_id"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
