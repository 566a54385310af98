// Package service holds the Auth module's business logic: registration,
// login, and refresh-token rotation on top of the Users module and the
// shared JWT manager.
package service

import (
	"context"
	"time"

	"github.com/avpavlenko/jobboard/internal/platform/actor"
	"github.com/avpavlenko/jobboard/internal/platform/apperror"
	platformAuth "github.com/avpavlenko/jobboard/internal/platform/auth"
	authModel "github.com/avpavlenko/jobboard/modules/auth/model"
	"github.com/avpavlenko/jobboard/modules/auth/ports"
	candidateModel "github.com/avpavlenko/jobboard/modules/candidates/model"
	candidateService "github.com/avpavlenko/jobboard/modules/candidates/service"
	userModel "github.com/avpavlenko/jobboard/modules/users/model"
)

// UserRegistrar is the slice of the Users service AuthService depends
// on, kept as an interface so auth never reaches into the users
// repository directly.
type UserRegistrar interface {
	Register(ctx context.Context, email, fullName, password, actorType string, companyID, candidateID *int64) (*userModel.User, error)
	Authenticate(ctx context.Context, email, password string) (*userModel.User, error)
	GetByID(ctx context.Context, userID int64) (*userModel.User, error)
}

// CandidateRegistrar is the slice of the Candidates service a candidate
// registration needs: a fresh profile minted inline, since (unlike
// companies) there is no admin-curated candidate to link to yet.
type CandidateRegistrar interface {
	Create(ctx context.Context, accountEmail string, req candidateService.CreateRequest) (*candidateModel.DTO, error)
}

type AuthService struct {
	users         UserRegistrar
	candidates    CandidateRegistrar
	tokens        ports.RefreshTokenRepository
	jwtManager    *platformAuth.JWTManager
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewAuthService(users UserRegistrar, candidates CandidateRegistrar, tokens ports.RefreshTokenRepository, jwtManager *platformAuth.JWTManager, accessExpiry, refreshExpiry time.Duration) *AuthService {
	return &AuthService{
		users:         users,
		candidates:    candidates,
		tokens:        tokens,
		jwtManager:    jwtManager,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

// Register creates the login identity and, for a candidate actor, the
// candidate profile it represents in the same call (companies are
// admin-curated, so a company actor links to one via req.CompanyID
// instead).
func (s *AuthService) Register(ctx context.Context, req *authModel.RegisterRequest) (*userModel.DTO, *authModel.Tokens, error) {
	var companyID, candidateID *int64

	switch req.ActorType {
	case "candidate":
		candidate, err := s.candidates.Create(ctx, req.Email, candidateService.CreateRequest{FullName: req.FullName, Email: req.Email})
		if err != nil {
			return nil, nil, err
		}
		candidateID = &candidate.CandidateID
	case "company":
		if req.CompanyID == nil {
			return nil, nil, apperror.BadRequest("company_id is required")
		}
		companyID = req.CompanyID
	}

	u, err := s.users.Register(ctx, req.Email, req.FullName, req.Password, req.ActorType, companyID, candidateID)
	if err != nil {
		return nil, nil, err
	}

	tokens, err := s.generateTokens(ctx, u)
	if err != nil {
		return nil, nil, err
	}
	return u.ToDTO(), tokens, nil
}

func (s *AuthService) Login(ctx context.Context, req *authModel.LoginRequest) (*userModel.DTO, *authModel.Tokens, error) {
	u, err := s.users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, nil, err
	}

	tokens, err := s.generateTokens(ctx, u)
	if err != nil {
		return nil, nil, err
	}
	return u.ToDTO(), tokens, nil
}

// RefreshTokens validates refreshTokenString against the JWT signature
// and the persisted ledger, rotating it: the old token is revoked and
// a fresh pair is issued.
func (s *AuthService) RefreshTokens(ctx context.Context, refreshTokenString string) (*authModel.Tokens, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshTokenString)
	if err != nil {
		return nil, apperror.Unauthorized("invalid refresh token")
	}

	tokenHash := platformAuth.HashToken(refreshTokenString)
	dbToken, err := s.tokens.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if dbToken == nil || !dbToken.IsValid() {
		return nil, apperror.Unauthorized("refresh token expired or revoked")
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	tokens, err := s.generateTokens(ctx, u)
	if err != nil {
		return nil, err
	}
	_ = s.tokens.Revoke(ctx, tokenHash)
	return tokens, nil
}

func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	if err := s.tokens.RevokeAllForUser(ctx, userID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (s *AuthService) generateTokens(ctx context.Context, u *userModel.User) (*authModel.Tokens, error) {
	a := actor.Actor{
		Type:        actor.Type(u.ActorType),
		UserID:      u.UserID,
		CompanyID:   u.CompanyID,
		CandidateID: u.CandidateID,
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(a)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(a)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	tokenHash := platformAuth.HashToken(refreshToken)
	dbToken := authModel.NewRefreshToken(u.UserID, tokenHash, time.Now().UTC().Add(s.refreshExpiry))
	if err := s.tokens.Create(ctx, dbToken); err != nil {
		return nil, apperror.Internal(err)
	}

	return &authModel.Tokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.accessExpiry.Seconds()),
	}, nil
}
