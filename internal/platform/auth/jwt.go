package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/avpavlenko/jobboard/internal/platform/actor"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType represents the type of JWT token
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Claims carries the resolved actor identity alongside the registered
// JWT fields, so a request can be authorized without a database round
// trip once the token has been validated.
type Claims struct {
	UserID      int64      `json:"user_id"`
	ActorType   actor.Type `json:"actor_type"`
	CompanyID   *int64     `json:"company_id,omitempty"`
	CandidateID *int64     `json:"candidate_id,omitempty"`
	TokenType   TokenType  `json:"token_type"`
	jwt.RegisteredClaims
}

// ToActor projects the claims onto the actor type authorization
// predicates consume.
func (c *Claims) ToActor() *actor.Actor {
	return &actor.Actor{
		Type:        c.ActorType,
		UserID:      c.UserID,
		CompanyID:   c.CompanyID,
		CandidateID: c.CandidateID,
	}
}

// JWTManager handles JWT token operations
type JWTManager struct {
	accessSecret  string
	refreshSecret string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(accessSecret, refreshSecret string, accessExpiry, refreshExpiry time.Duration) *JWTManager {
	return &JWTManager{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

func (m *JWTManager) buildClaims(a actor.Actor, tokenType TokenType, expiry time.Duration) *Claims {
	now := time.Now()
	return &Claims{
		UserID:      a.UserID,
		ActorType:   a.Type,
		CompanyID:   a.CompanyID,
		CandidateID: a.CandidateID,
		TokenType:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}
}

// GenerateAccessToken generates a new access token for the given actor.
func (m *JWTManager) GenerateAccessToken(a actor.Actor) (string, error) {
	claims := m.buildClaims(a, AccessToken, m.accessExpiry)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.accessSecret))
}

// GenerateRefreshToken generates a new refresh token for the given actor.
func (m *JWTManager) GenerateRefreshToken(a actor.Actor) (string, error) {
	claims := m.buildClaims(a, RefreshToken, m.refreshExpiry)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.refreshSecret))
}

// ValidateAccessToken validates an access token and returns the claims
func (m *JWTManager) ValidateAccessToken(tokenString string) (*Claims, error) {
	return m.validateToken(tokenString, m.accessSecret, AccessToken)
}

// ValidateRefreshToken validates a refresh token and returns the claims
func (m *JWTManager) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return m.validateToken(tokenString, m.refreshSecret, RefreshToken)
}

func (m *JWTManager) validateToken(tokenString, secret string, expectedType TokenType) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims.TokenType != expectedType {
		return nil, fmt.Errorf("invalid token type")
	}

	return claims, nil
}

// HashToken creates a SHA256 hash of a token for storage
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
