// Package handler wires the Auth HTTP surface onto gin.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avpavlenko/jobboard/internal/platform/apperror"
	"github.com/avpavlenko/jobboard/internal/platform/auth"
	httpPlatform "github.com/avpavlenko/jobboard/internal/platform/http"
	authModel "github.com/avpavlenko/jobboard/modules/auth/model"
	"github.com/avpavlenko/jobboard/modules/auth/service"
	userModel "github.com/avpavlenko/jobboard/modules/users/model"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type authResponse struct {
	User   *userModel.DTO    `json:"user"`
	Tokens *authModel.Tokens `json:"tokens"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req authModel.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithAppError(c, apperror.BadRequest("invalid request payload"))
		return
	}

	user, tokens, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}
	httpPlatform.RespondWithData(c, http.StatusCreated, authResponse{User: user, Tokens: tokens})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req authModel.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithAppError(c, apperror.BadRequest("invalid request payload"))
		return
	}

	user, tokens, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, authResponse{User: user, Tokens: tokens})
}

// Refresh handles POST /api/auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req authModel.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithAppError(c, apperror.BadRequest("invalid request payload"))
		return
	}

	tokens, err := h.service.RefreshTokens(c.Request.Context(), req.RefreshToken)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, tokens)
}

// Logout handles POST /api/auth/logout, revoking every refresh token
// issued to the authenticated actor.
func (h *AuthHandler) Logout(c *gin.Context) {
	a, ok := auth.MustGetActor(c)
	if !ok {
		return
	}
	if err := h.service.Logout(c.Request.Context(), a.UserID); err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, gin.H{"message": "logged out"})
}

// RegisterRoutes registers auth routes. Register/Login/Refresh are
// public; Logout requires a valid access token.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	group := router.Group("/auth")
	{
		group.POST("/register", h.Register)
		group.POST("/login", h.Login)
		group.POST("/refresh", h.Refresh)
		group.POST("/logout", authMiddleware, h.Logout)
	}
}
