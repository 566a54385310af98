// Package handler wires the Favorites HTTP surface onto gin.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avpavlenko/jobboard/internal/platform/apperror"
	"github.com/avpavlenko/jobboard/internal/platform/auth"
	httpPlatform "github.com/avpavlenko/jobboard/internal/platform/http"
	"github.com/avpavlenko/jobboard/modules/favorites/service"
)

type FavoriteHandler struct {
	service *service.FavoriteService
}

func NewFavoriteHandler(service *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

// List handles GET /api/favorites, scoped to the calling candidate.
func (h *FavoriteHandler) List(c *gin.Context) {
	a, ok := auth.MustGetActor(c)
	if !ok {
		return
	}
	if a.CandidateID == nil {
		httpPlatform.RespondWithAppError(c, apperror.Forbidden(""))
		return
	}
	page := httpPlatform.ParsePagination(c)

	dtos, total, err := h.service.List(c.Request.Context(), a, *a.CandidateID, page)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}
	httpPlatform.RespondWithList(c, http.StatusOK, dtos, httpPlatform.ListMetaFor(page, total))
}

// Add handles POST /api/favorites/:jobId. A pre-existing favorite is
// reported as already_favorite at HTTP 200 rather than erroring.
func (h *FavoriteHandler) Add(c *gin.Context) {
	a, ok := auth.MustGetActor(c)
	if !ok {
		return
	}
	jobID, err := strconv.ParseInt(c.Param("jobId"), 10, 64)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.BadRequest("invalid job id"))
		return
	}
	if a.CandidateID == nil {
		httpPlatform.RespondWithAppError(c, apperror.Forbidden(""))
		return
	}

	dto, alreadyFavorite, err := h.service.Add(c.Request.Context(), a, *a.CandidateID, jobID)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}
	if alreadyFavorite {
		c.JSON(http.StatusOK, gin.H{"status": "already_favorite", "data": dto})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "added", "data": dto})
}

// Remove handles DELETE /api/favorites/:jobId.
func (h *FavoriteHandler) Remove(c *gin.Context) {
	a, ok := auth.MustGetActor(c)
	if !ok {
		return
	}
	jobID, err := strconv.ParseInt(c.Param("jobId"), 10, 64)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.BadRequest("invalid job id"))
		return
	}
	if a.CandidateID == nil {
		httpPlatform.RespondWithAppError(c, apperror.Forbidden(""))
		return
	}

	if err := h.service.Remove(c.Request.Context(), a, *a.CandidateID, jobID); err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// RegisterRoutes registers favorite routes, all behind authMiddleware.
func (h *FavoriteHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	favorites := router.Group("/favorites", authMiddleware)
	{
		favorites.GET("", h.List)
		favorites.POST("/:jobId", h.Add)
		favorites.DELETE("/:jobId", h.Remove)
	}
}
