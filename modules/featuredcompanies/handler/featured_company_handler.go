// Package handler wires the Featured Companies HTTP surface onto gin.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avpavlenko/jobboard/internal/platform/apperror"
	"github.com/avpavlenko/jobboard/internal/platform/auth"
	httpPlatform "github.com/avpavlenko/jobboard/internal/platform/http"
	"github.com/avpavlenko/jobboard/modules/featuredcompanies/service"
)

type FeaturedCompanyHandler struct {
	service *service.FeaturedCompanyService
}

func NewFeaturedCompanyHandler(service *service.FeaturedCompanyService) *FeaturedCompanyHandler {
	return &FeaturedCompanyHandler{service: service}
}

// List handles GET /api/featured-companies.
func (h *FeaturedCompanyHandler) List(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	dtos, err := h.service.List(c.Request.Context(), limit)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, dtos)
}

// Add handles POST /api/featured-companies/:companyId, admin-only.
func (h *FeaturedCompanyHandler) Add(c *gin.Context) {
	a, ok := auth.MustGetActor(c)
	if !ok {
		return
	}
	companyID, err := strconv.ParseInt(c.Param("companyId"), 10, 64)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.BadRequest("invalid company id"))
		return
	}

	alreadyFeatured, err := h.service.Add(c.Request.Context(), a, companyID)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}
	if alreadyFeatured {
		c.JSON(http.StatusOK, gin.H{"status": "already_featured"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "added"})
}

// Remove handles DELETE /api/featured-companies/:companyId, admin-only.
func (h *FeaturedCompanyHandler) Remove(c *gin.Context) {
	a, ok := auth.MustGetActor(c)
	if !ok {
		return
	}
	companyID, err := strconv.ParseInt(c.Param("companyId"), 10, 64)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.BadRequest("invalid company id"))
		return
	}

	if err := h.service.Remove(c.Request.Context(), a, companyID); err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// RegisterRoutes registers featured-company routes. List is public;
// Add/Remove require an admin actor.
func (h *FeaturedCompanyHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	featured := router.Group("/featured-companies")
	{
		featured.GET("", h.List)
		featured.POST("/:companyId", authMiddleware, h.Add)
		featured.DELETE("/:companyId", authMiddleware, h.Remove)
	}
}
