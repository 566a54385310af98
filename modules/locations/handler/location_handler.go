// Package handler wires the Locations HTTP surface onto gin.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avpavlenko/jobboard/internal/platform/apperror"
	httpPlatform "github.com/avpavlenko/jobboard/internal/platform/http"
	"github.com/avpavlenko/jobboard/modules/locations/service"
)

type LocationHandler struct {
	service *service.LocationService
}

func NewLocationHandler(service *service.LocationService) *LocationHandler {
	return &LocationHandler{service: service}
}

// Countries handles GET /api/locations/countries.
func (h *LocationHandler) Countries(c *gin.Context) {
	countries, err := h.service.Countries(c.Request.Context())
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, gin.H{"countries": countries})
}

// States handles GET /api/locations/:country/states.
func (h *LocationHandler) States(c *gin.Context) {
	states, err := h.service.States(c.Request.Context(), c.Param("country"))
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, gin.H{"states": states})
}

// Cities handles GET /api/locations/:country/:state/cities.
func (h *LocationHandler) Cities(c *gin.Context) {
	cities, err := h.service.Cities(c.Request.Context(), c.Param("country"), c.Param("state"))
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, gin.H{"cities": cities})
}

// Search handles GET /api/locations/search?q&k.
func (h *LocationHandler) Search(c *gin.Context) {
	q := c.Query("q")
	k := 20
	if raw := c.Query("k"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			k = n
		}
	}

	results, err := h.service.Search(c.Request.Context(), q, k)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, gin.H{"query": q, "results": results})
}

// RegisterRoutes registers location routes; all are public reads.
func (h *LocationHandler) RegisterRoutes(router *gin.RouterGroup) {
	locs := router.Group("/locations")
	{
		locs.GET("/countries", h.Countries)
		locs.GET("/search", h.Search)
		locs.GET("/:country/states", h.States)
		locs.GET("/:country/:state/cities", h.Cities)
	}
}
