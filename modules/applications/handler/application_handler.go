// Package handler wires the Applications HTTP surface onto gin.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avpavlenko/jobboard/internal/platform/apperror"
	"github.com/avpavlenko/jobboard/internal/platform/auth"
	httpPlatform "github.com/avpavlenko/jobboard/internal/platform/http"
	"github.com/avpavlenko/jobboard/internal/search/query"
	"github.com/avpavlenko/jobboard/modules/applications/model"
	"github.com/avpavlenko/jobboard/modules/applications/service"
)

type ApplicationHandler struct {
	service *service.ApplicationService
}

func NewApplicationHandler(service *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

func parseApplicationFilter(c *gin.Context) model.Filter {
	var f model.Filter
	if v := c.Query("candidate_id"); v != "" {
		f.CandidateID = query.ParseInt(v)
	}
	if v := c.Query("company_id"); v != "" {
		f.CompanyID = query.ParseInt(v)
	}
	if v := c.Query("job_id"); v != "" {
		f.JobID = query.ParseInt(v)
	}
	if v := c.Query("status"); v != "" && model.IsValidStatus(v) {
		status := model.Status(v)
		f.Status = &status
	}
	f.From = query.ParseDate(c.Query("from"))
	f.To = query.ParseDate(c.Query("to"))
	return f
}

// List handles GET /api/applications. Scope is narrowed to the caller
// (candidate sees their own, company sees their own) inside the service.
func (h *ApplicationHandler) List(c *gin.Context) {
	a, ok := auth.MustGetActor(c)
	if !ok {
		return
	}
	page := httpPlatform.ParsePagination(c)
	filter := parseApplicationFilter(c)

	dtos, total, err := h.service.List(c.Request.Context(), a, filter, c.Query("sortBy"), c.Query("sortDir"), page)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}
	httpPlatform.RespondWithList(c, http.StatusOK, dtos, httpPlatform.ListMetaFor(page, total))
}

// Get handles GET /api/applications/:id.
func (h *ApplicationHandler) Get(c *gin.Context) {
	a, ok := auth.MustGetActor(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.BadRequest("invalid application id"))
		return
	}
	dto, err := h.service.GetByID(c.Request.Context(), a, id)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, dto)
}

type createApplicationRequest struct {
	JobID int64 `json:"job_id" binding:"required"`
}

// Create handles POST /api/applications. A pre-existing
// (candidate,job) pair is reported as already_exists at HTTP 200
// rather than erroring.
func (h *ApplicationHandler) Create(c *gin.Context) {
	a, ok := auth.MustGetActor(c)
	if !ok {
		return
	}
	var req createApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithAppError(c, apperror.BadRequest("job_id is required"))
		return
	}

	dto, alreadyExists, err := h.service.Create(c.Request.Context(), a, req.JobID)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}
	if alreadyExists {
		c.JSON(http.StatusOK, gin.H{"status": "already_exists", "data": dto})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "created", "data": dto})
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus handles PATCH /api/applications/:id/status. An invalid
// status leaves the record untouched and reports the allow-list.
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	a, ok := auth.MustGetActor(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.BadRequest("invalid application id"))
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithAppError(c, apperror.BadRequest("status is required"))
		return
	}

	dto, err := h.service.UpdateStatus(c.Request.Context(), a, id, req.Status)
	if err != nil {
		if err == service.ErrInvalidStatus {
			c.JSON(http.StatusBadRequest, gin.H{"status": "invalid_status", "allowed": model.AllowedStatuses})
			return
		}
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, dto)
}

// PipelineCounts handles GET /api/applications/pipeline-counts.
func (h *ApplicationHandler) PipelineCounts(c *gin.Context) {
	a, ok := auth.MustGetActor(c)
	if !ok {
		return
	}
	filter := parseApplicationFilter(c)

	counts, err := h.service.PipelineCounts(c.Request.Context(), a, filter)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, counts)
}

// RegisterRoutes registers application routes, all behind authMiddleware.
func (h *ApplicationHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	applications := router.Group("/applications", authMiddleware)
	{
		applications.GET("", h.List)
		applications.GET("/pipeline-counts", h.PipelineCounts)
		applications.GET("/:id", h.Get)
		applications.POST("", h.Create)
		applications.PATCH("/:id/status", h.UpdateStatus)
	}
}
