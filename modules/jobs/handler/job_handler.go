// Package handler wires the Jobs HTTP surface onto gin: request
// parsing, actor resolution, and translation of service results into
// the shared response envelope.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avpavlenko/jobboard/internal/platform/apperror"
	"github.com/avpavlenko/jobboard/internal/platform/auth"
	httpPlatform "github.com/avpavlenko/jobboard/internal/platform/http"
	"github.com/avpavlenko/jobboard/internal/search/query"
	"github.com/avpavlenko/jobboard/modules/jobs/model"
	"github.com/avpavlenko/jobboard/modules/jobs/service"
)

type JobHandler struct {
	service *service.JobService
}

func NewJobHandler(service *service.JobService) *JobHandler {
	return &JobHandler{service: service}
}

func parseJobFilter(c *gin.Context) model.Filter {
	var f model.Filter
	if v := c.Query("country"); v != "" {
		f.Country = &v
	}
	if v := c.Query("state"); v != "" {
		f.State = &v
	}
	if v := c.Query("city"); v != "" {
		f.City = &v
	}
	if v := c.Query("work_type"); v != "" {
		f.WorkType = &v
	}
	if v := c.Query("work_location_type"); v != "" {
		upper := v
		if len(upper) > 0 {
			upper = stringsToUpper(upper)
		}
		f.WorkLocationType = &upper
	}
	if v := c.Query("pay_period"); v != "" {
		f.PayPeriod = &v
	}
	if v := c.Query("company_id"); v != "" {
		f.CompanyID = query.ParseInt(v)
	}
	f.MinSalary = query.ParseNumber(c.Query("min_salary"))
	f.MaxSalary = query.ParseNumber(c.Query("max_salary"))
	f.MinNormSalary = query.ParseNumber(c.Query("min_norm_salary"))
	f.MaxNormSalary = query.ParseNumber(c.Query("max_norm_salary"))
	f.ListedFrom = query.ParseDate(c.Query("listed_from"))
	f.ListedTo = query.ParseDate(c.Query("listed_to"))
	return f
}

func stringsToUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

func includeCompany(c *gin.Context) bool {
	return c.Query("include_company") != "false"
}

// List handles GET /api/jobs.
func (h *JobHandler) List(c *gin.Context) {
	filter := parseJobFilter(c)
	page := httpPlatform.ParsePagination(c)
	q := c.Query("q")
	sortBy := c.Query("sortBy")
	sortDir := c.Query("sortDir")

	dtos, page, total, err := h.service.List(c.Request.Context(), filter, q, sortBy, sortDir, page, includeCompany(c))
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}

	httpPlatform.RespondWithList(c, http.StatusOK, dtos, httpPlatform.ListMetaFor(page, total))
}

// ListByCompany handles GET /api/jobs/company/:companyId.
func (h *JobHandler) ListByCompany(c *gin.Context) {
	companyID, err := strconv.ParseInt(c.Param("companyId"), 10, 64)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.BadRequest("invalid company id"))
		return
	}

	filter := parseJobFilter(c)
	filter.CompanyID = &companyID
	page := httpPlatform.ParsePagination(c)
	q := c.Query("q")
	sortBy := c.Query("sortBy")
	sortDir := c.Query("sortDir")

	dtos, page, total, err := h.service.List(c.Request.Context(), filter, q, sortBy, sortDir, page, includeCompany(c))
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}

	httpPlatform.RespondWithList(c, http.StatusOK, dtos, httpPlatform.ListMetaFor(page, total))
}

// Get handles GET /api/jobs/:id.
func (h *JobHandler) Get(c *gin.Context) {
	jobID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.BadRequest("invalid job id"))
		return
	}

	dto, err := h.service.GetByID(c.Request.Context(), jobID, includeCompany(c))
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}

	httpPlatform.RespondWithData(c, http.StatusOK, dto)
}

// FilterOptions handles GET /api/jobs/filters/options.
func (h *JobHandler) FilterOptions(c *gin.Context) {
	opts, err := h.service.FilterOptions(c.Request.Context())
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, opts)
}

// SuggestTitles handles GET /api/jobs/recommendations/titles.
func (h *JobHandler) SuggestTitles(c *gin.Context) {
	q := c.Query("q")
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	suggestions, err := h.service.SuggestTitles(c.Request.Context(), q, limit)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}

	httpPlatform.RespondWithData(c, http.StatusOK, gin.H{"query": q, "suggestions": suggestions})
}

type createJobRequest struct {
	CompanyID        *int64   `json:"company_id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	MinSalary        *float64 `json:"min_salary"`
	MaxSalary        *float64 `json:"max_salary"`
	PayPeriod        string   `json:"pay_period"`
	Currency         string   `json:"currency"`
	WorkType         string   `json:"work_type"`
	WorkLocationType string   `json:"work_location_type"`
	City             string   `json:"city"`
	State            string   `json:"state"`
	Country          string   `json:"country"`
}

// Create handles POST /api/jobs.
func (h *JobHandler) Create(c *gin.Context) {
	a, ok := auth.MustGetActor(c)
	if !ok {
		return
	}

	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithAppError(c, apperror.BadRequest("invalid request payload"))
		return
	}

	dto, err := h.service.Create(c.Request.Context(), a, service.CreateRequest{
		CompanyID:        req.CompanyID,
		Title:            req.Title,
		Description:      req.Description,
		MinSalary:        req.MinSalary,
		MaxSalary:        req.MaxSalary,
		PayPeriod:        req.PayPeriod,
		Currency:         req.Currency,
		WorkType:         req.WorkType,
		WorkLocationType: req.WorkLocationType,
		City:             req.City,
		State:            req.State,
		Country:          req.Country,
	})
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}

	httpPlatform.RespondWithData(c, http.StatusCreated, dto)
}

type updateJobRequest struct {
	Title            *string  `json:"title"`
	Description      *string  `json:"description"`
	MinSalary        *float64 `json:"min_salary"`
	MaxSalary        *float64 `json:"max_salary"`
	PayPeriod        *string  `json:"pay_period"`
	Currency         *string  `json:"currency"`
	WorkType         *string  `json:"work_type"`
	WorkLocationType *string  `json:"work_location_type"`
	City             *string  `json:"city"`
	State            *string  `json:"state"`
	Country          *string  `json:"country"`
}

// Update handles PUT /api/jobs/:id.
func (h *JobHandler) Update(c *gin.Context) {
	a, ok := auth.MustGetActor(c)
	if !ok {
		return
	}

	jobID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.BadRequest("invalid job id"))
		return
	}

	var req updateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithAppError(c, apperror.BadRequest("invalid request payload"))
		return
	}

	dto, err := h.service.Update(c.Request.Context(), a, jobID, service.UpdateRequest{
		Title:            req.Title,
		Description:      req.Description,
		MinSalary:        req.MinSalary,
		MaxSalary:        req.MaxSalary,
		PayPeriod:        req.PayPeriod,
		Currency:         req.Currency,
		WorkType:         req.WorkType,
		WorkLocationType: req.WorkLocationType,
		City:             req.City,
		State:            req.State,
		Country:          req.Country,
	})
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}

	httpPlatform.RespondWithData(c, http.StatusOK, dto)
}

// Delete handles DELETE /api/jobs/:id.
func (h *JobHandler) Delete(c *gin.Context) {
	a, ok := auth.MustGetActor(c)
	if !ok {
		return
	}

	jobID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.BadRequest("invalid job id"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), a, jobID); err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}

	httpPlatform.RespondWithData(c, http.StatusOK, gin.H{"message": "job deleted"})
}

// RegisterRoutes registers job routes. Reads are public; mutations
// require an authenticated actor.
func (h *JobHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	jobs := router.Group("/jobs")
	{
		jobs.GET("", h.List)
		jobs.GET("/filters/options", h.FilterOptions)
		jobs.GET("/recommendations/titles", h.SuggestTitles)
		jobs.GET("/company/:companyId", h.ListByCompany)
		jobs.GET("/:id", h.Get)

		jobs.POST("", authMiddleware, h.Create)
		jobs.PUT("/:id", authMiddleware, h.Update)
		jobs.DELETE("/:id", authMiddleware, h.Delete)
	}
}
