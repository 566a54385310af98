// Package handler wires the Companies HTTP surface onto gin.
package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avpavlenko/jobboard/internal/platform/actor"
	"github.com/avpavlenko/jobboard/internal/platform/apperror"
	"github.com/avpavlenko/jobboard/internal/platform/auth"
	httpPlatform "github.com/avpavlenko/jobboard/internal/platform/http"
	"github.com/avpavlenko/jobboard/internal/platform/storage"
	"github.com/avpavlenko/jobboard/internal/search/query"
	"github.com/avpavlenko/jobboard/modules/companies/model"
	"github.com/avpavlenko/jobboard/modules/companies/service"
	jobsmodel "github.com/avpavlenko/jobboard/modules/jobs/model"
	jobsservice "github.com/avpavlenko/jobboard/modules/jobs/service"
)

func jobsFilterForCompany(c *gin.Context, companyID int64) jobsmodel.Filter {
	var f jobsmodel.Filter
	if v := c.Query("work_type"); v != "" {
		f.WorkType = &v
	}
	f.CompanyID = &companyID
	return f
}


type CompanyHandler struct {
	service *service.CompanyService
	jobs    *jobsservice.JobService
	logos   *storage.LogoStore
}

func NewCompanyHandler(service *service.CompanyService, jobs *jobsservice.JobService, logos *storage.LogoStore) *CompanyHandler {
	return &CompanyHandler{service: service, jobs: jobs, logos: logos}
}

func parseCompanyFilter(c *gin.Context) model.Filter {
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
	f.MinSize = query.ParseInt(c.Query("min_size"))
	f.MaxSize = query.ParseInt(c.Query("max_size"))
	return f
}

// List handles GET /api/companies.
func (h *CompanyHandler) List(c *gin.Context) {
	filter := parseCompanyFilter(c)
	page := httpPlatform.ParsePagination(c)
	q := c.Query("q")
	sortBy := c.Query("sortBy")
	sortDir := c.Query("sortDir")

	dtos, total, err := h.service.List(c.Request.Context(), filter, q, sortBy, sortDir, page)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}
	httpPlatform.RespondWithList(c, http.StatusOK, dtos, httpPlatform.ListMetaFor(page, total))
}

// Get handles GET /api/companies/:id.
func (h *CompanyHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.BadRequest("invalid company id"))
		return
	}
	dto, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, dto)
}

// Jobs handles GET /api/companies/:id/jobs, delegating to the jobs
// module's own filter+sort/hybrid selection scoped to this company.
func (h *CompanyHandler) Jobs(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.BadRequest("invalid company id"))
		return
	}

	page := httpPlatform.ParsePagination(c)
	q := c.Query("q")
	sortBy := c.Query("sortBy")
	sortDir := c.Query("sortDir")

	dtos, page, total, err := h.jobs.List(c.Request.Context(), jobsFilterForCompany(c, id), q, sortBy, sortDir, page, false)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}
	httpPlatform.RespondWithList(c, http.StatusOK, dtos, httpPlatform.ListMetaFor(page, total))
}

type createCompanyRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Country        string `json:"country"`
	State          string `json:"state"`
	City           string `json:"city"`
	Address        string `json:"address"`
	URL            string `json:"url"`
	CompanySizeMin *int   `json:"company_size_min"`
	CompanySizeMax *int   `json:"company_size_max"`
}

// Create handles POST /api/companies.
func (h *CompanyHandler) Create(c *gin.Context) {
	a, ok := auth.MustGetActor(c)
	if !ok {
		return
	}

	var req createCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithAppError(c, apperror.BadRequest("invalid request payload"))
		return
	}

	dto, err := h.service.Create(c.Request.Context(), a, service.CreateRequest{
		Name:           req.Name,
		Description:    req.Description,
		Country:        req.Country,
		State:          req.State,
		City:           req.City,
		Address:        req.Address,
		URL:            req.URL,
		CompanySizeMin: req.CompanySizeMin,
		CompanySizeMax: req.CompanySizeMax,
	})
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}
	httpPlatform.RespondWithData(c, http.StatusCreated, dto)
}

type updateCompanyRequest struct {
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	Country        *string `json:"country"`
	State          *string `json:"state"`
	City           *string `json:"city"`
	Address        *string `json:"address"`
	URL            *string `json:"url"`
	CompanySizeMin *int    `json:"company_size_min"`
	CompanySizeMax *int    `json:"company_size_max"`
}

// Update handles PUT /api/companies/:id.
func (h *CompanyHandler) Update(c *gin.Context) {
	a, ok := auth.MustGetActor(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.BadRequest("invalid company id"))
		return
	}

	var req updateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithAppError(c, apperror.BadRequest("invalid request payload"))
		return
	}

	dto, err := h.service.Update(c.Request.Context(), a, id, service.UpdateRequest{
		Name:           req.Name,
		Description:    req.Description,
		Country:        req.Country,
		State:          req.State,
		City:           req.City,
		Address:        req.Address,
		URL:            req.URL,
		CompanySizeMin: req.CompanySizeMin,
		CompanySizeMax: req.CompanySizeMax,
	})
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, dto)
}

// Delete handles DELETE /api/companies/:id.
func (h *CompanyHandler) Delete(c *gin.Context) {
	a, ok := auth.MustGetActor(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.BadRequest("invalid company id"))
		return
	}
	if err := h.service.Delete(c.Request.Context(), a, id); err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, gin.H{"message": "company deleted"})
}

// Logo handles PUT /api/companies/:id/logo: a multipart upload in the
// "logo" field, PNG/JPEG/WEBP, capped at 2 MiB.
func (h *CompanyHandler) Logo(c *gin.Context) {
	a, ok := auth.MustGetActor(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.BadRequest("invalid company id"))
		return
	}
	if _, err := h.service.GetByID(c.Request.Context(), id); err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}
	if appErr := actor.RequireSelfCompany(a, id); appErr != nil {
		httpPlatform.RespondWithAppError(c, appErr)
		return
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.BadRequest("logo file is required"))
		return
	}
	if fileHeader.Size > storage.MaxLogoBytes {
		httpPlatform.RespondWithAppError(c, apperror.BadRequest("logo exceeds 2 MiB"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.Internal(err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, storage.MaxLogoBytes+1))
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.Internal(err))
		return
	}

	path, err := h.logos.Save(c.Request.Context(), id, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}

	httpPlatform.RespondWithData(c, http.StatusOK, gin.H{"logo_full_path": path})
}

// RegisterRoutes registers company routes. Reads are public; mutations
// require an authenticated actor.
func (h *CompanyHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	companies := router.Group("/companies")
	{
		companies.GET("", h.List)
		companies.GET("/:id", h.Get)
		companies.GET("/:id/jobs", h.Jobs)

		companies.POST("", authMiddleware, h.Create)
		companies.PUT("/:id", authMiddleware, h.Update)
		companies.DELETE("/:id", authMiddleware, h.Delete)
		companies.PUT("/:id/logo", authMiddleware, h.Logo)
	}
}
