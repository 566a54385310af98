// Package handler wires the Candidates HTTP surface onto gin.
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
	"github.com/avpavlenko/jobboard/modules/candidates/service"
)

type CandidateHandler struct {
	service *service.CandidateService
	cvs     *storage.CVStore
}

func NewCandidateHandler(service *service.CandidateService, cvs *storage.CVStore) *CandidateHandler {
	return &CandidateHandler{service: service, cvs: cvs}
}

// Get handles GET /api/candidates/:id.
func (h *CandidateHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.BadRequest("invalid candidate id"))
		return
	}
	dto, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, dto)
}

type updateCandidateRequest struct {
	FullName    *string `json:"full_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	LinkedInURL *string `json:"linkedin_url"`
	Country     *string `json:"country"`
	State       *string `json:"state"`
	City        *string `json:"city"`
	Headline    *string `json:"headline"`
}

// Update handles PUT /api/candidates/:id.
func (h *CandidateHandler) Update(c *gin.Context) {
	a, ok := auth.MustGetActor(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.BadRequest("invalid candidate id"))
		return
	}

	var req updateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithAppError(c, apperror.BadRequest("invalid request payload"))
		return
	}

	dto, err := h.service.Update(c.Request.Context(), a, id, service.UpdateRequest{
		FullName: req.FullName, Email: req.Email, Phone: req.Phone, LinkedInURL: req.LinkedInURL,
		Country: req.Country, State: req.State, City: req.City, Headline: req.Headline,
	})
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, dto)
}

// UploadCV handles PUT /api/candidates/:id/cv: a multipart upload in
// the "cv" field, capped at 8 MiB. A new upload replaces the previous
// file; there is no multi-resume history.
func (h *CandidateHandler) UploadCV(c *gin.Context) {
	a, ok := auth.MustGetActor(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.BadRequest("invalid candidate id"))
		return
	}
	if _, err := h.service.GetByID(c.Request.Context(), id); err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}
	if appErr := actor.RequireSelfCandidate(a, id); appErr != nil {
		httpPlatform.RespondWithAppError(c, appErr)
		return
	}

	fileHeader, err := c.FormFile("cv")
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.BadRequest("cv file is required"))
		return
	}
	if fileHeader.Size > storage.MaxCVBytes {
		httpPlatform.RespondWithAppError(c, apperror.BadRequest("cv exceeds 8 MiB"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.Internal(err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, storage.MaxCVBytes+1))
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.Internal(err))
		return
	}

	path, err := h.cvs.Save(c.Request.Context(), id, data)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.As(err))
		return
	}

	httpPlatform.RespondWithData(c, http.StatusOK, gin.H{"cv_path": path})
}

// DownloadCV handles GET /api/candidates/:id/cv.
func (h *CandidateHandler) DownloadCV(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.BadRequest("invalid candidate id"))
		return
	}
	data, err := h.cvs.Load(c.Request.Context(), id)
	if err != nil {
		httpPlatform.RespondWithAppError(c, apperror.Internal(err))
		return
	}
	if data == nil {
		httpPlatform.RespondWithAppError(c, apperror.NotFound("cv not found"))
		return
	}
	c.Data(http.StatusOK, "application/pdf", data)
}

// RegisterRoutes registers candidate routes. Get and DownloadCV are
// public; Update and UploadCV require the owning candidate or admin.
func (h *CandidateHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	candidates := router.Group("/candidates")
	{
		candidates.GET("/:id", h.Get)
		candidates.PUT("/:id", authMiddleware, h.Update)
		candidates.GET("/:id/cv", h.DownloadCV)
		candidates.PUT("/:id/cv", authMiddleware, h.UploadCV)
	}
}
