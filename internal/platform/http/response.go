package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avpavlenko/jobboard/internal/platform/apperror"
)

// ErrorResponse is the standard error envelope: {error, message?, details?}.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// RespondWithError sends a standardized error response.
func RespondWithError(c *gin.Context, statusCode int, errorCode, errorMessage string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   errorCode,
		Message: errorMessage,
	})
}

// RespondWithAppError renders an *apperror.Error using its own Code,
// HTTPStatus and Message, so handlers never need to restate them.
func RespondWithAppError(c *gin.Context, err *apperror.Error) {
	c.JSON(err.HTTPStatus, ErrorResponse{
		Error:   string(err.Code),
		Message: err.Message,
	})
}

// ListMeta is the pagination metadata accompanying every list response.
type ListMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ListResponse is the standard paginated-list envelope: {meta, data}.
type ListResponse struct {
	Meta ListMeta    `json:"meta"`
	Data interface{} `json:"data"`
}

// RespondWithList sends a paginated list response.
func RespondWithList(c *gin.Context, statusCode int, data interface{}, meta ListMeta) {
	c.JSON(statusCode, ListResponse{Meta: meta, Data: data})
}

// RespondWithData sends an entity detail response directly, unwrapped.
func RespondWithData(c *gin.Context, statusCode int, data interface{}) {
	if data == nil {
		c.JSON(statusCode, gin.H{})
		return
	}
	c.JSON(statusCode, data)
}

// HealthResponse is the health-check response structure
type HealthResponse struct {
	Status   string            `json:"status"`
	Version  string            `json:"version"`
	Services map[string]string `json:"services"`
}

// RespondWithHealth sends a health check response
func RespondWithHealth(c *gin.Context, services map[string]string) {
	status := "healthy"
	for _, serviceStatus := range services {
		if serviceStatus != "up" {
			status = "degraded"
			break
		}
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:   status,
		Version:  "1.0.0",
		Services: services,
	})
}
