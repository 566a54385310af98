package http

import (
	"github.com/gin-gonic/gin"

	"github.com/avpavlenko/jobboard/internal/search/query"
)

// ParsePagination reads page/limit query parameters with the system's
// default page of 1 and default limit of 20.
func ParsePagination(c *gin.Context) query.Pagination {
	return query.ParsePagination(c.Query("page"), c.Query("limit"))
}

// ListMetaFor builds the response metadata for a page of total results.
func ListMetaFor(p query.Pagination, total int) ListMeta {
	return ListMeta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: query.TotalPages(total, p.Limit),
	}
}
