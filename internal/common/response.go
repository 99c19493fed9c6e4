package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response standard API response envelope
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ListData pagination payload nested under data for listing calls.
// Page and Limit are the effective values after defaulting and clamping.
type ListData struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
	Limit int         `json:"limit"`
	Page  int         `json:"page"`
	Pages int64       `json:"pages"`
}

// NewListData creates ListData with computed page count
func NewListData(items interface{}, total int64, page, limit int) *ListData {
	pages := total / int64(limit)
	if total%int64(limit) > 0 {
		pages++
	}
	return &ListData{
		Items: items,
		Total: total,
		Limit: limit,
		Page:  page,
		Pages: pages,
	}
}

// OK returns a success response
func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Fail returns an error response
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, Response{
		Success: false,
		Message: message,
	})
}

// FailWithData returns an error response carrying a payload,
// e.g. the conflicting entity on a duplicate tag name
func FailWithData(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		Success: false,
		Message: message,
		Data:    data,
	})
}
