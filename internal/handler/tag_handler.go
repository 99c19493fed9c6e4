package handler

import (
	"errors"
	"net/http"

	"github.com/anyonghua/onektips-server/internal/common"
	"github.com/anyonghua/onektips-server/internal/domain"
	"github.com/anyonghua/onektips-server/internal/service"
	"github.com/gin-gonic/gin"
)

// TagHandler handles tag API endpoints
type TagHandler struct {
	tags service.TagService
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(tags service.TagService) *TagHandler {
	return &TagHandler{tags: tags}
}

// List handles GET /tags
func (h *TagHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	data, err := h.tags.List(c.Request.Context(), c.Query("keyword"), page, limit)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "failed to fetch tag list")
		return
	}

	common.OK(c, "tag list fetched", data)
}

// Get handles GET /tags/:id
func (h *TagHandler) Get(c *gin.Context) {
	tag, err := h.tags.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, common.ErrTagNotFound), errors.Is(err, common.ErrInvalidInput):
			common.Fail(c, http.StatusNotFound, "tag not found")
		default:
			common.Fail(c, http.StatusInternalServerError, "failed to fetch tag")
		}
		return
	}

	common.OK(c, "tag fetched", gin.H{"tag": tag})
}

// Create handles POST /tags
func (h *TagHandler) Create(c *gin.Context) {
	var req domain.TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	tag, err := h.tags.Create(c.Request.Context(), &req)
	if err != nil {
		var conflict *service.TagConflictError
		switch {
		case errors.Is(err, common.ErrInvalidInput):
			common.Fail(c, http.StatusBadRequest, "tag name is empty")
		case errors.As(err, &conflict):
			common.FailWithData(c, http.StatusBadRequest, "tag already exists", gin.H{"tag": conflict.Tag})
		default:
			common.Fail(c, http.StatusInternalServerError, "failed to create tag")
		}
		return
	}

	common.OK(c, "tag created", gin.H{"tag": tag})
}

// Modify handles PUT /tags/:id
func (h *TagHandler) Modify(c *gin.Context) {
	var req domain.TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	tag, err := h.tags.Modify(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		var conflict *service.TagConflictError
		switch {
		case errors.Is(err, common.ErrInvalidInput):
			common.Fail(c, http.StatusBadRequest, "tag name is empty")
		case errors.As(err, &conflict):
			common.FailWithData(c, http.StatusBadRequest, "tag already exists", gin.H{"tag": conflict.Tag})
		case errors.Is(err, common.ErrTagNotFound):
			common.Fail(c, http.StatusNotFound, "tag not found")
		default:
			common.Fail(c, http.StatusInternalServerError, "failed to update tag")
		}
		return
	}

	common.OK(c, "tag updated", gin.H{"tag": tag})
}

// Delete handles DELETE /tags/:id
func (h *TagHandler) Delete(c *gin.Context) {
	err := h.tags.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, common.ErrTagNotFound), errors.Is(err, common.ErrInvalidInput):
			common.Fail(c, http.StatusNotFound, "tag not found")
		default:
			common.Fail(c, http.StatusInternalServerError, "failed to delete tag")
		}
		return
	}

	common.OK(c, "tag deleted", nil)
}

// DeleteList handles DELETE /tags, the batch delete
func (h *TagHandler) DeleteList(c *gin.Context) {
	var req domain.BatchTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.tags.DeleteList(c.Request.Context(), req.Tags); err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			common.Fail(c, http.StatusBadRequest, "missing required parameters")
			return
		}
		common.Fail(c, http.StatusInternalServerError, "failed to delete tags")
		return
	}

	common.OK(c, "tags deleted", nil)
}
