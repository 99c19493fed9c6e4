package handler

import (
	"errors"
	"net/http"

	"github.com/anyonghua/onektips-server/internal/common"
	"github.com/anyonghua/onektips-server/internal/domain"
	"github.com/anyonghua/onektips-server/internal/service"
	"github.com/gin-gonic/gin"
)

// ArticleHandler handles article API endpoints
type ArticleHandler struct {
	articles service.ArticleService
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(articles service.ArticleService) *ArticleHandler {
	return &ArticleHandler{articles: articles}
}

// List handles GET /articles
func (h *ArticleHandler) List(c *gin.Context) {
	filter := parseArticleFilter(c)
	page, limit := parsePagination(c)

	data, err := h.articles.List(c.Request.Context(), filter, page, limit)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "failed to fetch article list")
		return
	}

	common.OK(c, "article list fetched", data)
}

// Get handles GET /articles/:id. Numeric ids are the public lookup
// path, object ids the admin path.
func (h *ArticleHandler) Get(c *gin.Context) {
	article, err := h.articles.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, common.ErrArticleNotFound):
			common.Fail(c, http.StatusNotFound, "article not found")
		case errors.Is(err, common.ErrInvalidInput):
			common.Fail(c, http.StatusBadRequest, "invalid article id")
		default:
			common.Fail(c, http.StatusInternalServerError, "failed to fetch article")
		}
		return
	}

	common.OK(c, "article fetched", article)
}

// Create handles POST /articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var req domain.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	article, err := h.articles.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			common.Fail(c, http.StatusBadRequest, "article title or content is empty")
			return
		}
		common.Fail(c, http.StatusInternalServerError, "failed to create article")
		return
	}

	common.OK(c, "article created", article)
}

// Modify handles PUT /articles/:id
func (h *ArticleHandler) Modify(c *gin.Context) {
	var req domain.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	article, err := h.articles.Modify(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidInput):
			common.Fail(c, http.StatusBadRequest, "article title or content is empty")
		case errors.Is(err, common.ErrArticleNotFound):
			common.Fail(c, http.StatusNotFound, "article not found")
		default:
			common.Fail(c, http.StatusInternalServerError, "failed to update article")
		}
		return
	}

	common.OK(c, "article updated", article)
}

// Delete handles DELETE /articles/:id
func (h *ArticleHandler) Delete(c *gin.Context) {
	err := h.articles.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, common.ErrArticleNotFound):
			common.Fail(c, http.StatusNotFound, "article not found")
		case errors.Is(err, common.ErrInvalidInput):
			common.Fail(c, http.StatusBadRequest, "invalid article id")
		default:
			common.Fail(c, http.StatusInternalServerError, "failed to delete article")
		}
		return
	}

	common.OK(c, "article deleted", nil)
}

// Patch handles PATCH /articles, the batch lifecycle action
func (h *ArticleHandler) Patch(c *gin.Context) {
	var req domain.BatchArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.articles.Patch(c.Request.Context(), &req); err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			common.Fail(c, http.StatusBadRequest, "missing required parameters")
			return
		}
		common.Fail(c, http.StatusInternalServerError, "failed to update article states")
		return
	}

	common.OK(c, "article states updated", nil)
}

// DeleteList handles DELETE /articles, the batch delete
func (h *ArticleHandler) DeleteList(c *gin.Context) {
	var req domain.BatchArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.articles.DeleteList(c.Request.Context(), req.Articles); err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			common.Fail(c, http.StatusBadRequest, "missing required parameters")
			return
		}
		common.Fail(c, http.StatusInternalServerError, "failed to delete articles")
		return
	}

	common.OK(c, "articles deleted", nil)
}
