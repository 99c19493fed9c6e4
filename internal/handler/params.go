package handler

import (
	"strconv"

	"github.com/anyonghua/onektips-server/internal/domain"
	"github.com/gin-gonic/gin"
)

// parseArticleFilter reads the loosely-typed listing parameters into a
// typed filter. Dimensions with unusable values stay unset.
func parseArticleFilter(c *gin.Context) domain.ArticleFilter {
	return domain.ArticleFilter{
		State:    parseTriState(c.Query("state")),
		Pub:      parseTriState(c.Query("pub")),
		Keyword:  c.Query("keyword"),
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
		Date:     c.Query("date"),
		Hot:      c.Query("hot") != "",
	}
}

// parseTriState accepts only the literal strings "-1", "0" and "1";
// anything else means no filter on that dimension
func parseTriState(raw string) *int {
	switch raw {
	case "-1", "0", "1":
		n, _ := strconv.Atoi(raw)
		return &n
	default:
		return nil
	}
}

// parsePagination coerces page/per_page to integers. Garbage and
// non-positive values come out as 0 and fall back to the paginator's
// defaults.
func parsePagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.Query("page"))
	limit, _ = strconv.Atoi(c.Query("per_page"))
	return page, limit
}
