package handler

import (
	"net/http"

	"github.com/anyonghua/onektips-server/internal/common"
	"github.com/anyonghua/onektips-server/internal/repository"
	"github.com/gin-gonic/gin"
)

// EventHandler read side of the audit trail
type EventHandler struct {
	events    repository.EventRepository
	paginator repository.Paginator
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(events repository.EventRepository, paginator repository.Paginator) *EventHandler {
	return &EventHandler{events: events, paginator: paginator}
}

// List handles GET /events
func (h *EventHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	w := h.paginator.Plan(page, limit)

	events, total, err := h.events.List(c.Request.Context(), w)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "failed to fetch event list")
		return
	}

	common.OK(c, "event list fetched", common.NewListData(events, total, w.Page, w.Limit))
}
