package service

import (
	"context"
	"time"

	"github.com/anyonghua/onektips-server/internal/domain"
	"github.com/anyonghua/onektips-server/internal/repository"
	"github.com/anyonghua/onektips-server/pkg/logger"
)

// Auditor records mutation events. Record is fire-and-forget: it
// returns before the write happens and a failed write never reaches
// the caller.
type Auditor interface {
	Record(person, action string, target domain.EventTarget)
}

type auditRecorder struct {
	events repository.EventRepository
}

// NewAuditRecorder creates an Auditor backed by the event store
func NewAuditRecorder(events repository.EventRepository) Auditor {
	return &auditRecorder{events: events}
}

// Record builds the immutable event and writes it asynchronously so the
// triggering mutation's response is never delayed
func (a *auditRecorder) Record(person, action string, target domain.EventTarget) {
	event := &domain.Event{
		Person:   person,
		Action:   action,
		Target:   target,
		CreateAt: time.Now(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.events.Insert(ctx, event); err != nil {
			logger.GetLogger().Error().Err(err).
				Str("action", action).
				Str("target_type", target.Type).
				Msg("audit event write failed")
		}
	}()
}
