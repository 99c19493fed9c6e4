package service

import (
	"errors"
	"testing"
	"time"

	"github.com/anyonghua/onektips-server/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAuditRecorder_WritesEventAsynchronously(t *testing.T) {
	events := newMockEventRepo()
	events.On("Insert", mock.Anything, mock.Anything).Return(nil)
	recorder := NewAuditRecorder(events)

	recorder.Record(domain.PersonAdmin, domain.ActionNew, domain.EventTarget{
		Type:   domain.TargetTag,
		Change: "go",
	})

	select {
	case event := <-events.inserted:
		assert.Equal(t, domain.PersonAdmin, event.Person)
		assert.Equal(t, domain.ActionNew, event.Action)
		assert.Equal(t, domain.TargetTag, event.Target.Type)
		assert.False(t, event.CreateAt.IsZero())
	case <-time.After(time.Second):
		t.Fatal("audit event was never written")
	}
}

func TestAuditRecorder_InsertFailureDoesNotPropagate(t *testing.T) {
	events := newMockEventRepo()
	events.On("Insert", mock.Anything, mock.Anything).Return(errors.New("store down"))
	recorder := NewAuditRecorder(events)

	// Record has no error to return; the failed write may only be logged
	recorder.Record(domain.PersonAdmin, domain.ActionDelete, domain.EventTarget{Type: domain.TargetArticle})

	select {
	case <-events.inserted:
	case <-time.After(time.Second):
		t.Fatal("audit write was never attempted")
	}
}
