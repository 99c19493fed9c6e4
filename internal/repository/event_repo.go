package repository

import (
	"context"

	"github.com/anyonghua/onektips-server/internal/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// EventRepository append-only store for audit events. Events are never
// updated or deleted.
type EventRepository interface {
	Insert(ctx context.Context, event *domain.Event) error
	List(ctx context.Context, w Window) ([]*domain.Event, int64, error)
}

type eventRepository struct {
	events *mongo.Collection
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *mongo.Database) EventRepository {
	return &eventRepository{events: db.Collection("events")}
}

func (r *eventRepository) Insert(ctx context.Context, event *domain.Event) error {
	event.ID = bson.NewObjectID()
	_, err := r.events.InsertOne(ctx, event)
	return err
}

// List returns audit events, newest first
func (r *eventRepository) List(ctx context.Context, w Window) ([]*domain.Event, int64, error) {
	total, err := r.events.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "create_at", Value: -1}}).
		SetSkip(int64(w.Skip)).
		SetLimit(int64(w.Limit))

	cursor, err := r.events.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}

	var events []*domain.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, 0, err
	}
	return events, total, nil
}
