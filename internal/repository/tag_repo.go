package repository

import (
	"context"

	"github.com/anyonghua/onektips-server/internal/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// TagRepository handles tag data access
type TagRepository interface {
	List(ctx context.Context, keyword string, w Window) ([]*domain.Tag, int64, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*domain.Tag, error)
	FindByName(ctx context.Context, name string) (*domain.Tag, error)
	FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]*domain.Tag, error)
	Insert(ctx context.Context, tag *domain.Tag) error
	UpdateByID(ctx context.Context, id bson.ObjectID, set bson.M) (*domain.Tag, error)
	DeleteByID(ctx context.Context, id bson.ObjectID) (*domain.Tag, error)
	DeleteMany(ctx context.Context, ids []bson.ObjectID) (int64, error)
}

type tagRepository struct {
	tags *mongo.Collection
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db *mongo.Database) TagRepository {
	return &tagRepository{tags: db.Collection("tags")}
}

// List returns a page of tags in insertion order
func (r *tagRepository) List(ctx context.Context, keyword string, w Window) ([]*domain.Tag, int64, error) {
	query := BuildTagQuery(keyword)

	total, err := r.tags.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(w.Skip)).
		SetLimit(int64(w.Limit))

	cursor, err := r.tags.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}

	var tags []*domain.Tag
	if err := cursor.All(ctx, &tags); err != nil {
		return nil, 0, err
	}
	return tags, total, nil
}

func (r *tagRepository) FindByID(ctx context.Context, id bson.ObjectID) (*domain.Tag, error) {
	var tag domain.Tag
	if err := r.tags.FindOne(ctx, bson.M{"_id": id}).Decode(&tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// FindByName is the pre-write uniqueness check. Returns
// mongo.ErrNoDocuments when the name is free.
func (r *tagRepository) FindByName(ctx context.Context, name string) (*domain.Tag, error) {
	var tag domain.Tag
	if err := r.tags.FindOne(ctx, bson.M{"name": name}).Decode(&tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]*domain.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cursor, err := r.tags.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var tags []*domain.Tag
	if err := cursor.All(ctx, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) Insert(ctx context.Context, tag *domain.Tag) error {
	tag.ID = bson.NewObjectID()
	_, err := r.tags.InsertOne(ctx, tag)
	return err
}

func (r *tagRepository) UpdateByID(ctx context.Context, id bson.ObjectID, set bson.M) (*domain.Tag, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated domain.Tag
	err := r.tags.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteByID removes a tag and returns its final state for audit capture
func (r *tagRepository) DeleteByID(ctx context.Context, id bson.ObjectID) (*domain.Tag, error) {
	var deleted domain.Tag
	if err := r.tags.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&deleted); err != nil {
		return nil, err
	}
	return &deleted, nil
}

func (r *tagRepository) DeleteMany(ctx context.Context, ids []bson.ObjectID) (int64, error) {
	res, err := r.tags.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
