package repository

import (
	"context"
	"time"

	"github.com/anyonghua/onektips-server/internal/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ArticleRepository handles article data access
type ArticleRepository interface {
	List(ctx context.Context, filter domain.ArticleFilter, w Window) ([]*domain.Article, int64, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*domain.Article, error)
	FindPublicBySerial(ctx context.Context, serial int64) (*domain.Article, error)
	FindRelated(ctx context.Context, tagIDs []bson.ObjectID) ([]*domain.Article, error)
	Insert(ctx context.Context, article *domain.Article) error
	UpdateByID(ctx context.Context, id bson.ObjectID, set bson.M) (*domain.Article, error)
	UpdateMany(ctx context.Context, ids []bson.ObjectID, set bson.M) (int64, error)
	DeleteByID(ctx context.Context, id bson.ObjectID) (*domain.Article, error)
	DeleteMany(ctx context.Context, ids []bson.ObjectID) (int64, error)
	IncrementViews(ctx context.Context, id bson.ObjectID) error
	CountByTag(ctx context.Context, match bson.M) (map[string]int64, error)
}

type articleRepository struct {
	articles *mongo.Collection
	counters *mongo.Collection
}

// NewArticleRepository creates a new ArticleRepository
func NewArticleRepository(db *mongo.Database) ArticleRepository {
	return &articleRepository{
		articles: db.Collection("articles"),
		counters: db.Collection("counters"),
	}
}

// List runs a paginated find. Listing pages omit the article body.
func (r *articleRepository) List(ctx context.Context, filter domain.ArticleFilter, w Window) ([]*domain.Article, int64, error) {
	query := BuildArticleQuery(filter)

	total, err := r.articles.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(ArticleSort(filter)).
		SetSkip(int64(w.Skip)).
		SetLimit(int64(w.Limit)).
		SetProjection(bson.M{"content": 0})

	cursor, err := r.articles.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}

	var articles []*domain.Article
	if err := cursor.All(ctx, &articles); err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

func (r *articleRepository) FindByID(ctx context.Context, id bson.ObjectID) (*domain.Article, error) {
	var article domain.Article
	err := r.articles.FindOne(ctx, bson.M{"_id": id}).Decode(&article)
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// FindPublicBySerial looks an article up by its public numeric id.
// Only published, public articles are eligible.
func (r *articleRepository) FindPublicBySerial(ctx context.Context, serial int64) (*domain.Article, error) {
	query := bson.M{
		"id":    serial,
		"state": domain.StatePublished,
		"pub":   domain.PubPublic,
	}
	var article domain.Article
	if err := r.articles.FindOne(ctx, query).Decode(&article); err != nil {
		return nil, err
	}
	return &article, nil
}

// FindRelated returns published, public articles sharing any of the tags
func (r *articleRepository) FindRelated(ctx context.Context, tagIDs []bson.ObjectID) ([]*domain.Article, error) {
	query := bson.M{
		"state": domain.StatePublished,
		"pub":   domain.PubPublic,
		"tag":   bson.M{"$in": tagIDs},
	}
	cursor, err := r.articles.Find(ctx, query, options.Find().SetProjection(bson.M{"content": 0}))
	if err != nil {
		return nil, err
	}
	var related []*domain.Article
	if err := cursor.All(ctx, &related); err != nil {
		return nil, err
	}
	return related, nil
}

// Insert stores a new article, allocating its public serial and
// stamping timestamps
func (r *articleRepository) Insert(ctx context.Context, article *domain.Article) error {
	serial, err := r.nextSerial(ctx)
	if err != nil {
		return err
	}
	now := time.Now()
	article.ID = bson.NewObjectID()
	article.Serial = serial
	article.CreateAt = now
	article.UpdateAt = now

	_, err = r.articles.InsertOne(ctx, article)
	return err
}

// UpdateByID applies a partial update and returns the updated document
func (r *articleRepository) UpdateByID(ctx context.Context, id bson.ObjectID, set bson.M) (*domain.Article, error) {
	set["update_at"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated domain.Article
	err := r.articles.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateMany applies one partial update to every matching id in a
// single store round-trip. Returns the matched count.
func (r *articleRepository) UpdateMany(ctx context.Context, ids []bson.ObjectID, set bson.M) (int64, error) {
	res, err := r.articles.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": set},
	)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// DeleteByID removes an article and returns the document as it was
// just before deletion, for audit capture
func (r *articleRepository) DeleteByID(ctx context.Context, id bson.ObjectID) (*domain.Article, error) {
	var deleted domain.Article
	err := r.articles.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&deleted)
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

func (r *articleRepository) DeleteMany(ctx context.Context, ids []bson.ObjectID) (int64, error) {
	res, err := r.articles.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// IncrementViews bumps the approximate view counter by one
func (r *articleRepository) IncrementViews(ctx context.Context, id bson.ObjectID) error {
	_, err := r.articles.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"meta.views": 1}},
	)
	return err
}

type tagCount struct {
	ID    bson.ObjectID `bson:"_id"`
	Count int64         `bson:"count"`
}

// CountByTag unwinds every article's tag set and groups by tag id,
// producing the derived usage counts for tag listings. An article with
// N tags contributes to N counts.
func (r *articleRepository) CountByTag(ctx context.Context, match bson.M) (map[string]int64, error) {
	if match == nil {
		match = bson.M{}
	}
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$unwind", Value: "$tag"}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$tag"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.articles.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var rows []tagCount
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.ID.Hex()] = row.Count
	}
	return counts, nil
}

type serialCounter struct {
	Seq int64 `bson:"seq"`
}

// nextSerial allocates the next public numeric id from the counters
// collection with an atomic upsert increment
func (r *articleRepository) nextSerial(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter serialCounter
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": "articles"},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}
