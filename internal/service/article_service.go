package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/anyonghua/onektips-server/internal/common"
	"github.com/anyonghua/onektips-server/internal/domain"
	"github.com/anyonghua/onektips-server/internal/repository"
	"github.com/anyonghua/onektips-server/pkg/cache"
	"github.com/anyonghua/onektips-server/pkg/logger"
	"github.com/anyonghua/onektips-server/pkg/seo"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// ArticleService business logic for articles
type ArticleService interface {
	List(ctx context.Context, filter domain.ArticleFilter, page, limit int) (*common.ListData, error)
	Get(ctx context.Context, id string) (*domain.ArticleResponse, error)
	Create(ctx context.Context, req *domain.CreateArticleRequest) (*domain.Article, error)
	Modify(ctx context.Context, id string, req *domain.UpdateArticleRequest) (*domain.Article, error)
	Delete(ctx context.Context, id string) error
	Patch(ctx context.Context, req *domain.BatchArticleRequest) error
	DeleteList(ctx context.Context, ids []string) error
}

type articleService struct {
	articles  repository.ArticleRepository
	tags      repository.TagRepository
	paginator repository.Paginator
	auditor   Auditor
	pinger    seo.Pinger
	cache     cache.Service
	site      string
}

// NewArticleService creates a new ArticleService. cache may be nil.
func NewArticleService(
	articles repository.ArticleRepository,
	tags repository.TagRepository,
	paginator repository.Paginator,
	auditor Auditor,
	pinger seo.Pinger,
	cacheSvc cache.Service,
	site string,
) ArticleService {
	return &articleService{
		articles:  articles,
		tags:      tags,
		paginator: paginator,
		auditor:   auditor,
		pinger:    pinger,
		cache:     cacheSvc,
		site:      site,
	}
}

// List retrieves a filtered, paginated article page with tags expanded
func (s *articleService) List(ctx context.Context, filter domain.ArticleFilter, page, limit int) (*common.ListData, error) {
	w := s.paginator.Plan(page, limit)

	articles, total, err := s.articles.List(ctx, filter, w)
	if err != nil {
		return nil, err
	}

	tagsByID, err := s.expandTags(ctx, articles)
	if err != nil {
		return nil, err
	}

	responses := make([]*domain.ArticleResponse, len(articles))
	for i, article := range articles {
		resp := &domain.ArticleResponse{Article: article}
		for _, tagID := range article.Tag {
			if tag, ok := tagsByID[tagID.Hex()]; ok {
				resp.Tags = append(resp.Tags, tag)
			}
		}
		responses[i] = resp
	}

	return common.NewListData(responses, total, w.Page, w.Limit), nil
}

// Get retrieves a single article. A numeric id is the public
// natural-key path: it only matches published, public articles, bumps
// the view counter, and expands related articles by shared tag. Any
// other id is the admin path by internal identifier, with no side
// effects.
func (s *articleService) Get(ctx context.Context, id string) (*domain.ArticleResponse, error) {
	if serial, err := strconv.ParseInt(id, 10, 64); err == nil {
		return s.getPublic(ctx, serial)
	}

	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.ErrInvalidInput
	}

	article, err := s.articles.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrArticleNotFound
		}
		return nil, err
	}
	return &domain.ArticleResponse{Article: article}, nil
}

func (s *articleService) getPublic(ctx context.Context, serial int64) (*domain.ArticleResponse, error) {
	article, err := s.articles.FindPublicBySerial(ctx, serial)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrArticleNotFound
		}
		return nil, err
	}

	// Best-effort view counter: a failed write must not fail the read
	if err := s.articles.IncrementViews(ctx, article.ID); err != nil {
		logger.GetLogger().Warn().Err(err).Int64("serial", serial).Msg("view counter write failed")
	} else {
		article.Meta.Views++
	}

	resp := &domain.ArticleResponse{Article: article}

	if len(article.Tag) > 0 {
		tags, err := s.tags.FindByIDs(ctx, article.Tag)
		if err != nil {
			return nil, err
		}
		resp.Tags = tags

		related, err := s.articles.FindRelated(ctx, article.Tag)
		if err != nil {
			return nil, err
		}
		resp.Related = related
	}

	return resp, nil
}

// Create stores a new article, then pings SEO and records the audit
// event with the stored document
func (s *articleService) Create(ctx context.Context, req *domain.CreateArticleRequest) (*domain.Article, error) {
	if req.Title == "" || req.Content == "" {
		return nil, common.ErrInvalidInput
	}

	article := &domain.Article{
		Title:       req.Title,
		Content:     req.Content,
		Description: req.Description,
		Tag:         repository.ObjectIDsFromHex(req.Tag),
		State:       req.State,
		Pub:         req.Pub,
	}
	if oid, err := bson.ObjectIDFromHex(req.Category); err == nil {
		article.Category = &oid
	}

	if err := s.articles.Insert(ctx, article); err != nil {
		return nil, err
	}

	s.pinger.Push(fmt.Sprintf("%s/article/%d", s.site, article.Serial))
	s.auditor.Record(domain.PersonAdmin, domain.ActionNew, domain.EventTarget{
		Type: domain.TargetArticle,
		Data: article,
	})
	s.invalidateTagLists(ctx)

	return article, nil
}

// Modify applies a full update. Client-supplied meta and timestamps are
// discarded: only content fields and lifecycle/visibility reach the
// store, and update_at is stamped server-side.
func (s *articleService) Modify(ctx context.Context, id string, req *domain.UpdateArticleRequest) (*domain.Article, error) {
	if req.Title == "" || req.Content == "" {
		return nil, common.ErrInvalidInput
	}

	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.ErrInvalidInput
	}

	set := bson.M{
		"title":       req.Title,
		"content":     req.Content,
		"description": req.Description,
		"tag":         repository.ObjectIDsFromHex(req.Tag),
	}
	if catID, err := bson.ObjectIDFromHex(req.Category); err == nil {
		set["category"] = catID
	}
	if req.State != nil {
		set["state"] = *req.State
	}
	if req.Pub != nil {
		set["pub"] = *req.Pub
	}

	updated, err := s.articles.UpdateByID(ctx, oid, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrArticleNotFound
		}
		return nil, err
	}

	s.pinger.Update(fmt.Sprintf("%s/article/%d", s.site, updated.Serial))
	s.auditor.Record(domain.PersonAdmin, domain.ActionModify, domain.EventTarget{
		Type: domain.TargetArticle,
		Data: updated,
	})
	s.invalidateTagLists(ctx)

	return updated, nil
}

// Delete removes an article permanently. The audit event captures the
// document as it was just before deletion.
func (s *articleService) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return common.ErrInvalidInput
	}

	deleted, err := s.articles.DeleteByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return common.ErrArticleNotFound
		}
		return err
	}

	s.auditor.Record(domain.PersonAdmin, domain.ActionDelete, domain.EventTarget{
		Type: domain.TargetArticle,
		Data: deleted,
	})
	s.invalidateTagLists(ctx)

	return nil
}

// Patch moves a set of articles through the lifecycle in one store
// round-trip. Ids absent from the store are unaffected and do not fail
// the batch; success is reported for the whole requested set, the
// matched count is only logged.
func (s *articleService) Patch(ctx context.Context, req *domain.BatchArticleRequest) error {
	if len(req.Articles) == 0 {
		return common.ErrInvalidInput
	}

	if state, ok := domain.BatchActionState(req.Action); ok {
		ids := repository.ObjectIDsFromHex(req.Articles)
		matched, err := s.articles.UpdateMany(ctx, ids, bson.M{"state": state})
		if err != nil {
			return err
		}
		logger.GetLogger().Debug().
			Int("requested", len(req.Articles)).
			Int64("matched", matched).
			Int("action", req.Action).
			Msg("batch article state update")
	}

	s.auditor.Record(domain.PersonAdmin, domain.ActionModifyList, domain.EventTarget{
		Type: domain.TargetArticle,
		Data: req.Articles,
	})

	return nil
}

// DeleteList removes a set of articles in one store round-trip
func (s *articleService) DeleteList(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return common.ErrInvalidInput
	}

	deleted, err := s.articles.DeleteMany(ctx, repository.ObjectIDsFromHex(ids))
	if err != nil {
		return err
	}
	logger.GetLogger().Debug().
		Int("requested", len(ids)).
		Int64("deleted", deleted).
		Msg("batch article delete")

	s.auditor.Record(domain.PersonAdmin, domain.ActionDeleteList, domain.EventTarget{
		Type: domain.TargetArticle,
		Data: ids,
	})
	s.invalidateTagLists(ctx)

	return nil
}

// expandTags loads every tag referenced by the page in one query
func (s *articleService) expandTags(ctx context.Context, articles []*domain.Article) (map[string]*domain.Tag, error) {
	seen := make(map[string]bool)
	var ids []bson.ObjectID
	for _, article := range articles {
		for _, tagID := range article.Tag {
			if !seen[tagID.Hex()] {
				seen[tagID.Hex()] = true
				ids = append(ids, tagID)
			}
		}
	}

	tags, err := s.tags.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.Tag, len(tags))
	for _, tag := range tags {
		byID[tag.ID.Hex()] = tag
	}
	return byID, nil
}

// Tag usage counts are derived from articles, so article mutations
// invalidate cached tag listings too
func (s *articleService) invalidateTagLists(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateTagLists(ctx); err != nil {
		logger.GetLogger().Warn().Err(err).Msg("tag list cache invalidation failed")
	}
}
