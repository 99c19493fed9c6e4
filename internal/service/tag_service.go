package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/anyonghua/onektips-server/internal/common"
	"github.com/anyonghua/onektips-server/internal/domain"
	"github.com/anyonghua/onektips-server/internal/repository"
	"github.com/anyonghua/onektips-server/pkg/cache"
	"github.com/anyonghua/onektips-server/pkg/logger"
	"github.com/anyonghua/onektips-server/pkg/seo"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// TagConflictError duplicate tag name, carrying the existing tag so
// handlers can attach it to the conflict response
type TagConflictError struct {
	Tag *domain.Tag
}

func (e *TagConflictError) Error() string {
	return "tag name already exists"
}

// TagService business logic for tags
type TagService interface {
	List(ctx context.Context, keyword string, page, limit int) (*common.ListData, error)
	Get(ctx context.Context, id string) (*domain.Tag, error)
	Create(ctx context.Context, req *domain.TagRequest) (*domain.Tag, error)
	Modify(ctx context.Context, id string, req *domain.TagRequest) (*domain.Tag, error)
	Delete(ctx context.Context, id string) error
	DeleteList(ctx context.Context, ids []string) error
}

type tagService struct {
	tags      repository.TagRepository
	articles  repository.ArticleRepository
	paginator repository.Paginator
	auditor   Auditor
	pinger    seo.Pinger
	cache     cache.Service
	site      string
}

// NewTagService creates a new TagService. cache may be nil.
func NewTagService(
	tags repository.TagRepository,
	articles repository.ArticleRepository,
	paginator repository.Paginator,
	auditor Auditor,
	pinger seo.Pinger,
	cacheSvc cache.Service,
	site string,
) TagService {
	return &tagService{
		tags:      tags,
		articles:  articles,
		paginator: paginator,
		auditor:   auditor,
		pinger:    pinger,
		cache:     cacheSvc,
		site:      site,
	}
}

// List returns a page of tags with their derived usage counts. A tag
// referenced by no article still appears, with count 0.
func (s *tagService) List(ctx context.Context, keyword string, page, limit int) (*common.ListData, error) {
	w := s.paginator.Plan(page, limit)

	if s.cache != nil {
		var cached common.ListData
		if err := s.cache.GetTagList(ctx, w.Page, w.Limit, keyword, &cached); err == nil {
			return &cached, nil
		}
	}

	tags, total, err := s.tags.List(ctx, keyword, w)
	if err != nil {
		return nil, err
	}

	counts, err := s.articles.CountByTag(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	withCounts := make([]*domain.TagWithCount, len(tags))
	for i, tag := range tags {
		withCounts[i] = &domain.TagWithCount{
			Tag:   tag,
			Count: counts[tag.ID.Hex()],
		}
	}

	data := common.NewListData(withCounts, total, w.Page, w.Limit)

	if s.cache != nil {
		if err := s.cache.SetTagList(ctx, w.Page, w.Limit, keyword, data); err != nil {
			logger.GetLogger().Warn().Err(err).Msg("tag list cache write failed")
		}
	}

	return data, nil
}

func (s *tagService) Get(ctx context.Context, id string) (*domain.Tag, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.ErrInvalidInput
	}

	tag, err := s.tags.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrTagNotFound
		}
		return nil, err
	}
	return tag, nil
}

// Create stores a new tag after checking name uniqueness. A duplicate
// name is a conflict carrying the existing tag, not a store error.
func (s *tagService) Create(ctx context.Context, req *domain.TagRequest) (*domain.Tag, error) {
	if req.Name == "" {
		return nil, common.ErrInvalidInput
	}

	existing, err := s.tags.FindByName(ctx, req.Name)
	if err == nil {
		return nil, &TagConflictError{Tag: existing}
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	tag := &domain.Tag{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.tags.Insert(ctx, tag); err != nil {
		return nil, err
	}

	s.pinger.Push(fmt.Sprintf("%s/tag/%s", s.site, tag.Name))
	s.auditor.Record(domain.PersonAdmin, domain.ActionNew, domain.EventTarget{
		Type:   domain.TargetTag,
		Change: tag.Name,
	})
	s.invalidateTagLists(ctx)

	return tag, nil
}

// Modify renames or re-describes a tag. The uniqueness check excludes
// the tag itself so saving without renaming stays legal.
func (s *tagService) Modify(ctx context.Context, id string, req *domain.TagRequest) (*domain.Tag, error) {
	if req.Name == "" {
		return nil, common.ErrInvalidInput
	}

	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.ErrInvalidInput
	}

	existing, err := s.tags.FindByName(ctx, req.Name)
	if err == nil && existing.ID != oid {
		return nil, &TagConflictError{Tag: existing}
	}
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	updated, err := s.tags.UpdateByID(ctx, oid, bson.M{
		"name":        req.Name,
		"description": req.Description,
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrTagNotFound
		}
		return nil, err
	}

	s.pinger.Update(fmt.Sprintf("%s/tag/%s", s.site, updated.Name))
	s.auditor.Record(domain.PersonAdmin, domain.ActionModify, domain.EventTarget{
		Type: domain.TargetTag,
		Data: updated,
	})
	s.invalidateTagLists(ctx)

	return updated, nil
}

// Delete removes a tag permanently, capturing its final state for audit
func (s *tagService) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return common.ErrInvalidInput
	}

	deleted, err := s.tags.DeleteByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return common.ErrTagNotFound
		}
		return err
	}

	s.auditor.Record(domain.PersonAdmin, domain.ActionDelete, domain.EventTarget{
		Type: domain.TargetTag,
		Data: deleted,
	})
	s.invalidateTagLists(ctx)

	return nil
}

// DeleteList removes a set of tags in one store round-trip. Success is
// reported for the whole requested set; the deleted count is logged.
func (s *tagService) DeleteList(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return common.ErrInvalidInput
	}

	deleted, err := s.tags.DeleteMany(ctx, repository.ObjectIDsFromHex(ids))
	if err != nil {
		return err
	}
	logger.GetLogger().Debug().
		Int("requested", len(ids)).
		Int64("deleted", deleted).
		Msg("batch tag delete")

	s.auditor.Record(domain.PersonAdmin, domain.ActionDeleteList, domain.EventTarget{
		Type:   domain.TargetTag,
		Change: len(ids),
	})
	s.invalidateTagLists(ctx)

	return nil
}

func (s *tagService) invalidateTagLists(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateTagLists(ctx); err != nil {
		logger.GetLogger().Warn().Err(err).Msg("tag list cache invalidation failed")
	}
}
