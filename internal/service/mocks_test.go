package service

import (
	"context"

	"github.com/anyonghua/onektips-server/internal/domain"
	"github.com/anyonghua/onektips-server/internal/repository"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// --- Mock ArticleRepository ---

type mockArticleRepo struct {
	mock.Mock
}

func (m *mockArticleRepo) List(ctx context.Context, filter domain.ArticleFilter, w repository.Window) ([]*domain.Article, int64, error) {
	args := m.Called(ctx, filter, w)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Article), args.Get(1).(int64), args.Error(2)
}

func (m *mockArticleRepo) FindByID(ctx context.Context, id bson.ObjectID) (*domain.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *mockArticleRepo) FindPublicBySerial(ctx context.Context, serial int64) (*domain.Article, error) {
	args := m.Called(ctx, serial)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *mockArticleRepo) FindRelated(ctx context.Context, tagIDs []bson.ObjectID) ([]*domain.Article, error) {
	args := m.Called(ctx, tagIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Article), args.Error(1)
}

func (m *mockArticleRepo) Insert(ctx context.Context, article *domain.Article) error {
	return m.Called(ctx, article).Error(0)
}

func (m *mockArticleRepo) UpdateByID(ctx context.Context, id bson.ObjectID, set bson.M) (*domain.Article, error) {
	args := m.Called(ctx, id, set)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *mockArticleRepo) UpdateMany(ctx context.Context, ids []bson.ObjectID, set bson.M) (int64, error) {
	args := m.Called(ctx, ids, set)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockArticleRepo) DeleteByID(ctx context.Context, id bson.ObjectID) (*domain.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *mockArticleRepo) DeleteMany(ctx context.Context, ids []bson.ObjectID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockArticleRepo) IncrementViews(ctx context.Context, id bson.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockArticleRepo) CountByTag(ctx context.Context, match bson.M) (map[string]int64, error) {
	args := m.Called(ctx, match)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

// --- Mock TagRepository ---

type mockTagRepo struct {
	mock.Mock
}

func (m *mockTagRepo) List(ctx context.Context, keyword string, w repository.Window) ([]*domain.Tag, int64, error) {
	args := m.Called(ctx, keyword, w)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Tag), args.Get(1).(int64), args.Error(2)
}

func (m *mockTagRepo) FindByID(ctx context.Context, id bson.ObjectID) (*domain.Tag, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tag), args.Error(1)
}

func (m *mockTagRepo) FindByName(ctx context.Context, name string) (*domain.Tag, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tag), args.Error(1)
}

func (m *mockTagRepo) FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]*domain.Tag, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Tag), args.Error(1)
}

func (m *mockTagRepo) Insert(ctx context.Context, tag *domain.Tag) error {
	return m.Called(ctx, tag).Error(0)
}

func (m *mockTagRepo) UpdateByID(ctx context.Context, id bson.ObjectID, set bson.M) (*domain.Tag, error) {
	args := m.Called(ctx, id, set)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tag), args.Error(1)
}

func (m *mockTagRepo) DeleteByID(ctx context.Context, id bson.ObjectID) (*domain.Tag, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tag), args.Error(1)
}

func (m *mockTagRepo) DeleteMany(ctx context.Context, ids []bson.ObjectID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock EventRepository ---

type mockEventRepo struct {
	mock.Mock
	inserted chan *domain.Event
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{inserted: make(chan *domain.Event, 8)}
}

func (m *mockEventRepo) Insert(ctx context.Context, event *domain.Event) error {
	err := m.Called(ctx, event).Error(0)
	m.inserted <- event
	return err
}

func (m *mockEventRepo) List(ctx context.Context, w repository.Window) ([]*domain.Event, int64, error) {
	args := m.Called(ctx, w)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Event), args.Get(1).(int64), args.Error(2)
}

// --- Mock Auditor ---

type mockAuditor struct {
	mock.Mock
}

func (m *mockAuditor) Record(person, action string, target domain.EventTarget) {
	m.Called(person, action, target)
}

// --- Stub Pinger ---

type stubPinger struct{}

func (stubPinger) Push(string)   {}
func (stubPinger) Update(string) {}
