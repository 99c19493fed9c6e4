package service

import (
	"context"
	"testing"

	"github.com/anyonghua/onektips-server/internal/common"
	"github.com/anyonghua/onektips-server/internal/domain"
	"github.com/anyonghua/onektips-server/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func newTagService(tags *mockTagRepo, articles *mockArticleRepo, auditor *mockAuditor) TagService {
	return NewTagService(
		tags, articles,
		repository.NewPaginator(10, 16),
		auditor,
		stubPinger{},
		nil,
		"https://www.example.com",
	)
}

func TestListTags_MergesCountsWithZeroDefault(t *testing.T) {
	tags := new(mockTagRepo)
	articles := new(mockArticleRepo)
	svc := newTagService(tags, articles, new(mockAuditor))

	used := &domain.Tag{ID: bson.NewObjectID(), Name: "go"}
	unused := &domain.Tag{ID: bson.NewObjectID(), Name: "rust"}

	tags.On("List", mock.Anything, "", repository.Window{Page: 1, Limit: 10}).
		Return([]*domain.Tag{used, unused}, int64(2), nil)
	articles.On("CountByTag", mock.Anything, bson.M{}).
		Return(map[string]int64{used.ID.Hex(): 3}, nil)

	data, err := svc.List(context.Background(), "", 1, 10)

	require.NoError(t, err)
	items := data.Items.([]*domain.TagWithCount)
	require.Len(t, items, 2)
	assert.Equal(t, int64(3), items[0].Count)
	// a tag with no referencing articles still appears, with count 0
	assert.Equal(t, int64(0), items[1].Count)
}

func TestCreateTag_RequiresName(t *testing.T) {
	svc := newTagService(new(mockTagRepo), new(mockArticleRepo), new(mockAuditor))

	_, err := svc.Create(context.Background(), &domain.TagRequest{Name: ""})

	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestCreateTag_DuplicateNameConflicts(t *testing.T) {
	tags := new(mockTagRepo)
	auditor := new(mockAuditor)
	svc := newTagService(tags, new(mockArticleRepo), auditor)

	existing := &domain.Tag{ID: bson.NewObjectID(), Name: "go"}
	tags.On("FindByName", mock.Anything, "go").Return(existing, nil)

	_, err := svc.Create(context.Background(), &domain.TagRequest{Name: "go"})

	var conflict *TagConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, existing, conflict.Tag)
	// rejected pre-write: no insert, no audit event
	tags.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	auditor.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateTag_Success(t *testing.T) {
	tags := new(mockTagRepo)
	auditor := new(mockAuditor)
	svc := newTagService(tags, new(mockArticleRepo), auditor)

	tags.On("FindByName", mock.Anything, "rust").Return(nil, mongo.ErrNoDocuments)
	tags.On("Insert", mock.Anything, mock.Anything).Return(nil)
	auditor.On("Record", domain.PersonAdmin, domain.ActionNew, domain.EventTarget{
		Type:   domain.TargetTag,
		Change: "rust",
	}).Return()

	tag, err := svc.Create(context.Background(), &domain.TagRequest{Name: "rust"})

	require.NoError(t, err)
	assert.Equal(t, "rust", tag.Name)
	auditor.AssertExpectations(t)
}

func TestModifyTag_KeepingOwnNameIsNotAConflict(t *testing.T) {
	tags := new(mockTagRepo)
	auditor := new(mockAuditor)
	svc := newTagService(tags, new(mockArticleRepo), auditor)

	id := bson.NewObjectID()
	self := &domain.Tag{ID: id, Name: "go"}
	updated := &domain.Tag{ID: id, Name: "go", Description: "lang"}

	tags.On("FindByName", mock.Anything, "go").Return(self, nil)
	tags.On("UpdateByID", mock.Anything, id, bson.M{"name": "go", "description": "lang"}).
		Return(updated, nil)
	auditor.On("Record", domain.PersonAdmin, domain.ActionModify, mock.Anything).Return()

	tag, err := svc.Modify(context.Background(), id.Hex(), &domain.TagRequest{Name: "go", Description: "lang"})

	require.NoError(t, err)
	assert.Equal(t, "lang", tag.Description)
}

func TestModifyTag_RenamingOntoAnotherTagConflicts(t *testing.T) {
	tags := new(mockTagRepo)
	svc := newTagService(tags, new(mockArticleRepo), new(mockAuditor))

	other := &domain.Tag{ID: bson.NewObjectID(), Name: "taken"}
	tags.On("FindByName", mock.Anything, "taken").Return(other, nil)

	_, err := svc.Modify(context.Background(), bson.NewObjectID().Hex(), &domain.TagRequest{Name: "taken"})

	var conflict *TagConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, other, conflict.Tag)
}

func TestModifyTag_NotFound(t *testing.T) {
	tags := new(mockTagRepo)
	svc := newTagService(tags, new(mockArticleRepo), new(mockAuditor))

	id := bson.NewObjectID()
	tags.On("FindByName", mock.Anything, "go").Return(nil, mongo.ErrNoDocuments)
	tags.On("UpdateByID", mock.Anything, id, mock.Anything).Return(nil, mongo.ErrNoDocuments)

	_, err := svc.Modify(context.Background(), id.Hex(), &domain.TagRequest{Name: "go"})

	assert.ErrorIs(t, err, common.ErrTagNotFound)
}

func TestDeleteTag_AuditsFinalState(t *testing.T) {
	tags := new(mockTagRepo)
	auditor := new(mockAuditor)
	svc := newTagService(tags, new(mockArticleRepo), auditor)

	id := bson.NewObjectID()
	snapshot := &domain.Tag{ID: id, Name: "old"}
	tags.On("DeleteByID", mock.Anything, id).Return(snapshot, nil)
	auditor.On("Record", domain.PersonAdmin, domain.ActionDelete, domain.EventTarget{
		Type: domain.TargetTag,
		Data: snapshot,
	}).Return()

	err := svc.Delete(context.Background(), id.Hex())

	require.NoError(t, err)
	auditor.AssertExpectations(t)
}

func TestDeleteTagList(t *testing.T) {
	tags := new(mockTagRepo)
	auditor := new(mockAuditor)
	svc := newTagService(tags, new(mockArticleRepo), auditor)

	ids := []string{bson.NewObjectID().Hex(), bson.NewObjectID().Hex()}
	tags.On("DeleteMany", mock.Anything, mock.Anything).Return(int64(2), nil)
	auditor.On("Record", domain.PersonAdmin, domain.ActionDeleteList, domain.EventTarget{
		Type:   domain.TargetTag,
		Change: 2,
	}).Return()

	err := svc.DeleteList(context.Background(), ids)

	require.NoError(t, err)
	auditor.AssertExpectations(t)
}

func TestDeleteTagList_EmptyIDSet(t *testing.T) {
	svc := newTagService(new(mockTagRepo), new(mockArticleRepo), new(mockAuditor))

	err := svc.DeleteList(context.Background(), nil)

	assert.ErrorIs(t, err, common.ErrInvalidInput)
}
