package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Lifecycle states. Trash is a reversible state, distinct from hard deletion.
const (
	StateTrash     = -1
	StateDraft     = 0
	StatePublished = 1
)

// Visibility levels, independent of lifecycle state
const (
	PubPrivate  = -1
	PubUnlisted = 0
	PubPublic   = 1
)

// Batch lifecycle actions
const (
	ActionToTrash   = 1
	ActionToDraft   = 2
	ActionToPublish = 3
)

// BatchActionState maps a batch action code to its target state.
// Unknown codes map to no state change.
func BatchActionState(action int) (int, bool) {
	switch action {
	case ActionToTrash:
		return StateTrash, true
	case ActionToDraft:
		return StateDraft, true
	case ActionToPublish:
		return StatePublished, true
	default:
		return 0, false
	}
}

// ArticleMeta server-owned counters, never writable by clients
type ArticleMeta struct {
	Views    int64 `bson:"views" json:"views"`
	Likes    int64 `bson:"likes" json:"likes"`
	Comments int64 `bson:"comments" json:"comments"`
}

// Article a content item in the articles collection.
// Serial is the public numeric id used for anonymous lookups,
// allocated from the counters collection on insert.
type Article struct {
	ID          bson.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Serial      int64           `bson:"id" json:"id"`
	Title       string          `bson:"title" json:"title"`
	Content     string          `bson:"content,omitempty" json:"content,omitempty"`
	Description string          `bson:"description" json:"description"`
	Tag         []bson.ObjectID `bson:"tag" json:"tag"`
	Category    *bson.ObjectID  `bson:"category,omitempty" json:"category,omitempty"`
	State       int             `bson:"state" json:"state"`
	Pub         int             `bson:"pub" json:"pub"`
	Meta        ArticleMeta     `bson:"meta" json:"meta"`
	CreateAt    time.Time       `bson:"create_at" json:"create_at"`
	UpdateAt    time.Time       `bson:"update_at" json:"update_at"`
}

// IsPublic reports whether the article is eligible for anonymous lookup
// and related-article expansion
func (a *Article) IsPublic() bool {
	return a.State == StatePublished && a.Pub == PubPublic
}

// ArticleResponse article enriched with expanded relationships
type ArticleResponse struct {
	*Article
	Tags    []*Tag     `json:"tags,omitempty"`
	Related []*Article `json:"related,omitempty"`
}

// ArticleFilter fully-optional listing filter. Nil/zero fields apply
// no constraint on their dimension.
type ArticleFilter struct {
	State    *int
	Pub      *int
	Keyword  string
	Category string
	Tag      string
	Date     string
	Hot      bool
}

// CreateArticleRequest payload for article creation
type CreateArticleRequest struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Description string   `json:"description"`
	Tag         []string `json:"tag"`
	Category    string   `json:"category"`
	State       int      `json:"state"`
	Pub         int      `json:"pub"`
}

// UpdateArticleRequest payload for a full article modify.
// Meta and timestamps are server-owned: even if a client sends them,
// they are never applied.
type UpdateArticleRequest struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Description string   `json:"description"`
	Tag         []string `json:"tag"`
	Category    string   `json:"category"`
	State       *int     `json:"state"`
	Pub         *int     `json:"pub"`
}

// BatchArticleRequest payload for batch lifecycle changes and deletes
type BatchArticleRequest struct {
	Articles []string `json:"articles"`
	Action   int      `json:"action"`
}
