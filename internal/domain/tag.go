package domain

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Tag a label referenced by articles. Name is unique across all tags.
type Tag struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string        `bson:"name" json:"name"`
	Description string        `bson:"description" json:"description"`
}

// TagWithCount tag plus its derived usage count. The count is computed
// on read from the articles collection and never persisted.
type TagWithCount struct {
	*Tag
	Count int64 `json:"count"`
}

// TagRequest payload for tag creation and modification
type TagRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// BatchTagRequest payload for batch tag deletion
type BatchTagRequest struct {
	Tags []string `json:"tags"`
}
