package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Audit actions
const (
	ActionNew        = "NEW"
	ActionModify     = "MODIFY"
	ActionModifyList = "MODIFYLIST"
	ActionDelete     = "DELETE"
	ActionDeleteList = "DELETELIST"
)

// Audit target types
const (
	TargetArticle = "ARTICLE"
	TargetTag     = "TAG"
)

// Fixed acting identity until real multi-user auth lands
const PersonAdmin = "ADMIN"

// EventTarget describes what a mutation touched. Data carries a full
// entity snapshot or a list of affected identifiers; Change carries a
// short descriptor such as a tag name or a deletion count.
type EventTarget struct {
	Type   string      `bson:"type" json:"type"`
	Data   interface{} `bson:"data,omitempty" json:"data,omitempty"`
	Change interface{} `bson:"change,omitempty" json:"change,omitempty"`
}

// Event an immutable audit record, created after every successful
// mutation. Never updated or deleted.
type Event struct {
	ID       bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Person   string        `bson:"person" json:"person"`
	Action   string        `bson:"action" json:"action"`
	Target   EventTarget   `bson:"target" json:"target"`
	CreateAt time.Time     `bson:"create_at" json:"create_at"`
}
