package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

type ChangeOp string

const (
	OpInsert  ChangeOp = "insert"
	OpUpdate  ChangeOp = "update"
	OpReplace ChangeOp = "replace"
	OpDelete  ChangeOp = "delete"
)

// Change is one "something changed" notification for a collection. Doc is
// the full document after the change; it is nil for deletes, where only
// the storage key survives.
type Change struct {
	Op  ChangeOp
	Key string
	Doc bson.Raw
}

// ChangeFeed is the store's subscribe-to-changes primitive. Delivery is
// at-least-once; consumers must tolerate refetch-equivalent duplicates.
type ChangeFeed interface {
	Watch(ctx context.Context, collection string) (<-chan Change, error)
}
