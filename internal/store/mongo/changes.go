package mongo

import (
	"context"
	"fmt"

	"github.com/Shreyas-k-p/SCANV2-sub000/internal/repo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChangeFeed adapts MongoDB change streams to the repo.ChangeFeed
// subscribe-to-changes primitive. Requires a replica set.
type ChangeFeed struct {
	database *mongo.Database
}

func NewChangeFeed(db *mongo.Database) *ChangeFeed {
	return &ChangeFeed{database: db}
}

func (f *ChangeFeed) Watch(ctx context.Context, collection string) (<-chan repo.Change, error) {
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	stream, err := f.database.Collection(collection).Watch(ctx, mongo.Pipeline{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open change stream for %s: %w", collection, err)
	}

	changes := make(chan repo.Change)

	go func() {
		defer close(changes)
		defer stream.Close(context.Background())

		for stream.Next(ctx) {
			var event struct {
				OperationType string   `bson:"operationType"`
				DocumentKey   bson.Raw `bson:"documentKey"`
				FullDocument  bson.Raw `bson:"fullDocument"`
			}
			if err := stream.Decode(&event); err != nil {
				continue
			}

			change := repo.Change{
				Op:  repo.ChangeOp(event.OperationType),
				Doc: event.FullDocument,
			}
			if id, ok := event.DocumentKey.Lookup("_id").ObjectIDOK(); ok {
				change.Key = id.Hex()
			}

			select {
			case changes <- change:
			case <-ctx.Done():
				return
			}
		}
	}()

	return changes, nil
}
