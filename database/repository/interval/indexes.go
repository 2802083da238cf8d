// File: database/repository/interval/indexes.go
package intervalRepo

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates the indexes the day-window and per-employee
// queries rely on. Failures are logged, not fatal; the queries still work
// unindexed.
func (r *mongoIntervalRepo) ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "ownerKind", Value: 1}, {Key: "start", Value: 1}}},
		{Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "status", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("failed to create interval indexes: %v", err)
	}
}
