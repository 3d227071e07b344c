// FILE: database/repository/queue/indexes.go
package queueRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates the necessary indexes on the queue_entries collection.
func (r *mongoQueueRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "businessId", Value: 1}, {Key: "queueDate", Value: 1}, {Key: "position", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_day_position"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create queue indexes: %w", err)
	}
	return nil
}
