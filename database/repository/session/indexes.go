// FILE: database/repository/session/indexes.go
package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates the necessary indexes on the session collections.
func (r *mongoSessionRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.sessionColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "businessId", Value: 1}, {Key: "waId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_business_wa_id"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create session indexes: %w", err)
	}

	// Durable dedupe backstop behind the redis fast path.
	_, err = r.messageColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "businessId", Value: 1}, {Key: "messageId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_business_message_id"),
	})
	if err != nil {
		return fmt.Errorf("failed to create message log indexes: %w", err)
	}
	return nil
}
