// FILE: database/repository/business/indexes.go
package businessRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates the necessary indexes on the tenant collections.
func (r *mongoBusinessRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.businessColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_slug"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create business indexes: %w", err)
	}

	_, err = r.integrationColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "phoneNumberId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_phone_number_id"),
	})
	if err != nil {
		return fmt.Errorf("failed to create integration indexes: %w", err)
	}

	_, err = r.settingsColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "businessId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_business_id"),
	})
	if err != nil {
		return fmt.Errorf("failed to create booking settings indexes: %w", err)
	}
	return nil
}
