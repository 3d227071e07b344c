// FILE: database/repository/identity/indexes.go
package identityRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates the necessary indexes on the identity collections.
func (r *mongoIdentityRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.waUserColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "businessId", Value: 1}, {Key: "waId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_business_wa_id"),
	})
	if err != nil {
		return fmt.Errorf("failed to create wa_user indexes: %w", err)
	}

	_, err = r.customerColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "businessId", Value: 1}, {Key: "phoneE164", Value: 1}},
		Options: options.Index().SetName("business_phone_idx"),
	})
	if err != nil {
		return fmt.Errorf("failed to create customer indexes: %w", err)
	}
	return nil
}
