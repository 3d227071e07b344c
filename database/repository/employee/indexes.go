// FILE: database/repository/employee/indexes.go
package employeeRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates the necessary indexes on the staff collections.
func (r *mongoEmployeeRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.employeeColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "businessId", Value: 1}, {Key: "isActive", Value: 1}},
			Options: options.Index().SetName("business_active"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create employee indexes: %w", err)
	}

	_, err = r.hoursColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "employeeId", Value: 1}, {Key: "dayOfWeek", Value: 1}},
		Options: options.Index().SetName("employee_day"),
	})
	if err != nil {
		return fmt.Errorf("failed to create working hours indexes: %w", err)
	}
	return nil
}
