// FILE: database/repository/appointment/indexes.go
package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"randevio/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates the necessary indexes on the appointments collection.
// The partial unique index on (businessId, employeeId, startsAt) for scheduled
// rows is the storage-side backstop against concurrent double-booking; the
// transactor maps its duplicate-key error to a slot_unavailable fault.
func (r *mongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{{Key: "businessId", Value: 1}, {Key: "employeeId", Value: 1}, {Key: "startsAt", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": models.AppointmentScheduled}).
				SetName("unique_scheduled_slot"),
		},
		{
			Keys:    bson.D{{Key: "businessId", Value: 1}, {Key: "waUserId", Value: 1}, {Key: "startsAt", Value: 1}},
			Options: options.Index().SetName("business_wa_user_starts_idx"),
		},
		{
			Keys:    bson.D{{Key: "businessId", Value: 1}, {Key: "customerId", Value: 1}, {Key: "startsAt", Value: 1}},
			Options: options.Index().SetName("business_customer_starts_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}
	return nil
}
