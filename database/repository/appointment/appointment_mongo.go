// File: database/repository/appointment/appointment_mongo.go
package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"randevio/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// identityFilter matches any channel binding the resolved identity carries.
func identityFilter(identity models.Identity) bson.A {
	var or bson.A
	if identity.WaUserID != "" {
		or = append(or, bson.M{"waUserId": identity.WaUserID})
	}
	if len(identity.CustomerIDs) > 0 {
		or = append(or, bson.M{"customerId": bson.M{"$in": identity.CustomerIDs}})
	}
	return or
}

func (r *mongoAppointmentRepo) Insert(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}
	_, err := r.coll.InsertOne(ctx, appt)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateSlot
	}
	return err
}

func (r *mongoAppointmentRepo) GetByID(ctx context.Context, businessID, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	err := r.coll.FindOne(ctx, bson.M{"id": id, "businessId": businessID}).Decode(&appt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &appt, nil
}

func (r *mongoAppointmentRepo) FindActiveByEmployeeOnDay(ctx context.Context, businessID, employeeID string, dayStart, dayEnd time.Time) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"businessId": businessID,
		"employeeId": employeeID,
		"status":     bson.M{"$ne": models.AppointmentCancelled},
		"startsAt":   bson.M{"$gte": dayStart, "$lt": dayEnd},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *mongoAppointmentRepo) FindActiveForIdentityOnDay(ctx context.Context, businessID string, identity models.Identity, dayStart, dayEnd time.Time) ([]models.Appointment, error) {
	or := identityFilter(identity)
	if len(or) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"businessId": businessID,
		"$or":        or,
		"status":     bson.M{"$ne": models.AppointmentCancelled},
		"startsAt":   bson.M{"$gte": dayStart, "$lt": dayEnd},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *mongoAppointmentRepo) FindUpcomingForIdentity(ctx context.Context, businessID string, identity models.Identity, from time.Time) ([]models.Appointment, error) {
	or := identityFilter(identity)
	if len(or) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"businessId": businessID,
		"$or":        or,
		"status":     bson.M{"$ne": models.AppointmentCancelled},
		"startsAt":   bson.M{"$gt": from},
	}
	opts := options.Find().SetSort(bson.D{{Key: "startsAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *mongoAppointmentRepo) Cancel(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"status": models.AppointmentCancelled}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoAppointmentRepo) SetApproval(ctx context.Context, businessID, id, approvalStatus string, approvedAt *time.Time) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"approvalStatus": approvalStatus}
	if approvedAt != nil {
		set["approvedAt"] = approvedAt
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var appt models.Appointment
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"id": id, "businessId": businessID},
		bson.M{"$set": set},
		opts,
	).Decode(&appt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &appt, nil
}

func (r *mongoAppointmentRepo) ListPending(ctx context.Context, businessID string) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"businessId":     businessID,
		"approvalStatus": models.ApprovalPending,
		"status":         bson.M{"$ne": models.AppointmentCancelled},
	}
	opts := options.Find().SetSort(bson.D{{Key: "startsAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}
