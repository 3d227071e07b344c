// File: database/repository/queue/queue_mongo.go
package queueRepo

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

func (r *mongoQueueRepo) Insert(ctx context.Context, entry *models.QueueEntry) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	_, err := r.coll.InsertOne(ctx, entry)
	return err
}

func (r *mongoQueueRepo) MaxPosition(ctx context.Context, businessID, queueDate string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Max is taken over every entry, cancelled included: numbers are
	// assigned append-only and never reused within a day.
	opts := options.FindOne().SetSort(bson.D{{Key: "position", Value: -1}})
	var top models.QueueEntry
	err := r.coll.FindOne(ctx, bson.M{"businessId": businessID, "queueDate": queueDate}, opts).Decode(&top)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return -1, nil
		}
		return -1, err
	}
	return top.Position, nil
}

func (r *mongoQueueRepo) FindForIdentityOnDate(ctx context.Context, businessID string, identity models.Identity, queueDate string) (*models.QueueEntry, error) {
	var or bson.A
	if identity.WaUserID != "" {
		or = append(or, bson.M{"waUserId": identity.WaUserID})
	}
	if len(identity.CustomerIDs) > 0 {
		or = append(or, bson.M{"customerId": bson.M{"$in": identity.CustomerIDs}})
	}
	if len(or) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"businessId": businessID,
		"queueDate":  queueDate,
		"$or":        or,
		"status":     bson.M{"$ne": models.QueueCancelled},
	}
	var entry models.QueueEntry
	err := r.coll.FindOne(ctx, filter).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *mongoQueueRepo) List(ctx context.Context, businessID, queueDate string) ([]models.QueueEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"businessId": businessID}
	if queueDate != "" {
		filter["queueDate"] = queueDate
	}
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.QueueEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *mongoQueueRepo) SetStatus(ctx context.Context, businessID, id, status string) (*models.QueueEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var entry models.QueueEntry
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"id": id, "businessId": businessID},
		bson.M{"$set": bson.M{"status": status}},
		opts,
	).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}
