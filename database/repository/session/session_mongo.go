// File: database/repository/session/session_mongo.go
package sessionRepo

import (
	"context"
	"errors"
	"time"

	"randevio/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *mongoSessionRepo) Get(ctx context.Context, businessID, waID string) (*models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var session models.Session
	err := r.sessionColl.FindOne(ctx, bson.M{"businessId": businessID, "waId": waID}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *mongoSessionRepo) Insert(ctx context.Context, session *models.Session) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	_, err := r.sessionColl.InsertOne(ctx, session)
	return err
}

func (r *mongoSessionRepo) Save(ctx context.Context, session *models.Session) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"state":         session.State,
		"context":       session.Context,
		"lastMessageAt": session.LastMessageAt,
		"expiresAt":     session.ExpiresAt,
	}}
	res, err := r.sessionColl.UpdateOne(ctx, bson.M{"id": session.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoSessionRepo) LogInbound(ctx context.Context, businessID, messageID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	doc := bson.M{
		"businessId": businessID,
		"messageId":  messageID,
		"direction":  "inbound",
		"loggedAt":   time.Now(),
	}
	_, err := r.messageColl.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
