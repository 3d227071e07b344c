// File: database/repository/session/interface.go
package sessionRepo

import (
	"context"
	"fmt"

	"randevio/database"
	"randevio/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type SessionRepository interface {
	Get(ctx context.Context, businessID, waID string) (*models.Session, error)
	Insert(ctx context.Context, session *models.Session) error
	Save(ctx context.Context, session *models.Session) error
	// LogInbound records an inbound message id for idempotency; it reports
	// false when the (business, messageId) pair was already logged.
	LogInbound(ctx context.Context, businessID, messageID string) (bool, error)
}

type mongoSessionRepo struct {
	sessionColl *mongo.Collection
	messageColl *mongo.Collection
}

// NewMongoSessionRepo constructs a new MongoDB SessionRepository.
func NewMongoSessionRepo() SessionRepository {
	db := database.DB()
	repo := &mongoSessionRepo{
		sessionColl: db.Collection("chat_sessions"),
		messageColl: db.Collection("message_logs"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create session indexes: %v\n", err)
	}
	return repo
}
