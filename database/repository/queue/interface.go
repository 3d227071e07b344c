// File: database/repository/queue/interface.go
package queueRepo

import (
	"context"
	"fmt"

	"randevio/database"
	"randevio/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type QueueRepository interface {
	Insert(ctx context.Context, entry *models.QueueEntry) error
	// MaxPosition returns the highest position ever assigned for
	// (business, date), or -1 when the day's queue is empty. Cancelled
	// entries keep their number, so they count too.
	MaxPosition(ctx context.Context, businessID, queueDate string) (int, error)
	FindForIdentityOnDate(ctx context.Context, businessID string, identity models.Identity, queueDate string) (*models.QueueEntry, error)
	List(ctx context.Context, businessID, queueDate string) ([]models.QueueEntry, error)
	SetStatus(ctx context.Context, businessID, id, status string) (*models.QueueEntry, error)
}

type mongoQueueRepo struct {
	coll *mongo.Collection
}

// NewMongoQueueRepo constructs a new MongoDB QueueRepository.
func NewMongoQueueRepo() QueueRepository {
	repo := &mongoQueueRepo{
		coll: database.DB().Collection("queue_entries"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create queue indexes: %v\n", err)
	}
	return repo
}
