// File: database/repository/business/interface.go
package businessRepo

import (
	"context"
	"fmt"

	"randevio/database"
	"randevio/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type BusinessRepository interface {
	GetByID(ctx context.Context, id string) (*models.Business, error)
	GetBySlug(ctx context.Context, slug string) (*models.Business, error)
	GetIntegrationByPhoneNumberID(ctx context.Context, phoneNumberID string) (*models.ChannelIntegration, error)
	GetBookingSettings(ctx context.Context, businessID string) (*models.BookingSettings, error)
	GetSubscription(ctx context.Context, businessID string) (*models.Subscription, error)
}

type mongoBusinessRepo struct {
	businessColl     *mongo.Collection
	integrationColl  *mongo.Collection
	settingsColl     *mongo.Collection
	subscriptionColl *mongo.Collection
}

// NewMongoBusinessRepo constructs a new MongoDB BusinessRepository.
func NewMongoBusinessRepo() BusinessRepository {
	db := database.DB()
	repo := &mongoBusinessRepo{
		businessColl:     db.Collection("businesses"),
		integrationColl:  db.Collection("channel_integrations"),
		settingsColl:     db.Collection("booking_settings"),
		subscriptionColl: db.Collection("subscriptions"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create business indexes: %v\n", err)
	}
	return repo
}
