// File: database/repository/identity/interface.go
package identityRepo

import (
	"context"
	"fmt"

	"randevio/database"
	"randevio/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type IdentityRepository interface {
	GetOrCreateWaUser(ctx context.Context, businessID, waID, displayName string) (*models.WaUser, error)
	GetWaUserByWaID(ctx context.Context, businessID, waID string) (*models.WaUser, error)
	GetCustomer(ctx context.Context, businessID, customerID string) (*models.Customer, error)
	// GetOrCreateCustomer upserts the web identity keyed by normalized phone.
	GetOrCreateCustomer(ctx context.Context, businessID, phoneE164, name, surname string) (*models.Customer, error)
	FindCustomersByPhone(ctx context.Context, businessID, phoneE164 string) ([]models.Customer, error)
}

type mongoIdentityRepo struct {
	waUserColl   *mongo.Collection
	customerColl *mongo.Collection
}

// NewMongoIdentityRepo constructs a new MongoDB IdentityRepository.
func NewMongoIdentityRepo() IdentityRepository {
	db := database.DB()
	repo := &mongoIdentityRepo{
		waUserColl:   db.Collection("wa_users"),
		customerColl: db.Collection("customers"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create identity indexes: %v\n", err)
	}
	return repo
}
