// File: database/repository/identity/identity_mongo.go
package identityRepo

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

func (r *mongoIdentityRepo) GetOrCreateWaUser(ctx context.Context, businessID, waID, displayName string) (*models.WaUser, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	set := bson.M{"lastSeenAt": now}
	if displayName != "" {
		set["displayName"] = displayName
	}
	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"id":          uuid.New().String(),
			"businessId":  businessID,
			"waId":        waID,
			"firstSeenAt": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var user models.WaUser
	err := r.waUserColl.FindOneAndUpdate(ctx, bson.M{"businessId": businessID, "waId": waID}, update, opts).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *mongoIdentityRepo) GetWaUserByWaID(ctx context.Context, businessID, waID string) (*models.WaUser, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.WaUser
	err := r.waUserColl.FindOne(ctx, bson.M{"businessId": businessID, "waId": waID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *mongoIdentityRepo) GetCustomer(ctx context.Context, businessID, customerID string) (*models.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var customer models.Customer
	err := r.customerColl.FindOne(ctx, bson.M{"id": customerID, "businessId": businessID}).Decode(&customer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func (r *mongoIdentityRepo) GetOrCreateCustomer(ctx context.Context, businessID, phoneE164, name, surname string) (*models.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{}
	if name != "" {
		set["name"] = name
	}
	if surname != "" {
		set["surname"] = surname
	}
	update := bson.M{
		"$setOnInsert": bson.M{
			"id":         uuid.New().String(),
			"businessId": businessID,
			"phoneE164":  phoneE164,
			"createdAt":  time.Now(),
		},
	}
	if len(set) > 0 {
		update["$set"] = set
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var customer models.Customer
	err := r.customerColl.FindOneAndUpdate(ctx, bson.M{"businessId": businessID, "phoneE164": phoneE164}, update, opts).Decode(&customer)
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *mongoIdentityRepo) FindCustomersByPhone(ctx context.Context, businessID, phoneE164 string) ([]models.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.customerColl.Find(ctx, bson.M{"businessId": businessID, "phoneE164": phoneE164})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var customers []models.Customer
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}
