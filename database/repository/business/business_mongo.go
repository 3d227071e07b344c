// File: database/repository/business/business_mongo.go
package businessRepo

import (
	"context"
	"errors"
	"time"

	"randevio/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoBusinessRepo) GetByID(ctx context.Context, id string) (*models.Business, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var biz models.Business
	err := r.businessColl.FindOne(ctx, bson.M{"id": id}).Decode(&biz)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &biz, nil
}

func (r *mongoBusinessRepo) GetBySlug(ctx context.Context, slug string) (*models.Business, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var biz models.Business
	err := r.businessColl.FindOne(ctx, bson.M{"slug": slug}).Decode(&biz)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &biz, nil
}

func (r *mongoBusinessRepo) GetIntegrationByPhoneNumberID(ctx context.Context, phoneNumberID string) (*models.ChannelIntegration, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var integ models.ChannelIntegration
	err := r.integrationColl.FindOne(ctx, bson.M{"phoneNumberId": phoneNumberID}).Decode(&integ)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &integ, nil
}

func (r *mongoBusinessRepo) GetBookingSettings(ctx context.Context, businessID string) (*models.BookingSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var settings models.BookingSettings
	err := r.settingsColl.FindOne(ctx, bson.M{"businessId": businessID}).Decode(&settings)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Absent settings behave as all-defaults.
			return &models.BookingSettings{BusinessID: businessID}, nil
		}
		return nil, err
	}
	return &settings, nil
}

func (r *mongoBusinessRepo) GetSubscription(ctx context.Context, businessID string) (*models.Subscription, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "id", Value: -1}})
	var sub models.Subscription
	err := r.subscriptionColl.FindOne(ctx, bson.M{"businessId": businessID}, opts).Decode(&sub)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}
