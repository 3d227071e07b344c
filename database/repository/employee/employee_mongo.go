// File: database/repository/employee/employee_mongo.go
package employeeRepo

import (
	"context"
	"errors"
	"time"

	"randevio/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoEmployeeRepo) GetActive(ctx context.Context, businessID string) ([]models.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.employeeColl.Find(ctx, bson.M{"businessId": businessID, "isActive": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var employees []models.Employee
	if err := cursor.All(ctx, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *mongoEmployeeRepo) GetByID(ctx context.Context, businessID, employeeID string) (*models.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var emp models.Employee
	err := r.employeeColl.FindOne(ctx, bson.M{"id": employeeID, "businessId": businessID}).Decode(&emp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

func (r *mongoEmployeeRepo) GetWorkingHours(ctx context.Context, employeeID string, dayOfWeek int) ([]models.WorkingHoursRule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	cursor, err := r.hoursColl.Find(ctx, bson.M{"employeeId": employeeID, "dayOfWeek": dayOfWeek}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rules []models.WorkingHoursRule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}
