// File: database/repository/employee/interface.go
package employeeRepo

import (
	"context"
	"fmt"

	"randevio/database"
	"randevio/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type EmployeeRepository interface {
	GetActive(ctx context.Context, businessID string) ([]models.Employee, error)
	GetByID(ctx context.Context, businessID, employeeID string) (*models.Employee, error)
	GetWorkingHours(ctx context.Context, employeeID string, dayOfWeek int) ([]models.WorkingHoursRule, error)
}

type mongoEmployeeRepo struct {
	employeeColl *mongo.Collection
	hoursColl    *mongo.Collection
}

// NewMongoEmployeeRepo constructs a new MongoDB EmployeeRepository.
func NewMongoEmployeeRepo() EmployeeRepository {
	db := database.DB()
	repo := &mongoEmployeeRepo{
		employeeColl: db.Collection("employees"),
		hoursColl:    db.Collection("working_hours"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create employee indexes: %v\n", err)
	}
	return repo
}
