// File: database/repository/appointment/interface.go
package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"randevio/database"
	"randevio/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrDuplicateSlot is returned by Insert when the unique (business, employee,
// startsAt) index rejects a concurrent double-booking.
var ErrDuplicateSlot = errors.New("appointment slot already taken")

type AppointmentRepository interface {
	Insert(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, businessID, id string) (*models.Appointment, error)
	// FindActiveByEmployeeOnDay returns non-cancelled appointments for an
	// employee within [dayStart, dayEnd).
	FindActiveByEmployeeOnDay(ctx context.Context, businessID, employeeID string, dayStart, dayEnd time.Time) ([]models.Appointment, error)
	// FindActiveForIdentityOnDay returns the identity's non-cancelled
	// appointments on a day, across every channel binding it carries.
	FindActiveForIdentityOnDay(ctx context.Context, businessID string, identity models.Identity, dayStart, dayEnd time.Time) ([]models.Appointment, error)
	FindUpcomingForIdentity(ctx context.Context, businessID string, identity models.Identity, from time.Time) ([]models.Appointment, error)
	Cancel(ctx context.Context, id string) error
	SetApproval(ctx context.Context, businessID, id, approvalStatus string, approvedAt *time.Time) (*models.Appointment, error)
	ListPending(ctx context.Context, businessID string) ([]models.Appointment, error)
}

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new MongoDB AppointmentRepository.
func NewMongoAppointmentRepo() AppointmentRepository {
	repo := &mongoAppointmentRepo{
		coll: database.DB().Collection("appointments"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create appointment indexes: %v\n", err)
	}
	return repo
}
