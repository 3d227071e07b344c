// File: services/booking/interface.go
package booking

import (
	"context"
	"time"

	appointmentRepo "randevio/database/repository/appointment"
	businessRepo "randevio/database/repository/business"
	queueRepo "randevio/database/repository/queue"
	"randevio/models"
	"randevio/services/availability"
	"randevio/services/notification"
)

// CreateAppointmentRequest carries everything the transactor needs to commit
// one appointment. Exactly one of WaUserID / CustomerID binds the record;
// Identity carries the full cross-channel correlation for conflict checks.
type CreateAppointmentRequest struct {
	BusinessID string
	EmployeeID string
	Date       string // "YYYY-MM-DD"
	Slot       string // "HH:MM"
	WaUserID   string
	CustomerID string
	Identity   models.Identity
	Channel    string
}

// CreateQueueEntryRequest carries a queue join for today.
type CreateQueueEntryRequest struct {
	BusinessID string
	EmployeeID string
	WaUserID   string
	CustomerID string
	Identity   models.Identity
	Channel    string
}

// Transactor validates and durably persists bookings, re-checking
// availability and uniqueness at commit time. Recoverable conflicts come
// back as *Fault; anything else is fatal.
type Transactor interface {
	CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*models.Appointment, error)
	CreateQueueEntry(ctx context.Context, req CreateQueueEntryRequest) (*models.QueueEntry, error)
	CancelAppointment(ctx context.Context, businessID, appointmentID string, identity models.Identity) error
}

// DefaultTransactor implements Transactor.
type DefaultTransactor struct {
	Appointments appointmentRepo.AppointmentRepository
	Queue        queueRepo.QueueRepository
	Businesses   businessRepo.BusinessRepository
	Availability *availability.Engine
	Notifier     notification.NotificationService
	CancelNotice time.Duration
	// Now is swappable in tests; defaults to time.Now.
	Now func() time.Time
}

func (t *DefaultTransactor) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}
