// File: services/conversation/interface.go
package conversation

import (
	"context"
	"time"

	appointmentRepo "randevio/database/repository/appointment"
	businessRepo "randevio/database/repository/business"
	employeeRepo "randevio/database/repository/employee"
	sessionRepo "randevio/database/repository/session"
	"randevio/models"
	"randevio/services/availability"
	"randevio/services/booking"
	"randevio/services/identity"
)

// ConversationEngine drives one booking conversation turn: it consumes an
// inbound event, advances the durable session state and returns the reply to
// send. It never writes bookings itself; commits go through the transactor.
type ConversationEngine interface {
	Handle(ctx context.Context, businessID string, waUser *models.WaUser, in *models.InboundMessage) (*models.Reply, error)
}

// DefaultConversationEngine implements ConversationEngine.
type DefaultConversationEngine struct {
	Sessions      sessionRepo.SessionRepository
	Employees     employeeRepo.EmployeeRepository
	Appointments  appointmentRepo.AppointmentRepository
	Businesses    businessRepo.BusinessRepository
	Availability  *availability.Engine
	Transactor    booking.Transactor
	Resolver      identity.Resolver
	SessionTTL    time.Duration
	MaxDateOffset int
	// Now is swappable in tests; defaults to time.Now.
	Now func() time.Time
}

func (e *DefaultConversationEngine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}
