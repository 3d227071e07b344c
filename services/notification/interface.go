// File: services/notification/interface.go
package notification

import (
	"context"

	"randevio/models"
)

// NotificationService fans booking outcomes out to downstream consumers
// (business dashboard, SMS/email collaborators) and schedules reminders.
type NotificationService interface {
	PublishBookingOutcome(ctx context.Context, outcome models.BookingOutcome) error
	ScheduleAppointmentReminder(ctx context.Context, appt *models.Appointment) error
	SendAppointmentReminder(ctx context.Context, payload models.ReminderPayload) error
}
