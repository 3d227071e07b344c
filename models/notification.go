package models

// Booking outcome kinds.
const (
	OutcomeAppointment = "appointment"
	OutcomeQueue       = "queue"
)

// BookingOutcome is the event published to downstream notification and
// dashboard consumers after the transactor commits.
type BookingOutcome struct {
	Kind          string       `json:"kind"`
	BusinessID    string       `json:"businessId"`
	Appointment   *Appointment `json:"appointment,omitempty"`
	QueueEntry    *QueueEntry  `json:"queueEntry,omitempty"`
	AutoApproved  bool         `json:"autoApproved,omitempty"`
	SourceChannel string       `json:"sourceChannel"`
}

// ReminderPayload is the asynq task body for appointment reminders.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	BusinessID    string `json:"businessId"`
	StartsAt      string `json:"startsAt"`
	FireDate      string `json:"fireDate"`
}
