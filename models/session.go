package models

import "time"

// Conversation states. WELCOME is the initial state; DONE and CANCELLED end a
// turn but are immediately re-enterable by the next inbound message.
const (
	StateWelcome           = "WELCOME"
	StateEmployeeSelect    = "EMPLOYEE_SELECT"
	StateDateSelect        = "DATE_SELECT"
	StateTimeSelect        = "TIME_SELECT"
	StateConfirm           = "CONFIRM"
	StateQueueConfirm      = "QUEUE_CONFIRM"
	StateMyAppointments    = "MY_APPOINTMENTS"
	StateAppointmentAction = "APPOINTMENT_ACTION"
	StateConfirmCancel     = "CONFIRM_CANCEL_APPOINTMENT"
	StateDone              = "DONE"
	StateCancelled         = "CANCELLED"
)

// Booking intents carried in the session context.
const (
	IntentAppointment = "appointment"
	IntentQueue       = "queue"
)

// SessionContext is the free-form conversation context. Empty fields mean the
// step has not been reached yet.
type SessionContext struct {
	Intent             string `bson:"intent,omitempty" json:"intent,omitempty"`
	SelectedEmployeeID string `bson:"selectedEmployeeId,omitempty" json:"selectedEmployeeId,omitempty"`
	SelectedDate       string `bson:"selectedDate,omitempty" json:"selectedDate,omitempty"`
	SelectedSlot       string `bson:"selectedSlot,omitempty" json:"selectedSlot,omitempty"`
	CancelTargetID     string `bson:"cancelTargetId,omitempty" json:"cancelTargetId,omitempty"`
	// TimedOut marks that the previous session expired; the next WELCOME
	// prompt carries a one-time notice and the flag is cleared.
	TimedOut bool `bson:"timedOut,omitempty" json:"timedOut,omitempty"`
}

// Session is the durable conversation state for one (business, wa_id) pair.
// The row is created on first contact and reused forever; expiry only resets
// state and context, it never deletes.
type Session struct {
	ID            string         `bson:"id" json:"id"`
	BusinessID    string         `bson:"businessId" json:"businessId"`
	WaID          string         `bson:"waId" json:"waId"`
	State         string         `bson:"state" json:"state"`
	Context       SessionContext `bson:"context" json:"context"`
	LastMessageAt time.Time      `bson:"lastMessageAt" json:"lastMessageAt"`
	ExpiresAt     time.Time      `bson:"expiresAt" json:"expiresAt"`
}

// Expired reports whether the session's idle window has passed as of now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && s.ExpiresAt.Before(now)
}
