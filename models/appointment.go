package models

import "time"

// Appointment statuses.
const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
	AppointmentNoShow    = "no_show"
)

// Approval statuses.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// Source channels.
const (
	ChannelWeb       = "web"
	ChannelMessenger = "whatsapp"
)

// Appointment is a confirmed (or pending-approval) booking for a fixed slot.
// Exactly one of WaUserID / CustomerID is set, depending on the channel the
// booking came in on; cross-channel identity is correlated by phone number.
type Appointment struct {
	ID             string     `bson:"id" json:"id"`
	BusinessID     string     `bson:"businessId" json:"businessId"`
	EmployeeID     string     `bson:"employeeId" json:"employeeId"`
	WaUserID       string     `bson:"waUserId,omitempty" json:"waUserId,omitempty"`
	CustomerID     string     `bson:"customerId,omitempty" json:"customerId,omitempty"`
	StartsAt       time.Time  `bson:"startsAt" json:"startsAt"`
	Status         string     `bson:"status" json:"status"`
	ApprovalStatus string     `bson:"approvalStatus" json:"approvalStatus"`
	SourceChannel  string     `bson:"sourceChannel" json:"sourceChannel"`
	RequestedAt    time.Time  `bson:"requestedAt" json:"requestedAt"`
	ApprovedAt     *time.Time `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
}

// DateString returns the appointment's calendar day as "YYYY-MM-DD".
func (a Appointment) DateString() string {
	return a.StartsAt.Format("2006-01-02")
}

// SlotString returns the appointment's start as "HH:MM".
func (a Appointment) SlotString() string {
	return a.StartsAt.Format("15:04")
}
