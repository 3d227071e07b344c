package models

import "time"

// Queue entry statuses.
const (
	QueueWaiting   = "waiting"
	QueueCalled    = "called"
	QueueServed    = "served"
	QueueCancelled = "cancelled"
)

// QueueEntry is a walk-in ticket for a calendar day. Position numbering is
// append-only per (business, day); cancelled entries keep their number.
type QueueEntry struct {
	ID            string    `bson:"id" json:"id"`
	BusinessID    string    `bson:"businessId" json:"businessId"`
	EmployeeID    string    `bson:"employeeId,omitempty" json:"employeeId,omitempty"`
	WaUserID      string    `bson:"waUserId,omitempty" json:"waUserId,omitempty"`
	CustomerID    string    `bson:"customerId,omitempty" json:"customerId,omitempty"`
	QueueDate     string    `bson:"queueDate" json:"queueDate"`
	Position      int       `bson:"position" json:"position"`
	Status        string    `bson:"status" json:"status"`
	SourceChannel string    `bson:"sourceChannel" json:"sourceChannel"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}
