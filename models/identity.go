package models

import "time"

// WaUser is a per-business chat identity, keyed by the channel's wa_id
// (the sender's phone number as the provider reports it).
type WaUser struct {
	ID          string    `bson:"id" json:"id"`
	BusinessID  string    `bson:"businessId" json:"businessId"`
	WaID        string    `bson:"waId" json:"waId"`
	DisplayName string    `bson:"displayName,omitempty" json:"displayName,omitempty"`
	FirstSeenAt time.Time `bson:"firstSeenAt" json:"firstSeenAt"`
	LastSeenAt  time.Time `bson:"lastSeenAt" json:"lastSeenAt"`
}

// Customer is a web-channel identity verified by the OTP collaborator.
type Customer struct {
	ID         string    `bson:"id" json:"id"`
	BusinessID string    `bson:"businessId" json:"businessId"`
	Name       string    `bson:"name,omitempty" json:"name,omitempty"`
	Surname    string    `bson:"surname,omitempty" json:"surname,omitempty"`
	PhoneE164  string    `bson:"phoneE164" json:"phoneE164"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// Identity is the resolved real-world person behind a booking request.
// WaUserID and CustomerIDs list every channel-bound record correlated to the
// same normalized phone number.
type Identity struct {
	PhoneE164   string
	WaUserID    string
	CustomerIDs []string
}
