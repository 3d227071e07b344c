package models

import "time"

// Business is a tenant on the platform. Every booking surface is scoped to one.
type Business struct {
	ID        string    `bson:"id" json:"id"`
	Slug      string    `bson:"slug" json:"slug"`
	Name      string    `bson:"name" json:"name"`
	Timezone  string    `bson:"timezone,omitempty" json:"timezone,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// BookingSettings controls per-business booking behaviour.
type BookingSettings struct {
	BusinessID            string `bson:"businessId" json:"businessId"`
	AutoApprove           bool   `bson:"autoApprove" json:"autoApprove"`
	QueueRequiresEmployee bool   `bson:"queueRequiresEmployee" json:"queueRequiresEmployee"`
	NotifyEmail           string `bson:"notifyEmail,omitempty" json:"notifyEmail,omitempty"`
	NotifySMS             string `bson:"notifySms,omitempty" json:"notifySms,omitempty"`
}

// Integration statuses.
const (
	IntegrationActive       = "active"
	IntegrationDisconnected = "disconnected"
)

// ChannelIntegration binds a messaging-channel phone number to a business.
// A disconnected integration still resolves, but inbound flows are not processed.
type ChannelIntegration struct {
	ID            string    `bson:"id" json:"id"`
	BusinessID    string    `bson:"businessId" json:"businessId"`
	PhoneNumberID string    `bson:"phoneNumberId" json:"phoneNumberId"`
	AccessToken   string    `bson:"accessToken,omitempty" json:"-"`
	Status        string    `bson:"status" json:"status"`
	ConnectedAt   time.Time `bson:"connectedAt" json:"connectedAt"`
}

// Subscription statuses that entitle a business to the core product.
const (
	SubscriptionActive      = "active"
	SubscriptionTrialActive = "trial_active"
)

// Subscription is the billing collaborator's view of a tenant. Only the
// entitlement fields are read here; lifecycle management lives elsewhere.
type Subscription struct {
	ID               string     `bson:"id" json:"id"`
	BusinessID       string     `bson:"businessId" json:"businessId"`
	PlanCode         string     `bson:"planCode" json:"planCode"`
	Status           string     `bson:"status" json:"status"`
	IncludesMessenger bool      `bson:"includesMessenger" json:"includesMessenger"`
	TrialEndsAt      *time.Time `bson:"trialEndsAt,omitempty" json:"trialEndsAt,omitempty"`
}
