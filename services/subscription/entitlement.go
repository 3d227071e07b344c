// File: services/subscription/entitlement.go
package subscription

import (
	"context"
	"encoding/json"
	"time"

	"randevio/database/repository/business"
	"randevio/models"
	"randevio/utils"

	"go.uber.org/zap"
)

const entitlementCacheTTL = 5 * time.Minute

// EntitlementService answers whether a business may use the product surfaces.
// Billing lifecycle (plans, payments, renewals) is a separate system; only the
// stored subscription snapshot is consulted here.
type EntitlementService interface {
	// RequireCore reports whether the business holds an active or trial
	// subscription covering the core booking product.
	RequireCore(ctx context.Context, businessID string) (bool, error)
	// CanUseMessenger reports whether the subscription also covers the
	// conversational messaging channel.
	CanUseMessenger(ctx context.Context, businessID string) (bool, error)
}

type DefaultEntitlementService struct {
	Businesses businessRepo.BusinessRepository
	Now        func() time.Time
}

func NewEntitlementService(businesses businessRepo.BusinessRepository) *DefaultEntitlementService {
	return &DefaultEntitlementService{Businesses: businesses, Now: time.Now}
}

func (s *DefaultEntitlementService) RequireCore(ctx context.Context, businessID string) (bool, error) {
	sub, err := s.subscription(ctx, businessID)
	if err != nil {
		return false, err
	}
	return s.coreActive(sub), nil
}

func (s *DefaultEntitlementService) CanUseMessenger(ctx context.Context, businessID string) (bool, error) {
	sub, err := s.subscription(ctx, businessID)
	if err != nil {
		return false, err
	}
	return s.coreActive(sub) && sub.IncludesMessenger, nil
}

func (s *DefaultEntitlementService) coreActive(sub *models.Subscription) bool {
	if sub == nil {
		return false
	}
	switch sub.Status {
	case models.SubscriptionActive:
		return true
	case models.SubscriptionTrialActive:
		if sub.TrialEndsAt == nil {
			return true
		}
		return sub.TrialEndsAt.After(s.Now())
	}
	return false
}

// subscription reads through a short-lived cache; webhook traffic hits this on
// every inbound message.
func (s *DefaultEntitlementService) subscription(ctx context.Context, businessID string) (*models.Subscription, error) {
	cacheKey := "entitlement:" + businessID
	cache := utils.GetCacheClient()

	if raw, err := cache.Get(ctx, cacheKey).Result(); err == nil {
		var cached models.Subscription
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return &cached, nil
		}
	}

	sub, err := s.Businesses.GetSubscription(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, nil
	}

	if raw, err := json.Marshal(sub); err == nil {
		if err := cache.Set(ctx, cacheKey, raw, entitlementCacheTTL).Err(); err != nil {
			utils.GetLogger().Warn("entitlement cache write failed",
				zap.String("businessId", businessID), zap.Error(err))
		}
	}
	return sub, nil
}
