// File: handlers/webhook.go
package handlers

import (
	"net/http"
	"time"

	"randevio/config"
	businessRepo "randevio/database/repository/business"
	identityRepo "randevio/database/repository/identity"
	sessionRepo "randevio/database/repository/session"
	"randevio/models"
	"randevio/services/conversation"
	"randevio/services/messenger"
	"randevio/services/subscription"
	"randevio/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// WebhookHandler receives inbound events from the messaging provider. Every
// POST is acknowledged with 200 no matter what happens inside; the provider
// re-delivers on any other status and the dedupe layer absorbs what slips
// through anyway.
type WebhookHandler struct {
	Businesses   businessRepo.BusinessRepository
	Identities   identityRepo.IdentityRepository
	Sessions     sessionRepo.SessionRepository
	Entitlements subscription.EntitlementService
	Engine       conversation.ConversationEngine
	Sender       messenger.Sender
	Dedupe       *redis.Client
}

// Verify answers the provider's GET subscription handshake.
func (h *WebhookHandler) Verify(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token != "" && token == config.AppConfig.WebhookVerifyToken {
		c.String(http.StatusOK, challenge)
		return
	}
	c.Status(http.StatusForbidden)
}

// Receive processes one inbound webhook delivery.
func (h *WebhookHandler) Receive(c *gin.Context) {
	logger := utils.GetLogger()

	var payload models.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		logger.Warn("malformed webhook payload", zap.Error(err))
		c.Status(http.StatusOK)
		return
	}

	value := payload.Value()
	if value == nil {
		c.Status(http.StatusOK)
		return
	}

	integration, err := h.Businesses.GetIntegrationByPhoneNumberID(c.Request.Context(), value.Metadata.PhoneNumberID)
	if err != nil {
		logger.Error("integration lookup failed",
			zap.String("phoneNumberId", value.Metadata.PhoneNumberID), zap.Error(err))
		c.Status(http.StatusOK)
		return
	}
	if integration == nil || integration.Status != models.IntegrationActive {
		c.Status(http.StatusOK)
		return
	}

	allowed, err := h.Entitlements.CanUseMessenger(c.Request.Context(), integration.BusinessID)
	if err != nil {
		logger.Error("entitlement check failed",
			zap.String("businessId", integration.BusinessID), zap.Error(err))
		c.Status(http.StatusOK)
		return
	}
	if !allowed {
		c.Status(http.StatusOK)
		return
	}

	in := models.InboundFromWebhook(&payload)
	if in == nil {
		// Status-only delivery, nothing to process.
		c.Status(http.StatusOK)
		return
	}

	if !h.firstDelivery(c, integration.BusinessID, in.MessageID) {
		c.Status(http.StatusOK)
		return
	}

	waUser, err := h.Identities.GetOrCreateWaUser(c.Request.Context(), integration.BusinessID, in.WaID, in.DisplayName)
	if err != nil {
		logger.Error("wa user resolution failed",
			zap.String("businessId", integration.BusinessID), zap.Error(err))
		c.Status(http.StatusOK)
		return
	}

	reply, err := h.Engine.Handle(c.Request.Context(), integration.BusinessID, waUser, in)
	if err != nil {
		logger.Error("conversation turn failed",
			zap.String("businessId", integration.BusinessID),
			zap.String("waId", in.WaID),
			zap.Error(err))
		c.Status(http.StatusOK)
		return
	}

	if reply != nil {
		if err := h.Sender.SendReply(c.Request.Context(), *integration, in.WaID, reply); err != nil {
			logger.Error("reply send failed",
				zap.String("businessId", integration.BusinessID),
				zap.String("waId", in.WaID),
				zap.Error(err))
		}
	}
	c.Status(http.StatusOK)
}

// firstDelivery reports whether this message id has not been seen before.
// Redis SETNX is the fast path; the unique message-log index is the durable
// backstop when Redis forgets.
func (h *WebhookHandler) firstDelivery(c *gin.Context, businessID, messageID string) bool {
	logger := utils.GetLogger()
	ctx := c.Request.Context()

	window := time.Duration(config.AppConfig.DedupeWindowMinutes) * time.Minute
	key := "dedupe:" + businessID + ":" + messageID
	set, err := h.Dedupe.SetNX(ctx, key, 1, window).Result()
	if err != nil {
		logger.Warn("dedupe cache unavailable, falling back to message log", zap.Error(err))
	} else if !set {
		return false
	}

	first, err := h.Sessions.LogInbound(ctx, businessID, messageID)
	if err != nil {
		logger.Error("message log write failed",
			zap.String("businessId", businessID), zap.Error(err))
		// Processing anyway risks a duplicate reply; skipping risks a lost
		// message. Prefer processing, the provider already retried to get here.
		return true
	}
	return first
}
