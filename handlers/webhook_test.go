package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"randevio/models"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

type fakeBusinessRepo struct {
	integration *models.ChannelIntegration
}

func (f *fakeBusinessRepo) GetByID(ctx context.Context, id string) (*models.Business, error) {
	return &models.Business{ID: id}, nil
}

func (f *fakeBusinessRepo) GetBySlug(ctx context.Context, slug string) (*models.Business, error) {
	return nil, nil
}

func (f *fakeBusinessRepo) GetIntegrationByPhoneNumberID(ctx context.Context, phoneNumberID string) (*models.ChannelIntegration, error) {
	if f.integration != nil && f.integration.PhoneNumberID == phoneNumberID {
		return f.integration, nil
	}
	return nil, nil
}

func (f *fakeBusinessRepo) GetBookingSettings(ctx context.Context, businessID string) (*models.BookingSettings, error) {
	return &models.BookingSettings{BusinessID: businessID}, nil
}

func (f *fakeBusinessRepo) GetSubscription(ctx context.Context, businessID string) (*models.Subscription, error) {
	return &models.Subscription{BusinessID: businessID, Status: models.SubscriptionActive}, nil
}

type fakeIdentityRepo struct{}

func (f *fakeIdentityRepo) GetOrCreateWaUser(ctx context.Context, businessID, waID, displayName string) (*models.WaUser, error) {
	return &models.WaUser{ID: "wa-user-1", BusinessID: businessID, WaID: waID, DisplayName: displayName}, nil
}

func (f *fakeIdentityRepo) GetWaUserByWaID(ctx context.Context, businessID, waID string) (*models.WaUser, error) {
	return nil, nil
}

func (f *fakeIdentityRepo) GetCustomer(ctx context.Context, businessID, customerID string) (*models.Customer, error) {
	return nil, nil
}

func (f *fakeIdentityRepo) GetOrCreateCustomer(ctx context.Context, businessID, phoneE164, name, surname string) (*models.Customer, error) {
	return nil, nil
}

func (f *fakeIdentityRepo) FindCustomersByPhone(ctx context.Context, businessID, phoneE164 string) ([]models.Customer, error) {
	return nil, nil
}

// fakeSessionRepo only exercises the message log; the session rows belong to
// the engine fake.
type fakeSessionRepo struct {
	logged map[string]bool
}

func (f *fakeSessionRepo) Get(ctx context.Context, businessID, waID string) (*models.Session, error) {
	return nil, nil
}

func (f *fakeSessionRepo) Insert(ctx context.Context, session *models.Session) error { return nil }

func (f *fakeSessionRepo) Save(ctx context.Context, session *models.Session) error { return nil }

func (f *fakeSessionRepo) LogInbound(ctx context.Context, businessID, messageID string) (bool, error) {
	if f.logged == nil {
		f.logged = make(map[string]bool)
	}
	key := businessID + "|" + messageID
	if f.logged[key] {
		return false, nil
	}
	f.logged[key] = true
	return true, nil
}

type fakeEntitlements struct{}

func (f *fakeEntitlements) RequireCore(ctx context.Context, businessID string) (bool, error) {
	return true, nil
}

func (f *fakeEntitlements) CanUseMessenger(ctx context.Context, businessID string) (bool, error) {
	return true, nil
}

type fakeEngine struct {
	handled int
}

func (f *fakeEngine) Handle(ctx context.Context, businessID string, waUser *models.WaUser, in *models.InboundMessage) (*models.Reply, error) {
	f.handled++
	return models.TextReply("ok"), nil
}

type fakeSender struct {
	sent int
}

func (f *fakeSender) SendReply(ctx context.Context, integration models.ChannelIntegration, toWaID string, reply *models.Reply) error {
	f.sent++
	return nil
}

// A client with nothing listening: every SetNX fails, which drives the
// handler through its message-log fallback.
func downRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func newWebhookRig() (*WebhookHandler, *fakeEngine, *fakeSender, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	engine := &fakeEngine{}
	sender := &fakeSender{}
	h := &WebhookHandler{
		Businesses: &fakeBusinessRepo{integration: &models.ChannelIntegration{
			ID: "int-1", BusinessID: "biz-1", PhoneNumberID: "pn-1", Status: models.IntegrationActive,
		}},
		Identities:   &fakeIdentityRepo{},
		Sessions:     &fakeSessionRepo{},
		Entitlements: &fakeEntitlements{},
		Engine:       engine,
		Sender:       sender,
		Dedupe:       downRedis(),
	}
	router := gin.New()
	router.POST("/api/webhook", h.Receive)
	return h, engine, sender, router
}

func textPayload(messageID string) string {
	return `{"entry":[{"changes":[{"value":{
		"metadata":{"phone_number_id":"pn-1"},
		"contacts":[{"wa_id":"905321234567","profile":{"name":"Ali"}}],
		"messages":[{"id":"` + messageID + `","from":"905321234567","text":{"body":"hi"}}]
	}}]}]}`
}

func deliver(t *testing.T, router *gin.Engine, body string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code
}

func TestReceiveDeduplicatesRedelivery(t *testing.T) {
	_, engine, sender, router := newWebhookRig()

	if code := deliver(t, router, textPayload("wamid-1")); code != http.StatusOK {
		t.Fatalf("first delivery status = %d, want 200", code)
	}
	if engine.handled != 1 {
		t.Fatalf("engine handled %d turns after first delivery, want 1", engine.handled)
	}

	// The provider redelivers the identical message id.
	if code := deliver(t, router, textPayload("wamid-1")); code != http.StatusOK {
		t.Fatalf("redelivery status = %d, want 200", code)
	}
	if engine.handled != 1 {
		t.Fatalf("redelivery advanced the conversation: handled = %d, want 1", engine.handled)
	}
	if sender.sent != 1 {
		t.Fatalf("redelivery produced another reply: sent = %d, want 1", sender.sent)
	}

	// A fresh message id goes through.
	if code := deliver(t, router, textPayload("wamid-2")); code != http.StatusOK {
		t.Fatalf("second message status = %d, want 200", code)
	}
	if engine.handled != 2 {
		t.Fatalf("fresh message not handled: handled = %d, want 2", engine.handled)
	}
}

func TestReceiveAcksUnknownIntegration(t *testing.T) {
	_, engine, _, router := newWebhookRig()

	payload := strings.Replace(textPayload("wamid-9"), "pn-1", "pn-unknown", 1)
	if code := deliver(t, router, payload); code != http.StatusOK {
		t.Fatalf("status = %d, want 200 even for unknown numbers", code)
	}
	if engine.handled != 0 {
		t.Fatalf("unknown integration reached the engine: handled = %d", engine.handled)
	}
}
