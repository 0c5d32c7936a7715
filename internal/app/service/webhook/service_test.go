package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	stripe "github.com/stripe/stripe-go/v81"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hilalgiving/ledger/internal/app/service/campaign"
	"github.com/hilalgiving/ledger/internal/app/service/donation"
	"github.com/hilalgiving/ledger/internal/app/service/eventlog"
	"github.com/hilalgiving/ledger/internal/app/service/notifier"
	"github.com/hilalgiving/ledger/internal/app/service/receipt"
	"github.com/hilalgiving/ledger/internal/app/service/subscription"
	"github.com/hilalgiving/ledger/internal/models"
	"github.com/hilalgiving/ledger/internal/platform/stripegw"
	"github.com/hilalgiving/ledger/internal/repo/repotest"
	"github.com/hilalgiving/ledger/pkg/config"
	"github.com/hilalgiving/ledger/pkg/metrics"
	"github.com/hilalgiving/ledger/pkg/types"
)

const testWebhookSecret = "whsec_test_secret"

type nopNotifier struct{}

func (nopNotifier) DonationRecorded(context.Context, *notifier.DonationFact)          {}
func (nopNotifier) SubscriptionStarted(context.Context, *notifier.SubscriptionFact)   {}
func (nopNotifier) SubscriptionCancelled(context.Context, *notifier.SubscriptionFact) {}

type stubResolver struct{}

func (stubResolver) Resolve(context.Context, string) (*stripegw.PaymentMethodDetails, error) {
	return &stripegw.PaymentMethodDetails{Type: "card", Brand: "visa", Last4: "4242"}, nil
}

// signedEvent builds a gateway event body and a valid signature header for it.
func signedEvent(t *testing.T, eventID, eventType, objectJSON string) (payload []byte, header string) {
	t.Helper()
	payload = []byte(fmt.Sprintf(`{"id":%q,"api_version":%q,"type":%q,"data":{"object":%s}}`,
		eventID, stripe.APIVersion, eventType, objectJSON))

	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(testWebhookSecret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	header = fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
	return payload, header
}

type engineFixture struct {
	svc       *Service
	donations *repotest.MemDonations
	subsRepo  *repotest.MemSubscriptions
	campaigns *repotest.MemCampaigns
	eventLogs *repotest.MemEventLogs
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()
	log := zap.NewNop().Sugar()
	cfg := &config.Config{
		Stripe:  config.StripeConfig{WebhookSecret: testWebhookSecret},
		Receipt: config.ReceiptConfig{Prefix: "DN"},
	}

	donations := repotest.NewMemDonations()
	subsRepo := repotest.NewMemSubscriptions()
	campaigns := repotest.NewMemCampaigns(&models.Campaign{ID: "c1", Name: "Winter Appeal"})
	eventLogs := repotest.NewMemEventLogs()

	subsSvc := subscription.NewService(subsRepo, nopNotifier{}, cfg, log)
	campSvc := campaign.NewService(campaigns, log)
	rcptSvc := receipt.NewService(repotest.NewMemReceipts(), cfg, log)
	donSvc := donation.NewService(donations, subsSvc, campSvc, rcptSvc, stubResolver{}, nopNotifier{}, cfg, log)

	router := NewRouter(log)
	RegisterEventHandlers(router, donSvc, subsSvc)

	svc := NewService(cfg, router, eventlog.New(eventLogs, log), metrics.New(log), log)
	return &engineFixture{svc: svc, donations: donations, subsRepo: subsRepo, campaigns: campaigns, eventLogs: eventLogs}
}

func TestVerifyAndParse_RejectsBadSignature(t *testing.T) {
	f := newEngineFixture(t)

	payload, _ := signedEvent(t, "evt_1", types.EventPaymentIntentSucceeded, `{"id":"pi_1","amount":100}`)
	_, err := f.svc.VerifyAndParse(payload, "t=1,v1=deadbeef")
	require.Error(t, err)
	require.Empty(t, f.donations.All())
}

func TestVerifyAndParse_RejectsTamperedBody(t *testing.T) {
	f := newEngineFixture(t)

	payload, header := signedEvent(t, "evt_1", types.EventPaymentIntentSucceeded, `{"id":"pi_1","amount":100}`)
	tampered := append([]byte{}, payload...)
	tampered[len(tampered)-2] = 'x'

	_, err := f.svc.VerifyAndParse(tampered, header)
	require.Error(t, err)
}

func TestVerifyAndParse_AcceptsValidSignature(t *testing.T) {
	f := newEngineFixture(t)

	payload, header := signedEvent(t, "evt_1", types.EventPaymentIntentSucceeded,
		`{"id":"pi_1","amount":2500,"currency":"aud","metadata":{"donor_email":"omar@example.com"}}`)
	evt, err := f.svc.VerifyAndParse(payload, header)
	require.NoError(t, err)
	assert.Equal(t, "evt_1", evt.ID)
	assert.Equal(t, types.EventPaymentIntentSucceeded, evt.Type)
	require.NotNil(t, evt.Payment)
	assert.Equal(t, int64(2500), evt.Payment.Amount)
}

func TestProcess_UnknownTypeAcknowledged(t *testing.T) {
	f := newEngineFixture(t)

	payload, header := signedEvent(t, "evt_1", "charge.refunded", `{"id":"ch_1"}`)
	evt, err := f.svc.VerifyAndParse(payload, header)
	require.NoError(t, err)

	require.NoError(t, f.svc.Process(context.Background(), evt, payload))
	require.Empty(t, f.donations.All())
}

func TestProcess_AuditRowsStorePayloadOnce(t *testing.T) {
	f := newEngineFixture(t)

	payload, header := signedEvent(t, "evt_1", types.EventPaymentIntentSucceeded, `{
		"id": "pi_1",
		"amount": 2500,
		"currency": "aud",
		"metadata": {"donor_email": "omar@example.com", "campaign_id": "c1"}
	}`)
	evt, err := f.svc.VerifyAndParse(payload, header)
	require.NoError(t, err)
	require.NoError(t, f.svc.Process(context.Background(), evt, payload))

	var received, result *models.WebhookEventLog
	require.Eventually(t, func() bool {
		received, result = nil, nil
		for _, e := range f.eventLogs.All() {
			switch e.Status {
			case models.WebhookEventLogStatusReceived:
				received = e
			case models.WebhookEventLogStatusHandled:
				result = e
			}
		}
		return received != nil && result != nil
	}, time.Second, 10*time.Millisecond)

	// payload lives on the received row only
	assert.Equal(t, payload, []byte(received.Data))
	assert.Nil(t, received.Result)
	assert.Empty(t, result.Data)
	require.NotNil(t, result.Result)
	assert.JSONEq(t, `{"handled":true}`, string(*result.Result))
}

func TestProcess_HandlerErrorPropagates(t *testing.T) {
	f := newEngineFixture(t)

	// invoice for a subscription whose creation event has not arrived yet
	payload, header := signedEvent(t, "evt_1", types.EventInvoicePaymentSucceeded,
		`{"id":"in_1","subscription":"sub_unknown","amount_paid":5000,"currency":"aud"}`)
	evt, err := f.svc.VerifyAndParse(payload, header)
	require.NoError(t, err)

	require.Error(t, f.svc.Process(context.Background(), evt, payload))
	require.Empty(t, f.donations.All())

	require.Eventually(t, func() bool {
		for _, e := range f.eventLogs.All() {
			if e.Status == models.WebhookEventLogStatusHandleFailed {
				return true
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)
}

func TestProcess_SubscriptionLifecycle(t *testing.T) {
	f := newEngineFixture(t)
	deliver := func(id, eventType, objectJSON string) error {
		payload, header := signedEvent(t, id, eventType, objectJSON)
		evt, err := f.svc.VerifyAndParse(payload, header)
		require.NoError(t, err)
		return f.svc.Process(context.Background(), evt, payload)
	}

	// monthly 5000 aud subscription starting 2025-02-01
	require.NoError(t, deliver("evt_1", types.EventSubscriptionCreated, `{
		"id": "sub_1",
		"customer": "cus_1",
		"status": "active",
		"start_date": 1738368000,
		"items": {"data": [{"price": {"unit_amount": 5000, "currency": "aud"}}]},
		"metadata": {
			"donor_name": "Fatima",
			"donor_email": "fatima@example.com",
			"frequency": "monthly",
			"campaign_id": "c1",
			"donation_type_id": "general"
		}
	}`))

	sub, err := f.subsRepo.FindByID(context.Background(), "sub_1")
	require.NoError(t, err)
	assert.Equal(t, types.SubscriptionStatusActive, sub.Status)
	assert.Equal(t, "2025-03-01", time.Time(sub.NextPaymentDate).Format(time.DateOnly))

	// first recurring charge on 2025-03-01
	require.NoError(t, deliver("evt_2", types.EventInvoicePaymentSucceeded, `{
		"id": "in_1",
		"subscription": "sub_1",
		"payment_intent": "pi_inv_1",
		"customer": "cus_1",
		"amount_paid": 5000,
		"currency": "aud",
		"created": 1740794400
	}`))

	rows := f.donations.All()
	require.Len(t, rows, 1)
	d := rows[0]
	assert.True(t, d.IsRecurring)
	assert.Equal(t, "DN-000001", d.ReceiptNumber)
	assert.Equal(t, int64(5000), d.Amount)
	assert.Equal(t, "fatima@example.com", d.DonorEmail)

	sub, err = f.subsRepo.FindByID(context.Background(), "sub_1")
	require.NoError(t, err)
	assert.Equal(t, "2025-04-01", time.Time(sub.NextPaymentDate).Format(time.DateOnly))
	require.NotNil(t, sub.LastDonationID)
	assert.Equal(t, d.ID, *sub.LastDonationID)

	camp, err := f.campaigns.FindByID(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), camp.CurrentAmount)

	// redelivered invoice must not double anything
	require.NoError(t, deliver("evt_2", types.EventInvoicePaymentSucceeded, `{
		"id": "in_1",
		"subscription": "sub_1",
		"payment_intent": "pi_inv_1",
		"customer": "cus_1",
		"amount_paid": 5000,
		"currency": "aud",
		"created": 1740794400
	}`))
	require.Len(t, f.donations.All(), 1)
	camp, err = f.campaigns.FindByID(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), camp.CurrentAmount)

	// cancellation
	require.NoError(t, deliver("evt_3", types.EventSubscriptionDeleted, `{
		"id": "sub_1",
		"status": "canceled",
		"canceled_at": 1743465600
	}`))
	sub, err = f.subsRepo.FindByID(context.Background(), "sub_1")
	require.NoError(t, err)
	assert.Equal(t, types.SubscriptionStatusCancelled, sub.Status)

	require.Eventually(t, func() bool {
		handled := 0
		for _, e := range f.eventLogs.All() {
			if e.Status == models.WebhookEventLogStatusHandled {
				handled++
			}
		}
		return handled >= 4
	}, time.Second, 10*time.Millisecond)
}

func TestProcess_OneTimePayment(t *testing.T) {
	f := newEngineFixture(t)

	payload, header := signedEvent(t, "evt_1", types.EventPaymentIntentSucceeded, `{
		"id": "pi_1",
		"amount": 2500,
		"currency": "aud",
		"customer": "cus_1",
		"payment_method": "pm_1",
		"created": 1735689600,
		"metadata": {
			"donor_name": "Omar",
			"donor_email": "omar@example.com",
			"campaign_id": "c1",
			"is_recurring": "false"
		}
	}`)
	evt, err := f.svc.VerifyAndParse(payload, header)
	require.NoError(t, err)
	require.NoError(t, f.svc.Process(context.Background(), evt, payload))

	rows := f.donations.All()
	require.Len(t, rows, 1)
	assert.False(t, rows[0].IsRecurring)
	require.NotNil(t, rows[0].PaymentMethodBrand)
	assert.Equal(t, "visa", *rows[0].PaymentMethodBrand)
}
