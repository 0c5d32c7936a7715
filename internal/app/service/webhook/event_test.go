package webhook

import (
	"encoding/json"
	"testing"
	"time"

	stripe "github.com/stripe/stripe-go/v81"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hilalgiving/ledger/pkg/types"
)

func gatewayEvent(t *testing.T, eventType, objectJSON string) *stripe.Event {
	t.Helper()
	return &stripe.Event{
		ID:   "evt_test",
		Type: stripe.EventType(eventType),
		Data: &stripe.EventData{Raw: json.RawMessage(objectJSON)},
	}
}

func TestNormalizeEvent_PaymentIntent(t *testing.T) {
	ev := gatewayEvent(t, types.EventPaymentIntentSucceeded, `{
		"id": "pi_1",
		"amount": 2500,
		"currency": "aud",
		"customer": "cus_1",
		"payment_method": "pm_1",
		"receipt_email": "receipt@example.com",
		"created": 1735689600,
		"metadata": {
			"donor_name": "Omar",
			"donor_email": "omar@example.com",
			"donor_phone": "+61400000000",
			"donation_type_id": "general",
			"campaign_id": "c1",
			"message": "fi sabilillah",
			"is_recurring": "false"
		}
	}`)

	got, err := normalizeEvent(ev)
	require.NoError(t, err)
	require.NotNil(t, got.Payment)
	assert.Nil(t, got.Invoice)
	assert.Nil(t, got.Subscription)

	p := got.Payment
	assert.Equal(t, "pi_1", p.PaymentIntentID)
	assert.Equal(t, int64(2500), p.Amount)
	assert.Equal(t, "aud", p.Currency)
	assert.Equal(t, "cus_1", p.CustomerID)
	assert.Equal(t, "pm_1", p.PaymentMethodID)
	assert.Equal(t, "receipt@example.com", p.ReceiptEmail)
	assert.Equal(t, "Omar", p.Donor.Name)
	assert.Equal(t, "omar@example.com", p.Donor.Email)
	assert.Equal(t, "c1", p.CampaignID)
	assert.Equal(t, "fi sabilillah", p.Message)
	assert.False(t, p.IsRecurring)
	assert.False(t, p.BelongsToSubscription())
	assert.Equal(t, time.Unix(1735689600, 0).Unix(), p.CreatedAt.Unix())
}

func TestNormalizeEvent_IsRecurringExactMatchOnly(t *testing.T) {
	for raw, want := range map[string]bool{
		"true":  true,
		"TRUE":  false,
		"True":  false,
		"yes":   false,
		"1":     false,
		"false": false,
		"":      false,
	} {
		ev := gatewayEvent(t, types.EventPaymentIntentSucceeded,
			`{"id":"pi_1","metadata":{"is_recurring":"`+raw+`"}}`)
		got, err := normalizeEvent(ev)
		require.NoError(t, err)
		assert.Equal(t, want, got.Payment.IsRecurring, "raw value %q", raw)
	}
}

func TestNormalizeEvent_Invoice(t *testing.T) {
	ev := gatewayEvent(t, types.EventInvoicePaymentSucceeded, `{
		"id": "in_1",
		"subscription": "sub_1",
		"payment_intent": "pi_inv_1",
		"customer": "cus_1",
		"amount_paid": 5000,
		"currency": "aud",
		"customer_name": "Fatima",
		"customer_email": "fatima@example.com",
		"created": 1740794400
	}`)

	got, err := normalizeEvent(ev)
	require.NoError(t, err)
	require.NotNil(t, got.Invoice)

	inv := got.Invoice
	assert.Equal(t, "in_1", inv.InvoiceID)
	assert.Equal(t, "sub_1", inv.SubscriptionID)
	assert.Equal(t, "pi_inv_1", inv.PaymentIntentID)
	assert.Equal(t, "cus_1", inv.CustomerID)
	assert.Equal(t, int64(5000), inv.AmountPaid)
	assert.Equal(t, "fatima@example.com", inv.CustomerEmail)
}

func TestNormalizeEvent_Subscription(t *testing.T) {
	ev := gatewayEvent(t, types.EventSubscriptionCreated, `{
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
	}`)

	got, err := normalizeEvent(ev)
	require.NoError(t, err)
	require.NotNil(t, got.Subscription)

	s := got.Subscription
	assert.Equal(t, "sub_1", s.SubscriptionID)
	assert.Equal(t, "cus_1", s.CustomerID)
	assert.Equal(t, int64(5000), s.Amount)
	assert.Equal(t, "aud", s.Currency)
	assert.Equal(t, types.FrequencyMonthly, s.Frequency)
	assert.Equal(t, "active", s.Status)
	assert.Equal(t, "fatima@example.com", s.Donor.Email)
	assert.Equal(t, "c1", s.CampaignID)
	assert.Equal(t, int64(1738368000), s.StartedAt.Unix())
}

func TestNormalizeEvent_UnknownFrequencyDefaultsMonthly(t *testing.T) {
	ev := gatewayEvent(t, types.EventSubscriptionCreated,
		`{"id":"sub_1","metadata":{"frequency":"biweekly"}}`)
	got, err := normalizeEvent(ev)
	require.NoError(t, err)
	assert.Equal(t, types.FrequencyMonthly, got.Subscription.Frequency)
}

func TestNormalizeEvent_UnrecognizedTypeEmptyPayload(t *testing.T) {
	ev := gatewayEvent(t, "charge.refunded", `{"id":"ch_1"}`)
	got, err := normalizeEvent(ev)
	require.NoError(t, err)
	assert.Equal(t, "charge.refunded", got.Type)
	assert.Nil(t, got.Payment)
	assert.Nil(t, got.Invoice)
	assert.Nil(t, got.Subscription)
}

func TestNormalizeEvent_MalformedPayload(t *testing.T) {
	ev := gatewayEvent(t, types.EventPaymentIntentSucceeded, `{"amount": "not a number"}`)
	_, err := normalizeEvent(ev)
	require.Error(t, err)
}
