package webhook

import (
	"encoding/json"
	"fmt"
	"time"

	stripe "github.com/stripe/stripe-go/v81"

	"github.com/hilalgiving/ledger/pkg/types"
)

// Gateway metadata keys set by the donation checkout when it creates payment
// intents and subscriptions.
const (
	metaDonorName         = "donor_name"
	metaDonorEmail        = "donor_email"
	metaDonorPhone        = "donor_phone"
	metaDonationTypeID    = "donation_type_id"
	metaDonationTypeLabel = "donation_type_label"
	metaCampaignID        = "campaign_id"
	metaMessage           = "message"
	metaIsRecurring       = "is_recurring"
	metaFrequency         = "frequency"
)

// normalizeEvent converts a verified gateway event into the typed internal
// envelope. All metadata resolution happens here, once; downstream handlers
// never see raw maps or union-typed references.
func normalizeEvent(ev *stripe.Event) (*types.Event, error) {
	out := &types.Event{
		ID:   ev.ID,
		Type: string(ev.Type),
	}

	switch out.Type {
	case types.EventPaymentIntentSucceeded, types.EventPaymentIntentFailed:
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(ev.Data.Raw, &pi); err != nil {
			return nil, fmt.Errorf("failed to decode payment intent payload: %w", err)
		}
		out.Payment = normalizePaymentIntent(&pi)
	case types.EventInvoicePaymentSucceeded, types.EventInvoicePaymentFailed:
		var inv stripe.Invoice
		if err := json.Unmarshal(ev.Data.Raw, &inv); err != nil {
			return nil, fmt.Errorf("failed to decode invoice payload: %w", err)
		}
		out.Invoice = normalizeInvoice(&inv)
	case types.EventSubscriptionCreated, types.EventSubscriptionDeleted:
		var sub stripe.Subscription
		if err := json.Unmarshal(ev.Data.Raw, &sub); err != nil {
			return nil, fmt.Errorf("failed to decode subscription payload: %w", err)
		}
		out.Subscription = normalizeSubscription(&sub)
	default:
		// Unrecognized types keep an empty payload; the router acknowledges
		// them without dispatch.
	}

	return out, nil
}

func normalizePaymentIntent(pi *stripe.PaymentIntent) *types.PaymentEvent {
	md := pi.Metadata

	e := &types.PaymentEvent{
		PaymentIntentID: pi.ID,
		Amount:          pi.Amount,
		Currency:        string(pi.Currency),
		ReceiptEmail:    pi.ReceiptEmail,
		IsRecurring:     md[metaIsRecurring] == "true",
		Donor: types.DonorInfo{
			Name:  md[metaDonorName],
			Email: md[metaDonorEmail],
			Phone: md[metaDonorPhone],
		},
		DonationTypeID:    md[metaDonationTypeID],
		DonationTypeLabel: md[metaDonationTypeLabel],
		CampaignID:        md[metaCampaignID],
		Message:           md[metaMessage],
		CreatedAt:         time.Unix(pi.Created, 0),
	}

	if pi.Customer != nil {
		e.CustomerID = pi.Customer.ID
	}
	if pi.PaymentMethod != nil {
		e.PaymentMethodID = pi.PaymentMethod.ID
	}
	if pi.Invoice != nil {
		e.InvoiceID = pi.Invoice.ID
	}
	if raw := md[metaFrequency]; raw != "" {
		e.Frequency = types.ParseFrequency(raw)
	}
	if pi.LastPaymentError != nil {
		e.FailureMessage = pi.LastPaymentError.Msg
	}

	return e
}

func normalizeInvoice(inv *stripe.Invoice) *types.InvoiceEvent {
	e := &types.InvoiceEvent{
		InvoiceID:     inv.ID,
		AmountPaid:    inv.AmountPaid,
		Currency:      string(inv.Currency),
		CustomerName:  inv.CustomerName,
		CustomerEmail: inv.CustomerEmail,
		CreatedAt:     time.Unix(inv.Created, 0),
	}

	if inv.Subscription != nil {
		e.SubscriptionID = inv.Subscription.ID
	}
	if inv.PaymentIntent != nil {
		e.PaymentIntentID = inv.PaymentIntent.ID
	}
	if inv.Customer != nil {
		e.CustomerID = inv.Customer.ID
	}
	if inv.LastFinalizationError != nil {
		e.FailureMessage = inv.LastFinalizationError.Msg
	}

	return e
}

func normalizeSubscription(sub *stripe.Subscription) *types.SubscriptionEvent {
	md := sub.Metadata

	e := &types.SubscriptionEvent{
		SubscriptionID: sub.ID,
		Frequency:      types.ParseFrequency(md[metaFrequency]),
		Status:         string(sub.Status),
		Donor: types.DonorInfo{
			Name:  md[metaDonorName],
			Email: md[metaDonorEmail],
			Phone: md[metaDonorPhone],
		},
		DonationTypeID:    md[metaDonationTypeID],
		DonationTypeLabel: md[metaDonationTypeLabel],
		CampaignID:        md[metaCampaignID],
	}

	if sub.Customer != nil {
		e.CustomerID = sub.Customer.ID
	}
	if sub.Items != nil && len(sub.Items.Data) > 0 {
		if price := sub.Items.Data[0].Price; price != nil {
			e.Amount = price.UnitAmount
			e.Currency = string(price.Currency)
		}
	}
	if sub.StartDate > 0 {
		e.StartedAt = time.Unix(sub.StartDate, 0)
	} else if sub.Created > 0 {
		e.StartedAt = time.Unix(sub.Created, 0)
	}
	if sub.CanceledAt > 0 {
		e.CanceledAt = time.Unix(sub.CanceledAt, 0)
	}

	return e
}
