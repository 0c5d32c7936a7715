package types

import "time"

// Recognized gateway event types. Anything else is acknowledged and ignored.
const (
	EventPaymentIntentSucceeded  = "payment_intent.succeeded"
	EventPaymentIntentFailed     = "payment_intent.payment_failed"
	EventSubscriptionCreated     = "customer.subscription.created"
	EventSubscriptionDeleted     = "customer.subscription.deleted"
	EventInvoicePaymentSucceeded = "invoice.payment_succeeded"
	EventInvoicePaymentFailed    = "invoice.payment_failed"
)

// Event is the normalized envelope produced by the webhook gateway after
// signature verification. Exactly one of the payload pointers is set,
// matching Type.
type Event struct {
	ID   string
	Type string

	Payment      *PaymentEvent
	Invoice      *InvoiceEvent
	Subscription *SubscriptionEvent
}

// DonorInfo is donor contact data lifted out of gateway metadata. Email is
// the only field the ledger requires.
type DonorInfo struct {
	Name  string
	Email string
	Phone string
}

// PaymentEvent is a normalized payment_intent.* payload. All metadata has
// been resolved into typed fields; downstream code never inspects raw maps.
type PaymentEvent struct {
	PaymentIntentID string
	Amount          int64
	Currency        string
	CustomerID      string
	PaymentMethodID string
	ReceiptEmail    string

	// InvoiceID is non-empty when the gateway attributed this payment to a
	// subscription invoice. A stale empty value appears in some event shapes,
	// so it is never trusted alone; see BelongsToSubscription.
	InvoiceID string

	// IsRecurring reflects metadata.is_recurring == "true", set when checkout
	// created the intent as part of a recurring plan.
	IsRecurring bool
	Frequency   Frequency

	Donor             DonorInfo
	DonationTypeID    string
	DonationTypeLabel string
	CampaignID        string
	Message           string

	FailureMessage string
	CreatedAt      time.Time
}

// BelongsToSubscription reports whether this payment is a recurring charge
// that the invoice handler owns. Both signals must agree: invoice-presence
// alone double-counts standalone intents carrying stale invoice fields, and
// the metadata flag alone can outlive the plan that set it.
func (e *PaymentEvent) BelongsToSubscription() bool {
	return e.InvoiceID != "" && e.IsRecurring
}

// InvoiceEvent is a normalized invoice.* payload for recurring charges.
type InvoiceEvent struct {
	InvoiceID       string
	SubscriptionID  string
	PaymentIntentID string
	CustomerID      string
	AmountPaid      int64
	Currency        string
	CustomerName    string
	CustomerEmail   string
	FailureMessage  string
	CreatedAt       time.Time
}

// SubscriptionEvent is a normalized customer.subscription.* payload.
type SubscriptionEvent struct {
	SubscriptionID string
	CustomerID     string
	Amount         int64
	Currency       string
	Frequency      Frequency
	Status         string

	Donor             DonorInfo
	DonationTypeID    string
	DonationTypeLabel string
	CampaignID        string

	StartedAt  time.Time
	CanceledAt time.Time
}
