// Package notifier is the boundary to the transactional-email collaborator.
// The engine hands it plain structured facts after a successful ledger write;
// delivery success or failure never feeds back into ledger state.
package notifier

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hilalgiving/ledger/pkg/types"
)

// DonationFact describes a settled donation for receipting.
type DonationFact struct {
	DonorName     string
	DonorEmail    string
	Amount        int64
	Currency      string
	ReceiptNumber string
	CampaignID    string
	IsRecurring   bool
	Frequency     types.Frequency
	SettledOn     time.Time
}

// SubscriptionFact describes a recurring-donation state change.
type SubscriptionFact struct {
	SubscriptionID  string
	DonorName       string
	DonorEmail      string
	Amount          int64
	Currency        string
	Frequency       types.Frequency
	Status          types.SubscriptionStatus
	NextPaymentDate time.Time
}

type Notifier interface {
	DonationRecorded(ctx context.Context, fact *DonationFact)
	SubscriptionStarted(ctx context.Context, fact *SubscriptionFact)
	SubscriptionCancelled(ctx context.Context, fact *SubscriptionFact)
}

// logNotifier records facts to the structured log. The real mailer consumes
// them downstream; this keeps the ledger path fully decoupled from delivery.
type logNotifier struct {
	log *zap.SugaredLogger
}

func NewLogNotifier(log *zap.SugaredLogger) Notifier {
	return &logNotifier{log: log}
}

func (n *logNotifier) DonationRecorded(ctx context.Context, fact *DonationFact) {
	if fact == nil {
		return
	}
	n.log.Infow("notify_donation_recorded",
		"donor_email", fact.DonorEmail,
		"amount", fact.Amount,
		"currency", fact.Currency,
		"receipt_number", fact.ReceiptNumber,
		"is_recurring", fact.IsRecurring,
	)
}

func (n *logNotifier) SubscriptionStarted(ctx context.Context, fact *SubscriptionFact) {
	if fact == nil {
		return
	}
	n.log.Infow("notify_subscription_started",
		"subscription_id", fact.SubscriptionID,
		"donor_email", fact.DonorEmail,
		"amount", fact.Amount,
		"frequency", fact.Frequency,
		"next_payment_date", fact.NextPaymentDate.Format(time.DateOnly),
	)
}

func (n *logNotifier) SubscriptionCancelled(ctx context.Context, fact *SubscriptionFact) {
	if fact == nil {
		return
	}
	n.log.Infow("notify_subscription_cancelled",
		"subscription_id", fact.SubscriptionID,
		"donor_email", fact.DonorEmail,
	)
}
