package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/hilalgiving/ledger/internal/app/service/notifier"
	"github.com/hilalgiving/ledger/internal/models"
	"github.com/hilalgiving/ledger/internal/repo"
	"github.com/hilalgiving/ledger/pkg/config"
	"github.com/hilalgiving/ledger/pkg/logctx"
	"github.com/hilalgiving/ledger/pkg/types"
)

// Service drives RecurringDonation state. The only transitions are
// (none) -> active on creation and active -> cancelled on deletion; a
// cancelled subscription never reactivates through this engine.
type Service struct {
	subs     repo.SubscriptionRepository
	notifier notifier.Notifier
	cfg      *config.Config
	log      *zap.SugaredLogger
}

func NewService(subs repo.SubscriptionRepository, n notifier.Notifier, cfg *config.Config, log *zap.SugaredLogger) *Service {
	return &Service{subs: subs, notifier: n, cfg: cfg, log: log}
}

func (s *Service) Get(ctx context.Context, subscriptionID string) (*models.RecurringDonation, error) {
	return s.subs.FindByID(ctx, subscriptionID)
}

// HandleSubscriptionCreated registers a new recurring donation. The document
// id is the gateway subscription id, so a redelivered creation event
// overwrites rather than duplicates.
func (s *Service) HandleSubscriptionCreated(ctx context.Context, e *types.SubscriptionEvent) error {
	if e.SubscriptionID == "" {
		return fmt.Errorf("subscription event missing subscription id")
	}

	existing, err := s.subs.FindByID(ctx, e.SubscriptionID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return fmt.Errorf("failed to load subscription %s: %w", e.SubscriptionID, err)
	}
	if existing.Cancelled() {
		// Monotone invariant: a creation event arriving after deletion (out
		// of order or redelivered) must not resurrect the subscription.
		logctx.FromCtx(ctx, s.log).Warnw("subscription_create_after_cancel_ignored", "subscription_id", e.SubscriptionID)
		return nil
	}

	startedAt := e.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now()
	}
	nextDate := NextPaymentDate(startedAt, e.Frequency, s.cfg.Location())

	label := e.DonationTypeLabel
	if label == "" {
		if dt := s.cfg.GetDonationTypeByID(e.DonationTypeID); dt != nil {
			label = dt.Label
		}
	}

	sub := &models.RecurringDonation{
		ID:                e.SubscriptionID,
		GatewayCustomerID: e.CustomerID,
		DonorEmail:        e.Donor.Email,
		Amount:            e.Amount,
		Currency:          e.Currency,
		Frequency:         e.Frequency,
		Status:            types.SubscriptionStatusActive,
		NextPaymentDate:   datatypes.Date(nextDate),
		DonationTypeID:    e.DonationTypeID,
		DonationTypeLabel: label,
		StartedAt:         startedAt,
	}
	if e.Donor.Name != "" {
		sub.DonorName = lo.ToPtr(e.Donor.Name)
	}
	if e.CampaignID != "" {
		sub.CampaignID = lo.ToPtr(e.CampaignID)
	}

	if err := s.subs.Upsert(ctx, sub); err != nil {
		return fmt.Errorf("failed to create recurring donation: %w", err)
	}

	logctx.FromCtx(ctx, s.log).Infow("subscription_created",
		"subscription_id", sub.ID,
		"frequency", sub.Frequency,
		"next_payment_date", nextDate.Format(time.DateOnly),
	)

	go s.notifier.SubscriptionStarted(ctx, &notifier.SubscriptionFact{
		SubscriptionID:  sub.ID,
		DonorName:       e.Donor.Name,
		DonorEmail:      sub.DonorEmail,
		Amount:          sub.Amount,
		Currency:        sub.Currency,
		Frequency:       sub.Frequency,
		Status:          sub.Status,
		NextPaymentDate: nextDate,
	})

	return nil
}

// HandleSubscriptionDeleted moves a subscription to cancelled. Cancelling an
// already-cancelled or unknown subscription is a no-op.
func (s *Service) HandleSubscriptionDeleted(ctx context.Context, e *types.SubscriptionEvent) error {
	if e.SubscriptionID == "" {
		return fmt.Errorf("subscription event missing subscription id")
	}

	sub, err := s.subs.FindByID(ctx, e.SubscriptionID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logctx.FromCtx(ctx, s.log).Warnw("subscription_cancel_unknown_ignored", "subscription_id", e.SubscriptionID)
			return nil
		}
		return fmt.Errorf("failed to load subscription %s: %w", e.SubscriptionID, err)
	}
	if sub.Cancelled() {
		return nil
	}

	cancelledAt := e.CanceledAt
	if cancelledAt.IsZero() {
		cancelledAt = time.Now()
	}
	sub.Status = types.SubscriptionStatusCancelled
	sub.CancelledAt = lo.ToPtr(cancelledAt)

	if err := s.subs.Upsert(ctx, sub); err != nil {
		return fmt.Errorf("failed to cancel recurring donation: %w", err)
	}

	logctx.FromCtx(ctx, s.log).Infow("subscription_cancelled", "subscription_id", sub.ID)

	go s.notifier.SubscriptionCancelled(ctx, &notifier.SubscriptionFact{
		SubscriptionID: sub.ID,
		DonorEmail:     sub.DonorEmail,
		Amount:         sub.Amount,
		Currency:       sub.Currency,
		Frequency:      sub.Frequency,
		Status:         sub.Status,
	})

	return nil
}

// RecordPayment stamps last-payment linkage after a successful recurring
// charge and stores a freshly computed next payment date. The status is left
// untouched: a charge settling after cancellation never reactivates.
func (s *Service) RecordPayment(ctx context.Context, subscriptionID, donationID string, paidAt time.Time) error {
	sub, err := s.subs.FindByID(ctx, subscriptionID)
	if err != nil {
		return fmt.Errorf("failed to load subscription %s: %w", subscriptionID, err)
	}

	if paidAt.IsZero() {
		paidAt = time.Now()
	}
	nextDate := NextPaymentDate(paidAt, sub.Frequency, s.cfg.Location())

	sub.LastPaymentAt = lo.ToPtr(paidAt)
	sub.LastDonationID = lo.ToPtr(donationID)
	sub.NextPaymentDate = datatypes.Date(nextDate)

	if err := s.subs.Upsert(ctx, sub); err != nil {
		return fmt.Errorf("failed to record subscription payment: %w", err)
	}

	logctx.FromCtx(ctx, s.log).Infow("subscription_payment_recorded",
		"subscription_id", subscriptionID,
		"donation_id", donationID,
		"next_payment_date", nextDate.Format(time.DateOnly),
	)
	return nil
}

// HandleInvoiceFailed records a failed recurring charge attempt. The gateway
// retries charges on its own schedule; the ledger stays untouched.
func (s *Service) HandleInvoiceFailed(ctx context.Context, e *types.InvoiceEvent) error {
	logctx.FromCtx(ctx, s.log).Warnw("invoice_payment_failed",
		"invoice_id", e.InvoiceID,
		"subscription_id", e.SubscriptionID,
		"amount", e.AmountPaid,
		"failure", e.FailureMessage,
	)
	return nil
}
