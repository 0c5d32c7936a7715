package donation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/hilalgiving/ledger/internal/app/service/campaign"
	"github.com/hilalgiving/ledger/internal/app/service/notifier"
	"github.com/hilalgiving/ledger/internal/app/service/receipt"
	"github.com/hilalgiving/ledger/internal/app/service/subscription"
	"github.com/hilalgiving/ledger/internal/models"
	"github.com/hilalgiving/ledger/internal/platform/stripegw"
	"github.com/hilalgiving/ledger/internal/repo"
	"github.com/hilalgiving/ledger/pkg/config"
	"github.com/hilalgiving/ledger/pkg/logctx"
	"github.com/hilalgiving/ledger/pkg/types"
)

// Service is the donation ledger writer. Two entry points feed it: a
// standalone captured payment and a subscription's recurring invoice charge.
// Writes are deduplicated by gateway payment-intent id, so redelivered
// events settle into exactly one Donation row.
type Service struct {
	donations repo.DonationRepository
	subs      *subscription.Service
	campaigns *campaign.Service
	receipts  *receipt.Service
	methods   stripegw.PaymentMethodResolver
	notifier  notifier.Notifier
	cfg       *config.Config
	log       *zap.SugaredLogger
}

func NewService(
	donations repo.DonationRepository,
	subs *subscription.Service,
	campaigns *campaign.Service,
	receipts *receipt.Service,
	methods stripegw.PaymentMethodResolver,
	n notifier.Notifier,
	cfg *config.Config,
	log *zap.SugaredLogger,
) *Service {
	return &Service{
		donations: donations,
		subs:      subs,
		campaigns: campaigns,
		receipts:  receipts,
		methods:   methods,
		notifier:  n,
		cfg:       cfg,
		log:       log,
	}
}

func (s *Service) List(ctx context.Context, req *repo.ListDonationsRequest) (*repo.ListDonationsResponse, error) {
	return s.donations.List(ctx, req)
}

// HandlePaymentSucceeded records a standalone captured payment. Payments the
// gateway attributed to a subscription invoice are skipped here and handled
// by HandleInvoicePaid, but only when the event's own metadata agrees the
// charge is recurring; invoice presence alone is not trusted.
func (s *Service) HandlePaymentSucceeded(ctx context.Context, e *types.PaymentEvent) error {
	lg := logctx.FromCtx(ctx, s.log)

	if e.BelongsToSubscription() {
		lg.Infow("payment_intent_deferred_to_invoice", "payment_intent_id", e.PaymentIntentID, "invoice_id", e.InvoiceID)
		return nil
	}

	if existing, err := s.findExisting(ctx, e.PaymentIntentID); err != nil {
		return err
	} else if existing != nil {
		lg.Infow("donation_already_recorded", "payment_intent_id", e.PaymentIntentID, "donation_id", existing.ID)
		return nil
	}

	email := e.Donor.Email
	if email == "" {
		email = e.ReceiptEmail
	}
	if email == "" {
		lg.Warnw("donation_missing_donor_email", "payment_intent_id", e.PaymentIntentID)
	}

	methodType, methodBrand, methodLast4 := s.resolveMethod(ctx, e.PaymentMethodID)

	receiptNumber, err := s.receipts.Allocate(ctx)
	if err != nil {
		return fmt.Errorf("failed to allocate receipt: %w", err)
	}

	settledAt := e.CreatedAt
	if settledAt.IsZero() {
		settledAt = time.Now()
	}

	label := e.DonationTypeLabel
	if label == "" {
		if dt := s.cfg.GetDonationTypeByID(e.DonationTypeID); dt != nil {
			label = dt.Label
		}
	}

	d := &models.Donation{
		ReceiptNumber:     receiptNumber,
		DonorEmail:        email,
		Amount:            e.Amount,
		Currency:          e.Currency,
		Status:            types.DonationStatusSucceeded,
		DonationTypeID:    e.DonationTypeID,
		DonationTypeLabel: label,
		IsRecurring:       false,
		SettledOn:         s.settlementDate(settledAt),
		CompletedAt:       settledAt,
		PaymentMethodType: methodType,
	}
	if e.PaymentIntentID != "" {
		d.GatewayPaymentIntentID = lo.ToPtr(e.PaymentIntentID)
	}
	if e.CustomerID != "" {
		d.GatewayCustomerID = lo.ToPtr(e.CustomerID)
	}
	if e.Donor.Name != "" {
		d.DonorName = lo.ToPtr(e.Donor.Name)
	}
	if e.Donor.Phone != "" {
		d.DonorPhone = lo.ToPtr(e.Donor.Phone)
	}
	if e.Message != "" {
		d.Message = lo.ToPtr(e.Message)
	}
	if e.CampaignID != "" {
		d.CampaignID = lo.ToPtr(e.CampaignID)
	}
	d.PaymentMethodBrand = methodBrand
	d.PaymentMethodLast4 = methodLast4

	if err := s.donations.Create(ctx, d); err != nil {
		return fmt.Errorf("failed to write donation: %w", err)
	}

	lg.Infow("donation_recorded",
		"donation_id", d.ID,
		"receipt_number", d.ReceiptNumber,
		"payment_intent_id", e.PaymentIntentID,
		"amount", d.Amount,
		"currency", d.Currency,
	)

	s.creditCampaign(ctx, e.CampaignID, e.Amount, settledAt)

	go s.notifier.DonationRecorded(ctx, &notifier.DonationFact{
		DonorName:     e.Donor.Name,
		DonorEmail:    email,
		Amount:        d.Amount,
		Currency:      d.Currency,
		ReceiptNumber: d.ReceiptNumber,
		CampaignID:    e.CampaignID,
		IsRecurring:   false,
		SettledOn:     settledAt,
	})

	return nil
}

// HandleInvoicePaid records a successful recurring charge: a new Donation
// flagged recurring, plus last-payment stamping and a fresh next-payment
// date on the owning RecurringDonation.
//
// The owning subscription must already exist. When the invoice event
// overtakes the creation event, the lookup fails and the resulting 500 lets
// the gateway redeliver after the creation event has landed.
func (s *Service) HandleInvoicePaid(ctx context.Context, e *types.InvoiceEvent) error {
	lg := logctx.FromCtx(ctx, s.log)

	if e.SubscriptionID == "" {
		lg.Warnw("invoice_without_subscription_ignored", "invoice_id", e.InvoiceID)
		return nil
	}

	sub, err := s.subs.Get(ctx, e.SubscriptionID)
	if err != nil {
		return fmt.Errorf("failed to load subscription %s for invoice %s: %w", e.SubscriptionID, e.InvoiceID, err)
	}

	paidAt := e.CreatedAt
	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	if existing, err := s.findExisting(ctx, e.PaymentIntentID); err != nil {
		return err
	} else if existing != nil {
		lg.Infow("recurring_donation_already_recorded", "payment_intent_id", e.PaymentIntentID, "donation_id", existing.ID)
		// Re-stamping is deterministic: the next date derives from the event
		// time, not the stored one, so a replay converges.
		return s.subs.RecordPayment(ctx, sub.ID, existing.ID, paidAt)
	}

	email := sub.DonorEmail
	if email == "" {
		email = e.CustomerEmail
	}

	receiptNumber, err := s.receipts.Allocate(ctx)
	if err != nil {
		return fmt.Errorf("failed to allocate receipt: %w", err)
	}

	currency := e.Currency
	if currency == "" {
		currency = sub.Currency
	}

	d := &models.Donation{
		ReceiptNumber:     receiptNumber,
		DonorName:         sub.DonorName,
		DonorEmail:        email,
		Amount:            e.AmountPaid,
		Currency:          currency,
		Status:            types.DonationStatusSucceeded,
		DonationTypeID:    sub.DonationTypeID,
		DonationTypeLabel: sub.DonationTypeLabel,
		CampaignID:        sub.CampaignID,
		IsRecurring:       true,
		Frequency:         lo.ToPtr(sub.Frequency),
		SubscriptionID:    lo.ToPtr(sub.ID),
		SettledOn:         s.settlementDate(paidAt),
		CompletedAt:       paidAt,
		PaymentMethodType: lo.ToPtr("card"),
	}
	if e.PaymentIntentID != "" {
		d.GatewayPaymentIntentID = lo.ToPtr(e.PaymentIntentID)
	}
	if sub.GatewayCustomerID != "" {
		d.GatewayCustomerID = lo.ToPtr(sub.GatewayCustomerID)
	}

	if err := s.donations.Create(ctx, d); err != nil {
		return fmt.Errorf("failed to write recurring donation: %w", err)
	}

	lg.Infow("recurring_donation_recorded",
		"donation_id", d.ID,
		"receipt_number", d.ReceiptNumber,
		"subscription_id", sub.ID,
		"amount", d.Amount,
	)

	var campaignID string
	if sub.CampaignID != nil {
		campaignID = *sub.CampaignID
	}
	s.creditCampaign(ctx, campaignID, e.AmountPaid, paidAt)

	if err := s.subs.RecordPayment(ctx, sub.ID, d.ID, paidAt); err != nil {
		return fmt.Errorf("failed to update subscription after invoice %s: %w", e.InvoiceID, err)
	}

	var donorName string
	if sub.DonorName != nil {
		donorName = *sub.DonorName
	}
	go s.notifier.DonationRecorded(ctx, &notifier.DonationFact{
		DonorName:     donorName,
		DonorEmail:    email,
		Amount:        d.Amount,
		Currency:      d.Currency,
		ReceiptNumber: d.ReceiptNumber,
		CampaignID:    campaignID,
		IsRecurring:   true,
		Frequency:     sub.Frequency,
		SettledOn:     paidAt,
	})

	return nil
}

// HandlePaymentFailed acknowledges a failed capture. Failed payments never
// reach the ledger; the gateway owns retry.
func (s *Service) HandlePaymentFailed(ctx context.Context, e *types.PaymentEvent) error {
	logctx.FromCtx(ctx, s.log).Warnw("payment_intent_failed",
		"payment_intent_id", e.PaymentIntentID,
		"amount", e.Amount,
		"failure", e.FailureMessage,
	)
	return nil
}

func (s *Service) findExisting(ctx context.Context, paymentIntentID string) (*models.Donation, error) {
	if paymentIntentID == "" {
		return nil, nil
	}
	existing, err := s.donations.FindByPaymentIntentID(ctx, paymentIntentID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to check for existing donation: %w", err)
	}
	return existing, nil
}

// resolveMethod fetches card display details. A lookup failure degrades to a
// bare "card" type; it never aborts the donation write.
func (s *Service) resolveMethod(ctx context.Context, paymentMethodID string) (methodType, brand, last4 *string) {
	methodType = lo.ToPtr("card")
	if paymentMethodID == "" || s.methods == nil {
		return methodType, nil, nil
	}

	details, err := s.methods.Resolve(ctx, paymentMethodID)
	if err != nil {
		logctx.FromCtx(ctx, s.log).Warnw("payment_method_lookup_failed", "payment_method_id", paymentMethodID, "error", err.Error())
		return methodType, nil, nil
	}

	if details.Type != "" {
		methodType = lo.ToPtr(details.Type)
	}
	if details.Brand != "" {
		brand = lo.ToPtr(details.Brand)
	}
	if details.Last4 != "" {
		last4 = lo.ToPtr(details.Last4)
	}
	return methodType, brand, last4
}

// creditCampaign applies the campaign side effect. Failures are logged and
// swallowed: the donation is already durable and must not be retried for a
// derived aggregate.
func (s *Service) creditCampaign(ctx context.Context, campaignID string, amount int64, at time.Time) {
	if campaignID == "" {
		return
	}
	if err := s.campaigns.AddDonationAmount(ctx, campaignID, amount, at); err != nil {
		logctx.FromCtx(ctx, s.log).Errorw("campaign_update_failed", "campaign_id", campaignID, "error", err.Error())
	}
}

func (s *Service) settlementDate(at time.Time) datatypes.Date {
	t := at.In(s.cfg.Location())
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, s.cfg.Location()))
}
