package repo

import (
	"context"
	"errors"
	"time"

	"github.com/hilalgiving/ledger/internal/models"
	"github.com/hilalgiving/ledger/pkg/types"
)

var (
	// ErrNotFound is returned when a looked-up record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrCampaignNotFound distinguishes the aggregation skip case: a donation
	// referencing an unknown campaign is logged and ignored, never an error
	// for the caller.
	ErrCampaignNotFound = errors.New("campaign not found")
)

// ListDonationsRequest is the admin listing query: CommonFilter conditions
// plus offset pagination and sorting.
type ListDonationsRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	From      int                   `json:"from"`
	Size      int                   `json:"size"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

type ListDonationsResponse struct {
	Items []*models.Donation `json:"items"`
	Total int64              `json:"total"`
}

// DonationRepository persists the donation ledger. Create must fail when the
// gateway payment-intent id is already recorded, so redelivered events cannot
// double-write.
type DonationRepository interface {
	Create(ctx context.Context, d *models.Donation) error
	FindByPaymentIntentID(ctx context.Context, paymentIntentID string) (*models.Donation, error)
	List(ctx context.Context, req *ListDonationsRequest) (*ListDonationsResponse, error)
}

// SubscriptionRepository persists RecurringDonation records keyed by gateway
// subscription id. Upsert overwrites by identity, which makes repeated
// creation events idempotent at the storage layer.
type SubscriptionRepository interface {
	Upsert(ctx context.Context, sub *models.RecurringDonation) error
	FindByID(ctx context.Context, subscriptionID string) (*models.RecurringDonation, error)
}

// CampaignRepository holds fundraising campaigns. AddAmount performs the
// read-modify-write of the running total inside a single store transaction;
// concurrent contributions to the same campaign serialize on the row, not in
// the application.
type CampaignRepository interface {
	FindByID(ctx context.Context, campaignID string) (*models.Campaign, error)
	AddAmount(ctx context.Context, campaignID string, amount int64, at time.Time) error
}

// ReceiptRepository allocates strictly increasing receipt counter values,
// unique under concurrent invocation. Burned values are acceptable.
type ReceiptRepository interface {
	NextReceiptNumber(ctx context.Context) (int64, error)
}

// EventLogRepository stores the webhook audit trail.
type EventLogRepository interface {
	Save(ctx context.Context, entry *models.WebhookEventLog) error
}
