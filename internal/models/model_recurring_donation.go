package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/hilalgiving/ledger/pkg/types"
)

// RecurringDonation tracks one gateway subscription. The primary key is the
// gateway subscription id, so repeated creation events upsert rather than
// duplicate.
//
// Status moves active -> cancelled only; a cancelled subscription never
// reactivates through this engine.
type RecurringDonation struct {
	ID                string `gorm:"column:id;primary_key;type:varchar(128)" json:"id"`
	GatewayCustomerID string `gorm:"column:gateway_customer_id;type:varchar(128)" json:"gateway_customer_id"`

	DonorName  *string `gorm:"column:donor_name;type:varchar(128)" json:"donor_name"`
	DonorEmail string  `gorm:"column:donor_email;type:varchar(128);not null" json:"donor_email"`

	Amount    int64                    `gorm:"column:amount;type:bigint;not null" json:"amount"`
	Currency  string                   `gorm:"column:currency;type:varchar(8);not null" json:"currency"`
	Frequency types.Frequency          `gorm:"column:frequency;type:varchar(16);not null" json:"frequency"`
	Status    types.SubscriptionStatus `gorm:"column:status;type:varchar(16);not null;index" json:"status"`

	// NextPaymentDate is recomputed from the event time on every successful
	// invoice, absorbing gateway billing-cycle drift instead of compounding it.
	NextPaymentDate datatypes.Date `gorm:"column:next_payment_date;not null" json:"next_payment_date"`

	DonationTypeID    string  `gorm:"column:donation_type_id;type:varchar(64)" json:"donation_type_id"`
	DonationTypeLabel string  `gorm:"column:donation_type_label;type:varchar(128)" json:"donation_type_label"`
	CampaignID        *string `gorm:"column:campaign_id;type:varchar(64)" json:"campaign_id"`

	LastPaymentAt  *time.Time `gorm:"column:last_payment_at" json:"last_payment_at"`
	LastDonationID *string    `gorm:"column:last_donation_id;type:uuid" json:"last_donation_id"`

	StartedAt   time.Time  `gorm:"column:started_at;not null" json:"started_at"`
	CancelledAt *time.Time `gorm:"column:cancelled_at" json:"cancelled_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (RecurringDonation) TableName() string { return "recurring_donations" }

func (r *RecurringDonation) Cancelled() bool {
	return r != nil && r.Status == types.SubscriptionStatusCancelled
}
