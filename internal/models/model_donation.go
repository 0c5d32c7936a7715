package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/hilalgiving/ledger/pkg/types"
)

// Donation is an immutable-once-settled record of a single payment capture.
// Exactly one row exists per gateway payment-intent id; redelivered events
// are deduplicated against the unique index before insert.
type Donation struct {
	ID            string `gorm:"column:id;primary_key;type:uuid" json:"id"`
	ReceiptNumber string `gorm:"column:receipt_number;type:varchar(32);not null;uniqueIndex" json:"receipt_number"`

	DonorName  *string `gorm:"column:donor_name;type:varchar(128)" json:"donor_name"`
	DonorEmail string  `gorm:"column:donor_email;type:varchar(128);not null;index" json:"donor_email"`
	DonorPhone *string `gorm:"column:donor_phone;type:varchar(32)" json:"donor_phone"`

	// Amount is in minor currency units (cents).
	Amount   int64  `gorm:"column:amount;type:bigint;not null" json:"amount"`
	Currency string `gorm:"column:currency;type:varchar(8);not null" json:"currency"`

	// GatewayPaymentIntentID is the natural dedup key. Nullable so invoice
	// charges lacking an intent reference do not collide on the unique index.
	GatewayPaymentIntentID *string `gorm:"column:gateway_payment_intent_id;type:varchar(128);uniqueIndex" json:"gateway_payment_intent_id"`
	GatewayCustomerID      *string `gorm:"column:gateway_customer_id;type:varchar(128)" json:"gateway_customer_id"`

	PaymentMethodType  *string `gorm:"column:payment_method_type;type:varchar(32)" json:"payment_method_type"`
	PaymentMethodLast4 *string `gorm:"column:payment_method_last4;type:varchar(8)" json:"payment_method_last4"`
	PaymentMethodBrand *string `gorm:"column:payment_method_brand;type:varchar(32)" json:"payment_method_brand"`

	Status types.DonationStatus `gorm:"column:status;type:varchar(32);not null" json:"status"`

	DonationTypeID    string  `gorm:"column:donation_type_id;type:varchar(64)" json:"donation_type_id"`
	DonationTypeLabel string  `gorm:"column:donation_type_label;type:varchar(128)" json:"donation_type_label"`
	CampaignID        *string `gorm:"column:campaign_id;type:varchar(64);index" json:"campaign_id"`

	IsRecurring bool `gorm:"column:is_recurring;not null" json:"is_recurring"`
	// Frequency is set only when IsRecurring is true.
	Frequency *types.Frequency `gorm:"column:frequency;type:varchar(16)" json:"frequency"`
	// SubscriptionID links a recurring charge back to its RecurringDonation.
	SubscriptionID *string `gorm:"column:subscription_id;type:varchar(128);index" json:"subscription_id"`

	Message *string `gorm:"column:message;type:text" json:"message"`

	// SettledOn is the calendar date of settlement in the operating timezone.
	SettledOn   datatypes.Date `gorm:"column:settled_on;not null" json:"settled_on"`
	CompletedAt time.Time      `gorm:"column:completed_at;not null" json:"completed_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (Donation) TableName() string { return "donations" }
