package types

type Frequency string

const (
	FrequencyWeekly      Frequency = "weekly"
	FrequencyFortnightly Frequency = "fortnightly"
	FrequencyMonthly     Frequency = "monthly"
	FrequencyYearly      Frequency = "yearly"
)

// ParseFrequency normalizes a raw frequency string from gateway metadata.
// Unknown or empty values default to monthly, the platform's most common plan.
func ParseFrequency(s string) Frequency {
	switch Frequency(s) {
	case FrequencyWeekly, FrequencyFortnightly, FrequencyMonthly, FrequencyYearly:
		return Frequency(s)
	default:
		return FrequencyMonthly
	}
}

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyWeekly, FrequencyFortnightly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

type DonationStatus string

const (
	// DonationStatusSucceeded is the only status the ledger persists; failed
	// payments never produce a Donation row.
	DonationStatusSucceeded DonationStatus = "succeeded"
)

// DonationType is a configured giving category (general, zakat, building fund...).
// The catalog in config resolves labels when gateway metadata carries only an id.
type DonationType struct {
	ID    string `json:"id" mapstructure:"id"`
	Label string `json:"label" mapstructure:"label"`
}
