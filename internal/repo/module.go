package repo

import "go.uber.org/fx"

// Module provides the GORM-backed repository implementations.
var Module = fx.Options(
	fx.Provide(
		NewDonationRepository,
		NewSubscriptionRepository,
		NewCampaignRepository,
		NewReceiptRepository,
		NewEventLogRepository,
	),
)
