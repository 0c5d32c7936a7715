package campaign

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hilalgiving/ledger/internal/models"
	"github.com/hilalgiving/ledger/internal/repo"
	"github.com/hilalgiving/ledger/pkg/logctx"
)

// Service maintains campaign running totals. Credits are strictly additive;
// the repository serializes concurrent contributions through the store's
// transaction mechanism.
type Service struct {
	campaigns repo.CampaignRepository
	log       *zap.SugaredLogger
}

func NewService(campaigns repo.CampaignRepository, log *zap.SugaredLogger) *Service {
	return &Service{campaigns: campaigns, log: log}
}

// AddDonationAmount credits a settled amount to the campaign's running total.
// An unknown campaign is a logged warning, not an error: donations never
// auto-create campaigns, and the triggering ledger write must not fail.
func (s *Service) AddDonationAmount(ctx context.Context, campaignID string, amount int64, at time.Time) error {
	if campaignID == "" {
		return fmt.Errorf("empty campaign id")
	}
	if amount < 0 {
		return fmt.Errorf("negative amount: %d", amount)
	}

	err := s.campaigns.AddAmount(ctx, campaignID, amount, at)
	if err != nil {
		if errors.Is(err, repo.ErrCampaignNotFound) {
			logctx.FromCtx(ctx, s.log).Warnw("campaign_missing_skipped", "campaign_id", campaignID, "amount", amount)
			return nil
		}
		return fmt.Errorf("failed to add amount to campaign %s: %w", campaignID, err)
	}

	logctx.FromCtx(ctx, s.log).Infow("campaign_total_updated", "campaign_id", campaignID, "amount", amount)
	return nil
}

func (s *Service) Get(ctx context.Context, campaignID string) (*models.Campaign, error) {
	return s.campaigns.FindByID(ctx, campaignID)
}
