package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hilalgiving/ledger/internal/models"
	"github.com/hilalgiving/ledger/pkg/tool"
	"github.com/hilalgiving/ledger/pkg/types"
)

type gormDonations struct {
	db *gorm.DB
}

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &gormDonations{db: db}
}

func (r *gormDonations) Create(ctx context.Context, d *models.Donation) error {
	if d.ID == "" {
		d.ID = tool.GenerateUUIDV7()
	}
	if err := r.db.WithContext(ctx).Create(d).Error; err != nil {
		return fmt.Errorf("failed to create donation: %w", err)
	}
	return nil
}

func (r *gormDonations) FindByPaymentIntentID(ctx context.Context, paymentIntentID string) (*models.Donation, error) {
	var d models.Donation
	err := r.db.WithContext(ctx).
		Where("gateway_payment_intent_id = ?", paymentIntentID).
		First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find donation by payment intent: %w", err)
	}
	return &d, nil
}

// filtersAnd combines multiple CommonFilter into a single clause.Expression.
type filtersAnd struct{ filters []*types.CommonFilter }

func (w filtersAnd) Build(builder clause.Builder) {
	if len(w.filters) == 0 {
		builder.WriteString("1=1")
		return
	}
	exprs := make([]clause.Expression, 0, len(w.filters))
	for _, f := range w.filters {
		exprs = append(exprs, f)
	}
	clause.And(exprs...).Build(builder)
}

func (r *gormDonations) List(ctx context.Context, req *ListDonationsRequest) (*ListDonationsResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}
	if req.Size <= 0 {
		req.Size = 10
	}
	if req.From < 0 {
		req.From = 0
	}

	tx := r.db.WithContext(ctx).Model(&models.Donation{})
	if len(req.Filters) > 0 {
		tx = tx.Where(clause.Where{Exprs: []clause.Expression{filtersAnd{filters: req.Filters}}})
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count donations: %w", err)
	}

	q := tx.Limit(req.Size)
	if req.From > 0 {
		q = q.Offset(req.From)
	}
	if req.SortBy != "" {
		q = q.Order(clause.OrderBy{Columns: []clause.OrderByColumn{{Column: clause.Column{Name: req.SortBy}, Desc: req.SortOrder != "asc"}}})
	}

	var rows []*models.Donation
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}

	return &ListDonationsResponse{Items: rows, Total: total}, nil
}

type gormSubscriptions struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &gormSubscriptions{db: db}
}

func (r *gormSubscriptions) Upsert(ctx context.Context, sub *models.RecurringDonation) error {
	// Save issues an update when the primary key (the subscription id) exists
	// and an insert otherwise; preserve CreatedAt across overwrites. The read
	// and write serialize on the row so concurrent upserts cannot interleave.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var original models.RecurringDonation
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", sub.ID).
			First(&original).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to load original recurring donation: %w", err)
		}
		if err == nil {
			sub.CreatedAt = original.CreatedAt
		}
		if err := tx.Save(sub).Error; err != nil {
			return fmt.Errorf("failed to upsert recurring donation: %w", err)
		}
		return nil
	})
}

func (r *gormSubscriptions) FindByID(ctx context.Context, subscriptionID string) (*models.RecurringDonation, error) {
	var sub models.RecurringDonation
	err := r.db.WithContext(ctx).Where("id = ?", subscriptionID).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find recurring donation: %w", err)
	}
	return &sub, nil
}

type gormCampaigns struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) CampaignRepository {
	return &gormCampaigns{db: db}
}

func (r *gormCampaigns) FindByID(ctx context.Context, campaignID string) (*models.Campaign, error) {
	var c models.Campaign
	err := r.db.WithContext(ctx).Where("id = ?", campaignID).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to find campaign: %w", err)
	}
	return &c, nil
}

func (r *gormCampaigns) AddAmount(ctx context.Context, campaignID string, amount int64, at time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.Campaign
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", campaignID).
			First(&c).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCampaignNotFound
			}
			return fmt.Errorf("failed to lock campaign: %w", err)
		}

		c.CurrentAmount += amount
		c.UpdatedAt = at
		if err := tx.Save(&c).Error; err != nil {
			return fmt.Errorf("failed to update campaign total: %w", err)
		}
		return nil
	})
}

type gormReceipts struct {
	db *gorm.DB
}

func NewReceiptRepository(db *gorm.DB) ReceiptRepository {
	return &gormReceipts{db: db}
}

func (r *gormReceipts) NextReceiptNumber(ctx context.Context) (int64, error) {
	var allocated int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.ReceiptCounter
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", models.ReceiptCounterID).
			First(&c).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to lock receipt counter: %w", err)
			}
			c = models.ReceiptCounter{ID: models.ReceiptCounterID}
		}

		c.Value++
		allocated = c.Value
		if err := tx.Save(&c).Error; err != nil {
			return fmt.Errorf("failed to advance receipt counter: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return allocated, nil
}

type gormEventLogs struct {
	db *gorm.DB
}

func NewEventLogRepository(db *gorm.DB) EventLogRepository {
	return &gormEventLogs{db: db}
}

func (r *gormEventLogs) Save(ctx context.Context, entry *models.WebhookEventLog) error {
	if entry.ID == "" {
		entry.ID = tool.GenerateUUIDV7()
	}
	if err := r.db.WithContext(ctx).Save(entry).Error; err != nil {
		return fmt.Errorf("failed to save webhook event log: %w", err)
	}
	return nil
}
