// Package repotest provides in-memory repository implementations for tests.
// They honor the same contracts as the GORM-backed repositories, including
// campaign row serialization and payment-intent uniqueness.
package repotest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hilalgiving/ledger/internal/models"
	"github.com/hilalgiving/ledger/internal/repo"
	"github.com/hilalgiving/ledger/pkg/tool"
)

type MemDonations struct {
	mu   sync.Mutex
	rows map[string]*models.Donation // by donation id
}

func NewMemDonations() *MemDonations {
	return &MemDonations{rows: map[string]*models.Donation{}}
}

func (m *MemDonations) Create(_ context.Context, d *models.Donation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d.ID == "" {
		d.ID = tool.GenerateUUIDV7()
	}
	if d.GatewayPaymentIntentID != nil {
		for _, existing := range m.rows {
			if existing.GatewayPaymentIntentID != nil && *existing.GatewayPaymentIntentID == *d.GatewayPaymentIntentID {
				return fmt.Errorf("duplicate payment intent id: %s", *d.GatewayPaymentIntentID)
			}
		}
	}
	cp := *d
	m.rows[d.ID] = &cp
	return nil
}

func (m *MemDonations) FindByPaymentIntentID(_ context.Context, paymentIntentID string) (*models.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.rows {
		if d.GatewayPaymentIntentID != nil && *d.GatewayPaymentIntentID == paymentIntentID {
			cp := *d
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *MemDonations) List(_ context.Context, req *repo.ListDonationsRequest) (*repo.ListDonationsResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]*models.Donation, 0, len(m.rows))
	for _, d := range m.rows {
		cp := *d
		items = append(items, &cp)
	}
	return &repo.ListDonationsResponse{Items: items, Total: int64(len(items))}, nil
}

// All returns a snapshot of every stored donation.
func (m *MemDonations) All() []*models.Donation {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]*models.Donation, 0, len(m.rows))
	for _, d := range m.rows {
		cp := *d
		items = append(items, &cp)
	}
	return items
}

type MemSubscriptions struct {
	mu   sync.Mutex
	rows map[string]*models.RecurringDonation
}

func NewMemSubscriptions() *MemSubscriptions {
	return &MemSubscriptions{rows: map[string]*models.RecurringDonation{}}
}

func (m *MemSubscriptions) Upsert(_ context.Context, sub *models.RecurringDonation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if original, ok := m.rows[sub.ID]; ok {
		sub.CreatedAt = original.CreatedAt
	}
	cp := *sub
	m.rows[sub.ID] = &cp
	return nil
}

func (m *MemSubscriptions) FindByID(_ context.Context, subscriptionID string) (*models.RecurringDonation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub, ok := m.rows[subscriptionID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *sub
	return &cp, nil
}

type MemCampaigns struct {
	mu   sync.Mutex
	rows map[string]*models.Campaign
}

func NewMemCampaigns(campaigns ...*models.Campaign) *MemCampaigns {
	m := &MemCampaigns{rows: map[string]*models.Campaign{}}
	for _, c := range campaigns {
		cp := *c
		m.rows[c.ID] = &cp
	}
	return m
}

func (m *MemCampaigns) FindByID(_ context.Context, campaignID string) (*models.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[campaignID]
	if !ok {
		return nil, repo.ErrCampaignNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *MemCampaigns) AddAmount(_ context.Context, campaignID string, amount int64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[campaignID]
	if !ok {
		return repo.ErrCampaignNotFound
	}
	c.CurrentAmount += amount
	c.UpdatedAt = at
	return nil
}

type MemReceipts struct {
	mu   sync.Mutex
	next int64
	// FailNext forces the following allocation to error, for degraded-path tests.
	FailNext bool
}

func NewMemReceipts() *MemReceipts { return &MemReceipts{} }

func (m *MemReceipts) NextReceiptNumber(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailNext {
		m.FailNext = false
		return 0, fmt.Errorf("receipt counter unavailable")
	}
	m.next++
	return m.next, nil
}

type MemEventLogs struct {
	mu   sync.Mutex
	rows []*models.WebhookEventLog
}

func NewMemEventLogs() *MemEventLogs { return &MemEventLogs{} }

func (m *MemEventLogs) Save(_ context.Context, entry *models.WebhookEventLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if entry.ID == "" {
		entry.ID = tool.GenerateUUIDV7()
	}
	cp := *entry
	m.rows = append(m.rows, &cp)
	return nil
}

func (m *MemEventLogs) All() []*models.WebhookEventLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.WebhookEventLog, len(m.rows))
	copy(out, m.rows)
	return out
}
