package models

import (
	"time"

	"gorm.io/datatypes"
)

type WebhookEventLogStatus string

const (
	WebhookEventLogStatusReceived     WebhookEventLogStatus = "received"
	WebhookEventLogStatusHandled      WebhookEventLogStatus = "handled"
	WebhookEventLogStatusHandleFailed WebhookEventLogStatus = "handle_failed"
)

// WebhookEventLog is the audit trail of inbound gateway events. Rows are
// written asynchronously and never participate in ledger correctness.
type WebhookEventLog struct {
	ID              string                `gorm:"column:id;type:uuid;primary_key" json:"id"`
	GatewayEventID  string                `gorm:"column:gateway_event_id;type:varchar(128);index" json:"gateway_event_id"`
	EventType       string                `gorm:"column:event_type;type:varchar(64);not null;index" json:"event_type"`
	TraceID         string                `gorm:"column:trace_id;type:varchar(128)" json:"trace_id"`
	ReceivedAt      time.Time             `gorm:"column:received_at" json:"received_at"`
	Data            datatypes.JSON        `gorm:"column:data;type:jsonb" json:"data"`
	Result          *datatypes.JSON       `gorm:"column:result;type:jsonb" json:"result"`
	Status          WebhookEventLogStatus `gorm:"column:status;type:varchar(32);not null" json:"status"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

func (WebhookEventLog) TableName() string { return "webhook_event_log" }
