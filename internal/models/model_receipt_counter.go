package models

import "time"

// ReceiptCounterID is the single counter row backing receipt allocation.
const ReceiptCounterID = "donation_receipts"

// ReceiptCounter backs receipt-number allocation. The row is incremented
// under a row lock, so concurrent allocations never observe the same value.
// A crash between allocation and ledger write burns a number; gaps are
// acceptable, duplicates are not.
type ReceiptCounter struct {
	ID        string    `gorm:"column:id;primary_key;type:varchar(64)" json:"id"`
	Value     int64     `gorm:"column:value;type:bigint;not null;default:0" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ReceiptCounter) TableName() string { return "receipt_counters" }
