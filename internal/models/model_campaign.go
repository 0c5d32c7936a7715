package models

import "time"

// Campaign is an append-accumulating fundraising target. CurrentAmount only
// ever increases through this engine, under a row lock inside a single
// transaction; there is no debit path.
type Campaign struct {
	ID            string `gorm:"column:id;primary_key;type:varchar(64)" json:"id"`
	Name          string `gorm:"column:name;type:varchar(128);not null" json:"name"`
	TargetAmount  int64  `gorm:"column:target_amount;type:bigint;not null;default:0" json:"target_amount"`
	CurrentAmount int64  `gorm:"column:current_amount;type:bigint;not null;default:0" json:"current_amount"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Campaign) TableName() string { return "campaigns" }
