package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryLog records a stock movement against a greenhouse.
type InventoryLog struct {
	ID           string          `gorm:"type:char(12);primaryKey" json:"id"`
	GreenhouseID string          `gorm:"type:char(12);not null;index" json:"greenhouse_id"`
	Action       string          `gorm:"size:100;not null" json:"action"`
	Quantity     decimal.Decimal `gorm:"type:decimal(20,10);default:'0'" json:"quantity"`
	UserID       *string         `gorm:"type:char(12);index" json:"user_id,omitempty"` // Who made the change, when tracked
	Notes        string          `gorm:"type:text;not null;default:''" json:"notes"`
	Timestamp    time.Time       `json:"timestamp"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Greenhouse *Greenhouse `gorm:"foreignKey:GreenhouseID;references:ID" json:"greenhouse,omitempty"`
}

func (InventoryLog) TableName() string {
	return "inventory_logs"
}

// InventoryLogUpdate is used for partial updates of an inventory log.
type InventoryLogUpdate struct {
	GreenhouseID *string          `json:"greenhouse_id"`
	Action       *string          `json:"action"`
	Quantity     *decimal.Decimal `json:"quantity"`
	UserID       *string          `json:"user_id"`
	Notes        *string          `json:"notes"`
	Timestamp    *time.Time       `json:"timestamp"`
}
