package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItemType categorizes items in the shared inventory pool.
type InventoryItemType string

const (
	InventoryTypeFertilizer InventoryItemType = "FERTILIZER"
	InventoryTypeSeed       InventoryItemType = "SEED"
	InventoryTypePesticide  InventoryItemType = "PESTICIDE"
	InventoryTypeTool       InventoryItemType = "TOOL"
)

// InventoryItem is a globally pooled stock item, not tied to a greenhouse.
// Quantity at or below Threshold marks the item as low stock.
type InventoryItem struct {
	ID        string            `gorm:"type:char(12);primaryKey" json:"id"`
	Name      string            `gorm:"size:250;not null" json:"name"`
	Type      InventoryItemType `gorm:"size:50;not null" json:"type"`
	Quantity  decimal.Decimal   `gorm:"type:decimal(20,10);default:'0'" json:"quantity"`
	Unit      string            `gorm:"size:50;not null;default:''" json:"unit"`
	Threshold decimal.Decimal   `gorm:"type:decimal(20,10);default:'0'" json:"threshold"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}

// InventoryItemUpdate is used for partial updates of an inventory item.
type InventoryItemUpdate struct {
	Name      *string            `json:"name"`
	Type      *InventoryItemType `json:"type"`
	Quantity  *decimal.Decimal   `json:"quantity"`
	Unit      *string            `json:"unit"`
	Threshold *decimal.Decimal   `json:"threshold"`
}

// IsLowStock reports whether the item is at or below its threshold.
func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity.LessThanOrEqual(i.Threshold)
}
