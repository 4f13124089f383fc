package models

import (
	"time"
)

// Greenhouse is a managed growing site. A greenhouse may have at most one
// owner; deleting the owner does not cascade to the greenhouse.
type Greenhouse struct {
	ID       string  `gorm:"type:char(12);primaryKey" json:"id"`
	Name     string  `gorm:"size:250;not null" json:"name"`
	Location string  `gorm:"size:250;not null;default:''" json:"location"`
	OwnerID  *string `gorm:"type:char(12);index" json:"owner_id,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Owner *User `gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:SET NULL" json:"owner,omitempty"`
}

func (Greenhouse) TableName() string {
	return "greenhouses"
}

// GreenhouseUpdate is used for partial updates of a greenhouse.
type GreenhouseUpdate struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
	OwnerID  *string `json:"owner_id"`
}
