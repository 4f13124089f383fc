package models

import (
	"time"
)

// FertilizerSchedule plans fertilizer application for one greenhouse.
// Items is an opaque blob (CSV or JSON) the server stores but never parses.
type FertilizerSchedule struct {
	ID           string     `gorm:"type:char(12);primaryKey" json:"id"`
	Description  string     `gorm:"type:text;not null;default:''" json:"description"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Items        string     `gorm:"type:text;not null;default:''" json:"items"`
	GreenhouseID string     `gorm:"type:char(12);not null;index" json:"greenhouse_id"`
	CreatedByID  string     `gorm:"type:char(12);not null" json:"created_by_id"` // Admin who created the schedule

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Greenhouse *Greenhouse `gorm:"foreignKey:GreenhouseID;references:ID" json:"greenhouse,omitempty"`
	CreatedBy  *User       `gorm:"foreignKey:CreatedByID;references:ID" json:"created_by,omitempty"`
}

func (FertilizerSchedule) TableName() string {
	return "fertilizer_schedules"
}

// FertilizerScheduleUpdate is used for partial updates of a schedule.
type FertilizerScheduleUpdate struct {
	Description  *string    `json:"description"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	Items        *string    `json:"items"`
	GreenhouseID *string    `json:"greenhouse_id"`
}
