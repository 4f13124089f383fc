package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditLog stores system audit events for security tracking
// Used by AuditLogService to record auth events and admin mutations
type AuditLog struct {
	ID      uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID  *string        `gorm:"type:char(12);index" json:"user_id,omitempty"` // Optional: some logs don't belong to users
	Type    AuditLogType   `gorm:"size:50;not null" json:"type"`                 // Type of audit event
	Content datatypes.JSON `gorm:"type:jsonb" json:"content"`                    // Structured event details

	// Standard metadata fields
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}
