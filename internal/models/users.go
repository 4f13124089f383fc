package models

import (
	"time"
)

// Role is the binary authorization level stored on each user.
// Anything other than RoleAdmin is treated as unprivileged.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// User represents a system user
// Accounts are created by admins, by self-registration, or provisioned
// through the identity-provider webhook on first OAuth login.
type User struct {
	ID             string  `gorm:"type:char(12);primaryKey" json:"id"`
	Name           string  `gorm:"size:100;not null;default:''" json:"name"`                // Display name
	Email          string  `gorm:"size:250;not null;uniqueIndex" json:"email"`              // Email address
	Role           Role    `gorm:"size:50;not null;default:'USER'" json:"role"`             // ADMIN or USER
	HashedPassword string  `gorm:"size:250;not null;default:''" json:"-"`                   // Only set for credential accounts
	ExternalID     *string `gorm:"size:100;uniqueIndex" json:"external_id,omitempty"`       // Identity-provider subject

	// Standard metadata fields
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	OwnedGreenhouses []Greenhouse `gorm:"foreignKey:OwnerID" json:"owned_greenhouses,omitempty"`
	Assignments      []Assignment `gorm:"foreignKey:UserID" json:"assignments,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// UserUpdate is used for partial updates of a user.
// Password, when present, is hashed before it is stored.
type UserUpdate struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Role     *Role   `json:"role"`
	Password *string `json:"password"`
}

// IsAdmin reports whether the user holds the single privileged role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
