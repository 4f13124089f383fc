package models

import (
	"time"
)

// AssignmentPriority orders tasks by urgency.
type AssignmentPriority string

const (
	PriorityLow    AssignmentPriority = "LOW"
	PriorityMedium AssignmentPriority = "MEDIUM"
	PriorityHigh   AssignmentPriority = "HIGH"
	PriorityUrgent AssignmentPriority = "URGENT"
)

// AssignmentStatus tracks task progress. The documented transition chain
// (PENDING → IN_PROGRESS → COMPLETED, or → CANCELLED) is advisory only;
// the server stores whatever an authorized caller sets.
type AssignmentStatus string

const (
	StatusPending    AssignmentStatus = "PENDING"
	StatusInProgress AssignmentStatus = "IN_PROGRESS"
	StatusCompleted  AssignmentStatus = "COMPLETED"
	StatusCancelled  AssignmentStatus = "CANCELLED"
)

// Assignment links one user to one greenhouse as a task with
// priority, status and due-date tracking.
type Assignment struct {
	ID           string             `gorm:"type:char(12);primaryKey" json:"id"`
	UserID       string             `gorm:"type:char(12);not null;index" json:"user_id"`
	GreenhouseID string             `gorm:"type:char(12);not null;index" json:"greenhouse_id"`
	Title        string             `gorm:"size:250;not null" json:"title"`
	Description  string             `gorm:"type:text;not null;default:''" json:"description"`
	Priority     AssignmentPriority `gorm:"size:50;not null;default:'MEDIUM'" json:"priority"`
	Status       AssignmentStatus   `gorm:"size:50;not null;default:'PENDING'" json:"status"`
	DueDate      *time.Time         `json:"due_date,omitempty"`
	AssignedAt   time.Time          `gorm:"autoCreateTime" json:"assigned_at"`
	CompletedAt  *time.Time         `json:"completed_at,omitempty"`
	Notes        string             `gorm:"type:text;not null;default:''" json:"notes"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User       *User       `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	Greenhouse *Greenhouse `gorm:"foreignKey:GreenhouseID;references:ID" json:"greenhouse,omitempty"`
}

func (Assignment) TableName() string {
	return "assignments"
}

// AssignmentUpdate is used for partial updates of an assignment.
type AssignmentUpdate struct {
	UserID       *string             `json:"user_id"`
	GreenhouseID *string             `json:"greenhouse_id"`
	Title        *string             `json:"title"`
	Description  *string             `json:"description"`
	Priority     *AssignmentPriority `json:"priority"`
	Status       *AssignmentStatus   `json:"status"`
	DueDate      *time.Time          `json:"due_date"`
	CompletedAt  *time.Time          `json:"completed_at"`
	Notes        *string             `json:"notes"`
}

// TouchesOnlyOwnerFields reports whether the update is limited to the
// fields a non-admin assignee is allowed to change on their own task.
func (u *AssignmentUpdate) TouchesOnlyOwnerFields() bool {
	return u.UserID == nil &&
		u.GreenhouseID == nil &&
		u.Title == nil &&
		u.Description == nil &&
		u.Priority == nil &&
		u.DueDate == nil
}
