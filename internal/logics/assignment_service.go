package logics

import (
	"time"

	"greenhouse-server/internal/models"
	"greenhouse-server/internal/repositories"
	"greenhouse-server/internal/utils"
	apperrors "greenhouse-server/pkg/errors"

	"gorm.io/gorm"
)

// AssignmentService handles task assignment business logic
type AssignmentService struct{}

// NewAssignmentService creates a new instance of AssignmentService
func NewAssignmentService() *AssignmentService {
	return &AssignmentService{}
}

// assignmentPreloads expands the assignee and greenhouse on every query.
func assignmentPreloads(db *gorm.DB) *gorm.DB {
	return db.Preload("User").Preload("Greenhouse")
}

// ListAssignments returns all assignments with their relations expanded.
func (s *AssignmentService) ListAssignments() ([]models.Assignment, error) {
	var assignments []models.Assignment
	if err := assignmentPreloads(repositories.DBS.Postgres).
		Order("assigned_at DESC").
		Find(&assignments).Error; err != nil {
		return nil, apperrors.Wrap(err, "failed to list assignments")
	}
	return assignments, nil
}

// ListAssignmentsForUser returns the assignments where the given user is
// the assignee.
func (s *AssignmentService) ListAssignmentsForUser(userID string) ([]models.Assignment, error) {
	var assignments []models.Assignment
	if err := assignmentPreloads(repositories.DBS.Postgres).
		Where("user_id = ?", userID).
		Order("assigned_at DESC").
		Find(&assignments).Error; err != nil {
		return nil, apperrors.Wrap(err, "failed to list assignments for user")
	}
	return assignments, nil
}

// GetAssignmentByID retrieves an assignment by id.
func (s *AssignmentService) GetAssignmentByID(id string) (*models.Assignment, error) {
	var assignment models.Assignment
	if err := assignmentPreloads(repositories.DBS.Postgres).First(&assignment, "id = ?", id).Error; err != nil {
		if apperrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrNotFound, "assignment not found", err)
		}
		return nil, apperrors.Wrap(err, "failed to load assignment")
	}
	return &assignment, nil
}

// CreateAssignmentInput carries the fields accepted when creating a task.
type CreateAssignmentInput struct {
	UserID       string
	GreenhouseID string
	Title        string
	Description  string
	Priority     models.AssignmentPriority
	Status       models.AssignmentStatus
	DueDate      *time.Time
	Notes        string
}

// CreateAssignment links a user to a greenhouse as a task. Both sides of
// the link must exist.
func (s *AssignmentService) CreateAssignment(input CreateAssignmentInput) (*models.Assignment, error) {
	if input.UserID == "" || input.GreenhouseID == "" || input.Title == "" {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidArgument, "user_id, greenhouse_id and title are required", nil)
	}
	if _, err := UserSvc.GetUserByID(input.UserID); err != nil {
		return nil, err
	}
	if _, err := GreenhouseSvc.GetGreenhouseByID(input.GreenhouseID); err != nil {
		return nil, err
	}

	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}
	if input.Status == "" {
		input.Status = models.StatusPending
	}

	id, err := utils.GenerateUniqueID("A")
	if err != nil {
		return nil, err
	}

	assignment := models.Assignment{
		ID:           id,
		UserID:       input.UserID,
		GreenhouseID: input.GreenhouseID,
		Title:        input.Title,
		Description:  input.Description,
		Priority:     input.Priority,
		Status:       input.Status,
		DueDate:      input.DueDate,
		Notes:        input.Notes,
	}
	if err := repositories.DBS.Postgres.Create(&assignment).Error; err != nil {
		return nil, apperrors.Wrap(err, "failed to create assignment")
	}

	return s.GetAssignmentByID(assignment.ID)
}

// UpdateAssignment applies a partial update and returns the fresh record.
//
// The completion timestamp follows the status: a move to COMPLETED stamps
// completed_at with the server clock unless the caller supplied one, and a
// move to any other status clears it. Re-sending COMPLETED on an already
// completed task keeps the original timestamp.
func (s *AssignmentService) UpdateAssignment(id string, updates models.AssignmentUpdate) (*models.Assignment, error) {
	current, err := s.GetAssignmentByID(id)
	if err != nil {
		return nil, err
	}

	updateMap := make(map[string]interface{})
	if updates.UserID != nil {
		if _, err := UserSvc.GetUserByID(*updates.UserID); err != nil {
			return nil, err
		}
		updateMap["user_id"] = *updates.UserID
	}
	if updates.GreenhouseID != nil {
		if _, err := GreenhouseSvc.GetGreenhouseByID(*updates.GreenhouseID); err != nil {
			return nil, err
		}
		updateMap["greenhouse_id"] = *updates.GreenhouseID
	}
	if updates.Title != nil {
		updateMap["title"] = *updates.Title
	}
	if updates.Description != nil {
		updateMap["description"] = *updates.Description
	}
	if updates.Priority != nil {
		updateMap["priority"] = *updates.Priority
	}
	if updates.DueDate != nil {
		updateMap["due_date"] = *updates.DueDate
	}
	if updates.Notes != nil {
		updateMap["notes"] = *updates.Notes
	}
	if updates.CompletedAt != nil {
		updateMap["completed_at"] = *updates.CompletedAt
	}
	if updates.Status != nil {
		updateMap["status"] = *updates.Status
		if *updates.Status == models.StatusCompleted {
			if updates.CompletedAt == nil && current.Status != models.StatusCompleted {
				updateMap["completed_at"] = time.Now().UTC()
			}
		} else {
			updateMap["completed_at"] = nil
		}
	}

	if len(updateMap) > 0 {
		if err := repositories.DBS.Postgres.Model(&models.Assignment{}).
			Where("id = ?", id).
			Updates(updateMap).Error; err != nil {
			return nil, apperrors.Wrap(err, "failed to update assignment")
		}
	}

	return s.GetAssignmentByID(id)
}

// UpdateOwnAssignment is the restricted update path for a non-admin
// assignee: the caller must be the task's assignee and the update may only
// touch status, completed_at and notes.
func (s *AssignmentService) UpdateOwnAssignment(id, callerID string, updates models.AssignmentUpdate) (*models.Assignment, error) {
	assignment, err := s.GetAssignmentByID(id)
	if err != nil {
		return nil, err
	}
	if assignment.UserID != callerID {
		return nil, apperrors.NewAppError(apperrors.ErrUnauthorized, "Forbidden", nil)
	}
	if !updates.TouchesOnlyOwnerFields() {
		return nil, apperrors.NewAppError(apperrors.ErrUnauthorized, "Forbidden", nil)
	}
	return s.UpdateAssignment(id, updates)
}

// DeleteAssignment removes an assignment by id.
func (s *AssignmentService) DeleteAssignment(id string) error {
	if _, err := s.GetAssignmentByID(id); err != nil {
		return err
	}
	if err := repositories.DBS.Postgres.Delete(&models.Assignment{}, "id = ?", id).Error; err != nil {
		return apperrors.Wrap(err, "failed to delete assignment")
	}
	return nil
}

// Global instance of AssignmentService
var AssignmentSvc = NewAssignmentService()
