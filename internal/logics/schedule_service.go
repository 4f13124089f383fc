package logics

import (
	"time"

	"greenhouse-server/internal/models"
	"greenhouse-server/internal/repositories"
	"greenhouse-server/internal/utils"
	apperrors "greenhouse-server/pkg/errors"

	"gorm.io/gorm"
)

// ScheduleService handles fertilizer schedule business logic
type ScheduleService struct{}

// NewScheduleService creates a new instance of ScheduleService
func NewScheduleService() *ScheduleService {
	return &ScheduleService{}
}

// ListSchedules returns all fertilizer schedules with their greenhouse
// expanded, ordered by start date.
func (s *ScheduleService) ListSchedules() ([]models.FertilizerSchedule, error) {
	var schedules []models.FertilizerSchedule
	if err := repositories.DBS.Postgres.Preload("Greenhouse").
		Order("start_date ASC").
		Find(&schedules).Error; err != nil {
		return nil, apperrors.Wrap(err, "failed to list schedules")
	}
	return schedules, nil
}

// GetScheduleByID retrieves a fertilizer schedule by id.
func (s *ScheduleService) GetScheduleByID(id string) (*models.FertilizerSchedule, error) {
	var schedule models.FertilizerSchedule
	if err := repositories.DBS.Postgres.Preload("Greenhouse").First(&schedule, "id = ?", id).Error; err != nil {
		if apperrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrNotFound, "schedule not found", err)
		}
		return nil, apperrors.Wrap(err, "failed to load schedule")
	}
	return &schedule, nil
}

// CreateScheduleInput carries the fields accepted when creating a schedule.
type CreateScheduleInput struct {
	Description  string
	StartDate    time.Time
	EndDate      *time.Time
	Items        string
	GreenhouseID string
	CreatedByID  string
}

// CreateSchedule creates a fertilizer schedule. The item list is stored
// verbatim; it is the client's format, not the server's.
func (s *ScheduleService) CreateSchedule(input CreateScheduleInput) (*models.FertilizerSchedule, error) {
	if input.GreenhouseID == "" {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidArgument, "greenhouse_id is required", nil)
	}
	if _, err := GreenhouseSvc.GetGreenhouseByID(input.GreenhouseID); err != nil {
		return nil, err
	}

	id, err := utils.GenerateUniqueID("S")
	if err != nil {
		return nil, err
	}

	schedule := models.FertilizerSchedule{
		ID:           id,
		Description:  input.Description,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Items:        input.Items,
		GreenhouseID: input.GreenhouseID,
		CreatedByID:  input.CreatedByID,
	}
	if err := repositories.DBS.Postgres.Create(&schedule).Error; err != nil {
		return nil, apperrors.Wrap(err, "failed to create schedule")
	}

	return s.GetScheduleByID(schedule.ID)
}

// UpdateSchedule applies a partial update and returns the fresh record.
func (s *ScheduleService) UpdateSchedule(id string, updates models.FertilizerScheduleUpdate) (*models.FertilizerSchedule, error) {
	if _, err := s.GetScheduleByID(id); err != nil {
		return nil, err
	}

	updateMap := make(map[string]interface{})
	if updates.Description != nil {
		updateMap["description"] = *updates.Description
	}
	if updates.StartDate != nil {
		updateMap["start_date"] = *updates.StartDate
	}
	if updates.EndDate != nil {
		updateMap["end_date"] = *updates.EndDate
	}
	if updates.Items != nil {
		updateMap["items"] = *updates.Items
	}
	if updates.GreenhouseID != nil {
		if _, err := GreenhouseSvc.GetGreenhouseByID(*updates.GreenhouseID); err != nil {
			return nil, err
		}
		updateMap["greenhouse_id"] = *updates.GreenhouseID
	}

	if len(updateMap) > 0 {
		if err := repositories.DBS.Postgres.Model(&models.FertilizerSchedule{}).
			Where("id = ?", id).
			Updates(updateMap).Error; err != nil {
			return nil, apperrors.Wrap(err, "failed to update schedule")
		}
	}

	return s.GetScheduleByID(id)
}

// DeleteSchedule removes a fertilizer schedule by id.
func (s *ScheduleService) DeleteSchedule(id string) error {
	if _, err := s.GetScheduleByID(id); err != nil {
		return err
	}
	if err := repositories.DBS.Postgres.Delete(&models.FertilizerSchedule{}, "id = ?", id).Error; err != nil {
		return apperrors.Wrap(err, "failed to delete schedule")
	}
	return nil
}

// Global instance of ScheduleService
var ScheduleSvc = NewScheduleService()
