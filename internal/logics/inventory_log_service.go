package logics

import (
	"time"

	"greenhouse-server/internal/models"
	"greenhouse-server/internal/repositories"
	"greenhouse-server/internal/utils"
	apperrors "greenhouse-server/pkg/errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryLogService handles stock-movement log business logic
type InventoryLogService struct{}

// NewInventoryLogService creates a new instance of InventoryLogService
func NewInventoryLogService() *InventoryLogService {
	return &InventoryLogService{}
}

// ListLogs returns all inventory logs, newest movement first.
func (s *InventoryLogService) ListLogs() ([]models.InventoryLog, error) {
	var logs []models.InventoryLog
	if err := repositories.DBS.Postgres.Preload("Greenhouse").
		Order("timestamp DESC").
		Find(&logs).Error; err != nil {
		return nil, apperrors.Wrap(err, "failed to list inventory logs")
	}
	return logs, nil
}

// GetLogByID retrieves an inventory log by id.
func (s *InventoryLogService) GetLogByID(id string) (*models.InventoryLog, error) {
	var log models.InventoryLog
	if err := repositories.DBS.Postgres.Preload("Greenhouse").First(&log, "id = ?", id).Error; err != nil {
		if apperrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrNotFound, "inventory log not found", err)
		}
		return nil, apperrors.Wrap(err, "failed to load inventory log")
	}
	return &log, nil
}

// CreateLogInput carries the fields accepted when recording a movement.
type CreateLogInput struct {
	GreenhouseID string
	Action       string
	Quantity     decimal.Decimal
	UserID       *string
	Notes        string
	Timestamp    *time.Time
}

// CreateLog records a stock movement against a greenhouse. The movement
// timestamp defaults to now when the caller does not supply one.
func (s *InventoryLogService) CreateLog(input CreateLogInput) (*models.InventoryLog, error) {
	if input.GreenhouseID == "" || input.Action == "" {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidArgument, "greenhouse_id and action are required", nil)
	}
	if _, err := GreenhouseSvc.GetGreenhouseByID(input.GreenhouseID); err != nil {
		return nil, err
	}

	id, err := utils.GenerateUniqueID("L")
	if err != nil {
		return nil, err
	}

	ts := time.Now().UTC()
	if input.Timestamp != nil {
		ts = *input.Timestamp
	}

	log := models.InventoryLog{
		ID:           id,
		GreenhouseID: input.GreenhouseID,
		Action:       input.Action,
		Quantity:     input.Quantity,
		UserID:       input.UserID,
		Notes:        input.Notes,
		Timestamp:    ts,
	}
	if err := repositories.DBS.Postgres.Create(&log).Error; err != nil {
		return nil, apperrors.Wrap(err, "failed to create inventory log")
	}

	return s.GetLogByID(log.ID)
}

// UpdateLog applies a partial update and returns the fresh record.
func (s *InventoryLogService) UpdateLog(id string, updates models.InventoryLogUpdate) (*models.InventoryLog, error) {
	if _, err := s.GetLogByID(id); err != nil {
		return nil, err
	}

	updateMap := make(map[string]interface{})
	if updates.GreenhouseID != nil {
		if _, err := GreenhouseSvc.GetGreenhouseByID(*updates.GreenhouseID); err != nil {
			return nil, err
		}
		updateMap["greenhouse_id"] = *updates.GreenhouseID
	}
	if updates.Action != nil {
		updateMap["action"] = *updates.Action
	}
	if updates.Quantity != nil {
		updateMap["quantity"] = *updates.Quantity
	}
	if updates.UserID != nil {
		if *updates.UserID == "" {
			updateMap["user_id"] = nil
		} else {
			updateMap["user_id"] = *updates.UserID
		}
	}
	if updates.Notes != nil {
		updateMap["notes"] = *updates.Notes
	}
	if updates.Timestamp != nil {
		updateMap["timestamp"] = *updates.Timestamp
	}

	if len(updateMap) > 0 {
		if err := repositories.DBS.Postgres.Model(&models.InventoryLog{}).
			Where("id = ?", id).
			Updates(updateMap).Error; err != nil {
			return nil, apperrors.Wrap(err, "failed to update inventory log")
		}
	}

	return s.GetLogByID(id)
}

// DeleteLog removes an inventory log by id.
func (s *InventoryLogService) DeleteLog(id string) error {
	if _, err := s.GetLogByID(id); err != nil {
		return err
	}
	if err := repositories.DBS.Postgres.Delete(&models.InventoryLog{}, "id = ?", id).Error; err != nil {
		return apperrors.Wrap(err, "failed to delete inventory log")
	}
	return nil
}

// Global instance of InventoryLogService
var InventoryLogSvc = NewInventoryLogService()
