package logics

import (
	"greenhouse-server/internal/models"
	"greenhouse-server/internal/repositories"
	"greenhouse-server/internal/utils"
	apperrors "greenhouse-server/pkg/errors"

	"gorm.io/gorm"
)

// GreenhouseService handles greenhouse-related business logic
type GreenhouseService struct{}

// NewGreenhouseService creates a new instance of GreenhouseService
func NewGreenhouseService() *GreenhouseService {
	return &GreenhouseService{}
}

// ListGreenhouses returns all greenhouses with their owner expanded.
func (s *GreenhouseService) ListGreenhouses() ([]models.Greenhouse, error) {
	var greenhouses []models.Greenhouse
	if err := repositories.DBS.Postgres.Preload("Owner").Find(&greenhouses).Error; err != nil {
		return nil, apperrors.Wrap(err, "failed to list greenhouses")
	}
	return greenhouses, nil
}

// GetGreenhouseByID retrieves a greenhouse by id.
func (s *GreenhouseService) GetGreenhouseByID(id string) (*models.Greenhouse, error) {
	var greenhouse models.Greenhouse
	if err := repositories.DBS.Postgres.Preload("Owner").First(&greenhouse, "id = ?", id).Error; err != nil {
		if apperrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrNotFound, "greenhouse not found", err)
		}
		return nil, apperrors.Wrap(err, "failed to load greenhouse")
	}
	return &greenhouse, nil
}

// CreateGreenhouse creates a greenhouse record. The owner, when given,
// must reference an existing user.
func (s *GreenhouseService) CreateGreenhouse(name, location string, ownerID *string) (*models.Greenhouse, error) {
	if name == "" {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidArgument, "name is required", nil)
	}
	if ownerID != nil && *ownerID != "" {
		if _, err := UserSvc.GetUserByID(*ownerID); err != nil {
			return nil, err
		}
	} else {
		ownerID = nil
	}

	id, err := utils.GenerateUniqueID("G")
	if err != nil {
		return nil, err
	}

	greenhouse := models.Greenhouse{
		ID:       id,
		Name:     name,
		Location: location,
		OwnerID:  ownerID,
	}
	if err := repositories.DBS.Postgres.Create(&greenhouse).Error; err != nil {
		return nil, apperrors.Wrap(err, "failed to create greenhouse")
	}

	return s.GetGreenhouseByID(greenhouse.ID)
}

// UpdateGreenhouse applies a partial update and returns the fresh record.
func (s *GreenhouseService) UpdateGreenhouse(id string, updates models.GreenhouseUpdate) (*models.Greenhouse, error) {
	if _, err := s.GetGreenhouseByID(id); err != nil {
		return nil, err
	}

	updateMap := make(map[string]interface{})
	if updates.Name != nil {
		updateMap["name"] = *updates.Name
	}
	if updates.Location != nil {
		updateMap["location"] = *updates.Location
	}
	if updates.OwnerID != nil {
		if *updates.OwnerID == "" {
			updateMap["owner_id"] = nil
		} else {
			if _, err := UserSvc.GetUserByID(*updates.OwnerID); err != nil {
				return nil, err
			}
			updateMap["owner_id"] = *updates.OwnerID
		}
	}

	if len(updateMap) > 0 {
		if err := repositories.DBS.Postgres.Model(&models.Greenhouse{}).
			Where("id = ?", id).
			Updates(updateMap).Error; err != nil {
			return nil, apperrors.Wrap(err, "failed to update greenhouse")
		}
	}

	return s.GetGreenhouseByID(id)
}

// DeleteGreenhouse removes a greenhouse by id.
func (s *GreenhouseService) DeleteGreenhouse(id string) error {
	if _, err := s.GetGreenhouseByID(id); err != nil {
		return err
	}
	if err := repositories.DBS.Postgres.Delete(&models.Greenhouse{}, "id = ?", id).Error; err != nil {
		return apperrors.Wrap(err, "failed to delete greenhouse")
	}
	return nil
}

// Global instance of GreenhouseService
var GreenhouseSvc = NewGreenhouseService()
