package logics

import (
	"greenhouse-server/internal/models"
	"greenhouse-server/internal/repositories"
	"greenhouse-server/internal/utils"
	apperrors "greenhouse-server/pkg/errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryService handles inventory item business logic. Items live in
// a shared pool rather than belonging to a greenhouse.
type InventoryService struct{}

// NewInventoryService creates a new instance of InventoryService
func NewInventoryService() *InventoryService {
	return &InventoryService{}
}

// ListItems returns all inventory items.
func (s *InventoryService) ListItems() ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := repositories.DBS.Postgres.Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(err, "failed to list inventory items")
	}
	return items, nil
}

// ListLowStockItems returns items whose quantity has fallen to or below
// their threshold.
func (s *InventoryService) ListLowStockItems() ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := repositories.DBS.Postgres.
		Where("quantity <= threshold").
		Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(err, "failed to list low-stock items")
	}
	return items, nil
}

// GetItemByID retrieves an inventory item by id.
func (s *InventoryService) GetItemByID(id string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := repositories.DBS.Postgres.First(&item, "id = ?", id).Error; err != nil {
		if apperrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrNotFound, "inventory item not found", err)
		}
		return nil, apperrors.Wrap(err, "failed to load inventory item")
	}
	return &item, nil
}

// CreateItemInput carries the fields accepted when creating an item.
type CreateItemInput struct {
	Name      string
	Type      models.InventoryItemType
	Quantity  decimal.Decimal
	Unit      string
	Threshold decimal.Decimal
}

// CreateItem creates an inventory item record.
func (s *InventoryService) CreateItem(input CreateItemInput) (*models.InventoryItem, error) {
	if input.Name == "" {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidArgument, "name is required", nil)
	}

	id, err := utils.GenerateUniqueID("I")
	if err != nil {
		return nil, err
	}

	item := models.InventoryItem{
		ID:        id,
		Name:      input.Name,
		Type:      input.Type,
		Quantity:  input.Quantity,
		Unit:      input.Unit,
		Threshold: input.Threshold,
	}
	if err := repositories.DBS.Postgres.Create(&item).Error; err != nil {
		return nil, apperrors.Wrap(err, "failed to create inventory item")
	}

	return s.GetItemByID(item.ID)
}

// UpdateItem applies a partial update and returns the fresh record.
func (s *InventoryService) UpdateItem(id string, updates models.InventoryItemUpdate) (*models.InventoryItem, error) {
	if _, err := s.GetItemByID(id); err != nil {
		return nil, err
	}

	updateMap := make(map[string]interface{})
	if updates.Name != nil {
		updateMap["name"] = *updates.Name
	}
	if updates.Type != nil {
		updateMap["type"] = *updates.Type
	}
	if updates.Quantity != nil {
		updateMap["quantity"] = *updates.Quantity
	}
	if updates.Unit != nil {
		updateMap["unit"] = *updates.Unit
	}
	if updates.Threshold != nil {
		updateMap["threshold"] = *updates.Threshold
	}

	if len(updateMap) > 0 {
		if err := repositories.DBS.Postgres.Model(&models.InventoryItem{}).
			Where("id = ?", id).
			Updates(updateMap).Error; err != nil {
			return nil, apperrors.Wrap(err, "failed to update inventory item")
		}
	}

	return s.GetItemByID(id)
}

// DeleteItem removes an inventory item by id.
func (s *InventoryService) DeleteItem(id string) error {
	if _, err := s.GetItemByID(id); err != nil {
		return err
	}
	if err := repositories.DBS.Postgres.Delete(&models.InventoryItem{}, "id = ?", id).Error; err != nil {
		return apperrors.Wrap(err, "failed to delete inventory item")
	}
	return nil
}

// Global instance of InventoryService
var InventorySvc = NewInventoryService()
