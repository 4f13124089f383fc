package controllers

import (
	"net/http"

	"greenhouse-server/internal/logics"
	"greenhouse-server/internal/middlewares"
	"greenhouse-server/internal/models"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// InventoryController handles HTTP requests for inventory items.
type InventoryController struct {
	inventoryService *logics.InventoryService
}

// NewInventoryController returns a new instance of InventoryController.
func NewInventoryController(inventoryService *logics.InventoryService) *InventoryController {
	return &InventoryController{inventoryService: inventoryService}
}

// CreateItemRequest is the payload for POST /api/inventory.
type CreateItemRequest struct {
	Name      string                   `json:"name" form:"name"`
	Type      models.InventoryItemType `json:"type" form:"type"`
	Quantity  decimal.Decimal          `json:"quantity" form:"quantity"`
	Unit      string                   `json:"unit" form:"unit"`
	Threshold decimal.Decimal          `json:"threshold" form:"threshold"`
}

// ListItems handles GET /api/inventory
func (ic *InventoryController) ListItems(c echo.Context) error {
	items, err := ic.inventoryService.ListItems()
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// ListLowStockItems handles GET /api/inventory/low-stock
func (ic *InventoryController) ListLowStockItems(c echo.Context) error {
	items, err := ic.inventoryService.ListLowStockItems()
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// GetItem handles GET /api/inventory/:id
func (ic *InventoryController) GetItem(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "item id is required"})
	}

	item, err := ic.inventoryService.GetItemByID(id)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// CreateItem handles POST /api/inventory
func (ic *InventoryController) CreateItem(c echo.Context) error {
	req := new(CreateItemRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}

	item, err := ic.inventoryService.CreateItem(logics.CreateItemInput{
		Name:      req.Name,
		Type:      req.Type,
		Quantity:  req.Quantity,
		Unit:      req.Unit,
		Threshold: req.Threshold,
	})
	if err != nil {
		return renderError(c, err)
	}

	callerID, _ := middlewares.GetUserIDFromContext(c)
	_ = logics.AuditLogSvc.AddLog(models.AuditLogTypeResourceCreated, map[string]string{"resource": "inventory_item", "id": item.ID}, auditActor(callerID))

	return c.JSON(http.StatusCreated, item)
}

// UpdateItem handles PUT /api/inventory and PUT /api/inventory/:id. The
// collection form carries the id in the body.
func (ic *InventoryController) UpdateItem(c echo.Context) error {
	var req struct {
		ID string `json:"id"`
		models.InventoryItemUpdate
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	id := c.Param("id")
	if id == "" {
		id = req.ID
	}
	if id == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "item id is required"})
	}

	item, err := ic.inventoryService.UpdateItem(id, req.InventoryItemUpdate)
	if err != nil {
		return renderError(c, err)
	}

	callerID, _ := middlewares.GetUserIDFromContext(c)
	_ = logics.AuditLogSvc.AddLog(models.AuditLogTypeResourceUpdated, map[string]string{"resource": "inventory_item", "id": item.ID}, auditActor(callerID))

	return c.JSON(http.StatusOK, item)
}

// DeleteItem handles DELETE /api/inventory and DELETE /api/inventory/:id.
func (ic *InventoryController) DeleteItem(c echo.Context) error {
	id := deleteTargetID(c)
	if id == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "item id is required"})
	}

	if err := ic.inventoryService.DeleteItem(id); err != nil {
		return renderError(c, err)
	}

	callerID, _ := middlewares.GetUserIDFromContext(c)
	_ = logics.AuditLogSvc.AddLog(models.AuditLogTypeResourceDeleted, map[string]string{"resource": "inventory_item", "id": id}, auditActor(callerID))

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
