package controllers

import (
	"net/http"
	"time"

	"greenhouse-server/internal/logics"
	"greenhouse-server/internal/middlewares"
	"greenhouse-server/internal/models"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// InventoryLogController handles HTTP requests for stock-movement logs.
type InventoryLogController struct {
	inventoryLogService *logics.InventoryLogService
}

// NewInventoryLogController returns a new instance of InventoryLogController.
func NewInventoryLogController(inventoryLogService *logics.InventoryLogService) *InventoryLogController {
	return &InventoryLogController{inventoryLogService: inventoryLogService}
}

// CreateLogRequest is the payload for POST /api/inventory-logs.
type CreateLogRequest struct {
	GreenhouseID string          `json:"greenhouse_id" form:"greenhouse_id"`
	Action       string          `json:"action" form:"action"`
	Quantity     decimal.Decimal `json:"quantity" form:"quantity"`
	UserID       *string         `json:"user_id" form:"user_id"`
	Notes        string          `json:"notes" form:"notes"`
	Timestamp    *time.Time      `json:"timestamp" form:"timestamp"`
}

// ListLogs handles GET /api/inventory-logs
func (lc *InventoryLogController) ListLogs(c echo.Context) error {
	logs, err := lc.inventoryLogService.ListLogs()
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, logs)
}

// GetLog handles GET /api/inventory-logs/:id
func (lc *InventoryLogController) GetLog(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "log id is required"})
	}

	log, err := lc.inventoryLogService.GetLogByID(id)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, log)
}

// CreateLog handles POST /api/inventory-logs
func (lc *InventoryLogController) CreateLog(c echo.Context) error {
	req := new(CreateLogRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if req.GreenhouseID == "" || req.Action == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "greenhouse_id and action are required"})
	}

	log, err := lc.inventoryLogService.CreateLog(logics.CreateLogInput{
		GreenhouseID: req.GreenhouseID,
		Action:       req.Action,
		Quantity:     req.Quantity,
		UserID:       req.UserID,
		Notes:        req.Notes,
		Timestamp:    req.Timestamp,
	})
	if err != nil {
		return renderError(c, err)
	}

	callerID, _ := middlewares.GetUserIDFromContext(c)
	_ = logics.AuditLogSvc.AddLog(models.AuditLogTypeResourceCreated, map[string]string{"resource": "inventory_log", "id": log.ID}, auditActor(callerID))

	return c.JSON(http.StatusCreated, log)
}

// UpdateLog handles PUT /api/inventory-logs and PUT /api/inventory-logs/:id.
// The collection form carries the id in the body.
func (lc *InventoryLogController) UpdateLog(c echo.Context) error {
	var req struct {
		ID string `json:"id"`
		models.InventoryLogUpdate
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	id := c.Param("id")
	if id == "" {
		id = req.ID
	}
	if id == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "log id is required"})
	}

	log, err := lc.inventoryLogService.UpdateLog(id, req.InventoryLogUpdate)
	if err != nil {
		return renderError(c, err)
	}

	callerID, _ := middlewares.GetUserIDFromContext(c)
	_ = logics.AuditLogSvc.AddLog(models.AuditLogTypeResourceUpdated, map[string]string{"resource": "inventory_log", "id": log.ID}, auditActor(callerID))

	return c.JSON(http.StatusOK, log)
}

// DeleteLog handles DELETE /api/inventory-logs and DELETE /api/inventory-logs/:id.
func (lc *InventoryLogController) DeleteLog(c echo.Context) error {
	id := deleteTargetID(c)
	if id == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "log id is required"})
	}

	if err := lc.inventoryLogService.DeleteLog(id); err != nil {
		return renderError(c, err)
	}

	callerID, _ := middlewares.GetUserIDFromContext(c)
	_ = logics.AuditLogSvc.AddLog(models.AuditLogTypeResourceDeleted, map[string]string{"resource": "inventory_log", "id": id}, auditActor(callerID))

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
