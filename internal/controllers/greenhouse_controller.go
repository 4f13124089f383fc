package controllers

import (
	"net/http"

	"greenhouse-server/internal/logics"
	"greenhouse-server/internal/middlewares"
	"greenhouse-server/internal/models"

	"github.com/labstack/echo/v4"
)

// GreenhouseController handles HTTP requests for greenhouses.
type GreenhouseController struct {
	greenhouseService *logics.GreenhouseService
}

// NewGreenhouseController returns a new instance of GreenhouseController.
func NewGreenhouseController(greenhouseService *logics.GreenhouseService) *GreenhouseController {
	return &GreenhouseController{greenhouseService: greenhouseService}
}

// CreateGreenhouseRequest is the payload for POST /api/greenhouses.
type CreateGreenhouseRequest struct {
	Name     string  `json:"name" form:"name"`
	Location string  `json:"location" form:"location"`
	OwnerID  *string `json:"owner_id" form:"owner_id"`
}

// ListGreenhouses handles GET /api/greenhouses
func (gc *GreenhouseController) ListGreenhouses(c echo.Context) error {
	greenhouses, err := gc.greenhouseService.ListGreenhouses()
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, greenhouses)
}

// GetGreenhouse handles GET /api/greenhouses/:id
func (gc *GreenhouseController) GetGreenhouse(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "greenhouse id is required"})
	}

	greenhouse, err := gc.greenhouseService.GetGreenhouseByID(id)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, greenhouse)
}

// CreateGreenhouse handles POST /api/greenhouses
func (gc *GreenhouseController) CreateGreenhouse(c echo.Context) error {
	req := new(CreateGreenhouseRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}

	greenhouse, err := gc.greenhouseService.CreateGreenhouse(req.Name, req.Location, req.OwnerID)
	if err != nil {
		return renderError(c, err)
	}

	callerID, _ := middlewares.GetUserIDFromContext(c)
	_ = logics.AuditLogSvc.AddLog(models.AuditLogTypeResourceCreated, map[string]string{"resource": "greenhouse", "id": greenhouse.ID}, auditActor(callerID))

	return c.JSON(http.StatusCreated, greenhouse)
}

// UpdateGreenhouse handles PUT /api/greenhouses and PUT /api/greenhouses/:id.
// The collection form carries the id in the body.
func (gc *GreenhouseController) UpdateGreenhouse(c echo.Context) error {
	var req struct {
		ID string `json:"id"`
		models.GreenhouseUpdate
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	id := c.Param("id")
	if id == "" {
		id = req.ID
	}
	if id == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "greenhouse id is required"})
	}

	greenhouse, err := gc.greenhouseService.UpdateGreenhouse(id, req.GreenhouseUpdate)
	if err != nil {
		return renderError(c, err)
	}

	callerID, _ := middlewares.GetUserIDFromContext(c)
	_ = logics.AuditLogSvc.AddLog(models.AuditLogTypeResourceUpdated, map[string]string{"resource": "greenhouse", "id": greenhouse.ID}, auditActor(callerID))

	return c.JSON(http.StatusOK, greenhouse)
}

// DeleteGreenhouse handles DELETE /api/greenhouses and DELETE /api/greenhouses/:id.
func (gc *GreenhouseController) DeleteGreenhouse(c echo.Context) error {
	id := deleteTargetID(c)
	if id == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "greenhouse id is required"})
	}

	if err := gc.greenhouseService.DeleteGreenhouse(id); err != nil {
		return renderError(c, err)
	}

	callerID, _ := middlewares.GetUserIDFromContext(c)
	_ = logics.AuditLogSvc.AddLog(models.AuditLogTypeResourceDeleted, map[string]string{"resource": "greenhouse", "id": id}, auditActor(callerID))

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
