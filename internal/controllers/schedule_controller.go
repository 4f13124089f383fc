package controllers

import (
	"net/http"
	"time"

	"greenhouse-server/internal/logics"
	"greenhouse-server/internal/middlewares"
	"greenhouse-server/internal/models"

	"github.com/labstack/echo/v4"
)

// ScheduleController handles HTTP requests for fertilizer schedules.
type ScheduleController struct {
	scheduleService *logics.ScheduleService
}

// NewScheduleController returns a new instance of ScheduleController.
func NewScheduleController(scheduleService *logics.ScheduleService) *ScheduleController {
	return &ScheduleController{scheduleService: scheduleService}
}

// CreateScheduleRequest is the payload for POST /api/schedules.
type CreateScheduleRequest struct {
	Description  string     `json:"description" form:"description"`
	StartDate    time.Time  `json:"start_date" form:"start_date"`
	EndDate      *time.Time `json:"end_date" form:"end_date"`
	Items        string     `json:"items" form:"items"`
	GreenhouseID string     `json:"greenhouse_id" form:"greenhouse_id"`
}

// ListSchedules handles GET /api/schedules
func (sc *ScheduleController) ListSchedules(c echo.Context) error {
	schedules, err := sc.scheduleService.ListSchedules()
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, schedules)
}

// ListMySchedules handles GET /api/schedules/mine. It projects the full
// schedule list down to the greenhouses the caller is assigned to.
func (sc *ScheduleController) ListMySchedules(c echo.Context) error {
	userID, err := middlewares.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
	}

	schedules, err := sc.scheduleService.ListSchedulesForUser(userID)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, schedules)
}

// GetSchedule handles GET /api/schedules/:id
func (sc *ScheduleController) GetSchedule(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "schedule id is required"})
	}

	schedule, err := sc.scheduleService.GetScheduleByID(id)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, schedule)
}

// CreateSchedule handles POST /api/schedules
func (sc *ScheduleController) CreateSchedule(c echo.Context) error {
	req := new(CreateScheduleRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if req.GreenhouseID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "greenhouse_id is required"})
	}

	callerID, _ := middlewares.GetUserIDFromContext(c)

	schedule, err := sc.scheduleService.CreateSchedule(logics.CreateScheduleInput{
		Description:  req.Description,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Items:        req.Items,
		GreenhouseID: req.GreenhouseID,
		CreatedByID:  callerID,
	})
	if err != nil {
		return renderError(c, err)
	}

	_ = logics.AuditLogSvc.AddLog(models.AuditLogTypeResourceCreated, map[string]string{"resource": "fertilizer_schedule", "id": schedule.ID}, auditActor(callerID))

	return c.JSON(http.StatusCreated, schedule)
}

// UpdateSchedule handles PUT /api/schedules and PUT /api/schedules/:id. The
// collection form carries the id in the body.
func (sc *ScheduleController) UpdateSchedule(c echo.Context) error {
	var req struct {
		ID string `json:"id"`
		models.FertilizerScheduleUpdate
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	id := c.Param("id")
	if id == "" {
		id = req.ID
	}
	if id == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "schedule id is required"})
	}

	schedule, err := sc.scheduleService.UpdateSchedule(id, req.FertilizerScheduleUpdate)
	if err != nil {
		return renderError(c, err)
	}

	callerID, _ := middlewares.GetUserIDFromContext(c)
	_ = logics.AuditLogSvc.AddLog(models.AuditLogTypeResourceUpdated, map[string]string{"resource": "fertilizer_schedule", "id": schedule.ID}, auditActor(callerID))

	return c.JSON(http.StatusOK, schedule)
}

// DeleteSchedule handles DELETE /api/schedules and DELETE /api/schedules/:id.
func (sc *ScheduleController) DeleteSchedule(c echo.Context) error {
	id := deleteTargetID(c)
	if id == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "schedule id is required"})
	}

	if err := sc.scheduleService.DeleteSchedule(id); err != nil {
		return renderError(c, err)
	}

	callerID, _ := middlewares.GetUserIDFromContext(c)
	_ = logics.AuditLogSvc.AddLog(models.AuditLogTypeResourceDeleted, map[string]string{"resource": "fertilizer_schedule", "id": id}, auditActor(callerID))

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
