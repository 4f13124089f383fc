package controllers

import (
	"net/http"
	"time"

	"greenhouse-server/internal/logics"
	"greenhouse-server/internal/middlewares"
	"greenhouse-server/internal/models"
	apperrors "greenhouse-server/pkg/errors"

	"github.com/labstack/echo/v4"
)

// AssignmentController handles HTTP requests for task assignments.
type AssignmentController struct {
	assignmentService *logics.AssignmentService
	userService       *logics.UserService
}

// NewAssignmentController returns a new instance of AssignmentController.
func NewAssignmentController(assignmentService *logics.AssignmentService, userService *logics.UserService) *AssignmentController {
	return &AssignmentController{
		assignmentService: assignmentService,
		userService:       userService,
	}
}

// CreateAssignmentRequest is the payload for POST /api/assignments.
type CreateAssignmentRequest struct {
	UserID       string                    `json:"user_id" form:"user_id"`
	GreenhouseID string                    `json:"greenhouse_id" form:"greenhouse_id"`
	Title        string                    `json:"title" form:"title"`
	Description  string                    `json:"description" form:"description"`
	Priority     models.AssignmentPriority `json:"priority" form:"priority"`
	Status       models.AssignmentStatus   `json:"status" form:"status"`
	DueDate      *time.Time                `json:"due_date" form:"due_date"`
	Notes        string                    `json:"notes" form:"notes"`
}

// ListAssignments handles GET /api/assignments
func (ac *AssignmentController) ListAssignments(c echo.Context) error {
	assignments, err := ac.assignmentService.ListAssignments()
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, assignments)
}

// GetAssignment handles GET /api/assignments/:id
func (ac *AssignmentController) GetAssignment(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "assignment id is required"})
	}

	assignment, err := ac.assignmentService.GetAssignmentByID(id)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, assignment)
}

// CreateAssignment handles POST /api/assignments
func (ac *AssignmentController) CreateAssignment(c echo.Context) error {
	req := new(CreateAssignmentRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if req.UserID == "" || req.GreenhouseID == "" || req.Title == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user_id, greenhouse_id and title are required"})
	}

	assignment, err := ac.assignmentService.CreateAssignment(logics.CreateAssignmentInput{
		UserID:       req.UserID,
		GreenhouseID: req.GreenhouseID,
		Title:        req.Title,
		Description:  req.Description,
		Priority:     req.Priority,
		Status:       req.Status,
		DueDate:      req.DueDate,
		Notes:        req.Notes,
	})
	if err != nil {
		return renderError(c, err)
	}

	callerID, _ := middlewares.GetUserIDFromContext(c)
	_ = logics.AuditLogSvc.AddLog(models.AuditLogTypeResourceCreated, map[string]string{"resource": "assignment", "id": assignment.ID}, auditActor(callerID))

	return c.JSON(http.StatusCreated, assignment)
}

// UpdateAssignment handles PUT /api/assignments and PUT /api/assignments/:id.
// The collection form carries the id in the body.
//
// Unlike the other mutating endpoints this one is open to non-admin
// callers, but only along a narrow path: the caller must be the task's
// assignee and the update may only touch status, completed_at and notes.
// Admins may update any field of any assignment. The caller's role is
// re-read from the database, never trusted from the token.
func (ac *AssignmentController) UpdateAssignment(c echo.Context) error {
	var req struct {
		ID string `json:"id"`
		models.AssignmentUpdate
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	updates := req.AssignmentUpdate

	id := c.Param("id")
	if id == "" {
		id = req.ID
	}
	if id == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "assignment id is required"})
	}

	callerID, err := middlewares.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
	}

	var assignment *models.Assignment
	if ac.userService.ResolveRole(callerID) == models.RoleAdmin {
		assignment, err = ac.assignmentService.UpdateAssignment(id, updates)
	} else {
		assignment, err = ac.assignmentService.UpdateOwnAssignment(id, callerID, updates)
	}
	if err != nil {
		if appErrCode(err) == apperrors.ErrUnauthorized {
			_ = logics.AuditLogSvc.AddLog(models.AuditLogTypeForbiddenAttempt, map[string]string{"resource": "assignment", "id": id}, auditActor(callerID))
		}
		return renderError(c, err)
	}

	_ = logics.AuditLogSvc.AddLog(models.AuditLogTypeResourceUpdated, map[string]string{"resource": "assignment", "id": assignment.ID}, auditActor(callerID))

	return c.JSON(http.StatusOK, assignment)
}

// DeleteAssignment handles DELETE /api/assignments and DELETE /api/assignments/:id.
func (ac *AssignmentController) DeleteAssignment(c echo.Context) error {
	id := deleteTargetID(c)
	if id == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "assignment id is required"})
	}

	if err := ac.assignmentService.DeleteAssignment(id); err != nil {
		return renderError(c, err)
	}

	callerID, _ := middlewares.GetUserIDFromContext(c)
	_ = logics.AuditLogSvc.AddLog(models.AuditLogTypeResourceDeleted, map[string]string{"resource": "assignment", "id": id}, auditActor(callerID))

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
