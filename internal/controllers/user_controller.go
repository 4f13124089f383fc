package controllers

import (
	"net/http"

	"greenhouse-server/internal/logics"
	"greenhouse-server/internal/middlewares"
	"greenhouse-server/internal/models"

	"github.com/labstack/echo/v4"
)

// UserController handles HTTP requests for users.
type UserController struct {
	userService *logics.UserService
}

// NewUserController returns a new instance of UserController.
func NewUserController(userService *logics.UserService) *UserController {
	return &UserController{userService: userService}
}

// CreateUserRequest is the payload for POST /api/users.
type CreateUserRequest struct {
	Name     string      `json:"name" form:"name"`
	Email    string      `json:"email" form:"email"`
	Password string      `json:"password" form:"password"`
	Role     models.Role `json:"role" form:"role"`
}

// ListUsers handles GET /api/users. Unlike the other read endpoints this
// one requires a logged-in session, since the listing exposes emails and
// assignment details for every account.
func (uc *UserController) ListUsers(c echo.Context) error {
	if middlewares.GetSessionUserID(c) == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
	}

	users, err := uc.userService.ListUsers()
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser handles GET /api/users/:id requests.
func (uc *UserController) GetUser(c echo.Context) error {
	if middlewares.GetSessionUserID(c) == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
	}

	userID := c.Param("id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user id is required"})
	}

	user, err := uc.userService.GetUserByID(userID)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// CreateUser handles POST /api/users
func (uc *UserController) CreateUser(c echo.Context) error {
	req := new(CreateUserRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if req.Email == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "email is required"})
	}

	user, err := uc.userService.CreateUser(req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		return renderError(c, err)
	}

	callerID, _ := middlewares.GetUserIDFromContext(c)
	_ = logics.AuditLogSvc.AddLog(models.AuditLogTypeResourceCreated, map[string]string{"resource": "user", "id": user.ID}, auditActor(callerID))

	return c.JSON(http.StatusCreated, user)
}

// UpdateUser handles PUT /api/users and PUT /api/users/:id. The collection
// form carries the id in the body.
func (uc *UserController) UpdateUser(c echo.Context) error {
	var req struct {
		ID string `json:"id"`
		models.UserUpdate
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	userID := c.Param("id")
	if userID == "" {
		userID = req.ID
	}
	if userID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user id is required"})
	}

	user, err := uc.userService.UpdateUser(userID, req.UserUpdate)
	if err != nil {
		return renderError(c, err)
	}

	callerID, _ := middlewares.GetUserIDFromContext(c)
	_ = logics.AuditLogSvc.AddLog(models.AuditLogTypeResourceUpdated, map[string]string{"resource": "user", "id": user.ID}, auditActor(callerID))

	return c.JSON(http.StatusOK, user)
}

// DeleteUser handles DELETE /api/users and DELETE /api/users/:id.
func (uc *UserController) DeleteUser(c echo.Context) error {
	userID := deleteTargetID(c)
	if userID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user id is required"})
	}

	if err := uc.userService.DeleteUser(userID); err != nil {
		return renderError(c, err)
	}

	callerID, _ := middlewares.GetUserIDFromContext(c)
	_ = logics.AuditLogSvc.AddLog(models.AuditLogTypeResourceDeleted, map[string]string{"resource": "user", "id": userID}, auditActor(callerID))

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// auditActor converts a caller id to the optional audit log actor pointer.
func auditActor(callerID string) *string {
	if callerID == "" {
		return nil
	}
	return &callerID
}
