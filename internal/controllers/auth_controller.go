package controllers

import (
	"net/http"
	"strings"

	"greenhouse-server/internal/auth"
	"greenhouse-server/internal/logics"
	"greenhouse-server/internal/middlewares"
	"greenhouse-server/internal/models"

	"github.com/labstack/echo/v4"
)

// Request structs
type RegisterRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Response structs
type UserResponse struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  models.Role `json:"role"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

// RegisterHandler handles credential self-registration
// POST /auth/register
func RegisterHandler(c echo.Context) error {
	req := new(RegisterRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "email and password are required"})
	}
	if !strings.Contains(req.Email, "@") || !strings.Contains(req.Email, ".") {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "please enter a valid email address"})
	}
	if len(req.Password) < 8 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "password must be at least 8 characters"})
	}

	user, err := logics.UserSvc.RegisterUser(req.Name, req.Email, req.Password)
	if err != nil {
		return renderError(c, err)
	}

	_ = logics.AuditLogSvc.AddLog(models.AuditLogTypeUserRegistered, map[string]string{"email": user.Email}, &user.ID)

	return c.JSON(http.StatusCreated, UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	})
}

// LoginHandler handles login with email and password. A successful login
// binds the user to the server-side session and issues an access token.
// POST /auth/login
func LoginHandler(c echo.Context) error {
	req := new(LoginRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "email and password are required"})
	}

	user, err := logics.UserSvc.GetUserByEmail(strings.ToLower(req.Email))
	if err != nil || user.HashedPassword == "" || !auth.CheckPassword(user.HashedPassword, req.Password) {
		_ = logics.AuditLogSvc.AddLog(models.AuditLogTypeLoginFailed, map[string]string{"email": req.Email, "ip": c.RealIP()}, nil)
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid email or password"})
	}

	sess, err := middlewares.GetSessionFromContext(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "session error"})
	}
	sess.Values[middlewares.AuthUserKey] = user.ID
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to save session"})
	}

	accessToken, err := auth.GenerateAccessToken(user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to issue access token"})
	}

	_ = logics.AuditLogSvc.AddLog(models.AuditLogTypeLoginSuccess, map[string]string{"ip": c.RealIP()}, &user.ID)

	return c.JSON(http.StatusOK, LoginResponse{
		AccessToken: accessToken,
		User: UserResponse{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		},
	})
}

// LogoutHandler clears the session and revokes the presented access token.
// POST /auth/logout
func LogoutHandler(c echo.Context) error {
	sess, err := middlewares.GetSessionFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
	}

	userID, _ := sess.Values[middlewares.AuthUserKey].(string)

	// Revoke the bearer token when one accompanies the logout.
	authHeader := c.Request().Header.Get("Authorization")
	if parts := strings.Split(authHeader, " "); len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		if claims, err := auth.ParseAccessToken(parts[1]); err == nil {
			_ = auth.RevokeToken(c.Request().Context(), claims.JTI, claims.ExpiresAt)
		}
	}

	delete(sess.Values, middlewares.AuthUserKey)
	sess.Options.MaxAge = -1
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to clear session"})
	}

	if userID != "" {
		_ = logics.AuditLogSvc.AddLog(models.AuditLogTypeLogoutSuccess, map[string]string{"ip": c.RealIP()}, &userID)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

// MeHandler returns the currently authenticated user's information
// GET /auth/me
func MeHandler(c echo.Context) error {
	userID := middlewares.GetSessionUserID(c)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
	}

	user, err := logics.UserSvc.GetUserByID(userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load user"})
	}

	return c.JSON(http.StatusOK, UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	})
}
