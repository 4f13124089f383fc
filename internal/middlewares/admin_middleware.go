package middlewares

import (
	"net/http"

	"greenhouse-server/internal/models"
	"greenhouse-server/internal/repositories"

	"github.com/labstack/echo/v4"
)

// AdminMiddleware gates mutating endpoints to ADMIN users. It must be
// chained after JWTMiddleware. The role is re-derived per request with a
// point lookup on the user table; a missing row or a lookup failure is
// treated as non-admin, never the other way around.
func AdminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := GetUserIDFromContext(c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		}

		var user models.User
		if err := repositories.DBS.Postgres.First(&user, "id = ?", userID).Error; err != nil {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Forbidden"})
		}

		if user.Role != models.RoleAdmin {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Forbidden"})
		}

		return next(c)
	}
}
