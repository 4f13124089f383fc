package middlewares

import (
	"net/http"
	"strings"

	"greenhouse-server/internal/auth"

	"github.com/labstack/echo/v4"
)

// Context key set by JWTMiddleware.
const userIDKey = "user_id"

// JWTMiddleware extracts the Bearer token from the Authorization header,
// verifies the ES256 signature and the Redis revocation denylist, and
// stores the subject id on the context. Verification failures get a fixed
// message so the response never carries parser internals; an expired token
// is the one case distinguished for the client.
func JWTMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing authorization header"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid authorization header format"})
		}

		claims, err := auth.ParseAccessToken(parts[1])
		if err != nil {
			msg := "invalid token"
			if auth.IsAuthError(err, auth.ErrTokenExpired) {
				msg = "token has expired"
			}
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": msg})
		}

		if auth.IsTokenRevoked(c.Request().Context(), claims.JTI) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "token has been revoked"})
		}

		c.Set(userIDKey, claims.UserID)
		return next(c)
	}
}

// GetUserIDFromContext returns the user id set by JWTMiddleware.
func GetUserIDFromContext(c echo.Context) (string, error) {
	uid := c.Get(userIDKey)
	if uid == nil {
		return "", auth.NewAuthError(auth.ErrInvalidToken, "user id not found in context")
	}
	userID, ok := uid.(string)
	if !ok {
		return "", auth.NewAuthError(auth.ErrInvalidToken, "user id has invalid type")
	}
	return userID, nil
}
