package middlewares

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

// sessionKeyContext is the context key the session is stored under.
const sessionKeyContext = "session_data"

// AuthUserKey is the session value holding the logged-in user's id.
const AuthUserKey = "auth_user"

// SessionMiddleware loads the request session into the echo context.
// A broken session resets the client's session cookie.
func SessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := session.Get("session", c)
		if err != nil {
			resetSessionCookie(c)
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "session error, please log in again"})
		}

		c.Set(sessionKeyContext, sess)
		return next(c)
	}
}

// resetSessionCookie expires the client's session cookie.
func resetSessionCookie(c echo.Context) {
	cookie := new(http.Cookie)
	cookie.Name = "session"
	cookie.Value = ""
	cookie.Path = "/"
	cookie.MaxAge = -1
	cookie.HttpOnly = true
	c.SetCookie(cookie)
}

// GetSessionFromContext returns the session stored by SessionMiddleware.
func GetSessionFromContext(c echo.Context) (*sessions.Session, error) {
	sessionData := c.Get(sessionKeyContext)
	if sessionData == nil {
		sess, err := session.Get("session", c)
		if err != nil {
			return nil, err
		}
		return sess, nil
	}

	sess, ok := sessionData.(*sessions.Session)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "invalid session type")
	}

	return sess, nil
}

// GetSessionUserID returns the authenticated user's id from the session,
// or an empty string when the session is anonymous.
func GetSessionUserID(c echo.Context) string {
	sess, err := GetSessionFromContext(c)
	if err != nil {
		return ""
	}
	userID, _ := sess.Values[AuthUserKey].(string)
	return userID
}
