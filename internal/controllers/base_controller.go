package controllers

import (
	"net/http"

	"greenhouse-server/configs"
	apperrors "greenhouse-server/pkg/errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// renderError writes a service error as the JSON error envelope, mapping
// coded errors to their HTTP status. Internal errors are logged with their
// cause but reported to the client with a fixed message so driver and
// query details never leave the process.
func renderError(c echo.Context, err error) error {
	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) && appErr.Code() != apperrors.ErrInternal {
		return c.JSON(apperrors.ToHTTPStatus(appErr.Code()), map[string]string{"error": appErr.Message()})
	}

	if configs.Logger != nil {
		configs.Logger.Error("request failed",
			zap.String("path", c.Request().URL.Path),
			zap.Error(err),
		)
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

// appErrCode extracts the code from a coded error, or empty string.
func appErrCode(err error) string {
	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		return appErr.Code()
	}
	return ""
}

// deleteTargetID resolves the resource id for a DELETE request, taken from
// the path when present and otherwise from a {"id": "..."} body.
func deleteTargetID(c echo.Context) string {
	if id := c.Param("id"); id != "" {
		return id
	}

	var req struct {
		ID string `json:"id" form:"id"`
	}
	if err := c.Bind(&req); err != nil {
		return ""
	}
	return req.ID
}
