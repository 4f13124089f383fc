package errors

import (
	"net/http"
)

// ToHTTPStatus maps an error code to an HTTP status code.
func ToHTTPStatus(code string) int {
	switch code {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrInvalidArgument:
		return http.StatusBadRequest
	case ErrUnauthenticated:
		return http.StatusUnauthorized
	case ErrUnauthorized:
		return http.StatusForbidden
	case ErrConflict:
		return http.StatusConflict
	case ErrTimeout:
		return http.StatusGatewayTimeout
	case ErrNotImplemented:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
