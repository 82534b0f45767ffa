package api

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is the generic API failure. Status 0 means the request never got a
// response (transport failure, DNS, refused connection).
type APIError struct {
	Status  int
	Message string
	Code    string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("api: network error: %s", e.Message)
	}
	if e.Code != "" {
		return fmt.Sprintf("api: %s (status=%d code=%s)", e.Message, e.Status, e.Code)
	}
	return fmt.Sprintf("api: %s (status=%d)", e.Message, e.Status)
}

type UnauthorizedError struct{ APIError }

type ForbiddenError struct{ APIError }

type NotFoundError struct{ APIError }

// newStatusError maps a non-2xx response onto the error taxonomy. 401, 403
// and 404 get dedicated types with fixed machine codes, everything else is a
// plain *APIError carrying whatever code the backend sent.
func newStatusError(status int, message, code string) error {
	switch status {
	case http.StatusUnauthorized:
		if message == "" {
			message = "Unauthorized access"
		}
		return &UnauthorizedError{APIError{Status: status, Message: message, Code: "UNAUTHORIZED"}}
	case http.StatusForbidden:
		if message == "" {
			message = "Access forbidden"
		}
		return &ForbiddenError{APIError{Status: status, Message: message, Code: "FORBIDDEN"}}
	case http.StatusNotFound:
		if message == "" {
			message = "Resource not found"
		}
		return &NotFoundError{APIError{Status: status, Message: message, Code: "NOT_FOUND"}}
	default:
		if message == "" {
			message = fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
		}
		return &APIError{Status: status, Message: message, Code: code}
	}
}

func networkError(err error) error {
	return &APIError{Status: 0, Message: err.Error()}
}

func IsUnauthorized(err error) bool {
	var e *UnauthorizedError
	return errors.As(err, &e)
}

func IsForbidden(err error) bool {
	var e *ForbiddenError
	return errors.As(err, &e)
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// StatusOf extracts the HTTP status from any error in the taxonomy, or -1 for
// errors that did not come from the API client.
func StatusOf(err error) int {
	var ue *UnauthorizedError
	if errors.As(err, &ue) {
		return ue.Status
	}
	var fe *ForbiddenError
	if errors.As(err, &fe) {
		return fe.Status
	}
	var ne *NotFoundError
	if errors.As(err, &ne) {
		return ne.Status
	}
	var ge *APIError
	if errors.As(err, &ge) {
		return ge.Status
	}
	return -1
}
