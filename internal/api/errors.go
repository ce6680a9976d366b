package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorDetail is one entry of the platform's error list; Field is set for
// field-scoped validation errors.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// RequestError carries a parsed non-2xx response body.
type RequestError struct {
	StatusCode int           `json:"statusCode"`
	Code       string        `json:"error,omitempty"`
	Message    string        `json:"message"`
	Errors     []ErrorDetail `json:"errors,omitempty"`
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// TypeMismatchError reports a 2xx response whose body failed shape validation.
// Callers must never trust an unvalidated payload.
type TypeMismatchError struct {
	URL    string
	Reason error
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("api: response from %s has unexpected shape: %v", e.URL, e.Reason)
}

func (e *TypeMismatchError) Unwrap() error {
	return e.Reason
}

// IsNotFound reports whether err is a server 404.
func IsNotFound(err error) bool {
	var re *RequestError
	return errors.As(err, &re) && re.StatusCode == http.StatusNotFound
}

// IsConflict reports whether err is a stale-version rejection (409).
func IsConflict(err error) bool {
	var re *RequestError
	return errors.As(err, &re) && re.StatusCode == http.StatusConflict
}
