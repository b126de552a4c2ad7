package readup

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("readup api: %s (status %d)", e.Message, e.Status)
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsConflict reports whether err is a 409/422 validation conflict, e.g. a
// duplicate-name rejection during promotion.
func IsConflict(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusConflict || apiErr.Status == http.StatusUnprocessableEntity
}

// IsRateLimited reports whether err is a 429, or carries a rate-limit
// keyword in its message. Some upstream scrapers surface limits as plain
// 500s with explanatory text, so the status check alone is not enough.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Status == http.StatusTooManyRequests {
		return true
	}
	msg := strings.ToLower(apiErr.Message)
	return strings.Contains(msg, "rate limit") || strings.Contains(msg, "too many requests")
}
