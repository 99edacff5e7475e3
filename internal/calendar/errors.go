package calendar

import (
	"context"
	"errors"
	"net/http"

	"google.golang.org/api/googleapi"
)

// Classification labels an upstream failure for logs.
type Classification string

const (
	ClassUnauthorized Classification = "unauthorized"
	ClassForbidden    Classification = "forbidden"
	ClassNotFound     Classification = "not_found"
	ClassBadRequest   Classification = "bad_request"
	ClassRateLimited  Classification = "rate_limited"
	ClassUpstream     Classification = "upstream_error"
	ClassCanceled     Classification = "canceled"
	ClassOther        Classification = "other"
)

// Calendar reports quota exhaustion as 403 with one of these reasons.
var rateLimitReasons = map[string]bool{
	"rateLimitExceeded":     true,
	"userRateLimitExceeded": true,
	"quotaExceeded":         true,
}

func apiError(err error) (*googleapi.Error, bool) {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr, true
	}
	return nil, false
}

// IsUnauthorized returns true if the error indicates invalid credentials.
func IsUnauthorized(err error) bool {
	gerr, ok := apiError(err)
	return ok && gerr.Code == http.StatusUnauthorized
}

// IsForbidden returns true if the error indicates insufficient permissions.
func IsForbidden(err error) bool {
	gerr, ok := apiError(err)
	return ok && gerr.Code == http.StatusForbidden && !IsRateLimited(err)
}

// IsNotFound returns true if the calendar does not exist or is not shared with the caller.
func IsNotFound(err error) bool {
	gerr, ok := apiError(err)
	return ok && gerr.Code == http.StatusNotFound
}

// IsRateLimited returns true if the error indicates rate limiting or quota exhaustion.
func IsRateLimited(err error) bool {
	gerr, ok := apiError(err)
	if !ok {
		return false
	}
	if gerr.Code == http.StatusTooManyRequests {
		return true
	}
	if gerr.Code != http.StatusForbidden {
		return false
	}
	for _, item := range gerr.Errors {
		if rateLimitReasons[item.Reason] {
			return true
		}
	}
	return false
}

// Classify labels err for logging.
func Classify(err error) Classification {
	if err == nil {
		return ""
	}
	switch {
	case IsRateLimited(err):
		return ClassRateLimited
	case IsUnauthorized(err):
		return ClassUnauthorized
	case IsForbidden(err):
		return ClassForbidden
	case IsNotFound(err):
		return ClassNotFound
	}
	if gerr, ok := apiError(err); ok {
		if gerr.Code == http.StatusBadRequest {
			return ClassBadRequest
		}
		return ClassUpstream
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ClassCanceled
	}
	return ClassOther
}
