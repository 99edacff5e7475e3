package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"google.golang.org/api/googleapi"
)

func apiErr(code int, reason string) error {
	gerr := &googleapi.Error{Code: code, Message: http.StatusText(code)}
	if reason != "" {
		gerr.Errors = []googleapi.ErrorItem{{Reason: reason, Message: reason}}
	}
	return fmt.Errorf("unable to retrieve events: %w", gerr)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Classification
	}{
		{name: "nil", err: nil, want: ""},
		{name: "unauthorized", err: apiErr(http.StatusUnauthorized, "authError"), want: ClassUnauthorized},
		{name: "forbidden", err: apiErr(http.StatusForbidden, "forbidden"), want: ClassForbidden},
		{name: "quota as 403", err: apiErr(http.StatusForbidden, "rateLimitExceeded"), want: ClassRateLimited},
		{name: "too many requests", err: apiErr(http.StatusTooManyRequests, ""), want: ClassRateLimited},
		{name: "not found", err: apiErr(http.StatusNotFound, "notFound"), want: ClassNotFound},
		{name: "bad request", err: apiErr(http.StatusBadRequest, "badRequest"), want: ClassBadRequest},
		{name: "server error", err: apiErr(http.StatusServiceUnavailable, "backendError"), want: ClassUpstream},
		{name: "canceled", err: fmt.Errorf("list: %w", context.Canceled), want: ClassCanceled},
		{name: "network", err: errors.New("dial tcp: connection refused"), want: ClassOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestIsForbidden_ExcludesRateLimits(t *testing.T) {
	if IsForbidden(apiErr(http.StatusForbidden, "userRateLimitExceeded")) {
		t.Error("expected a rate-limit 403 not to count as forbidden")
	}
	if !IsRateLimited(apiErr(http.StatusForbidden, "quotaExceeded")) {
		t.Error("expected quotaExceeded to count as rate limited")
	}
	if IsRateLimited(errors.New("plain")) {
		t.Error("expected a non-API error not to count as rate limited")
	}
}
