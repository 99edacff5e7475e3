package main

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/drewfead/calavail/internal/config"
)

// loadTestConfig loads the configuration for integration tests
func loadTestConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg, err := config.Load(config.FindConfigFile())
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if v := os.Getenv("CALAVAIL_CALENDAR_ID"); v != "" {
		cfg.CalendarID = v
	}

	return cfg
}

// TestIntegration_GoogleCalendarAPI checks a real calendar through the Google Calendar API.
// It is skipped unless CALAVAIL_INTEGRATION=1 because it needs credentials.
//
// To run this test:
// 1. Put a service account key at ~/.config/calavail/service-account.json
// 2. Share the target calendar with the service account's client_email
// 3. Run: CALAVAIL_INTEGRATION=1 CALAVAIL_CALENDAR_ID=<id> go test -v -run TestIntegration_GoogleCalendarAPI
func TestIntegration_GoogleCalendarAPI(t *testing.T) {
	if os.Getenv("CALAVAIL_INTEGRATION") != "1" {
		t.Skip("requires Google Calendar credentials; set CALAVAIL_INTEGRATION=1 to run")
	}

	ctx := context.Background()
	cfg := loadTestConfig(t)

	svc, err := newAvailabilityService(ctx, cfg)
	if err != nil {
		t.Fatalf("failed to build availability service: %v", err)
	}

	tests := []struct {
		name    string
		date    string
		wantErr bool
	}{
		{name: "today", date: time.Now().Format("2006-01-02")},
		{name: "new year", date: "2024-01-01"},
		{name: "malformed date", date: "not-a-date", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Check(ctx, tt.date)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Check() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if res.Message != "" {
				t.Logf("✓ %s", res.Message)
				return
			}
			for _, e := range res.Events {
				if e.Summary == "" || e.Start == "" || e.End == "" {
					t.Errorf("incomplete projection: %+v", e)
				}
				t.Logf("  %s  %s -> %s", e.Summary, e.Start, e.End)
			}
		})
	}
}
