package calendar_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/drewfead/calavail/internal/calendar"
	"github.com/drewfead/calavail/pkg/googlecaltest"
	gcalendar "google.golang.org/api/calendar/v3"
)

func newTestClient(t *testing.T, server *googlecaltest.Server, opts ...calendar.Option) *calendar.Client {
	t.Helper()

	opts = append([]calendar.Option{calendar.WithEndpoint(server.URL)}, opts...)
	client, err := calendar.NewClient(context.Background(), &http.Client{}, opts...)
	if err != nil {
		t.Fatalf("failed to create calendar client: %v", err)
	}
	return client
}

func TestClient_ListDay(t *testing.T) {
	server := googlecaltest.NewServer()
	defer server.Close()

	const calendarID = "team@group.calendar.google.com"
	server.AddEvent(calendarID, &gcalendar.Event{
		Summary: "Lunch",
		Start:   &gcalendar.EventDateTime{DateTime: "2024-01-01T13:00:00+05:30"},
		End:     &gcalendar.EventDateTime{DateTime: "2024-01-01T14:00:00+05:30"},
	})
	server.AddEvent(calendarID, &gcalendar.Event{
		Summary: "Holiday",
		Start:   &gcalendar.EventDateTime{Date: "2024-01-01"},
		End:     &gcalendar.EventDateTime{Date: "2024-01-02"},
	})
	server.AddEvent(calendarID, &gcalendar.Event{
		Summary: "Tomorrow",
		Start:   &gcalendar.EventDateTime{DateTime: "2024-01-02T10:00:00+05:30"},
		End:     &gcalendar.EventDateTime{DateTime: "2024-01-02T11:00:00+05:30"},
	})

	client := newTestClient(t, server)

	events, err := client.ListDay(context.Background(), calendarID, calendar.DayWindow("2024-01-01", "+05:30"))
	if err != nil {
		t.Fatalf("ListDay failed: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Summary != "Holiday" || events[1].Summary != "Lunch" {
		t.Errorf("expected [Holiday Lunch] in start order, got [%s %s]", events[0].Summary, events[1].Summary)
	}

	q := server.LastQuery()
	checks := map[string]string{
		"timeMin":      "2024-01-01T00:00:00+05:30",
		"timeMax":      "2024-01-01T23:59:59+05:30",
		"singleEvents": "true",
		"orderBy":      "startTime",
	}
	for key, want := range checks {
		if got := q.Get(key); got != want {
			t.Errorf("expected %s=%q, got %q", key, want, got)
		}
	}
	if q.Get("pageToken") != "" {
		t.Errorf("expected a single page request, got pageToken %q", q.Get("pageToken"))
	}
}

func TestClient_ListDay_UpstreamError(t *testing.T) {
	server := googlecaltest.NewServer()
	defer server.Close()
	server.AddCalendar("primary")

	client := newTestClient(t, server)

	_, err := client.ListDay(context.Background(), "primary", calendar.DayWindow("not-a-date", "+05:30"))
	if err == nil {
		t.Fatal("expected error for malformed date")
	}
	if got := calendar.Classify(err); got != calendar.ClassBadRequest {
		t.Errorf("expected classification %q, got %q", calendar.ClassBadRequest, got)
	}

	server.FailWith(http.StatusUnauthorized, "authError")
	_, err = client.ListDay(context.Background(), "primary", calendar.DayWindow("2024-01-01", "+05:30"))
	if !calendar.IsUnauthorized(err) {
		t.Errorf("expected unauthorized error, got %v", err)
	}
}

func TestClient_ListDay_RateLimitHonoursContext(t *testing.T) {
	server := googlecaltest.NewServer()
	defer server.Close()
	server.AddCalendar("primary")

	// One request per hour: the first call drains the bucket.
	client := newTestClient(t, server, calendar.WithRateLimit(1.0/3600, 1))
	window := calendar.DayWindow("2024-01-01", "+05:30")

	if _, err := client.ListDay(context.Background(), "primary", window); err != nil {
		t.Fatalf("first call should pass the limiter: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.ListDay(ctx, "primary", window)
	if err == nil {
		t.Fatal("expected the second call to be held back by the limiter")
	}
	if len(server.Queries()) != 1 {
		t.Errorf("expected 1 upstream request, got %d", len(server.Queries()))
	}
	if errors.Is(err, context.Canceled) {
		t.Errorf("expected a limiter error rather than cancellation, got %v", err)
	}
}
