// Package googlecaltest provides a fake Google Calendar API server for testing.
//
// The fake implements the read-only events.list endpoint of the Google Calendar
// API v3, allowing tests to run without authentication or network access.
//
// # Supported Operations
//
//   - List Events: GET /calendars/{calendarId}/events (time window, sorting, pagination)
//
// Listing a calendar that was never registered returns 404, as the real API
// does for calendars not shared with the caller.
//
// # Basic Usage
//
//	// Create fake server
//	server := googlecaltest.NewServer()
//	defer server.Close()
//
//	// Create Google Calendar client pointing to the fake
//	ctx := context.Background()
//	svc, err := calendar.NewService(ctx,
//	    option.WithHTTPClient(&http.Client{}),
//	    option.WithEndpoint(server.URL))
//
//	// Pre-populate an all-day event
//	server.AddEvent("primary", &calendar.Event{
//	    Summary: "Holiday",
//	    Start:   &calendar.EventDateTime{Date: "2024-01-01"},
//	    End:     &calendar.EventDateTime{Date: "2024-01-02"},
//	})
//
//	events, err := svc.Events.List("primary").
//	    TimeMin("2024-01-01T00:00:00+05:30").
//	    TimeMax("2024-01-01T23:59:59+05:30").
//	    Do()
//
// # Test Helpers
//
//	server.AddCalendar("empty")               // calendar with no events
//	server.FailWith(http.StatusTooManyRequests, "rateLimitExceeded")
//	q := server.LastQuery()                   // inspect timeMin, orderBy, ...
//	server.Reset()                            // clear everything between tests
//
// # Features
//
//   - Thread-safe: Uses mutex for concurrent access
//   - Time filtering: timeMin/timeMax must be RFC3339 (400 otherwise); events
//     overlapping the window are returned, all-day dates read in timeMin's offset
//   - Sorting: Supports orderBy=startTime with singleEvents=true
//   - Pagination: Supports maxResults and pageToken query parameters
//   - Errors: bodies shaped like the real API, surfaced as *googleapi.Error
package googlecaltest
