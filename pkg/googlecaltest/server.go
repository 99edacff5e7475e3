// Package googlecaltest provides a fake Google Calendar API server for testing.
// It implements the read-only events.list endpoint of the Google Calendar API v3.
package googlecaltest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"google.golang.org/api/calendar/v3"
)

const dateLayout = "2006-01-02"

// Server is a fake Google Calendar API server for testing.
type Server struct {
	*httptest.Server
	mu      sync.RWMutex
	events  map[string][]*calendar.Event // calendarID -> events in insertion order
	nextID  int
	queries []url.Values
	failure *failure
}

type failure struct {
	code   int
	reason string
}

// NewServer creates a new fake Google Calendar API server.
func NewServer() *Server {
	s := &Server{
		events: make(map[string][]*calendar.Event),
		nextID: 1,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRequest)

	s.Server = httptest.NewServer(mux)
	return s
}

// handleRequest routes all requests.
func (s *Server) handleRequest(w http.ResponseWriter, r *http.Request) {
	// Parse URL: /calendar/v3/calendars/{calendarId}/events
	path := r.URL.EscapedPath()
	idx := strings.Index(path, "/calendars/")
	if idx == -1 {
		writeAPIError(w, http.StatusNotFound, "notFound", "unsupported endpoint")
		return
	}

	parts := strings.Split(strings.Trim(path[idx+len("/calendars/"):], "/"), "/")
	if len(parts) != 2 || parts[1] != "events" {
		writeAPIError(w, http.StatusNotFound, "notFound", "unsupported endpoint")
		return
	}
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "methodNotAllowed", "method not allowed")
		return
	}

	calendarID, err := url.PathUnescape(parts[0])
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "badRequest", "invalid calendar ID")
		return
	}

	s.listEvents(w, r, calendarID)
}

// listEvents handles GET /calendars/{calendarId}/events
func (s *Server) listEvents(w http.ResponseWriter, r *http.Request, calendarID string) {
	query := r.URL.Query()

	s.mu.Lock()
	s.queries = append(s.queries, query)
	fail := s.failure
	s.mu.Unlock()

	if fail != nil {
		writeAPIError(w, fail.code, fail.reason, http.StatusText(fail.code))
		return
	}

	loc := time.UTC
	var timeMin, timeMax time.Time
	if v := query.Get("timeMin"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeAPIError(w, http.StatusBadRequest, "badRequest", "Bad Request")
			return
		}
		timeMin = t
		loc = t.Location()
	}
	if v := query.Get("timeMax"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeAPIError(w, http.StatusBadRequest, "badRequest", "Bad Request")
			return
		}
		timeMax = t
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	calEvents, ok := s.events[calendarID]
	if !ok {
		writeAPIError(w, http.StatusNotFound, "notFound", "Not Found")
		return
	}

	// An event matches when it overlaps [timeMin, timeMax): it ends after
	// timeMin and starts before timeMax.
	var events []*calendar.Event
	for _, evt := range calEvents {
		start, end := eventBounds(evt, loc)
		if !timeMin.IsZero() && !end.After(timeMin) {
			continue
		}
		if !timeMax.IsZero() && !start.Before(timeMax) {
			continue
		}
		events = append(events, evt)
	}

	if query.Get("orderBy") == "startTime" && query.Get("singleEvents") == "true" {
		sort.SliceStable(events, func(i, j int) bool {
			si, _ := eventBounds(events[i], loc)
			sj, _ := eventBounds(events[j], loc)
			return si.Before(sj)
		})
	}

	// Simple pagination: token is the start index
	startIdx := 0
	if pageToken := query.Get("pageToken"); pageToken != "" {
		startIdx, _ = strconv.Atoi(pageToken)
	}
	if startIdx > len(events) {
		startIdx = len(events)
	}

	maxRes := len(events)
	if v := query.Get("maxResults"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxRes = n
		}
	}

	endIdx := startIdx + maxRes
	if endIdx > len(events) {
		endIdx = len(events)
	}

	resp := &calendar.Events{
		Kind:    "calendar#events",
		Summary: calendarID,
		Items:   events[startIdx:endIdx],
	}
	if endIdx < len(events) {
		resp.NextPageToken = strconv.Itoa(endIdx)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// eventBounds resolves an event's start and end. All-day dates are read as
// midnight in loc; a missing end collapses onto the start.
func eventBounds(evt *calendar.Event, loc *time.Location) (time.Time, time.Time) {
	start := parseEventTime(evt.Start, loc)
	end := parseEventTime(evt.End, loc)
	if end.IsZero() {
		end = start
	}
	return start, end
}

func parseEventTime(dt *calendar.EventDateTime, loc *time.Location) time.Time {
	if dt == nil {
		return time.Time{}
	}
	if dt.DateTime != "" {
		t, _ := time.Parse(time.RFC3339, dt.DateTime)
		return t
	}
	if dt.Date != "" {
		t, _ := time.ParseInLocation(dateLayout, dt.Date, loc)
		return t
	}
	return time.Time{}
}

// writeAPIError writes an error body shaped like the real API's, so the
// generated client surfaces it as a *googleapi.Error.
func writeAPIError(w http.ResponseWriter, code int, reason, message string) {
	body := map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": message,
			"errors": []map[string]string{
				{"domain": "global", "reason": reason, "message": message},
			},
		},
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

// AddCalendar registers an empty calendar so listing it succeeds with no events.
func (s *Server) AddCalendar(calendarID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[calendarID]; !ok {
		s.events[calendarID] = nil
	}
}

// AddEvent adds a pre-configured event to the server (for test setup).
// The calendar is created on first use.
func (s *Server) AddEvent(calendarID string, event *calendar.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if event.Id == "" {
		event.Id = fmt.Sprintf("event%d", s.nextID)
		s.nextID++
	}
	s.events[calendarID] = append(s.events[calendarID], event)
}

// FailWith makes every subsequent list request fail with the given status code
// and error reason. A zero code clears the failure.
func (s *Server) FailWith(code int, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if code == 0 {
		s.failure = nil
		return
	}
	s.failure = &failure{code: code, reason: reason}
}

// Queries returns the query parameters of every list request received so far.
func (s *Server) Queries() []url.Values {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]url.Values, len(s.queries))
	copy(out, s.queries)
	return out
}

// LastQuery returns the query parameters of the most recent list request, or nil.
func (s *Server) LastQuery() url.Values {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.queries) == 0 {
		return nil
	}
	return s.queries[len(s.queries)-1]
}

// Reset clears all calendars, recorded queries and injected failures.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = make(map[string][]*calendar.Event)
	s.nextID = 1
	s.queries = nil
	s.failure = nil
}
