// Package availability answers "what is on the calendar on this date".
package availability

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/drewfead/calavail/internal/calendar"
)

// Result is either an empty-day Message or the Date with its Events.
type Result struct {
	Message string                  `json:"message,omitempty" yaml:"message,omitempty"`
	Date    string                  `json:"date,omitempty" yaml:"date,omitempty"`
	Events  []calendar.EventSummary `json:"events,omitempty" yaml:"events,omitempty"`
}

// Service checks a single calendar for the events of one day.
type Service struct {
	lister     calendar.EventLister
	calendarID string
	offset     string
}

// NewService creates a Service querying calendarID with day windows in the given UTC offset.
func NewService(lister calendar.EventLister, calendarID, offset string) *Service {
	return &Service{
		lister:     lister,
		calendarID: calendarID,
		offset:     offset,
	}
}

// NoEventsMessage is the message returned for a day without events.
func NoEventsMessage(date string) string {
	return fmt.Sprintf("✅ No events on %s", date)
}

// Check lists the events on date. The date is not validated here; a malformed
// value is rejected by the upstream API and returned as an error.
func (s *Service) Check(ctx context.Context, date string) (*Result, error) {
	window := calendar.DayWindow(date, s.offset)

	events, err := s.lister.ListDay(ctx, s.calendarID, window)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", date, err)
	}

	slog.Debug("availability checked", "date", date, "calendar_id", s.calendarID, "events", len(events))

	if len(events) == 0 {
		return &Result{Message: NoEventsMessage(date)}, nil
	}

	return &Result{
		Date:   date,
		Events: calendar.MapEvents(events),
	}, nil
}
