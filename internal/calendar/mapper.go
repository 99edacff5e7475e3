package calendar

import (
	"google.golang.org/api/calendar/v3"
)

// DefaultSummary replaces an empty upstream summary.
const DefaultSummary = "No Title"

// EventSummary is the simplified projection of an upstream event.
type EventSummary struct {
	Summary string `json:"summary" yaml:"summary"`
	Start   string `json:"start" yaml:"start"`
	End     string `json:"end" yaml:"end"`
}

// MapEvent projects a Google Calendar event onto its summary, start and end.
func MapEvent(event *calendar.Event) EventSummary {
	summary := event.Summary
	if summary == "" {
		summary = DefaultSummary
	}

	return EventSummary{
		Summary: summary,
		Start:   eventTime(event.Start),
		End:     eventTime(event.End),
	}
}

// MapEvents projects events in order.
func MapEvents(events []*calendar.Event) []EventSummary {
	out := make([]EventSummary, 0, len(events))
	for _, event := range events {
		out = append(out, MapEvent(event))
	}
	return out
}

// eventTime prefers the timed value and falls back to the all-day date.
func eventTime(dt *calendar.EventDateTime) string {
	if dt == nil {
		return ""
	}
	if dt.DateTime != "" {
		return dt.DateTime
	}
	return dt.Date
}
