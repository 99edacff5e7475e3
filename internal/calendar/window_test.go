package calendar

import "testing"

func TestDayWindow(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		offset  string
		wantMin string
		wantMax string
	}{
		{
			name:    "default offset",
			date:    "2024-01-01",
			offset:  "+05:30",
			wantMin: "2024-01-01T00:00:00+05:30",
			wantMax: "2024-01-01T23:59:59+05:30",
		},
		{
			name:    "negative offset",
			date:    "2024-02-29",
			offset:  "-04:00",
			wantMin: "2024-02-29T00:00:00-04:00",
			wantMax: "2024-02-29T23:59:59-04:00",
		},
		{
			name:    "malformed date passes through",
			date:    "not-a-date",
			offset:  "+05:30",
			wantMin: "not-a-dateT00:00:00+05:30",
			wantMax: "not-a-dateT23:59:59+05:30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := DayWindow(tt.date, tt.offset)
			if w.Date != tt.date {
				t.Errorf("expected date %q, got %q", tt.date, w.Date)
			}
			if w.TimeMin != tt.wantMin {
				t.Errorf("expected timeMin %q, got %q", tt.wantMin, w.TimeMin)
			}
			if w.TimeMax != tt.wantMax {
				t.Errorf("expected timeMax %q, got %q", tt.wantMax, w.TimeMax)
			}
		})
	}
}
