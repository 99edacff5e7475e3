package calendar

const (
	startOfDay = "T00:00:00"
	endOfDay   = "T23:59:59"
)

// Window bounds one calendar day as RFC3339 strings in a fixed UTC offset.
type Window struct {
	Date    string
	TimeMin string
	TimeMax string
}

// DayWindow builds the window for date by plain concatenation. The date is not
// parsed, so a malformed value reaches the API untouched and fails there.
func DayWindow(date, offset string) Window {
	return Window{
		Date:    date,
		TimeMin: date + startOfDay + offset,
		TimeMax: date + endOfDay + offset,
	}
}
