package project

import (
	"fmt"
	"time"
)

// FormatTime renders the digital time string, honoring the 12-hour
// display flag.
func FormatTime(t time.Time, hour12 bool) string {
	if hour12 {
		return t.Format("03:04:05 PM")
	}
	return t.Format("15:04:05")
}

// FormatDate renders the date line shown under the time (weekday,
// month, day).
func FormatDate(t time.Time) string {
	return t.Format("Mon, Jan 02")
}

// FormatOffset renders the UTC±HH label from a raw offset in minutes.
// The raw sign is kept: zones ahead of UTC show a minus. Fractional
// hours truncate toward zero, so the label stays hours-only.
func FormatOffset(offsetMinutes int) string {
	return fmt.Sprintf("UTC%+03d", offsetMinutes/60)
}
