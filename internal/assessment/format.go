package assessment

import (
	"fmt"
	"time"
)

// FormatDuration renders a duration in minutes as "45min", "2h" or "1h 30min".
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dmin", minutes)
	}
	hours := minutes / 60
	rest := minutes % 60
	if rest > 0 {
		return fmt.Sprintf("%dh %dmin", hours, rest)
	}
	return fmt.Sprintf("%dh", hours)
}

// FormatDate renders t as "Jan 2, 2006" in local time. Nil renders as "".
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Local().Format("Jan 2, 2006")
}
