package meeting

import (
	"strconv"
	"strings"
	"time"
)

const day = 24 * time.Hour

// FormatDuration renders d coarsely in days, hours and minutes, e.g. "1d 3h",
// "2h 15m" or "30m". Seconds are truncated, zero components are omitted and
// anything under a minute is "0m". Negative durations are formatted by their
// absolute value.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	d = d.Truncate(time.Minute)
	if d == 0 {
		return "0m"
	}

	days := d / day
	d -= days * day
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute

	parts := make([]string, 0, 3)
	if days > 0 {
		parts = append(parts, strconv.FormatInt(int64(days), 10)+"d")
	}
	if hours > 0 {
		parts = append(parts, strconv.FormatInt(int64(hours), 10)+"h")
	}
	if minutes > 0 {
		parts = append(parts, strconv.FormatInt(int64(minutes), 10)+"m")
	}
	return strings.Join(parts, " ")
}
