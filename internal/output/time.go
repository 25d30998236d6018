package output

import (
	"fmt"
	"time"
)

// TimeFormat is the canonical timestamp layout for file names and logs.
const TimeFormat = "2006-01-02T15:04:05Z07:00"

// Timestamp returns the current UTC time truncated to seconds, so repeated
// calls within a request serialize identically.
func Timestamp() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// FormatElapsed renders a duration for human output. Sub-second durations
// show milliseconds, longer ones show seconds with one decimal.
func FormatElapsed(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
