package format

import (
	"fmt"
	"time"
)

var durationUnits = [...]string{"s", "min", "h"}

// FormatDuration renders a number of seconds as an integer count of the largest
// fitting unit among seconds, minutes and hours. Hours are never promoted to
// days, so a full day is "24 h". Remainders are truncated.
//
// Parameters:
//   - seconds: The duration in whole seconds.
//
// Returns:
//   - string: The formatted duration, e.g. "3 min".
func FormatDuration(seconds uint64) string {
	v := seconds
	unit := 0
	for v >= 60 && unit < len(durationUnits)-1 {
		v /= 60
		unit++
	}
	return fmt.Sprintf("%d %s", v, durationUnits[unit])
}

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and the default string representation otherwise.
// The dashboard uses it for the sampling latency of the last tick.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}
