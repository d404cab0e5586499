// Package wire holds serialization helpers shared by the response DTOs.
package wire

import "time"

// TimeLayout is the timestamp format clients of the previous backend already
// parse: ISO-8601 with a space instead of the T separator. Kept for wire
// compatibility.
const TimeLayout = "2006-01-02 15:04:05.000 -07:00"

// FormatTime renders a timestamp in the wire layout, normalized to UTC.
// The zero time renders as the empty string so optional fields can be omitted.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(TimeLayout)
}
