package utils

import "time"

// TimestampLayout is the canonical UTC timestamp written for date-valued
// inputs: millisecond precision with a trailing Z.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
