package utils

import "time"

const dateKeyLayout = "2006-01-02"

// DateKey returns the YYYY-MM-DD calendar-day key for t in local time.
// Every record is keyed through this one derivation so late-night entries
// always land on the user's wall-clock day.
func DateKey(t time.Time) string {
	return t.In(time.Local).Format(dateKeyLayout)
}

// TodayKey is the DateKey for the current local day.
func TodayKey() string {
	return DateKey(time.Now())
}

// ParseDateKey parses a YYYY-MM-DD key back into a local midnight time.
func ParseDateKey(key string) (time.Time, error) {
	return time.ParseInLocation(dateKeyLayout, key, time.Local)
}
