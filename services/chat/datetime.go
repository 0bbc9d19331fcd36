package chat

import (
	"strings"
	"time"
)

// dateTimeLayouts are tried in order against the combined "day time" string.
var dateTimeLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:4",
	"2006-01-02",
	"02/01/2006 15:04",
	"2/1/2006 15:4",
	"2/1/2006",
	"02-01-2006 15:04",
	"02-01-2006",
	"2006/01/02 15:04",
	"2006/01/02",
	"2006-01-02T15:04",
}

var timeOfDayLayouts = []string{"15:04", "15:4", "15"}

// ParseDateTime resolves the draft's free-text day and time into a concrete
// timestamp. Exact layouts are tried first, then a relative-keyword fallback
// ("hoy"/"today", "mañana"/"tomorrow") combined with a parsed time-of-day.
// The zero time.Time is the unparsed sentinel: callers display the raw
// strings instead of failing the turn.
func ParseDateTime(day, timeStr string) time.Time {
	day = strings.TrimSpace(day)
	timeStr = strings.TrimSpace(timeStr)
	if day == "" && timeStr == "" {
		return time.Time{}
	}

	combined := day
	if timeStr != "" {
		if combined == "" {
			combined = timeStr
		} else {
			combined = day + " " + timeStr
		}
	}

	for _, layout := range dateTimeLayouts {
		if dt, err := time.ParseInLocation(layout, combined, time.Local); err == nil {
			return dt
		}
	}

	low := Normalize(day + " " + timeStr)
	if strings.Contains(low, "hoy") || strings.Contains(low, "today") {
		return atTimeOfDay(time.Now().Local(), timeStr)
	}
	if strings.Contains(low, "manana") || strings.Contains(low, "tomorrow") {
		return atTimeOfDay(time.Now().Local().AddDate(0, 0, 1), timeStr)
	}

	return time.Time{}
}

// atTimeOfDay anchors the given day at the parsed time of day, or midnight
// when the time string doesn't parse.
func atTimeOfDay(base time.Time, timeStr string) time.Time {
	y, m, d := base.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	for _, layout := range timeOfDayLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(timeStr)); err == nil {
			return midnight.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
		}
	}
	return midnight
}
