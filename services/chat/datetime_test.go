package chat

import (
	"testing"
	"time"
)

func TestParseDateTimeExactLayouts(t *testing.T) {
	cases := []struct {
		name string
		day  string
		tm   string
		want time.Time
	}{
		{"iso with time", "2025-10-20", "20:00", time.Date(2025, 10, 20, 20, 0, 0, 0, time.Local)},
		{"iso date only", "2025-10-20", "", time.Date(2025, 10, 20, 0, 0, 0, 0, time.Local)},
		{"slashed dmy", "20/10/2025", "19:30", time.Date(2025, 10, 20, 19, 30, 0, 0, time.Local)},
		{"dashed dmy", "20-10-2025", "", time.Date(2025, 10, 20, 0, 0, 0, 0, time.Local)},
		{"iso t separator", "2025-10-20T19:00", "", time.Date(2025, 10, 20, 19, 0, 0, 0, time.Local)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ParseDateTime(c.day, c.tm)
			if !got.Equal(c.want) {
				t.Errorf("ParseDateTime(%q, %q) = %v, want %v", c.day, c.tm, got, c.want)
			}
		})
	}
}

func TestParseDateTimeRelative(t *testing.T) {
	now := time.Now().Local()

	got := ParseDateTime("mañana", "19:00")
	want := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local).
		AddDate(0, 0, 1).Add(19 * time.Hour)
	if !got.Equal(want) {
		t.Errorf("mañana 19:00 = %v, want %v", got, want)
	}

	got = ParseDateTime("hoy", "")
	want = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("hoy = %v, want %v", got, want)
	}
}

func TestParseDateTimeUnparsed(t *testing.T) {
	cases := []struct {
		day string
		tm  string
	}{
		{"", ""},
		{"el viernes que viene", "por la noche"},
		{"pronto", ""},
	}
	for _, c := range cases {
		if got := ParseDateTime(c.day, c.tm); !got.IsZero() {
			t.Errorf("ParseDateTime(%q, %q) = %v, want zero time", c.day, c.tm, got)
		}
	}
}
