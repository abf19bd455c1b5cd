package booking

import (
	"strings"
	"time"
)

// InvalidDate текст для неразбираемой даты
const InvalidDate = "Invalid Date"

// локальные форматы без зоны трактуются как время клиники
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// ParseTime разбирает ISO-строку из API.
// Без зоны время локальное (loc), с зоной переводится в loc.
// Голая дата считается UTC полночью.
func ParseTime(raw string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.In(loc), true
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.In(loc), true
	}
	return time.Time{}, false
}

// SlotLabel 12-часовое время слота: "9:00 AM"
func SlotLabel(raw string, loc *time.Location) string {
	t, ok := ParseTime(raw, loc)
	if !ok {
		return InvalidDate
	}
	return t.Format("3:04 PM")
}

// LocaleDateTime дата и время как в en-US: "5/1/2024, 9:00:00 AM"
func LocaleDateTime(raw string, loc *time.Location) string {
	t, ok := ParseTime(raw, loc)
	if !ok {
		return InvalidDate
	}
	return t.Format("1/2/2006, 3:04:05 PM")
}
