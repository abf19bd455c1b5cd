package formatting

import (
	"time"
)

// FormatDayButton подпись дня в календаре: "Wed 1 May"
func FormatDayButton(t time.Time) string {
	return t.Format("Mon 2 Jan")
}

// FormatDate дата с днём недели: "Wednesday, May 1, 2024"
func FormatDate(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}

// FormatWeekRange диапазон недели календаря: "May 1 - May 7"
func FormatWeekRange(start time.Time, days int) string {
	end := start.AddDate(0, 0, days-1)
	return start.Format("Jan 2") + " - " + end.Format("Jan 2")
}
