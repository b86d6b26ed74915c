package changelog

import "time"

// dayLayout is the ISO day format used for bucket keys. Display formatting
// is the caller's concern; keys stay lexically sortable.
const dayLayout = "2006-01-02"

// DayOf truncates t to its calendar day, preserving the location.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekBucket returns the identifier of the 7-day period containing t.
// Weeks start on Monday. The bucket is the "start/end" day pair, e.g.
// "2024-03-04/2024-03-10", which sorts lexically in calendar order.
func WeekBucket(t time.Time) string {
	day := DayOf(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	start := day.AddDate(0, 0, -offset)
	end := start.AddDate(0, 0, 6)
	return start.Format(dayLayout) + "/" + end.Format(dayLayout)
}

// MonthBucket returns the YYYY-MM identifier of the month containing t.
func MonthBucket(t time.Time) string {
	return t.Format("2006-01")
}
