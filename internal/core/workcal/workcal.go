// Package workcal implements working-day arithmetic over calendar dates
package workcal

import "time"

// DateKey is the canonical YYYY-MM-DD form used to key per-day maps
const DateKey = "2006-01-02"

// Date truncates t to date granularity in UTC
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Key formats t as YYYY-MM-DD
func Key(t time.Time) string { return Date(t).Format(DateKey) }

// ParseKey parses a YYYY-MM-DD string into a UTC date
func ParseKey(s string) (time.Time, error) {
	return time.ParseInLocation(DateKey, s, time.UTC)
}

// IsWeekend reports whether d falls on Saturday or Sunday
func IsWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsWorkingDay reports whether d is a weekday that is not a holiday
func IsWorkingDay(d time.Time, holidays map[string]struct{}) bool {
	if IsWeekend(d) {
		return false
	}
	_, holiday := holidays[Key(d)]
	return !holiday
}

// WorkingDays enumerates working days in [start, end] ascending
// Saturdays, Sundays, and supplied holidays are excluded
func WorkingDays(start, end time.Time, holidays map[string]struct{}) []time.Time {
	var out []time.Time
	for d := Date(start); !d.After(Date(end)); d = d.AddDate(0, 0, 1) {
		if IsWorkingDay(d, holidays) {
			out = append(out, d)
		}
	}
	return out
}

// Weekdays enumerates every occurrence of wd in [start, end] ascending
// holidays are excluded so the result stays inside the working calendar
func Weekdays(start, end time.Time, wd time.Weekday, holidays map[string]struct{}) []time.Time {
	var out []time.Time
	for _, d := range WorkingDays(start, end, holidays) {
		if d.Weekday() == wd {
			out = append(out, d)
		}
	}
	return out
}

// MonthRange returns the first and last day of anchor's month shifted by offset months
func MonthRange(anchor time.Time, offset int) (time.Time, time.Time) {
	a := Date(anchor)
	first := time.Date(a.Year(), a.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, offset, 0)
	last := first.AddDate(0, 1, -1)
	return first, last
}

// WeekRange returns the Monday and Friday of anchor's week shifted by offset weeks
func WeekRange(anchor time.Time, offset int) (time.Time, time.Time) {
	a := Date(anchor)
	// Monday-based week; Sunday counts as the tail of the previous week
	back := int(a.Weekday()) - 1
	if back < 0 {
		back = 6
	}
	mon := a.AddDate(0, 0, -back+offset*7)
	return mon, mon.AddDate(0, 0, 4)
}

// QuarterRange returns the 3-month block containing anchor shifted by offset quarters
func QuarterRange(anchor time.Time, offset int) (time.Time, time.Time) {
	a := Date(anchor)
	qm := ((int(a.Month())-1)/3)*3 + 1
	first := time.Date(a.Year(), time.Month(qm), 1, 0, 0, 0, 0, time.UTC).AddDate(0, offset*3, 0)
	last := first.AddDate(0, 3, -1)
	return first, last
}

// YearRange returns Jan 1 and Dec 31 of anchor's year shifted by offset years
func YearRange(anchor time.Time, offset int) (time.Time, time.Time) {
	y := anchor.Year() + offset
	return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(y, time.December, 31, 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of calendar days in the given month
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}

// HolidaySet builds a lookup set from YYYY-MM-DD keys
func HolidaySet(keys []string) map[string]struct{} {
	if len(keys) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		out[k] = struct{}{}
	}
	return out
}
