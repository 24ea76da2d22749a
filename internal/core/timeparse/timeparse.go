// Package timeparse resolves relative and absolute date phrases into concrete ranges
package timeparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"whosin/internal/core/workcal"
)

// Range is a resolved inclusive date span with a human-readable origin label
type Range struct {
	Start time.Time
	End   time.Time
	Label string
}

var (
	reExplicitPair = regexp.MustCompile(`(?i)(?:from\s+)?(\d{4}-\d{2}-\d{2})\s+(?:to|until|through|-)\s+(\d{4}-\d{2}-\d{2})`)
	reExplicitOne  = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`)
	reLastNextDays = regexp.MustCompile(`(?i)\b(last|next|past)\s+(\d{1,3})\s+days?\b`)
	reWeekday      = regexp.MustCompile(`(?i)\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday)s?\b`)
	reMonthDay     = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)\s+(\d{1,2})(?:st|nd|rd|th)?\b`)
	reDayMonth     = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+(?:of\s+)?(january|february|march|april|may|june|july|august|september|october|november|december)\b`)
	reBareMonth    = regexp.MustCompile(`(?i)\b(january|february|march|april|june|july|august|september|october|november|december)\b`)
	// "may" doubles as a modal verb, so it only counts with a leading preposition
	reMayMonth = regexp.MustCompile(`(?i)\b(?:in|during|for|of|next|last|this)\s+may\b`)
)

var months = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June, "july": time.July,
	"august": time.August, "september": time.September, "october": time.October,
	"november": time.November, "december": time.December,
}

var weekdays = map[string]time.Weekday{
	"monday": time.Monday, "tuesday": time.Tuesday, "wednesday": time.Wednesday,
	"thursday": time.Thursday, "friday": time.Friday,
	"saturday": time.Saturday, "sunday": time.Sunday,
}

// Weekday looks up a weekday by its lowercase English name
func Weekday(name string) (time.Weekday, bool) {
	wd, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
	return wd, ok
}

// Explicit resolves a literal "YYYY-MM-DD to YYYY-MM-DD" span
// it reports false when s holds no such pair or the pair is inverted
func Explicit(s string) (Range, bool) {
	m := reExplicitPair.FindStringSubmatch(s)
	if m == nil {
		return Range{}, false
	}
	start, err1 := workcal.ParseKey(m[1])
	end, err2 := workcal.ParseKey(m[2])
	if err1 != nil || err2 != nil || end.Before(start) {
		return Range{}, false
	}
	return Range{Start: start, End: end, Label: m[1] + " to " + m[2]}, true
}

// Resolve parses phrase against the anchor date and always produces a range
// unresolvable phrases default to the anchor's month
func Resolve(phrase string, now time.Time) Range {
	today := workcal.Date(now)
	p := strings.ToLower(strings.TrimSpace(phrase))

	if r, ok := Explicit(p); ok {
		return r
	}
	if m := reExplicitOne.FindStringSubmatch(p); m != nil {
		if d, err := workcal.ParseKey(m[1]); err == nil {
			return single(d, m[1])
		}
	}

	switch {
	case strings.Contains(p, "yesterday"):
		return single(today.AddDate(0, 0, -1), "yesterday")
	case strings.Contains(p, "tomorrow"):
		return single(today.AddDate(0, 0, 1), "tomorrow")
	case strings.Contains(p, "today"):
		return single(today, "today")
	}

	if m := reLastNextDays.FindStringSubmatch(p); m != nil {
		n, _ := strconv.Atoi(m[2])
		if n > 0 {
			if strings.EqualFold(m[1], "next") {
				return Range{Start: today, End: today.AddDate(0, 0, n-1), Label: fmt.Sprintf("next %d days", n)}
			}
			return Range{Start: today.AddDate(0, 0, -(n - 1)), End: today, Label: fmt.Sprintf("last %d days", n)}
		}
	}

	if m := reWeekday.FindStringSubmatch(p); m != nil {
		wd := weekdays[strings.ToLower(m[1])]
		return weekdayRange(p, wd, today)
	}

	switch {
	case strings.Contains(p, "last week"):
		return span(workcal.WeekRange(today, -1))("last week")
	case strings.Contains(p, "next week"):
		return span(workcal.WeekRange(today, 1))("next week")
	case strings.Contains(p, "this week"), strings.Contains(p, "current week"):
		return span(workcal.WeekRange(today, 0))("this week")
	case strings.Contains(p, "last month"), strings.Contains(p, "previous month"):
		return span(workcal.MonthRange(today, -1))("last month")
	case strings.Contains(p, "next month"):
		return span(workcal.MonthRange(today, 1))("next month")
	case strings.Contains(p, "last quarter"), strings.Contains(p, "previous quarter"):
		return span(workcal.QuarterRange(today, -1))("last quarter")
	case strings.Contains(p, "this quarter"), strings.Contains(p, "current quarter"):
		return span(workcal.QuarterRange(today, 0))("this quarter")
	case strings.Contains(p, "last year"):
		return span(workcal.YearRange(today, -1))("last year")
	case strings.Contains(p, "this year"), strings.Contains(p, "current year"):
		return span(workcal.YearRange(today, 0))("this year")
	}

	if r, ok := monthWithDay(p, today); ok {
		return r
	}
	if r, ok := bareMonth(p, today); ok {
		return r
	}

	return span(workcal.MonthRange(today, 0))("this month")
}

// single wraps one day as a range
func single(d time.Time, label string) Range {
	return Range{Start: d, End: d, Label: label}
}

// span curries a (start, end) pair into a labeled Range
func span(start, end time.Time) func(string) Range {
	return func(label string) Range { return Range{Start: start, End: end, Label: label} }
}

// weekdayRange anchors a bare weekday according to its qualifier
func weekdayRange(p string, wd time.Weekday, today time.Time) Range {
	name := strings.ToLower(wd.String())
	switch {
	case strings.Contains(p, "next month"):
		first, last := workcal.MonthRange(today, 1)
		if days := workcal.Weekdays(first, last, wd, nil); len(days) > 0 {
			return single(days[0], "first "+name+" next month")
		}
		return span(first, last)(name + " next month")
	case strings.Contains(p, "next week"):
		mon, _ := workcal.WeekRange(today, 1)
		return single(advanceTo(mon, wd), name+" next week")
	case strings.Contains(p, "last week"):
		mon, _ := workcal.WeekRange(today, -1)
		return single(advanceTo(mon, wd), name+" last week")
	}
	// nearest upcoming occurrence, today included
	d := today
	for d.Weekday() != wd {
		d = d.AddDate(0, 0, 1)
	}
	return single(d, name)
}

// advanceTo walks forward from d to the requested weekday
func advanceTo(d time.Time, wd time.Weekday) time.Time {
	for d.Weekday() != wd {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// monthWithDay parses "march 10" / "10th of march", rejecting impossible dates
func monthWithDay(p string, today time.Time) (Range, bool) {
	var monthName string
	var dayStr string
	if m := reMonthDay.FindStringSubmatch(p); m != nil {
		monthName, dayStr = m[1], m[2]
	} else if m := reDayMonth.FindStringSubmatch(p); m != nil {
		dayStr, monthName = m[1], m[2]
	} else {
		return Range{}, false
	}
	mon := months[strings.ToLower(monthName)]
	day, _ := strconv.Atoi(dayStr)
	if day < 1 || day > workcal.DaysInMonth(today.Year(), mon) {
		return Range{}, false
	}
	d := time.Date(today.Year(), mon, day, 0, 0, 0, 0, time.UTC)
	return single(d, strings.ToLower(monthName)+" "+dayStr), true
}

// bareMonth parses a month name on its own, assuming the current year
func bareMonth(p string, today time.Time) (Range, bool) {
	var mon time.Month
	if m := reBareMonth.FindStringSubmatch(p); m != nil {
		mon = months[strings.ToLower(m[1])]
	} else if reMayMonth.MatchString(p) {
		mon = time.May
	} else {
		return Range{}, false
	}
	first := time.Date(today.Year(), mon, 1, 0, 0, 0, 0, time.UTC)
	return span(first, first.AddDate(0, 1, -1))(strings.ToLower(mon.String())), true
}
