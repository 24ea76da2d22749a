// Package domain holds the assistant's schedule model and service contracts
package domain

import "time"

// Person is a member of the workspace roster
type Person struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// DateRange is an inclusive date span at day granularity
// Label records the phrase the range was resolved from
type DateRange struct {
	Start time.Time
	End   time.Time
	Label string
}

// EntryStatus is where a person spent (or plans to spend) a working day
type EntryStatus string

const (
	// StatusOffice means present in the office
	StatusOffice EntryStatus = "office"
	// StatusLeave means on leave
	StatusLeave EntryStatus = "leave"
	// StatusWFH means working from home
	StatusWFH EntryStatus = "work_from_home"
)

// AttendanceEntry is one person-day record
// A half day leave carries where the other half was worked
type AttendanceEntry struct {
	Date            time.Time
	Status          EntryStatus
	HalfDay         bool
	HalfDayWorkedAt EntryStatus
}

// CoverageLevel buckets how much of a range a person has actually recorded
type CoverageLevel string

const (
	// CoverageNone means no entries at all in the range
	CoverageNone CoverageLevel = "none"
	// CoverageLow means under 40 percent of working days recorded
	CoverageLow CoverageLevel = "low"
	// CoverageMedium means under 80 percent of working days recorded
	CoverageMedium CoverageLevel = "medium"
	// CoverageHigh means 80 percent or more of working days recorded
	CoverageHigh CoverageLevel = "high"
)

// Coverage is the recorded share of working days plus its bucket
type Coverage struct {
	Ratio float64
	Level CoverageLevel
}

// ScheduleStats are fractional day counts over a range
// Half days contribute 0.5 to each side; rounding happens only at presentation
type ScheduleStats struct {
	OfficeDays    float64
	LeaveDays     float64
	WFHDays       float64
	OfficePercent float64
}

// PersonSchedule is one person's resolved schedule over a range
// Entries is keyed by YYYY-MM-DD; a working day with no entry counts as
// work from home for stats but not for coverage
type PersonSchedule struct {
	Person      Person
	Range       DateRange
	Entries     map[string]AttendanceEntry
	WorkingDays []time.Time
	Stats       ScheduleStats
	Coverage    Coverage
}

// TeamPresenceDay is who is in the office on one date
type TeamPresenceDay struct {
	Date     time.Time
	InOffice []Person
	Count    int
	TeamSize int
}

// HistoryMessage is one prior conversation turn
type HistoryMessage struct {
	Role string `json:"role" validate:"required,oneof=user assistant"`
	Text string `json:"text" validate:"required,max=4000"`
}
