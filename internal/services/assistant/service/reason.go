package service

import (
	"math"
	"sort"

	"whosin/internal/services/assistant/domain"
)

// epsilon absorbs float drift from half-day accounting
const epsilon = 1e-9

// comparison ranks people by office days, most first
// Equal leaders after half-day accounting are reported as tied, never as a
// fabricated winner
func comparison(schedules []domain.PersonSchedule) *domain.ReasoningResult {
	entries := make([]domain.ComparisonEntry, 0, len(schedules))
	for _, sc := range schedules {
		entries = append(entries, domain.ComparisonEntry{
			Person:     sc.Person,
			OfficeDays: sc.Stats.OfficeDays,
			Percent:    sc.Stats.OfficePercent,
			Coverage:   sc.Coverage,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].OfficeDays > entries[j].OfficeDays
	})

	res := &domain.ComparisonResult{Entries: entries}
	if len(entries) >= 2 && math.Abs(entries[0].OfficeDays-entries[1].OfficeDays) < epsilon {
		res.Tied = true
	} else if len(entries) > 0 {
		w := entries[0].Person
		res.Winner = &w
	}
	return &domain.ReasoningResult{Kind: domain.KindComparison, Comparison: res}
}

// teamAverage places the subject against the mean office percentage of the
// loaded roster; the subject is part of the mean
func teamAverage(subject domain.Person, schedules []domain.PersonSchedule) *domain.ReasoningResult {
	res := &domain.TeamAverageResult{TeamSize: len(schedules)}

	var sum float64
	found := false
	for _, sc := range schedules {
		sum += sc.Stats.OfficePercent
		if sc.Person.ID == subject.ID {
			found = true
			res.Subject = domain.ComparisonEntry{
				Person:     sc.Person,
				OfficeDays: sc.Stats.OfficeDays,
				Percent:    sc.Stats.OfficePercent,
				Coverage:   sc.Coverage,
			}
		}
	}
	if !found || len(schedules) == 0 {
		return nil
	}

	res.TeamAverage = sum / float64(len(schedules))
	res.Delta = res.Subject.Percent - res.TeamAverage
	switch {
	case math.Abs(res.Delta) < 0.5:
		res.Position = "at"
	case res.Delta > 0:
		res.Position = "above"
	default:
		res.Position = "below"
	}
	return &domain.ReasoningResult{Kind: domain.KindTeamAverage, TeamAverage: res}
}

// overlap classifies how two people's office days line up per working day
func overlap(schedules []domain.PersonSchedule) *domain.ReasoningResult {
	if len(schedules) < 2 {
		return nil
	}
	a, b := schedules[0], schedules[1]
	res := &domain.OverlapResult{A: a.Person, B: b.Person, WorkingDays: len(a.WorkingDays)}

	for _, day := range a.WorkingDays {
		inA, halfA := officeOn(a, day)
		inB, halfB := officeOn(b, day)
		switch {
		case inA && inB && (halfA || halfB):
			// a half-day arrangement on either side only ever yields half a
			// day together
			res.PartialDays = append(res.PartialDays, day)
		case inA && inB:
			res.BothDays = append(res.BothDays, day)
		case inA:
			res.OnlyADays = append(res.OnlyADays, day)
		case inB:
			res.OnlyBDays = append(res.OnlyBDays, day)
		}
	}

	switch {
	case len(res.BothDays) == 0 && len(res.PartialDays) == 0:
		res.Degree = "none"
	case len(res.PartialDays) == 0 && len(res.OnlyADays) == 0 && len(res.OnlyBDays) == 0:
		res.Degree = "full"
	default:
		res.Degree = "partial"
	}
	return &domain.ReasoningResult{Kind: domain.KindOverlap, Overlap: res}
}

// multiOverlap finds the days every loaded person is in office together
func multiOverlap(schedules []domain.PersonSchedule) *domain.ReasoningResult {
	if len(schedules) == 0 {
		return nil
	}
	res := &domain.MultiOverlapResult{WorkingDays: len(schedules[0].WorkingDays)}
	for _, sc := range schedules {
		res.People = append(res.People, sc.Person)
	}

	for _, day := range schedules[0].WorkingDays {
		all := true
		for _, sc := range schedules {
			if !inOfficeOn(sc, day) {
				all = false
				break
			}
		}
		if all {
			res.SharedDays = append(res.SharedDays, day)
		}
	}
	return &domain.ReasoningResult{Kind: domain.KindMultiOverlap, MultiOverlap: res}
}

// trend compares the subject's current period against the previous one
func trend(current, previous domain.PersonSchedule) *domain.ReasoningResult {
	res := &domain.TrendResult{
		Person:        current.Person,
		Current:       current.Stats,
		Previous:      previous.Stats,
		CurrentLabel:  current.Range.Label,
		PreviousLabel: previous.Range.Label,
	}
	switch {
	case math.Abs(current.Stats.OfficeDays-previous.Stats.OfficeDays) < epsilon:
		res.Direction = "same"
	case current.Stats.OfficeDays > previous.Stats.OfficeDays:
		res.Direction = "more"
	default:
		res.Direction = "less"
	}
	return &domain.ReasoningResult{Kind: domain.KindTrend, Trend: res}
}
