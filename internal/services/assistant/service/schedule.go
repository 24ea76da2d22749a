package service

import (
	"context"
	"time"

	"whosin/internal/core/workcal"
	"whosin/internal/modkit/repokit"
	"whosin/internal/services/assistant/domain"
	srepo "whosin/internal/services/assistant/repo"
)

// loadSchedules resolves schedules for every person over the range
// Holidays are fetched once; entries once per person
func (s *Service) loadSchedules(
	ctx context.Context,
	people []domain.Person,
	rng domain.DateRange,
) ([]domain.PersonSchedule, error) {
	var out []domain.PersonSchedule
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		st := s.Repo.Bind(q)
		holidays, err := st.HolidaysBetween(ctx, rng.Start, rng.End)
		if err != nil {
			return err
		}
		hset := holidaySet(holidays)
		working := workcal.WorkingDays(rng.Start, rng.End, hset)

		out = make([]domain.PersonSchedule, 0, len(people))
		for _, p := range people {
			entries, err := st.EntriesForRange(ctx, p.ID, rng.Start, rng.End)
			if err != nil {
				return err
			}
			out = append(out, buildSchedule(p, rng, working, entries))
		}
		return nil
	})
	return out, err
}

func holidaySet(days []time.Time) map[string]struct{} {
	set := make(map[string]struct{}, len(days))
	for _, d := range days {
		set[workcal.Key(d)] = struct{}{}
	}
	return set
}

// buildSchedule computes stats and coverage for one person
// A working day with no entry counts as work from home for stats, but only
// recorded days count toward coverage
func buildSchedule(
	p domain.Person,
	rng domain.DateRange,
	working []time.Time,
	entries []domain.AttendanceEntry,
) domain.PersonSchedule {
	byKey := make(map[string]domain.AttendanceEntry, len(entries))
	for _, e := range entries {
		byKey[workcal.Key(e.Date)] = e
	}

	sched := domain.PersonSchedule{
		Person:      p,
		Range:       rng,
		Entries:     byKey,
		WorkingDays: working,
	}

	recorded := 0
	for _, day := range working {
		e, ok := byKey[workcal.Key(day)]
		if !ok {
			sched.Stats.WFHDays++
			continue
		}
		recorded++
		switch {
		case e.HalfDay && e.Status == domain.StatusLeave:
			sched.Stats.LeaveDays += 0.5
			if e.HalfDayWorkedAt == domain.StatusOffice {
				sched.Stats.OfficeDays += 0.5
			} else {
				sched.Stats.WFHDays += 0.5
			}
		case e.Status == domain.StatusOffice:
			sched.Stats.OfficeDays++
		case e.Status == domain.StatusLeave:
			sched.Stats.LeaveDays++
		default:
			sched.Stats.WFHDays++
		}
	}

	if n := len(working); n > 0 {
		sched.Stats.OfficePercent = sched.Stats.OfficeDays / float64(n) * 100
		sched.Coverage.Ratio = float64(recorded) / float64(n)
	}
	switch {
	case recorded == 0:
		sched.Coverage.Level = domain.CoverageNone
	case sched.Coverage.Ratio < 0.4:
		sched.Coverage.Level = domain.CoverageLow
	case sched.Coverage.Ratio < 0.8:
		sched.Coverage.Level = domain.CoverageMedium
	default:
		sched.Coverage.Level = domain.CoverageHigh
	}
	return sched
}

// officeOn reports office presence for one day and whether that presence
// comes through a half-day arrangement
func officeOn(sched domain.PersonSchedule, day time.Time) (present, half bool) {
	e, ok := sched.Entries[workcal.Key(day)]
	if !ok {
		return false, false
	}
	if e.HalfDay {
		present = e.HalfDayWorkedAt == domain.StatusOffice || e.Status == domain.StatusOffice
		return present, present
	}
	return e.Status == domain.StatusOffice, false
}

// inOfficeOn reports whether the schedule puts the person in office that day
// A half day worked from office counts
func inOfficeOn(sched domain.PersonSchedule, day time.Time) bool {
	present, _ := officeOn(sched, day)
	return present
}

// presenceOn builds the office presence picture for one day
func (s *Service) presenceOn(ctx context.Context, day time.Time) (domain.TeamPresenceDay, error) {
	var (
		roster  []domain.Person
		entries []srepo.OfficeEntry
	)
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		st := s.Repo.Bind(q)
		var e error
		if roster, e = st.ActivePeople(ctx); e != nil {
			return e
		}
		entries, e = st.OfficeEntriesBetween(ctx, day, day)
		return e
	})
	if err != nil {
		return domain.TeamPresenceDay{}, err
	}

	out := domain.TeamPresenceDay{Date: day, TeamSize: len(roster)}
	seen := map[string]struct{}{}
	for _, e := range entries {
		if _, ok := seen[e.Person.ID]; ok {
			continue
		}
		seen[e.Person.ID] = struct{}{}
		out.InOffice = append(out.InOffice, e.Person)
	}
	out.Count = len(out.InOffice)
	return out, nil
}

// presenceByDay maps office entries onto working days for recommendations
func presenceByDay(working []time.Time, entries []srepo.OfficeEntry) map[string][]domain.Person {
	out := make(map[string][]domain.Person, len(working))
	seen := map[string]map[string]struct{}{}
	for _, e := range entries {
		key := workcal.Key(e.Date)
		if seen[key] == nil {
			seen[key] = map[string]struct{}{}
		}
		if _, ok := seen[key][e.Person.ID]; ok {
			continue
		}
		seen[key][e.Person.ID] = struct{}{}
		out[key] = append(out[key], e.Person)
	}
	return out
}
