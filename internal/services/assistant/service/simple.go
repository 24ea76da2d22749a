package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"whosin/internal/core/router"
	"whosin/internal/core/timeparse"
	"whosin/internal/core/workcal"
	"whosin/internal/modkit/repokit"
	perr "whosin/internal/platform/errors"
	"whosin/internal/services/assistant/domain"
	srepo "whosin/internal/services/assistant/repo"
)

// answerSimple handles routed fast-path questions without the model
// It returns false whenever data or parse confidence is lacking, which drops
// the question into the full pipeline
func (s *Service) answerSimple(
	ctx context.Context,
	intent router.SimpleIntent,
	callerID, question string,
	today time.Time,
) (string, bool) {
	switch intent {
	case router.IntentEventQuery:
		return "I don't track events or meetings, only office attendance. " +
			"Try asking who's in the office or about someone's schedule.", true

	case router.IntentTeamPresence:
		day := today
		if r := timeparse.Resolve(question, today); r.Start.Equal(r.End) {
			day = r.Start
		}
		pd, err := s.presenceOn(ctx, day)
		if err != nil {
			s.log.Warn().Err(err).Msg("fast presence lookup failed, falling through")
			return "", false
		}
		return renderPresence(pd, day), true

	case router.IntentPersonalAttendance:
		rng := rangeFromQuestion(question, today)
		caller, err := s.callerPerson(ctx, callerID)
		if err != nil {
			s.log.Warn().Err(err).Msg("fast caller lookup failed, falling through")
			return "", false
		}
		schedules, err := s.loadSchedules(ctx, []domain.Person{caller}, rng)
		if err != nil || len(schedules) == 0 {
			return "", false
		}
		return renderPersonalStats(schedules[0]), true

	case router.IntentTeamAnalytics:
		rng := rangeFromQuestion(question, today)
		answer, err := s.teamAnalytics(ctx, rng)
		if err != nil {
			s.log.Warn().Err(err).Msg("fast analytics failed, falling through")
			return "", false
		}
		return answer, true
	}
	return "", false
}

func rangeFromQuestion(question string, today time.Time) domain.DateRange {
	r := timeparse.Resolve(question, today)
	return domain.DateRange{Start: r.Start, End: r.End, Label: r.Label}
}

func (s *Service) callerPerson(ctx context.Context, callerID string) (domain.Person, error) {
	var roster []domain.Person
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var e error
		roster, e = s.Repo.Bind(q).ActivePeople(ctx)
		return e
	})
	if err != nil {
		return domain.Person{}, err
	}
	for _, p := range roster {
		if p.ID == callerID {
			return p, nil
		}
	}
	return domain.Person{ID: callerID, DisplayName: "You"}, nil
}

func renderPresence(pd domain.TeamPresenceDay, day time.Time) string {
	label := fmtDate(day)
	if pd.Count == 0 {
		return fmt.Sprintf("Nobody has marked the office for %s yet.", label)
	}
	names := make([]string, 0, pd.Count)
	for _, p := range pd.InOffice {
		names = append(names, p.DisplayName)
	}
	return fmt.Sprintf("%d of %d people are in the office on %s: %s.",
		pd.Count, pd.TeamSize, label, strings.Join(names, ", "))
}

func renderPersonalStats(sc domain.PersonSchedule) string {
	body := fmt.Sprintf(
		"For %s you're in the office %s of %d working days (%s), working from home %s and on leave %s.",
		sc.Range.Label, fmtDays(sc.Stats.OfficeDays), len(sc.WorkingDays), fmtPct(sc.Stats.OfficePercent),
		fmtDays(sc.Stats.WFHDays), fmtDays(sc.Stats.LeaveDays))
	if d := disclaimers([]domain.PersonSchedule{sc}); d != "" {
		body += "\n\n" + d
	}
	return body
}

// teamAnalytics answers aggregate questions over the whole roster
func (s *Service) teamAnalytics(ctx context.Context, rng domain.DateRange) (string, error) {
	var (
		roster   []domain.Person
		entries  []srepo.OfficeEntry
		holidays []time.Time
	)
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		st := s.Repo.Bind(q)
		var e error
		if roster, e = st.ActivePeople(ctx); e != nil {
			return e
		}
		if holidays, e = st.HolidaysBetween(ctx, rng.Start, rng.End); e != nil {
			return e
		}
		entries, e = st.OfficeEntriesBetween(ctx, rng.Start, rng.End)
		return e
	})
	if err != nil {
		return "", err
	}
	if len(roster) == 0 {
		return "", perr.NotFoundf("no active people")
	}

	working := workcal.WorkingDays(rng.Start, rng.End, holidaySet(holidays))
	byDay := presenceByDay(working, entries)

	// busiest weekday by average headcount
	counts := map[time.Weekday]int{}
	occurrences := map[time.Weekday]int{}
	total := 0
	for _, day := range working {
		occurrences[day.Weekday()]++
		n := len(byDay[workcal.Key(day)])
		counts[day.Weekday()] += n
		total += n
	}

	best := time.Monday
	bestAvg := -1.0
	for wd := time.Monday; wd <= time.Friday; wd++ {
		if occurrences[wd] == 0 {
			continue
		}
		avg := float64(counts[wd]) / float64(occurrences[wd])
		if avg > bestAvg {
			best, bestAvg = wd, avg
		}
	}

	avgPerPerson := float64(total) / float64(len(roster))
	answer := fmt.Sprintf(
		"Across %s the team averages %.1f office days per person. %s is the busiest day, averaging %.1f people in.",
		rng.Label, avgPerPerson, best.String(), bestAvg)

	// name the most frequent attendee when there is a clear one
	perPerson := map[string]int{}
	names := map[string]string{}
	for _, e := range entries {
		perPerson[e.Person.ID]++
		names[e.Person.ID] = e.Person.DisplayName
	}
	leaderID, leaderDays, tied := "", 0, false
	for id, n := range perPerson {
		switch {
		case n > leaderDays:
			leaderID, leaderDays, tied = id, n, false
		case n == leaderDays:
			tied = true
		}
	}
	if leaderID != "" && !tied {
		answer += fmt.Sprintf(" %s has been in the most: %d days.", names[leaderID], leaderDays)
	}
	return answer, nil
}
