package service

import (
	"sort"
	"time"

	"whosin/internal/core/timeparse"
	"whosin/internal/core/workcal"
	"whosin/internal/services/assistant/domain"
)

// simulate projects a hypothetical attendance pattern onto the working
// calendar and, when a target person is named, onto their office days
// Proposed days outside the range or on non-working days are discarded
func simulate(
	sim *domain.SimParams,
	subject domain.PersonSchedule,
	target *domain.PersonSchedule,
	rng domain.DateRange,
) *domain.ReasoningResult {
	res := &domain.SimulationResult{Subject: subject.Person, Range: rng}
	if target != nil {
		res.Target = &target.Person
	}

	workingSet := make(map[string]struct{}, len(subject.WorkingDays))
	for _, d := range subject.WorkingDays {
		workingSet[workcal.Key(d)] = struct{}{}
	}

	if sim != nil {
		for _, raw := range sim.Dates {
			d, err := workcal.ParseKey(raw)
			if err != nil {
				continue
			}
			if _, ok := workingSet[workcal.Key(d)]; ok {
				res.ProposedDays = append(res.ProposedDays, d)
			}
		}
		if len(res.ProposedDays) == 0 {
			for _, name := range sim.Weekdays {
				wd, ok := timeparse.Weekday(name)
				if !ok {
					continue
				}
				for _, d := range subject.WorkingDays {
					if d.Weekday() == wd {
						res.ProposedDays = append(res.ProposedDays, d)
					}
				}
			}
			sortDays(res.ProposedDays)
		}
	}

	if target != nil {
		for _, d := range res.ProposedDays {
			if inOfficeOn(*target, d) {
				res.MatchDays = append(res.MatchDays, d)
			}
		}
		if len(res.ProposedDays) > 0 {
			res.Percent = float64(len(res.MatchDays)) / float64(len(res.ProposedDays)) * 100
		}
	}

	return &domain.ReasoningResult{Kind: domain.KindSimulation, Simulation: res}
}

func sortDays(days []time.Time) {
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
}
