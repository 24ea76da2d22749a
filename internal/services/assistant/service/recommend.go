package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"whosin/internal/core/timeparse"
	"whosin/internal/services/assistant/domain"
)

const maxRecommendations = 3

// recommend ranks the caller's working days against a goal
// Constraints filter candidates before scoring; an empty outcome is valid and
// the assembler explains it. named means the question asked about specific
// people, so reasons cite them by name instead of quoting a headcount
func recommend(
	goal domain.OptimizeGoal,
	constraints []string,
	caller domain.PersonSchedule,
	others []domain.PersonSchedule,
	named bool,
	rng domain.DateRange,
) *domain.ReasoningResult {
	res := &domain.RecommendationResult{Goal: goal, Range: rng}

	exclude, only := parseDayConstraints(constraints)
	var candidates []time.Time
	for _, day := range caller.WorkingDays {
		wd := day.Weekday()
		if _, skip := exclude[wd]; skip {
			continue
		}
		if len(only) > 0 {
			if _, ok := only[wd]; !ok {
				continue
			}
		}
		candidates = append(candidates, day)
	}

	for _, day := range candidates {
		var present []string
		for _, sc := range others {
			if inOfficeOn(sc, day) {
				present = append(present, sc.Person.DisplayName)
			}
		}
		score, reason := scoreDay(goal, present, len(others), named)
		res.Recommendations = append(res.Recommendations, domain.DayRecommendation{
			Date:   day,
			Score:  score,
			Reason: reason,
		})
	}

	sort.SliceStable(res.Recommendations, func(i, j int) bool {
		if res.Recommendations[i].Score != res.Recommendations[j].Score {
			return res.Recommendations[i].Score > res.Recommendations[j].Score
		}
		return res.Recommendations[i].Date.Before(res.Recommendations[j].Date)
	})
	if len(res.Recommendations) > maxRecommendations {
		res.Recommendations = res.Recommendations[:maxRecommendations]
	}
	return &domain.ReasoningResult{Kind: domain.KindRecommendation, Recommendation: res}
}

// scoreDay turns the expected attendees into a goal-directed score and a
// readable reason
func scoreDay(goal domain.OptimizeGoal, present []string, teamSize int, named bool) (float64, string) {
	headcount := len(present)
	score := float64(headcount)
	if goal == domain.GoalMinimizeOverlap || goal == domain.GoalLeastCrowded {
		score = -score
	}
	if named {
		return score, namedReason(present)
	}
	switch goal {
	case domain.GoalMinimizeOverlap, domain.GoalLeastCrowded:
		return score, fmt.Sprintf("only %d of %d expected in office", headcount, teamSize)
	case domain.GoalMinimizeCommute:
		return score, fmt.Sprintf("%d of %d reachable in a single trip", headcount, teamSize)
	default:
		// maximize_overlap and maximize_team_presence reward presence
		return score, fmt.Sprintf("%d of %d expected in office", headcount, teamSize)
	}
}

// namedReason cites the requested people directly
func namedReason(present []string) string {
	switch len(present) {
	case 0:
		return "none of them are in office"
	case 1:
		return present[0] + " is in office"
	default:
		return andJoin(present) + " are in office"
	}
}

func andJoin(names []string) string {
	if len(names) <= 2 {
		return strings.Join(names, " and ")
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}

// parseDayConstraints reads phrases like "not fridays" and "only tuesdays and
// thursdays" into exclusion and inclusion weekday sets
func parseDayConstraints(constraints []string) (exclude, only map[time.Weekday]struct{}) {
	exclude = map[time.Weekday]struct{}{}
	only = map[time.Weekday]struct{}{}
	for _, c := range constraints {
		c = strings.ToLower(c)
		target := exclude
		if strings.HasPrefix(strings.TrimSpace(c), "only") {
			target = only
		}
		for _, word := range strings.FieldsFunc(c, func(r rune) bool {
			return r == ' ' || r == ',' || r == '/'
		}) {
			if wd, ok := timeparse.Weekday(strings.TrimSuffix(word, "s")); ok {
				target[wd] = struct{}{}
			}
		}
	}
	return exclude, only
}
