package service

import (
	"regexp"
	"strings"
	"unicode"

	"whosin/internal/core/router"
	"whosin/internal/services/assistant/domain"
)

// heuristicExtract classifies a question without the model
// It reuses the router's signal vocabulary so the two never drift apart
func (s *Service) heuristicExtract(question string, history []domain.HistoryMessage) domain.Extraction {
	signals := router.Detect(question)
	q := strings.ToLower(question)

	ex := domain.Extraction{
		TimePhrase: question,
		People:     namesInQuestion(question),
	}

	switch {
	case router.Has(signals, router.SignalHypothetical) && mentionsAttendance(question):
		ex.Intent = domain.IntentSimulation
		ex.Sim = simFromQuestion(question)

	case router.Has(signals, router.SignalTeamAverage):
		ex.Intent = domain.IntentTeamAvgComparison

	case router.Has(signals, router.SignalMeetingPlan):
		ex.Intent = domain.IntentMeetingPlanning
		ex.Goal = domain.GoalMaximizeOverlap

	case router.Has(signals, router.SignalMultiPersonCompare),
		router.Has(signals, router.SignalComparative) && mentionsAttendance(question):
		ex.Intent = domain.IntentCompareAttendance

	case router.Has(signals, router.SignalOptimization):
		if strings.Contains(q, "avoid") || strings.Contains(q, "quiet") || strings.Contains(q, "empty") {
			ex.Intent = domain.IntentAvoidDays
		} else {
			ex.Intent = domain.IntentOptimizeDays
		}
		ex.Goal = guessGoal(question)

	case router.Has(signals, router.SignalCoordination) && mentionsAttendance(question):
		ex.Intent = domain.IntentMultiPersonOverlap

	case strings.Contains(q, "overlap") || strings.Contains(q, "same day"):
		ex.Intent = domain.IntentOverlapCheck

	case mentionsAttendance(question):
		ex.Intent = domain.IntentClarifyNeeded
		ex.NeedsClarification = true
		ex.Ambiguities = []string{"what exactly you'd like to know about attendance"}

	default:
		ex.Intent = domain.IntentOutOfScope
		ex.OutOfScopeReason = "That doesn't look like an office attendance question."
	}

	if router.Has(signals, router.SignalConstraint) {
		ex.Constraints = constraintsInQuestion(question)
	}
	return ex
}

// guessGoal infers the optimization objective from plain wording
func guessGoal(question string) domain.OptimizeGoal {
	q := strings.ToLower(question)
	switch {
	case strings.Contains(q, "quiet") || strings.Contains(q, "empty") ||
		strings.Contains(q, "least crowded") || strings.Contains(q, "fewest people"):
		return domain.GoalLeastCrowded
	case strings.Contains(q, "avoid"):
		return domain.GoalMinimizeOverlap
	case strings.Contains(q, "commute") || strings.Contains(q, "fewest trips") || strings.Contains(q, "trips"):
		return domain.GoalMinimizeCommute
	case strings.Contains(q, "whole team") || strings.Contains(q, "most people") || strings.Contains(q, "everyone"):
		return domain.GoalMaximizeTeamPresence
	default:
		return domain.GoalMaximizeOverlap
	}
}

var reEveryWeekday = regexp.MustCompile(`(?i)\bevery\s+(monday|tuesday|wednesday|thursday|friday)s?\b`)
var reBareWeekdays = regexp.MustCompile(`(?i)\b(monday|tuesday|wednesday|thursday|friday)s\b`)

// simFromQuestion pulls a weekday pattern out of hypothetical wording
func simFromQuestion(question string) *domain.SimParams {
	var days []string
	seen := map[string]struct{}{}
	add := func(d string) {
		d = strings.ToLower(d)
		if _, ok := seen[d]; !ok {
			seen[d] = struct{}{}
			days = append(days, d)
		}
	}
	for _, m := range reEveryWeekday.FindAllStringSubmatch(question, -1) {
		add(m[1])
	}
	for _, m := range reBareWeekdays.FindAllStringSubmatch(question, -1) {
		add(m[1])
	}
	if len(days) == 0 {
		return nil
	}
	return &domain.SimParams{Weekdays: days}
}

var reConstraint = regexp.MustCompile(
	`(?i)\b(?:not?|except|excluding|other than|skip(?:ping)?|avoid(?:ing)?|only)\s+(?:on\s+)?` +
		`((?:monday|tuesday|wednesday|thursday|friday)s?(?:(?:,|\s+and|\s+or)\s+(?:monday|tuesday|wednesday|thursday|friday)s?)*)`)

// constraintsInQuestion keeps the constraint phrases verbatim for the engine
func constraintsInQuestion(question string) []string {
	var out []string
	for _, m := range reConstraint.FindAllString(question, -1) {
		out = append(out, strings.ToLower(strings.TrimSpace(m)))
	}
	return out
}

// namesInQuestion finds mid-sentence capitalized tokens that look like names
func namesInQuestion(question string) []string {
	var out []string
	fields := strings.Fields(question)
	for i := 1; i < len(fields) && len(out) < 5; i++ {
		w := strings.Trim(fields[i], ".,?!:;\"'")
		r := []rune(w)
		if len(r) < 2 || !unicode.IsUpper(r[0]) || strings.ToLower(string(r[1:])) != string(r[1:]) {
			continue
		}
		if _, stop := nameStopwords[strings.ToLower(w)]; stop {
			continue
		}
		out = append(out, w)
	}
	return out
}
