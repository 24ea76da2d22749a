package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"whosin/internal/adapters/llm"
	"whosin/internal/services/assistant/domain"
)

const paraphraseSystemPrompt = `Rewrite the following attendance answer so it reads naturally.
Keep every number, date, name, and fact exactly as given. Do not add information. Reply with the rewritten text only.`

// render turns a guarded result into the final answer text
// The deterministic template is the source of truth and always survives; the
// optional paraphrase is appended as a labeled summary so a misbehaving model
// can restate the facts but never replace them
func (s *Service) render(ctx context.Context, result *domain.ReasoningResult, schedules []domain.PersonSchedule) string {
	body := renderResult(result)

	if s.LLM != nil && s.Cfg.Paraphrase {
		para, err := s.LLM.Complete(ctx, []llm.Message{
			{Role: "system", Content: paraphraseSystemPrompt},
			{Role: "user", Content: body},
		}, llm.CompleteOpts{Timeout: s.Cfg.ParaphraseTimeout})
		switch {
		case err != nil:
			s.log.Debug().Err(err).Msg("paraphrase failed, keeping template answer")
		case para != "":
			body += "\n\nSummary: " + para
		}
	}

	if d := disclaimers(schedules); d != "" {
		body += "\n\n" + d
	}
	return body
}

func renderResult(result *domain.ReasoningResult) string {
	switch result.Kind {
	case domain.KindComparison:
		return renderComparison(result.Comparison)
	case domain.KindTeamAverage:
		return renderTeamAverage(result.TeamAverage)
	case domain.KindOverlap:
		return renderOverlap(result.Overlap)
	case domain.KindMultiOverlap:
		return renderMultiOverlap(result.MultiOverlap)
	case domain.KindRecommendation:
		return renderRecommendation(result.Recommendation)
	case domain.KindSimulation:
		return renderSimulation(result.Simulation)
	case domain.KindTrend:
		return renderTrend(result.Trend)
	default:
		return genericApology
	}
}

func renderComparison(c *domain.ComparisonResult) string {
	var b strings.Builder
	for _, e := range c.Entries {
		fmt.Fprintf(&b, "%s: %s office days (%s)\n", e.Person.DisplayName, fmtDays(e.OfficeDays), fmtPct(e.Percent))
	}
	switch {
	case c.Tied:
		b.WriteString("It's a tie at the top.")
	case c.Winner != nil:
		fmt.Fprintf(&b, "%s comes out ahead.", c.Winner.DisplayName)
	}
	return strings.TrimSpace(b.String())
}

func renderTeamAverage(t *domain.TeamAverageResult) string {
	head := fmt.Sprintf("%s: %s office days (%s). Team average across %d people: %s.",
		t.Subject.Person.DisplayName, fmtDays(t.Subject.OfficeDays), fmtPct(t.Subject.Percent),
		t.TeamSize, fmtPct(t.TeamAverage))
	switch t.Position {
	case "at":
		return head + " That's right at the team average."
	case "above":
		return head + fmt.Sprintf(" That's %.1f points above the team average.", t.Delta)
	default:
		return head + fmt.Sprintf(" That's %.1f points below the team average.", -t.Delta)
	}
}

func renderOverlap(o *domain.OverlapResult) string {
	var b strings.Builder
	switch o.Degree {
	case "none":
		fmt.Fprintf(&b, "%s and %s have no office days in common in this period.",
			o.A.DisplayName, o.B.DisplayName)
	case "full":
		fmt.Fprintf(&b, "%s and %s are in the office on exactly the same days: %s.",
			o.A.DisplayName, o.B.DisplayName, fmtDates(o.BothDays))
	default:
		if len(o.BothDays) > 0 {
			fmt.Fprintf(&b, "%s and %s are both in on %s.", o.A.DisplayName, o.B.DisplayName, fmtDates(o.BothDays))
		}
		if len(o.PartialDays) > 0 {
			if b.Len() > 0 {
				b.WriteString(" ")
			}
			fmt.Fprintf(&b, "On %s they overlap for only part of the day (a half-day arrangement).",
				fmtDates(o.PartialDays))
		}
		if len(o.OnlyADays) > 0 {
			fmt.Fprintf(&b, " Only %s: %s.", o.A.DisplayName, fmtDates(o.OnlyADays))
		}
		if len(o.OnlyBDays) > 0 {
			fmt.Fprintf(&b, " Only %s: %s.", o.B.DisplayName, fmtDates(o.OnlyBDays))
		}
	}
	return b.String()
}

func renderMultiOverlap(m *domain.MultiOverlapResult) string {
	names := make([]string, 0, len(m.People))
	for _, p := range m.People {
		names = append(names, p.DisplayName)
	}
	if len(m.SharedDays) == 0 {
		return fmt.Sprintf("There is no working day when %s are all in the office together.",
			strings.Join(names, ", "))
	}
	return fmt.Sprintf("%s are all in together on %d of %d working days: %s.",
		strings.Join(names, ", "), len(m.SharedDays), m.WorkingDays, fmtDates(m.SharedDays))
}

func renderRecommendation(r *domain.RecommendationResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s for %s:\n", goalHeading(r.Goal), r.Range.Label)
	for i, rec := range r.Recommendations {
		fmt.Fprintf(&b, "%d. %s: %s\n", i+1, fmtDate(rec.Date), rec.Reason)
	}
	return strings.TrimSpace(b.String())
}

func goalHeading(goal domain.OptimizeGoal) string {
	switch goal {
	case domain.GoalMinimizeOverlap, domain.GoalLeastCrowded:
		return "Quietest days"
	case domain.GoalMinimizeCommute:
		return "Best-value office days"
	default:
		return "Best days"
	}
}

func renderSimulation(sim *domain.SimulationResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "That pattern puts you in the office %d days in %s: %s.",
		len(sim.ProposedDays), sim.Range.Label, fmtDates(sim.ProposedDays))
	if sim.Target != nil {
		if len(sim.MatchDays) == 0 {
			fmt.Fprintf(&b, " You wouldn't overlap with %s on any of them.", sim.Target.DisplayName)
		} else {
			fmt.Fprintf(&b, " You'd overlap with %s on %d of them (%s): %s.",
				sim.Target.DisplayName, len(sim.MatchDays), fmtPct(sim.Percent), fmtDates(sim.MatchDays))
		}
	}
	return b.String()
}

func renderTrend(t *domain.TrendResult) string {
	switch t.Direction {
	case "same":
		return fmt.Sprintf("%s was in the office %s days in %s, the same as %s.",
			t.Person.DisplayName, fmtDays(t.Current.OfficeDays), t.CurrentLabel, t.PreviousLabel)
	case "more":
		return fmt.Sprintf("%s was in the office more in %s: %s days, up from %s in %s.",
			t.Person.DisplayName, t.CurrentLabel, fmtDays(t.Current.OfficeDays),
			fmtDays(t.Previous.OfficeDays), t.PreviousLabel)
	default:
		return fmt.Sprintf("%s was in the office less in %s: %s days, down from %s in %s.",
			t.Person.DisplayName, t.CurrentLabel, fmtDays(t.Current.OfficeDays),
			fmtDays(t.Previous.OfficeDays), t.PreviousLabel)
	}
}

// disclaimers reports how trustworthy each person's numbers are
// Ordered by severity of the gap; high coverage needs no caveat
func disclaimers(schedules []domain.PersonSchedule) string {
	var lines []string
	for _, sc := range schedules {
		switch sc.Coverage.Level {
		case domain.CoverageNone:
			lines = append(lines, fmt.Sprintf("%s hasn't set a schedule for %s yet.",
				sc.Person.DisplayName, sc.Range.Label))
		case domain.CoverageLow:
			lines = append(lines, fmt.Sprintf(
				"Heads up: %s has logged very little of %s, so their numbers are mostly assumptions.",
				sc.Person.DisplayName, sc.Range.Label))
		case domain.CoverageMedium:
			lines = append(lines, fmt.Sprintf("Note: %s's schedule only partly covers %s.",
				sc.Person.DisplayName, sc.Range.Label))
		}
	}
	return strings.Join(lines, "\n")
}

func renderOutOfScope(reason string) string {
	if reason == "" {
		reason = "I can only answer questions about office attendance and schedules."
	}
	return reason + " Try asking who's in the office, or about someone's attendance."
}

func renderClarification(ambiguities []string) string {
	if len(ambiguities) == 0 {
		return "I need a bit more detail to answer that. Could you rephrase the question?"
	}
	return "Before I answer, help me pin down: " + strings.Join(ambiguities, "; ") + "."
}

// fmtDays prints half-day resolution counts without trailing zeros
func fmtDays(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func fmtPct(p float64) string {
	return fmt.Sprintf("%.0f%%", p)
}

func fmtDate(d time.Time) string {
	return d.Format("Monday 02 Jan")
}

const maxListedDates = 8

func fmtDates(days []time.Time) string {
	out := make([]string, 0, len(days))
	for i, d := range days {
		if i == maxListedDates {
			out = append(out, fmt.Sprintf("and %d more", len(days)-maxListedDates))
			break
		}
		out = append(out, d.Format("Mon 02 Jan"))
	}
	return strings.Join(out, ", ")
}
