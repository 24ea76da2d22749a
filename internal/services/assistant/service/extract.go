package service

import (
	"context"
	"encoding/json"
	"strings"
	"unicode"

	"whosin/internal/adapters/llm"
	"whosin/internal/core/router"
	"whosin/internal/core/timeparse"
	"whosin/internal/core/workcal"
	"whosin/internal/services/assistant/domain"
)

const extractSystemPrompt = `You read workplace attendance questions and emit one JSON object, nothing else.

Schema:
{
  "intent": "compare_attendance|team_avg_comparison|overlap_check|multi_person_overlap|optimize_days|avoid_days|meeting_planning|simulation|trend_analysis|out_of_scope|clarify_needed",
  "people": ["names mentioned, excluding the asker"],
  "time_phrase": "the time expression as written, e.g. 'last month'",
  "explicit_range": "YYYY-MM-DD to YYYY-MM-DD when literal dates appear, else empty",
  "constraints": ["day constraints as written, e.g. 'not fridays'"],
  "goal": "minimize_overlap|maximize_overlap|minimize_commute|least_crowded|maximize_team_presence or empty",
  "simulation": {"dates": ["YYYY-MM-DD"], "weekdays": ["tuesday"], "target": "name"},
  "needs_clarification": false,
  "ambiguities": ["what you could not pin down"],
  "out_of_scope_reason": "set only with intent out_of_scope"
}

Rules: never invent people. Questions unrelated to office attendance, schedules, or presence are out_of_scope. When a pronoun refers to someone from earlier conversation turns, resolve it from those turns.`

// wireExtraction is the JSON shape the model is asked to produce
type wireExtraction struct {
	Intent             string            `json:"intent"`
	People             []string          `json:"people"`
	TimePhrase         string            `json:"time_phrase"`
	ExplicitRange      string            `json:"explicit_range"`
	Constraints        []string          `json:"constraints"`
	Goal               string            `json:"goal"`
	Simulation         *domain.SimParams `json:"simulation"`
	NeedsClarification bool              `json:"needs_clarification"`
	Ambiguities        []string          `json:"ambiguities"`
	OutOfScopeReason   string            `json:"out_of_scope_reason"`
}

// extract produces a usable Extraction for any question
// The bool reports whether the model actually contributed
func (s *Service) extract(ctx context.Context, question string, history []domain.HistoryMessage) (domain.Extraction, bool) {
	if s.LLM == nil {
		return s.heuristicExtract(question, history), false
	}

	messages := []llm.Message{{Role: "system", Content: extractSystemPrompt}}
	turns := history
	if len(turns) > s.Cfg.HistoryTurns {
		turns = turns[len(turns)-s.Cfg.HistoryTurns:]
	}
	for _, h := range turns {
		messages = append(messages, llm.Message{Role: h.Role, Content: h.Text})
	}
	messages = append(messages, llm.Message{Role: "user", Content: question})

	raw, err := s.LLM.Complete(ctx, messages, llm.CompleteOpts{
		JSONMode: true,
		Timeout:  s.Cfg.ExtractTimeout,
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("extraction model call failed, using heuristics")
		return s.heuristicExtract(question, history), false
	}

	var wire wireExtraction
	if err := json.Unmarshal([]byte(stripFences(raw)), &wire); err != nil {
		s.log.Warn().Err(err).Msg("extraction response unparseable, using heuristics")
		return s.heuristicExtract(question, history), false
	}

	ex := s.coerce(wire, question)
	ex = overrideMisread(ex, question)
	ex.People = backfillPronouns(ex.People, question, history)
	return ex, true
}

// coerce maps the wire shape onto the closed domain sets
// Unknown intents become out_of_scope; unknown goals fall back to a guess
func (s *Service) coerce(wire wireExtraction, question string) domain.Extraction {
	ex := domain.Extraction{
		TimePhrase:         strings.TrimSpace(wire.TimePhrase),
		ExplicitRange:      strings.TrimSpace(wire.ExplicitRange),
		Constraints:        wire.Constraints,
		NeedsClarification: wire.NeedsClarification,
		Ambiguities:        wire.Ambiguities,
		OutOfScopeReason:   strings.TrimSpace(wire.OutOfScopeReason),
	}

	if domain.ValidIntent(wire.Intent) {
		ex.Intent = domain.Intent(wire.Intent)
	} else {
		ex.Intent = domain.IntentOutOfScope
		ex.OutOfScopeReason = "I couldn't map that question to anything I can answer."
	}

	for _, p := range wire.People {
		if p = strings.TrimSpace(p); p != "" {
			ex.People = append(ex.People, p)
		}
	}

	if wire.Goal != "" {
		if domain.ValidGoal(wire.Goal) {
			ex.Goal = domain.OptimizeGoal(wire.Goal)
		} else {
			ex.Goal = guessGoal(question)
		}
	}

	ex.Sim = sanitizeSim(wire.Simulation)
	return ex
}

// sanitizeSim keeps only dates and weekdays that exist on a real calendar
func sanitizeSim(p *domain.SimParams) *domain.SimParams {
	if p == nil {
		return nil
	}
	out := &domain.SimParams{Target: strings.TrimSpace(p.Target)}
	for _, d := range p.Dates {
		if _, err := workcal.ParseKey(strings.TrimSpace(d)); err == nil {
			out.Dates = append(out.Dates, strings.TrimSpace(d))
		}
	}
	for _, w := range p.Weekdays {
		if _, ok := timeparse.Weekday(w); ok {
			out.Weekdays = append(out.Weekdays, strings.ToLower(strings.TrimSpace(w)))
		}
	}
	if out.Empty() && out.Target == "" {
		return nil
	}
	return out
}

// overrideMisread corrects the two classes of question the model reliably
// misfiles: hypotheticals read as out of scope, and aggregates read as trends
func overrideMisread(ex domain.Extraction, question string) domain.Extraction {
	switch ex.Intent {
	case domain.IntentOutOfScope, domain.IntentClarifyNeeded, domain.IntentTrendAnalysis:
	default:
		return ex
	}

	signals := router.Detect(question)
	if router.Has(signals, router.SignalHypothetical) && mentionsAttendance(question) {
		ex.Intent = domain.IntentSimulation
		ex.NeedsClarification = false
		ex.OutOfScopeReason = ""
		if ex.Sim.Empty() {
			ex.Sim = simFromQuestion(question)
		}
		return ex
	}
	aggregate := router.Has(signals, router.SignalTeamAverage) || router.IsAggregate(question)
	if aggregate && mentionsAttendance(question) {
		ex.Intent = domain.IntentTeamAvgComparison
		ex.NeedsClarification = false
		ex.OutOfScopeReason = ""
	}
	return ex
}

// mentionsAttendance reports whether the question is about presence at all
func mentionsAttendance(q string) bool {
	q = strings.ToLower(q)
	for _, w := range []string{"office", "attendance", "wfh", "work from home", "leave", "in on", "come in", "coming in", "go in", "present"} {
		if strings.Contains(q, w) {
			return true
		}
	}
	return false
}

// backfillPronouns resolves he/she/they against names seen in history
// It covers both an empty people list on a pronoun question and raw pronoun
// tokens the model left inside the list. It only ever surfaces names that
// actually appeared; an unresolvable pronoun is dropped, never searched for
func backfillPronouns(people []string, question string, history []domain.HistoryMessage) []string {
	resolve := func() string {
		for i := len(history) - 1; i >= 0; i-- {
			if name := firstNameIn(history[i].Text); name != "" {
				return name
			}
		}
		return ""
	}

	if len(people) == 0 {
		if !hasPronoun(question) {
			return people
		}
		if name := resolve(); name != "" {
			return []string{name}
		}
		return people
	}

	out := make([]string, 0, len(people))
	for _, p := range people {
		if !isPronoun(p) {
			out = append(out, p)
			continue
		}
		if name := resolve(); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func isPronoun(w string) bool {
	switch strings.Trim(strings.ToLower(w), ".,?! ") {
	case "he", "she", "they", "him", "her", "them", "his", "hers", "their":
		return true
	}
	return false
}

func hasPronoun(q string) bool {
	for _, w := range strings.Fields(q) {
		if isPronoun(w) {
			return true
		}
	}
	return false
}

// nameStopwords are capitalized tokens that are never person names
var nameStopwords = map[string]struct{}{
	"i": {}, "monday": {}, "tuesday": {}, "wednesday": {}, "thursday": {}, "friday": {},
	"saturday": {}, "sunday": {}, "january": {}, "february": {}, "march": {}, "april": {},
	"may": {}, "june": {}, "july": {}, "august": {}, "september": {}, "october": {},
	"november": {}, "december": {}, "office": {}, "team": {}, "ok": {}, "okay": {},
	"yes": {}, "no": {}, "thanks": {}, "what": {}, "who": {}, "when": {}, "where": {},
	"why": {}, "how": {}, "the": {}, "and": {}, "but": {}, "was": {}, "is": {}, "are": {},
	"did": {}, "does": {}, "can": {}, "could": {}, "would": {}, "should": {}, "summary": {},
	"wfh": {}, "today": {}, "tomorrow": {}, "yesterday": {}, "week": {}, "month": {},
}

// firstNameIn returns the first mid-sentence capitalized non-stopword token
// The leading token is skipped; a sentence-initial capital proves nothing
func firstNameIn(text string) string {
	fields := strings.Fields(text)
	for i, w := range fields {
		if i == 0 {
			continue
		}
		w = strings.Trim(w, ".,?!:;\"'")
		if w == "" {
			continue
		}
		r := []rune(w)
		if len(r) < 2 || !unicode.IsUpper(r[0]) {
			continue
		}
		if _, stop := nameStopwords[strings.ToLower(w)]; stop {
			continue
		}
		return w
	}
	return ""
}

// stripFences removes a surrounding markdown code fence if present
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
