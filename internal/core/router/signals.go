package router

import "regexp"

// Signal is an independent complexity marker found in a question
// signals are cumulative; any one of them is enough to escalate
type Signal string

const (
	// SignalMultiPersonCompare marks explicit comparisons between named people
	SignalMultiPersonCompare Signal = "multi_person_compare"
	// SignalOptimization marks best/worst day seeking language
	SignalOptimization Signal = "optimization"
	// SignalHypothetical marks what-if and simulation language
	SignalHypothetical Signal = "hypothetical"
	// SignalComparative marks generic comparative wording
	SignalComparative Signal = "comparative"
	// SignalConstraint marks explicit day constraints like "not fridays"
	SignalConstraint Signal = "constraint"
	// SignalAmbiguousGoal marks vague goal words that need model help
	SignalAmbiguousGoal Signal = "ambiguous_goal"
	// SignalMeetingPlan marks meeting scheduling language
	SignalMeetingPlan Signal = "meeting_plan"
	// SignalTeamAverage marks comparisons against a team mean
	SignalTeamAverage Signal = "team_avg_comparison"
	// SignalExplainPrevious marks follow-ups about an earlier answer
	SignalExplainPrevious Signal = "explain_previous"
	// SignalCoordination marks multi-person scheduling coordination
	SignalCoordination Signal = "coordination"
)

// one detector per signal; detectors are independent of intent rules
var signalRules = []struct {
	sig Signal
	re  *regexp.Regexp
}{
	{SignalMultiPersonCompare, regexp.MustCompile(`(?i)\bcompare\b|\b(me|my|i)\b.*\b(and|vs\.?|versus)\b.*\b[A-Z]?\w+\b.*\b(office|attendance|days)\b`)},
	{SignalOptimization, regexp.MustCompile(`(?i)\b(best|optimal|ideal|worst|minimi[sz]e|maximi[sz]e|avoid|least|recommend|suggest|which day should)\b`)},
	{SignalHypothetical, regexp.MustCompile(`(?i)\bwhat if\b|\bif (i|we|everyone|everybody|the team|[A-Z]\w+)\b.*\b(go|goes|come|comes|skip|skips|add|adds|switch|switches|start|starts|stop|stops|went|came)\b|\bsuppose\b|\bhypothetical`)},
	{SignalComparative, regexp.MustCompile(`(?i)\b(more|less|fewer|than|most|highest|lowest|better|worse)\b`)},
	{SignalConstraint, regexp.MustCompile(`(?i)\b(not?|except|excluding|other than|skip(ping)?|avoid(ing)?)\s+(on\s+)?(monday|tuesday|wednesday|thursday|friday)s?\b|\bonly\s+(on\s+)?(monday|tuesday|wednesday|thursday|friday)`)},
	{SignalAmbiguousGoal, regexp.MustCompile(`(?i)\b(good|nice|convenient|suitable)\s+(day|time)\b|\bwhen should i\b`)},
	{SignalMeetingPlan, regexp.MustCompile(`(?i)\b(plan|schedule|arrange|set ?up|organi[sz]e)\b.*\b(meeting|sync|catch ?up|session|1:1|one on one)\b|\b(meeting|sync)\b.*\b(everyone|all of us|the team|together)\b`)},
	{SignalTeamAverage, regexp.MustCompile(`(?i)\b(team|everyone|everybody|company)('s)?\s+(average|mean|avg)\b|\b(average|avg|mean)\b.*\bteam\b|\bcompared? (to|with) (the )?team\b`)},
	{SignalExplainPrevious, regexp.MustCompile(`(?i)\b(why|how come|explain)\b.*\b(that|this|previous|last answer|you said?)\b|\bwhat do you mean\b`)},
	{SignalCoordination, regexp.MustCompile(`(?i)\b(all|both)\b.*\b(of us|together|in office|overlap)\b|\b(we|us)\s+(all|both)\b|\bsame day\b.*\b\w+\s+and\s+\w+\b`)},
}

// Detect scans question for every complexity signal independently
func Detect(question string) []Signal {
	var out []Signal
	for _, r := range signalRules {
		if r.re.MatchString(question) {
			out = append(out, r.sig)
		}
	}
	return out
}
