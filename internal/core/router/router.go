// Package router performs fast regex classification of schedule questions
// and decides whether a question can skip the model-backed pipeline
package router

import "regexp"

// Path selects which pipeline handles a question
type Path string

const (
	// PathFast answers the question deterministically without the model
	PathFast Path = "fast"
	// PathSlow runs the full extraction pipeline
	PathSlow Path = "slow"
)

// SimpleIntent is a cheap first-pass classification of a question
type SimpleIntent string

const (
	// IntentEventQuery asks about events or meetings
	IntentEventQuery SimpleIntent = "event_query"
	// IntentPersonalAttendance asks about the caller's own attendance
	IntentPersonalAttendance SimpleIntent = "personal_attendance"
	// IntentTeamAnalytics asks for aggregates over the whole team
	IntentTeamAnalytics SimpleIntent = "team_analytics"
	// IntentTeamPresence asks who is in the office on some day
	IntentTeamPresence SimpleIntent = "team_presence"
	// IntentUnknown means no simple rule matched
	IntentUnknown SimpleIntent = "unknown"
)

// Decision is the routing outcome; pure function of the question text
type Decision struct {
	Path         Path
	SimpleIntent SimpleIntent
	Signals      []Signal
}

// teamAnalyticsRe carries the aggregate vocabulary (busiest/peak/average/
// highest and friends); IsAggregate shares it so consumers never grow a
// divergent keyword list
var teamAnalyticsRe = regexp.MustCompile(`(?i)\b(average|avg|percentage|stats|statistics|analytics|busiest|quietest|peak|highest|lowest|most|least)\b.*\b(office|attendance|team|day|people)\b`)

// intent rules are ordered; first match wins
var intentRules = []struct {
	intent SimpleIntent
	re     *regexp.Regexp
}{
	{IntentEventQuery, regexp.MustCompile(`(?i)\b(event|meeting|townhall|town hall|standup|celebration|party)s?\b.*\b(when|what|where|upcoming|scheduled|next)\b|\b(when|what|upcoming)\b.*\b(event|meeting|townhall)s?\b`)},
	{IntentPersonalAttendance, regexp.MustCompile(`(?i)\b(my|how (often|many days) (did|do|have) i|was i|am i|did i)\b.*\b(office|attendance|wfh|leave|work)\b|\bmy (attendance|office days|schedule|leaves?)\b`)},
	{IntentTeamAnalytics, teamAnalyticsRe},
	{IntentTeamPresence, regexp.MustCompile(`(?i)\bwho\b.*\b(office|in|coming|working)\b|\b(is|will)\b.*\b(in|at)\s+(the\s+)?office\b|\bin\s+office\s+(on|this|next|tomorrow|today)\b`)},
}

// IsAggregate reports whether the question carries team-aggregate vocabulary
// regardless of which intent rule fires first
func IsAggregate(question string) bool { return teamAnalyticsRe.MatchString(question) }

// Route classifies question and decides the pipeline path
// the bias is deliberate: any complexity signal forces the slow path because a
// wrong deterministic answer costs more than an extra model call
func Route(question string) Decision {
	intent := IntentUnknown
	for _, r := range intentRules {
		if r.re.MatchString(question) {
			intent = r.intent
			break
		}
	}

	signals := Detect(question)

	d := Decision{Path: PathSlow, SimpleIntent: intent, Signals: signals}
	if intent == IntentUnknown {
		return d
	}
	if len(signals) == 0 {
		d.Path = PathFast
		return d
	}

	// team analytics carve-out: aggregate phrasing like "highest average" trips
	// the comparative detectors without making the question complex
	if intent == IntentTeamAnalytics && onlyAggregateNoise(signals) {
		d.Path = PathFast
	}
	return d
}

// onlyAggregateNoise reports whether every signal is benign aggregate wording
// a hypothetical signal is never noise and forces the slow path
func onlyAggregateNoise(signals []Signal) bool {
	for _, s := range signals {
		switch s {
		case SignalComparative, SignalTeamAverage:
			// benign next to team analytics phrasing
		default:
			return false
		}
	}
	return true
}

// Has reports whether signals contains s
func Has(signals []Signal, s Signal) bool {
	for _, v := range signals {
		if v == s {
			return true
		}
	}
	return false
}
