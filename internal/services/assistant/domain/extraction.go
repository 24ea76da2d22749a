package domain

// Intent is the closed set of question intents the pipeline can reason about
type Intent string

const (
	// IntentCompareAttendance compares two or more people's attendance
	IntentCompareAttendance Intent = "compare_attendance"
	// IntentTeamAvgComparison compares one person against the team mean
	IntentTeamAvgComparison Intent = "team_avg_comparison"
	// IntentOverlapCheck asks how two people's office days line up
	IntentOverlapCheck Intent = "overlap_check"
	// IntentMultiPersonOverlap asks when several people are in together
	IntentMultiPersonOverlap Intent = "multi_person_overlap"
	// IntentOptimizeDays asks which days best satisfy a goal
	IntentOptimizeDays Intent = "optimize_days"
	// IntentAvoidDays asks which days to stay away from the office
	IntentAvoidDays Intent = "avoid_days"
	// IntentMeetingPlanning asks for days suited to an in-person meeting
	IntentMeetingPlanning Intent = "meeting_planning"
	// IntentSimulation asks a what-if over a proposed attendance pattern
	IntentSimulation Intent = "simulation"
	// IntentTrendAnalysis asks how attendance changed over time
	IntentTrendAnalysis Intent = "trend_analysis"
	// IntentOutOfScope marks questions the assistant will not answer
	IntentOutOfScope Intent = "out_of_scope"
	// IntentClarifyNeeded marks questions that need a follow-up first
	IntentClarifyNeeded Intent = "clarify_needed"
)

// ValidIntent reports whether s names a known intent
func ValidIntent(s string) bool {
	switch Intent(s) {
	case IntentCompareAttendance, IntentTeamAvgComparison, IntentOverlapCheck,
		IntentMultiPersonOverlap, IntentOptimizeDays, IntentAvoidDays,
		IntentMeetingPlanning, IntentSimulation, IntentTrendAnalysis,
		IntentOutOfScope, IntentClarifyNeeded:
		return true
	}
	return false
}

// OptimizeGoal is the closed set of optimization objectives
type OptimizeGoal string

const (
	// GoalMinimizeOverlap prefers days when named people are absent
	GoalMinimizeOverlap OptimizeGoal = "minimize_overlap"
	// GoalMaximizeOverlap prefers days when named people are present
	GoalMaximizeOverlap OptimizeGoal = "maximize_overlap"
	// GoalMinimizeCommute prefers the fewest distinct office days
	GoalMinimizeCommute OptimizeGoal = "minimize_commute"
	// GoalLeastCrowded prefers days with the lowest expected headcount
	GoalLeastCrowded OptimizeGoal = "least_crowded"
	// GoalMaximizeTeamPresence prefers days with the highest headcount
	GoalMaximizeTeamPresence OptimizeGoal = "maximize_team_presence"
)

// ValidGoal reports whether s names a known optimization goal
func ValidGoal(s string) bool {
	switch OptimizeGoal(s) {
	case GoalMinimizeOverlap, GoalMaximizeOverlap, GoalMinimizeCommute,
		GoalLeastCrowded, GoalMaximizeTeamPresence:
		return true
	}
	return false
}

// SimParams describes the hypothetical pattern of a simulation question
// Dates holds literal YYYY-MM-DD days; Weekdays holds lowercase weekday names
// expanded over the resolved range when Dates is empty
type SimParams struct {
	Dates    []string `json:"dates,omitempty"`
	Weekdays []string `json:"weekdays,omitempty"`
	Target   string   `json:"target,omitempty"`
}

// Empty reports whether the simulation carries no usable pattern
func (p *SimParams) Empty() bool {
	return p == nil || (len(p.Dates) == 0 && len(p.Weekdays) == 0)
}

// Extraction is the structured reading of a question
// It is always usable: validation coerces unknown values rather than failing
type Extraction struct {
	Intent             Intent
	People             []string
	TimePhrase         string
	ExplicitRange      string
	Constraints        []string
	Goal               OptimizeGoal
	Sim                *SimParams
	NeedsClarification bool
	Ambiguities        []string
	OutOfScopeReason   string
}
