package domain

import "time"

// ResultKind discriminates the reasoning result union
type ResultKind string

const (
	// KindComparison ranks named people by office attendance
	KindComparison ResultKind = "comparison"
	// KindTeamAverage compares one person against the team mean
	KindTeamAverage ResultKind = "team_average"
	// KindOverlap classifies how two people's office days line up
	KindOverlap ResultKind = "overlap"
	// KindMultiOverlap counts days all named people share in office
	KindMultiOverlap ResultKind = "multi_overlap"
	// KindRecommendation ranks candidate days for a goal
	KindRecommendation ResultKind = "recommendation"
	// KindSimulation projects a hypothetical attendance pattern
	KindSimulation ResultKind = "simulation"
	// KindTrend compares attendance across two periods
	KindTrend ResultKind = "trend"
)

// ComparisonEntry is one person's share in a comparison
type ComparisonEntry struct {
	Person     Person
	OfficeDays float64
	Percent    float64
	Coverage   Coverage
}

// ComparisonResult ranks people by office days; Tied is set when the
// top entries are equal after half-day accounting
type ComparisonResult struct {
	Entries []ComparisonEntry
	Winner  *Person
	Tied    bool
}

// TeamAverageResult places one person against the team mean
// Delta is in percentage points; Position is above, below, or at
type TeamAverageResult struct {
	Subject     ComparisonEntry
	TeamAverage float64
	Delta       float64
	Position    string
	TeamSize    int
}

// OverlapResult classifies two people's shared office days per working day
// BothDays holds full-day overlaps; PartialDays holds days where at least one
// side is only present through a half-day arrangement. Degree is full,
// partial, or none
type OverlapResult struct {
	A, B        Person
	BothDays    []time.Time
	PartialDays []time.Time
	OnlyADays   []time.Time
	OnlyBDays   []time.Time
	WorkingDays int
	Degree      string
}

// MultiOverlapResult counts days every named person is in together
type MultiOverlapResult struct {
	People      []Person
	SharedDays  []time.Time
	WorkingDays int
}

// DayRecommendation is one ranked candidate day with a readable reason
type DayRecommendation struct {
	Date   time.Time
	Score  float64
	Reason string
}

// RecommendationResult ranks candidate days for a goal
// An empty list is a valid outcome the assembler must explain
type RecommendationResult struct {
	Goal            OptimizeGoal
	Recommendations []DayRecommendation
	Range           DateRange
}

// SimulationResult projects a hypothetical pattern against a target
type SimulationResult struct {
	Subject      Person
	Target       *Person
	ProposedDays []time.Time
	MatchDays    []time.Time
	Percent      float64
	Range        DateRange
}

// TrendResult compares attendance between two periods
// Direction is more, less, or same
type TrendResult struct {
	Person        Person
	Current       ScheduleStats
	Previous      ScheduleStats
	CurrentLabel  string
	PreviousLabel string
	Direction     string
}

// ReasoningResult is a tagged union; exactly the variant named by Kind is set
type ReasoningResult struct {
	Kind           ResultKind
	Comparison     *ComparisonResult
	TeamAverage    *TeamAverageResult
	Overlap        *OverlapResult
	MultiOverlap   *MultiOverlapResult
	Recommendation *RecommendationResult
	Simulation     *SimulationResult
	Trend          *TrendResult
}

// AnswersIntent reports whether the result can honestly answer intent
// The table is deliberately loose only where results genuinely substitute,
// such as a team average standing in for a comparison
func (r *ReasoningResult) AnswersIntent(intent Intent) bool {
	if r == nil {
		return false
	}
	switch intent {
	case IntentCompareAttendance:
		return r.Kind == KindComparison || r.Kind == KindTeamAverage
	case IntentTeamAvgComparison:
		return r.Kind == KindTeamAverage
	case IntentOverlapCheck:
		return r.Kind == KindOverlap || r.Kind == KindMultiOverlap
	case IntentMultiPersonOverlap:
		return r.Kind == KindMultiOverlap || r.Kind == KindOverlap
	case IntentOptimizeDays, IntentAvoidDays, IntentMeetingPlanning:
		return r.Kind == KindRecommendation
	case IntentSimulation:
		return r.Kind == KindSimulation
	case IntentTrendAnalysis:
		return r.Kind == KindTrend
	default:
		return false
	}
}
