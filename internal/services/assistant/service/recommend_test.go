package service

import (
	"testing"
	"time"

	"whosin/internal/core/workcal"
	"whosin/internal/services/assistant/domain"
)

func TestRecommend_MaximizeOverlapRanksBusyDaysFirst(t *testing.T) {
	t.Parallel()

	caller := schedWithOffice(t, "me", "Asha")
	others := []domain.PersonSchedule{
		schedWithOffice(t, "b", "Bala", "2026-03-10", "2026-03-11"),
		schedWithOffice(t, "c", "Chen", "2026-03-11"),
	}

	res := recommend(domain.GoalMaximizeOverlap, nil, caller, others, false, caller.Range).Recommendation
	if len(res.Recommendations) == 0 {
		t.Fatalf("expected recommendations")
	}
	top := res.Recommendations[0]
	if workcal.Key(top.Date) != "2026-03-11" {
		t.Fatalf("wednesday has 2 of 2 in, expected it first, got %s", workcal.Key(top.Date))
	}
	if top.Reason != "2 of 2 expected in office" {
		t.Fatalf("reason should be human readable, got %q", top.Reason)
	}
}

func TestRecommend_LeastCrowdedPrefersEmptyDays(t *testing.T) {
	t.Parallel()

	caller := schedWithOffice(t, "me", "Asha")
	others := []domain.PersonSchedule{
		schedWithOffice(t, "b", "Bala", "2026-03-09", "2026-03-10", "2026-03-11", "2026-03-12"),
	}

	res := recommend(domain.GoalLeastCrowded, nil, caller, others, false, caller.Range).Recommendation
	top := res.Recommendations[0]
	// friday the 13th is the only day Bala is out
	if workcal.Key(top.Date) != "2026-03-13" {
		t.Fatalf("expected the empty friday first, got %s", workcal.Key(top.Date))
	}
}

func TestRecommend_ConstraintsFilterBeforeScoring(t *testing.T) {
	t.Parallel()

	caller := schedWithOffice(t, "me", "Asha")
	others := []domain.PersonSchedule{
		schedWithOffice(t, "b", "Bala", "2026-03-13"), // friday is the busiest day
	}

	res := recommend(domain.GoalMaximizeOverlap, []string{"not fridays"}, caller, others, false, caller.Range).Recommendation
	for _, rec := range res.Recommendations {
		if rec.Date.Weekday() == time.Friday {
			t.Fatalf("friday was excluded yet recommended: %+v", rec)
		}
	}
}

func TestRecommend_OnlyConstraintRestrictsCandidates(t *testing.T) {
	t.Parallel()

	caller := schedWithOffice(t, "me", "Asha")
	res := recommend(domain.GoalMaximizeOverlap,
		[]string{"only tuesdays and thursdays"}, caller, nil, false, caller.Range).Recommendation
	if len(res.Recommendations) != 2 {
		t.Fatalf("one week has one tuesday and one thursday, got %d", len(res.Recommendations))
	}
	for _, rec := range res.Recommendations {
		if wd := rec.Date.Weekday(); wd != time.Tuesday && wd != time.Thursday {
			t.Fatalf("candidate outside the only-set: %s", wd)
		}
	}
}

func TestRecommend_ImpossibleConstraintsYieldEmpty(t *testing.T) {
	t.Parallel()

	caller := schedWithOffice(t, "me", "Asha")
	constraints := []string{
		"not mondays", "not tuesdays", "not wednesdays", "not thursdays", "not fridays",
	}
	res := recommend(domain.GoalMaximizeOverlap, constraints, caller, nil, false, caller.Range).Recommendation
	if len(res.Recommendations) != 0 {
		t.Fatalf("excluding every weekday must produce an empty list, got %+v", res.Recommendations)
	}
}

func TestRecommend_CapsAtThree(t *testing.T) {
	t.Parallel()

	caller := schedWithOffice(t, "me", "Asha")
	res := recommend(domain.GoalMaximizeTeamPresence, nil, caller, nil, false, caller.Range).Recommendation
	if len(res.Recommendations) != maxRecommendations {
		t.Fatalf("five candidate days must cap at %d, got %d", maxRecommendations, len(res.Recommendations))
	}
}

func TestRecommend_NamedPeopleAppearInReasons(t *testing.T) {
	t.Parallel()

	caller := schedWithOffice(t, "me", "Asha")
	others := []domain.PersonSchedule{
		schedWithOffice(t, "b", "Bala", "2026-03-10"),
		schedWithOffice(t, "c", "Chen", "2026-03-10"),
	}

	res := recommend(domain.GoalMaximizeOverlap, nil, caller, others, true, caller.Range).Recommendation
	top := res.Recommendations[0]
	if workcal.Key(top.Date) != "2026-03-10" {
		t.Fatalf("tuesday has both in, expected it first, got %s", workcal.Key(top.Date))
	}
	if top.Reason != "Bala and Chen are in office" {
		t.Fatalf("reasons must name the requested people, got %q", top.Reason)
	}

	solo := recommend(domain.GoalMaximizeOverlap, nil, caller, others[:1], true, caller.Range).Recommendation
	if solo.Recommendations[0].Reason != "Bala is in office" {
		t.Fatalf("a single person reads singular, got %q", solo.Recommendations[0].Reason)
	}
}

func TestAndJoin(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   []string
		want string
	}{
		{[]string{"Bala"}, "Bala"},
		{[]string{"Bala", "Chen"}, "Bala and Chen"},
		{[]string{"Asha", "Bala", "Chen"}, "Asha, Bala and Chen"},
	}
	for _, c := range cases {
		if got := andJoin(c.in); got != c.want {
			t.Fatalf("andJoin(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseDayConstraints(t *testing.T) {
	t.Parallel()

	exclude, only := parseDayConstraints([]string{"not fridays", "only tuesdays and thursdays"})
	if _, ok := exclude[time.Friday]; !ok {
		t.Fatalf("friday should be excluded: %v", exclude)
	}
	if _, ok := only[time.Tuesday]; !ok {
		t.Fatalf("tuesday should be in the only-set: %v", only)
	}
	if _, ok := only[time.Thursday]; !ok {
		t.Fatalf("thursday should be in the only-set: %v", only)
	}
	if len(only) != 2 || len(exclude) != 1 {
		t.Fatalf("unexpected sets: exclude=%v only=%v", exclude, only)
	}
}
