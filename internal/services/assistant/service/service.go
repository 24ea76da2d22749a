// Package service implements the assistant question pipeline
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"whosin/internal/adapters/llm"
	"whosin/internal/core/router"
	"whosin/internal/core/timeparse"
	"whosin/internal/core/workcal"
	"whosin/internal/modkit/repokit"
	"whosin/internal/platform/logger"
	"whosin/internal/services/assistant/domain"
	srepo "whosin/internal/services/assistant/repo"
)

const genericApology = "Sorry, something went wrong while working that out. Please try again."

// Completer is the language model capability the pipeline depends on
type Completer interface {
	Complete(ctx context.Context, messages []llm.Message, opts llm.CompleteOpts) (string, error)
}

// Config for the assistant service
type Config struct {
	ExtractTimeout    time.Duration
	ParaphraseTimeout time.Duration
	Paraphrase        bool
	MaxPeople         int
	HistoryTurns      int
}

// Service is the concrete implementation of domain.ServicePort
type Service struct {
	DB   repokit.TxRunner
	Repo repokit.Binder[srepo.Storage]
	LLM  Completer
	Cfg  Config

	log logger.Logger
	now func() time.Time
}

// New constructs an assistant service
// LLM may be nil; every model-backed step then falls back deterministically
func New(db repokit.TxRunner, binder repokit.Binder[srepo.Storage], model Completer, cfg Config) *Service {
	if db == nil {
		panic("assistant.Service requires a non-nil TxRunner")
	}
	if binder == nil {
		panic("assistant.Service requires a non-nil repo Binder")
	}
	if cfg.ExtractTimeout <= 0 {
		cfg.ExtractTimeout = 15 * time.Second
	}
	if cfg.ParaphraseTimeout <= 0 {
		cfg.ParaphraseTimeout = 12 * time.Second
	}
	if cfg.MaxPeople <= 0 {
		cfg.MaxPeople = 25
	}
	if cfg.HistoryTurns <= 0 {
		cfg.HistoryTurns = 6
	}
	return &Service{
		DB:   db,
		Repo: binder,
		LLM:  model,
		Cfg:  cfg,
		log:  *logger.Named("assistant"),
		now:  time.Now,
	}
}

// Ask answers a natural language schedule question
// Internal failures never surface as transport errors; they become an apology
func (s *Service) Ask(ctx context.Context, callerID string, in domain.AskInput) (domain.AskOutput, error) {
	out := domain.AskOutput{AnswerID: uuid.NewString()}
	today := workcal.Date(s.now())

	decision := router.Route(in.Question)
	if decision.Path == router.PathFast {
		if answer, ok := s.answerSimple(ctx, decision.SimpleIntent, callerID, in.Question, today); ok {
			out.Answer = answer
			out.Intent = string(decision.SimpleIntent)
			return out, nil
		}
	}

	ex, usedLLM := s.extract(ctx, in.Question, in.History)
	out.UsedLLM = usedLLM
	out.Intent = string(ex.Intent)

	switch ex.Intent {
	case domain.IntentOutOfScope:
		out.Answer = renderOutOfScope(ex.OutOfScopeReason)
		return out, nil
	case domain.IntentClarifyNeeded:
		out.Answer = renderClarification(ex.Ambiguities)
		return out, nil
	}
	if ex.NeedsClarification {
		out.Answer = renderClarification(ex.Ambiguities)
		return out, nil
	}

	caller, people, clarification, err := s.resolvePeople(ctx, callerID, ex)
	if err != nil {
		s.log.Error().Err(err).Str("question", in.Question).Str("intent", string(ex.Intent)).Msg("people resolution failed")
		out.Answer = genericApology
		return out, nil
	}
	if clarification != "" {
		out.Answer = clarification
		return out, nil
	}

	rng := s.resolveRange(ex, today)

	result, schedules, err := s.reason(ctx, ex, caller, people, rng, today)
	if err != nil {
		s.log.Error().Err(err).Str("question", in.Question).Str("intent", string(ex.Intent)).Msg("reasoning failed")
		out.Answer = genericApology
		return out, nil
	}

	if ok, fallback := checkRelevance(ex.Intent, result); !ok {
		out.Answer = fallback
		return out, nil
	}

	out.Answer = s.render(ctx, result, schedules)
	return out, nil
}

// PresenceToday reports who is in the office today
func (s *Service) PresenceToday(ctx context.Context) (domain.PresenceTodayResp, error) {
	today := workcal.Date(s.now())
	day, err := s.presenceOn(ctx, today)
	if err != nil {
		return domain.PresenceTodayResp{}, err
	}

	resp := domain.PresenceTodayResp{
		Date:     workcal.Key(today),
		Count:    day.Count,
		TeamSize: day.TeamSize,
		InOffice: make([]domain.PresencePersonOut, 0, len(day.InOffice)),
	}
	for _, p := range day.InOffice {
		resp.InOffice = append(resp.InOffice, domain.PresencePersonOut{ID: p.ID, DisplayName: p.DisplayName})
	}
	return resp, nil
}

// resolveRange turns the extraction's time hints into a concrete range
// An explicit range from the extraction wins over the free-form phrase
func (s *Service) resolveRange(ex domain.Extraction, today time.Time) domain.DateRange {
	if ex.ExplicitRange != "" {
		if r, ok := timeparse.Explicit(ex.ExplicitRange); ok {
			return domain.DateRange{Start: r.Start, End: r.End, Label: r.Label}
		}
	}
	r := timeparse.Resolve(ex.TimePhrase, today)
	return domain.DateRange{Start: r.Start, End: r.End, Label: r.Label}
}

// reason dispatches the intent to its computation over loaded schedules
func (s *Service) reason(
	ctx context.Context,
	ex domain.Extraction,
	caller domain.Person,
	people []domain.Person,
	rng domain.DateRange,
	today time.Time,
) (*domain.ReasoningResult, []domain.PersonSchedule, error) {
	switch ex.Intent {
	case domain.IntentCompareAttendance:
		subjects := withCaller(caller, people)
		schedules, err := s.loadSchedules(ctx, subjects, rng)
		if err != nil {
			return nil, nil, err
		}
		return comparison(schedules), schedules, nil

	case domain.IntentTeamAvgComparison:
		subject := caller
		if len(people) > 0 {
			subject = people[0]
		}
		roster, err := s.roster(ctx)
		if err != nil {
			return nil, nil, err
		}
		schedules, err := s.loadSchedules(ctx, roster, rng)
		if err != nil {
			return nil, nil, err
		}
		res := teamAverage(subject, schedules)
		return res, subjectOnly(subject, schedules), nil

	case domain.IntentOverlapCheck:
		subjects := withCaller(caller, people)
		if len(subjects) > 2 {
			subjects = subjects[:2]
		}
		schedules, err := s.loadSchedules(ctx, subjects, rng)
		if err != nil {
			return nil, nil, err
		}
		return overlap(schedules), schedules, nil

	case domain.IntentMultiPersonOverlap:
		subjects := withCaller(caller, people)
		schedules, err := s.loadSchedules(ctx, subjects, rng)
		if err != nil {
			return nil, nil, err
		}
		return multiOverlap(schedules), schedules, nil

	case domain.IntentOptimizeDays, domain.IntentAvoidDays, domain.IntentMeetingPlanning:
		goal := ex.Goal
		if goal == "" {
			goal = defaultGoal(ex.Intent)
		}
		others := people
		named := len(others) > 0
		if !named {
			var err error
			others, err = s.roster(ctx)
			if err != nil {
				return nil, nil, err
			}
			others = without(others, caller.ID)
		}
		schedules, err := s.loadSchedules(ctx, append([]domain.Person{caller}, others...), rng)
		if err != nil {
			return nil, nil, err
		}
		res := recommend(goal, ex.Constraints, schedules[0], schedules[1:], named, rng)
		return res, schedules, nil

	case domain.IntentSimulation:
		var target *domain.Person
		if len(people) > 0 && people[0].ID != caller.ID {
			target = &people[0]
		}
		subjects := []domain.Person{caller}
		if target != nil {
			subjects = append(subjects, *target)
		}
		schedules, err := s.loadSchedules(ctx, subjects, rng)
		if err != nil {
			return nil, nil, err
		}
		var targetSched *domain.PersonSchedule
		if target != nil {
			targetSched = &schedules[1]
		}
		res := simulate(ex.Sim, schedules[0], targetSched, rng)
		return res, schedules, nil

	case domain.IntentTrendAnalysis:
		subject := caller
		if len(people) > 0 {
			subject = people[0]
		}
		prev := previousRange(rng, today)
		cur, err := s.loadSchedules(ctx, []domain.Person{subject}, rng)
		if err != nil {
			return nil, nil, err
		}
		old, err := s.loadSchedules(ctx, []domain.Person{subject}, prev)
		if err != nil {
			return nil, nil, err
		}
		return trend(cur[0], old[0]), cur, nil
	}

	return nil, nil, nil
}

// previousRange derives the comparison period for trend questions
// A month-shaped range steps back one month; anything else shifts by its width
func previousRange(rng domain.DateRange, today time.Time) domain.DateRange {
	first, last := workcal.MonthRange(rng.Start, 0)
	if rng.Start.Equal(first) && rng.End.Equal(last) {
		s, e := workcal.MonthRange(rng.Start, -1)
		return domain.DateRange{Start: s, End: e, Label: "the month before"}
	}
	width := rng.End.Sub(rng.Start)
	end := rng.Start.AddDate(0, 0, -1)
	return domain.DateRange{Start: end.Add(-width), End: end, Label: "the period before"}
}

// withCaller prepends the caller unless already referenced
func withCaller(caller domain.Person, people []domain.Person) []domain.Person {
	for _, p := range people {
		if p.ID == caller.ID {
			return people
		}
	}
	return append([]domain.Person{caller}, people...)
}

// without filters one id out of a roster
func without(people []domain.Person, id string) []domain.Person {
	out := make([]domain.Person, 0, len(people))
	for _, p := range people {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

// subjectOnly narrows loaded schedules down to the subject for rendering
func subjectOnly(subject domain.Person, schedules []domain.PersonSchedule) []domain.PersonSchedule {
	for _, sc := range schedules {
		if sc.Person.ID == subject.ID {
			return []domain.PersonSchedule{sc}
		}
	}
	return nil
}

// defaultGoal picks the objective an intent implies when none was extracted
func defaultGoal(intent domain.Intent) domain.OptimizeGoal {
	switch intent {
	case domain.IntentAvoidDays:
		return domain.GoalLeastCrowded
	case domain.IntentMeetingPlanning:
		return domain.GoalMaximizeOverlap
	default:
		return domain.GoalMaximizeTeamPresence
	}
}

// roster lists active people bounded by the configured cap
func (s *Service) roster(ctx context.Context) ([]domain.Person, error) {
	var people []domain.Person
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var e error
		people, e = s.Repo.Bind(q).ActivePeople(ctx)
		return e
	})
	if err != nil {
		return nil, err
	}
	if len(people) > s.Cfg.MaxPeople {
		people = people[:s.Cfg.MaxPeople]
	}
	return people, nil
}
