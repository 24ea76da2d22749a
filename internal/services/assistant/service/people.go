package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"whosin/internal/modkit/repokit"
	"whosin/internal/services/assistant/domain"
)

// foldChain strips accents so "José" matches "jose"
var foldChain = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fold lowercases and accent-folds a name for matching
func fold(s string) string {
	out, _, err := transform.String(foldChain, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

var selfRefs = map[string]struct{}{
	"me": {}, "i": {}, "myself": {}, "my": {}, "self": {}, "mine": {},
}

var teamRefs = map[string]struct{}{
	"team": {}, "my team": {}, "the team": {}, "everyone": {}, "everybody": {},
	"all": {}, "whole team": {}, "colleagues": {},
}

// resolvePeople maps extracted references onto the roster
// A non-empty clarification means the question cannot proceed as asked
func (s *Service) resolvePeople(
	ctx context.Context,
	callerID string,
	ex domain.Extraction,
) (domain.Person, []domain.Person, string, error) {
	var roster, favorites []domain.Person
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		st := s.Repo.Bind(q)
		var e error
		if roster, e = st.ActivePeople(ctx); e != nil {
			return e
		}
		favorites, e = st.FavoritePeople(ctx, callerID)
		return e
	})
	if err != nil {
		return domain.Person{}, nil, "", err
	}

	caller := domain.Person{ID: callerID, DisplayName: "You"}
	for _, p := range roster {
		if p.ID == callerID {
			caller = p
			break
		}
	}

	var (
		resolved       []domain.Person
		seen           = map[string]struct{}{}
		clarifications []string
	)
	add := func(p domain.Person) {
		if _, ok := seen[p.ID]; !ok {
			seen[p.ID] = struct{}{}
			resolved = append(resolved, p)
		}
	}

	for _, ref := range ex.People {
		key := fold(ref)
		if _, ok := selfRefs[key]; ok {
			add(caller)
			continue
		}
		if _, ok := teamRefs[key]; ok {
			team := favorites
			if len(team) == 0 {
				team = without(roster, caller.ID)
			}
			if len(team) > s.Cfg.MaxPeople {
				team = team[:s.Cfg.MaxPeople]
			}
			for _, p := range team {
				add(p)
			}
			continue
		}

		matches := matchName(roster, key)
		switch len(matches) {
		case 0:
			clarifications = append(clarifications,
				fmt.Sprintf("I couldn't find anyone named %s. Could you check the spelling?", ref))
		case 1:
			add(matches[0])
		default:
			names := make([]string, 0, len(matches))
			for _, m := range matches {
				names = append(names, m.DisplayName)
			}
			clarifications = append(clarifications,
				fmt.Sprintf("Which %s did you mean: %s?", ref, strings.Join(names, ", ")))
		}
	}

	return caller, resolved, strings.Join(clarifications, "\n"), nil
}

// matchName prefix-matches ref against each word of each display name
func matchName(roster []domain.Person, ref string) []domain.Person {
	if ref == "" {
		return nil
	}
	var out []domain.Person
	for _, p := range roster {
		folded := fold(p.DisplayName)
		if folded == ref {
			return []domain.Person{p}
		}
		for _, word := range strings.Fields(folded) {
			if strings.HasPrefix(word, ref) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
