package service

import "whosin/internal/services/assistant/domain"

// checkRelevance verifies the computed result actually answers the intent
// Every rejection carries a message the caller can act on; the raw result is
// never rendered once rejected
func checkRelevance(intent domain.Intent, result *domain.ReasoningResult) (bool, string) {
	if result == nil {
		return false, "I couldn't work out an answer for that. Could you rephrase the question?"
	}
	if !result.AnswersIntent(intent) {
		return false, "I worked something out, but it doesn't actually answer what you asked. " +
			"Could you rephrase the question?"
	}

	switch result.Kind {
	case domain.KindRecommendation:
		if len(result.Recommendation.Recommendations) == 0 {
			return false, "No days in " + result.Recommendation.Range.Label +
				" match those constraints. Try widening the time range or relaxing a constraint."
		}
	case domain.KindSimulation:
		if len(result.Simulation.ProposedDays) == 0 {
			return false, "I couldn't place that pattern on any working day in " +
				result.Simulation.Range.Label + ". Try naming specific days or a different period."
		}
	}
	return true, ""
}
