package module

import (
	"time"

	"whosin/internal/platform/config"
)

// Options holds configuration settings for the assistant module
type Options struct {
	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string

	ExtractTimeout    time.Duration
	ParaphraseTimeout time.Duration
	Paraphrase        bool
	MaxPeople         int
	HistoryTurns      int
}

// FromConfig reads configuration settings from the config.Conf
// An empty LLM_API_KEY disables the model; the pipeline then answers
// from heuristics alone
func FromConfig(cfg config.Conf) Options {
	af := cfg.Prefix("ASSISTANT_")
	return Options{
		LLMBaseURL: af.MayString("LLM_BASE_URL", ""),
		LLMAPIKey:  af.MayString("LLM_API_KEY", ""),
		LLMModel:   af.MayString("LLM_MODEL", ""),

		ExtractTimeout:    af.MayDuration("EXTRACT_TIMEOUT", 15*time.Second),
		ParaphraseTimeout: af.MayDuration("PARAPHRASE_TIMEOUT", 12*time.Second),
		Paraphrase:        af.MayBool("PARAPHRASE", true),
		MaxPeople:         af.MayInt("MAX_PEOPLE", 25),
		HistoryTurns:      af.MayInt("HISTORY_TURNS", 6),
	}
}
