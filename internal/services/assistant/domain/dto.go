package domain

// AskInput is the body of the ask endpoint
type AskInput struct {
	Question string           `json:"question" validate:"required,max=2000" example:"who is in office more, me or rahul?"`
	History  []HistoryMessage `json:"history,omitempty" validate:"omitempty,max=20,dive"`
}

// AskOutput is the answer payload
type AskOutput struct {
	AnswerID string `json:"answer_id" example:"7f8b0a1e-9b0a-4a8e-a9cb-0b6d2f6e8f10"`
	Answer   string `json:"answer"    example:"You were in office 12 days this month; Rahul 9."`
	Intent   string `json:"intent"    example:"compare_attendance"`
	UsedLLM  bool   `json:"used_llm"  example:"true"`
}

// PresencePersonOut is one person in a presence readout
type PresencePersonOut struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name" example:"Rahul"`
}

// PresenceTodayResp lists who is in the office today
type PresenceTodayResp struct {
	Date     string              `json:"date" example:"2026-03-10"`
	Count    int                 `json:"count" example:"4"`
	TeamSize int                 `json:"team_size" example:"11"`
	InOffice []PresencePersonOut `json:"in_office"`
}
