package domain

import "context"

// ServicePort defines the assistant service interface
type ServicePort interface {
	Ask(ctx context.Context, callerID string, in AskInput) (AskOutput, error)
	PresenceToday(ctx context.Context) (PresenceTodayResp, error)
}
