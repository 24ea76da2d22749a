// Package http provides HTTP transport for the assistant API
package http

import (
	stdhttp "net/http"

	"whosin/internal/modkit/httpkit"
	"whosin/internal/services/assistant/domain"
	svc "whosin/internal/services/assistant/service"
)

// Register mounts assistant endpoints on the given router
func Register(r httpkit.Router, s *svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.AskInput](r, "/ask", h.ask)
	httpkit.Get(r, "/presence/today", h.presenceToday)
}

type handlers struct{ svc *svc.Service }

// swagger:route POST /assistant/ask Assistant assistantAsk
// @Summary Ask a natural language question about office attendance
// @Tags Assistant
// @Accept json
// @Produce json
// @Param payload body domain.AskInput true "Question"
// @Success 200 {object} domain.AskOutput "ok"
// @Router /assistant/ask [post]
func (h *handlers) ask(r *stdhttp.Request, in domain.AskInput) (any, error) {
	return h.svc.Ask(r.Context(), httpkit.MustUser(r), in)
}

// swagger:route GET /assistant/presence/today Assistant assistantPresenceToday
// @Summary Who is in the office today
// @Tags Assistant
// @Produce json
// @Success 200 {object} domain.PresenceTodayResp "ok"
// @Router /assistant/presence/today [get]
func (h *handlers) presenceToday(r *stdhttp.Request) (any, error) {
	return h.svc.PresenceToday(r.Context())
}
