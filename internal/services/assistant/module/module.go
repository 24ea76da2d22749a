// Package module wires the assistant API into HTTP via modkit
package module

import (
	"net/http"

	"whosin/internal/adapters/llm"
	"whosin/internal/modkit"
	"whosin/internal/modkit/httpkit"
	"whosin/internal/modkit/repokit"
	"whosin/internal/platform/strings"
	"whosin/internal/services/assistant/domain"

	assistanthttp "whosin/internal/services/assistant/http"
	"whosin/internal/services/assistant/repo"
	"whosin/internal/services/assistant/service"
)

// Ports exposes the service port for cross-module lookups
type Ports struct {
	Service domain.ServicePort
}

// Module implements the assistant module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     Ports
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *service.Service
}

// New constructs the assistant module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("assistant"), modkit.WithPrefix("/assistant")}, opts...)...)

	o := FromConfig(deps.Cfg)

	var model service.Completer
	if o.LLMAPIKey != "" {
		model = llm.NewClient(llm.Options{
			BaseURL: o.LLMBaseURL,
			APIKey:  o.LLMAPIKey,
			Model:   o.LLMModel,
			Timeout: o.ExtractTimeout,
		})
	}

	binder := repo.NewPG()
	svc := service.New(repokit.TxRunner(deps.PG), binder, model, service.Config{
		ExtractTimeout:    o.ExtractTimeout,
		ParaphraseTimeout: o.ParaphraseTimeout,
		Paraphrase:        o.Paraphrase,
		MaxPeople:         o.MaxPeople,
		HistoryTurns:      o.HistoryTurns,
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Service: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		assistanthttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name is the module name
func (m *Module) Name() string { return strings.MustString(m.name, "module name") }

// Prefix is the module route prefix
func (m *Module) Prefix() string { return strings.MustPrefix(m.prefix) }

// Middlewares is the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
